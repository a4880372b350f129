// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package result

import "strconv"

var errnoNames = map[Errno]string{
	ErrorSuccess:             "The operation completed successfully.",
	ErrorFileNotFound:        "The system cannot find the file specified.",
	ErrorAccessDenied:        "Access is denied.",
	ErrorInvalidHandle:       "The handle is invalid.",
	ErrorNotEnoughMemory:     "Not enough memory resources are available to process this command.",
	ErrorInvalidParameter:    "The parameter is incorrect.",
	ErrorBufferOverflow:      "The file name is too long.",
	ErrorInsufficientBuffer:  "The data area passed to a system call is too small.",
	ErrorMoreData:            "More data is available.",
	ErrorInvalidWindowHandle: "Invalid window handle.",
	ErrorClassAlreadyExists:  "Class already exists.",
	ErrorClassDoesNotExist:   "Class does not exist.",
	ErrorClassHasWindows:     "Class still has open windows.",
}

// Error returns a description of e. Outside Windows there is no system
// message table, so only the codes this module uses have text.
func (e Errno) Error() string {
	if s, ok := errnoNames[e]; ok {
		return s
	}
	return "winapi error #" + strconv.FormatUint(uint64(e), 10)
}

// ClearLastError is a no-op outside Windows.
func ClearLastError() {}
