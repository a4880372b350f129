// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package result

import (
	"syscall"

	"golang.org/x/sys/windows"
)

var procSetLastError = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetLastError")

// Error returns the system message for e.
func (e Errno) Error() string {
	return syscall.Errno(e).Error()
}

// ClearLastError sets the calling thread's last-error slot to
// ERROR_SUCCESS. Call it immediately before functions whose zero return is
// ambiguous and that only set the last error on failure, such as
// SetWindowLongPtrW.
func ClearLastError() {
	procSetLastError.Call(uintptr(ErrorSuccess))
}
