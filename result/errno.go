// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import "fmt"

// Errno is a Win32 error code as held by a thread's last-error slot.
//
// Errno values compare by value, so errors.Is(err, ErrorMoreData) works on
// wrapped errors.
type Errno uint32

// Win32 error codes the packages in this module test for.
const (
	ErrorSuccess             Errno = 0
	ErrorFileNotFound        Errno = 2
	ErrorAccessDenied        Errno = 5
	ErrorInvalidHandle       Errno = 6
	ErrorNotEnoughMemory     Errno = 8
	ErrorInvalidParameter    Errno = 87
	ErrorBufferOverflow      Errno = 111
	ErrorInsufficientBuffer  Errno = 122
	ErrorMoreData            Errno = 234
	ErrorInvalidWindowHandle Errno = 1400
	ErrorClassAlreadyExists  Errno = 1410
	ErrorClassDoesNotExist   Errno = 1411
	ErrorClassHasWindows     Errno = 1412
)

// HResult converts e with HRESULT_FROM_WIN32.
func (e Errno) HResult() HResult {
	if e == ErrorSuccess {
		return SOK
	}
	return HResult(int32(uint32(e)&0xFFFF | 0x80070000))
}

// HResult is a COM status code. Negative values are failures.
type HResult int32

const (
	SOK         = HResult(0)
	SFalse      = HResult(1)
	EUnexpected = HResult(-((0x8000FFFF ^ 0xFFFFFFFF) + 1))
	ENotImpl    = HResult(-((0x80004001 ^ 0xFFFFFFFF) + 1))
	EPointer    = HResult(-((0x80004003 ^ 0xFFFFFFFF) + 1))
	EHandle     = HResult(-((0x80070006 ^ 0xFFFFFFFF) + 1))
	EFail       = HResult(-((0x80004005 ^ 0xFFFFFFFF) + 1))
)

// ErrFail is returned for failed calls that do not report a reason through
// the last-error slot.
var ErrFail error = EFail

// Failed reports whether h is a failure code.
func (h HResult) Failed() bool { return h < 0 }

// Errno returns the Win32 code wrapped by h, if h has FACILITY_WIN32.
func (h HResult) Errno() (Errno, bool) {
	if uint32(h)&0xFFFF0000 != 0x80070000 {
		return 0, false
	}
	return Errno(uint32(h) & 0xFFFF), true
}

func (h HResult) Error() string {
	if e, ok := h.Errno(); ok {
		return fmt.Sprintf("HRESULT 0x%08X: %v", uint32(h), e)
	}
	switch h {
	case EFail:
		return "HRESULT 0x80004005: unspecified failure"
	case EUnexpected:
		return "HRESULT 0x8000FFFF: catastrophic failure"
	case EPointer:
		return "HRESULT 0x80004003: invalid pointer"
	case ENotImpl:
		return "HRESULT 0x80004001: not implemented"
	}
	return fmt.Sprintf("HRESULT 0x%08X", uint32(h))
}
