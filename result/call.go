// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package result classifies the outcome of raw Win32 calls.
//
// Win32 functions report failure through a return value (FALSE, zero, a
// sentinel such as INVALID_HANDLE_VALUE or -1) and leave the reason in the
// calling thread's last-error slot. The slot is overwritten by the next
// failing call on the thread, so it must be read immediately. Every function
// in this package therefore performs the call itself, through a Proc, and
// classifies the value the syscall layer captured right after the call
// returned. There is deliberately no way to split the two steps.
//
// A last error of ERROR_SUCCESS is never reported as a failure. Functions
// that fail without setting the last error (Shell_NotifyIconW, most of GDI)
// must be called through CheckedOrFail.
package result

import "syscall"

// Proc is a callable native procedure. *windows.LazyProc, *windows.Proc,
// *syscall.LazyProc and *syscall.Proc all implement it.
//
// Call must return the thread's last error as captured directly after the
// native call returned.
type Proc interface {
	Call(a ...uintptr) (r1, r2 uintptr, lastErr error)
}

// InvalidHandle is INVALID_HANDLE_VALUE.
const InvalidHandle = ^uintptr(0)

// Classify converts a captured last error into the error returned to
// callers. Zero codes yield nil.
func Classify(lastErr error) error {
	switch e := lastErr.(type) {
	case nil:
		return nil
	case Errno:
		if e == ErrorSuccess {
			return nil
		}
		return e
	case syscall.Errno:
		if e == 0 {
			return nil
		}
		return Errno(e)
	}
	return lastErr
}

// Bool calls p and treats a zero (FALSE) result as failure.
//
//go:uintptrescapes
func Bool(p Proc, a ...uintptr) error {
	r1, _, lastErr := p.Call(a...)
	if r1 != 0 {
		return nil
	}
	return Classify(lastErr)
}

// Nonzero calls p and treats a zero result as failure. It suits functions
// returning handles, atoms and counts.
//
// If the last error is clear the zero is passed through as a value, which
// makes Nonzero usable for functions like SetWindowLongPtrW whose zero
// return is ambiguous; call ClearLastError before those.
//
//go:uintptrescapes
func Nonzero(p Proc, a ...uintptr) (uintptr, error) {
	r1, _, lastErr := p.Call(a...)
	if r1 != 0 {
		return r1, nil
	}
	return r1, Classify(lastErr)
}

// Sentinel calls p and treats a result equal to bad as failure.
//
//go:uintptrescapes
func Sentinel(p Proc, bad uintptr, a ...uintptr) (uintptr, error) {
	r1, _, lastErr := p.Call(a...)
	if r1 != bad {
		return r1, nil
	}
	return r1, Classify(lastErr)
}

// Sentinel32 is Sentinel for functions returning a 32-bit int or BOOL. The
// upper half of r1 is garbage on 64-bit platforms, so r1 is narrowed
// before the comparison. The narrowed result is returned.
//
//go:uintptrescapes
func Sentinel32(p Proc, bad int32, a ...uintptr) (int32, error) {
	r1, _, lastErr := p.Call(a...)
	r := int32(uint32(r1))
	if r != bad {
		return r, nil
	}
	return r, Classify(lastErr)
}

// Handle calls p and treats INVALID_HANDLE_VALUE as failure.
//
//go:uintptrescapes
func Handle(p Proc, a ...uintptr) (uintptr, error) {
	r1, _, lastErr := p.Call(a...)
	if r1 != InvalidHandle {
		return r1, nil
	}
	return r1, Classify(lastErr)
}

// CheckedOrFail calls p and reports ErrFail when ok rejects the result.
// The last error is not consulted.
//
//go:uintptrescapes
func CheckedOrFail(p Proc, ok func(r1 uintptr) bool, a ...uintptr) (uintptr, error) {
	r1, _, _ := p.Call(a...)
	if ok(r1) {
		return r1, nil
	}
	return r1, ErrFail
}

// Status calls p, which returns a Win32 error code directly (the registry
// functions, for example).
//
//go:uintptrescapes
func Status(p Proc, a ...uintptr) error {
	r1, _, _ := p.Call(a...)
	return Classify(Errno(uint32(r1)))
}

// HRESULT calls p, which returns an HRESULT. Negative values are failures;
// S_FALSE and other positive codes are success.
//
//go:uintptrescapes
func HRESULT(p Proc, a ...uintptr) error {
	r1, _, _ := p.Call(a...)
	if hr := HResult(int32(uint32(r1))); hr.Failed() {
		return hr
	}
	return nil
}

// NonzeroBool reports whether a BOOL-style result is nonzero. It is a
// convenience for CheckedOrFail.
func NonzeroBool(r1 uintptr) bool { return r1 != 0 }
