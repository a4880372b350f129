// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dualcall implements the two-step calling convention of Win32
// functions that fill a caller-provided buffer: a first call with no buffer
// reports the required size, a second call fills a buffer of that size.
//
// The probe usually "fails" with ERROR_INSUFFICIENT_BUFFER, ERROR_MORE_DATA
// or ERROR_BUFFER_OVERFLOW. Those codes mean the size was reported and are
// not returned as errors. When the queried data grows between the two
// calls, the fill reports the same codes; the pair is then repeated, at most
// MaxAttempts times.
package dualcall

import (
	"syscall"

	"golang.org/x/xerrors"

	"golang.org/x/exp/winsafe/result"
)

// MaxAttempts bounds the probe/fill pairs tried while the queried data keeps
// changing size. No Win32 contract names a value; three absorbs an
// occasional race without hanging under sustained mutation.
const MaxAttempts = 3

// ErrBufferRaceExceeded is returned when every one of MaxAttempts fills
// found its buffer too small.
var ErrBufferRaceExceeded = xerrors.New("dualcall: buffer size kept changing between probe and fill")

var defaultCodes = []result.Errno{
	result.ErrorInsufficientBuffer,
	result.ErrorMoreData,
	result.ErrorBufferOverflow,
}

// Option configures a call.
type Option func(*config)

type config struct {
	codes    []result.Errno
	hresults []result.HResult
}

// Expect replaces the error codes that mean "buffer too small". They also
// match when they arrive as a syscall.Errno or wrapped in an HRESULT with
// FACILITY_WIN32.
func Expect(codes ...result.Errno) Option {
	return func(c *config) { c.codes = codes }
}

// ExpectHResult adds HRESULTs that mean "buffer too small", such as the
// E_POINTER of AssocQueryStringW.
func ExpectHResult(codes ...result.HResult) Option {
	return func(c *config) { c.hresults = append(c.hresults, codes...) }
}

func (c *config) tooSmall(err error) bool {
	if err == nil {
		return false
	}
	var hr result.HResult
	if xerrors.As(err, &hr) {
		for _, want := range c.hresults {
			if hr == want {
				return true
			}
		}
		code, ok := hr.Errno()
		return ok && c.expected(code)
	}
	var code result.Errno
	if xerrors.As(err, &code) {
		return c.expected(code)
	}
	var sys syscall.Errno
	if xerrors.As(err, &sys) {
		return c.expected(result.Errno(sys))
	}
	return false
}

func (c *config) expected(code result.Errno) bool {
	for _, want := range c.codes {
		if code == want {
			return true
		}
	}
	return false
}

// Call runs the two-step protocol. probe returns the required number of
// elements; fill writes into buf and returns the number of elements it
// wrote. Errors from package result, syscall.Errno values and HRESULTs are
// all recognized.
//
// A probed size of zero returns an empty slice without calling fill.
// Errors other than the expected "buffer too small" codes are returned
// unchanged from either step.
func Call[E any](probe func() (int, error), fill func(buf []E) (int, error), opts ...Option) ([]E, error) {
	c := config{codes: defaultCodes}
	for _, opt := range opts {
		opt(&c)
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		size, err := probe()
		if err != nil && !c.tooSmall(err) {
			return nil, err
		}
		if size <= 0 {
			return []E{}, nil
		}

		buf := make([]E, size)
		n, err := fill(buf)
		switch {
		case err != nil && c.tooSmall(err):
			continue
		case err != nil:
			return nil, err
		case n > len(buf):
			// The fill claims more than we gave it: the size changed.
			continue
		case n < 0:
			return nil, xerrors.Errorf("dualcall: fill reported %d elements: %w", n, result.ErrFail)
		}
		return buf[:n], nil
	}
	return nil, xerrors.Errorf("dualcall: gave up after %d attempts: %w", MaxAttempts, ErrBufferRaceExceeded)
}

// Single runs the two-step protocol for functions called the same way for
// both steps. fn receives a nil buffer when probing and must then return
// the required size.
func Single[E any](fn func(buf []E) (int, error), opts ...Option) ([]E, error) {
	return Call(func() (int, error) { return fn(nil) }, fn, opts...)
}
