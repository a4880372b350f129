// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guard provides exclusive ownership of native handles.
//
// A Guard couples a handle with the function that releases it. The release
// runs at most once: on Dispose or Close, which are meant to be deferred
// right after acquisition, and never after the handle has been moved out
// with Take.
//
//	tok, err := guard.AcquireOut(func(t *windows.Token) error {
//		return windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, t)
//	}, windows.Token.Close)
//	if err != nil {
//		return err
//	}
//	defer tok.Dispose()
//
// Guards are not safe for concurrent use. Most Win32 handles must be released
// on the thread that created them, so guards do not use finalizers.
package guard

import (
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/xerrors"
)

// Guard owns one handle of kind H.
type Guard[H any] struct {
	h       H
	release func(H) error
	armed   bool
	log     logr.Logger
	diag    func(error)
}

// Option configures a Guard.
type Option func(*options)

type options struct {
	log  logr.Logger
	diag func(error)
}

// WithLogger logs release failures swallowed by Dispose to l.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDiagnostic reports release failures swallowed by Dispose to fn.
func WithDiagnostic(fn func(error)) Option {
	return func(o *options) { o.diag = fn }
}

func newOptions(opts []Option) options {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns an armed guard for h.
func New[H any](h H, release func(H) error, opts ...Option) *Guard[H] {
	o := newOptions(opts)
	return &Guard[H]{
		h:       h,
		release: release,
		armed:   true,
		log:     o.log,
		diag:    o.diag,
	}
}

// Acquire calls acquire and guards the handle it returns. If acquire fails
// no guard is created and release is not called.
func Acquire[H any](acquire func() (H, error), release func(H) error, opts ...Option) (*Guard[H], error) {
	h, err := acquire()
	if err != nil {
		return nil, err
	}
	return New(h, release, opts...), nil
}

// AcquireOut is Acquire for functions that deliver the handle through an
// out-parameter.
func AcquireOut[H any](acquire func(*H) error, release func(H) error, opts ...Option) (*Guard[H], error) {
	var h H
	if err := acquire(&h); err != nil {
		return nil, err
	}
	return New(h, release, opts...), nil
}

// AcquirePair is AcquireOut for functions like CreatePipe that deliver two
// handles at once. Both guards share release.
func AcquirePair[H any](acquire func(a, b *H) error, release func(H) error, opts ...Option) (*Guard[H], *Guard[H], error) {
	var a, b H
	if err := acquire(&a, &b); err != nil {
		return nil, nil, err
	}
	return New(a, release, opts...), New(b, release, opts...), nil
}

// Handle returns the guarded handle. It panics once the guard has been
// disposed or the handle taken.
func (g *Guard[H]) Handle() H {
	if !g.armed {
		panic("guard: handle used after release")
	}
	return g.h
}

// Live reports whether the guard still owns its handle.
func (g *Guard[H]) Live() bool { return g.armed }

// Take transfers ownership of the handle to the caller. The guard will not
// release it. Take panics if the guard no longer owns a handle.
func (g *Guard[H]) Take() H {
	h := g.Handle()
	g.disarm()
	return h
}

// Dispose releases the handle now. Later calls do nothing. A release
// failure is reported to the logger and diagnostic hook, never returned,
// so Dispose is safe on error paths.
func (g *Guard[H]) Dispose() {
	if err := g.Close(); err != nil {
		g.log.Error(err, "release failed")
		if g.diag != nil {
			g.diag(err)
		}
	}
}

// Close is Dispose for callers that want the release error. Only the first
// call can return one.
func (g *Guard[H]) Close() error {
	if !g.armed {
		return nil
	}
	h := g.h
	release := g.release
	// Disarm before releasing: the release may re-enter code that
	// inspects the guard (DestroyWindow sends WM_DESTROY synchronously).
	g.disarm()
	if err := release(h); err != nil {
		return xerrors.Errorf("guard: release %s: %w", format(h), err)
	}
	return nil
}

func (g *Guard[H]) disarm() {
	var zero H
	g.h = zero
	g.release = nil
	g.armed = false
}

func format(h any) string {
	switch h := h.(type) {
	case uintptr:
		return fmt.Sprintf("%#x", h)
	case fmt.Stringer:
		return h.String()
	}
	return fmt.Sprintf("%#v", h)
}
