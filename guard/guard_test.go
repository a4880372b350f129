// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package guard

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"
)

type handle uintptr

type releaser struct {
	released []handle
	err      error
}

func (r *releaser) release(h handle) error {
	r.released = append(r.released, h)
	return r.err
}

func TestDisposeReleasesOnce(t *testing.T) {
	var r releaser
	g := New(handle(42), r.release)
	if !g.Live() {
		t.Fatal("new guard is not live")
	}
	if got := g.Handle(); got != 42 {
		t.Fatalf("Handle() = %d, want 42", got)
	}
	g.Dispose()
	g.Dispose()
	if diff := cmp.Diff([]handle{42}, r.released); diff != "" {
		t.Errorf("released mismatch (-want +got):\n%s", diff)
	}
	if g.Live() {
		t.Error("disposed guard is live")
	}
}

func TestDeferredDispose(t *testing.T) {
	var r releaser
	errEarly := errors.New("early return")
	f := func() error {
		g := New(handle(7), r.release)
		defer g.Dispose()
		return errEarly
	}
	if err := f(); err != errEarly {
		t.Fatalf("f() = %v", err)
	}
	if diff := cmp.Diff([]handle{7}, r.released); diff != "" {
		t.Errorf("released mismatch (-want +got):\n%s", diff)
	}
}

func TestTakeDisarms(t *testing.T) {
	var r releaser
	g := New(handle(9), r.release)
	if got := g.Take(); got != 9 {
		t.Fatalf("Take() = %d, want 9", got)
	}
	g.Dispose()
	if err := g.Close(); err != nil {
		t.Errorf("Close() after Take = %v", err)
	}
	if len(r.released) != 0 {
		t.Errorf("released %v after Take", r.released)
	}
}

func TestUseAfterReleasePanics(t *testing.T) {
	for name, f := range map[string]func(*Guard[handle]){
		"Handle": func(g *Guard[handle]) { g.Handle() },
		"Take":   func(g *Guard[handle]) { g.Take() },
	} {
		var r releaser
		g := New(handle(1), r.release)
		g.Dispose()
		if !panics(func() { f(g) }) {
			t.Errorf("%s after Dispose did not panic", name)
		}
	}
}

func TestCloseReturnsReleaseError(t *testing.T) {
	errBusy := errors.New("busy")
	r := releaser{err: errBusy}
	g := New(handle(3), r.release)
	err := g.Close()
	if !xerrors.Is(err, errBusy) {
		t.Fatalf("Close() = %v, want wrapped %v", err, errBusy)
	}
	if err := g.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if len(r.released) != 1 {
		t.Errorf("released %d times, want 1", len(r.released))
	}
}

func TestDisposeSwallowsAndReports(t *testing.T) {
	errBusy := errors.New("busy")
	r := releaser{err: errBusy}
	var reported []error
	var logged strings.Builder
	log := funcr.New(func(prefix, args string) {
		logged.WriteString(args)
	}, funcr.Options{})
	g := New(handle(5), r.release,
		WithDiagnostic(func(err error) { reported = append(reported, err) }),
		WithLogger(log))
	g.Dispose()
	g.Dispose()
	if len(reported) != 1 || !xerrors.Is(reported[0], errBusy) {
		t.Fatalf("reported = %v, want one wrapped %v", reported, errBusy)
	}
	if !strings.Contains(logged.String(), "release failed") {
		t.Errorf("log output %q does not mention the failure", logged.String())
	}
}

func TestReleaseReentry(t *testing.T) {
	var g *Guard[handle]
	calls := 0
	g = New(handle(11), func(h handle) error {
		calls++
		// A release that synchronously re-enters, as DestroyWindow does.
		if g.Live() {
			t.Error("guard still live inside its release")
		}
		g.Dispose()
		return nil
	})
	g.Dispose()
	if calls != 1 {
		t.Errorf("release ran %d times, want 1", calls)
	}
}

func TestAcquire(t *testing.T) {
	var r releaser
	g, err := Acquire(func() (handle, error) { return 21, nil }, r.release)
	if err != nil {
		t.Fatal(err)
	}
	g.Dispose()

	errDenied := errors.New("denied")
	if g, err := Acquire(func() (handle, error) { return 0, errDenied }, r.release); g != nil || err != errDenied {
		t.Errorf("failing Acquire() = %v, %v", g, err)
	}

	g, err = AcquireOut(func(h *handle) error { *h = 22; return nil }, r.release)
	if err != nil {
		t.Fatal(err)
	}
	g.Dispose()

	if g, err := AcquireOut(func(h *handle) error { *h = 99; return errDenied }, r.release); g != nil || err != errDenied {
		t.Errorf("failing AcquireOut() = %v, %v", g, err)
	}

	read, write, err := AcquirePair(func(a, b *handle) error { *a, *b = 31, 32; return nil }, r.release)
	if err != nil {
		t.Fatal(err)
	}
	write.Dispose()
	read.Dispose()

	if diff := cmp.Diff([]handle{21, 22, 32, 31}, r.released); diff != "" {
		t.Errorf("released mismatch (-want +got):\n%s", diff)
	}
}

func panics(f func()) (res bool) {
	defer func() {
		res = recover() != nil
	}()
	f()
	return false
}
