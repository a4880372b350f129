// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package queue

import (
	"testing"
	"time"
)

func TestGrowth(t *testing.T) {
	q := New[int]()

	for i := 0; i < 20; i++ {
		q.Send(i)
	}
	if n := q.Len(); n != 20 {
		t.Fatalf("Len()=%d, want 20", n)
	}

	for want := 0; want < 20; want++ {
		got := q.Next()
		if got != want {
			t.Errorf("Next()=%d, want %d", got, want)
		}
	}
}

func TestTryNext(t *testing.T) {
	q := New[string]()
	if v, ok := q.TryNext(); ok {
		t.Fatalf("TryNext() on empty queue = %q, true", v)
	}
	q.Send("a")
	if v, ok := q.TryNext(); !ok || v != "a" {
		t.Errorf("TryNext() = %q, %v; want a, true", v, ok)
	}
}

func TestRelease(t *testing.T) {
	q := New[int]()

	q.Send(6)
	q.Send(7)
	q.Send(8)
	q.Next()

	const want = -1
	q.Release(want)

	if got := q.Next(); got != want {
		t.Errorf("Next()=%d, want %d", got, want)
	}
}

func TestBlockingNext(t *testing.T) {
	q := New[int]()

	const want = 12
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Send(want)
	}()

	if got := q.Next(); got != want {
		t.Errorf("Next()=%d, want %d", got, want)
	}
}

func TestReleaseSignal(t *testing.T) {
	q := New[int]()

	q.Send(6)
	q.Next()

	const want = -1
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Release(want)
	}()

	if got := q.Next(); got != want {
		t.Errorf("Next()=%d, want %d", got, want)
	}

	if !panics(func() { q.Next() }) {
		t.Error("Next() after release did not panic")
	}
}

func panics(f func()) (res bool) {
	defer func() {
		res = recover() != nil
	}()
	f()
	return false
}
