// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package queue provides an infinitely buffered FIFO with a blocking
// receive, the shape of a thread's message queue.
package queue

import "sync"

// Queue is an ordered infinite queue of values.
// The zero value is not usable; call New.
type Queue[T any] struct {
	cond  sync.Cond
	items []T
	done  bool
}

// New initializes a Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{cond: sync.Cond{L: new(sync.Mutex)}}
}

// Next returns the next value in the queue, blocking until one is sent.
// It panics once the queue has been released and drained.
func (q *Queue[T]) Next() T {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	for len(q.items) == 0 {
		if q.done {
			panic("queue: released, no more values to process")
		}
		q.cond.Wait()
	}

	v := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return v
}

// TryNext returns the next value without blocking.
func (q *Queue[T]) TryNext() (T, bool) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// Send adds a value to the queue.
// Send returns quickly and will never block waiting for Next.
func (q *Queue[T]) Send(v T) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	q.items = append(q.items, v)
	q.cond.Signal()
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	return len(q.items)
}

// Release disposes of the pending values and delivers a final one.
func (q *Queue[T]) Release(v T) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	q.items = append(q.items[:0], v)
	q.done = true
	q.cond.Signal()
}
