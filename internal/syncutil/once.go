// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syncutil holds small synchronization helpers.
package syncutil

import "sync"

// Once returns a function that invokes fn only once and returns the values
// returned by fn. The returned function is safe for concurrent use.
//
// A failing fn is not retried: module handles and registered message ids do
// not start working on a second attempt.
func Once[T any](fn func() (T, error)) func() (T, error) {
	var (
		once  sync.Once
		value T
		err   error
	)
	return func() (T, error) {
		once.Do(func() {
			value, err = fn()
		})
		return value, err
	}
}
