// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syncutil

import (
	"errors"
	"sync"
	"testing"
)

func TestOnce(t *testing.T) {
	calls := 0
	f := Once(func() (int, error) {
		calls++
		return 42, nil
	})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := f(); v != 42 || err != nil {
				t.Errorf("f() = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestOnceError(t *testing.T) {
	errNope := errors.New("nope")
	calls := 0
	f := Once(func() (string, error) {
		calls++
		return "", errNope
	})
	for i := 0; i < 2; i++ {
		if _, err := f(); err != errNope {
			t.Errorf("f() error = %v, want %v", err, errNope)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}
