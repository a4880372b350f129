// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/google/go-cmp/cmp"
)

func TestGokitLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newGokitLogger(log.NewLogfmtLogger(&buf), 1)

	l.Info("start", "n", 1)
	l.V(1).Info("detail")
	l.V(2).Info("hidden")
	l.WithName("app").WithName("tray").WithValues("k", "v").Error(errors.New("boom"), "failed", "id", 3)

	want := []string{
		"level=info msg=start n=1",
		"level=debug msg=detail",
		"level=error k=v logger=app/tray msg=failed err=boom id=3",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log lines (-want +got):\n%s", diff)
	}
}
