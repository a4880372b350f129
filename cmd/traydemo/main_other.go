// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package main

import "log"

func main() {
	log.Fatal("traydemo: the notification area is only available on Windows")
}
