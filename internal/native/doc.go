// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package native declares the user32, shell32 and gdi32 procedures and
// structures used by this module. Each wrapper performs exactly one native
// call through package result, so the last error is read before anything
// else can run on the thread.
//
// The package is empty outside Windows.
package native
