// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import "golang.org/x/xerrors"

var (
	// ErrUnknownIconID is returned when an operation other than RemoveIcon
	// names an icon id the App does not own.
	ErrUnknownIconID = xerrors.New("win32app: unknown tray icon id")

	// ErrWrongThread is returned when an App is used from a thread other
	// than the one that created it.
	ErrWrongThread = xerrors.New("win32app: called from a thread that does not own the window")

	// ErrState is returned when an operation is not valid in the App's
	// current state.
	ErrState = xerrors.New("win32app: operation not valid in this state")

	// ErrNoIconIDs is returned by AddIcon when every icon id is in use.
	ErrNoIconIDs = xerrors.New("win32app: no free tray icon id")

	// ErrNoMessageIDs is returned by RegisterMessage when the private
	// message range is exhausted.
	ErrNoMessageIDs = xerrors.New("win32app: no free private message id")
)
