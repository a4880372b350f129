// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package win32app runs a Win32 message loop for a hidden window and the
// notification-area (tray) icons it owns.
//
// An App moves through the states Uninitialized, Registered, Running,
// ShuttingDown and Terminated. New registers the window class and creates
// the window; Run blocks in the message loop until a WM_QUIT is retrieved,
// then removes every tray icon, destroys the window and releases the class.
package win32app

/*
Implementation Details

On Windows, any window created on a thread must only be manipulated from
that thread, and that thread must pump the window's messages. New locks the
calling goroutine to its OS thread and records the thread id; every later
call except Post compares the current thread id against it and fails with
ErrWrongThread. Other goroutines talk to the loop by posting a message
obtained from RegisterMessage. Post is the only cross-thread entry point.

GetMessage is the only place the loop blocks. Cancellation is cooperative:
Quit posts WM_QUIT, which is seen at the next retrieval. QuitNow also makes
the very next retrieved message count as WM_QUIT, even if other messages
are queued ahead of it.

A window class is registered once per class name and Platform, and
reference counted across Apps. The class's window procedure routes by HWND
to the owning App. Messages that arrive while CreateWindow is still running
(WM_NCCREATE, WM_CREATE, WM_GETMINMAXINFO) are routed to the App being
created on the current thread.

Tray icon callbacks use NOTIFYICON_VERSION_4: the message is
TrayCallbackMsg, LOWORD(lParam) is the event, HIWORD(lParam) the icon id
and wParam holds the anchor coordinates. Explorer broadcasts
"TaskbarCreated" when it restarts; the App then adds its icons again.
Message-only windows do not receive broadcasts.

Failures while dispatching a message (handler errors, icon callbacks for
unknown ids, icon removal during teardown) go to Options.OnError and the
logger; the loop keeps running.
*/
