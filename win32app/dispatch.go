// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import "golang.org/x/xerrors"

// HandlerFunc handles one message. Its result is returned from the window
// procedure. A non-nil error is reported to Options.OnError; it does not
// stop the loop.
type HandlerFunc func(m Msg) (uintptr, error)

// windowProc is called by the class router for every message sent or
// dispatched to the App's window, including those sent during creation.
func (a *App) windowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch {
	case msg == TrayCallbackMsg:
		a.trayCallback(wParam, lParam)
		return 0
	case a.taskbarCreated != 0 && msg == a.taskbarCreated:
		a.restoreIcons()
		return 0
	case msg == WM_DESTROY && hwnd == a.hwnd && a.win != nil && a.win.Live():
		a.windowDestroyed()
	}

	if fn := a.handlers[msg]; fn != nil {
		return a.call(fn, Msg{HWND: hwnd, Message: msg, WParam: wParam, LParam: lParam})
	}
	return a.p.DefWindowProc(hwnd, msg, wParam, lParam)
}

// windowDestroyed runs when the window is destroyed by something other
// than shutdown, for example DefWindowProc handling WM_CLOSE.
func (a *App) windowDestroyed() {
	a.log.V(1).Info("window destroyed externally")
	a.removeAllIcons()
	a.win.Take()
	switch a.State() {
	case Registered, Running:
		a.p.PostQuitMessage(0)
	}
}

func (a *App) threadMessage(m Msg) {
	if fn := a.handlers[m.Message]; fn != nil {
		a.call(fn, m)
	}
}

func (a *App) call(fn HandlerFunc, m Msg) uintptr {
	r, err := fn(m)
	if err != nil {
		a.report(xerrors.Errorf("win32app: message %#x: %w", m.Message, err))
	}
	return r
}

// Handle routes msg to fn. A nil fn removes the handler. Handlers for
// TrayCallbackMsg and the TaskbarCreated message are never called.
func (a *App) Handle(msg uint32, fn HandlerFunc) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	if fn == nil {
		delete(a.handlers, msg)
		return nil
	}
	a.handlers[msg] = fn
	return nil
}

// RegisterMessage allocates a message id private to the App and routes it
// to fn. Other goroutines hand work to the loop by passing the id to Post.
func (a *App) RegisterMessage(fn HandlerFunc) (uint32, error) {
	if err := a.checkLive(); err != nil {
		return 0, err
	}
	if a.nextMsg > lastPrivateMsg {
		return 0, ErrNoMessageIDs
	}
	msg := a.nextMsg
	a.nextMsg++
	a.handlers[msg] = fn
	return msg, nil
}

// Post places a message in the window's queue and returns without waiting.
// It is safe to call from any goroutine.
func (a *App) Post(msg uint32, wParam, lParam uintptr) error {
	if a.State() == Terminated {
		return xerrors.Errorf("win32app: post %#x: %w", msg, ErrState)
	}
	if err := a.p.PostMessage(a.hwnd, msg, wParam, lParam); err != nil {
		return xerrors.Errorf("win32app: post %#x: %w", msg, err)
	}
	return nil
}

// DefWindowProc passes m to default processing. Handlers call it for
// messages they only observe.
func (a *App) DefWindowProc(m Msg) uintptr {
	return a.p.DefWindowProc(m.HWND, m.Message, m.WParam, m.LParam)
}
