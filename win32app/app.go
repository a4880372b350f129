// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/xerrors"

	"golang.org/x/exp/winsafe/guard"
)

// State is the lifecycle state of an App.
type State int32

const (
	Uninitialized State = iota
	Registered
	Running
	ShuttingDown
	Terminated
)

var stateNames = [...]string{
	Uninitialized: "Uninitialized",
	Registered:    "Registered",
	Running:       "Running",
	ShuttingDown:  "ShuttingDown",
	Terminated:    "Terminated",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// DefaultClassName is the window class used when Options.ClassName is empty.
const DefaultClassName = "winsafe_App"

// Options configure an App. The zero value is usable.
type Options struct {
	ClassName string
	Title     string

	// MessageOnly creates an HWND_MESSAGE window. Such windows do not see
	// broadcasts, so icons are not restored after an explorer restart.
	MessageOnly bool

	Logger logr.Logger

	// OnError receives failures that happen while dispatching messages.
	OnError func(error)

	// Now is used for activation debouncing. It defaults to time.Now.
	Now func() time.Time

	// TracerProvider receives one span per dispatched message. Errors
	// reported while dispatching are recorded on the span. It defaults to
	// a no-op provider.
	TracerProvider trace.TracerProvider
}

// tracerName is the instrumentation scope of the App's spans.
const tracerName = "golang.org/x/exp/winsafe/win32app"

// An App owns one window, the thread that pumps its messages and the tray
// icons attached to the window.
type App struct {
	p       Platform
	log     logr.Logger
	onError func(error)
	now     func() time.Time
	tracer  trace.Tracer
	span    trace.Span // of the message being dispatched

	owner uint32
	state atomic.Int32
	class *windowClass
	hwnd  HWND
	win   *guard.Guard[HWND]

	taskbarCreated uint32
	handlers       map[uint32]HandlerFunc
	nextMsg        uint32

	icons    map[IconID]*TrayIcon
	nextIcon IconID

	quitNow  bool
	quitCode int
	appErr   error
}

// New registers the window class if needed and creates the App's window.
// The calling goroutine is locked to its OS thread until Run returns, and
// only that thread may use the App.
func New(p Platform, opts *Options) (_ *App, err error) {
	if opts == nil {
		opts = &Options{}
	}
	a := &App{
		p:        p,
		log:      opts.Logger,
		onError:  opts.OnError,
		now:      opts.Now,
		handlers: map[uint32]HandlerFunc{},
		nextMsg:  firstPrivateMsg,
		icons:    map[IconID]*TrayIcon{},
		nextIcon: 1,
	}
	if a.log.GetSink() == nil {
		a.log = logr.Discard()
	}
	if a.now == nil {
		a.now = time.Now
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	a.tracer = tp.Tracer(tracerName)
	name := opts.ClassName
	if name == "" {
		name = DefaultClassName
	}
	a.log = a.log.WithValues("class", name)

	runtime.LockOSThread()
	defer func() {
		if err != nil {
			runtime.UnlockOSThread()
		}
	}()
	a.owner = p.CurrentThreadID()

	a.class, err = acquireClass(p, name)
	if err != nil {
		return nil, xerrors.Errorf("win32app: register class %q: %w", name, err)
	}
	defer func() {
		if err != nil {
			a.class.unbind(a)
			if rerr := a.class.release(); rerr != nil {
				a.log.Error(rerr, "unregister class failed")
			}
		}
	}()

	a.class.beginCreate(a.owner, a)
	hwnd, err := p.CreateWindow(name, opts.Title, opts.MessageOnly)
	a.class.endCreate(a.owner)
	if err != nil {
		return nil, xerrors.Errorf("win32app: create window: %w", err)
	}
	a.hwnd = hwnd
	a.class.bind(hwnd, a)
	a.win = guard.New(hwnd, p.DestroyWindow, guard.WithLogger(a.log), guard.WithDiagnostic(a.report))
	a.log = a.log.WithValues("hwnd", fmt.Sprintf("%#x", uintptr(hwnd)))

	if !opts.MessageOnly {
		a.taskbarCreated, err = p.RegisterWindowMessage("TaskbarCreated")
		if err != nil {
			a.win.Dispose()
			return nil, xerrors.Errorf("win32app: register TaskbarCreated: %w", err)
		}
	}

	a.state.Store(int32(Registered))
	a.log.V(1).Info("window created")
	return a, nil
}

// State returns the App's lifecycle state. It is safe to call from any
// goroutine.
func (a *App) State() State { return State(a.state.Load()) }

// Window returns the App's window handle. The handle is stale once the App
// has terminated.
func (a *App) Window() HWND { return a.hwnd }

// Run pumps messages until a WM_QUIT is retrieved, then removes all tray
// icons, destroys the window and releases the window class.
//
// Run returns the WM_QUIT exit code. The error is the one passed to Fail,
// if any, else a failure of the message retrieval itself.
func (a *App) Run() (int, error) {
	if err := a.check(); err != nil {
		return 0, err
	}
	if !a.state.CompareAndSwap(int32(Registered), int32(Running)) {
		return 0, xerrors.Errorf("win32app: run in state %v: %w", a.State(), ErrState)
	}
	a.log.V(1).Info("message loop started")

	var (
		m       Msg
		code    int
		loopErr error
	)
	for {
		ok, err := a.p.GetMessage(&m)
		if err != nil {
			loopErr = xerrors.Errorf("win32app: get message: %w", err)
			code = 1
			break
		}
		if a.quitNow {
			code = a.quitCode
			break
		}
		if !ok {
			code = int(int32(m.WParam))
			break
		}
		a.dispatch(&m)
	}

	a.shutdown()
	a.log.V(1).Info("message loop ended", "exitCode", code)
	if a.appErr != nil {
		return code, a.appErr
	}
	return code, loopErr
}

func (a *App) dispatch(m *Msg) {
	_, a.span = a.tracer.Start(context.Background(), "win32app.dispatch",
		trace.WithAttributes(
			attribute.Int64("win32.message", int64(m.Message)),
			attribute.Bool("win32.thread_message", m.HWND == 0),
		))
	defer func() {
		a.span.End()
		a.span = nil
	}()

	a.p.TranslateMessage(m)
	a.p.DispatchMessage(m)
	if m.HWND == 0 {
		a.threadMessage(*m)
	}
}

func (a *App) shutdown() {
	a.state.Store(int32(ShuttingDown))
	a.removeAllIcons()
	a.win.Dispose()
	a.class.unbind(a)
	if err := a.class.release(); err != nil {
		a.report(xerrors.Errorf("win32app: unregister class: %w", err))
	}
	a.state.Store(int32(Terminated))
	runtime.UnlockOSThread()
}

// Quit posts WM_QUIT with code. The loop sees it once the messages queued
// before it have been processed.
func (a *App) Quit(code int) error {
	if err := a.check(); err != nil {
		return err
	}
	a.p.PostQuitMessage(int32(code))
	return nil
}

// QuitNow makes the next message the loop retrieves count as WM_QUIT with
// code, whatever that message is.
func (a *App) QuitNow(code int) error {
	if err := a.check(); err != nil {
		return err
	}
	a.quitNow = true
	a.quitCode = code
	a.p.PostQuitMessage(int32(code))
	return nil
}

// Fail records err as the App's error, unless one was recorded already, and
// quits with exit code 1. Run returns the recorded error.
func (a *App) Fail(err error) error {
	if cerr := a.check(); cerr != nil {
		return cerr
	}
	if a.appErr == nil {
		a.appErr = err
	}
	a.log.Error(err, "application failed")
	a.p.PostQuitMessage(1)
	return nil
}

func (a *App) check() error {
	if tid := a.p.CurrentThreadID(); tid != a.owner {
		return xerrors.Errorf("win32app: thread %d, owner %d: %w", tid, a.owner, ErrWrongThread)
	}
	return nil
}

// checkLive is check for operations that need the window.
func (a *App) checkLive() error {
	if err := a.check(); err != nil {
		return err
	}
	switch s := a.State(); s {
	case Registered, Running:
		return nil
	default:
		return xerrors.Errorf("win32app: App is %v: %w", s, ErrState)
	}
}

func (a *App) report(err error) {
	a.log.Error(err, "dispatch failed")
	if a.span != nil {
		a.span.RecordError(err)
		a.span.SetStatus(codes.Error, err.Error())
	}
	if a.onError != nil {
		a.onError(err)
	}
}
