// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package win32app

import (
	"sync"
	"time"
	"unicode/utf16"

	"golang.org/x/sys/windows"

	"golang.org/x/exp/winsafe/internal/native"
	"golang.org/x/exp/winsafe/internal/syncutil"
	"golang.org/x/exp/winsafe/result"
)

var nativePlatform = &native32{
	procs:    map[string]WindowProc{},
	windows:  map[HWND]WindowProc{},
	creating: map[uint32]WindowProc{},
}

// Native returns the Platform backed by user32 and shell32.
func Native() Platform { return nativePlatform }

type native32 struct {
	mu       sync.Mutex
	procs    map[string]WindowProc // by class name
	windows  map[HWND]WindowProc
	creating map[uint32]WindowProc // by thread id
}

// All classes share one callback; the runtime allows only a limited number.
var wndProcCallback = syncutil.Once(func() (uintptr, error) {
	return windows.NewCallback(nativeWndProc), nil
})

func nativeWndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	p := nativePlatform
	h := HWND(hwnd)

	p.mu.Lock()
	proc := p.windows[h]
	if proc == nil {
		if proc = p.creating[windows.GetCurrentThreadId()]; proc != nil {
			p.windows[h] = proc
		}
	}
	p.mu.Unlock()

	if proc == nil {
		return native.DefWindowProc(windows.Handle(hwnd), uint32(msg), wParam, lParam)
	}
	r := proc(h, uint32(msg), wParam, lParam)
	if msg == native.WM_NCDESTROY {
		p.mu.Lock()
		delete(p.windows, h)
		p.mu.Unlock()
	}
	return r
}

func (p *native32) CurrentThreadID() uint32 { return windows.GetCurrentThreadId() }

func (p *native32) RegisterClass(name string, proc WindowProc) error {
	cb, err := wndProcCallback()
	if err != nil {
		return err
	}
	inst, err := native.Instance()
	if err != nil {
		return err
	}
	cls, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	icon, err := native.LoadIcon(0, native.IDI_APPLICATION)
	if err != nil {
		return err
	}
	cursor, err := native.LoadCursor(0, native.IDC_ARROW)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := native.RegisterClassEx(&native.WndClassEx{
		WndProc:    cb,
		Instance:   inst,
		Icon:       icon,
		Cursor:     cursor,
		Background: native.COLOR_BTNFACE + 1,
		ClassName:  cls,
	}); err != nil {
		return err
	}
	p.procs[name] = proc
	return nil
}

func (p *native32) UnregisterClass(name string) error {
	inst, err := native.Instance()
	if err != nil {
		return err
	}
	cls, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := native.UnregisterClass(cls, inst); err != nil {
		return err
	}
	delete(p.procs, name)
	return nil
}

func (p *native32) CreateWindow(class, title string, messageOnly bool) (HWND, error) {
	inst, err := native.Instance()
	if err != nil {
		return 0, err
	}
	cls, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, err
	}
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	var parent windows.Handle
	if messageOnly {
		parent = windows.Handle(native.HWND_MESSAGE)
	}

	tid := windows.GetCurrentThreadId()
	p.mu.Lock()
	proc := p.procs[class]
	if proc != nil {
		p.creating[tid] = proc
	}
	p.mu.Unlock()
	if proc == nil {
		return 0, result.ErrorClassDoesNotExist
	}

	hwnd, err := native.CreateWindowEx(0, cls, name, 0,
		native.CW_USEDEFAULT, native.CW_USEDEFAULT, native.CW_USEDEFAULT, native.CW_USEDEFAULT,
		parent, 0, inst, 0)

	p.mu.Lock()
	delete(p.creating, tid)
	if err == nil {
		p.windows[HWND(hwnd)] = proc
	}
	p.mu.Unlock()
	return HWND(hwnd), err
}

func (p *native32) DestroyWindow(hwnd HWND) error {
	return native.DestroyWindow(windows.Handle(hwnd))
}

func (p *native32) DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return native.DefWindowProc(windows.Handle(hwnd), msg, wParam, lParam)
}

func (p *native32) GetMessage(m *Msg) (bool, error) {
	var nm native.Msg
	ok, err := native.GetMessage(&nm, 0, 0, 0)
	*m = fromNativeMsg(&nm)
	return ok, err
}

func (p *native32) TranslateMessage(m *Msg) {
	nm := toNativeMsg(m)
	native.TranslateMessage(&nm)
}

func (p *native32) DispatchMessage(m *Msg) uintptr {
	nm := toNativeMsg(m)
	return native.DispatchMessage(&nm)
}

func (p *native32) PostQuitMessage(exitCode int32) { native.PostQuitMessage(exitCode) }

func (p *native32) PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error {
	return native.PostMessage(windows.Handle(hwnd), msg, wParam, lParam)
}

func (p *native32) RegisterWindowMessage(name string) (uint32, error) {
	s, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	return native.RegisterWindowMessage(s)
}

func (p *native32) NotifyIcon(op NotifyOp, d *IconData) error {
	return native.ShellNotifyIcon(uint32(op), notifyIconData(op, d))
}

func (p *native32) NotifyIconRect(hwnd HWND, id IconID, guid *GUID) (Rect, error) {
	nii := &native.NotifyIconIdentifier{
		Wnd: windows.Handle(hwnd),
		ID:  uint32(id),
	}
	if guid != nil {
		nii.GuidItem = windows.GUID(*guid)
	}
	r, err := native.ShellNotifyIconGetRect(nii)
	return Rect{r.Left, r.Top, r.Right, r.Bottom}, err
}

func (p *native32) DoubleClickTime() time.Duration {
	return time.Duration(native.GetDoubleClickTime()) * time.Millisecond
}

func fromNativeMsg(nm *native.Msg) Msg {
	return Msg{
		HWND:    HWND(nm.Hwnd),
		Message: nm.Message,
		WParam:  nm.Wparam,
		LParam:  nm.Lparam,
		Time:    nm.Time,
		Pt:      Point{nm.Pt.X, nm.Pt.Y},
	}
}

func toNativeMsg(m *Msg) native.Msg {
	return native.Msg{
		Hwnd:    windows.Handle(m.HWND),
		Message: m.Message,
		Wparam:  m.WParam,
		Lparam:  m.LParam,
		Time:    m.Time,
		Pt:      native.Point{X: m.Pt.X, Y: m.Pt.Y},
	}
}

var balloonFlags = [...]uint32{
	BalloonNone:    native.NIIF_NONE,
	BalloonInfo:    native.NIIF_INFO,
	BalloonWarning: native.NIIF_WARNING,
	BalloonError:   native.NIIF_ERROR,
	BalloonUser:    native.NIIF_USER,
}

func notifyIconData(op NotifyOp, d *IconData) *native.NotifyIconData {
	nid := &native.NotifyIconData{
		Wnd:             windows.Handle(d.Window),
		ID:              uint32(d.ID),
		Flags:           native.NIF_MESSAGE | native.NIF_ICON | native.NIF_TIP | native.NIF_STATE | native.NIF_SHOWTIP,
		CallbackMessage: d.CallbackMessage,
		Icon:            windows.Handle(d.Icon),
		StateMask:       native.NIS_HIDDEN,
	}
	if d.Hidden {
		nid.State = native.NIS_HIDDEN
	}
	if d.GUID != nil {
		nid.Flags |= native.NIF_GUID
		nid.GuidItem = windows.GUID(*d.GUID)
	}
	if op == NotifySetVersion {
		nid.Version = native.NOTIFYICON_VERSION_4
	}
	putTruncated(nid.Tip[:], d.Tooltip)

	b := d.Balloon
	if b == nil {
		return nid
	}
	nid.Flags |= native.NIF_INFO
	if b.Hide {
		return nid
	}
	putTruncated(nid.InfoTitle[:], b.Title)
	if b.Text == "" {
		// An empty text hides the balloon.
		putTruncated(nid.Info[:], " ")
	} else {
		putTruncated(nid.Info[:], b.Text)
	}
	if int(b.Kind) >= 0 && int(b.Kind) < len(balloonFlags) {
		nid.InfoFlags = balloonFlags[b.Kind]
	}
	if b.Kind == BalloonUser && b.Icon != 0 {
		nid.BalloonIcon = windows.Handle(b.Icon)
	}
	if b.LargeIcon {
		nid.InfoFlags |= native.NIIF_LARGE_ICON
	}
	if b.RealtimeOnly {
		nid.Flags |= native.NIF_REALTIME
	}
	if !b.OverrideQuietTime {
		nid.InfoFlags |= native.NIIF_RESPECT_QUIET_TIME
	}
	if !b.Sound {
		nid.InfoFlags |= native.NIIF_NOSOUND
	}
	return nid
}

// putTruncated stores s NUL-terminated in dst, cutting it to fit without
// splitting a surrogate pair.
func putTruncated(dst []uint16, s string) {
	u := utf16.Encode([]rune(s))
	if n := len(dst) - 1; len(u) > n {
		u = u[:n]
		if last := u[n-1]; last >= 0xD800 && last < 0xDC00 {
			u = u[:n-1]
		}
	}
	dst[copy(dst, u)] = 0
}
