// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package win32apptest provides an in-memory win32app.Platform.
//
// The model keeps one message queue, as if every App ran on the same
// thread, plus tables of window classes, windows and tray icons that tests
// can inspect after an App has shut down.
package win32apptest

import (
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/winsafe/internal/queue"
	"golang.org/x/exp/winsafe/result"
	"golang.org/x/exp/winsafe/win32app"
)

// firstRegisteredMsg is where RegisterWindowMessage ids start.
const firstRegisteredMsg = 0xC000

type window struct {
	class       string
	title       string
	messageOnly bool
	proc        win32app.WindowProc
	destroying  bool
}

type iconKey struct {
	hwnd win32app.HWND
	id   win32app.IconID
}

// Icon is the shell's view of one tray icon.
type Icon struct {
	win32app.IconData
	Version bool // NIM_SETVERSION was called
	Focused int  // number of NIM_SETFOCUS calls
}

// Platform is a fake win32app.Platform. The zero value is not usable;
// call New.
type Platform struct {
	queue *queue.Queue[win32app.Msg]

	mu         sync.Mutex
	tid        uint32
	dblClick   time.Duration
	classes    map[string]win32app.WindowProc
	windows    map[win32app.HWND]*window
	nextHWND   win32app.HWND
	icons      map[iconKey]*Icon
	rects      map[iconKey]win32app.Rect
	registered map[string]uint32
	failures   map[string][]error
	calls      []string
	closed     bool
}

// New returns an empty platform whose current thread id is 1.
func New() *Platform {
	return &Platform{
		queue:      queue.New[win32app.Msg](),
		tid:        1,
		dblClick:   500 * time.Millisecond,
		classes:    map[string]win32app.WindowProc{},
		windows:    map[win32app.HWND]*window{},
		nextHWND:   0x10000,
		icons:      map[iconKey]*Icon{},
		rects:      map[iconKey]win32app.Rect{},
		registered: map[string]uint32{},
		failures:   map[string][]error{},
	}
}

// SetThreadID changes the id reported by CurrentThreadID.
func (p *Platform) SetThreadID(tid uint32) {
	p.mu.Lock()
	p.tid = tid
	p.mu.Unlock()
}

// SetDoubleClickTime changes the value reported by DoubleClickTime.
func (p *Platform) SetDoubleClickTime(d time.Duration) {
	p.mu.Lock()
	p.dblClick = d
	p.mu.Unlock()
}

// FailNext makes the next call of op fail with err. op is a Platform
// method name, or "NotifyIcon:" followed by the operation, for example
// "NotifyIcon:NIM_SETVERSION". Failures queue up per op.
func (p *Platform) FailNext(op string, err error) {
	p.mu.Lock()
	p.failures[op] = append(p.failures[op], err)
	p.mu.Unlock()
}

// record logs op and returns the failure queued for it, if any. p.mu must
// be held.
func (p *Platform) record(op string) error {
	p.calls = append(p.calls, op)
	errs := p.failures[op]
	if len(errs) == 0 {
		return nil
	}
	p.failures[op] = errs[1:]
	return errs[0]
}

// Calls returns the operations called so far, in order.
func (p *Platform) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// Classes returns the registered window class names, sorted.
func (p *Platform) Classes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var names []string
	for name := range p.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Windows returns the live window handles, sorted.
func (p *Platform) Windows() []win32app.HWND {
	p.mu.Lock()
	defer p.mu.Unlock()
	var hwnds []win32app.HWND
	for hwnd := range p.windows {
		hwnds = append(hwnds, hwnd)
	}
	slices.Sort(hwnds)
	return hwnds
}

// Icons returns the ids of the tray icons owned by hwnd, sorted. Icons
// outlive their window, as they do in a real notification area.
func (p *Platform) Icons(hwnd win32app.HWND) []win32app.IconID {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ids []win32app.IconID
	for k := range p.icons {
		if k.hwnd == hwnd {
			ids = append(ids, k.id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Icon returns the shell's copy of a tray icon.
func (p *Platform) Icon(hwnd win32app.HWND, id win32app.IconID) (Icon, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ic, ok := p.icons[iconKey{hwnd, id}]
	if !ok {
		return Icon{}, false
	}
	return *ic, true
}

// SetIconRect sets the rectangle NotifyIconRect reports for icon id of
// hwnd.
func (p *Platform) SetIconRect(hwnd win32app.HWND, id win32app.IconID, r win32app.Rect) {
	p.mu.Lock()
	p.rects[iconKey{hwnd, id}] = r
	p.mu.Unlock()
}

// Pending returns the number of queued messages.
func (p *Platform) Pending() int { return p.queue.Len() }

// TakePending removes the queued messages and returns them in order.
func (p *Platform) TakePending() []win32app.Msg {
	var msgs []win32app.Msg
	for {
		m, ok := p.queue.TryNext()
		if !ok {
			return msgs
		}
		msgs = append(msgs, m)
	}
}

// Close discards the queued messages and makes GetMessage return WM_QUIT
// with exitCode, including a call that is blocked. Messages posted later
// follow it, and a drained queue then yields WM_QUIT with code zero.
func (p *Platform) Close(exitCode int32) {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.queue.Release(win32app.Msg{Message: win32app.WM_QUIT, WParam: uintptr(exitCode)})
}

// Send calls the window procedure of hwnd synchronously, like SendMessage.
func (p *Platform) Send(hwnd win32app.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	p.mu.Lock()
	w := p.windows[hwnd]
	p.mu.Unlock()
	if w == nil {
		return 0
	}
	return w.proc(hwnd, msg, wParam, lParam)
}

// PostIconEvent queues a NOTIFYICON_VERSION_4 callback for icon id of
// hwnd. event is NIN_SELECT, WM_CONTEXTMENU and the like.
func (p *Platform) PostIconEvent(hwnd win32app.HWND, id win32app.IconID, event uint32, x, y int16) {
	p.queue.Send(win32app.Msg{
		HWND:    hwnd,
		Message: win32app.TrayCallbackMsg,
		WParam:  uintptr(uint16(x)) | uintptr(uint16(y))<<16,
		LParam:  uintptr(uint16(event)) | uintptr(id)<<16,
	})
}

// RestartShell drops every tray icon and broadcasts TaskbarCreated to the
// windows that can receive broadcasts.
func (p *Platform) RestartShell() {
	p.mu.Lock()
	clear(p.icons)
	msg, ok := p.registered["TaskbarCreated"]
	var targets []win32app.HWND
	if ok {
		for hwnd, w := range p.windows {
			if !w.messageOnly {
				targets = append(targets, hwnd)
			}
		}
	}
	p.mu.Unlock()

	slices.Sort(targets)
	for _, hwnd := range targets {
		p.queue.Send(win32app.Msg{HWND: hwnd, Message: msg})
	}
}

func (p *Platform) CurrentThreadID() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tid
}

func (p *Platform) RegisterClass(name string, proc win32app.WindowProc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RegisterClass"); err != nil {
		return err
	}
	if _, ok := p.classes[name]; ok {
		return result.ErrorClassAlreadyExists
	}
	p.classes[name] = proc
	return nil
}

func (p *Platform) UnregisterClass(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("UnregisterClass"); err != nil {
		return err
	}
	if _, ok := p.classes[name]; !ok {
		return result.ErrorClassDoesNotExist
	}
	for _, w := range p.windows {
		if w.class == name {
			return result.ErrorClassHasWindows
		}
	}
	delete(p.classes, name)
	return nil
}

// CreateWindow sends WM_NCCREATE and WM_CREATE. A zero result from the
// first or -1 from the second aborts creation.
func (p *Platform) CreateWindow(class, title string, messageOnly bool) (win32app.HWND, error) {
	p.mu.Lock()
	if err := p.record("CreateWindow"); err != nil {
		p.mu.Unlock()
		return 0, err
	}
	proc := p.classes[class]
	if proc == nil {
		p.mu.Unlock()
		return 0, result.ErrorClassDoesNotExist
	}
	p.nextHWND += 2
	hwnd := p.nextHWND
	p.windows[hwnd] = &window{class: class, title: title, messageOnly: messageOnly, proc: proc}
	p.mu.Unlock()

	if proc(hwnd, win32app.WM_NCCREATE, 0, 0) == 0 {
		p.mu.Lock()
		delete(p.windows, hwnd)
		p.mu.Unlock()
		return 0, result.ErrFail
	}
	if int32(proc(hwnd, win32app.WM_CREATE, 0, 0)) == -1 {
		p.destroy(hwnd)
		return 0, result.ErrFail
	}
	return hwnd, nil
}

func (p *Platform) DestroyWindow(hwnd win32app.HWND) error {
	p.mu.Lock()
	err := p.record("DestroyWindow")
	p.mu.Unlock()
	if err != nil {
		return err
	}
	if !p.destroy(hwnd) {
		return result.ErrorInvalidWindowHandle
	}
	return nil
}

func (p *Platform) destroy(hwnd win32app.HWND) bool {
	p.mu.Lock()
	w := p.windows[hwnd]
	if w == nil || w.destroying {
		p.mu.Unlock()
		return false
	}
	w.destroying = true
	p.mu.Unlock()

	w.proc(hwnd, win32app.WM_DESTROY, 0, 0)
	w.proc(hwnd, win32app.WM_NCDESTROY, 0, 0)

	p.mu.Lock()
	delete(p.windows, hwnd)
	p.mu.Unlock()
	return true
}

// DefWindowProc destroys the window on WM_CLOSE and accepts WM_NCCREATE.
func (p *Platform) DefWindowProc(hwnd win32app.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win32app.WM_NCCREATE:
		return 1
	case win32app.WM_CLOSE:
		p.destroy(hwnd)
	}
	return 0
}

// GetMessage blocks until a message is queued. Quit messages are queued
// like any other, so they are retrieved in posting order.
func (p *Platform) GetMessage(m *win32app.Msg) (bool, error) {
	p.mu.Lock()
	err := p.record("GetMessage")
	p.mu.Unlock()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if !closed {
		*m = p.queue.Next()
		return m.Message != win32app.WM_QUIT, nil
	}
	// Once closed, the queue panics rather than block when drained.
	v, ok := p.queue.TryNext()
	if !ok {
		v = win32app.Msg{Message: win32app.WM_QUIT}
	}
	*m = v
	return m.Message != win32app.WM_QUIT, nil
}

func (p *Platform) TranslateMessage(m *win32app.Msg) {}

func (p *Platform) DispatchMessage(m *win32app.Msg) uintptr {
	if m.HWND == 0 {
		return 0
	}
	return p.Send(m.HWND, m.Message, m.WParam, m.LParam)
}

func (p *Platform) PostQuitMessage(exitCode int32) {
	p.queue.Send(win32app.Msg{Message: win32app.WM_QUIT, WParam: uintptr(exitCode)})
}

// PostMessage may be called from any goroutine.
func (p *Platform) PostMessage(hwnd win32app.HWND, msg uint32, wParam, lParam uintptr) error {
	p.mu.Lock()
	err := p.record("PostMessage")
	if err == nil && hwnd != 0 && p.windows[hwnd] == nil {
		err = result.ErrorInvalidWindowHandle
	}
	p.mu.Unlock()
	if err != nil {
		return err
	}
	p.queue.Send(win32app.Msg{HWND: hwnd, Message: msg, WParam: wParam, LParam: lParam})
	return nil
}

func (p *Platform) RegisterWindowMessage(name string) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("RegisterWindowMessage"); err != nil {
		return 0, err
	}
	if msg, ok := p.registered[name]; ok {
		return msg, nil
	}
	msg := uint32(firstRegisteredMsg + len(p.registered))
	p.registered[name] = msg
	return msg, nil
}

// NotifyIcon models Shell_NotifyIcon, which reports failure without an
// error code.
func (p *Platform) NotifyIcon(op win32app.NotifyOp, d *win32app.IconData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("NotifyIcon:" + op.String()); err != nil {
		return err
	}
	key := iconKey{d.Window, d.ID}
	ic := p.icons[key]
	switch op {
	case win32app.NotifyAdd:
		if ic != nil || p.windows[d.Window] == nil || p.guidInUse(d.GUID) {
			return result.ErrFail
		}
		p.icons[key] = &Icon{IconData: copyData(d)}
		return nil
	case win32app.NotifyModify, win32app.NotifyDelete, win32app.NotifySetVersion, win32app.NotifySetFocus:
		if ic == nil {
			return result.ErrFail
		}
	default:
		return result.ErrFail
	}
	switch op {
	case win32app.NotifyModify:
		ic.IconData = copyData(d)
	case win32app.NotifyDelete:
		delete(p.icons, key)
	case win32app.NotifySetVersion:
		ic.Version = true
	case win32app.NotifySetFocus:
		ic.Focused++
	}
	return nil
}

// guidInUse reports whether a live icon already has guid. p.mu must be
// held.
func (p *Platform) guidInUse(guid *win32app.GUID) bool {
	if guid == nil {
		return false
	}
	for _, ic := range p.icons {
		if ic.GUID != nil && *ic.GUID == *guid {
			return true
		}
	}
	return false
}

// NotifyIconRect models Shell_NotifyIconGetRect. A GUID takes precedence
// over hwnd and id. Rectangles default to zero; see SetIconRect.
func (p *Platform) NotifyIconRect(hwnd win32app.HWND, id win32app.IconID, guid *win32app.GUID) (win32app.Rect, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("NotifyIconRect"); err != nil {
		return win32app.Rect{}, err
	}
	key := iconKey{hwnd, id}
	if guid != nil {
		found := false
		for k, ic := range p.icons {
			if ic.GUID != nil && *ic.GUID == *guid {
				key, found = k, true
				break
			}
		}
		if !found {
			return win32app.Rect{}, result.ErrFail
		}
	}
	if p.icons[key] == nil {
		return win32app.Rect{}, result.ErrFail
	}
	return p.rects[key], nil
}

func copyData(d *win32app.IconData) win32app.IconData {
	c := *d
	if d.GUID != nil {
		g := *d.GUID
		c.GUID = &g
	}
	if d.Balloon != nil {
		b := *d.Balloon
		c.Balloon = &b
	}
	return c
}

func (p *Platform) DoubleClickTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dblClick
}
