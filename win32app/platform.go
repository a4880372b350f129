// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import (
	"fmt"
	"time"
)

// HWND is a window handle.
type HWND uintptr

// Point is a position in screen or client coordinates.
type Point struct {
	X int32
	Y int32
}

// Rect is a screen rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// GUID identifies a tray icon across restarts of the program. It has the
// layout of the Windows GUID structure.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// Msg is a queued window message.
type Msg struct {
	HWND    HWND
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

// WindowProc is a window procedure.
type WindowProc func(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

// Window messages used by this package.
const (
	WM_CREATE      = 0x0001
	WM_DESTROY     = 0x0002
	WM_CLOSE       = 0x0010
	WM_QUIT        = 0x0012
	WM_CONTEXTMENU = 0x007B
	WM_NCCREATE    = 0x0081
	WM_NCDESTROY   = 0x0082
	WM_COMMAND     = 0x0111
	WM_TIMER       = 0x0113
	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONUP   = 0x0205
	WM_USER        = 0x0400
	WM_APP         = 0x8000
)

// Tray icon events delivered in LOWORD(lParam) of TrayCallbackMsg.
const (
	NIN_SELECT           = WM_USER + 0
	NINF_KEY             = 0x1
	NIN_KEYSELECT        = NIN_SELECT | NINF_KEY
	NIN_BALLOONSHOW      = WM_USER + 2
	NIN_BALLOONHIDE      = WM_USER + 3
	NIN_BALLOONTIMEOUT   = WM_USER + 4
	NIN_BALLOONUSERCLICK = WM_USER + 5
	NIN_POPUPOPEN        = WM_USER + 6
	NIN_POPUPCLOSE       = WM_USER + 7
)

const (
	// TrayCallbackMsg is the message the shell sends for tray icon events.
	TrayCallbackMsg = WM_APP + 1

	firstPrivateMsg = WM_APP + 2
	lastPrivateMsg  = 0xBFFF
)

// NotifyOp is a Shell_NotifyIcon command.
type NotifyOp uint32

const (
	NotifyAdd NotifyOp = iota
	NotifyModify
	NotifyDelete
	NotifySetFocus
	NotifySetVersion
)

var notifyOpNames = [...]string{
	NotifyAdd:        "NIM_ADD",
	NotifyModify:     "NIM_MODIFY",
	NotifyDelete:     "NIM_DELETE",
	NotifySetFocus:   "NIM_SETFOCUS",
	NotifySetVersion: "NIM_SETVERSION",
}

func (op NotifyOp) String() string {
	if int(op) < len(notifyOpNames) {
		return notifyOpNames[op]
	}
	return fmt.Sprintf("NotifyOp(%d)", uint32(op))
}

// IconData is the state of one tray icon as passed to the shell.
type IconData struct {
	Window          HWND
	ID              IconID
	CallbackMessage uint32
	Icon            uintptr // HICON
	Tooltip         string
	Hidden          bool
	// GUID, if non-nil, identifies the icon to the shell instead of
	// Window and ID.
	GUID *GUID
	// Balloon, if non-nil, shows a notification with this modification.
	Balloon *Balloon
}

// BalloonKind selects the icon of a balloon notification.
type BalloonKind int

const (
	BalloonNone BalloonKind = iota
	BalloonInfo
	BalloonWarning
	BalloonError
	// BalloonUser shows Balloon.Icon, or the tray icon if that is zero.
	BalloonUser
)

// Balloon is a notification shown next to a tray icon. Long texts are
// truncated by the platform.
type Balloon struct {
	Title string
	Text  string
	Kind  BalloonKind
	Icon  uintptr // HICON for BalloonUser

	LargeIcon         bool
	RealtimeOnly      bool // drop instead of queueing when it cannot be shown now
	OverrideQuietTime bool
	Sound             bool

	// Hide removes the notification currently shown instead.
	Hide bool
}

// Platform is the native call surface an App drives. Native returns the
// Windows implementation; package win32apptest has an in-memory model.
//
// Implementations must be comparable; Apps share class registrations per
// Platform value.
type Platform interface {
	CurrentThreadID() uint32

	RegisterClass(name string, proc WindowProc) error
	UnregisterClass(name string) error
	// CreateWindow creates an invisible window. It calls the class's
	// window procedure synchronously for the creation messages.
	CreateWindow(class, title string, messageOnly bool) (HWND, error)
	// DestroyWindow calls the window procedure with WM_DESTROY and
	// WM_NCDESTROY before returning.
	DestroyWindow(hwnd HWND) error
	DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

	// GetMessage blocks until a message is available. It reports false
	// when the message is WM_QUIT.
	GetMessage(m *Msg) (bool, error)
	TranslateMessage(m *Msg)
	DispatchMessage(m *Msg) uintptr
	PostQuitMessage(exitCode int32)
	// PostMessage may be called from any thread.
	PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error
	RegisterWindowMessage(name string) (uint32, error)

	NotifyIcon(op NotifyOp, d *IconData) error
	// NotifyIconRect returns the screen rectangle of an icon, named by
	// guid if it is non-nil and by hwnd and id otherwise.
	NotifyIconRect(hwnd HWND, id IconID, guid *GUID) (Rect, error)
	DoubleClickTime() time.Duration
}
