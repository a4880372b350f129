// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package native

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"golang.org/x/exp/winsafe/internal/syncutil"
	"golang.org/x/exp/winsafe/result"
)

var (
	moduser32  = windows.NewLazySystemDLL("user32.dll")
	modshell32 = windows.NewLazySystemDLL("shell32.dll")
	modgdi32   = windows.NewLazySystemDLL("gdi32.dll")

	procRegisterClassExW       = moduser32.NewProc("RegisterClassExW")
	procUnregisterClassW       = moduser32.NewProc("UnregisterClassW")
	procCreateWindowExW        = moduser32.NewProc("CreateWindowExW")
	procDestroyWindow          = moduser32.NewProc("DestroyWindow")
	procDefWindowProcW         = moduser32.NewProc("DefWindowProcW")
	procGetMessageW            = moduser32.NewProc("GetMessageW")
	procTranslateMessage       = moduser32.NewProc("TranslateMessage")
	procDispatchMessageW       = moduser32.NewProc("DispatchMessageW")
	procPostQuitMessage        = moduser32.NewProc("PostQuitMessage")
	procPostMessageW           = moduser32.NewProc("PostMessageW")
	procRegisterWindowMessageW = moduser32.NewProc("RegisterWindowMessageW")
	procGetDoubleClickTime     = moduser32.NewProc("GetDoubleClickTime")
	procLoadIconW              = moduser32.NewProc("LoadIconW")
	procLoadCursorW            = moduser32.NewProc("LoadCursorW")
	procDestroyIcon            = moduser32.NewProc("DestroyIcon")
	procDestroyMenu            = moduser32.NewProc("DestroyMenu")
	procCreatePopupMenu        = moduser32.NewProc("CreatePopupMenu")
	procAppendMenuW            = moduser32.NewProc("AppendMenuW")
	procTrackPopupMenuEx       = moduser32.NewProc("TrackPopupMenuEx")
	procSetForegroundWindow    = moduser32.NewProc("SetForegroundWindow")
	procShellNotifyIconW       = modshell32.NewProc("Shell_NotifyIconW")
	procShellNotifyIconGetRect = modshell32.NewProc("Shell_NotifyIconGetRect")
	procDeleteObject           = modgdi32.NewProc("DeleteObject")
	procDeleteDC               = modgdi32.NewProc("DeleteDC")
)

// Instance returns the handle of the executable's module.
var Instance = syncutil.Once(func() (windows.Handle, error) {
	var h windows.Handle
	err := windows.GetModuleHandleEx(0, nil, &h)
	return h, err
})

func RegisterClassEx(wc *WndClassEx) (atom uint16, err error) {
	wc.Size = uint32(unsafe.Sizeof(*wc))
	r, err := result.Nonzero(procRegisterClassExW, uintptr(unsafe.Pointer(wc)))
	return uint16(r), err
}

func UnregisterClass(className *uint16, instance windows.Handle) error {
	return result.Bool(procUnregisterClassW, uintptr(unsafe.Pointer(className)), uintptr(instance))
}

func CreateWindowEx(exstyle uint32, className, windowName *uint16, style uint32, x, y, w, h int32, parent, menu, instance windows.Handle, param uintptr) (windows.Handle, error) {
	r, err := result.Nonzero(procCreateWindowExW,
		uintptr(exstyle),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		uintptr(style),
		uintptr(x),
		uintptr(y),
		uintptr(w),
		uintptr(h),
		uintptr(parent),
		uintptr(menu),
		uintptr(instance),
		param,
	)
	if err == nil && r == 0 {
		// CreateWindowEx sets no last error when WM_NCCREATE or WM_CREATE
		// vetoes creation.
		err = result.ErrFail
	}
	return windows.Handle(r), err
}

func DestroyWindow(hwnd windows.Handle) error {
	return result.Bool(procDestroyWindow, uintptr(hwnd))
}

func DefWindowProc(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

// GetMessage reports false when it retrieved WM_QUIT.
func GetMessage(m *Msg, hwnd windows.Handle, filterMin, filterMax uint32) (bool, error) {
	r, err := result.Sentinel32(procGetMessageW, -1,
		uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(filterMin),
		uintptr(filterMax),
	)
	if err == nil && r == -1 {
		err = result.ErrFail
	}
	return err == nil && r != 0, err
}

func TranslateMessage(m *Msg) bool {
	r, _, _ := procTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
	return r != 0
}

func DispatchMessage(m *Msg) uintptr {
	r, _, _ := procDispatchMessageW.Call(uintptr(unsafe.Pointer(m)))
	return r
}

func PostQuitMessage(exitCode int32) {
	procPostQuitMessage.Call(uintptr(exitCode))
}

func PostMessage(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) error {
	return result.Bool(procPostMessageW, uintptr(hwnd), uintptr(msg), wparam, lparam)
}

func RegisterWindowMessage(name *uint16) (uint32, error) {
	r, err := result.Nonzero(procRegisterWindowMessageW, uintptr(unsafe.Pointer(name)))
	return uint32(r), err
}

func GetDoubleClickTime() uint32 {
	r, _, _ := procGetDoubleClickTime.Call()
	return uint32(r)
}

func LoadIcon(instance windows.Handle, resource uintptr) (windows.Handle, error) {
	r, err := result.Nonzero(procLoadIconW, uintptr(instance), resource)
	return windows.Handle(r), err
}

func LoadCursor(instance windows.Handle, resource uintptr) (windows.Handle, error) {
	r, err := result.Nonzero(procLoadCursorW, uintptr(instance), resource)
	return windows.Handle(r), err
}

func DestroyIcon(h windows.Handle) error {
	return result.Bool(procDestroyIcon, uintptr(h))
}

func DestroyMenu(h windows.Handle) error {
	return result.Bool(procDestroyMenu, uintptr(h))
}

func CreatePopupMenu() (windows.Handle, error) {
	r, err := result.Nonzero(procCreatePopupMenu)
	if err == nil && r == 0 {
		err = result.ErrFail
	}
	return windows.Handle(r), err
}

func AppendMenu(menu windows.Handle, flags uint32, id uintptr, text *uint16) error {
	return result.Bool(procAppendMenuW, uintptr(menu), uintptr(flags), id, uintptr(unsafe.Pointer(text)))
}

// TrackPopupMenuEx without TPM_RETURNCMD posts the chosen item as
// WM_COMMAND to hwnd. Dismissing the menu is not an error.
func TrackPopupMenuEx(menu windows.Handle, flags uint32, x, y int32, hwnd windows.Handle) error {
	return result.Bool(procTrackPopupMenuEx, uintptr(menu), uintptr(flags), uintptr(x), uintptr(y), uintptr(hwnd), 0)
}

// SetForegroundWindow reports whether hwnd was brought to the foreground.
// It does not set the last error.
func SetForegroundWindow(hwnd windows.Handle) bool {
	r, _, _ := procSetForegroundWindow.Call(uintptr(hwnd))
	return int32(uint32(r)) != 0
}

// ShellNotifyIcon does not set the last error.
func ShellNotifyIcon(msg uint32, nid *NotifyIconData) error {
	nid.Size = uint32(unsafe.Sizeof(*nid))
	_, err := result.CheckedOrFail(procShellNotifyIconW, result.NonzeroBool, uintptr(msg), uintptr(unsafe.Pointer(nid)))
	return err
}

// DeleteObject does not set the last error.
func DeleteObject(h windows.Handle) error {
	_, err := result.CheckedOrFail(procDeleteObject, result.NonzeroBool, uintptr(h))
	return err
}

// DeleteDC does not set the last error.
func DeleteDC(h windows.Handle) error {
	_, err := result.CheckedOrFail(procDeleteDC, result.NonzeroBool, uintptr(h))
	return err
}

// ShellNotifyIconGetRect returns the screen rectangle of a notification
// icon. It reports failure as an HRESULT.
func ShellNotifyIconGetRect(id *NotifyIconIdentifier) (Rect, error) {
	id.Size = uint32(unsafe.Sizeof(*id))
	var r Rect
	err := result.HRESULT(procShellNotifyIconGetRect, uintptr(unsafe.Pointer(id)), uintptr(unsafe.Pointer(&r)))
	return r, err
}
