// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import (
	"fmt"

	"golang.org/x/xerrors"
)

// TrayEventKind classifies a tray icon callback.
type TrayEventKind int

const (
	// TrayOther is any event without a more specific kind.
	TrayOther TrayEventKind = iota
	// TrayActivated is a primary click, or Space or Enter on a focused
	// icon. Repeats within the double-click time are reported as TrayOther.
	TrayActivated
	// TrayContextMenu is a context menu request by mouse or keyboard. X
	// and Y are the anchor in screen coordinates.
	TrayContextMenu
)

func (k TrayEventKind) String() string {
	switch k {
	case TrayOther:
		return "Other"
	case TrayActivated:
		return "Activated"
	case TrayContextMenu:
		return "ContextMenu"
	}
	return fmt.Sprintf("TrayEventKind(%d)", int(k))
}

// TrayEvent is a decoded tray icon callback.
type TrayEvent struct {
	Kind TrayEventKind
	Icon IconID
	Msg  uint32 // NIN_*, WM_CONTEXTMENU, WM_MOUSEMOVE, ...
	X, Y int16
}

// decodeTrayMsg splits a NOTIFYICON_VERSION_4 callback into its parts.
func decodeTrayMsg(wParam, lParam uintptr) TrayEvent {
	return TrayEvent{
		Msg:  uint32(uint16(lParam)),
		Icon: IconID(uint16(lParam >> 16)),
		X:    int16(uint16(wParam)),
		Y:    int16(uint16(wParam >> 16)),
	}
}

func (a *App) trayCallback(wParam, lParam uintptr) {
	ev := decodeTrayMsg(wParam, lParam)
	ic := a.icons[ev.Icon]
	if ic == nil {
		a.report(xerrors.Errorf("win32app: tray event %#x for icon %d: %w", ev.Msg, ev.Icon, ErrUnknownIconID))
		return
	}

	switch ev.Msg {
	case NIN_SELECT, NIN_KEYSELECT:
		// Enter sends two NIN_KEYSELECTs that cannot be told from a
		// double click, so keys are debounced like the mouse.
		now := a.now()
		if ic.lastActivation.IsZero() || now.Sub(ic.lastActivation) > a.p.DoubleClickTime() {
			ic.lastActivation = now
			ev.Kind = TrayActivated
		}
	case WM_CONTEXTMENU:
		ev.Kind = TrayContextMenu
	}

	if ic.onEvent == nil {
		return
	}
	if err := ic.onEvent(ev); err != nil {
		a.report(xerrors.Errorf("win32app: tray icon %d %v: %w", ev.Icon, ev.Kind, err))
	}
}

// CommandKind is the source of a WM_COMMAND message.
type CommandKind int

const (
	// CommandMenuItem is a menu item, such as one picked from a popup
	// menu shown by TrackPopupMenu.
	CommandMenuItem CommandKind = iota
	// CommandAccelerator is a keyboard accelerator.
	CommandAccelerator
	// CommandControl is a notification from a child control.
	CommandControl
)

func (k CommandKind) String() string {
	switch k {
	case CommandMenuItem:
		return "MenuItem"
	case CommandAccelerator:
		return "Accelerator"
	case CommandControl:
		return "Control"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a decoded WM_COMMAND message.
type Command struct {
	Kind CommandKind
	ID   uint16
	// Notification and Control are set for CommandControl only.
	Notification uint16
	Control      HWND
}

// DecodeCommand decodes a WM_COMMAND message. The low word of wParam is
// the item, accelerator or control ID. A nonzero lParam is the control
// window and the high word of wParam its notification code; otherwise the
// high word is 1 for accelerators and 0 for menus.
func DecodeCommand(m Msg) Command {
	c := Command{ID: uint16(m.WParam)}
	code := uint16(m.WParam >> 16)
	switch {
	case m.LParam != 0:
		c.Kind = CommandControl
		c.Notification = code
		c.Control = HWND(m.LParam)
	case code == 1:
		c.Kind = CommandAccelerator
	default:
		c.Kind = CommandMenuItem
	}
	return c
}
