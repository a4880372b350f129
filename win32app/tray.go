// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import (
	"sort"
	"time"

	"golang.org/x/xerrors"
)

// IconID identifies a tray icon within its App. Zero is never used.
type IconID uint16

// IconState is the visible state of a tray icon.
type IconState struct {
	Icon    uintptr // HICON; zero shows no image
	Tooltip string
	Hidden  bool
}

// IconOptions configure a new tray icon.
type IconOptions struct {
	IconState

	// GUID, if non-nil, identifies the icon to the shell. Windows ties a
	// GUID to the path of the executable that first registered it.
	GUID *GUID

	// OnEvent receives the icon's callbacks on the loop thread. An error
	// is reported to Options.OnError.
	OnEvent func(TrayEvent) error
}

// A TrayIcon is an icon in the notification area owned by an App.
type TrayIcon struct {
	app     *App
	id      IconID
	state   IconState
	guid    *GUID
	onEvent func(TrayEvent) error

	lastActivation time.Time
}

func (ic *TrayIcon) data() *IconData {
	return &IconData{
		Window:          ic.app.hwnd,
		ID:              ic.id,
		CallbackMessage: TrayCallbackMsg,
		Icon:            ic.state.Icon,
		Tooltip:         ic.state.Tooltip,
		Hidden:          ic.state.Hidden,
		GUID:            ic.guid,
	}
}

func (ic *TrayIcon) notify(op NotifyOp, d *IconData) error {
	if err := ic.app.p.NotifyIcon(op, d); err != nil {
		return xerrors.Errorf("win32app: %v icon %d: %w", op, ic.id, err)
	}
	return nil
}

// add puts the icon in the tray and switches it to version 4 callbacks.
func (ic *TrayIcon) add() error {
	if err := ic.notify(NotifyAdd, ic.data()); err != nil {
		return err
	}
	if err := ic.notify(NotifySetVersion, ic.data()); err != nil {
		if derr := ic.notify(NotifyDelete, ic.data()); derr != nil {
			ic.app.log.Error(derr, "rollback failed")
		}
		return err
	}
	return nil
}

// AddIcon adds a tray icon with the next unused id.
func (a *App) AddIcon(opts IconOptions) (*TrayIcon, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	id, err := a.allocIconID()
	if err != nil {
		return nil, err
	}
	ic := &TrayIcon{app: a, id: id, state: opts.IconState, onEvent: opts.OnEvent}
	if opts.GUID != nil {
		g := *opts.GUID
		ic.guid = &g
	}
	if err := ic.add(); err != nil {
		return nil, err
	}
	a.icons[id] = ic
	a.nextIcon = id + 1
	a.log.V(1).Info("icon added", "id", id)
	return ic, nil
}

func (a *App) allocIconID() (IconID, error) {
	id := a.nextIcon
	for range 0xFFFF {
		if id == 0 {
			id = 1
		}
		if a.icons[id] == nil {
			return id, nil
		}
		id++
	}
	return 0, ErrNoIconIDs
}

// UpdateIcon replaces the state of icon id.
func (a *App) UpdateIcon(id IconID, st IconState) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	ic := a.icons[id]
	if ic == nil {
		return xerrors.Errorf("win32app: update icon %d: %w", id, ErrUnknownIconID)
	}
	old := ic.state
	ic.state = st
	if err := ic.notify(NotifyModify, ic.data()); err != nil {
		ic.state = old
		return err
	}
	return nil
}

// RemoveIcon removes icon id from the tray. Removing an id that is not
// present succeeds and does nothing. The icon is forgotten even when the
// shell reports a failure.
func (a *App) RemoveIcon(id IconID) error {
	if err := a.check(); err != nil {
		return err
	}
	ic := a.icons[id]
	if ic == nil {
		return nil
	}
	return a.removeIcon(ic)
}

func (a *App) removeIcon(ic *TrayIcon) error {
	delete(a.icons, ic.id)
	a.log.V(1).Info("icon removed", "id", ic.id)
	return ic.notify(NotifyDelete, ic.data())
}

func (a *App) removeAllIcons() {
	for _, id := range a.iconIDs() {
		if err := a.removeIcon(a.icons[id]); err != nil {
			a.report(err)
		}
	}
}

// restoreIcons adds every icon again after the shell was restarted.
func (a *App) restoreIcons() {
	a.log.Info("taskbar recreated, restoring icons", "count", len(a.icons))
	for _, id := range a.iconIDs() {
		if err := a.icons[id].add(); err != nil {
			a.report(err)
		}
	}
}

// Icon returns the live icon with id, or nil.
func (a *App) Icon(id IconID) *TrayIcon { return a.icons[id] }

// Icons returns the ids of all live icons in increasing order.
func (a *App) Icons() []IconID { return a.iconIDs() }

func (a *App) iconIDs() []IconID {
	ids := make([]IconID, 0, len(a.icons))
	for id := range a.icons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ShowBalloon shows a notification next to icon id.
func (a *App) ShowBalloon(id IconID, b Balloon) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	ic := a.icons[id]
	if ic == nil {
		return xerrors.Errorf("win32app: balloon for icon %d: %w", id, ErrUnknownIconID)
	}
	d := ic.data()
	d.Balloon = &b
	return ic.notify(NotifyModify, d)
}

// HideBalloon removes the notification shown for icon id, if any.
func (a *App) HideBalloon(id IconID) error {
	return a.ShowBalloon(id, Balloon{Hide: true})
}

// Focus returns keyboard focus to the tray after a context menu on icon id
// was dismissed with the keyboard.
func (a *App) Focus(id IconID) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	ic := a.icons[id]
	if ic == nil {
		return xerrors.Errorf("win32app: focus icon %d: %w", id, ErrUnknownIconID)
	}
	return ic.notify(NotifySetFocus, ic.data())
}

// IconRect returns the screen rectangle of icon id, for example to anchor
// a popup next to it.
func (a *App) IconRect(id IconID) (Rect, error) {
	if err := a.checkLive(); err != nil {
		return Rect{}, err
	}
	ic := a.icons[id]
	if ic == nil {
		return Rect{}, xerrors.Errorf("win32app: rect of icon %d: %w", id, ErrUnknownIconID)
	}
	r, err := a.p.NotifyIconRect(a.hwnd, id, ic.guid)
	if err != nil {
		return Rect{}, xerrors.Errorf("win32app: rect of icon %d: %w", id, err)
	}
	return r, nil
}

// ID returns the icon's id within its App.
func (ic *TrayIcon) ID() IconID { return ic.id }

// State returns the state last accepted by the shell.
func (ic *TrayIcon) State() IconState { return ic.state }

// Rect returns the icon's screen rectangle.
func (ic *TrayIcon) Rect() (Rect, error) { return ic.app.IconRect(ic.id) }

// Removed reports whether the icon is no longer owned by its App.
func (ic *TrayIcon) Removed() bool { return ic.app.icons[ic.id] != ic }

// SetTooltip replaces the tooltip. Long tooltips are truncated.
func (ic *TrayIcon) SetTooltip(s string) error {
	st := ic.state
	st.Tooltip = s
	return ic.app.UpdateIcon(ic.id, st)
}

// SetIcon replaces the image with HICON h. The caller keeps ownership of h.
func (ic *TrayIcon) SetIcon(h uintptr) error {
	st := ic.state
	st.Icon = h
	return ic.app.UpdateIcon(ic.id, st)
}

// Show hides or shows the icon without removing it.
func (ic *TrayIcon) Show(visible bool) error {
	st := ic.state
	st.Hidden = !visible
	return ic.app.UpdateIcon(ic.id, st)
}

// ShowBalloon shows a notification next to the icon.
func (ic *TrayIcon) ShowBalloon(b Balloon) error { return ic.app.ShowBalloon(ic.id, b) }

// Remove removes the icon from the tray. Removing it twice succeeds.
func (ic *TrayIcon) Remove() error {
	if ic.Removed() {
		return nil
	}
	return ic.app.RemoveIcon(ic.id)
}
