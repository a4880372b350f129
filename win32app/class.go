// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32app

import "sync"

type classKey struct {
	p    Platform
	name string
}

var (
	classesMu sync.Mutex
	classes   = map[classKey]*windowClass{}
)

// windowClass is a registered window class shared by every App that uses
// its name on the same Platform.
type windowClass struct {
	key  classKey
	refs int

	// guarded by classesMu
	apps     map[HWND]*App
	creating map[uint32]*App // by thread id, while CreateWindow runs
}

// acquireClass registers the class on first use and adds a reference.
func acquireClass(p Platform, name string) (*windowClass, error) {
	classesMu.Lock()
	defer classesMu.Unlock()

	key := classKey{p, name}
	if c := classes[key]; c != nil {
		c.refs++
		return c, nil
	}
	c := &windowClass{
		key:      key,
		apps:     map[HWND]*App{},
		creating: map[uint32]*App{},
	}
	if err := p.RegisterClass(name, c.windowProc); err != nil {
		return nil, err
	}
	c.refs = 1
	classes[key] = c
	return c, nil
}

// release drops a reference and unregisters the class with the last one.
func (c *windowClass) release() error {
	classesMu.Lock()
	c.refs--
	last := c.refs == 0
	if last {
		delete(classes, c.key)
	}
	classesMu.Unlock()

	if !last {
		return nil
	}
	return c.key.p.UnregisterClass(c.key.name)
}

func (c *windowClass) beginCreate(tid uint32, a *App) {
	classesMu.Lock()
	c.creating[tid] = a
	classesMu.Unlock()
}

func (c *windowClass) endCreate(tid uint32) {
	classesMu.Lock()
	delete(c.creating, tid)
	classesMu.Unlock()
}

func (c *windowClass) bind(hwnd HWND, a *App) {
	classesMu.Lock()
	c.apps[hwnd] = a
	classesMu.Unlock()
}

func (c *windowClass) unbind(a *App) {
	classesMu.Lock()
	for hwnd, owner := range c.apps {
		if owner == a {
			delete(c.apps, hwnd)
		}
	}
	classesMu.Unlock()
}

func (c *windowClass) lookup(hwnd HWND) *App {
	classesMu.Lock()
	defer classesMu.Unlock()

	if a := c.apps[hwnd]; a != nil {
		return a
	}
	if a := c.creating[c.key.p.CurrentThreadID()]; a != nil {
		c.apps[hwnd] = a
		return a
	}
	return nil
}

// windowProc is the procedure registered with the class.
func (c *windowClass) windowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	a := c.lookup(hwnd)
	if a == nil {
		return c.key.p.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	r := a.windowProc(hwnd, msg, wParam, lParam)
	if msg == WM_NCDESTROY {
		classesMu.Lock()
		delete(c.apps, hwnd)
		classesMu.Unlock()
	}
	return r
}
