// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package win32apptest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"golang.org/x/exp/winsafe/result"
	"golang.org/x/exp/winsafe/win32app"
)

func TestWindowLifecycle(t *testing.T) {
	p := New()
	var msgs []uint32
	proc := func(hwnd win32app.HWND, msg uint32, w, l uintptr) uintptr {
		msgs = append(msgs, msg)
		return p.DefWindowProc(hwnd, msg, w, l)
	}
	if err := p.RegisterClass("c", proc); err != nil {
		t.Fatal(err)
	}
	if err := p.RegisterClass("c", proc); !errors.Is(err, result.ErrorClassAlreadyExists) {
		t.Errorf("second RegisterClass = %v, want ErrorClassAlreadyExists", err)
	}
	hwnd, err := p.CreateWindow("c", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.UnregisterClass("c"); !errors.Is(err, result.ErrorClassHasWindows) {
		t.Errorf("UnregisterClass with a window = %v, want ErrorClassHasWindows", err)
	}
	p.Send(hwnd, win32app.WM_CLOSE, 0, 0)
	if err := p.DestroyWindow(hwnd); !errors.Is(err, result.ErrorInvalidWindowHandle) {
		t.Errorf("DestroyWindow after WM_CLOSE = %v, want ErrorInvalidWindowHandle", err)
	}
	if err := p.UnregisterClass("c"); err != nil {
		t.Fatal(err)
	}

	want := []uint32{win32app.WM_NCCREATE, win32app.WM_CREATE, win32app.WM_CLOSE, win32app.WM_DESTROY, win32app.WM_NCDESTROY}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}

func TestNotifyIcon(t *testing.T) {
	p := New()
	p.RegisterClass("c", p.DefWindowProc)
	hwnd, err := p.CreateWindow("c", "", false)
	if err != nil {
		t.Fatal(err)
	}
	d := &win32app.IconData{Window: hwnd, ID: 1, Tooltip: "a"}

	steps := []struct {
		op      win32app.NotifyOp
		wantErr bool
	}{
		{win32app.NotifyModify, true},
		{win32app.NotifyAdd, false},
		{win32app.NotifyAdd, true},
		{win32app.NotifySetVersion, false},
		{win32app.NotifyModify, false},
		{win32app.NotifyDelete, false},
		{win32app.NotifyDelete, true},
	}
	for i, s := range steps {
		err := p.NotifyIcon(s.op, d)
		if (err != nil) != s.wantErr {
			t.Errorf("step %d %v: err = %v, want error %t", i, s.op, err, s.wantErr)
		}
	}
	if got := p.Icons(hwnd); len(got) != 0 {
		t.Errorf("icons = %v, want none", got)
	}
}

func TestFailNext(t *testing.T) {
	p := New()
	boom := errors.New("boom")
	p.FailNext("RegisterWindowMessage", boom)

	if _, err := p.RegisterWindowMessage("x"); err != boom {
		t.Errorf("first call = %v, want boom", err)
	}
	m1, err := p.RegisterWindowMessage("x")
	if err != nil {
		t.Fatal(err)
	}
	m2, _ := p.RegisterWindowMessage("x")
	if m1 != m2 || m1 < firstRegisteredMsg {
		t.Errorf("message ids %#x, %#x; want equal and >= %#x", m1, m2, firstRegisteredMsg)
	}
	want := []string{"RegisterWindowMessage", "RegisterWindowMessage", "RegisterWindowMessage"}
	if diff := cmp.Diff(want, p.Calls()); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestQueueOrder(t *testing.T) {
	p := New()
	p.PostMessage(0, win32app.WM_APP, 1, 0)
	p.PostQuitMessage(4)
	p.PostMessage(0, win32app.WM_APP, 2, 0)

	var m win32app.Msg
	var got []uintptr
	for range 3 {
		ok, err := p.GetMessage(&m)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			got = append(got, 100+m.WParam)
			continue
		}
		got = append(got, m.WParam)
	}
	if diff := cmp.Diff([]uintptr{1, 104, 2}, got); diff != "" {
		t.Errorf("retrieved (-want +got):\n%s", diff)
	}
}

func TestNotifyIconGUID(t *testing.T) {
	p := New()
	p.RegisterClass("c", p.DefWindowProc)
	hwnd, err := p.CreateWindow("c", "", false)
	if err != nil {
		t.Fatal(err)
	}
	guid := &win32app.GUID{Data1: 0x12345678, Data4: [8]byte{1, 2, 3}}
	if err := p.NotifyIcon(win32app.NotifyAdd, &win32app.IconData{Window: hwnd, ID: 1, GUID: guid}); err != nil {
		t.Fatal(err)
	}
	if err := p.NotifyIcon(win32app.NotifyAdd, &win32app.IconData{Window: hwnd, ID: 2, GUID: guid}); err == nil {
		t.Error("second icon with the same GUID was added")
	}
	p.SetIconRect(hwnd, 1, win32app.Rect{Left: 10, Top: 20, Right: 26, Bottom: 36})

	tests := []struct {
		name    string
		id      win32app.IconID
		guid    *win32app.GUID
		want    win32app.Rect
		wantErr bool
	}{
		{"by id", 1, nil, win32app.Rect{Left: 10, Top: 20, Right: 26, Bottom: 36}, false},
		{"by GUID", 0, guid, win32app.Rect{Left: 10, Top: 20, Right: 26, Bottom: 36}, false},
		{"unknown id", 2, nil, win32app.Rect{}, true},
		{"unknown GUID", 1, &win32app.GUID{Data1: 1}, win32app.Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.NotifyIconRect(hwnd, tt.id, tt.guid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NotifyIconRect err = %v, want error %t", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NotifyIconRect (-want +got):\n%s", diff)
			}
		})
	}

	// The shell keeps its own copy of the GUID.
	guid.Data1 = 0
	ic, _ := p.Icon(hwnd, 1)
	if ic.GUID == nil || ic.GUID.Data1 != 0x12345678 {
		t.Errorf("stored GUID = %+v, want Data1 0x12345678", ic.GUID)
	}
}

func TestTakePending(t *testing.T) {
	p := New()
	p.PostMessage(0, win32app.WM_APP, 1, 0)
	p.PostMessage(0, win32app.WM_APP, 2, 0)

	want := []win32app.Msg{
		{Message: win32app.WM_APP, WParam: 1},
		{Message: win32app.WM_APP, WParam: 2},
	}
	if diff := cmp.Diff(want, p.TakePending()); diff != "" {
		t.Errorf("TakePending (-want +got):\n%s", diff)
	}
	if got := p.TakePending(); len(got) != 0 {
		t.Errorf("second TakePending = %v, want none", got)
	}
}

func TestClose(t *testing.T) {
	p := New()
	p.PostMessage(0, win32app.WM_APP, 1, 0)
	p.Close(7)
	p.PostMessage(0, win32app.WM_APP, 2, 0)

	var m win32app.Msg
	var got []uintptr
	for range 3 {
		ok, err := p.GetMessage(&m)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			got = append(got, 100+m.WParam)
			continue
		}
		got = append(got, m.WParam)
	}
	// The pending message is discarded; later ones come before the
	// repeated WM_QUIT.
	if diff := cmp.Diff([]uintptr{107, 2, 100}, got); diff != "" {
		t.Errorf("retrieved (-want +got):\n%s", diff)
	}
}

func TestCloseWakesGetMessage(t *testing.T) {
	p := New()
	done := make(chan win32app.Msg)
	go func() {
		var m win32app.Msg
		p.GetMessage(&m)
		done <- m
	}()
	p.Close(3)
	if m := <-done; m.Message != win32app.WM_QUIT || m.WParam != 3 {
		t.Errorf("GetMessage = %+v, want WM_QUIT with code 3", m)
	}
}
