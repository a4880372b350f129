// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package win32app

import (
	"strings"
	"testing"

	"golang.org/x/sys/windows"

	"golang.org/x/exp/winsafe/internal/native"
)

func TestPutTruncated(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want string
	}{
		{"", 4, ""},
		{"abc", 4, "abc"},
		{"abcd", 4, "abc"},
		{"ab\U0001F600", 4, "ab"}, // no half surrogate pair
		{"a\U0001F600", 4, "a\U0001F600"},
	}
	for _, tt := range tests {
		dst := make([]uint16, tt.size)
		for i := range dst {
			dst[i] = 'x'
		}
		putTruncated(dst, tt.in)
		if got := windows.UTF16ToString(dst); got != tt.want {
			t.Errorf("putTruncated(%q, %d) = %q, want %q", tt.in, tt.size, got, tt.want)
		}
	}
}

func TestNotifyIconData(t *testing.T) {
	d := &IconData{Window: 1, ID: 2, CallbackMessage: TrayCallbackMsg, Tooltip: strings.Repeat("t", 200), Hidden: true}
	nid := notifyIconData(NotifyModify, d)
	if nid.Flags&native.NIF_INFO != 0 {
		t.Error("NIF_INFO set without a balloon")
	}
	if nid.State != native.NIS_HIDDEN {
		t.Errorf("State = %#x, want NIS_HIDDEN", nid.State)
	}
	if got := len(windows.UTF16ToString(nid.Tip[:])); got != len(nid.Tip)-1 {
		t.Errorf("tooltip length = %d, want %d", got, len(nid.Tip)-1)
	}

	d.Balloon = &Balloon{Kind: BalloonError}
	nid = notifyIconData(NotifyModify, d)
	if got := windows.UTF16ToString(nid.Info[:]); got != " " {
		t.Errorf("empty balloon text = %q, want a space", got)
	}
	want := uint32(native.NIIF_ERROR | native.NIIF_RESPECT_QUIET_TIME | native.NIIF_NOSOUND)
	if nid.InfoFlags != want {
		t.Errorf("InfoFlags = %#x, want %#x", nid.InfoFlags, want)
	}

	if nid := notifyIconData(NotifySetVersion, d); nid.Version != native.NOTIFYICON_VERSION_4 {
		t.Errorf("Version = %d, want 4", nid.Version)
	}

	if nid.Flags&native.NIF_GUID != 0 {
		t.Error("NIF_GUID set without a GUID")
	}

	d.GUID = &GUID{Data1: 0x01020304, Data2: 5, Data3: 6, Data4: [8]byte{7, 8, 9}}
	nid = notifyIconData(NotifyAdd, d)
	if nid.Flags&native.NIF_GUID == 0 {
		t.Error("NIF_GUID not set for an icon with a GUID")
	}
	wantGUID := windows.GUID{Data1: 0x01020304, Data2: 5, Data3: 6, Data4: [8]byte{7, 8, 9}}
	if nid.GuidItem != wantGUID {
		t.Errorf("GuidItem = %v, want %v", nid.GuidItem, wantGUID)
	}
}
