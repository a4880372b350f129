// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package guard

import (
	"golang.org/x/sys/windows"

	"golang.org/x/exp/winsafe/internal/native"
)

// CloseHandle guards a kernel object handle released with CloseHandle.
func CloseHandle(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, windows.CloseHandle, opts...)
}

// LocalFree guards memory the system allocated for the caller and documents
// to be freed with LocalFree (FormatMessage, ConvertSidToStringSid).
func LocalFree(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, localFree, opts...)
}

func localFree(h windows.Handle) error {
	_, err := windows.LocalFree(h)
	return err
}

// FreeLibrary guards a module loaded with LoadLibrary.
func FreeLibrary(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, windows.FreeLibrary, opts...)
}

// DestroyIcon guards an icon created with CreateIcon, CreateIconIndirect
// or LoadImage without LR_SHARED. Shared icons must not be guarded.
func DestroyIcon(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, native.DestroyIcon, opts...)
}

// DestroyMenu guards a menu that is not attached to a window.
func DestroyMenu(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, native.DestroyMenu, opts...)
}

// DeleteObject guards a GDI object (pen, brush, bitmap, font, region).
func DeleteObject(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, native.DeleteObject, opts...)
}

// DeleteDC guards a device context created with CreateDC or
// CreateCompatibleDC.
func DeleteDC(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, native.DeleteDC, opts...)
}

// DestroyWindow guards a window. It must be disposed on the thread that
// created the window.
func DestroyWindow(h windows.Handle, opts ...Option) *Guard[windows.Handle] {
	return New(h, native.DestroyWindow, opts...)
}

// Token guards a process or thread access token.
func Token(t windows.Token, opts ...Option) *Guard[windows.Token] {
	return New(t, windows.Token.Close, opts...)
}
