// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dualcall

import "unicode/utf16"

// String runs Call for a UTF-16 result and decodes it up to the first NUL.
// The counts may or may not include the terminator.
func String(probe func() (int, error), fill func(buf []uint16) (int, error), opts ...Option) (string, error) {
	buf, err := Call(probe, fill, opts...)
	if err != nil {
		return "", err
	}
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf)), nil
}
