// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"math"
	"unicode/utf16"

	"github.com/dblohm7/winrt"
)

// HString is a handle to an immutable, reference-counted Windows Runtime
// string. The zero value is the empty string and needs no Close.
type HString uintptr

// NewHString creates an HString containing a copy of s. s may contain NUL
// characters.
func NewHString(s string) (HString, error) {
	if s == "" {
		return 0, nil
	}

	buf := utf16.Encode([]rune(s))
	if uint64(len(buf)) > math.MaxUint32 {
		return 0, winrt.ErrorFromHRESULT(winrt.E_OUTOFMEMORY)
	}
	return createHString(buf)
}

// MustHString is like NewHString, but panics on failure.
func MustHString(s string) HString {
	h, err := NewHString(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String returns a copy of h's contents.
func (h HString) String() string {
	if h == 0 {
		return ""
	}

	return string(utf16.Decode(hstringBuffer(h)))
}

// Len returns the length of h in UTF-16 code units.
func (h HString) Len() int {
	if h == 0 {
		return 0
	}
	return len(hstringBuffer(h))
}

// Close releases h and resets it to the empty string.
func (h *HString) Close() error {
	if *h == 0 {
		return nil
	}
	hr := deleteHString(*h)
	*h = 0
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return e
	}
	return nil
}
