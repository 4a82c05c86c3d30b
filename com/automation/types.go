// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

// Package automation holds the OLE Automation types that Windows Runtime
// error reporting still uses.
package automation

import (
	"unicode/utf16"
	"unsafe"
)

// BSTR is a length-prefixed UTF-16 string allocated by the OLE Automation
// allocator. The zero value is the empty string.
type BSTR uintptr

// NewBSTR allocates a BSTR containing a copy of s, which may contain NUL
// characters. It returns 0 for the empty string.
func NewBSTR(s string) BSTR {
	if s == "" {
		return 0
	}
	return NewBSTRFromUTF16(utf16.Encode([]rune(s)))
}

// NewBSTRFromUTF16 allocates a BSTR containing a copy of us.
func NewBSTRFromUTF16(us []uint16) BSTR {
	if len(us) == 0 {
		return 0
	}
	return sysAllocStringLen(unsafe.SliceData(us), uint32(len(us)))
}

// Len returns the length of bs in UTF-16 code units.
func (bs *BSTR) Len() int {
	if bs.IsNil() {
		return 0
	}
	return int(sysStringLen(*bs))
}

func (bs *BSTR) String() string {
	return string(utf16.Decode(bs.toUTF16()))
}

// toUTF16 is unsafe for general use because it returns a slice that is
// not managed by the Go GC.
func (bs *BSTR) toUTF16() []uint16 {
	if bs.IsNil() {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(*bs)), bs.Len())
}

// ToUTF16 returns a copy of bs's characters, without a NUL terminator.
func (bs *BSTR) ToUTF16() []uint16 {
	return append([]uint16{}, bs.toUTF16()...)
}

// Clone allocates an independent copy of bs.
func (bs *BSTR) Clone() BSTR {
	return NewBSTRFromUTF16(bs.toUTF16())
}

func (bs *BSTR) IsNil() bool {
	return *bs == 0
}

// Close frees bs and resets it to the empty string.
func (bs *BSTR) Close() error {
	if bs.IsNil() {
		return nil
	}
	sysFreeString(*bs)
	*bs = 0
	return nil
}
