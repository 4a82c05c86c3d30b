// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package foundation

import (
	"unsafe"

	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/rt"
)

var (
	IID_IStringable = &com.IID{Data1: 0x96369F54, Data2: 0x8EB6, Data3: 0x48F0, Data4: [8]byte{0xAB, 0xCE, 0xC1, 0xB2, 0x11, 0xE6, 0x27, 0xC3}}
	IID_IClosable   = &com.IID{Data1: 0x30D5A829, Data2: 0x7FA4, Data3: 0x4026, Data4: [8]byte{0x83, 0xBB, 0xD7, 0x5B, 0xAE, 0x4E, 0xA9, 0x9E}}
)

type IStringableVtbl struct {
	rt.IInspectableVtbl
	ToString uintptr
}

// IStringable is implemented by objects with a textual representation.
type IStringable struct {
	Vtbl *IStringableVtbl
}

func (IStringable) IID() *com.IID {
	return IID_IStringable
}

func (p *IStringable) ToString() (string, error) {
	var h rt.HString
	hr := com.Call(p.Vtbl.ToString, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&h)))
	if err := errorOrNil(hr); err != nil {
		return "", err
	}
	defer h.Close()
	return h.String(), nil
}

type IClosableVtbl struct {
	rt.IInspectableVtbl
	Close uintptr
}

// IClosable is implemented by objects that hold resources beyond their
// memory, which Close releases ahead of the final Release.
type IClosable struct {
	Vtbl *IClosableVtbl
}

func (IClosable) IID() *com.IID {
	return IID_IClosable
}

func (p *IClosable) Close() error {
	return errorOrNil(com.Call(p.Vtbl.Close, uintptr(unsafe.Pointer(p))))
}
