// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/internal/abi"
)

var (
	IID_IUnknown = &IID{0x00000000, 0x0000, 0x0000, [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}}
)

// IUnknownVtbl is the virtual table shared, as a prefix, by every COM and
// Windows Runtime interface.
type IUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// IUnknown is the base COM interface.
type IUnknown struct {
	Vtbl *IUnknownVtbl
}

// IID always returns IID_IUnknown.
func (IUnknown) IID() *IID {
	return IID_IUnknown
}

// UnknownOf reinterprets p as its IUnknown prefix.
func UnknownOf[T Interface](p *T) *IUnknown {
	return (*IUnknown)(unsafe.Pointer(p))
}

// Call invokes the virtual table slot method and returns its HRESULT. By
// convention the first argument is the interface pointer itself.
//
//go:uintptrescapes
func Call(method uintptr, args ...uintptr) winrt.HRESULT {
	return winrt.HRESULTFromBits(abi.Call(method, args...))
}

// QueryInterface implements the QueryInterface call for a COM interface pointer.
// iid is the desired interface ID. On success the returned pointer carries a
// new reference that the caller owns.
func (p *IUnknown) QueryInterface(iid *IID) (*IUnknown, error) {
	var punk *IUnknown

	hr := Call(
		p.Vtbl.QueryInterface,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&punk)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	if punk == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_POINTER)
	}

	return punk, nil
}

// AddRef implements the AddRef call for a COM interface pointer. The returned
// count is informational only.
func (p *IUnknown) AddRef() uint32 {
	return uint32(abi.Call(p.Vtbl.AddRef, uintptr(unsafe.Pointer(p))))
}

// Release implements the Release call for a COM interface pointer. The
// returned count is informational only.
func (p *IUnknown) Release() uint32 {
	return uint32(abi.Call(p.Vtbl.Release, uintptr(unsafe.Pointer(p))))
}
