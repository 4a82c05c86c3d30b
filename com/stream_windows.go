// Copyright (c) 2023 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"io"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/dblohm7/winrt"
)

// COMAllocatedString encapsulates a UTF-16 string that was allocated by COM
// using its internal heap.
type COMAllocatedString uintptr

// Close frees the memory held by the string.
func (s *COMAllocatedString) Close() error {
	windows.CoTaskMemFree(unsafe.Pointer(*s))
	*s = 0
	return nil
}

func (s *COMAllocatedString) String() string {
	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(*s)))
}

type STATSTG struct {
	Name           COMAllocatedString
	Type           STGTY
	Size           uint64
	MTime          windows.Filetime
	CTime          windows.Filetime
	ATime          windows.Filetime
	Mode           uint32
	LocksSupported LOCKTYPE
	ClsID          CLSID
	_              uint32 // StateBits
	_              uint32 // reserved
}

// Close frees the name, if any, that Stat returned in st.
func (st *STATSTG) Close() error {
	return st.Name.Close()
}

func (p *IStream) Stat(flags STATFLAG) (*STATSTG, error) {
	result := new(STATSTG)
	hr := Call(
		p.Vtbl.Stat,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(result)),
		uintptr(flags),
	)
	if err := errorOrNil(hr); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Stream) Stat(flags STATFLAG) (*STATSTG, error) {
	return s.p.Get().Stat(flags)
}

// NewMemoryStream creates a new in-memory Stream object initially containing a
// copy of initialBytes. Its seek pointer is guaranteed to reference the
// beginning of the stream.
func NewMemoryStream(initialBytes []byte) (*Stream, error) {
	return newMemoryStreamInternal(initialBytes, false)
}

func newMemoryStreamInternal(initialBytes []byte, forceLegacy bool) (*Stream, error) {
	if len(initialBytes) > maxStreamRWLen {
		return nil, winrt.ErrorFromHRESULT(winrt.E_OUTOFMEMORY)
	}

	// SHCreateMemStream exists on Win7 but is not safe for us to use until Win8.
	if forceLegacy || !winrt.IsWin8OrGreater() {
		return newMemoryStreamLegacy(initialBytes)
	}

	var base *byte
	var length uint32
	if l := uint32(len(initialBytes)); l > 0 {
		base = unsafe.SliceData(initialBytes)
		length = l
	}

	pstream := shCreateMemStream(base, length)
	if pstream == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_OUTOFMEMORY)
	}

	obj := StreamOf(Attach(pstream))
	if _, err := obj.Seek(0, io.SeekStart); err != nil {
		obj.Close()
		return nil, err
	}

	return obj, nil
}

func newMemoryStreamLegacy(initialBytes []byte) (*Stream, error) {
	var pstream *IStream
	hr := createStreamOnHGlobal(windows.Handle(0), true, &pstream)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}

	obj := StreamOf(Attach(pstream))

	if err := obj.SetSize(uint64(len(initialBytes))); err != nil {
		obj.Close()
		return nil, err
	}

	if len(initialBytes) == 0 {
		return obj, nil
	}

	if _, err := obj.Write(initialBytes); err != nil {
		obj.Close()
		return nil, err
	}

	if _, err := obj.Seek(0, io.SeekStart); err != nil {
		obj.Close()
		return nil, err
	}

	return obj, nil
}
