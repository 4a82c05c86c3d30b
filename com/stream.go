// Copyright (c) 2023 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"io"
	"runtime"
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/internal/abi"
)

var (
	IID_ISequentialStream = &IID{0x0C733A30, 0x2A1C, 0x11CE, [8]byte{0xAD, 0xE5, 0x00, 0xAA, 0x00, 0x44, 0x77, 0x3D}}
	IID_IStream           = &IID{0x0000000C, 0x0000, 0x0000, [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}}
)

type STGC uint32

const (
	STGC_DEFAULT                            = STGC(0)
	STGC_OVERWRITE                          = STGC(1)
	STGC_ONLYIFCURRENT                      = STGC(2)
	STGC_DANGEROUSLYCOMMITMERELYTODISKCACHE = STGC(4)
	STGC_CONSOLIDATE                        = STGC(8)
)

type LOCKTYPE uint32

const (
	LOCK_WRITE     = LOCKTYPE(1)
	LOCK_EXCLUSIVE = LOCKTYPE(2)
	LOCK_ONLYONCE  = LOCKTYPE(4)
)

type STGTY uint32

const (
	STGTY_STORAGE   = STGTY(1)
	STGTY_STREAM    = STGTY(2)
	STGTY_LOCKBYTES = STGTY(3)
	STGTY_PROPERTY  = STGTY(4)
)

type STATFLAG uint32

const (
	STATFLAG_DEFAULT = STATFLAG(0)
	STATFLAG_NONAME  = STATFLAG(1)
	STATFLAG_NOOPEN  = STATFLAG(2)
)

type ISequentialStreamVtbl struct {
	IUnknownVtbl
	Read  uintptr
	Write uintptr
}

type ISequentialStream struct {
	Vtbl *ISequentialStreamVtbl
}

func (ISequentialStream) IID() *IID {
	return IID_ISequentialStream
}

type IStreamVtbl struct {
	ISequentialStreamVtbl
	Seek         uintptr
	SetSize      uintptr
	CopyTo       uintptr
	Commit       uintptr
	Revert       uintptr
	LockRegion   uintptr
	UnlockRegion uintptr
	Stat         uintptr
	Clone        uintptr
}

type IStream struct {
	Vtbl *IStreamVtbl
}

func (IStream) IID() *IID {
	return IID_IStream
}

func errorOrNil(hr winrt.HRESULT) error {
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return e
	}
	return nil
}

func (p *ISequentialStream) Read(b []byte) (int, error) {
	if len(b) > maxStreamRWLen {
		b = b[:maxStreamRWLen]
	}

	var cbRead uint32
	hr := Call(
		p.Vtbl.Read,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(unsafe.SliceData(b))),
		uintptr(uint32(len(b))),
		uintptr(unsafe.Pointer(&cbRead)),
	)
	n := int(cbRead)
	e := winrt.ErrorFromHRESULT(hr)
	if e.Failed() {
		return n, e
	}

	// Various implementations of IStream handle EOF differently. We need to
	// deal with both.
	if e.AsHRESULT() == winrt.S_FALSE || (n == 0 && len(b) > 0) {
		return n, io.EOF
	}

	return n, nil
}

func (p *ISequentialStream) Write(b []byte) (int, error) {
	w := b
	if len(w) > maxStreamRWLen {
		w = w[:maxStreamRWLen]
	}

	var cbWritten uint32
	hr := Call(
		p.Vtbl.Write,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(unsafe.SliceData(w))),
		uintptr(uint32(len(w))),
		uintptr(unsafe.Pointer(&cbWritten)),
	)
	n := int(cbWritten)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return n, e
	}

	// Need this to satisfy Writer.
	if n < len(b) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// sequential views p through the interface it extends.
func (p *IStream) sequential() *ISequentialStream {
	return (*ISequentialStream)(unsafe.Pointer(p))
}

func (p *IStream) Read(b []byte) (int, error) {
	return p.sequential().Read(b)
}

func (p *IStream) Write(b []byte) (int, error) {
	return p.sequential().Write(b)
}

// The 64-bit arguments below occupy two argument words on 32-bit platforms,
// so the argument lists are assembled with abi.Uint64. Out-parameters are
// heap-allocated since their addresses do not pass through the call
// expression itself.

func (p *IStream) Seek(offset int64, whence int) (int64, error) {
	n := new(int64)
	args := []uintptr{uintptr(unsafe.Pointer(p))}
	args = append(args, abi.Int64(offset)...)
	args = append(args, uintptr(uint32(whence)), uintptr(unsafe.Pointer(n)))

	hr := Call(p.Vtbl.Seek, args...)
	runtime.KeepAlive(n)
	if err := errorOrNil(hr); err != nil {
		return 0, err
	}

	return *n, nil
}

func (p *IStream) SetSize(newSize uint64) error {
	args := []uintptr{uintptr(unsafe.Pointer(p))}
	args = append(args, abi.Uint64(newSize)...)
	return errorOrNil(Call(p.Vtbl.SetSize, args...))
}

func (p *IStream) CopyTo(dest *IStream, numBytesToCopy uint64) (bytesRead, bytesWritten uint64, _ error) {
	counts := new([2]uint64)
	args := []uintptr{uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(dest))}
	args = append(args, abi.Uint64(numBytesToCopy)...)
	args = append(args, uintptr(unsafe.Pointer(&counts[0])), uintptr(unsafe.Pointer(&counts[1])))

	hr := Call(p.Vtbl.CopyTo, args...)
	runtime.KeepAlive(counts)
	runtime.KeepAlive(dest)
	return counts[0], counts[1], errorOrNil(hr)
}

func (p *IStream) Commit(flags STGC) error {
	return errorOrNil(Call(p.Vtbl.Commit, uintptr(unsafe.Pointer(p)), uintptr(flags)))
}

func (p *IStream) Revert() error {
	return errorOrNil(Call(p.Vtbl.Revert, uintptr(unsafe.Pointer(p))))
}

func (p *IStream) regionCall(method uintptr, offset, numBytes uint64, lockType LOCKTYPE) error {
	args := []uintptr{uintptr(unsafe.Pointer(p))}
	args = append(args, abi.Uint64(offset)...)
	args = append(args, abi.Uint64(numBytes)...)
	args = append(args, uintptr(lockType))
	return errorOrNil(Call(method, args...))
}

func (p *IStream) LockRegion(offset, numBytes uint64, lockType LOCKTYPE) error {
	return p.regionCall(p.Vtbl.LockRegion, offset, numBytes, lockType)
}

func (p *IStream) UnlockRegion(offset, numBytes uint64, lockType LOCKTYPE) error {
	return p.regionCall(p.Vtbl.UnlockRegion, offset, numBytes, lockType)
}

// Clone returns a new stream over the same bytes with its own seek pointer.
func (p *IStream) Clone() (*IStream, error) {
	var result *IStream
	hr := Call(
		p.Vtbl.Clone,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&result)),
	)
	if err := errorOrNil(hr); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_POINTER)
	}

	return result, nil
}

// Stream owns an IStream and exposes it as an io.ReadWriteSeeker.
type Stream struct {
	p *Ptr[IStream]
}

// StreamOf returns a Stream that takes ownership of p.
func StreamOf(p *Ptr[IStream]) *Stream {
	return &Stream{p: p}
}

// Ptr returns the underlying handle. It remains owned by s.
func (s *Stream) Ptr() *Ptr[IStream] {
	return s.p
}

// Sequential returns a new owner of s's object through ISequentialStream.
func (s *Stream) Sequential() *Ptr[ISequentialStream] {
	return Upcast[ISequentialStream](s.p.Clone())
}

func (s *Stream) Read(b []byte) (int, error) {
	return s.p.Get().Read(b)
}

func (s *Stream) Write(b []byte) (int, error) {
	return s.p.Get().Write(b)
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	return s.p.Get().Seek(offset, whence)
}

func (s *Stream) SetSize(newSize uint64) error {
	return s.p.Get().SetSize(newSize)
}

func (s *Stream) CopyTo(dest *Stream, numBytesToCopy uint64) (bytesRead, bytesWritten uint64, _ error) {
	return s.p.Get().CopyTo(dest.p.Get(), numBytesToCopy)
}

func (s *Stream) Commit(flags STGC) error {
	return s.p.Get().Commit(flags)
}

func (s *Stream) Revert() error {
	return s.p.Get().Revert()
}

func (s *Stream) LockRegion(offset, numBytes uint64, lockType LOCKTYPE) error {
	return s.p.Get().LockRegion(offset, numBytes, lockType)
}

func (s *Stream) UnlockRegion(offset, numBytes uint64, lockType LOCKTYPE) error {
	return s.p.Get().UnlockRegion(offset, numBytes, lockType)
}

// Clone returns a new Stream over the same bytes with its own seek pointer.
func (s *Stream) Clone() (*Stream, error) {
	cloned, err := s.p.Get().Clone()
	if err != nil {
		return nil, err
	}
	return StreamOf(Attach(cloned)), nil
}

// Close releases the stream.
func (s *Stream) Close() error {
	return s.p.Close()
}
