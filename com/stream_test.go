// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com_test

import (
	"errors"
	"io"
	"testing"
	"unsafe"

	"golang.org/x/exp/slices"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/internal/abi"
	"github.com/dblohm7/winrt/internal/comtest"
)

// int64Words is the number of argument words a 64-bit value occupies.
var int64Words = len(abi.Int64(0))

func takeInt64(args []uintptr) (int64, []uintptr) {
	if int64Words == 1 {
		return int64(args[0]), args[1:]
	}
	return int64(uint64(args[0]) | uint64(args[1])<<32), args[2:]
}

// memStream is the state behind a fake IStream.
type memStream struct {
	data []byte
	pos  int64
}

func notImplemented(*comtest.Object, []uintptr) winrt.HRESULT {
	return winrt.E_NOTIMPL
}

func newFakeStream(ms *memStream) *comtest.Object {
	return comtest.New(comtest.Config{
		IIDs: []*com.IID{com.IID_ISequentialStream, com.IID_IStream},
		Methods: []comtest.Method{
			{Name: "Read", Arity: 3, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				buf := unsafe.Slice(comtest.Out[byte](args[0]), args[1])
				var n int
				if ms.pos < int64(len(ms.data)) {
					n = copy(buf, ms.data[ms.pos:])
				}
				ms.pos += int64(n)
				*comtest.Out[uint32](args[2]) = uint32(n)
				if n < len(buf) {
					return winrt.S_FALSE
				}
				return winrt.S_OK
			}},
			{Name: "Write", Arity: 3, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				buf := unsafe.Slice(comtest.Out[byte](args[0]), args[1])
				if end := ms.pos + int64(len(buf)); end > int64(len(ms.data)) {
					ms.data = append(ms.data, make([]byte, end-int64(len(ms.data)))...)
				}
				n := copy(ms.data[ms.pos:], buf)
				ms.pos += int64(n)
				*comtest.Out[uint32](args[2]) = uint32(n)
				return winrt.S_OK
			}},
			{Name: "Seek", Arity: int64Words + 2, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				offset, rest := takeInt64(args)
				var base int64
				switch rest[0] {
				case io.SeekStart:
				case io.SeekCurrent:
					base = ms.pos
				case io.SeekEnd:
					base = int64(len(ms.data))
				default:
					return winrt.E_INVALIDARG
				}
				if base+offset < 0 {
					return winrt.E_INVALIDARG
				}
				ms.pos = base + offset
				if rest[1] != 0 {
					*comtest.Out[int64](rest[1]) = ms.pos
				}
				return winrt.S_OK
			}},
			{Name: "SetSize", Arity: int64Words, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				size, _ := takeInt64(args)
				if size < int64(len(ms.data)) {
					ms.data = ms.data[:size]
				} else {
					ms.data = append(ms.data, make([]byte, size-int64(len(ms.data)))...)
				}
				return winrt.S_OK
			}},
			{Name: "CopyTo", Arity: int64Words + 3, Fn: notImplemented},
			{Name: "Commit", Arity: 1, Fn: notImplemented},
			{Name: "Revert", Arity: 0, Fn: notImplemented},
			{Name: "LockRegion", Arity: 2*int64Words + 1, Fn: notImplemented},
			{Name: "UnlockRegion", Arity: 2*int64Words + 1, Fn: notImplemented},
			{Name: "Stat", Arity: 2, Fn: notImplemented},
			{Name: "Clone", Arity: 1, Fn: notImplemented},
		},
	})
}

func TestStreamReadWriteSeek(t *testing.T) {
	ms := &memStream{}
	obj := newFakeStream(ms)
	s := com.StreamOf(comtest.Attach[com.IStream](obj))

	values := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	n, err := s.Write(values)
	if err != nil || n != len(values) {
		t.Fatalf("Write got (%d, %v), want (%d, nil)", n, err, len(values))
	}

	pos, err := s.Seek(-4, io.SeekEnd)
	if err != nil || pos != 6 {
		t.Fatalf("Seek(-4, SeekEnd) got (%d, %v), want (6, nil)", pos, err)
	}

	buf := make([]byte, 8)
	n, err = s.Read(buf)
	if err != io.EOF {
		t.Errorf("short Read error got %v, want %v", err, io.EOF)
	}
	if !slices.Equal(buf[:n], values[6:]) {
		t.Errorf("Read got %v, want %v", buf[:n], values[6:])
	}

	if n, err := s.Read(nil); n != 0 || err != nil {
		t.Errorf("empty Read got (%d, %v), want (0, nil)", n, err)
	}

	if err := s.SetSize(4); err != nil {
		t.Fatalf("SetSize got %v, want nil", err)
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek got %v, want nil", err)
	}
	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll got %v, want nil", err)
	}
	if !slices.Equal(got, values[:4]) {
		t.Errorf("ReadAll after SetSize got %v, want %v", got, values[:4])
	}

	if _, err := s.Seek(-1, io.SeekStart); !errors.Is(err, winrt.InvalidArgument) {
		t.Errorf("Seek before start got %v, want %v", err, winrt.InvalidArgument)
	}
	if err := s.Commit(com.STGC_DEFAULT); !errors.Is(err, winrt.NotImplemented) {
		t.Errorf("Commit got %v, want %v", err, winrt.NotImplemented)
	}
	if err := s.LockRegion(0, 4, com.LOCK_WRITE); !errors.Is(err, winrt.NotImplemented) {
		t.Errorf("LockRegion got %v, want %v", err, winrt.NotImplemented)
	}

	s.Close()
	if got := obj.Destroyed(); got != 1 {
		t.Errorf("Destroyed got %d, want 1", got)
	}
}

func TestStreamSequentialView(t *testing.T) {
	ms := &memStream{data: []byte("hello")}
	obj := newFakeStream(ms)
	s := com.StreamOf(comtest.Attach[com.IStream](obj))
	defer s.Close()

	seq := s.Sequential()
	defer seq.Release()

	buf := make([]byte, 5)
	if n, err := seq.Get().Read(buf); err != nil || string(buf[:n]) != "hello" {
		t.Errorf("Read through ISequentialStream got (%q, %v), want (\"hello\", nil)", buf[:n], err)
	}
	if got := obj.Refs(); got != 2 {
		t.Errorf("Refs got %d, want 2", got)
	}
}
