// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package abi is the native call boundary. Every call through a virtual table
// slot goes through Call, and every Go function handed to native code as a
// function pointer comes from NewCallback.
//
// On Windows these map directly onto syscall.SyscallN and windows.NewCallback.
// Elsewhere there is no native runtime, so NewCallback registers the Go
// function in a table and Call dispatches to it. That keeps Go-implemented
// objects (delegates and test doubles) fully functional on every platform.
package abi

import (
	"unsafe"
)

// ptrSize is the size of a machine word.
const ptrSize = unsafe.Sizeof(uintptr(0))

// Uint64 splits v into the argument words needed to pass it by value. On
// 32-bit platforms that is two words, low word first.
func Uint64(v uint64) []uintptr {
	if ptrSize == 4 {
		return []uintptr{uintptr(uint32(v)), uintptr(uint32(v >> 32))}
	}
	return []uintptr{uintptr(v)}
}

// Int64 is like Uint64, for signed values.
func Int64(v int64) []uintptr {
	return Uint64(uint64(v))
}

// Pointer recovers a pointer that was passed to Call as the argument word a.
// It reinterprets the word rather than converting it from uintptr, which
// pointer checking rejects for Go memory. The caller of Call keeps the
// pointee alive for the duration of the call; the result must not outlive it
// unless the pointee is otherwise kept alive.
func Pointer(a uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&a))
}
