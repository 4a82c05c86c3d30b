// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package abi

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Call invokes the native function fn with args and returns the value of the
// first result register.
//
//go:uintptrescapes
func Call(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}

// NewCallback converts fn into a function pointer that native code may call.
// fn must take only uintptr-sized arguments (uintptr, unsafe.Pointer or a
// pointer type) and return a single uintptr. Parameters that receive pointers
// should be declared as pointers rather than uintptr. Only a limited number of callbacks may be created per process, so callers
// should create them once and share them, typically one per virtual table
// slot.
func NewCallback(fn any) uintptr {
	return windows.NewCallback(fn)
}

// TaskMemAlloc allocates size bytes from the COM task allocator. Memory
// returned to callers of native methods through out-parameters must come from
// here, since the caller frees it with TaskMemFree.
func TaskMemAlloc(size uintptr) unsafe.Pointer {
	return coTaskMemAlloc(size)
}

// TaskMemFree frees memory allocated by the COM task allocator. p may be nil.
func TaskMemFree(p unsafe.Pointer) {
	coTaskMemFree(p)
}
