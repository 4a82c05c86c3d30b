// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package abi

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// Function pointers handed out by NewCallback are spaced apart and offset from
// zero so that they are never mistaken for a null pointer or for each other.
const (
	callbackBase   = uintptr(0x10000)
	callbackStride = uintptr(16)
)

var (
	cbMu      sync.RWMutex
	callbacks []reflect.Value

	memMu sync.Mutex
	// taskMem keeps TaskMemAlloc blocks reachable until TaskMemFree.
	taskMem = make(map[uintptr][]uintptr)
)

// Call invokes the function that NewCallback registered as fn. Missing
// arguments are passed as zero; surplus arguments are an error on the
// caller's part and panic.
//
//go:uintptrescapes
func Call(fn uintptr, args ...uintptr) uintptr {
	f := lookupCallback(fn)
	ft := f.Type()
	if len(args) > ft.NumIn() {
		panic(fmt.Sprintf("abi.Call: %d arguments passed to function pointer %#x taking %d", len(args), fn, ft.NumIn()))
	}

	in := make([]reflect.Value, ft.NumIn())
	for i := range in {
		var a uintptr
		if i < len(args) {
			a = args[i]
		}
		in[i] = argValue(ft.In(i), a)
	}
	return uintptr(f.Call(in)[0].Uint())
}

// argValue converts the argument word a to the parameter type t. Pointer
// parameters take the word as a pointer without a uintptr conversion, so
// pointer checking sees the same pointer the caller passed.
func argValue(t reflect.Type, a uintptr) reflect.Value {
	switch t.Kind() {
	case reflect.UnsafePointer:
		return reflect.ValueOf(Pointer(a)).Convert(t)
	case reflect.Pointer:
		return reflect.NewAt(t.Elem(), Pointer(a))
	default:
		return reflect.ValueOf(a).Convert(t)
	}
}

func lookupCallback(fn uintptr) reflect.Value {
	cbMu.RLock()
	defer cbMu.RUnlock()

	if fn < callbackBase || (fn-callbackBase)%callbackStride != 0 {
		panic(fmt.Sprintf("abi.Call: %#x is not a function pointer", fn))
	}
	idx := (fn - callbackBase) / callbackStride
	if idx >= uintptr(len(callbacks)) {
		panic(fmt.Sprintf("abi.Call: %#x is not a function pointer", fn))
	}
	return callbacks[idx]
}

// NewCallback converts fn into a function pointer that Call can invoke.
// fn must take only uintptr-sized arguments (uintptr, unsafe.Pointer or a
// pointer type) and return a single uintptr.
func NewCallback(fn any) uintptr {
	f := reflect.ValueOf(fn)
	ft := f.Type()
	if ft.Kind() != reflect.Func {
		panic("abi.NewCallback: argument is not a function")
	}
	if ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Uintptr {
		panic("abi.NewCallback: function must return a single uintptr")
	}
	for i := 0; i < ft.NumIn(); i++ {
		switch ft.In(i).Kind() {
		case reflect.Uintptr, reflect.UnsafePointer, reflect.Pointer:
		default:
			panic(fmt.Sprintf("abi.NewCallback: argument %d is not uintptr-sized", i))
		}
	}

	cbMu.Lock()
	defer cbMu.Unlock()
	callbacks = append(callbacks, f)
	return callbackBase + uintptr(len(callbacks)-1)*callbackStride
}

// TaskMemAlloc allocates size bytes of zeroed, word-aligned memory that stays
// valid until TaskMemFree.
func TaskMemAlloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	block := make([]uintptr, (size+ptrSize-1)/ptrSize)
	p := unsafe.Pointer(&block[0])

	memMu.Lock()
	defer memMu.Unlock()
	taskMem[uintptr(p)] = block
	return p
}

// TaskMemFree releases memory from TaskMemAlloc. p may be nil.
func TaskMemFree(p unsafe.Pointer) {
	if p == nil {
		return
	}

	memMu.Lock()
	defer memMu.Unlock()
	if _, ok := taskMem[uintptr(p)]; !ok {
		panic(fmt.Sprintf("abi.TaskMemFree: %p was not allocated by TaskMemAlloc", p))
	}
	delete(taskMem, uintptr(p))
}
