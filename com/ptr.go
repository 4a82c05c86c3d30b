// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"fmt"
	"runtime"
	"unsafe"

	"go.uber.org/zap"
)

// Ptr owns exactly one reference to a COM object, held through interface T.
// The reference is returned to the object by Release. If a Ptr becomes
// unreachable while still holding its reference, the garbage collector
// releases it and a warning is logged; code should not rely on that.
//
// Copies of a *Ptr alias the same reference; use Clone to obtain a second,
// independent owner. A Ptr is not safe for concurrent use.
type Ptr[T Interface] struct {
	abi *T
}

// Attach takes ownership of the reference already held by abi; no AddRef
// is performed. abi must not be nil.
func Attach[T Interface](abi *T) *Ptr[T] {
	if abi == nil {
		panic(fmt.Sprintf("com.Attach[%s]: nil interface pointer", typeName[T]()))
	}
	assertExtends[T, IUnknown]()

	p := &Ptr[T]{abi: abi}
	runtime.SetFinalizer(p, (*Ptr[T]).finalize)
	return p
}

// Wrap returns a new owner of abi, adding a reference. Use it for borrowed
// pointers, such as callback arguments, that must outlive the call.
func Wrap[T Interface](abi *T) *Ptr[T] {
	if abi == nil {
		panic(fmt.Sprintf("com.Wrap[%s]: nil interface pointer", typeName[T]()))
	}
	assertExtends[T, IUnknown]()
	UnknownOf(abi).AddRef()
	return Attach(abi)
}

// Get returns the raw interface pointer for making calls. It does not add a
// reference; the result is only valid while p holds its reference. Get panics
// if p has been released or detached.
func (p *Ptr[T]) Get() *T {
	if p.abi == nil {
		panic(fmt.Sprintf("com.Ptr[%s]: use after release", typeName[T]()))
	}
	return p.abi
}

// Unknown returns p's object viewed through IUnknown, without adding a
// reference.
func (p *Ptr[T]) Unknown() *IUnknown {
	return UnknownOf(p.Get())
}

// IsReleased reports whether p no longer holds a reference.
func (p *Ptr[T]) IsReleased() bool {
	return p.abi == nil
}

// Clone returns a new, independent owner of the same object.
func (p *Ptr[T]) Clone() *Ptr[T] {
	p.Unknown().AddRef()
	return Attach(p.abi)
}

// Release returns p's reference to the object. Subsequent calls are no-ops.
func (p *Ptr[T]) Release() {
	if p == nil || p.abi == nil {
		return
	}
	abi := p.abi
	p.abi = nil
	runtime.SetFinalizer(p, nil)
	UnknownOf(abi).Release()
}

// Close releases p. It always returns nil.
func (p *Ptr[T]) Close() error {
	p.Release()
	return nil
}

// Detach relinquishes ownership of the reference held by p, returning the raw
// interface pointer. The caller becomes responsible for releasing it.
func (p *Ptr[T]) Detach() *T {
	abi := p.Get()
	p.abi = nil
	runtime.SetFinalizer(p, nil)
	return abi
}

func (p *Ptr[T]) String() string {
	if p.abi == nil {
		return fmt.Sprintf("com.Ptr[%s](released)", typeName[T]())
	}
	return fmt.Sprintf("com.Ptr[%s](%p)", typeName[T](), p.abi)
}

func (p *Ptr[T]) finalize() {
	if p.abi == nil {
		return
	}
	Logger().Warn("releasing leaked COM reference",
		zap.String("interface", typeName[T]()),
		zap.Uintptr("ptr", uintptr(unsafe.Pointer(p.abi))),
	)
	p.Release()
}

// TryAs queries p's object for interface U, returning a new owner on success.
// p remains valid. Failures are returned as winrt.Error values; an object that
// does not implement U yields one matching winrt.NoSuchInterface. TryAs panics
// if U has no static interface ID; use QueryIID for those.
func TryAs[U, T Interface](p *Ptr[T]) (*Ptr[U], error) {
	iid := IIDOf[U]()
	if iid == nil {
		panic(fmt.Sprintf("com.TryAs[%s]: interface has no static IID, use QueryIID", typeName[U]()))
	}
	return QueryIID[U](p, iid)
}

// As is like TryAs, but panics on failure.
func As[U, T Interface](p *Ptr[T]) *Ptr[U] {
	result, err := TryAs[U](p)
	if err != nil {
		panic(fmt.Sprintf("com.As[%s] error: %v", typeName[U](), err))
	}
	return result
}

// QueryIID queries p's object for the interface identified by iid, which the
// caller asserts has the layout of U.
func QueryIID[U, T Interface](p *Ptr[T], iid *IID) (*Ptr[U], error) {
	if iid == nil {
		panic(fmt.Sprintf("com.QueryIID[%s]: nil IID", typeName[U]()))
	}
	assertExtends[U, IUnknown]()

	punk, err := p.Unknown().QueryInterface(iid)
	if err != nil {
		if ce := Logger().Check(zap.DebugLevel, "QueryInterface failed"); ce != nil {
			ce.Write(zap.Stringer("iid", iid), zap.String("from", typeName[T]()), zap.Error(err))
		}
		return nil, err
	}

	return Attach((*U)(unsafe.Pointer(punk))), nil
}

// Upcast converts p into an owner of the same object through B, an interface
// that D extends. No native call is made and the raw pointer is unchanged.
// p is consumed: it is detached and must not be used afterwards.
func Upcast[B, D Interface](p *Ptr[D]) *Ptr[B] {
	assertExtends[D, B]()
	return Attach((*B)(unsafe.Pointer(p.Detach())))
}

// IsSameObject reports whether l and r refer to the same COM object, using
// the identity rule that an object's IUnknown pointer is unique.
func IsSameObject[L, R Interface](l *Ptr[L], r *Ptr[R]) bool {
	ul, err := TryAs[IUnknown](l)
	if err != nil {
		return false
	}
	defer ul.Release()

	ur, err := TryAs[IUnknown](r)
	if err != nil {
		return false
	}
	defer ur.Release()

	return ul.Get() == ur.Get()
}
