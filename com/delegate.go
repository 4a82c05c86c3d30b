// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/internal/abi"
)

// DelegateVtbl is the virtual table of a Windows Runtime delegate: IUnknown
// followed by a single Invoke(sender, args) slot.
type DelegateVtbl struct {
	IUnknownVtbl
	Invoke uintptr
}

// Delegate is the layout shared by all delegate interfaces. Typed delegates
// declare their own ABI struct with a *DelegateVtbl field and their own IID.
type Delegate struct {
	Vtbl *DelegateVtbl
}

// IID returns nil; each delegate type has its own interface ID.
func (Delegate) IID() *IID {
	return nil
}

// Invoke calls the delegate with a borrowed sender pointer and args, which is
// either an interface pointer or a value that fits in a machine word.
func (d *Delegate) Invoke(sender unsafe.Pointer, args uintptr) error {
	hr := Call(d.Vtbl.Invoke, uintptr(unsafe.Pointer(d)), uintptr(sender), args)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return e
	}
	return nil
}

// InvokeFunc implements a delegate's Invoke. sender is a borrowed interface
// pointer, valid only for the duration of the call; use Wrap to retain it.
// args is the raw argument word. Recover an interface pointer from it with
// abi.Pointer semantics, i.e. only while the call is in progress.
type InvokeFunc func(sender unsafe.Pointer, args uintptr) winrt.HRESULT

// delegate is a Go-implemented COM object. vtbl must remain the first field.
type delegate struct {
	vtbl   *DelegateVtbl
	refs   atomic.Int32
	iids   []IID
	fn     InvokeFunc
	pinner runtime.Pinner
}

var (
	delegateVtblOnce   sync.Once
	sharedDelegateVtbl *DelegateVtbl

	// liveDelegates maps the interface pointer of every delegate that
	// still has native references to its *delegate. It keeps the object
	// reachable while only native code refers to it.
	liveDelegates sync.Map
)

func delegateVtbl() *DelegateVtbl {
	delegateVtblOnce.Do(func() {
		sharedDelegateVtbl = &DelegateVtbl{
			IUnknownVtbl: IUnknownVtbl{
				QueryInterface: abi.NewCallback(delegateQueryInterface),
				AddRef:         abi.NewCallback(delegateAddRef),
				Release:        abi.NewCallback(delegateRelease),
			},
			Invoke: abi.NewCallback(delegateInvoke),
		}
	})
	return sharedDelegateVtbl
}

// NewDelegate creates a delegate object whose Invoke calls fn, and returns
// the sole owner of its initial reference. The object answers QueryInterface
// for IUnknown, IAgileObject and iid. It may be invoked from any thread, and
// is destroyed once the returned Ptr and all native references are released.
// T must be laid out like Delegate.
func NewDelegate[T Interface](iid *IID, fn InvokeFunc) *Ptr[T] {
	if iid == nil {
		panic(fmt.Sprintf("com.NewDelegate[%s]: nil IID", typeName[T]()))
	}
	if fn == nil {
		panic(fmt.Sprintf("com.NewDelegate[%s]: nil InvokeFunc", typeName[T]()))
	}
	assertExtends[T, Delegate]()

	d := &delegate{
		vtbl: delegateVtbl(),
		iids: []IID{*IID_IUnknown, *IID_IAgileObject, *iid},
		fn:   fn,
	}
	d.refs.Store(1)
	d.pinner.Pin(d)
	liveDelegates.Store(uintptr(unsafe.Pointer(d)), d)

	return Attach((*T)(unsafe.Pointer(d)))
}

func lookupDelegate(this uintptr) *delegate {
	v, ok := liveDelegates.Load(this)
	if !ok {
		return nil
	}
	return v.(*delegate)
}

func mustLookupDelegate(this uintptr) *delegate {
	d := lookupDelegate(this)
	if d == nil {
		panic(fmt.Sprintf("com: call on destroyed delegate %#x", this))
	}
	return d
}

func hresultBits(hr winrt.HRESULT) uintptr {
	return uintptr(uint32(hr))
}

func delegateQueryInterface(this uintptr, riid *IID, ppv *uintptr) uintptr {
	if ppv == nil {
		return hresultBits(winrt.E_POINTER)
	}
	*ppv = 0

	d := lookupDelegate(this)
	if d == nil || riid == nil {
		return hresultBits(winrt.E_POINTER)
	}
	if !slices.Contains(d.iids, *riid) {
		return hresultBits(winrt.E_NOINTERFACE)
	}

	d.refs.Add(1)
	*ppv = this
	return hresultBits(winrt.S_OK)
}

func delegateAddRef(this uintptr) uintptr {
	return uintptr(mustLookupDelegate(this).refs.Add(1))
}

func delegateRelease(this uintptr) uintptr {
	d := mustLookupDelegate(this)
	n := d.refs.Add(-1)
	if n == 0 {
		liveDelegates.Delete(this)
		d.pinner.Unpin()
		if ce := Logger().Check(zap.DebugLevel, "delegate destroyed"); ce != nil {
			ce.Write(zap.Stringer("iid", d.iids[len(d.iids)-1]))
		}
	}
	return uintptr(n)
}

func delegateInvoke(this uintptr, sender unsafe.Pointer, args uintptr) uintptr {
	return hresultBits(mustLookupDelegate(this).fn(sender, args))
}
