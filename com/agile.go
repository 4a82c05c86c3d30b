// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"sync"
)

var (
	IID_IAgileObject = &IID{0x94EA2B94, 0xE9CC, 0x49E0, [8]byte{0xC0, 0xFF, 0xEE, 0x64, 0xCA, 0x8F, 0x5B, 0x90}}
)

// IAgileObject is a marker interface with no methods of its own. Objects that
// implement it may be called from any apartment without marshaling.
type IAgileObject struct {
	Vtbl *IUnknownVtbl
}

// IID always returns IID_IAgileObject.
func (IAgileObject) IID() *IID {
	return IID_IAgileObject
}

// IsAgile reports whether p's object implements IAgileObject.
func IsAgile[T Interface](p *Ptr[T]) bool {
	a, err := TryAs[IAgileObject](p)
	if err != nil {
		return false
	}
	a.Release()
	return true
}

// AgilePtr is an owner of an agile object that may be shared between
// goroutines. Each goroutine obtains its own Ptr through Get.
type AgilePtr[T Interface] struct {
	mu sync.Mutex
	p  *Ptr[T]
}

// MakeAgile returns an AgilePtr holding its own reference to p's object. It
// fails with a winrt.NoSuchInterface error when the object is not agile.
// p remains owned by the caller.
func MakeAgile[T Interface](p *Ptr[T]) (*AgilePtr[T], error) {
	a, err := TryAs[IAgileObject](p)
	if err != nil {
		return nil, err
	}
	a.Release()
	return &AgilePtr[T]{p: p.Clone()}, nil
}

// Get returns a new owner of the object for use by the calling goroutine.
// It panics if a has been released.
func (a *AgilePtr[T]) Get() *Ptr[T] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.p.Clone()
}

// Release returns a's reference. Pointers previously obtained from Get are
// unaffected. Subsequent calls are no-ops.
func (a *AgilePtr[T]) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.p != nil {
		a.p.Release()
	}
}
