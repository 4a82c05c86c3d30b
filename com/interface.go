// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"fmt"
	"reflect"
	"sync"
)

// Interface is implemented by the ABI struct of every interface that a Ptr
// can hold. The struct must have exactly one field: a pointer to its virtual
// table struct. A virtual table consists of uintptr slots, and begins with the
// table of the interface it extends, ultimately IUnknownVtbl:
//
//	type IFooVtbl struct {
//		com.IUnknownVtbl
//		Foo uintptr
//	}
//
//	type IFoo struct {
//		Vtbl *IFooVtbl
//	}
//
//	func (IFoo) IID() *com.IID { return IID_IFoo }
//
// Because an extending table embeds its base table first, a pointer to an
// IFoo may be reinterpreted as a pointer to the interface it extends. Upcast
// relies on this.
type Interface interface {
	// IID returns the interface ID. It is called on the zero value, so its
	// result must not depend on the receiver. Parameterized interfaces, whose
	// IIDs depend on their type arguments, return nil.
	IID() *IID
}

type layoutKey struct {
	derived reflect.Type
	base    reflect.Type
}

// layoutCache maps layoutKey to the error (or nil) from checkLayout.
var layoutCache sync.Map

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func typeName[T any]() string {
	return typeOf[T]().String()
}

// vtblType returns the virtual table type declared by the ABI struct t.
func vtblType(t reflect.Type) (reflect.Type, error) {
	if t.Kind() != reflect.Struct || t.NumField() != 1 {
		return nil, fmt.Errorf("%v must be a struct with a single virtual table pointer field", t)
	}
	ft := t.Field(0).Type
	if ft.Kind() != reflect.Pointer || ft.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("field %s of %v is not a pointer to a virtual table struct", t.Field(0).Name, t)
	}
	vt := ft.Elem()
	if !isSlotTable(vt) {
		return nil, fmt.Errorf("%v is not a virtual table: its fields must be uintptr slots, optionally preceded by a base table", vt)
	}
	return vt, nil
}

func isSlotTable(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		switch {
		case f.Type.Kind() == reflect.Uintptr:
		case i == 0 && f.Type.Kind() == reflect.Struct && isSlotTable(f.Type):
		default:
			return false
		}
	}
	return true
}

// vtblExtends reports whether base is derived itself, or is reached from
// derived by following first fields, ie. is a layout prefix of derived.
func vtblExtends(derived, base reflect.Type) bool {
	for {
		if derived == base {
			return true
		}
		if derived.Kind() != reflect.Struct || derived.NumField() == 0 {
			return false
		}
		derived = derived.Field(0).Type
	}
}

func checkLayout(derived, base reflect.Type) error {
	key := layoutKey{derived: derived, base: base}
	if v, ok := layoutCache.Load(key); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}

	err := computeLayout(derived, base)
	if err == nil {
		layoutCache.Store(key, nil)
	} else {
		layoutCache.Store(key, err)
	}
	return err
}

func computeLayout(derived, base reflect.Type) error {
	dv, err := vtblType(derived)
	if err != nil {
		return err
	}
	bv, err := vtblType(base)
	if err != nil {
		return err
	}
	if !vtblExtends(dv, bv) {
		return fmt.Errorf("%v does not extend %v: %v is not a prefix of %v", derived, base, bv, dv)
	}
	return nil
}

// assertExtends panics unless the virtual table of D begins with the virtual
// table of B. Violations are programming errors in interface definitions.
func assertExtends[D, B Interface]() {
	if err := checkLayout(typeOf[D](), typeOf[B]()); err != nil {
		panic(fmt.Sprintf("com: %v", err))
	}
}

// Extends reports whether interface D's virtual table begins with interface
// B's, so that a D may be used wherever a B is expected.
func Extends[D, B Interface]() bool {
	return checkLayout(typeOf[D](), typeOf[B]()) == nil
}
