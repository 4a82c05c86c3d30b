// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
)

// Apartment selects the threading model that Init enters.
type Apartment int32

const (
	// SingleThreaded creates a single-threaded apartment on the calling OS
	// thread. It should only be used by threads that pump messages.
	SingleThreaded = Apartment(0) // RO_INIT_SINGLETHREADED
	// MultiThreaded makes the process's multi-threaded apartment available to
	// every OS thread that does not explicitly enter another apartment.
	MultiThreaded = Apartment(1) // RO_INIT_MULTITHREADED
)

func (a Apartment) String() string {
	switch a {
	case SingleThreaded:
		return "sta"
	case MultiThreaded:
		return "mta"
	default:
		return fmt.Sprintf("Apartment(%d)", int32(a))
	}
}

// ParseApartment parses "sta" or "mta", case-insensitively.
func ParseApartment(s string) (Apartment, error) {
	switch strings.ToLower(s) {
	case "sta":
		return SingleThreaded, nil
	case "mta", "":
		return MultiThreaded, nil
	default:
		return 0, fmt.Errorf("unknown apartment %q, want \"sta\" or \"mta\"", s)
	}
}

var (
	IID_IActivationFactory = &com.IID{Data1: 0x00000035, Data2: 0x0000, Data3: 0x0000, Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}}
)

type IActivationFactoryVtbl struct {
	IInspectableVtbl
	ActivateInstance uintptr
}

// IActivationFactory creates instances of runtime classes that have a
// default constructor.
type IActivationFactory struct {
	Vtbl *IActivationFactoryVtbl
}

func (IActivationFactory) IID() *com.IID {
	return IID_IActivationFactory
}

// ActivateInstance creates a new instance using the class's default
// constructor. The caller owns the returned reference.
func (p *IActivationFactory) ActivateInstance() (*IInspectable, error) {
	var result *IInspectable
	hr := com.Call(
		p.Vtbl.ActivateInstance,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&result)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	if result == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_POINTER)
	}

	return result, nil
}

// ActivateFrom creates an instance with factory's default constructor and
// returns it through interface T.
func ActivateFrom[T com.Interface](factory *com.Ptr[IActivationFactory]) (*com.Ptr[T], error) {
	obj, err := factory.Get().ActivateInstance()
	if err != nil {
		return nil, err
	}

	insp := com.Attach(obj)
	defer insp.Release()
	return com.TryAs[T](insp)
}
