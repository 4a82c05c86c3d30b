// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/exp/slices"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/internal/abi"
)

var (
	IID_IInspectable = &com.IID{Data1: 0xAF86E2E0, Data2: 0xB12D, Data3: 0x4C6A, Data4: [8]byte{0x9C, 0x5A, 0xD7, 0xAA, 0x65, 0x10, 0x1E, 0x90}}
)

// TrustLevel is the trust level that a runtime class declares.
type TrustLevel int32

const (
	BaseTrust    = TrustLevel(0)
	PartialTrust = TrustLevel(1)
	FullTrust    = TrustLevel(2)
)

func (t TrustLevel) String() string {
	switch t {
	case BaseTrust:
		return "BaseTrust"
	case PartialTrust:
		return "PartialTrust"
	case FullTrust:
		return "FullTrust"
	default:
		return fmt.Sprintf("TrustLevel(%d)", int32(t))
	}
}

type IInspectableVtbl struct {
	com.IUnknownVtbl
	GetIids             uintptr
	GetRuntimeClassName uintptr
	GetTrustLevel       uintptr
}

// IInspectable is the base interface of every Windows Runtime object.
type IInspectable struct {
	Vtbl *IInspectableVtbl
}

func (IInspectable) IID() *com.IID {
	return IID_IInspectable
}

// GetIids returns the interfaces that the object's runtime class implements,
// excluding IUnknown and IInspectable.
func (p *IInspectable) GetIids() ([]com.IID, error) {
	var count uint32
	var iids *com.IID
	hr := com.Call(
		p.Vtbl.GetIids,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&iids)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	defer abi.TaskMemFree(unsafe.Pointer(iids))

	if count == 0 || iids == nil {
		return nil, nil
	}
	return slices.Clone(unsafe.Slice(iids, count)), nil
}

// GetRuntimeClassName returns the fully-qualified name of the object's
// runtime class.
func (p *IInspectable) GetRuntimeClassName() (string, error) {
	var name HString
	hr := com.Call(
		p.Vtbl.GetRuntimeClassName,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&name)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return "", e
	}
	defer name.Close()

	return name.String(), nil
}

func (p *IInspectable) GetTrustLevel() (TrustLevel, error) {
	var level TrustLevel
	hr := com.Call(
		p.Vtbl.GetTrustLevel,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&level)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return 0, e
	}

	return level, nil
}

// Inspect queries p's object for IInspectable.
func Inspect[T com.Interface](p *com.Ptr[T]) (*com.Ptr[IInspectable], error) {
	return com.TryAs[IInspectable](p)
}

// ObjectInfo is what an object reports about itself through IInspectable.
type ObjectInfo struct {
	ClassName  string
	IIDs       []com.IID
	TrustLevel TrustLevel
}

// Describe gathers p's runtime class name, implemented interfaces and trust
// level. The first failure is returned as is.
func Describe[T com.Interface](p *com.Ptr[T]) (ObjectInfo, error) {
	var info ObjectInfo

	insp, err := Inspect(p)
	if err != nil {
		return info, err
	}
	defer insp.Release()

	obj := insp.Get()
	if info.ClassName, err = obj.GetRuntimeClassName(); err != nil {
		return info, err
	}
	if info.IIDs, err = obj.GetIids(); err != nil {
		return info, err
	}
	if info.TrustLevel, err = obj.GetTrustLevel(); err != nil {
		return info, err
	}

	return info, nil
}

// Implements reports whether p's object answers QueryInterface for iid. A
// failure other than winrt.NoSuchInterface is returned as an error.
func Implements[T com.Interface](p *com.Ptr[T], iid *com.IID) (bool, error) {
	q, err := com.QueryIID[com.IUnknown](p, iid)
	switch {
	case err == nil:
		q.Release()
		return true, nil
	case errors.Is(err, winrt.NoSuchInterface):
		return false, nil
	default:
		return false, err
	}
}
