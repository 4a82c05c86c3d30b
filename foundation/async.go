// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package foundation binds the Windows.Foundation interfaces that most
// runtime classes depend on.
package foundation

import (
	"fmt"
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/rt"
)

var (
	IID_IAsyncInfo   = &com.IID{Data1: 0x00000036, Data2: 0x0000, Data3: 0x0000, Data4: [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}}
	IID_IAsyncAction = &com.IID{Data1: 0x5A648006, Data2: 0x843A, Data3: 0x4DA9, Data4: [8]byte{0x86, 0x5B, 0x9D, 0x26, 0xE5, 0xDF, 0xAD, 0x7B}}
)

// AsyncStatus is the state of an asynchronous operation.
type AsyncStatus int32

const (
	Started   = AsyncStatus(0)
	Completed = AsyncStatus(1)
	Canceled  = AsyncStatus(2)
	Error     = AsyncStatus(3)
)

func (s AsyncStatus) String() string {
	switch s {
	case Started:
		return "Started"
	case Completed:
		return "Completed"
	case Canceled:
		return "Canceled"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("AsyncStatus(%d)", int32(s))
	}
}

func errorOrNil(hr winrt.HRESULT) error {
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return e
	}
	return nil
}

type IAsyncInfoVtbl struct {
	rt.IInspectableVtbl
	GetID        uintptr
	GetStatus    uintptr
	GetErrorCode uintptr
	Cancel       uintptr
	Close        uintptr
}

// IAsyncInfo is implemented by every asynchronous action and operation.
type IAsyncInfo struct {
	Vtbl *IAsyncInfoVtbl
}

func (IAsyncInfo) IID() *com.IID {
	return IID_IAsyncInfo
}

func (p *IAsyncInfo) ID() (uint32, error) {
	var id uint32
	hr := com.Call(p.Vtbl.GetID, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&id)))
	return id, errorOrNil(hr)
}

func (p *IAsyncInfo) Status() (AsyncStatus, error) {
	var status AsyncStatus
	hr := com.Call(p.Vtbl.GetStatus, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&status)))
	return status, errorOrNil(hr)
}

// ErrorCode returns the error that the operation failed with. It is only
// meaningful once Status reports Error.
func (p *IAsyncInfo) ErrorCode() (winrt.Error, error) {
	var code winrt.HRESULT
	hr := com.Call(p.Vtbl.GetErrorCode, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&code)))
	return winrt.ErrorFromHRESULT(code), errorOrNil(hr)
}

func (p *IAsyncInfo) Cancel() error {
	return errorOrNil(com.Call(p.Vtbl.Cancel, uintptr(unsafe.Pointer(p))))
}

func (p *IAsyncInfo) Close() error {
	return errorOrNil(com.Call(p.Vtbl.Close, uintptr(unsafe.Pointer(p))))
}

type IAsyncActionVtbl struct {
	rt.IInspectableVtbl
	PutCompleted uintptr
	GetCompleted uintptr
	GetResults   uintptr
}

// IAsyncAction is an asynchronous operation without a result.
type IAsyncAction struct {
	Vtbl *IAsyncActionVtbl
}

func (IAsyncAction) IID() *com.IID {
	return IID_IAsyncAction
}

// SetCompleted registers handler to be invoked once the action completes.
// The action keeps its own reference to handler.
func (p *IAsyncAction) SetCompleted(handler *AsyncActionCompletedHandler) error {
	return errorOrNil(com.Call(p.Vtbl.PutCompleted, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(handler))))
}

// Completed returns the registered completion handler, or nil when none is.
func (p *IAsyncAction) Completed() (*com.Ptr[AsyncActionCompletedHandler], error) {
	var handler *AsyncActionCompletedHandler
	hr := com.Call(p.Vtbl.GetCompleted, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&handler)))
	if err := errorOrNil(hr); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, nil
	}
	return com.Attach(handler), nil
}

// GetResults returns the action's failure, if any. It must only be called
// after completion.
func (p *IAsyncAction) GetResults() error {
	return errorOrNil(com.Call(p.Vtbl.GetResults, uintptr(unsafe.Pointer(p))))
}

type IAsyncOperationVtbl struct {
	rt.IInspectableVtbl
	PutCompleted uintptr
	GetCompleted uintptr
	GetResults   uintptr
}

// IAsyncOperation is the layout of every IAsyncOperation<TResult>. Since the
// interface is parameterized, its IID depends on TResult and must be supplied
// by the caller (see com.QueryIID).
type IAsyncOperation struct {
	Vtbl *IAsyncOperationVtbl
}

// IID returns nil.
func (IAsyncOperation) IID() *com.IID {
	return nil
}

// SetCompleted registers handler to be invoked once the operation completes.
func (p *IAsyncOperation) SetCompleted(handler *AsyncOperationCompletedHandler) error {
	return errorOrNil(com.Call(p.Vtbl.PutCompleted, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(handler))))
}

// Completed returns the registered completion handler, or nil when none is.
func (p *IAsyncOperation) Completed() (*com.Ptr[AsyncOperationCompletedHandler], error) {
	var handler *AsyncOperationCompletedHandler
	hr := com.Call(p.Vtbl.GetCompleted, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&handler)))
	if err := errorOrNil(hr); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, nil
	}
	return com.Attach(handler), nil
}

// OperationResults returns the result of a completed operation. R must be the
// ABI representation of TResult: a numeric type, an rt.HString, or a raw
// interface pointer, which the caller then owns.
func OperationResults[R any](op *com.Ptr[IAsyncOperation]) (R, error) {
	var result R
	p := op.Get()
	hr := com.Call(p.Vtbl.GetResults, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&result)))
	return result, errorOrNil(hr)
}

// Info returns the IAsyncInfo view of an action or operation.
func Info[T com.Interface](p *com.Ptr[T]) (*com.Ptr[IAsyncInfo], error) {
	return com.TryAs[IAsyncInfo](p)
}
