// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package foundation

import (
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
)

var (
	IID_AsyncActionCompletedHandler = &com.IID{Data1: 0xA4ED5C81, Data2: 0x76C9, Data3: 0x40BD, Data4: [8]byte{0x8B, 0xE6, 0xB1, 0xD9, 0x0F, 0xB2, 0x0A, 0xE7}}
)

// AsyncActionCompletedHandler is invoked when an IAsyncAction completes.
type AsyncActionCompletedHandler struct {
	Vtbl *com.DelegateVtbl
}

func (AsyncActionCompletedHandler) IID() *com.IID {
	return IID_AsyncActionCompletedHandler
}

func (h *AsyncActionCompletedHandler) Invoke(action *IAsyncAction, status AsyncStatus) error {
	return errorOrNil(com.Call(h.Vtbl.Invoke, uintptr(unsafe.Pointer(h)), uintptr(unsafe.Pointer(action)), uintptr(status)))
}

// NewAsyncActionCompletedHandler returns a handler that calls fn. action is
// borrowed for the duration of the call; Clone it to keep it. An error
// returned by fn is reported to the caller of Invoke as its HRESULT.
func NewAsyncActionCompletedHandler(fn func(action *com.Ptr[IAsyncAction], status AsyncStatus) error) *com.Ptr[AsyncActionCompletedHandler] {
	return com.NewDelegate[AsyncActionCompletedHandler](IID_AsyncActionCompletedHandler, func(sender unsafe.Pointer, args uintptr) winrt.HRESULT {
		var action *com.Ptr[IAsyncAction]
		if sender != nil {
			action = com.Wrap((*IAsyncAction)(sender))
			defer action.Release()
		}
		return winrt.HRESULTFromError(fn(action, AsyncStatus(args)))
	})
}

// AsyncOperationCompletedHandler is the layout of every
// AsyncOperationCompletedHandler<TResult>. Its IID depends on TResult.
type AsyncOperationCompletedHandler struct {
	Vtbl *com.DelegateVtbl
}

// IID returns nil.
func (AsyncOperationCompletedHandler) IID() *com.IID {
	return nil
}

func (h *AsyncOperationCompletedHandler) Invoke(op *IAsyncOperation, status AsyncStatus) error {
	return errorOrNil(com.Call(h.Vtbl.Invoke, uintptr(unsafe.Pointer(h)), uintptr(unsafe.Pointer(op)), uintptr(status)))
}

// NewAsyncOperationCompletedHandler returns a handler for the
// AsyncOperationCompletedHandler<TResult> instantiation identified by iid,
// which calls fn. op is borrowed for the duration of the call.
func NewAsyncOperationCompletedHandler(iid *com.IID, fn func(op *com.Ptr[IAsyncOperation], status AsyncStatus) error) *com.Ptr[AsyncOperationCompletedHandler] {
	return com.NewDelegate[AsyncOperationCompletedHandler](iid, func(sender unsafe.Pointer, args uintptr) winrt.HRESULT {
		var op *com.Ptr[IAsyncOperation]
		if sender != nil {
			op = com.Wrap((*IAsyncOperation)(sender))
			defer op.Release()
		}
		return winrt.HRESULTFromError(fn(op, AsyncStatus(args)))
	})
}
