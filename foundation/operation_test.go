// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package foundation_test

import (
	"errors"
	"testing"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/foundation"
	"github.com/dblohm7/winrt/internal/comtest"
)

// IAsyncOperation<UInt32>
var iidAsyncOperationUInt32 = com.MustGetIID("{EF60385F-BE78-584B-AAEF-7829ADA2B0DE}")

// AsyncOperationCompletedHandler<UInt32>
var iidAsyncOperationCompletedHandlerUInt32 = com.MustGetIID("{9343B6E7-E3D2-5E4A-AB2D-2BCE4919A6A4}")

func newFakeOperation(result uint32) *comtest.Object {
	return comtest.New(comtest.Config{
		Inspectable: true,
		IIDs:        []*com.IID{iidAsyncOperationUInt32},
		Methods: []comtest.Method{
			{Name: "put_Completed", Arity: 1, Fn: func(*comtest.Object, []uintptr) winrt.HRESULT {
				return winrt.E_NOTIMPL
			}},
			{Name: "get_Completed", Arity: 1, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				*comtest.Out[uintptr](args[0]) = 0
				return winrt.S_OK
			}},
			{Name: "GetResults", Arity: 1, Fn: func(_ *comtest.Object, args []uintptr) winrt.HRESULT {
				*comtest.Out[uint32](args[0]) = result
				return winrt.S_OK
			}},
		},
	})
}

func TestOperationResults(t *testing.T) {
	obj := newFakeOperation(42)
	unk := comtest.Attach[com.IUnknown](obj)
	defer unk.Release()

	op, err := com.QueryIID[foundation.IAsyncOperation](unk, iidAsyncOperationUInt32)
	if err != nil {
		t.Fatalf("QueryIID got %v, want nil", err)
	}
	defer op.Release()

	got, err := foundation.OperationResults[uint32](op)
	if err != nil {
		t.Fatalf("OperationResults got %v, want nil", err)
	}
	if got != 42 {
		t.Errorf("OperationResults got %d, want 42", got)
	}

	handler, err := op.Get().Completed()
	if err != nil || handler != nil {
		t.Errorf("Completed got (%v, %v), want (nil, nil)", handler, err)
	}
	if err := op.Get().SetCompleted(nil); !errors.Is(err, winrt.NotImplemented) {
		t.Errorf("SetCompleted got %v, want %v", err, winrt.NotImplemented)
	}
}

func TestAsyncOperationCompletedHandler(t *testing.T) {
	obj := newFakeOperation(7)
	unk := comtest.Attach[com.IUnknown](obj)
	op, err := com.QueryIID[foundation.IAsyncOperation](unk, iidAsyncOperationUInt32)
	unk.Release()
	if err != nil {
		t.Fatalf("QueryIID got %v, want nil", err)
	}

	var got uint32
	handler := foundation.NewAsyncOperationCompletedHandler(iidAsyncOperationCompletedHandlerUInt32,
		func(op *com.Ptr[foundation.IAsyncOperation], status foundation.AsyncStatus) error {
			if op == nil {
				return winrt.ErrorFromKind(winrt.InvalidPointer)
			}
			var err error
			got, err = foundation.OperationResults[uint32](op)
			return err
		})
	defer handler.Release()

	// The handler answers for the instantiation's IID.
	again, err := com.QueryIID[foundation.AsyncOperationCompletedHandler](handler, iidAsyncOperationCompletedHandlerUInt32)
	if err != nil {
		t.Fatalf("QueryIID(handler) got %v, want nil", err)
	}
	again.Release()

	if err := handler.Get().Invoke(op.Get(), foundation.Completed); err != nil {
		t.Errorf("Invoke got %v, want nil", err)
	}
	if got != 7 {
		t.Errorf("handler saw result %d, want 7", got)
	}

	op.Release()
	if obj.Destroyed() != 1 {
		t.Errorf("operation was not destroyed after its last release")
	}

	err = handler.Get().Invoke(nil, foundation.Error)
	if !errors.Is(err, winrt.InvalidPointer) {
		t.Errorf("Invoke(nil) got %v, want %v", err, winrt.InvalidPointer)
	}
}
