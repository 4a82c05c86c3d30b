// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package rt

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys roInitialize(initType Apartment) (hr winrt.HRESULT) = combase.RoInitialize
//sys roUninitialize() = combase.RoUninitialize
//sys roActivateInstance(activatableClassID HString, instance **IInspectable) (hr winrt.HRESULT) = combase.RoActivateInstance
//sys roGetActivationFactory(activatableClassID HString, iid *com.IID, factory **com.IUnknown) (hr winrt.HRESULT) = combase.RoGetActivationFactory
//sys roOriginateError(errorCode winrt.HRESULT, message HString) (ret bool) = combase.RoOriginateError
//sys getRestrictedErrorInfo(info **IRestrictedErrorInfo) (hr winrt.HRESULT) = combase.GetRestrictedErrorInfo

//sys windowsCreateString(sourceString *uint16, length uint32, str *HString) (hr winrt.HRESULT) = combase.WindowsCreateString
//sys windowsDeleteString(str HString) (hr winrt.HRESULT) = combase.WindowsDeleteString
//sys windowsGetStringRawBuffer(str HString, length *uint32) (ret *uint16) = combase.WindowsGetStringRawBuffer
