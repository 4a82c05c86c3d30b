// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"unsafe"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/com/automation"
)

var (
	IID_IRestrictedErrorInfo = &com.IID{Data1: 0x82BA7092, Data2: 0x4C88, Data3: 0x427D, Data4: [8]byte{0xA7, 0xBC, 0x16, 0xDD, 0x93, 0xFE, 0xB6, 0x7E}}
)

type IRestrictedErrorInfoVtbl struct {
	com.IUnknownVtbl
	GetErrorDetails uintptr
	GetReference    uintptr
}

// IRestrictedErrorInfo carries the extended description of the last error
// that a Windows Runtime component originated on the current thread.
type IRestrictedErrorInfo struct {
	Vtbl *IRestrictedErrorInfoVtbl
}

func (IRestrictedErrorInfo) IID() *com.IID {
	return IID_IRestrictedErrorInfo
}

// ErrorDetails is the content of an IRestrictedErrorInfo.
type ErrorDetails struct {
	Description           string
	Error                 winrt.Error
	RestrictedDescription string
	CapabilitySID         string
}

func takeBSTR(bs *automation.BSTR) string {
	defer bs.Close()
	return bs.String()
}

func (p *IRestrictedErrorInfo) GetErrorDetails() (ErrorDetails, error) {
	var desc, restrictedDesc, capSID automation.BSTR
	var code winrt.HRESULT
	hr := com.Call(
		p.Vtbl.GetErrorDetails,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&restrictedDesc)),
		uintptr(unsafe.Pointer(&capSID)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return ErrorDetails{}, e
	}

	return ErrorDetails{
		Description:           takeBSTR(&desc),
		Error:                 winrt.ErrorFromHRESULT(code),
		RestrictedDescription: takeBSTR(&restrictedDesc),
		CapabilitySID:         takeBSTR(&capSID),
	}, nil
}

func (p *IRestrictedErrorInfo) GetReference() (string, error) {
	var ref automation.BSTR
	hr := com.Call(
		p.Vtbl.GetReference,
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(&ref)),
	)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return "", e
	}

	return takeBSTR(&ref), nil
}

// GetRestrictedErrorInfo takes the current thread's restricted error info,
// clearing it. It returns nil and no error when there is none.
func GetRestrictedErrorInfo() (*com.Ptr[IRestrictedErrorInfo], error) {
	var info *IRestrictedErrorInfo
	hr := getRestrictedErrorInfo(&info)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	if info == nil {
		return nil, nil
	}

	return com.Attach(info), nil
}

// OriginateError records code and message as the current thread's
// restricted error info, as a Windows Runtime component does before failing
// a call. It reports whether the information was recorded.
func OriginateError(code winrt.HRESULT, message string) bool {
	hmsg, err := NewHString(message)
	if err != nil {
		return false
	}
	defer hmsg.Close()

	return roOriginateError(code, hmsg)
}
