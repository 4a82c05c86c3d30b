// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package winrt

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	// genericError encodes an Error whose message string is very generic.
	genericError = Error(hresultFromFacilityAndCode(hrFail, facilityWin32, hrCode(windows.ERROR_UNIDENTIFIED_ERROR)))
)

// Common HRESULT codes that don't use Win32 facilities, but have meanings that
// we can manually translate to Win32 error codes.
var commonHRESULTToErrno = map[HRESULT]windows.Errno{
	E_ABORT:       windows.ERROR_REQUEST_ABORTED,
	E_FAIL:        windows.ERROR_UNIDENTIFIED_ERROR,
	E_NOINTERFACE: windows.ERROR_NOINTERFACE,
	E_NOTIMPL:     windows.ERROR_CALL_NOT_IMPLEMENTED,
	E_UNEXPECTED:  windows.ERROR_INTERNAL_ERROR,
}

// ErrorFromErrno creates an Error from e.
func ErrorFromErrno(e windows.Errno) Error {
	if e == windows.ERROR_SUCCESS {
		return Error(S_OK)
	}
	if ue := uint32(e); (ue & hrFlagBitsMask) == hrCustomerBit {
		// syscall.APPLICATION_ERROR == hrCustomerBit, so the only other thing
		// we need to do to transform this into an HRESULT is add the fail flag
		return Error(HRESULT(ue | hrFailBit))
	}
	if uint32(e) > hrCodeMax {
		// Can't be encoded in HRESULT, return generic error instead
		return genericError
	}
	return Error(hresultFromFacilityAndCode(hrFail, facilityWin32, hrCode(e)))
}

// ErrorFromNTStatus creates an Error from s.
func ErrorFromNTStatus(s windows.NTStatus) Error {
	if s == windows.STATUS_SUCCESS {
		return Error(S_OK)
	}
	return Error(HRESULT(s) | hrFacilityNTBit)
}

// NewError converts e into an Error if e's type is supported. It returns
// both the Error and a bool indicating whether the conversion was successful.
func NewError(e any) (Error, bool) {
	switch v := e.(type) {
	case Error:
		return v, true
	case windows.NTStatus:
		return ErrorFromNTStatus(v), true
	case windows.Errno:
		return ErrorFromErrno(v), true
	case HRESULT:
		return ErrorFromHRESULT(v), true
	default:
		return ErrorFromHRESULT(hrTYPE_E_WRONGTYPEKIND), false
	}
}

type errnoFailHandler func(hr HRESULT) windows.Errno

func (e Error) toErrno(f errnoFailHandler) windows.Errno {
	hr := HRESULT(e)

	if hr == S_OK {
		return windows.ERROR_SUCCESS
	}

	if hr.isCustomer() {
		return windows.Errno(uint32(e) ^ hrFailBit)
	}

	if hr.isNT() {
		return e.AsNTStatus().Errno()
	}

	if hr.facility() == facilityWin32 {
		return windows.Errno(hr.code())
	}

	if errno, ok := commonHRESULTToErrno[hr]; ok {
		return errno
	}

	return f(hr)
}

// AsErrno converts the Error to a windows.Errno, but panics if not possible.
func (e Error) AsErrno() windows.Errno {
	handler := func(hr HRESULT) windows.Errno {
		panic(fmt.Sprintf("winrt.Error: Called AsErrno on a non-convertable HRESULT 0x%08X", uint32(hr)))
	}

	return e.toErrno(handler)
}

type ntStatusFailHandler func(hr HRESULT) windows.NTStatus

func (e Error) toNTStatus(f ntStatusFailHandler) windows.NTStatus {
	hr := HRESULT(e)

	if hr == S_OK {
		return windows.STATUS_SUCCESS
	}

	if hr.isNT() {
		return windows.NTStatus(hr ^ hrFacilityNTBit)
	}

	return f(hr)
}

// AsNTStatus converts the Error to a windows.NTStatus, but panics if not possible.
func (e Error) AsNTStatus() windows.NTStatus {
	handler := func(hr HRESULT) windows.NTStatus {
		panic(fmt.Sprintf("winrt.Error: Called AsNTStatus on a non-NTSTATUS HRESULT 0x%08X", uint32(hr)))
	}

	return e.toNTStatus(handler)
}

// TryAsErrno converts the Error to a windows.Errno, or returns defval if
// such a conversion is not possible.
func (e Error) TryAsErrno(defval windows.Errno) windows.Errno {
	handler := func(hr HRESULT) windows.Errno {
		return defval
	}

	return e.toErrno(handler)
}

// TryAsNTStatus converts the Error to a windows.NTStatus, or returns defval if
// such a conversion is not possible.
func (e Error) TryAsNTStatus(defval windows.NTStatus) windows.NTStatus {
	handler := func(hr HRESULT) windows.NTStatus {
		return defval
	}

	return e.toNTStatus(handler)
}

// IsAvailableAsHRESULT returns true if e may be converted to an HRESULT.
func (e Error) IsAvailableAsHRESULT() bool {
	return true
}

// IsAvailableAsErrno returns true if e may be converted to a windows.Errno.
func (e Error) IsAvailableAsErrno() bool {
	hr := HRESULT(e)
	if hr.isCustomer() || e.IsAvailableAsNTStatus() || (hr.facility() == facilityWin32) {
		return true
	}
	_, convertable := commonHRESULTToErrno[hr]
	return convertable
}

// IsAvailableAsNTStatus returns true if e may be converted to a windows.NTStatus.
func (e Error) IsAvailableAsNTStatus() bool {
	return HRESULT(e) == S_OK || HRESULT(e).isNT()
}

func systemMessage(hr HRESULT) (string, bool) {
	if hr.isCustomer() {
		return windows.Errno(uint32(hr) ^ hrFailBit).Error(), true
	}

	buf := make([]uint16, 300)
	const flags = windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS
	lenExclNul, err := windows.FormatMessage(flags, 0, uint32(hr), 0, buf, nil)
	if err != nil || lenExclNul == 0 {
		return "", false
	}
	for ; lenExclNul > 0 && (buf[lenExclNul-1] == '\n' || buf[lenExclNul-1] == '\r'); lenExclNul-- {
	}
	return windows.UTF16ToString(buf[:lenExclNul]), true
}
