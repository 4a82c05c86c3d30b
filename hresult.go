// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Note this file is explicitly available on non-Windows platforms, in order to
// aid `go generate` tooling on those platforms. It should not take a dependency
// on x/sys/windows.

package winrt

import (
	"golang.org/x/exp/constraints"
)

// HRESULT is equivalent to the HRESULT type in the Win32 SDK for C/C++.
type HRESULT int32

const (
	S_OK    = HRESULT(0)
	S_FALSE = HRESULT(1)

	E_ABORT        = HRESULT(-((0x80004004 ^ 0xFFFFFFFF) + 1))
	E_ACCESSDENIED = HRESULT(-((0x80070005 ^ 0xFFFFFFFF) + 1))
	E_FAIL         = HRESULT(-((0x80004005 ^ 0xFFFFFFFF) + 1))
	E_HANDLE       = HRESULT(-((0x80070006 ^ 0xFFFFFFFF) + 1))
	E_INVALIDARG   = HRESULT(-((0x80070057 ^ 0xFFFFFFFF) + 1))
	E_NOINTERFACE  = HRESULT(-((0x80004002 ^ 0xFFFFFFFF) + 1))
	E_NOTIMPL      = HRESULT(-((0x80004001 ^ 0xFFFFFFFF) + 1))
	E_OUTOFMEMORY  = HRESULT(-((0x8007000E ^ 0xFFFFFFFF) + 1))
	E_POINTER      = HRESULT(-((0x80004003 ^ 0xFFFFFFFF) + 1))
	E_UNEXPECTED   = HRESULT(-((0x8000FFFF ^ 0xFFFFFFFF) + 1))

	E_BOUNDS              = HRESULT(-((0x8000000B ^ 0xFFFFFFFF) + 1))
	E_ILLEGAL_METHOD_CALL = HRESULT(-((0x8000000E ^ 0xFFFFFFFF) + 1))
	RO_E_CLOSED           = HRESULT(-((0x80000013 ^ 0xFFFFFFFF) + 1))
	RPC_E_WRONG_THREAD    = HRESULT(-((0x8001010E ^ 0xFFFFFFFF) + 1))
	CO_E_NOTINITIALIZED   = HRESULT(-((0x800401F0 ^ 0xFFFFFFFF) + 1))

	hrTYPE_E_WRONGTYPEKIND = HRESULT(-((0x8002802A ^ 0xFFFFFFFF) + 1))
)

type hrCode uint16
type hrFacility uint16
type failBit bool

const (
	hrFlagBitsMask  = 0xF8000000
	hrFacilityMax   = 0x00001FFF
	hrFacilityMask  = hrFacilityMax << 16
	hrCodeMax       = 0x0000FFFF
	hrCodeMask      = hrCodeMax
	hrFailBit       = 0x80000000
	hrCustomerBit   = 0x20000000 // Also defined as syscall.APPLICATION_ERROR
	hrFacilityNTBit = 0x10000000
)

const (
	facilityWin32 = hrFacility(7)
)

const (
	hrFail    = failBit(true)
	hrSuccess = failBit(false)
)

// HRESULTFromBits reinterprets the low 32 bits of v, which is typically the
// return register of a native call, as an HRESULT.
func HRESULTFromBits[T constraints.Integer](v T) HRESULT {
	return HRESULT(int32(uint32(v)))
}

// Succeeded returns true when hr is successful, but its actual error code
// may include additional status information.
func (hr HRESULT) Succeeded() bool {
	return hr >= 0
}

// Failed returns true when hr contains a failure code.
func (hr HRESULT) Failed() bool {
	return hr < 0
}

func (hr HRESULT) isNT() bool {
	return (hr & (hrCustomerBit | hrFacilityNTBit)) == hrFacilityNTBit
}

func (hr HRESULT) isCustomer() bool {
	return (hr & hrCustomerBit) != 0
}

// isNormal returns true when the customer and NT bits are cleared, ie hr's
// encoding contains valid facility and code fields.
func (hr HRESULT) isNormal() bool {
	return (hr & (hrCustomerBit | hrFacilityNTBit)) == 0
}

// facility returns the facility bits of hr. Only valid when isNormal is true.
func (hr HRESULT) facility() hrFacility {
	return hrFacility((uint32(hr) >> 16) & hrFacilityMax)
}

// code returns the code bits of hr. Only valid when isNormal is true.
func (hr HRESULT) code() hrCode {
	return hrCode(uint32(hr) & hrCodeMask)
}

func hresultFromFacilityAndCode(isFail failBit, f hrFacility, c hrCode) HRESULT {
	var r uint32
	if isFail {
		r |= hrFailBit
	}
	r |= (uint32(f) << 16) & hrFacilityMask
	r |= uint32(c) & hrCodeMask
	return HRESULT(r)
}
