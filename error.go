// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package winrt

import (
	"errors"
	"fmt"
)

// Error represents a failure reported by the Windows Runtime or by COM.
// Errors are HRESULTs under the hood because the HRESULT encoding allows for
// all the other common types of Windows errors to be encoded within them.
// The raw value is always preserved, so converting an HRESULT to an Error and
// back is lossless.
type Error HRESULT

// Kind classifies an Error into one of the well-known failure categories.
// Any HRESULT that does not correspond to a named Kind is classified as Other.
type Kind int

const (
	// Other is the catch-all for HRESULTs without a named Kind. The Error
	// carrying it still holds the raw value.
	Other Kind = iota
	OperationAborted
	AccessDenied
	UnspecifiedFailure
	InvalidHandle
	InvalidArgument
	NoSuchInterface
	NotImplemented
	OutOfMemory
	InvalidPointer
	UnexpectedFailure

	numKinds
)

var kindHRESULTs = [numKinds]HRESULT{
	OperationAborted:   E_ABORT,
	AccessDenied:       E_ACCESSDENIED,
	UnspecifiedFailure: E_FAIL,
	InvalidHandle:      E_HANDLE,
	InvalidArgument:    E_INVALIDARG,
	NoSuchInterface:    E_NOINTERFACE,
	NotImplemented:     E_NOTIMPL,
	OutOfMemory:        E_OUTOFMEMORY,
	InvalidPointer:     E_POINTER,
	UnexpectedFailure:  E_UNEXPECTED,
}

var kindNames = [numKinds]string{
	Other:              "other failure",
	OperationAborted:   "operation aborted",
	AccessDenied:       "access denied",
	UnspecifiedFailure: "unspecified failure",
	InvalidHandle:      "invalid handle",
	InvalidArgument:    "invalid argument",
	NoSuchInterface:    "no such interface",
	NotImplemented:     "not implemented",
	OutOfMemory:        "out of memory",
	InvalidPointer:     "invalid pointer",
	UnexpectedFailure:  "unexpected failure",
}

// Kinds returns every named Kind, excluding Other.
func Kinds() []Kind {
	result := make([]Kind, 0, numKinds-1)
	for k := Other + 1; k < numKinds; k++ {
		result = append(result, k)
	}
	return result
}

// KindOf classifies hr. Successful HRESULTs and those without a named Kind
// are classified as Other.
func KindOf(hr HRESULT) Kind {
	for k := Other + 1; k < numKinds; k++ {
		if kindHRESULTs[k] == hr {
			return k
		}
	}
	return Other
}

// HRESULT returns the documented status code for k. Other has no code of its
// own, so its second return value is false.
func (k Kind) HRESULT() (HRESULT, bool) {
	if k <= Other || k >= numKinds {
		return 0, false
	}
	return kindHRESULTs[k], true
}

func (k Kind) String() string {
	if k < Other || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error allows k to be used as the target of errors.Is: any Error whose Kind
// is k matches it.
func (k Kind) Error() string {
	return k.String()
}

// ErrorFromHRESULT creates an Error from hr.
func ErrorFromHRESULT(hr HRESULT) Error {
	return Error(hr)
}

// ErrorFromKind returns the Error corresponding to the documented status code
// of k. It panics when k is Other, which has no code of its own.
func ErrorFromKind(k Kind) Error {
	hr, ok := k.HRESULT()
	if !ok {
		panic(fmt.Sprintf("winrt.ErrorFromKind: %v has no HRESULT", k))
	}
	return Error(hr)
}

// HRESULTFromError converts err back into an HRESULT for returning across the
// native boundary. nil becomes S_OK; errors that do not wrap an Error become
// E_FAIL.
func HRESULTFromError(err error) HRESULT {
	if err == nil {
		return S_OK
	}
	var e Error
	if errors.As(err, &e) {
		return e.AsHRESULT()
	}
	var k Kind
	if errors.As(err, &k) {
		if hr, ok := k.HRESULT(); ok {
			return hr
		}
	}
	return E_FAIL
}

// IsOK returns true when the Error is unconditionally successful.
func (e Error) IsOK() bool {
	return HRESULT(e) == S_OK
}

// Succeeded returns true when the Error is successful, but its error code
// may include additional status information.
func (e Error) Succeeded() bool {
	return HRESULT(e).Succeeded()
}

// Failed returns true when the Error contains a failure code.
func (e Error) Failed() bool {
	return HRESULT(e).Failed()
}

// AsHRESULT converts the Error to a HRESULT.
func (e Error) AsHRESULT() HRESULT {
	return HRESULT(e)
}

// Kind classifies e.
func (e Error) Kind() Kind {
	return KindOf(HRESULT(e))
}

// Is reports whether target is e itself or the Kind of e.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case Error:
		return t == e
	case Kind:
		return e.Failed() && t == e.Kind()
	}
	return false
}

// Error produces a human-readable message describing Error e.
func (e Error) Error() string {
	if msg, ok := systemMessage(HRESULT(e)); ok {
		return msg
	}
	return fmt.Sprintf("%v (0x%08X)", e.Kind(), uint32(e))
}
