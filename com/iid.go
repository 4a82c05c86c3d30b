// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"github.com/dblohm7/winrt"
)

// IID is a GUID that represents an interface ID.
type IID winrt.GUID

// CLSID is a GUID that represents a class ID.
type CLSID winrt.GUID

func (iid IID) String() string {
	return winrt.GUID(iid).String()
}

func (clsid CLSID) String() string {
	return winrt.GUID(clsid).String()
}

// MustGetIID parses s, a string containing an IID and returns a pointer to the
// parsed IID. s must be specified in the format "{XXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}".
// If there is an error parsing s, MustGetIID panics.
func MustGetIID(s string) *IID {
	return (*IID)(winrt.MustGetGUID(s))
}

// MustGetCLSID parses s, a string containing a CLSID and returns a pointer to the
// parsed CLSID. s must be specified in the format "{XXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}".
// If there is an error parsing s, MustGetCLSID panics.
func MustGetCLSID(s string) *CLSID {
	return (*CLSID)(winrt.MustGetGUID(s))
}

// IIDOf returns the interface ID associated with T, or nil when T is a
// parameterized interface.
func IIDOf[T Interface]() *IID {
	var t T
	return t.IID()
}
