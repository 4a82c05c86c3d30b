// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"unsafe"

	"github.com/dblohm7/winrt"
)

func createHString(buf []uint16) (HString, error) {
	var h HString
	hr := windowsCreateString(unsafe.SliceData(buf), uint32(len(buf)), &h)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return 0, e
	}
	return h, nil
}

func deleteHString(h HString) winrt.HRESULT {
	return windowsDeleteString(h)
}

// hstringBuffer returns h's characters, without the NUL terminator. The
// slice aliases memory owned by h.
func hstringBuffer(h HString) []uint16 {
	var n uint32
	p := windowsGetStringRawBuffer(h, &n)
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}
