// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package rt

import (
	"sync"

	"github.com/dblohm7/winrt"
)

// Without a native runtime, HStrings are handles into a process-wide table.

const hstringStride = 8

var (
	hstringMu   sync.Mutex
	hstrings    = make(map[HString][]uint16)
	lastHString = HString(0x1000)
)

func createHString(buf []uint16) (HString, error) {
	hstringMu.Lock()
	defer hstringMu.Unlock()

	lastHString += hstringStride
	hstrings[lastHString] = append([]uint16(nil), buf...)
	return lastHString, nil
}

func deleteHString(h HString) winrt.HRESULT {
	hstringMu.Lock()
	defer hstringMu.Unlock()

	if _, ok := hstrings[h]; !ok {
		return winrt.E_INVALIDARG
	}
	delete(hstrings, h)
	return winrt.S_OK
}

func hstringBuffer(h HString) []uint16 {
	hstringMu.Lock()
	defer hstringMu.Unlock()

	buf, ok := hstrings[h]
	if !ok {
		panic("rt: use of deleted HString")
	}
	return buf
}

func liveHStrings() int {
	hstringMu.Lock()
	defer hstringMu.Unlock()
	return len(hstrings)
}
