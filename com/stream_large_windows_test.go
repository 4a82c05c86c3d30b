// Copyright (c) 2023 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows && !386 && !arm

package com

import (
	"errors"
	"testing"

	"github.com/dblohm7/winrt"
)

// Memory streams address at most maxStreamRWLen bytes. Only 64-bit targets
// can hold a slice longer than that.
func TestMemoryStreamTooLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates more than 4 GiB")
	}

	tooBig := make([]byte, maxStreamRWLen+1)
	for _, k := range memoryStreamKinds {
		s, err := newMemoryStreamInternal(tooBig, k.legacy)
		if err == nil {
			s.Close()
			t.Errorf("%s: creating a %d-byte stream succeeded, want failure", k.name, len(tooBig))
			continue
		}
		if !errors.Is(err, winrt.OutOfMemory) {
			t.Errorf("%s: got %v, want %v", k.name, err, winrt.OutOfMemory)
		}
	}
}
