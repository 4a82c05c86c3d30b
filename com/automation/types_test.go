// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package automation

import (
	"testing"
)

func TestBSTR(t *testing.T) {
	testCases := []struct {
		s       string
		wantLen int
	}{
		{"", 0},
		{"hello", 5},
		{"nul\x00inside", 10},
		{"\U0001F600", 2},
	}

	for _, c := range testCases {
		bs := NewBSTR(c.s)
		if got := bs.Len(); got != c.wantLen {
			t.Errorf("NewBSTR(%q).Len() got %d, want %d", c.s, got, c.wantLen)
		}
		if got := bs.String(); got != c.s {
			t.Errorf("NewBSTR(%q).String() got %q, want %q", c.s, got, c.s)
		}

		clone := bs.Clone()
		if got := clone.String(); got != c.s {
			t.Errorf("Clone of %q got %q", c.s, got)
		}
		if c.s != "" && clone == bs {
			t.Errorf("Clone of %q returned the same allocation", c.s)
		}

		clone.Close()
		bs.Close()
		if !bs.IsNil() {
			t.Errorf("BSTR not reset after Close")
		}
		// Closing twice is harmless.
		bs.Close()
	}
}
