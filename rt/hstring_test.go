// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"testing"
)

func TestHString(t *testing.T) {
	testCases := []struct {
		s       string
		wantLen int
	}{
		{"", 0},
		{"Windows.Foundation.Uri", 22},
		{"nul\x00inside", 10},
		{"café", 4},
		{"\U0001F600", 2},
	}

	for _, c := range testCases {
		h, err := NewHString(c.s)
		if err != nil {
			t.Fatalf("NewHString(%q) got %v, want nil", c.s, err)
		}
		if got := h.Len(); got != c.wantLen {
			t.Errorf("NewHString(%q).Len() got %d, want %d", c.s, got, c.wantLen)
		}
		if got := h.String(); got != c.s {
			t.Errorf("NewHString(%q).String() got %q, want %q", c.s, got, c.s)
		}
		if c.s == "" && h != 0 {
			t.Errorf("empty HString got handle %#x, want 0", uintptr(h))
		}

		if err := h.Close(); err != nil {
			t.Errorf("Close got %v, want nil", err)
		}
		if h != 0 {
			t.Errorf("HString not reset after Close")
		}
		if err := h.Close(); err != nil {
			t.Errorf("second Close got %v, want nil", err)
		}
	}
}

func TestMustHString(t *testing.T) {
	h := MustHString("x")
	defer h.Close()
	if h.String() != "x" {
		t.Errorf("MustHString got %q, want %q", h.String(), "x")
	}
}

func TestParseApartment(t *testing.T) {
	testCases := []struct {
		in      string
		want    Apartment
		wantErr bool
	}{
		{"", MultiThreaded, false},
		{"mta", MultiThreaded, false},
		{"STA", SingleThreaded, false},
		{"both", 0, true},
	}

	for _, c := range testCases {
		got, err := ParseApartment(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseApartment(%q) error got %v, want error %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseApartment(%q) got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTrustLevelString(t *testing.T) {
	testCases := []struct {
		level TrustLevel
		want  string
	}{
		{BaseTrust, "BaseTrust"},
		{PartialTrust, "PartialTrust"},
		{FullTrust, "FullTrust"},
		{TrustLevel(7), "TrustLevel(7)"},
	}

	for _, c := range testCases {
		if got := c.level.String(); got != c.want {
			t.Errorf("TrustLevel(%d).String() got %q, want %q", int32(c.level), got, c.want)
		}
	}
}
