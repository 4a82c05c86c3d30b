// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package winrt

import (
	"strings"
	"testing"
)

func TestUBR(t *testing.T) {
	_, err := getUBR()
	if err == nil {
		return
	}
	if !IsWin10OrGreater() {
		t.Skipf("test requires Windows 10 or up")
	}
	t.Errorf("getUBR error: %v", err)
}

func TestOSVersionString(t *testing.T) {
	vs := GetOSVersionString()
	if n := len(strings.Split(vs, ".")); n < 3 {
		t.Errorf("GetOSVersionString() got %q with %d components, want at least 3", vs, n)
	}
	if IsWin10OrGreater() && !IsWin8OrGreater() {
		t.Errorf("IsWin10OrGreater is true but IsWin8OrGreater is false")
	}
}
