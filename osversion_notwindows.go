// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package winrt

// GetOSVersionString returns the empty string on platforms other than Windows.
func GetOSVersionString() string {
	return ""
}

// IsWin8OrGreater always returns false on platforms other than Windows.
func IsWin8OrGreater() bool {
	return false
}

// IsWin10OrGreater always returns false on platforms other than Windows.
func IsWin10OrGreater() bool {
	return false
}
