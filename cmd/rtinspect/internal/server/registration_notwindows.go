// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package server

// Lookup always fails with ErrNotRegistered, as this platform has no
// activation registry.
func Lookup(class string) (*Registration, error) {
	return nil, ErrNotRegistered
}
