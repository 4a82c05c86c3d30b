// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package winrt

func systemMessage(hr HRESULT) (string, bool) {
	return "", false
}
