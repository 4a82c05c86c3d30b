// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package winrt

// isVerGE reports whether the version lmajor.lminor.lbuild is greater than or
// equal to rmajor.rminor.rbuild.
func isVerGE(lmajor, rmajor, lminor, rminor, lbuild, rbuild uint32) bool {
	return lmajor > rmajor ||
		lmajor == rmajor &&
			(lminor > rminor ||
				lminor == rminor && lbuild >= rbuild)
}
