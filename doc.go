// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package winrt contains the types shared by every layer of the Windows
// Runtime bindings: HRESULTs and the Error taxonomy built on them, GUIDs, and
// OS version checks. The object model itself lives in the com, rt and
// foundation packages.
package winrt
