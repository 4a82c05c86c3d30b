// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package rt provides the Windows Runtime layer on top of package com:
// IInspectable, HSTRING, runtime initialization and class activation.
package rt
