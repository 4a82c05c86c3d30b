// Copyright (c) 2023 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !386 && !arm

package com

import (
	"math"
)

const maxStreamRWLen = math.MaxUint32
