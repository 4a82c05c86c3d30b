// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// Logger returns the logger used for diagnostics by this package and the
// packages built on it. It discards everything until SetLogger is called.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger installs l as the diagnostics logger. A nil l restores the
// default, which discards everything.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("com"))
}
