// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package rt

import (
	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
)

var errNoRuntime = winrt.ErrorFromHRESULT(winrt.E_NOTIMPL)

// RuntimeContext represents an initialized Windows Runtime. On this platform
// there is no runtime, so one is never created.
type RuntimeContext struct{}

// Init fails with a winrt.NotImplemented error on this platform.
func Init(apt Apartment) (*RuntimeContext, error) {
	return nil, errNoRuntime
}

// Uninit does nothing on this platform.
func (rc *RuntimeContext) Uninit() {}

// ActivateInstance fails with a winrt.NotImplemented error on this platform.
func ActivateInstance[T com.Interface](className string) (*com.Ptr[T], error) {
	return nil, errNoRuntime
}

// GetActivationFactory fails with a winrt.NotImplemented error on this
// platform.
func GetActivationFactory[T com.Interface](className string) (*com.Ptr[T], error) {
	return nil, errNoRuntime
}
