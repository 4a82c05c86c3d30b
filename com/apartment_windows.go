// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"github.com/dblohm7/winrt"
)

type coAPTTYPE int32

const (
	coAPTTYPE_CURRENT = coAPTTYPE(-1)
	coAPTTYPE_STA     = coAPTTYPE(0)
	coAPTTYPE_MTA     = coAPTTYPE(1)
	coAPTTYPE_NA      = coAPTTYPE(2)
	coAPTTYPE_MAINSTA = coAPTTYPE(3)
)

type coAPTTYPEQUALIFIER int32

const (
	coAPTTYPEQUALIFIER_NONE               = coAPTTYPEQUALIFIER(0)
	coAPTTYPEQUALIFIER_IMPLICIT_MTA       = coAPTTYPEQUALIFIER(1)
	coAPTTYPEQUALIFIER_NA_ON_MTA          = coAPTTYPEQUALIFIER(2)
	coAPTTYPEQUALIFIER_NA_ON_STA          = coAPTTYPEQUALIFIER(3)
	coAPTTYPEQUALIFIER_NA_ON_IMPLICIT_MTA = coAPTTYPEQUALIFIER(4)
	coAPTTYPEQUALIFIER_NA_ON_MAINSTA      = coAPTTYPEQUALIFIER(5)
	coAPTTYPEQUALIFIER_APPLICATION_STA    = coAPTTYPEQUALIFIER(6)
)

type aptInfo struct {
	apt       coAPTTYPE
	qualifier coAPTTYPEQUALIFIER
}

func getCurrentApartmentInfo() (aptInfo, error) {
	var info aptInfo
	hr := coGetApartmentType(&info.apt, &info.qualifier)
	if err := winrt.ErrorFromHRESULT(hr); err.Failed() {
		return info, err
	}

	return info, nil
}

// aptChecker is a function that applies an arbitrary predicate to an OS thread's
// apartment information, returning true if the input satisifes that predicate.
type aptChecker func(*aptInfo) bool

// checkCurrentApartment obtains information about the COM apartment that the
// current OS thread resides in, and then passes that information to chk,
// which evaluates that information and determines the return value.
func checkCurrentApartment(chk aptChecker) bool {
	info, err := getCurrentApartmentInfo()
	if err != nil {
		return false
	}

	return chk(&info)
}

// AssertCurrentOSThreadSTA checks if the current OS thread resides in a
// single-threaded apartment, and if not, panics.
func AssertCurrentOSThreadSTA() {
	if IsCurrentOSThreadSTA() {
		return
	}
	panic("current OS thread does not reside in a single-threaded apartment")
}

// IsCurrentOSThreadSTA checks if the current OS thread resides in a
// single-threaded apartment and returns true if so.
func IsCurrentOSThreadSTA() bool {
	return checkCurrentApartment(func(i *aptInfo) bool {
		return i.apt == coAPTTYPE_STA || i.apt == coAPTTYPE_MAINSTA
	})
}

// AssertCurrentOSThreadMTA checks if the current OS thread resides in the
// multi-threaded apartment, and if not, panics.
func AssertCurrentOSThreadMTA() {
	if IsCurrentOSThreadMTA() {
		return
	}
	panic("current OS thread does not reside in the multi-threaded apartment")
}

// IsCurrentOSThreadMTA checks if the current OS thread resides in the
// multi-threaded apartment, including implicitly, and returns true if so.
func IsCurrentOSThreadMTA() bool {
	return checkCurrentApartment(func(i *aptInfo) bool {
		return i.apt == coAPTTYPE_MTA
	})
}
