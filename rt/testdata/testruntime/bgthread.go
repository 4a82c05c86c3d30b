// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package main

import (
	"runtime"

	"github.com/dblohm7/winrt/com"
)

func bgThreadCheckMTA(c chan bool) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	c <- com.IsCurrentOSThreadMTA()
}

// checkBackgroundThread reports whether a goroutine on another OS thread
// finds itself in the MTA.
func checkBackgroundThread(needLockOSThread bool) bool {
	if needLockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	c := make(chan bool)
	go bgThreadCheckMTA(c)
	return <-c
}
