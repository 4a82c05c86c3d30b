// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package main

import (
	"fmt"

	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/rt"
)

func init() {
	register("STA", STA)
}

func STA() {
	rc, err := rt.Init(rt.SingleThreaded)
	if err != nil {
		fmt.Printf("error: Init(SingleThreaded) got %v, want nil\n", err)
		return
	}
	defer rc.Uninit()

	if !com.IsCurrentOSThreadSTA() {
		fmt.Println("error: IsCurrentOSThreadSTA got false, want true")
		return
	}

	if checkBackgroundThread(false) {
		fmt.Println("error: background OS thread is MTA without an MTA being initialized")
		return
	}

	obj, err := rt.ActivateInstance[rt.IInspectable]("Windows.Data.Json.JsonObject")
	if err != nil {
		fmt.Printf("error: ActivateInstance got %v, want nil\n", err)
		return
	}
	defer obj.Release()

	fmt.Println("OK")
}
