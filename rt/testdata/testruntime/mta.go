// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package main

import (
	"fmt"
	"runtime"

	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/foundation"
	"github.com/dblohm7/winrt/rt"
)

func init() {
	register("MTA", MTA)
}

func MTA() {
	rc, err := rt.Init(rt.MultiThreaded)
	if err != nil {
		fmt.Printf("error: Init(MultiThreaded) got %v, want nil\n", err)
		return
	}

	if !checkBackgroundThread(true) {
		fmt.Println("error: background OS thread is not MTA")
		return
	}

	obj, err := rt.ActivateInstance[foundation.IStringable]("Windows.Data.Json.JsonObject")
	if err != nil {
		fmt.Printf("error: ActivateInstance got %v, want nil\n", err)
		return
	}

	// The object is agile, so any goroutine may use it.
	agile, err := com.MakeAgile(obj)
	if err != nil {
		fmt.Printf("error: MakeAgile got %v, want nil\n", err)
		return
	}
	obj.Release()

	c := make(chan string)
	go func() {
		p := agile.Get()
		defer p.Release()
		s, err := p.Get().ToString()
		if err != nil {
			c <- fmt.Sprintf("error: ToString got %v, want nil", err)
			return
		}
		c <- s
	}()
	if s := <-c; s != "{}" {
		fmt.Printf("error: ToString got %q, want %q\n", s, "{}")
		return
	}
	agile.Release()

	// Force some COM objects to GC before we exit so that we catch any refcount bugs.
	runtime.GC()

	rc.Uninit()
	// A second Uninit must not unbalance the runtime.
	rc.Uninit()

	fmt.Println("OK")
}
