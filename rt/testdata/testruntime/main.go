// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// Command testruntime runs one runtime initialization scenario per process,
// named by its first argument, printing "OK" or an "error: " line.
package main

import (
	"fmt"
	"os"
)

var cmds = make(map[string]func())

func register(name string, f func()) {
	if _, ok := cmds[name]; ok {
		panic("duplicate test " + name)
	}
	cmds[name] = f
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: testruntime name")
		os.Exit(2)
	}

	f := cmds[os.Args[1]]
	if f == nil {
		fmt.Printf("error: unknown scenario %q\n", os.Args[1])
		os.Exit(2)
	}
	f()
}
