// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// rtinspect activates Windows Runtime classes and reports what their
// instances say about themselves: runtime class name, implemented interfaces,
// trust level, agility and IStringable text.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "rtinspect: %v\n", err)
		os.Exit(1)
	}
}
