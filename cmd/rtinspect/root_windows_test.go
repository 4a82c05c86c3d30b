// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/cmd/rtinspect/internal/config"
	"github.com/dblohm7/winrt/rt"
)

func TestRunJsonObject(t *testing.T) {
	if !winrt.IsWin8OrGreater() {
		t.Skip("the Windows Runtime requires Windows 8 or newer")
	}

	var buf bytes.Buffer
	settings := &config.Resolved{
		Apartment: rt.MultiThreaded,
		Classes:   []string{"Windows.Data.Json.JsonObject", "Not.A.Registered.Class"},
		Output:    config.OutputText,
	}
	err := run(&buf, zaptest.NewLogger(t), settings)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 classes") {
		t.Errorf("run got %v, want one failed class", err)
	}

	out := buf.String()
	for _, want := range []string{
		"  runtime class: Windows.Data.Json.JsonObject\n",
		"  agile:         true\n",
		"  text:          \"{}\"\n",
		"\nNot.A.Registered.Class\n  error:         activating: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}
