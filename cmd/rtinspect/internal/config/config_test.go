// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/dblohm7/winrt/rt"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load(optional) got %v, want nil", err)
	}
	if cfg.Apartment != "" || len(cfg.Classes) != 0 {
		t.Errorf("Load(optional) got %+v, want an empty Config", cfg)
	}

	if _, err := Load(path, true); err == nil {
		t.Errorf("Load(required) got nil error for a missing file")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
apartment: sta
classes:
  - Windows.Data.Json.JsonObject
  - Windows.Data.Json.JsonArray
probes:
  - "{96369F54-8EB6-48F0-ABCE-C1B211E627C3}"
output: yaml
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load got %v, want nil", err)
	}
	want := Config{
		Apartment: "sta",
		Classes:   []string{"Windows.Data.Json.JsonObject", "Windows.Data.Json.JsonArray"},
		Probes:    []string{"{96369F54-8EB6-48F0-ABCE-C1B211E627C3}"},
		Output:    "yaml",
	}
	if cfg.Apartment != want.Apartment || cfg.Output != want.Output ||
		!slices.Equal(cfg.Classes, want.Classes) || !slices.Equal(cfg.Probes, want.Probes) {
		t.Errorf("Load got %+v, want %+v", *cfg, want)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "classes: {not: [a list")
	if _, err := Load(path, false); err == nil {
		t.Errorf("Load got nil error for malformed YAML")
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{
		Classes: []string{" Windows.Data.Json.JsonObject ", "", "Windows.Data.Json.JsonObject"},
		Probes:  []string{"96369F54-8EB6-48F0-ABCE-C1B211E627C3"},
	}

	res, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve got %v, want nil", err)
	}
	if res.Apartment != rt.MultiThreaded {
		t.Errorf("Apartment got %v, want %v", res.Apartment, rt.MultiThreaded)
	}
	if want := []string{"Windows.Data.Json.JsonObject"}; !slices.Equal(res.Classes, want) {
		t.Errorf("Classes got %v, want %v", res.Classes, want)
	}
	if len(res.Probes) != 1 || res.Probes[0].String() != "{96369F54-8EB6-48F0-ABCE-C1B211E627C3}" {
		t.Errorf("Probes got %v, want [{96369F54-8EB6-48F0-ABCE-C1B211E627C3}]", res.Probes)
	}
	if res.Output != OutputText {
		t.Errorf("Output got %q, want %q", res.Output, OutputText)
	}
}

func TestResolveErrors(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"no classes", Config{}},
		{"blank classes", Config{Classes: []string{" "}}},
		{"bad apartment", Config{Apartment: "neutral", Classes: []string{"A"}}},
		{"bad probe", Config{Probes: []string{"not-a-guid"}, Classes: []string{"A"}}},
		{"bad output", Config{Output: "json", Classes: []string{"A"}}},
	}

	for _, c := range testCases {
		if _, err := c.cfg.Resolve(); err == nil {
			t.Errorf("%s: Resolve got nil error", c.name)
		}
	}
}
