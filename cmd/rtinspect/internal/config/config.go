// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads rtinspect's optional configuration file.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/rt"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "rtinspect.yaml"

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config represents rtinspect.yaml.
type Config struct {
	// Apartment is "mta" (the default) or "sta".
	Apartment string `yaml:"apartment,omitempty"`
	// Classes lists the runtime classes to activate.
	Classes []string `yaml:"classes,omitempty"`
	// Probes lists additional interface IDs to query each instance for.
	Probes []string `yaml:"probes,omitempty"`
	// Output is "text" (the default) or "yaml".
	Output string `yaml:"output,omitempty"`
}

// Resolved contains validated configuration values.
type Resolved struct {
	Apartment rt.Apartment
	Classes   []string
	Probes    []*com.IID
	Output    string
}

// Load reads the configuration file at path. A missing file yields an empty
// Config unless required is set.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return &cfg, nil
}

// Resolve validates cfg and applies defaults.
func (cfg *Config) Resolve() (*Resolved, error) {
	apt, err := rt.ParseApartment(strings.TrimSpace(cfg.Apartment))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var classes []string
	for _, c := range cfg.Classes {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(classes, c) {
			classes = append(classes, c)
		}
	}
	if len(classes) == 0 {
		return nil, errors.New("no runtime classes to inspect")
	}

	probes := make([]*com.IID, 0, len(cfg.Probes))
	for _, s := range cfg.Probes {
		guid, err := winrt.ParseGUID(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid probe IID %q", s)
		}
		iid := com.IID(guid)
		probes = append(probes, &iid)
	}

	output := strings.ToLower(strings.TrimSpace(cfg.Output))
	switch output {
	case "":
		output = OutputText
	case OutputText, OutputYAML:
	default:
		return nil, errors.Errorf("unknown output format %q, want %q or %q", cfg.Output, OutputText, OutputYAML)
	}

	return &Resolved{
		Apartment: apt,
		Classes:   classes,
		Probes:    probes,
		Output:    output,
	}, nil
}
