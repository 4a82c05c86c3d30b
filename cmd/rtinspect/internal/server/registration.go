// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package server reads how the system is registered to activate a runtime
// class, and describes the binary that hosts it.
package server

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRegistered means that the class has no activation registration.
	ErrNotRegistered = errors.New("runtime class is not registered")
	// ErrNotPresent means that a binary carries no version resource, or
	// lacks the requested field.
	ErrNotPresent = errors.New("not present")
)

// ActivationType says where instances of a class are created.
type ActivationType uint32

const (
	InProcess    = ActivationType(0)
	OutOfProcess = ActivationType(1)
)

func (a ActivationType) String() string {
	switch a {
	case InProcess:
		return "in-process"
	case OutOfProcess:
		return "out-of-process"
	default:
		return fmt.Sprintf("ActivationType(%d)", uint32(a))
	}
}

// MarshalText implements encoding.TextMarshaler for the YAML report.
func (a ActivationType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActivationType) UnmarshalText(text []byte) error {
	for _, v := range []ActivationType{InProcess, OutOfProcess} {
		if v.String() == string(text) {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("unknown activation type %q", text)
}

// Threading is the apartment an in-process class must be created in.
type Threading uint32

const (
	Both        = Threading(0)
	STA         = Threading(1)
	MTA         = Threading(2)
	noThreading = Threading(^uint32(0))
)

func (t Threading) String() string {
	switch t {
	case Both:
		return "both"
	case STA:
		return "sta"
	case MTA:
		return "mta"
	case noThreading:
		return "unspecified"
	default:
		return fmt.Sprintf("Threading(%d)", uint32(t))
	}
}

// MarshalText implements encoding.TextMarshaler for the YAML report.
func (t Threading) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Threading) UnmarshalText(text []byte) error {
	for _, v := range []Threading{Both, STA, MTA, noThreading} {
		if v.String() == string(text) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown threading model %q", text)
}

// Registration is what the activation registry says about a class.
type Registration struct {
	ActivationType ActivationType `yaml:"activationType"`
	Threading      Threading      `yaml:"threading"`
	// DllPath is set for in-process classes.
	DllPath string `yaml:"dllPath,omitempty"`
	// Server names the out-of-process server registration.
	Server string `yaml:"server,omitempty"`
	// Version and Company describe DllPath, when it has a version resource.
	Version string `yaml:"version,omitempty"`
	Company string `yaml:"company,omitempty"`
}

// String summarizes r on a single line.
func (r *Registration) String() string {
	switch r.ActivationType {
	case InProcess:
		s := fmt.Sprintf("%v %s", r.ActivationType, r.DllPath)
		if r.Version != "" {
			s += " " + r.Version
		}
		return s + fmt.Sprintf(", threading %v", r.Threading)
	case OutOfProcess:
		return fmt.Sprintf("%v server %q", r.ActivationType, r.Server)
	default:
		return r.ActivationType.String()
	}
}
