// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const activatableClassIDKey = `SOFTWARE\Microsoft\WindowsRuntime\ActivatableClassId\`

// Lookup reads the activation registration of class. Version details of the
// hosting binary are filled in when available.
func Lookup(class string) (*Registration, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, activatableClassIDKey+class, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	defer key.Close()

	activationType, _, err := key.GetIntegerValue("ActivationType")
	if err != nil {
		return nil, fmt.Errorf("reading ActivationType: %w", err)
	}

	reg := &Registration{
		ActivationType: ActivationType(activationType),
		Threading:      noThreading,
	}

	if threading, _, err := key.GetIntegerValue("Threading"); err == nil {
		reg.Threading = Threading(threading)
	}

	switch reg.ActivationType {
	case InProcess:
		path, valType, err := key.GetStringValue("DllPath")
		if err != nil {
			return nil, fmt.Errorf("reading DllPath: %w", err)
		}
		if valType == registry.EXPAND_SZ {
			if path, err = registry.ExpandString(path); err != nil {
				return nil, err
			}
		}
		reg.DllPath = path
		reg.describeBinary()
	case OutOfProcess:
		if reg.Server, _, err = key.GetStringValue("Server"); err != nil {
			return nil, fmt.Errorf("reading Server: %w", err)
		}
	}

	return reg, nil
}

// describeBinary fills in what DllPath's version resource says about it.
// Binaries without one are still valid servers.
func (r *Registration) describeBinary() {
	vi, err := NewVersionInfo(r.DllPath)
	if err != nil {
		return
	}
	vn := vi.VersionNumber()
	r.Version = vn.String()
	if company, err := vi.CompanyName(); err == nil {
		r.Company = company
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, windows.ERROR_RESOURCE_TYPE_NOT_FOUND) ||
		errors.Is(err, windows.ERROR_RESOURCE_NAME_NOT_FOUND)
}
