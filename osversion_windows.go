// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package winrt

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	verOnce sync.Once
	verInfo osVersionInfo // must access via getVersionInfo()
)

type osVersionInfo struct {
	major uint32
	minor uint32
	build uint32
	str   string
}

func getVersionInfo() *osVersionInfo {
	verOnce.Do(func() {
		osv := windows.RtlGetVersion()
		verInfo = osVersionInfo{
			major: osv.MajorVersion,
			minor: osv.MinorVersion,
			build: osv.BuildNumber,
			str:   fmt.Sprintf("%d.%d.%d", osv.MajorVersion, osv.MinorVersion, osv.BuildNumber),
		}
		// UBR is only available on Windows 10 and 11 (MajorVersion == 10).
		if osv.MajorVersion == 10 {
			if ubr, err := getUBR(); err == nil {
				verInfo.str = fmt.Sprintf("%s.%d", verInfo.str, ubr)
			}
		}
	})
	return &verInfo
}

// getUBR returns the "update build revision," ie. the fourth component of the
// version string found on Windows 10 and Windows 11 systems.
func getUBR() (uint32, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return 0, err
	}
	defer key.Close()

	val, valType, err := key.GetIntegerValue("UBR")
	if err != nil {
		return 0, err
	}
	if valType != registry.DWORD {
		return 0, registry.ErrUnexpectedType
	}

	return uint32(val), nil
}

// GetOSVersionString returns the Windows version of the current machine in
// dotted-decimal form.
func GetOSVersionString() string {
	return getVersionInfo().str
}

// IsWin8OrGreater returns true when running on Windows 8.0 or newer, which is
// the first release to ship the Windows Runtime.
func IsWin8OrGreater() bool {
	vi := getVersionInfo()
	return isVerGE(vi.major, 6, vi.minor, 2, vi.build, 0)
}

// IsWin10OrGreater returns true when running on any build of Windows 10 or newer.
func IsWin10OrGreater() bool {
	return getVersionInfo().major >= 10
}
