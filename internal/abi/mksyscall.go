// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package abi

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys coTaskMemAlloc(size uintptr) (p unsafe.Pointer) = ole32.CoTaskMemAlloc
//sys coTaskMemFree(p unsafe.Pointer) = ole32.CoTaskMemFree
