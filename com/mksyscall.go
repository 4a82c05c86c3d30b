// Copyright (c) 2022 Tailscale Inc & AUTHORS. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package com

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys coGetApartmentType(aptType *coAPTTYPE, qual *coAPTTYPEQUALIFIER) (hr winrt.HRESULT) = ole32.CoGetApartmentType

//sys shCreateMemStream(pInit *byte, cbInit uint32) (stream *IStream) = shlwapi.SHCreateMemStream
//sys createStreamOnHGlobal(hglobal windows.Handle, deleteOnRelease bool, stream **IStream) (hr winrt.HRESULT) = ole32.CreateStreamOnHGlobal
