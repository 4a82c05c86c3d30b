// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package winrt

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// GUID has the same memory layout as the GUID type in the Win32 SDK, so
// pointers to it may be passed directly across the native boundary.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func guidToString(guid GUID) string {
	return fmt.Sprintf("{%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X}",
		guid.Data1, guid.Data2, guid.Data3,
		guid.Data4[0], guid.Data4[1],
		guid.Data4[2], guid.Data4[3], guid.Data4[4], guid.Data4[5], guid.Data4[6], guid.Data4[7])
}

// String returns guid in registry format, ie "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}".
func (guid GUID) String() string {
	return guidToString(guid)
}

// UUID returns guid as an RFC 4122 UUID. The first three fields of a GUID are
// stored little-endian while a UUID is big-endian throughout, so the bytes are
// not a straight copy.
func (guid GUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], guid.Data1)
	binary.BigEndian.PutUint16(u[4:6], guid.Data2)
	binary.BigEndian.PutUint16(u[6:8], guid.Data3)
	copy(u[8:], guid.Data4[:])
	return u
}

// GUIDFromUUID converts u to a GUID.
func GUIDFromUUID(u uuid.UUID) GUID {
	guid := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(guid.Data4[:], u[8:])
	return guid
}

// ParseGUID parses s, which may be in registry format (with braces) or in the
// bare hyphenated format.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	return GUIDFromUUID(u), nil
}

// MustGetGUID parses s, a string containing a GUID and returns a pointer to the
// parsed GUID. s must be specified in the format "{XXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}".
// If there is an error parsing s, MustGetGUID panics.
func MustGetGUID(s string) *GUID {
	guid, err := ParseGUID(s)
	if err != nil {
		panic(fmt.Sprintf("winrt.MustGetGUID(%q) error %v", s, err))
	}
	return &guid
}

// NewGUID generates a new random GUID.
func NewGUID() (GUID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return GUID{}, err
	}
	return GUIDFromUUID(u), nil
}
