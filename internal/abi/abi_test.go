// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package abi

import (
	"sync"
	"testing"
	"unsafe"
)

var (
	addOnce sync.Once
	addFn   uintptr
)

func addCallback() uintptr {
	addOnce.Do(func() {
		addFn = NewCallback(func(a, b uintptr, out *uintptr) uintptr {
			*out = a + b
			return 0
		})
	})
	return addFn
}

func TestCallRoundTrip(t *testing.T) {
	fn := addCallback()
	if fn == 0 {
		t.Fatalf("NewCallback returned a null function pointer")
	}

	var sum uintptr
	if r := Call(fn, 40, 2, uintptr(unsafe.Pointer(&sum))); r != 0 {
		t.Errorf("Call returned %d, want 0", r)
	}
	if sum != 42 {
		t.Errorf("out-parameter got %d, want 42", sum)
	}
}

func TestCallFromManyGoroutines(t *testing.T) {
	fn := addCallback()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i uintptr) {
			defer wg.Done()
			var sum uintptr
			Call(fn, i, i, uintptr(unsafe.Pointer(&sum)))
			if sum != 2*i {
				t.Errorf("goroutine %d: got %d, want %d", i, sum, 2*i)
			}
		}(uintptr(i))
	}
	wg.Wait()
}

func TestCallPointerParams(t *testing.T) {
	type pair struct{ x, y uint32 }
	fn := NewCallback(func(src unsafe.Pointer, dst *pair) uintptr {
		if src == nil || dst == nil {
			return 1
		}
		p := (*pair)(src)
		dst.x, dst.y = p.y, p.x
		return 0
	})

	tests := []struct {
		name string
		src  *pair
		dst  *pair
		want uintptr
	}{
		{"heap", &pair{1, 2}, new(pair), 0},
		{"nil source", nil, new(pair), 1},
		{"nil destination", &pair{1, 2}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Call(fn, uintptr(unsafe.Pointer(tt.src)), uintptr(unsafe.Pointer(tt.dst)))
			if got != tt.want {
				t.Fatalf("Call got %d, want %d", got, tt.want)
			}
			if tt.want == 0 && (tt.dst.x != tt.src.y || tt.dst.y != tt.src.x) {
				t.Errorf("destination got %+v, want swapped %+v", *tt.dst, *tt.src)
			}
		})
	}
}

func TestPointer(t *testing.T) {
	v := new(uint64)
	if got := Pointer(uintptr(unsafe.Pointer(v))); got != unsafe.Pointer(v) {
		t.Errorf("Pointer got %p, want %p", got, v)
	}
	if got := Pointer(0); got != nil {
		t.Errorf("Pointer(0) got %p, want nil", got)
	}
}

func TestUint64Split(t *testing.T) {
	const v = uint64(0x0123456789ABCDEF)
	words := Uint64(v)
	switch ptrSize {
	case 4:
		if len(words) != 2 || words[0] != 0x89ABCDEF || words[1] != 0x01234567 {
			t.Errorf("Uint64 got %#x, want [0x89abcdef 0x1234567]", words)
		}
	case 8:
		if len(words) != 1 || uint64(words[0]) != v {
			t.Errorf("Uint64 got %#x, want [%#x]", words, v)
		}
	}
	if got := Int64(-1); got[0] != ^uintptr(0) {
		t.Errorf("Int64(-1) low word got %#x, want all ones", got[0])
	}
}

func TestTaskMem(t *testing.T) {
	p := TaskMemAlloc(3 * unsafe.Sizeof(uint32(0)))
	if p == nil {
		t.Fatalf("TaskMemAlloc returned nil")
	}
	s := unsafe.Slice((*uint32)(p), 3)
	s[0], s[1], s[2] = 1, 2, 3
	if s[0]+s[1]+s[2] != 6 {
		t.Errorf("task memory did not retain writes")
	}
	TaskMemFree(p)
	TaskMemFree(nil)
}
