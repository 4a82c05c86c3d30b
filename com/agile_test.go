// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package com_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/internal/comtest"
)

func TestMakeAgileRejectsNonAgile(t *testing.T) {
	p := comtest.Attach[com.IUnknown](comtest.New(comtest.Config{}))
	defer p.Release()

	a, err := com.MakeAgile(p)
	if a != nil || !errors.Is(err, winrt.NoSuchInterface) {
		t.Errorf("MakeAgile got (%v, %v), want (nil, %v)", a, err, winrt.NoSuchInterface)
	}
}

func TestAgilePtr(t *testing.T) {
	obj := comtest.New(comtest.Config{Agile: true})
	p := comtest.Attach[com.IUnknown](obj)

	if !com.IsAgile(p) {
		t.Fatalf("IsAgile got false, want true")
	}

	a, err := com.MakeAgile(p)
	if err != nil {
		t.Fatalf("MakeAgile got %v, want nil", err)
	}
	p.Release()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				local := a.Get()
				q, err := com.TryAs[com.IAgileObject](local)
				if err != nil {
					t.Errorf("TryAs[IAgileObject] got %v, want nil", err)
				} else {
					q.Release()
				}
				local.Release()
			}
		}()
	}
	wg.Wait()

	if got := obj.Refs(); got != 1 {
		t.Errorf("Refs got %d, want 1", got)
	}
	a.Release()
	a.Release()
	if got := obj.Destroyed(); got != 1 {
		t.Errorf("Destroyed got %d, want 1", got)
	}
}
