// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package rt

import (
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
)

// RuntimeContext represents one successful call to Init. Uninit must be
// called exactly once to balance it.
type RuntimeContext struct {
	apt  Apartment
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func roInit(apt Apartment) error {
	hr := roInitialize(apt)
	// S_FALSE means the thread was already initialized; it still needs a
	// matching RoUninitialize.
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return e
	}
	return nil
}

// Init initializes the Windows Runtime. SingleThreaded locks the calling
// goroutine to its OS thread, and Uninit must then be called from the same
// goroutine. MultiThreaded enters the MTA on a dedicated background OS thread,
// so that every other thread becomes an implicit MTA member, and Uninit may
// be called from anywhere.
//
// Init requires Windows 8 or newer.
func Init(apt Apartment) (*RuntimeContext, error) {
	if !winrt.IsWin8OrGreater() {
		return nil, winrt.ErrorFromErrno(windows.ERROR_OLD_WIN_VERSION)
	}

	rc := &RuntimeContext{apt: apt}

	switch apt {
	case SingleThreaded:
		runtime.LockOSThread()
		if err := roInit(apt); err != nil {
			runtime.UnlockOSThread()
			return nil, err
		}
	case MultiThreaded:
		rc.stop = make(chan struct{})
		rc.done = make(chan struct{})
		c := make(chan error)
		go rc.sustainMTA(c)
		if err := <-c; err != nil {
			return nil, err
		}
	default:
		return nil, winrt.ErrorFromHRESULT(winrt.E_INVALIDARG)
	}

	com.Logger().Debug("runtime initialized", zap.Stringer("apartment", apt))
	return rc, nil
}

// sustainMTA keeps the MTA alive on a locked OS thread until Uninit.
func (rc *RuntimeContext) sustainMTA(c chan<- error) {
	defer close(rc.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	err := roInit(MultiThreaded)
	c <- err
	if err != nil {
		return
	}

	<-rc.stop
	roUninitialize()
}

// Uninit balances Init. Subsequent calls do nothing.
func (rc *RuntimeContext) Uninit() {
	rc.once.Do(func() {
		switch rc.apt {
		case SingleThreaded:
			roUninitialize()
			runtime.UnlockOSThread()
		case MultiThreaded:
			close(rc.stop)
			<-rc.done
		}
		com.Logger().Debug("runtime uninitialized", zap.Stringer("apartment", rc.apt))
	})
}

// ActivateInstance creates an instance of the runtime class className using
// its default constructor, and returns it through interface T.
func ActivateInstance[T com.Interface](className string) (*com.Ptr[T], error) {
	hclass, err := NewHString(className)
	if err != nil {
		return nil, err
	}
	defer hclass.Close()

	var obj *IInspectable
	hr := roActivateInstance(hclass, &obj)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	if obj == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_POINTER)
	}

	insp := com.Attach(obj)
	defer insp.Release()
	return com.TryAs[T](insp)
}

// GetActivationFactory returns the activation factory of the runtime class
// className through interface T, which must have a static IID.
func GetActivationFactory[T com.Interface](className string) (*com.Ptr[T], error) {
	iid := com.IIDOf[T]()
	if iid == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_INVALIDARG)
	}

	hclass, err := NewHString(className)
	if err != nil {
		return nil, err
	}
	defer hclass.Close()

	var factory *com.IUnknown
	hr := roGetActivationFactory(hclass, iid, &factory)
	if e := winrt.ErrorFromHRESULT(hr); e.Failed() {
		return nil, e
	}
	if factory == nil {
		return nil, winrt.ErrorFromHRESULT(winrt.E_POINTER)
	}

	return com.Attach((*T)(unsafe.Pointer(factory))), nil
}
