// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package comtest provides Go-implemented stand-ins for native COM and
// Windows Runtime objects. Their virtual tables are built from
// abi.NewCallback function pointers, so they are called exactly like native
// objects, while recording reference counts and calls for tests to inspect.
package comtest

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/exp/slices"

	"github.com/dblohm7/winrt"
	"github.com/dblohm7/winrt/com"
	"github.com/dblohm7/winrt/internal/abi"
	"github.com/dblohm7/winrt/rt"
)

// MethodFunc implements a virtual table slot. args excludes the interface
// pointer.
type MethodFunc func(o *Object, args []uintptr) winrt.HRESULT

// Method describes a virtual table slot following IUnknown, or following
// IInspectable when Config.Inspectable is set.
type Method struct {
	Name  string
	Arity int // number of arguments, excluding the interface pointer
	Fn    MethodFunc
}

// Interface is an additional interface that an Object implements with its
// own virtual table, the way a native object implements a secondary base.
// Its slots follow IUnknown, or IInspectable when Config.Inspectable is set.
type Interface struct {
	IIDs    []*com.IID
	Methods []Method
}

// Config describes an Object.
type Config struct {
	// IIDs lists the interfaces that the primary virtual table answers
	// QueryInterface for, besides IUnknown and the ones implied by the flags
	// below.
	IIDs []*com.IID
	// Inspectable adds the three IInspectable slots to every virtual table.
	Inspectable bool
	ClassName   string
	TrustLevel  rt.TrustLevel
	// Agile makes the object answer for IAgileObject.
	Agile bool
	// Methods fill the primary virtual table.
	Methods []Method
	// Extra interfaces have virtual tables of their own.
	Extra []Interface
}

// view is one virtual table of an Object.
type view struct {
	vtbl    *uintptr // must be first
	slots   []uintptr
	owner   *Object
	methods []Method
}

// Object is a fake native object holding one reference when created.
type Object struct {
	view // must be first

	cfg       Config
	qiIIDs    []com.IID
	extra     []*view
	refs      atomic.Int32
	calls     atomic.Int64
	destroyed atomic.Int32
	done      chan struct{}
}

const maxArity = 6

var (
	// views maps the interface pointer of each live object's virtual tables
	// to the view, which keeps the object reachable while only "native"
	// code refers to it.
	views sync.Map

	builtinOnce sync.Once
	builtins    struct {
		queryInterface, addRef, release             uintptr
		getIids, getRuntimeClassName, getTrustLevel uintptr
	}

	trampolineMu sync.Mutex
	trampolines  = make(map[[2]int]uintptr)
)

func initBuiltins() {
	builtinOnce.Do(func() {
		builtins.queryInterface = abi.NewCallback(queryInterface)
		builtins.addRef = abi.NewCallback(addRef)
		builtins.release = abi.NewCallback(release)
		builtins.getIids = abi.NewCallback(getIids)
		builtins.getRuntimeClassName = abi.NewCallback(getRuntimeClassName)
		builtins.getTrustLevel = abi.NewCallback(getTrustLevel)
	})
}

// methodTrampoline returns a function pointer that dispatches to method
// index of whichever view it is called on. Function pointers are a scarce
// resource, so they are shared between objects.
func methodTrampoline(index, arity int) uintptr {
	trampolineMu.Lock()
	defer trampolineMu.Unlock()

	key := [2]int{index, arity}
	if fn, ok := trampolines[key]; ok {
		return fn
	}

	call := func(this uintptr, args ...uintptr) uintptr {
		v := lookup(this)
		v.owner.calls.Add(1)
		return bits(v.methods[index].Fn(v.owner, args))
	}

	var fn any
	switch arity {
	case 0:
		fn = func(this uintptr) uintptr { return call(this) }
	case 1:
		fn = func(this, a uintptr) uintptr { return call(this, a) }
	case 2:
		fn = func(this, a, b uintptr) uintptr { return call(this, a, b) }
	case 3:
		fn = func(this, a, b, c uintptr) uintptr { return call(this, a, b, c) }
	case 4:
		fn = func(this, a, b, c, d uintptr) uintptr { return call(this, a, b, c, d) }
	case 5:
		fn = func(this, a, b, c, d, e uintptr) uintptr { return call(this, a, b, c, d, e) }
	case 6:
		fn = func(this, a, b, c, d, e, f uintptr) uintptr { return call(this, a, b, c, d, e, f) }
	}

	p := abi.NewCallback(fn)
	trampolines[key] = p
	return p
}

func (v *view) setup(owner *Object, methods []Method) {
	v.owner = owner
	v.methods = methods
	v.slots = []uintptr{builtins.queryInterface, builtins.addRef, builtins.release}
	if owner.cfg.Inspectable {
		v.slots = append(v.slots, builtins.getIids, builtins.getRuntimeClassName, builtins.getTrustLevel)
	}
	for i, m := range methods {
		if m.Arity < 0 || m.Arity > maxArity {
			panic(fmt.Sprintf("comtest: method %q has unsupported arity %d", m.Name, m.Arity))
		}
		v.slots = append(v.slots, methodTrampoline(i, m.Arity))
	}
	v.vtbl = &v.slots[0]
	views.Store(v.this(), v)
}

func (v *view) this() uintptr {
	return uintptr(unsafe.Pointer(v))
}

// New creates an Object holding a single reference.
func New(cfg Config) *Object {
	initBuiltins()

	o := &Object{
		cfg:  cfg,
		done: make(chan struct{}),
	}

	o.qiIIDs = []com.IID{*com.IID_IUnknown}
	if cfg.Inspectable {
		o.qiIIDs = append(o.qiIIDs, *rt.IID_IInspectable)
	}
	if cfg.Agile {
		o.qiIIDs = append(o.qiIIDs, *com.IID_IAgileObject)
	}
	for _, iid := range cfg.IIDs {
		o.qiIIDs = append(o.qiIIDs, *iid)
	}

	o.refs.Store(1)
	o.view.setup(o, cfg.Methods)
	for _, x := range cfg.Extra {
		v := new(view)
		v.setup(o, x.Methods)
		o.extra = append(o.extra, v)
	}
	return o
}

// Attach returns a handle that owns the reference o was created with.
func Attach[T com.Interface](o *Object) *com.Ptr[T] {
	return com.Attach((*T)(o.Pointer()))
}

// Pointer returns o's interface pointer.
func (o *Object) Pointer() unsafe.Pointer {
	return unsafe.Pointer(o)
}

// This returns o's interface pointer as a call argument.
func (o *Object) This() uintptr {
	return o.view.this()
}

// Extra returns the interface pointer of o's i'th extra interface, without
// adding a reference.
func (o *Object) Extra(i int) unsafe.Pointer {
	return unsafe.Pointer(o.extra[i])
}

// Refs returns o's reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// NativeCalls returns the number of calls made through o's virtual table.
func (o *Object) NativeCalls() int64 {
	return o.calls.Load()
}

// Destroyed returns the number of times o's count reached zero. Anything
// other than 0 or 1 indicates a double release.
func (o *Object) Destroyed() int {
	return int(o.destroyed.Load())
}

// Done is closed when o is destroyed.
func (o *Object) Done() <-chan struct{} {
	return o.done
}

func bits(hr winrt.HRESULT) uintptr {
	return uintptr(uint32(hr))
}

func lookup(this uintptr) *view {
	v, ok := views.Load(this)
	if !ok {
		panic(fmt.Sprintf("comtest: call on destroyed object %#x", this))
	}
	return v.(*view)
}

// Out reinterprets a pointer argument received by a MethodFunc. The result is
// valid only while the method runs.
func Out[T any](arg uintptr) *T {
	return (*T)(abi.Pointer(arg))
}

// reportedIIDs is what GetIids returns: every interface besides IUnknown
// and IInspectable.
func (o *Object) reportedIIDs() []com.IID {
	var iids []com.IID
	for _, iid := range o.cfg.IIDs {
		iids = append(iids, *iid)
	}
	for _, x := range o.cfg.Extra {
		for _, iid := range x.IIDs {
			iids = append(iids, *iid)
		}
	}
	return iids
}

// resolve returns the interface pointer answering for iid, or 0.
func (o *Object) resolve(iid com.IID) uintptr {
	for i, x := range o.cfg.Extra {
		for _, xiid := range x.IIDs {
			if *xiid == iid {
				return o.extra[i].this()
			}
		}
	}
	if slices.Contains(o.qiIIDs, iid) {
		return o.This()
	}
	return 0
}

func queryInterface(this uintptr, riid *com.IID, ppv *uintptr) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)

	if ppv == nil || riid == nil {
		return bits(winrt.E_POINTER)
	}
	*ppv = 0
	target := o.resolve(*riid)
	if target == 0 {
		return bits(winrt.E_NOINTERFACE)
	}

	o.refs.Add(1)
	*ppv = target
	return bits(winrt.S_OK)
}

func addRef(this uintptr) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)
	return uintptr(o.refs.Add(1))
}

func release(this uintptr) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)
	n := o.refs.Add(-1)
	if n == 0 {
		views.Delete(o.This())
		for _, v := range o.extra {
			views.Delete(v.this())
		}
		o.destroyed.Add(1)
		close(o.done)
	}
	return uintptr(n)
}

func getIids(this uintptr, pcount *uint32, ppiids *unsafe.Pointer) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)

	if pcount == nil || ppiids == nil {
		return bits(winrt.E_POINTER)
	}
	reported := o.reportedIIDs()
	*pcount = uint32(len(reported))
	*ppiids = nil
	if len(reported) == 0 {
		return bits(winrt.S_OK)
	}

	mem := abi.TaskMemAlloc(uintptr(len(reported)) * unsafe.Sizeof(com.IID{}))
	if mem == nil {
		return bits(winrt.E_OUTOFMEMORY)
	}
	copy(unsafe.Slice((*com.IID)(mem), len(reported)), reported)
	*ppiids = mem
	return bits(winrt.S_OK)
}

func getRuntimeClassName(this uintptr, pname *rt.HString) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)

	if pname == nil {
		return bits(winrt.E_POINTER)
	}
	*pname = 0
	h, err := rt.NewHString(o.cfg.ClassName)
	if err != nil {
		return bits(winrt.HRESULTFromError(err))
	}
	*pname = h
	return bits(winrt.S_OK)
}

func getTrustLevel(this uintptr, plevel *rt.TrustLevel) uintptr {
	o := lookup(this).owner
	o.calls.Add(1)

	if plevel == nil {
		return bits(winrt.E_POINTER)
	}
	*plevel = o.cfg.TrustLevel
	return bits(winrt.S_OK)
}
