package plugin

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// entrySymbol is the well-known C export every dynamic plugin library
// must provide: it returns a pointer to a cVTable.
const entrySymbol = "_gini_plugin_create"

// cVTable mirrors the stable C ABI struct byte-for-byte: a uint32
// abi_version (padded to pointer alignment) followed by seven function
// pointers in declaration order.
type cVTable struct {
	abiVersion     uint32
	_              uint32
	createInstance uintptr
	destroy        uintptr
	name           uintptr
	version        uintptr
	init           uintptr
	preflight      uintptr
	shutdown       uintptr
}

// VTable is the kernel-side owner of a dynamically loaded plugin: the
// opened library handle, the opaque instance pointer, the bound
// function pointers, and a cached display name. Lifetime rule: Close
// destroys the instance via destroyFn before releasing the library
// handle -- the instance must never outlive the library that produced
// it, so drop order is enforced entirely inside Close, never left to a
// finalizer.
type VTable struct {
	libPath   string
	libHandle uintptr
	instance  uintptr
	dispName  string
	closed   bool

	createInstanceFn func() uintptr
	destroyFn        func(uintptr)
	nameFn           func(uintptr) uintptr
	versionFn        func(uintptr) uintptr
	initFn           func(uintptr, uintptr) int32
	preflightFn      func(uintptr) int32
	shutdownFn       func(uintptr) int32
}

// OpenVTable dlopens path (already resolved to the platform-specific
// filename by the loader) via purego -- cgo-free, works identically for
// .so/.dylib/.dll -- and binds the eight ABI functions. kernelABI is
// compared against the library's declared abi_version; a mismatch is
// rejected before any instance is created.
func OpenVTable(path string, kernelABI uint32) (vt *VTable, err error) {
	defer func() {
		if r := recover(); r != nil {
			vt = nil
			err = fmt.Errorf("plugin: panic opening %s: %v", path, r)
		}
	}()

	handle, dlErr := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if dlErr != nil {
		return nil, fmt.Errorf("plugin: dlopen %s: %w", path, dlErr)
	}

	var createEntry func() uintptr
	purego.RegisterLibFunc(&createEntry, handle, entrySymbol)

	tablePtr := createEntry()
	if tablePtr == 0 {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("plugin: %s entry point returned a nil vtable", path)
	}
	table := (*cVTable)(unsafe.Pointer(tablePtr))

	if table.abiVersion != kernelABI {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("plugin: %s abi_version %d != kernel %d", path, table.abiVersion, kernelABI)
	}

	vt = &VTable{libPath: path, libHandle: handle}
	purego.RegisterFunc(&vt.createInstanceFn, table.createInstance)
	purego.RegisterFunc(&vt.destroyFn, table.destroy)
	purego.RegisterFunc(&vt.nameFn, table.name)
	purego.RegisterFunc(&vt.versionFn, table.version)
	purego.RegisterFunc(&vt.initFn, table.init)
	purego.RegisterFunc(&vt.preflightFn, table.preflight)
	purego.RegisterFunc(&vt.shutdownFn, table.shutdown)

	return vt, nil
}

// CreateInstance calls create_instance() and caches the returned
// instance pointer plus the plugin's self-reported display name.
func (vt *VTable) CreateInstance() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin: panic in create_instance (%s): %v", vt.libPath, r)
		}
	}()

	vt.instance = vt.createInstanceFn()
	if vt.instance == 0 {
		return fmt.Errorf("plugin: %s create_instance returned nil", vt.libPath)
	}
	vt.dispName = cStringToGo(vt.nameFn(vt.instance))
	return nil
}

// Name returns the cached display name from the plugin's own name() call.
func (vt *VTable) Name() string { return vt.dispName }

// Version returns the plugin's self-reported version string.
func (vt *VTable) Version() string {
	defer func() { recover() }() //nolint: errcheck -- best-effort diagnostic read
	return cStringToGo(vt.versionFn(vt.instance))
}

func (vt *VTable) callInit(ctx context.Context, appPtr uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin: panic in init (%s): %v", vt.dispName, r)
		}
	}()
	if rc := vt.initFn(vt.instance, appPtr); rc != 0 {
		return fmt.Errorf("plugin: %s init() returned %d", vt.dispName, rc)
	}
	return nil
}

func (vt *VTable) callPreflight(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin: panic in preflight (%s): %v", vt.dispName, r)
		}
	}()
	if rc := vt.preflightFn(vt.instance); rc != 0 {
		return fmt.Errorf("plugin: %s preflight() returned %d", vt.dispName, rc)
	}
	return nil
}

func (vt *VTable) callShutdown(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin: panic in shutdown (%s): %v", vt.dispName, r)
		}
	}()
	if rc := vt.shutdownFn(vt.instance); rc != 0 {
		return fmt.Errorf("plugin: %s shutdown() returned %d", vt.dispName, rc)
	}
	return nil
}

// Close destroys the instance, then releases the library handle. Strict
// order, never reversed; safe to call more than once.
func (vt *VTable) Close() (err error) {
	if vt.closed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin: panic in destroy (%s): %v", vt.dispName, r)
		}
		purego.Dlclose(vt.libHandle)
		vt.closed = true
	}()

	if vt.instance != 0 {
		vt.destroyFn(vt.instance)
	}
	return nil
}

// cStringToGo reads a NUL-terminated UTF-8 string starting at ptr. The
// caller never assumes the string is static: the plugin owns the memory
// until destroy (or a dedicated free_string, not modeled here) runs.
func cStringToGo(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(length)))
		if b == 0 {
			break
		}
		length++
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length)
	return string(buf)
}

// dynamicPlugin adapts a *VTable to the Plugin interface so the registry
// can treat static and dynamic plugins identically after loading.
type dynamicPlugin struct {
	vt *VTable
}

func (d *dynamicPlugin) Name() string { return d.vt.Name() }

func (d *dynamicPlugin) Preflight(ctx context.Context) error {
	return d.vt.callPreflight(ctx)
}

func (d *dynamicPlugin) Init(ctx context.Context, app *AppContext) error {
	// The AppContext crosses the FFI boundary as an opaque handle: a
	// runtime/cgo.Handle produced by appHandleFor, not a raw pointer.
	return d.vt.callInit(ctx, appHandleFor(app))
}

func (d *dynamicPlugin) Shutdown(ctx context.Context) error {
	err := d.vt.callShutdown(ctx)
	if closeErr := d.vt.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

var _ Plugin = (*dynamicPlugin)(nil)
