package plugin

import "runtime/cgo"

// appHandleFor pins app as a runtime/cgo.Handle so its address can cross
// the FFI boundary as a stable uintptr without the Go runtime moving or
// collecting it out from under the plugin. The handle value itself (not
// a raw pointer) is what gets passed as *mut App in the C ABI.
func appHandleFor(app *AppContext) uintptr {
	return uintptr(cgo.NewHandle(app))
}

// appFromHandle resolves a handle produced by appHandleFor back to the
// *AppContext it pins. Used on the Go side of any callback a dynamic
// plugin makes back into the kernel through the App pointer it was
// handed.
func appFromHandle(h uintptr) *AppContext {
	return cgo.Handle(h).Value().(*AppContext)
}
