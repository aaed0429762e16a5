package dynarena

import (
	"runtime"
	"unsafe"
)

// Alloc stores value in the arena and returns a pointer valid until the
// arena is released. If *T implements Finalizer, a deferred destructor is
// registered and invoked at Release.
//
// Caller contract: every pointer reachable from value must stay valid for
// the arena's whole lifetime. Pointers into the same arena are forbidden
// here (use AllocCopy for self-referential data); pointers to outside
// objects must be kept reachable independently, because the garbage
// collector cannot see them through arena storage.
//
// For a Sendable arena, value must additionally be safe to use from
// whichever goroutine ends up releasing the arena.
func Alloc[T any, S SendAbility](a *DynamicArena[S], value T) *T {
	p := AllocUnchecked(a, value)
	DynamicDrop(a, p)
	return p
}

// AllocCopy stores value in the arena without registering any destructor.
// Only types with no cleanup behavior are accepted: if *T implements
// Finalizer, AllocCopy panics at the call site rather than silently
// skipping the hook.
//
// Because the stored value can never run cleanup code, it may safely point
// at other values in the same arena — all of them share the arena's
// lifetime, and no Finalize hook exists to observe a neighbor mid-teardown.
// This is the supported path for self-referential structures.
func AllocCopy[T any, S SendAbility](a *DynamicArena[S], value T) *T {
	if needsFinalize[T]() {
		panic("dynarena: AllocCopy: type requires cleanup, use Alloc")
	}
	return AllocUnchecked(a, value)
}

// AllocUnchecked stores value in the arena without registering a
// destructor, whether or not *T implements Finalizer. If the type does
// need cleanup, that cleanup never runs: the value is leaked by choice.
// Use only when no cleanup is required or it is handled externally.
func AllocUnchecked[T any, S SendAbility](a *DynamicArena[S], value T) *T {
	size := unsafe.Sizeof(value)
	if size == 0 {
		// Zero-size types still get a distinct, valid address.
		size = 1
	}
	p := (*T)(a.AllocLayout(size, unsafe.Alignof(value)))
	*p = value
	return p
}

// AllocSliceCopy stores an arena-owned copy of src and returns it. Like
// AllocCopy, the element type must have no cleanup behavior; the returned
// slice may be referenced by other values stored in the same arena.
// Returns nil if src is empty.
func AllocSliceCopy[T any, S SendAbility](a *DynamicArena[S], src []T) []T {
	if needsFinalize[T]() {
		panic("dynarena: AllocSliceCopy: element type requires cleanup")
	}
	n := len(src)
	if n == 0 {
		a.panicIfReleased()
		return nil
	}
	var zero T
	p := (*T)(a.AllocLayout(unsafe.Sizeof(zero)*uintptr(n), unsafe.Alignof(zero)))
	dst := unsafe.Slice(p, n)
	copy(dst, src)
	return dst
}

// AllocStringCopy stores an arena-owned copy of s and returns it. The
// returned string's backing bytes live in the arena, so it may be embedded
// in other arena-resident values without keeping s alive.
func AllocStringCopy[S SendAbility](a *DynamicArena[S], s string) string {
	if len(s) == 0 {
		a.panicIfReleased()
		return ""
	}
	p := (*byte)(a.AllocLayout(uintptr(len(s)), 1))
	copy(unsafe.Slice(p, len(s)), s)
	return unsafe.String(p, len(s))
}

// DynamicDrop registers a deferred destructor for a value already stored
// in the arena. No-op when *T does not implement Finalizer.
//
// The value must live in this arena's storage (or otherwise stay valid
// until Release), and must not be registered twice.
func DynamicDrop[T any, S SendAbility](a *DynamicArena[S], value *T) {
	if !needsFinalize[T]() {
		return
	}
	a.panicIfReleased()
	a.records = append(a.records, dropRecord{
		drop:  finalizePointee[T],
		value: unsafe.Pointer(value),
	})
}

// needsFinalize reports whether values of type T need cleanup, i.e.
// whether *T implements Finalizer. Resolved per instantiation from type
// information alone.
func needsFinalize[T any]() bool {
	var p *T
	_, ok := any(p).(Finalizer)
	return ok
}

// finalizePointee recovers the concrete type behind an opaque pointer and
// runs its Finalize hook. Instantiated at the allocation site, where T is
// still known; invoked at Release, where it no longer is.
func finalizePointee[T any](p unsafe.Pointer) {
	any((*T)(p)).(Finalizer).Finalize()
}

// PtrAndKeepAlive returns p and calls runtime.KeepAlive on the arena.
// Useful in unsafe code to pin the arena while a raw pointer derived from
// it is still in use.
func PtrAndKeepAlive[T any, S SendAbility](a *DynamicArena[S], p *T) *T {
	runtime.KeepAlive(a)
	return p
}
