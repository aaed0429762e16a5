package dynarena

import "unsafe"

// Finalizer is the cleanup hook for arena-allocated values. A type needs
// cleanup exactly when *T implements Finalizer; the check is made once per
// type at the allocation site, not per value at teardown.
//
// Finalize is invoked by DynamicArena.Release, once per registered value,
// in allocation order.
type Finalizer interface {
	Finalize()
}

// dropRecord is a type-erased deferred destructor: a function that knows
// how to finalize the value behind an opaque pointer. The pointer stays
// valid until the record is invoked because the value lives in the arena's
// own storage.
type dropRecord struct {
	drop  func(unsafe.Pointer)
	value unsafe.Pointer
}

// Sendable is the capability tag for arenas that may be handed from one
// goroutine to another between periods of use. Every value stored in a
// Sendable arena must itself be safe to use from whichever goroutine ends
// up releasing the arena.
type Sendable struct{}

// Confined is the capability tag for arenas that stay on a single
// goroutine of use for their whole life. Stored values carry no transfer
// obligation.
type Confined struct{}

// SendAbility is the set of capability tags a DynamicArena can carry. The
// tag is fixed at construction and has no runtime representation.
type SendAbility interface {
	Sendable | Confined
}

// BumpAllocator is the byte-supplier contract a DynamicArena builds on:
// allocate size bytes at alignment align from growable storage, returning
// an address that stays valid until the allocator is released. ByteArena
// satisfies it; any bump allocator with the same guarantees is
// substitutable.
type BumpAllocator interface {
	AllocLayout(size, align uintptr) unsafe.Pointer
	Release()
}

// DynamicArena is an arena allocator where values of any type can be
// stored together. Unlike a typed arena the stored values need not share a
// statically known element type; the only dynamic dispatch happens at
// Release, when the deferred Finalize hooks run.
//
// Values stored in the arena are logically owned by it: the arena alone
// decides when their Finalize hooks run, and callers hold borrowed
// pointers that stay valid until Release.
//
// Pointers written into arena storage are invisible to the garbage
// collector. Anything a stored value points at must either live in the
// same arena or be kept reachable by other means for the arena's lifetime.
//
// Self-referential values (each holding a pointer to a previously stored
// value in the same arena) are supported through AllocCopy only: a value
// with no cleanup behavior can never observe a torn-down neighbor, because
// it has no Finalize hook to run. Alloc'd values must not point into the
// arena, since Release makes no attempt to order finalization by reference
// direction.
//
// Not goroutine-safe: at most one goroutine may operate on an arena at any
// instant. A *DynamicArena[Sendable] may move between goroutines between
// periods of use; a *DynamicArena[Confined] must not.
type DynamicArena[S SendAbility] struct {
	// handle supplies the raw bytes every stored value lives in.
	handle BumpAllocator
	// records holds the pending destructors in allocation order. Only
	// values whose type needs cleanup appear here.
	records  []dropRecord
	released bool
}

// New creates a Confined arena. Values stored in it need not be safe to
// hand across goroutines, and neither is the arena itself.
func New() *DynamicArena[Confined] {
	return NewBounded()
}

// NewBounded creates an empty Confined arena. Identical to New; kept as a
// named constructor so call sites can spell out the confinement.
func NewBounded() *DynamicArena[Confined] {
	return &DynamicArena[Confined]{handle: NewByteArena(0)}
}

// NewSend creates an empty Sendable arena. The arena may later be handed
// to another goroutine as a whole; in exchange, every stored value must be
// safe to use from the goroutine that releases it.
func NewSend() *DynamicArena[Sendable] {
	return &DynamicArena[Sendable]{handle: NewByteArena(0)}
}

// WithCapacity creates an arena with pre-allocated capacity for the given
// number of finalizable items and bytes of storage.
//
// The item capacity excludes AllocCopy values, which never register a
// destructor.
func WithCapacity[S SendAbility](itemCapacity, byteCapacity int) *DynamicArena[S] {
	if itemCapacity < 0 {
		itemCapacity = 0
	}
	return &DynamicArena[S]{
		handle:  ByteArenaWithCapacity(byteCapacity),
		records: make([]dropRecord, 0, itemCapacity),
	}
}

// NewWithAllocator creates an arena over a caller-supplied byte backend.
// The arena takes ownership: Release releases the backend.
func NewWithAllocator[S SendAbility](backend BumpAllocator) *DynamicArena[S] {
	return &DynamicArena[S]{handle: backend}
}

// AllocLayout returns a pointer to size uninitialized bytes at alignment
// align, valid until Release. This is the raw path the typed allocation
// functions are built on.
func (a *DynamicArena[S]) AllocLayout(size, align uintptr) unsafe.Pointer {
	a.panicIfReleased()
	return a.handle.AllocLayout(size, align)
}

// PendingFinalizers returns how many deferred destructors are currently
// registered.
func (a *DynamicArena[S]) PendingFinalizers() int {
	return len(a.records)
}

// Backend returns the underlying byte allocator. Allocating through it
// directly is allowed; such allocations get no destructor.
func (a *DynamicArena[S]) Backend() BumpAllocator {
	return a.handle
}

// Release invokes every pending destructor in allocation order (oldest
// first) and then releases the byte storage. The order is a contract:
// clients must never store a value B whose Finalize needs to observe the
// still-live state of a value A stored before it, since A finalizes first.
//
// After Release every pointer previously handed out is invalid and every
// further operation on the arena panics. Calling Release again is a no-op;
// no destructor ever runs twice.
func (a *DynamicArena[S]) Release() {
	if a.released {
		return
	}
	// Destructors run before the storage their values live in goes away.
	for i := range a.records {
		r := &a.records[i]
		r.drop(r.value)
	}
	a.records = nil
	a.handle.Release()
	a.released = true
}

// panicIfReleased panics if the arena has been released.
func (a *DynamicArena[S]) panicIfReleased() {
	if a.released {
		panic("dynarena: use after Release()")
	}
}
