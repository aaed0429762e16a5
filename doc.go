// Package dynarena implements region-based memory allocators for Go: a
// chunked bump allocator for raw bytes and a dynamically typed arena where
// values of arbitrary, mixed types share one region and one teardown.
//
// # Overview
//
// A region allocator hands out memory by advancing a cursor through large
// pre-reserved chunks and reclaims everything at once when the region is
// destroyed. There is no per-object deallocation, no reuse and no
// compaction. This is useful for:
//
//   - Request- or phase-scoped allocation with batch cleanup
//   - Object graphs whose parts all share one lifetime
//   - Reducing allocator and garbage-collection pressure
//   - Predictable allocation latency in hot paths
//
// Two allocators are provided. ByteArena bump-allocates uninterpreted byte
// ranges. DynamicArena layers typed allocation on top of a byte supplier
// and defers each value's cleanup (its Finalize hook) until the whole
// arena is released.
//
// # Basic Usage
//
//	arena := dynarena.New()
//	defer arena.Release() // runs pending Finalize hooks, frees storage
//
//	// Store values of different types in one arena. If *T implements
//	// Finalizer, cleanup is deferred until Release.
//	n := dynarena.Alloc(arena, 42)
//	s := dynarena.AllocCopy(arena, point{X: 1, Y: 2})
//
//	// Raw bytes, when no typed value is involved.
//	ba := dynarena.ByteArenaWithCapacity(4096)
//	defer ba.Release()
//	buf := ba.AllocCopied([]byte("payload"))
//	_, _, _ = n, s, buf
//
// # Cleanup
//
// A type needs cleanup exactly when *T implements Finalizer. Alloc
// registers a deferred destructor for such types; Release invokes all
// registered destructors in allocation order (oldest first) and then frees
// the storage. Each destructor runs exactly once. Because the order is
// allocation order, a value must never rely on observing the still-live
// state of a value allocated before it.
//
// # Self-Referential Structures
//
// Values stored through AllocCopy may point at other values in the same
// arena, including chains of nodes each referencing the previous one.
// AllocCopy only accepts types with no cleanup behavior, which is what
// makes this sound: with no Finalize hook to run, no stored value can ever
// observe a neighbor that has already been torn down. Types that do need
// cleanup must go through Alloc and must not point into the arena.
//
// # Thread Safety
//
// Arenas are not goroutine-safe: at most one goroutine may operate on an
// instance at any instant. A DynamicArena carries a capability tag fixed
// at construction. NewSend returns a Sendable arena that may be handed to
// another goroutine between periods of use, provided everything stored in
// it is safe to use from the receiving goroutine. New returns a Confined
// arena with no such obligation on stored values; it must stay on its
// goroutine of use. For concurrent byte allocation, SafeByteArena wraps
// ByteArena with a mutex.
//
// # Memory Layout
//
// Chunks have power-of-two capacities of at least the growth floor
// (default 4 KiB, tunable per arena). When the active chunk cannot satisfy
// a request, a new chunk of max(floor, next power of two of the request)
// becomes the bump target; old chunks keep all issued ranges valid and are
// only freed by Release. Allocations never span chunks.
//
// # Important Notes
//
//   - Allocated memory is only valid until Release
//   - Pointers stored inside arena memory are invisible to the garbage
//     collector; referents must live in the arena or be kept reachable
//     independently
//   - A request too large for the growth policy panics; there is no
//     recoverable-error path by design
//   - Memory from AllocUninitialized and AllocLayout is not zeroed
package dynarena
