// Package dynarena implements region-based memory allocators: a chunked
// bump allocator for raw bytes (ByteArena) and a dynamically typed arena
// (DynamicArena) layered on top of it.
package dynarena

import (
	"math/bits"
	"unsafe"
)

// DefaultMinChunkSize is the default growth floor for new chunks (4 KiB).
// Every chunk the arena creates on demand has a power-of-two capacity of at
// least this size.
const DefaultMinChunkSize = 1 << 12

// ptrAlign is the default alignment for the byte-slice allocation paths.
const ptrAlign = unsafe.Alignof(uintptr(0))

// chunk is one contiguous block of backing storage within a ByteArena.
// Chunks are append-only: once a chunk cannot satisfy a request it is
// superseded by a larger one, never resized or individually freed, so every
// range handed out from it stays valid until the arena is released.
type chunk struct {
	buf []byte // backing memory
	off int    // bump offset within buf
}

// ByteArena is a chunked bump allocator for raw bytes. Allocation advances a
// cursor through the active chunk; when the chunk runs out a new one is
// created and becomes the bump target. All storage is released together by
// Release.
//
// Not goroutine-safe. Use SafeByteArena for concurrent access, or hand the
// whole arena from one goroutine to another between periods of use.
type ByteArena struct {
	chunks   []chunk
	current  *chunk // active chunk, last element of chunks
	minChunk int
	released bool
}

// NewByteArena creates an empty arena with the given growth floor.
// If minChunkSize <= 0, DefaultMinChunkSize is used. No memory is reserved
// until the first allocation.
func NewByteArena(minChunkSize int) *ByteArena {
	if minChunkSize <= 0 {
		minChunkSize = DefaultMinChunkSize
	}
	return &ByteArena{minChunk: minChunkSize}
}

// ByteArenaWithCapacity creates an arena with one pre-allocated chunk of at
// least capacity bytes.
func ByteArenaWithCapacity(capacity int) *ByteArena {
	a := NewByteArena(0)
	if capacity > 0 {
		a.chunks = append(a.chunks, chunk{buf: make([]byte, capacity)})
		a.current = &a.chunks[0]
	}
	return a
}

// AllocUninitialized returns n bytes from the arena without zeroing them.
// The contents are undefined; callers must initialize the range before
// reading it. Returns nil if n <= 0.
//
// The returned range never overlaps any other range handed out by this
// arena and stays valid until Release.
func (a *ByteArena) AllocUninitialized(n int) []byte {
	if n <= 0 {
		a.panicIfReleased()
		return nil
	}
	p := a.AllocLayout(uintptr(n), ptrAlign)
	return unsafe.Slice((*byte)(p), n)
}

// AllocZeroed returns n zero bytes from the arena. Returns nil if n <= 0.
func (a *ByteArena) AllocZeroed(n int) []byte {
	b := a.AllocUninitialized(n)
	clear(b)
	return b
}

// AllocCopied returns an arena-owned copy of src, at a distinct address.
// Returns nil if src is empty.
func (a *ByteArena) AllocCopied(src []byte) []byte {
	b := a.AllocUninitialized(len(src))
	copy(b, src)
	return b
}

// AllocLayout returns a pointer to size uninitialized bytes aligned to
// align. This is the raw entry point the typed DynamicArena operations are
// built on. align must be a power of two. Returns nil if size == 0.
func (a *ByteArena) AllocLayout(size, align uintptr) unsafe.Pointer {
	a.panicIfReleased()
	if size == 0 {
		return nil
	}
	if align == 0 || align&(align-1) != 0 {
		panic("dynarena: alignment must be a non-zero power of two")
	}
	n := int(size)
	if n < 0 {
		panic("dynarena: capacity overflow")
	}

	// Fast path: bump within the active chunk. Alignment is computed from
	// the chunk's actual base address, not the offset, so arbitrary
	// alignments are honored regardless of how the backing slice is placed.
	if c := a.current; c != nil {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
		off := int(alignUp(base+uintptr(c.off), align) - base)
		if end := off + n; end > 0 && end <= len(c.buf) {
			c.off = end
			return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.buf)), off)
		}
	}
	return a.allocSlow(n, align)
}

// allocSlow grows the arena and allocates from the fresh chunk.
func (a *ByteArena) allocSlow(n int, align uintptr) unsafe.Pointer {
	// Reserve align-1 slack so the aligned range is guaranteed to fit.
	// Overflow here surfaces as a negative request, which grow rejects.
	a.grow(n + int(align) - 1)
	c := a.current
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	off := int(alignUp(base, align) - base)
	c.off = off + n
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.buf)), off)
}

// grow appends a chunk sized by the growth policy and makes it the bump
// target. The previous chunk keeps every range already handed out.
func (a *ByteArena) grow(need int) {
	size := nextChunkSize(need, a.minChunk)
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.current = &a.chunks[len(a.chunks)-1]
}

// nextChunkSize computes the capacity of the next chunk:
// max(floor, next power of two >= need). A request too large to round to a
// representable power of two is a fatal condition.
func nextChunkSize(need, floor int) int {
	if need < 0 || uint(need) > 1<<(bits.UintSize-2) {
		panic("dynarena: capacity overflow")
	}
	size := nextPowerOfTwo(need)
	if size < floor {
		size = floor
	}
	return size
}

// nextPowerOfTwo rounds n up to the nearest power of two. n must be
// non-negative and representable.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// alignUp rounds addr up to the next multiple of align (a power of two).
func alignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// Reset rewinds every chunk's bump offset to zero, keeping the chunks for
// reuse. O(number of chunks). Every range previously handed out becomes
// invalid: its bytes will be handed out again.
func (a *ByteArena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].off = 0
	}
	if len(a.chunks) > 0 {
		a.current = &a.chunks[0]
	}
}

// Release drops all chunks and makes the arena unusable. Any subsequent
// allocation or Reset panics. Calling Release again is a no-op.
func (a *ByteArena) Release() {
	a.chunks = nil
	a.current = nil
	a.released = true
}

// panicIfReleased panics if the arena has been released.
func (a *ByteArena) panicIfReleased() {
	if a.released {
		panic("dynarena: use after Release()")
	}
}
