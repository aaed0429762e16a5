package dynarena

import (
	"sync"
	"unsafe"
)

// SafeByteArena is a mutex-protected wrapper around ByteArena for
// concurrent use. The raw arena stays lock-free; this wrapper is the
// opt-in sharing story for callers that cannot confine the arena to one
// goroutine at a time.
type SafeByteArena struct {
	mu sync.Mutex
	a  *ByteArena
}

// NewSafeByteArena creates a thread-safe arena with the given growth
// floor. If minChunkSize <= 0, DefaultMinChunkSize is used.
func NewSafeByteArena(minChunkSize int) *SafeByteArena {
	return &SafeByteArena{a: NewByteArena(minChunkSize)}
}

// AllocUninitialized thread-safely allocates n bytes without zeroing them.
// Returns nil if n <= 0.
func (s *SafeByteArena) AllocUninitialized(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocUninitialized(n)
}

// AllocZeroed thread-safely allocates n zero bytes.
func (s *SafeByteArena) AllocZeroed(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocZeroed(n)
}

// AllocCopied thread-safely allocates an arena-owned copy of src.
func (s *SafeByteArena) AllocCopied(src []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocCopied(src)
}

// AllocLayout thread-safely allocates size bytes at alignment align.
func (s *SafeByteArena) AllocLayout(size, align uintptr) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocLayout(size, align)
}

// Reset thread-safely rewinds all bump offsets for arena reuse.
func (s *SafeByteArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks and makes the arena unusable.
func (s *SafeByteArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// SizeInUse thread-safely returns the total number of bytes handed out.
func (s *SafeByteArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// NumChunks thread-safely returns the number of chunks.
func (s *SafeByteArena) NumChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.NumChunks()
}

// Capacity thread-safely returns the total capacity of all chunks.
func (s *SafeByteArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeByteArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeByteArena) Metrics() ByteArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
