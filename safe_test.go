package dynarena

import (
	"sort"
	"sync"
	"testing"
	"unsafe"
)

func TestNewSafeByteArena(t *testing.T) {
	s := NewSafeByteArena(1024)
	if s == nil {
		t.Fatal("NewSafeByteArena returned nil")
	}
	if s.a == nil {
		t.Fatal("SafeByteArena.a is nil")
	}
}

func TestSafeByteArenaOperations(t *testing.T) {
	s := NewSafeByteArena(1024)

	b := s.AllocUninitialized(100)
	if len(b) != 100 {
		t.Errorf("AllocUninitialized(100) length = %d, want 100", len(b))
	}
	if s.AllocUninitialized(0) != nil {
		t.Error("AllocUninitialized(0) should return nil")
	}

	z := s.AllocZeroed(64)
	for i, v := range z {
		if v != 0 {
			t.Fatalf("AllocZeroed byte %d = %#x, want 0", i, v)
		}
	}

	c := s.AllocCopied([]byte("shared"))
	if string(c) != "shared" {
		t.Errorf("AllocCopied = %q, want %q", c, "shared")
	}

	if s.SizeInUse() == 0 {
		t.Error("expected non-zero size in use")
	}
	if s.Metrics().NumChunks != s.NumChunks() {
		t.Error("Metrics snapshot disagrees with accessor")
	}

	s.Reset()
	if s.SizeInUse() != 0 {
		t.Error("expected zero size in use after Reset")
	}

	s.Release()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic after Release")
		}
	}()
	s.AllocUninitialized(100)
}

func TestSafeByteArenaConcurrentNonOverlap(t *testing.T) {
	s := NewSafeByteArena(256)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	type span struct{ start, end uintptr }
	spans := make([]span, 0, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n := 1 + (id+i)%97
				b := s.AllocUninitialized(n)
				start := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
				mu.Lock()
				spans = append(spans, span{start, start + uintptr(n)})
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			t.Fatalf("regions overlap: [%#x,%#x) and [%#x,%#x)",
				spans[i-1].start, spans[i-1].end, spans[i].start, spans[i].end)
		}
	}
}
