package dynarena_test

import (
	"fmt"
	"sync"

	"github.com/pavanmanishd/dynarena"
)

// Example demonstrates basic dynamic arena usage.
func Example() {
	arena := dynarena.New()
	defer arena.Release() // always clean up

	// Store values of different types in one arena.
	n := dynarena.AllocCopy(arena, 42)
	fmt.Printf("Allocated int with value: %d\n", *n)

	type point struct{ X, Y int }
	p := dynarena.AllocCopy(arena, point{X: 3, Y: 4})
	fmt.Printf("Allocated point: %+v\n", *p)

	// Copy-only values never register destructors.
	fmt.Printf("Pending finalizers: %d\n", arena.PendingFinalizers())

	// Output:
	// Allocated int with value: 42
	// Allocated point: {X:3 Y:4}
	// Pending finalizers: 0
}

// tempFile pretends to own a resource that needs cleanup.
type tempFile struct {
	name string
}

func (f *tempFile) Finalize() {
	fmt.Printf("cleaned up %s\n", f.name)
}

// ExampleDynamicArena_Release shows deferred destructors running in
// allocation order at teardown.
func ExampleDynamicArena_Release() {
	arena := dynarena.New()

	dynarena.Alloc(arena, tempFile{name: "a.tmp"})
	dynarena.Alloc(arena, tempFile{name: "b.tmp"})
	fmt.Println("before release")

	arena.Release()

	// Output:
	// before release
	// cleaned up a.tmp
	// cleaned up b.tmp
}

// listNode is self-referential: each node points at another node
// allocated in the same arena.
type listNode struct {
	value int
	next  *listNode
}

// ExampleAllocCopy builds a linked list entirely inside one arena.
func ExampleAllocCopy() {
	arena := dynarena.New()
	defer arena.Release()

	var head *listNode
	for i := 1; i <= 3; i++ {
		head = dynarena.AllocCopy(arena, listNode{value: i, next: head})
	}
	for n := head; n != nil; n = n.next {
		fmt.Println(n.value)
	}

	// Output:
	// 3
	// 2
	// 1
}

// ExampleByteArena demonstrates raw byte allocation.
func ExampleByteArena() {
	a := dynarena.ByteArenaWithCapacity(1024)
	defer a.Release()

	buf := a.AllocCopied([]byte("hello arena"))
	fmt.Printf("Copied: %s\n", buf)
	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())
	fmt.Printf("Chunks: %d\n", a.NumChunks())

	// Output:
	// Copied: hello arena
	// Memory in use: 11 bytes
	// Chunks: 1
}

// ExampleSafeByteArena demonstrates thread-safe byte allocation.
func ExampleSafeByteArena() {
	s := dynarena.NewSafeByteArena(0)
	defer s.Release()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AllocUninitialized(100)
		}()
	}
	wg.Wait()

	fmt.Printf("Memory in use: %d bytes\n", s.SizeInUse())

	// Output:
	// Memory in use: 308 bytes
}
