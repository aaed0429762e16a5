package dynarena

// SizeInUse returns the total number of bytes currently handed out by the
// arena, including internal fragmentation due to alignment.
func (a *ByteArena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += c.off
	}
	return sum
}

// NumChunks returns the number of chunks currently owned by the arena.
func (a *ByteArena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks.
func (a *ByteArena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity
// (0.0 to 1.0). Returns 0.0 if the arena has no capacity.
func (a *ByteArena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// MinChunkSize returns the growth floor used when sizing new chunks.
func (a *ByteArena) MinChunkSize() int {
	return a.minChunk
}

// Metrics returns a snapshot of arena statistics.
func (a *ByteArena) Metrics() ByteArenaMetrics {
	return ByteArenaMetrics{
		SizeInUse:    a.SizeInUse(),
		Capacity:     a.Capacity(),
		NumChunks:    a.NumChunks(),
		MinChunkSize: a.MinChunkSize(),
		Utilization:  a.Utilization(),
	}
}

// ByteArenaMetrics contains statistical information about a ByteArena.
type ByteArenaMetrics struct {
	SizeInUse    int     // Bytes currently handed out
	Capacity     int     // Total capacity in bytes
	NumChunks    int     // Number of chunks
	MinChunkSize int     // Growth floor for new chunks
	Utilization  float64 // Ratio of used to total capacity (0.0-1.0)
}
