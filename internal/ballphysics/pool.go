package ballphysics

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Buffer is a pre-allocated trajectory trace: parallel arrays of time,
// position and velocity, borrowed by the integrator for the duration of
// one trajectory and returned to its pool on completion. Debug logs copy
// values out of it; they never hold a reference to a pooled Buffer.
type Buffer struct {
	Times      []float64
	Positions  []r3.Vec
	Velocities []r3.Vec
	Len        int
}

// Reset clears the buffer for reuse without reallocating its backing
// arrays.
func (b *Buffer) Reset() { b.Len = 0 }

// Append records one (t, position, velocity) sample. It reports false
// (instead of growing the slice) when the buffer is full, so the caller
// can surface ErrTrajectoryTooLong per spec.md §4.2.
func (b *Buffer) Append(t float64, pos, vel r3.Vec) bool {
	if b.Len >= len(b.Times) {
		return false
	}
	b.Times[b.Len] = t
	b.Positions[b.Len] = pos
	b.Velocities[b.Len] = vel
	b.Len++
	return true
}

// Capacity returns the maximum number of samples this buffer can hold.
func (b *Buffer) Capacity() int { return len(b.Times) }

// BufferPool is a thread-local pool of fixed-capacity Buffers. Per spec.md
// §5, trajectory buffer pools are per-worker and never shared across
// threads; callers should construct one BufferPool per worker goroutine.
type BufferPool struct {
	pool     sync.Pool
	capacity int
}

// NewBufferPool creates a pool of Buffers sized for capacity samples —
// callers should size this as ceil(maxTime/dt)+2, the worst case for the
// smallest configured time step.
func NewBufferPool(capacity int) *BufferPool {
	bp := &BufferPool{capacity: capacity}
	bp.pool.New = func() any {
		return &Buffer{
			Times:      make([]float64, capacity),
			Positions:  make([]r3.Vec, capacity),
			Velocities: make([]r3.Vec, capacity),
		}
	}
	return bp
}

// Acquire borrows a reset Buffer from the pool.
func (bp *BufferPool) Acquire() *Buffer {
	b := bp.pool.Get().(*Buffer)
	b.Reset()
	return b
}

// Release returns a Buffer to the pool for reuse.
func (bp *BufferPool) Release(b *Buffer) {
	if b == nil || b.Capacity() != bp.capacity {
		return
	}
	bp.pool.Put(b)
}
