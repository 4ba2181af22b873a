package parallel

import (
	"math"

	"github.com/Mibu287/mini-openmp/pkg/types"
)

// Partition is the static split of an index range into chunks.
//
// Indices are addressed by their ordinal k in [0, Total): index k is
// Start + k*Step. Chunk c covers ordinals [c*ChunkSize, min((c+1)*ChunkSize, Total)).
type Partition struct {
	Start int
	Stop  int
	Step  int

	// Total is the number of indices in the range
	Total int

	// ChunkSize is the number of indices per chunk; the last chunk may be shorter
	ChunkSize int

	// NumChunks is the number of chunks, never more than the thread count
	NumChunks int
}

// Plan splits the range start, start+step, ... (short of stop) into chunks
// sized for numThreads workers.
//
// It fails with *types.InvalidRangeError when the range holds no index:
// zero step, a step whose sign disagrees with stop-start, or start == stop.
// A range holding more than math.MaxInt indices is rejected the same way.
func Plan(numThreads, start, stop, step int) (Partition, error) {
	if numThreads < 1 {
		return Partition{}, types.NewConstructionError(numThreads)
	}

	total := count(start, stop, step)
	chunk := ceilDiv(total, numThreads)
	if chunk <= 0 {
		return Partition{}, types.NewInvalidRangeError(start, stop, step)
	}

	return Partition{
		Start:     start,
		Stop:      stop,
		Step:      step,
		Total:     total,
		ChunkSize: chunk,
		NumChunks: ceilDiv(total, chunk),
	}, nil
}

// Chunk returns the ordinal bounds [lo, hi) of chunk c
func (p Partition) Chunk(c int) (lo, hi int) {
	lo = c * p.ChunkSize
	hi = p.Total
	if p.Total-lo > p.ChunkSize {
		hi = lo + p.ChunkSize
	}
	return lo, hi
}

// Index returns the index at ordinal k. Intermediate products may wrap, the
// result does not since every index lies between Start and Stop.
func (p Partition) Index(k int) int {
	return p.Start + k*p.Step
}

// count returns how many of start, start+step, ... lie short of stop, or 0
// when step is zero or points away from stop. It also returns 0 when the
// count does not fit in an int.
func count(start, stop, step int) int {
	if step == 0 || start == stop || (stop > start) != (step > 0) {
		return 0
	}

	// distance and stride as magnitudes; unsigned arithmetic cannot overflow here
	var d, s uint
	if step > 0 {
		d, s = uint(stop)-uint(start), uint(step)
	} else {
		d, s = uint(start)-uint(stop), -uint(step)
	}

	n := d / s
	if d%s != 0 {
		n++
	}
	if n > math.MaxInt {
		return 0
	}
	return int(n)
}

// ceilDiv divides non-negative a by positive b, rounding up
func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}
