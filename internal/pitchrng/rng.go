// Package pitchrng provides deterministic, per-entity seeded random streams.
//
// The simulation core runs many games concurrently; each game, and each
// stream within a game (pitch location noise, swing timing, spray angle,
// ...) must be reproducible independent of how many worker goroutines are
// running. We replace the single shared math/rand global source with an
// explicit counter-derived stream per (base seed, stream label).
package pitchrng

import (
	"hash/fnv"
	"math/rand"
)

// Stream is a named, independently seeded random source.
type Stream struct {
	rnd *rand.Rand
}

// New derives a Stream from baseSeed and a label. Identical (baseSeed, label)
// always produces an identical stream, regardless of call order or which
// goroutine constructs it.
func New(baseSeed int64, label string) *Stream {
	h := fnv.New64a()
	// Two disjoint writes guarantee (1, "a2") and (12, "a") don't collide.
	var buf [8]byte
	putInt64(&buf, baseSeed)
	h.Write(buf[:])
	h.Write([]byte{0})
	h.Write([]byte(label))
	seed := int64(h.Sum64())
	return &Stream{rnd: rand.New(rand.NewSource(seed))}
}

// ForGame derives the per-game base seed used to seed every stream within
// game index idx: hash(baseSeed, idx).
func ForGame(baseSeed int64, idx int) int64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt64(&buf, baseSeed)
	h.Write(buf[:])
	h.Write([]byte{1})
	putInt64(&buf, int64(idx))
	h.Write(buf[:])
	return int64(h.Sum64())
}

func putInt64(buf *[8]byte, v int64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

// Float64 returns a pseudo-random number in [0,1).
func (s *Stream) Float64() float64 { return s.rnd.Float64() }

// NormFloat64 returns a standard-normal pseudo-random number.
func (s *Stream) NormFloat64() float64 { return s.rnd.NormFloat64() }

// Intn returns a pseudo-random number in [0,n).
func (s *Stream) Intn(n int) int { return s.rnd.Intn(n) }

// Sub derives a child stream scoped to this stream plus an extra label,
// e.g. a per-pitch-number sub-stream of a per-at-bat stream. The child's
// seed is the parent's next draw mixed with the label, so a child is
// reproduced only when the parent has made the same sequence of draws and
// Sub calls before it.
func (s *Stream) Sub(label string) *Stream {
	seed := s.rnd.Int63()
	h := fnv.New64a()
	var buf [8]byte
	putInt64(&buf, seed)
	h.Write(buf[:])
	h.Write([]byte(label))
	return &Stream{rnd: rand.New(rand.NewSource(int64(h.Sum64())))}
}
