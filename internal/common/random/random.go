// Package random provides the injectable randomness used by every sampling step.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source draws uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

type pcgSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a PCG-backed source. A zero seed uses the current time.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Sequence replays fixed values modulo n, cycling when exhausted.
type Sequence struct {
	mu   sync.Mutex
	vals []int
	pos  int
}

func NewSequence(vals ...int) *Sequence {
	return &Sequence{vals: vals}
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Choice returns a uniformly drawn element of items, or the zero value when empty.
func Choice[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.Intn(len(items))]
}
