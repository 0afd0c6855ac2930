package dice

import "sync"

// StubSource is a deterministic Source for tests. Intn returns successive
// values from Ints (cycling); Float64 returns successive values from Floats
// (cycling). A nil or empty slice yields 0 for that draw kind.
//
// Safe for concurrent use.
type StubSource struct {
	mu     sync.Mutex
	Ints   []int
	Floats []float64
	intIdx int
	fltIdx int
}

// Intn returns the next stubbed int, clamped into [0, n).
//
// Precondition: n > 0.
func (s *StubSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.intIdx%len(s.Ints)]
	s.intIdx++
	if v < 0 {
		return 0
	}
	return v % n
}

// Float64 returns the next stubbed float.
//
// Postcondition: the returned value is the configured value verbatim; callers
// are responsible for supplying values in [0, 1).
func (s *StubSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fltIdx%len(s.Floats)]
	s.fltIdx++
	return v
}
