package audio

import "sync"

// Scope keeps the most recent samples written to it for display.
type Scope struct {
	mu  sync.Mutex
	buf []float32
	pos int
}

func NewScope(size int) *Scope {
	return &Scope{buf: make([]float32, size)}
}

// Write appends samples, overwriting the oldest ones.
func (s *Scope) Write(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := len(s.buf)
	if len(samples) >= size {
		copy(s.buf, samples[len(samples)-size:])
		s.pos = 0
		return
	}
	n := copy(s.buf[s.pos:], samples)
	copy(s.buf, samples[n:])
	s.pos = (s.pos + len(samples)) % size
}

// Samples copies the retained samples into dst, oldest first.
func (s *Scope) Samples(dst []float32) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst = append(dst, s.buf[s.pos:]...)
	return append(dst, s.buf[:s.pos]...)
}
