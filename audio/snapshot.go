package audio

import (
	"sync"

	"github.com/mrdg/keytone/keymap"
)

// KeySnapshot holds the most recent set of held keys. It is written by the input
// poller and read by the audio callback; the lock is only held while copying.
type KeySnapshot struct {
	mu   sync.Mutex
	keys []keymap.Key
}

// Store replaces the held keys with keys.
func (s *KeySnapshot) Store(keys []keymap.Key) {
	s.mu.Lock()
	s.keys = append(s.keys[:0], keys...)
	s.mu.Unlock()
}

// Load appends the held keys to dst.
func (s *KeySnapshot) Load(dst []keymap.Key) []keymap.Key {
	s.mu.Lock()
	dst = append(dst, s.keys...)
	s.mu.Unlock()
	return dst
}
