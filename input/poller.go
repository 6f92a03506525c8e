package input

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/keymap"
)

const (
	DefaultInterval   = 10 * time.Millisecond
	DefaultInactivity = 5 * time.Second
)

// Source reports the keys that are currently held down.
type Source interface {
	// Keys appends the held keys to dst.
	Keys(dst []keymap.Key) []keymap.Key
}

type merged []Source

// Merge returns a Source reporting the keys of all sources. Keys held in more
// than one source are reported more than once.
func Merge(sources ...Source) Source { return merged(sources) }

func (m merged) Keys(dst []keymap.Key) []keymap.Key {
	for _, s := range m {
		dst = s.Keys(dst)
	}
	return dst
}

// Manual is a Source whose keys are set directly, e.g. from the command line.
type Manual struct {
	mu   sync.Mutex
	keys []keymap.Key
}

// Hold adds keys to the held set.
func (m *Manual) Hold(keys ...keymap.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
outer:
	for _, k := range keys {
		for _, held := range m.keys {
			if held == k {
				continue outer
			}
		}
		m.keys = append(m.keys, k)
	}
}

// Release empties the held set.
func (m *Manual) Release() {
	m.mu.Lock()
	m.keys = m.keys[:0]
	m.mu.Unlock()
}

func (m *Manual) Keys(dst []keymap.Key) []keymap.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(dst, m.keys...)
}

// Stream is the part of an output stream the poller controls.
type Stream interface {
	Play() error
	Pause() error
	IsPaused() bool
}

// Poller copies the keys of Source into Snapshot at a fixed interval. It keeps
// Stream playing while keys are held and pauses it once no key has been held
// for Inactivity.
type Poller struct {
	Source     Source
	Snapshot   *audio.KeySnapshot
	Stream     Stream // may be nil
	Interval   time.Duration
	Inactivity time.Duration

	now        func() time.Time
	keys       []keymap.Key
	lastActive time.Time
}

// Run polls until ctx is done or the stream fails to play or pause.
func (p *Poller) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.Inactivity <= 0 {
		p.Inactivity = DefaultInactivity
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.lastActive = p.now()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.poll(); err != nil {
				return err
			}
		}
	}
}

func (p *Poller) poll() error {
	p.keys = p.Source.Keys(p.keys[:0])
	p.Snapshot.Store(p.keys)
	if p.Stream == nil {
		return nil
	}

	now := p.now()
	if len(p.keys) > 0 {
		p.lastActive = now
		if p.Stream.IsPaused() {
			log.Printf("resuming audio")
			return p.Stream.Play()
		}
		return nil
	}
	if !p.Stream.IsPaused() && now.Sub(p.lastActive) > p.Inactivity {
		log.Printf("no keys held for %v, pausing audio", p.Inactivity)
		return p.Stream.Pause()
	}
	return nil
}
