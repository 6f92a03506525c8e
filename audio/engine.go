package audio

import (
	"errors"
	"sync/atomic"

	"github.com/mrdg/keytone/keymap"
)

// Engine is the audio callback. It reads the held keys from a KeySnapshot once per
// buffer and renders the notes they map to. Settings are changed through the
// embedded Props and are picked up at the start of the next buffer.
type Engine struct {
	*Props

	sampleRate float64
	notes      *Notes
	keys       *KeySnapshot
	held       []keymap.Key

	wave   *atomic.Value
	volume *atomic.Value

	scope    *Scope
	recorder atomic.Pointer[Recorder]
	live     atomic.Int32
}

var ErrRecording = errors.New("a recording is already in progress")

func NewEngine(maps *keymap.Maps, keys *KeySnapshot, w Wave, sampleRate float64) *Engine {
	props := NewProps()
	return &Engine{
		Props:      props,
		sampleRate: sampleRate,
		notes:      NewNotes(maps, w, sampleRate),
		keys:       keys,
		held:       make([]keymap.Key, 0, keymap.NumKeys),
		wave:       props.MustRegister(PropWave, setWave, w),
		volume:     props.MustRegister(PropVolume, setVolume, DefaultMaxVolume),
	}
}

func (e *Engine) SampleRate() float64 { return e.sampleRate }

// AttachScope makes every rendered buffer available to s. It must be called before the
// engine is started.
func (e *Engine) AttachScope(s *Scope) { e.scope = s }

// Record starts capturing output into r. Only one recording can run at a time.
func (e *Engine) Record(r *Recorder) error {
	if !e.recorder.CompareAndSwap(nil, r) {
		return ErrRecording
	}
	return nil
}

// Live returns the number of sounding notes as of the last rendered buffer.
func (e *Engine) Live() int { return int(e.live.Load()) }

// Wave returns the waveform currently selected through Props.
func (e *Engine) Wave() Wave { return e.wave.Load().(Wave) }

// Process renders one buffer into out.
func (e *Engine) Process(out []float32) {
	for i := range out {
		out[i] = 0
	}

	if w := e.wave.Load().(Wave); w != e.notes.Wave() {
		e.notes.UpdateWave(w)
	}
	if v := e.volume.Load().(float64); v != e.notes.MaxVolume() {
		e.notes.SetMaxVolume(v)
	}

	e.held = e.keys.Load(e.held[:0])
	e.notes.UpdateKeys(e.held)
	e.notes.GenerateAudio(out)
	e.live.Store(int32(e.notes.Live()))

	if e.scope != nil {
		e.scope.Write(out)
	}
	if r := e.recorder.Load(); r != nil {
		if r.Write(out) {
			e.recorder.CompareAndSwap(r, nil)
		}
	}
}
