package audio

import "github.com/mrdg/keytone/keymap"

const (
	DefaultMaxVolume = 0.5

	// fadeRate makes a volume change complete within the first third of a buffer.
	fadeRate = 3
)

type noteState struct {
	live   bool
	active bool
	volume float64
}

// NoteState describes a sounding note.
type NoteState struct {
	Note   keymap.Note
	Active bool
	Volume float64
}

// Notes turns the set of held keys into sound. A note is live from the moment one of
// its keys is pressed until it has faded out after the last of its keys was released.
// Notes is not safe for concurrent use; it belongs to the audio callback.
type Notes struct {
	sampleRate float64
	maxVolume  float64
	maps       *keymap.Maps

	// indexed by absolute pitch
	states [keymap.NumNotes]noteState
	live   int

	gen *Generator
}

func NewNotes(maps *keymap.Maps, w Wave, sampleRate float64) *Notes {
	return &Notes{
		sampleRate: sampleRate,
		maxVolume:  DefaultMaxVolume,
		maps:       maps,
		gen:        NewGenerator(w, sampleRate),
	}
}

func relNote(n keymap.Note) RelNote { return RelNote(int(n) - refNote) }

// UpdateKeys replaces the set of held keys. Keys that aren't mapped are ignored.
func (ns *Notes) UpdateKeys(active []keymap.Key) {
	for n := range ns.states {
		s := &ns.states[n]
		if !s.live {
			continue
		}
		s.active = anyHeld(ns.maps.Keys(keymap.Note(n)), active)
		if !s.active && s.volume == 0 {
			ns.gen.Clear(relNote(keymap.Note(n)))
			*s = noteState{}
			ns.live--
		}
	}

	for _, k := range active {
		n, ok := ns.maps.Note(k)
		if !ok {
			continue
		}
		s := &ns.states[n]
		if !s.live {
			*s = noteState{live: true}
			ns.live++
		}
		s.active = true
	}
}

func anyHeld(keys, active []keymap.Key) bool {
	for _, k := range keys {
		for _, a := range active {
			if k == a {
				return true
			}
		}
	}
	return false
}

// GenerateAudio adds one buffer of all live notes to buf. Each note fades from its
// volume at the end of the previous buffer towards its new target, which is an equal
// share of the max volume for held notes and zero for released ones.
func (ns *Notes) GenerateAudio(buf []float32) {
	if ns.live == 0 {
		return
	}
	share := ns.maxVolume / float64(ns.live)
	size := float64(len(buf))

	for n := range ns.states {
		s := &ns.states[n]
		if !s.live {
			continue
		}
		target := 0.0
		if s.active {
			target = share
		}

		ns.gen.Before(relNote(keymap.Note(n)))
		for i := range buf {
			pos := float64(i)
			gain := lerp(s.volume, target, pos/size*fadeRate)
			buf[i] += float32(ns.gen.Next(pos) * gain)
		}
		ns.gen.After(size)

		s.volume = target
	}
}

// UpdateWave switches to a new waveform. Phases of all notes start over.
func (ns *Notes) UpdateWave(w Wave) {
	ns.gen = NewGenerator(w, ns.sampleRate)
}

func (ns *Notes) Wave() Wave { return ns.gen.Wave() }

// SetMaxVolume sets the combined volume of all held notes, clamped to [0, 1].
// Notes that are already sounding fade to their new share during the next buffer.
func (ns *Notes) SetMaxVolume(v float64) {
	ns.maxVolume = lerp(0, 1, v)
}

func (ns *Notes) MaxVolume() float64 { return ns.maxVolume }

// Live returns the number of notes that are held or fading out.
func (ns *Notes) Live() int { return ns.live }

// States lists the live notes in ascending pitch order.
func (ns *Notes) States() []NoteState {
	states := make([]NoteState, 0, ns.live)
	for n, s := range ns.states {
		if s.live {
			states = append(states, NoteState{Note: keymap.Note(n), Active: s.active, Volume: s.volume})
		}
	}
	return states
}
