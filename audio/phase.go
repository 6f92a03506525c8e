package audio

import "math"

const (
	twoPi = 2 * math.Pi

	// A4, the pitch all relative notes are counted from.
	refFreq = 440.0
	refNote = 69
)

// semitone is the frequency ratio between adjacent notes, 2^(1/12).
var semitone = math.Pow(2, 1.0/12)

// RelNote is a note measured in semitones from A4.
type RelNote int8

func (n RelNote) index() int { return int(n) - math.MinInt8 }

// Phase keeps a running phase per note so that a held note stays continuous across
// buffers. Between Before and After it tracks a single note.
type Phase struct {
	phases [256]float64

	note  RelNote
	start float64
	delta float64

	baseDelta float64
}

func NewPhase(sampleRate float64) Phase {
	return Phase{baseDelta: refFreq * twoPi / sampleRate}
}

// Before loads the stored phase of note and its per-sample increment.
func (p *Phase) Before(note RelNote) {
	p.note = note
	p.start = p.phases[note.index()]
	p.delta = p.baseDelta * math.Pow(semitone, float64(note))
}

// Next returns the phase at sample offset i without storing it.
func (p *Phase) Next(i float64) float64 {
	return p.start + i*p.delta
}

// After stores the phase reached after n samples.
func (p *Phase) After(n float64) {
	p.phases[p.note.index()] = math.Mod(p.Next(n), twoPi)
}

// Clear forgets the stored phase of note.
func (p *Phase) Clear(note RelNote) {
	p.phases[note.index()] = 0
}

// Stored returns the phase that the next buffer of note will start from.
func (p *Phase) Stored(note RelNote) float64 {
	return p.phases[note.index()]
}
