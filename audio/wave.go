package audio

import (
	"fmt"
	"math"
)

// Wave selects the shape of the generated tone.
type Wave int

const (
	Sine Wave = iota
	Square
	Triangle
	Sawtooth
	numWaves
)

var waveNames = [numWaves]string{
	Sine:     "sine",
	Square:   "square",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
}

func (w Wave) String() string {
	if w >= 0 && w < numWaves {
		return waveNames[w]
	}
	return fmt.Sprintf("Wave(%d)", int(w))
}

// Next returns the wave that follows w, wrapping back to Sine.
func (w Wave) Next() Wave {
	return (w + 1) % numWaves
}

// ParseWave returns the wave with the given name.
func ParseWave(s string) (Wave, error) {
	for w, name := range waveNames {
		if s == name {
			return Wave(w), nil
		}
	}
	return 0, fmt.Errorf("not a valid waveform: %q", s)
}

// WaveNames lists the names accepted by ParseWave.
func WaveNames() []string {
	return waveNames[:]
}

const squareAmp = 0.5

// Generator renders one wave shape on top of a shared Phase.
type Generator struct {
	wave  Wave
	phase Phase
}

func NewGenerator(w Wave, sampleRate float64) *Generator {
	return &Generator{wave: w, phase: NewPhase(sampleRate)}
}

func (g *Generator) Wave() Wave { return g.wave }

func (g *Generator) Before(note RelNote) { g.phase.Before(note) }

func (g *Generator) After(n float64) { g.phase.After(n) }

func (g *Generator) Clear(note RelNote) { g.phase.Clear(note) }

// Next returns the value of the wave at sample offset i of the current buffer.
func (g *Generator) Next(i float64) float64 {
	phase := g.phase.Next(i)
	switch g.wave {
	case Square:
		s := math.Sin(phase)
		switch {
		case s < 0:
			return -squareAmp
		case s > 0:
			return squareAmp
		default:
			return 0
		}
	case Triangle:
		pos := math.Mod(phase, twoPi) / (twoPi / 4)
		switch {
		case pos < 1:
			return lerp(0, 1, pos)
		case pos < 2:
			return lerp(1, 0, pos-1)
		case pos < 3:
			return lerp(0, -1, pos-2)
		default:
			return lerp(-1, 0, pos-3)
		}
	case Sawtooth:
		pos := math.Mod(phase, twoPi) / (twoPi / 2)
		if pos < 1 {
			return lerp(-1, 0, pos)
		}
		return lerp(0, 1, pos-1)
	default:
		return math.Sin(phase)
	}
}

// lerp interpolates between a and b with t clamped to [0, 1].
func lerp(a, b, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return (1-t)*a + t*b
}
