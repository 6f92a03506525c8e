package audio

import (
	"fmt"
	"strings"
)

// Stream is an audio output that pulls buffers from a callback while playing.
type Stream interface {
	Play() error
	Pause() error
	IsPaused() bool
	Close() error
}

const (
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"

	// used when a backend can't report the device rate
	defaultSampleRate = 48000
)

// Backends lists the names accepted by OpenStream.
func Backends() []string {
	return []string{BackendPortAudio, BackendOto}
}

// StreamConfig selects and configures an output backend.
type StreamConfig struct {
	Backend    string
	SampleRate float64 // 0 picks the device default
	Frames     int     // frames per buffer
}

// ResolveSampleRate fills in the sample rate when the config leaves it to the device.
func (c StreamConfig) ResolveSampleRate() (float64, error) {
	if c.SampleRate > 0 {
		return c.SampleRate, nil
	}
	switch c.Backend {
	case BackendPortAudio:
		return portAudioSampleRate()
	case BackendOto:
		return defaultSampleRate, nil
	default:
		return 0, unknownBackend(c.Backend)
	}
}

// OpenStream opens and starts an output stream that renders through process.
func OpenStream(c StreamConfig, process func(out []float32)) (Stream, error) {
	rate, err := c.ResolveSampleRate()
	if err != nil {
		return nil, err
	}
	switch c.Backend {
	case BackendPortAudio:
		return OpenPortAudio(process, rate, c.Frames)
	case BackendOto:
		return OpenOto(process, rate, c.Frames)
	default:
		return nil, unknownBackend(c.Backend)
	}
}

func unknownBackend(name string) error {
	return fmt.Errorf("unknown audio backend %q (available: %s)", name, strings.Join(Backends(), ", "))
}
