package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

const bytesPerSample = 4

// OtoStream plays through oto, which pulls samples by calling Read.
type OtoStream struct {
	ctx     *oto.Context
	player  *oto.Player
	process func(out []float32)
	buf     []float32 // only touched by Read
	paused  atomic.Bool
	mu      sync.Mutex // play/pause/close
}

// OpenOto creates an oto context with a mono float32 stream and starts playing.
// frames sets the device buffer length.
func OpenOto(process func(out []float32), sampleRate float64, frames int) (*OtoStream, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(frames) / sampleRate * float64(time.Second)),
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &OtoStream{
		ctx:     ctx,
		process: process,
		buf:     make([]float32, frames),
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// Read renders len(p)/4 samples into p.
func (s *OtoStream) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample
	if cap(s.buf) < n {
		s.buf = make([]float32, n)
	}
	samples := s.buf[:n]
	s.process(samples)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return n * bytesPerSample, nil
}

func (s *OtoStream) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Play()
	s.paused.Store(false)
	return nil
}

func (s *OtoStream) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.Pause()
	s.paused.Store(true)
	return nil
}

func (s *OtoStream) IsPaused() bool { return s.paused.Load() }

func (s *OtoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Close()
}
