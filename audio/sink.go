package audio

import (
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

// PortAudioStream plays a mono float32 stream on the default output device.
type PortAudioStream struct {
	stream *portaudio.Stream
	paused atomic.Bool
}

// OpenPortAudio opens the default output device and starts playing immediately.
func OpenPortAudio(process func(out []float32), sampleRate float64, frames int) (*PortAudioStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, frames, process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	return &PortAudioStream{stream: stream}, nil
}

func portAudioSampleRate() (float64, error) {
	if err := portaudio.Initialize(); err != nil {
		return 0, err
	}
	defer portaudio.Terminate()
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return 0, err
	}
	return dev.DefaultSampleRate, nil
}

func (s *PortAudioStream) Play() error {
	if err := s.stream.Start(); err != nil {
		return err
	}
	s.paused.Store(false)
	return nil
}

func (s *PortAudioStream) Pause() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	s.paused.Store(true)
	return nil
}

func (s *PortAudioStream) IsPaused() bool { return s.paused.Load() }

func (s *PortAudioStream) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
