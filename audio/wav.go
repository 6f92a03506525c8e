package audio

import (
	"context"
	"io"
	"math"
	"os"

	wav "github.com/youpy/go-wav"
)

const bitsPerSample = 16

// WriteWAV writes mono samples as a 16 bit WAV file. Samples are clipped to [-1, 1].
func WriteWAV(w io.Writer, samples []float32, sampleRate int) error {
	out := make([]wav.Sample, len(samples))
	const scale = 1<<(bitsPerSample-1) - 1
	for i, s := range samples {
		out[i].Values[0] = int(scale * math.Max(-1, math.Min(1, float64(s))))
	}
	ww := wav.NewWriter(w, uint32(len(samples)), 1, uint32(sampleRate), bitsPerSample)
	return ww.WriteSamples(out)
}

// Recorder captures a fixed number of samples from the audio callback.
type Recorder struct {
	samples []float32
	n       int
	done    chan struct{}
}

func NewRecorder(seconds, sampleRate float64) *Recorder {
	r := &Recorder{
		samples: make([]float32, int(seconds*sampleRate)),
		done:    make(chan struct{}),
	}
	if len(r.samples) == 0 {
		close(r.done)
	}
	return r
}

// Write copies buf into the recording and reports whether the recording is complete.
// It is only called from the audio callback.
func (r *Recorder) Write(buf []float32) bool {
	if r.n == len(r.samples) {
		return true
	}
	r.n += copy(r.samples[r.n:], buf)
	if r.n == len(r.samples) {
		close(r.done)
		return true
	}
	return false
}

// Done is closed once all samples have been captured.
func (r *Recorder) Done() <-chan struct{} { return r.done }

// Save waits for the recording to complete and writes it to path.
func (r *Recorder) Save(ctx context.Context, path string, sampleRate int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, r.samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render drives e without an audio device, frames samples at a time, and writes the
// result to w as WAV.
func Render(w io.Writer, e *Engine, seconds float64, frames int) error {
	samples := make([]float32, int(seconds*e.SampleRate()))
	for off := 0; off < len(samples); off += frames {
		end := off + frames
		if end > len(samples) {
			end = len(samples)
		}
		e.Process(samples[off:end])
	}
	return WriteWAV(w, samples, int(e.SampleRate()))
}
