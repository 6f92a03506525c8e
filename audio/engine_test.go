package audio

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	wav "github.com/youpy/go-wav"

	"github.com/mrdg/keytone/keymap"
)

func TestEngineProcess(t *testing.T) {
	var keys KeySnapshot
	e := NewEngine(testMaps(t), &keys, Sine, testSampleRate)

	out := make([]float32, 256)
	for i := range out {
		out[i] = 1
	}
	e.Process(out)
	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d: expected the buffer to be cleared, got %v", i, s)
		}
	}

	keys.Store([]keymap.Key{keymap.KeyA})
	e.Process(out)
	if want, got := 1, e.Live(); want != got {
		t.Errorf("want %v live notes, got %v", want, got)
	}
	if silent(out) {
		t.Errorf("expected sound while A is held")
	}

	keys.Store(nil)
	e.Process(out)
	e.Process(out)
	if want, got := 0, e.Live(); want != got {
		t.Errorf("want %v live notes after release, got %v", want, got)
	}
}

func silent(buf []float32) bool {
	for _, s := range buf {
		if s != 0 {
			return false
		}
	}
	return true
}

func TestEngineProps(t *testing.T) {
	var keys KeySnapshot
	e := NewEngine(testMaps(t), &keys, Sine, testSampleRate)
	keys.Store([]keymap.Key{keymap.KeyA})

	if err := e.Set(PropWave, "square"); err != nil {
		t.Fatal(err)
	}
	if err := e.Set(PropVolume, 0.2); err != nil {
		t.Fatal(err)
	}
	out := make([]float32, 300)
	e.Process(out)
	if want, got := Square, e.notes.Wave(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := 0.2, e.notes.MaxVolume(); want != got {
		t.Errorf("want max volume %v, got %v", want, got)
	}
	for i := len(out)/fadeRate + 1; i < len(out); i++ {
		if v := out[i]; v != 0 && v != float32(squareAmp*0.2) && v != float32(-squareAmp*0.2) {
			t.Fatalf("sample %d: unexpected square value %v", i, v)
		}
	}

	for _, bad := range []struct {
		key   string
		value interface{}
	}{
		{PropWave, "noise"},
		{PropWave, 3},
		{PropVolume, 1.5},
		{PropVolume, "loud"},
		{"tempo", 120},
	} {
		if err := e.Set(bad.key, bad.value); err == nil {
			t.Errorf("%s=%v: expected error", bad.key, bad.value)
		}
	}
	if want, got := []string{PropVolume, PropWave}, e.Keys(); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestKeySnapshot(t *testing.T) {
	var s KeySnapshot
	s.Store([]keymap.Key{keymap.KeyA, keymap.KeyS})
	s.Store([]keymap.Key{keymap.KeyC})

	dst := []keymap.Key{keymap.KeyZ}
	if want, got := []keymap.Key{keymap.KeyZ, keymap.KeyC}, s.Load(dst); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}

	// the snapshot doesn't alias the stored slice
	keys := []keymap.Key{keymap.KeyA}
	s.Store(keys)
	keys[0] = keymap.KeyS
	if want, got := []keymap.Key{keymap.KeyA}, s.Load(nil); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestScope(t *testing.T) {
	s := NewScope(4)
	s.Write([]float32{1, 2, 3})
	if want, got := []float32{0, 1, 2, 3}, s.Samples(nil); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
	s.Write([]float32{4, 5})
	if want, got := []float32{2, 3, 4, 5}, s.Samples(nil); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
	s.Write([]float32{6, 7, 8, 9, 10})
	if want, got := []float32{7, 8, 9, 10}, s.Samples(nil); !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestRecorder(t *testing.T) {
	var keys KeySnapshot
	e := NewEngine(testMaps(t), &keys, Triangle, 1000)
	keys.Store([]keymap.Key{keymap.KeyS})

	r := NewRecorder(0.5, e.SampleRate())
	if err := e.Record(r); err != nil {
		t.Fatal(err)
	}
	if err := e.Record(NewRecorder(1, e.SampleRate())); err != ErrRecording {
		t.Errorf("want %v, got %v", ErrRecording, err)
	}

	out := make([]float32, 128)
	for i := 0; i < 3; i++ {
		e.Process(out)
	}
	select {
	case <-r.Done():
		t.Fatal("recording finished early")
	default:
	}
	e.Process(out)
	select {
	case <-r.Done():
	default:
		t.Fatal("recording should be done after 500 samples")
	}
	if err := e.Record(NewRecorder(1, e.SampleRate())); err != nil {
		t.Errorf("a finished recording should make room for a new one: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Save(ctx, path, int(e.SampleRate())); err != nil {
		t.Fatal(err)
	}
}

func TestRender(t *testing.T) {
	var keys KeySnapshot
	e := NewEngine(testMaps(t), &keys, Sawtooth, 8000)
	keys.Store([]keymap.Key{keymap.KeyA, keymap.KeyS})

	var buf bytes.Buffer
	if err := Render(&buf, e, 0.25, 300); err != nil {
		t.Fatal(err)
	}

	r := wav.NewReader(bytes.NewReader(buf.Bytes()))
	format, err := r.Format()
	if err != nil {
		t.Fatal(err)
	}
	if want, got := uint32(8000), format.SampleRate; want != got {
		t.Errorf("want sample rate %v, got %v", want, got)
	}
	if want, got := uint16(1), format.NumChannels; want != got {
		t.Errorf("want %v channels, got %v", want, got)
	}

	var n int
	var loud bool
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range samples {
			if r.IntValue(s, 0) != 0 {
				loud = true
			}
		}
		n += len(samples)
	}
	if want, got := 2000, n; want != got {
		t.Errorf("want %v samples, got %v", want, got)
	}
	if !loud {
		t.Errorf("expected a non-silent render")
	}
}
