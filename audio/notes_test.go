package audio

import (
	"math"
	"reflect"
	"testing"

	"github.com/mrdg/keytone/keymap"
)

const testSampleRate = 44100

func pitch(n int) *int { return &n }

func testMaps(t *testing.T) *keymap.Maps {
	t.Helper()
	maps, err := keymap.Build(keymap.Config{
		"A": pitch(60),
		"C": pitch(60),
		"S": pitch(61),
		"D": nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	return maps
}

func TestNotesSilence(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 256)
	notes.UpdateKeys(nil)
	notes.GenerateAudio(buf)
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d: want 0, got %v", i, s)
		}
	}
}

func TestNotesIgnoreUnmappedKeys(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	notes.UpdateKeys([]keymap.Key{keymap.KeyD, keymap.KeyZ, keymap.Key(250)})
	if want, got := 0, notes.Live(); want != got {
		t.Errorf("want %v live notes, got %v", want, got)
	}
}

func TestNotesPolyphonyNormalization(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 256)
	notes.UpdateKeys([]keymap.Key{keymap.KeyA, keymap.KeyS, keymap.KeyS})
	notes.GenerateAudio(buf)

	want := []NoteState{
		{Note: 60, Active: true, Volume: 0.25},
		{Note: 61, Active: true, Volume: 0.25},
	}
	got := notes.States()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("\nwant: %+v\ngot:  %+v", want, got)
	}
	var sum float64
	for _, s := range got {
		sum += s.Volume
	}
	if sum != DefaultMaxVolume {
		t.Errorf("want volumes to sum to %v, got %v", DefaultMaxVolume, sum)
	}
}

func TestNotesFadeIn(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 300)
	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)

	if buf[0] != 0 {
		t.Errorf("first sample of a new note should be silent, got %v", buf[0])
	}

	ref := NewPhase(testSampleRate)
	ref.Before(relNote(60))
	for i := len(buf)/fadeRate + 1; i < len(buf); i++ {
		want := float32(math.Sin(ref.Next(float64(i))) * DefaultMaxVolume)
		if buf[i] != want {
			t.Fatalf("sample %d: want full volume %v, got %v", i, want, buf[i])
		}
	}
	for i := 0; i <= len(buf)/fadeRate; i++ {
		full := math.Abs(math.Sin(ref.Next(float64(i))) * DefaultMaxVolume)
		if math.Abs(float64(buf[i])) > full+1e-6 {
			t.Fatalf("sample %d: %v exceeds full volume %v during fade", i, buf[i], full)
		}
	}
}

func TestNotesContinuousAtBufferStart(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 128)
	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)

	// second note halves the target of the first; the first sample still uses the old volume
	notes.UpdateKeys([]keymap.Key{keymap.KeyA, keymap.KeyS})
	start := notes.gen.phase.Stored(relNote(60))
	for i := range buf {
		buf[i] = 0
	}
	notes.GenerateAudio(buf)

	want := float32(math.Sin(start) * DefaultMaxVolume)
	if buf[0] != want {
		t.Errorf("want %v, got %v", want, buf[0])
	}
}

func TestNotesPhaseContinuity(t *testing.T) {
	const size = 500
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, size)
	notes.UpdateKeys([]keymap.Key{keymap.KeyS})
	notes.GenerateAudio(buf)

	ref := NewPhase(testSampleRate)
	ref.Before(relNote(61))
	want := math.Mod(ref.Next(size), twoPi)
	if got := notes.gen.phase.Stored(relNote(61)); want != got {
		t.Errorf("want stored phase %v, got %v", want, got)
	}

	notes.UpdateKeys([]keymap.Key{keymap.KeyS})
	for i := range buf {
		buf[i] = 0
	}
	notes.GenerateAudio(buf)
	if got := float32(math.Sin(want) * DefaultMaxVolume); buf[0] != got {
		t.Errorf("second buffer should start at phase %v: want %v, got %v", want, got, buf[0])
	}
}

func TestNotesRemoval(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 64)

	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)

	notes.UpdateKeys(nil)
	if want, got := []NoteState{{Note: 60, Active: false, Volume: 0.5}}, notes.States(); !reflect.DeepEqual(want, got) {
		t.Fatalf("released note should keep fading:\nwant: %+v\ngot:  %+v", want, got)
	}
	notes.GenerateAudio(buf)
	if want, got := []NoteState{{Note: 60, Active: false, Volume: 0}}, notes.States(); !reflect.DeepEqual(want, got) {
		t.Fatalf("note should stay until the next update:\nwant: %+v\ngot:  %+v", want, got)
	}
	if notes.gen.phase.Stored(relNote(60)) == 0 {
		t.Fatalf("expected a stored phase before removal")
	}

	notes.UpdateKeys(nil)
	if want, got := 0, notes.Live(); want != got {
		t.Errorf("want %v live notes, got %v", want, got)
	}
	if got := notes.gen.phase.Stored(relNote(60)); got != 0 {
		t.Errorf("phase should be cleared on removal, got %v", got)
	}
}

func TestNotesRepressWhileFading(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 64)

	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)
	notes.UpdateKeys(nil)
	notes.GenerateAudio(buf)
	phase := notes.gen.phase.Stored(relNote(60))

	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	if want, got := []NoteState{{Note: 60, Active: true, Volume: 0}}, notes.States(); !reflect.DeepEqual(want, got) {
		t.Fatalf("\nwant: %+v\ngot:  %+v", want, got)
	}
	if got := notes.gen.phase.Stored(relNote(60)); got != phase {
		t.Errorf("phase should be kept: want %v, got %v", phase, got)
	}
}

func TestNotesAliasedKeysKeepPhase(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 128)

	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)
	notes.GenerateAudio(buf)
	phase := notes.gen.phase.Stored(relNote(60))

	// A released and C pressed between two buffers: the note never stops
	notes.UpdateKeys([]keymap.Key{keymap.KeyC})
	if want, got := []NoteState{{Note: 60, Active: true, Volume: 0.5}}, notes.States(); !reflect.DeepEqual(want, got) {
		t.Fatalf("\nwant: %+v\ngot:  %+v", want, got)
	}
	if got := notes.gen.phase.Stored(relNote(60)); got != phase {
		t.Fatalf("phase was reset: want %v, got %v", phase, got)
	}

	for i := range buf {
		buf[i] = 0
	}
	notes.GenerateAudio(buf)
	if want := float32(math.Sin(phase) * DefaultMaxVolume); buf[0] != want {
		t.Errorf("want %v, got %v", want, buf[0])
	}
}

func TestNotesUpdateWave(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 64)
	notes.UpdateKeys([]keymap.Key{keymap.KeyA})
	notes.GenerateAudio(buf)

	notes.UpdateWave(Square)
	if want, got := Square, notes.Wave(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	if got := notes.gen.phase.Stored(relNote(60)); got != 0 {
		t.Errorf("phases should reset with a new wave, got %v", got)
	}
	if want, got := 1, notes.Live(); want != got {
		t.Errorf("notes should survive a wave change: want %v, got %v", want, got)
	}
}

func TestNotesMaxVolume(t *testing.T) {
	notes := NewNotes(testMaps(t), Sine, testSampleRate)
	buf := make([]float32, 64)
	notes.SetMaxVolume(0.8)
	notes.UpdateKeys([]keymap.Key{keymap.KeyA, keymap.KeyS})
	notes.GenerateAudio(buf)
	for _, s := range notes.States() {
		if s.Volume != 0.4 {
			t.Errorf("%v: want volume 0.4, got %v", s.Note, s.Volume)
		}
	}

	notes.SetMaxVolume(3)
	if want, got := 1.0, notes.MaxVolume(); want != got {
		t.Errorf("want clamped volume %v, got %v", want, got)
	}
}
