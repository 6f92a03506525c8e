package input

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gitlab.com/gomidi/rtmididrv"

	"github.com/mrdg/keytone/keymap"
)

var errNoMIDIIn = errors.New("no MIDI input found")

const midiQueueSize = 1024

// MIDI is a Source driven by note messages from a MIDI input. A held note is
// reported as the first key bound to it; notes without a key are ignored.
//
// Handle is called from the driver's thread and Keys from the poller; note
// events pass between them through a lock-free queue.
type MIDI struct {
	maps   *keymap.Maps
	events *noteQueue
	held   [keymap.NumNotes]bool // owned by Keys
}

func NewMIDI(maps *keymap.Maps) *MIDI {
	return &MIDI{maps: maps, events: newNoteQueue(midiQueueSize)}
}

// Handle queues a raw MIDI message. Note-on with velocity 0 counts as note-off.
func (m *MIDI) Handle(data []byte, _ int64) {
	if len(data) < 3 || data[1] > keymap.MaxNote {
		return
	}
	var ev noteEvent
	switch status := data[0] >> 4; {
	case status == 8 || status == 9 && data[2] == 0:
		ev = noteEvent{note: data[1], on: false}
	case status == 9:
		ev = noteEvent{note: data[1], on: true}
	default:
		return
	}
	if !m.events.push(ev) {
		log.Printf("midi queue full, dropped %v", data)
	}
}

func (m *MIDI) Keys(dst []keymap.Key) []keymap.Key {
	m.events.drain(func(ev noteEvent) { m.held[ev.note] = ev.on })
	for n, held := range m.held {
		if !held {
			continue
		}
		if keys := m.maps.Keys(keymap.Note(n)); len(keys) > 0 {
			dst = append(dst, keys[0])
		}
	}
	return dst
}

// Listen opens the first MIDI input and feeds its messages to Handle until ctx
// is done.
func (m *MIDI) Listen(ctx context.Context) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("initialize MIDI driver: %w", err)
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v", err)
		}
	}()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("list MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		return errNoMIDIIn
	}
	in := ins[0]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("failed to close %s: %v", in, err)
		}
	}()

	if err := in.SetListener(m.Handle); err != nil {
		return fmt.Errorf("listen to %s: %w", in, err)
	}
	log.Printf("listening to MIDI input %s", in)
	<-ctx.Done()
	if err := in.StopListening(); err != nil {
		log.Printf("failed to stop listening to %s: %v", in, err)
	}
	return nil
}
