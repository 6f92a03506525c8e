// Package vis draws the output waveform in a window and reads the keyboard
// while the window has focus.
package vis

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/keymap"
)

const (
	width  = 800
	height = 300

	// ScopeSize is the number of samples shown across the window.
	ScopeSize = 10000
)

var (
	background = color.RGBA{16, 16, 16, 255}
	traceColor = color.RGBA{0, 220, 90, 255}
	axisColor  = color.RGBA{60, 60, 60, 255}
	labelColor = color.RGBA{190, 190, 190, 255}
)

// Window is an ebiten game showing the contents of a Scope. It is also an
// input source reporting the keys pressed while it has focus.
type Window struct {
	scope  *audio.Scope
	engine *audio.Engine
	maps   *keymap.Maps
	done   <-chan struct{}

	samples []float32
	pressed []ebiten.Key

	mu   sync.Mutex
	keys []keymap.Key
}

func New(scope *audio.Scope, engine *audio.Engine, maps *keymap.Maps) *Window {
	return &Window{
		scope:   scope,
		engine:  engine,
		maps:    maps,
		samples: make([]float32, 0, ScopeSize),
	}
}

// Run opens the window and blocks until it is closed or ctx is done. It must be
// called from the main goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.done = ctx.Done()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("keytone")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(w)
}

// Keys appends the keys currently pressed in the window.
func (w *Window) Keys(dst []keymap.Key) []keymap.Key {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append(dst, w.keys...)
}

func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}
	w.pressed = inpututil.AppendPressedKeys(w.pressed[:0])
	if !ebiten.IsFocused() {
		w.pressed = w.pressed[:0]
	}
	w.setKeys(w.pressed)
	return nil
}

func (w *Window) setKeys(pressed []ebiten.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys = w.keys[:0]
	for _, k := range pressed {
		if key, ok := translateKey(k); ok {
			w.keys = append(w.keys, key)
		}
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	mid := float32(height) / 2
	vector.StrokeLine(screen, 0, mid, width, mid, 1, axisColor, false)

	w.samples = w.scope.Samples(w.samples[:0])
	if n := len(w.samples); n > 1 {
		prevY := mid - w.samples[0]*mid
		for x := 1; x < width; x++ {
			y := mid - w.samples[x*(n-1)/(width-1)]*mid
			vector.StrokeLine(screen, float32(x-1), prevY, float32(x), y, 1, traceColor, true)
			prevY = y
		}
	}
	text.Draw(screen, w.label(), basicfont.Face7x13, 6, 16, labelColor)
}

func (w *Window) label() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var notes []string
	for _, k := range w.keys {
		if n, ok := w.maps.Note(k); ok {
			notes = append(notes, n.String())
		}
	}
	return fmt.Sprintf("%s  live %d  %s", w.engine.Wave(), w.engine.Live(), strings.Join(notes, " "))
}

func (w *Window) Layout(_, _ int) (int, int) {
	return width, height
}
