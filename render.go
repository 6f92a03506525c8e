package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/keymap"
)

// renderBindings prints one row per mapped note, lowest first, with the keys
// that play it.
func renderBindings(w io.Writer, maps *keymap.Maps) {
	for n := keymap.Note(0); n <= keymap.MaxNote; n++ {
		keys := maps.Keys(n)
		if len(keys) == 0 {
			continue
		}
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		note := fmt.Sprintf("%-4s", n)
		fmt.Fprintf(w, "%s %s\n", colorize(note, colorGreen), colorize(strings.Join(names, " "), colorBlue))
	}
}

func renderStatus(w io.Writer, engine *audio.Engine, held []keymap.Key) {
	volume, _ := engine.Get(audio.PropVolume)
	fmt.Fprintf(w, "%s %v\n", colorize("wave  ", colorMagenta), engine.Wave())
	fmt.Fprintf(w, "%s %.2f\n", colorize("volume", colorMagenta), volume)
	fmt.Fprintf(w, "%s %d\n", colorize("live  ", colorMagenta), engine.Live())
	if len(held) > 0 {
		names := make([]string, len(held))
		for i, k := range held {
			names[i] = k.String()
		}
		fmt.Fprintf(w, "%s %s\n", colorize("held  ", colorMagenta), strings.Join(names, " "))
	}
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
