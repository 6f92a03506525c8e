package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/input"
	"github.com/mrdg/keytone/keymap"
	"github.com/mrdg/keytone/vis"
)

const renderSampleRate = 44100

func main() {
	var (
		layout     = flag.String("keymap", keymap.DefaultLayout, "built-in layout ("+strings.Join(keymap.BuiltinNames(), ", ")+") or a .json/.lua file")
		waveName   = flag.String("wave", audio.Sine.String(), "waveform: "+strings.Join(audio.WaveNames(), ", "))
		backend    = flag.String("backend", audio.BackendPortAudio, "audio backend: "+strings.Join(audio.Backends(), ", "))
		rate       = flag.Float64("rate", 0, "sample rate, 0 uses the device default")
		frames     = flag.Int("buffer", 512, "frames per buffer")
		volume     = flag.Float64("volume", audio.DefaultMaxVolume, "maximum output volume (0-1)")
		inactivity = flag.Duration("inactivity", input.DefaultInactivity, "pause audio after no key was held for this long")
		interval   = flag.Duration("interval", input.DefaultInterval, "key polling interval")
		window     = flag.Bool("window", false, "show the waveform window and read keys from it")
		midi       = flag.Bool("midi", false, "read notes from the first MIDI input")
		run        = flag.String("run", "", "run commands from `file` at startup")
		render     = flag.String("render", "", "render to a WAV `file` instead of playing")
		hold       = flag.String("hold", "", "comma separated keys held while rendering")
		seconds    = flag.Float64("seconds", 2, "length of the rendered file")
	)
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	if *frames <= 0 {
		log.Fatalf("buffer size must be positive: %d", *frames)
	}

	maps, err := keymap.Load(*layout)
	if err != nil {
		log.Fatalf("load keymap: %v", err)
	}
	wave, err := audio.ParseWave(*waveName)
	if err != nil {
		log.Fatal(err)
	}

	if *render != "" {
		if err := renderFile(*render, maps, wave, *rate, *frames, *volume, *hold, *seconds); err != nil {
			log.Fatal(err)
		}
		return
	}

	config := audio.StreamConfig{Backend: *backend, SampleRate: *rate, Frames: *frames}
	sampleRate, err := config.ResolveSampleRate()
	if err != nil {
		log.Fatal(err)
	}
	config.SampleRate = sampleRate

	keys := new(audio.KeySnapshot)
	engine := audio.NewEngine(maps, keys, wave, sampleRate)
	if err := engine.Set(audio.PropVolume, *volume); err != nil {
		log.Fatal(err)
	}

	var win *vis.Window
	if *window {
		scope := audio.NewScope(vis.ScopeSize)
		engine.AttachScope(scope)
		win = vis.New(scope, engine, maps)
	}

	stream, err := audio.OpenStream(config, engine.Process)
	if err != nil {
		log.Fatalf("open %s stream: %v", config.Backend, err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.Printf("close stream: %v", err)
		}
	}()
	log.Printf("playing through %s at %v Hz", config.Backend, sampleRate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("caught signal %s: shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	manual := new(input.Manual)
	sources := []input.Source{manual}
	if win != nil {
		sources = append(sources, win)
	}
	if *midi {
		m := input.NewMIDI(maps)
		sources = append(sources, m)
		g.Go(func() error {
			if err := m.Listen(gctx); err != nil {
				log.Printf("midi disabled: %v", err)
			}
			return nil
		})
	}

	poller := &input.Poller{
		Source:     input.Merge(sources...),
		Snapshot:   keys,
		Stream:     stream,
		Interval:   *interval,
		Inactivity: *inactivity,
	}
	g.Go(func() error { return poller.Run(gctx) })

	env := &env{
		engine: engine,
		maps:   maps,
		manual: manual,
		ctx:    gctx,
		group:  g,
		out:    os.Stdout,
	}
	if *run != "" {
		if err := env.runScript(*run); err != nil {
			log.Fatal(err)
		}
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		g.Go(func() error {
			defer cancel()
			return repl(gctx, env)
		})
	} else if win == nil {
		log.Printf("stdin is not a terminal, running until interrupted")
	}

	if win != nil {
		if err := win.Run(gctx); err != nil {
			log.Printf("window: %v", err)
		}
		cancel()
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func renderFile(path string, maps *keymap.Maps, wave audio.Wave, rate float64, frames int, volume float64, hold string, seconds float64) error {
	if rate <= 0 {
		rate = renderSampleRate
	}
	held, err := parseKeys(strings.FieldsFunc(hold, func(r rune) bool { return r == ',' }))
	if err != nil {
		return err
	}
	keys := new(audio.KeySnapshot)
	keys.Store(held)
	engine := audio.NewEngine(maps, keys, wave, rate)
	if err := engine.Set(audio.PropVolume, volume); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := audio.Render(f, engine, seconds, frames); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("rendered %vs of %v to %s in %v", seconds, wave, path, time.Since(start))
	return nil
}

func parseKeys(names []string) ([]keymap.Key, error) {
	keys := make([]keymap.Key, 0, len(names))
	for _, name := range names {
		k, ok := keymap.ParseKey(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
