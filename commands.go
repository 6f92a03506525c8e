package main

import (
	"errors"
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/dub"
	"github.com/mrdg/keytone/keymap"
)

type command struct {
	name  string
	args  string
	help  string
	run   func(*env, []dub.Node) error
	arity int // -n means len(args) must be >= n
}

var commands []command

func init() {
	commands = []command{
		{"wave", "NAME", "select the waveform", waveCommand, 1},
		{"cycle", "", "switch to the next waveform", cycleCommand, 0},
		{"volume", "F", "set the maximum volume (0-1)", volumeCommand, 1},
		{"hold", "KEY...", "hold keys down until release", holdCommand, -1},
		{"release", "", "release all held keys", releaseCommand, 0},
		{"record", `"FILE" SECS`, "record the output to a WAV file", recordCommand, 2},
		{"keys", "", "list the key bindings", keysCommand, 0},
		{"status", "", "show the current settings", statusCommand, 0},
		{"help", "", "list commands", helpCommand, 0},
	}
}

func waveCommand(env *env, args []dub.Node) error {
	var name string
	if err := readArgs(args, &name); err != nil {
		return err
	}
	return env.engine.Set(audio.PropWave, name)
}

func cycleCommand(env *env, args []dub.Node) error {
	w := env.engine.Wave().Next()
	if err := env.engine.Set(audio.PropWave, w); err != nil {
		return err
	}
	fmt.Fprintln(env.out, w)
	return nil
}

func volumeCommand(env *env, args []dub.Node) error {
	var v float64
	if err := readArgs(args, &v); err != nil {
		return err
	}
	return env.engine.Set(audio.PropVolume, v)
}

func holdCommand(env *env, args []dub.Node) error {
	keys := make([]keymap.Key, 0, len(args))
	for _, arg := range args {
		var name string
		if err := readArgs([]dub.Node{arg}, &name); err != nil {
			return err
		}
		k, ok := keymap.ParseKey(name)
		if !ok {
			return fmt.Errorf("unknown key: %s", name)
		}
		if _, ok := env.maps.Note(k); !ok {
			fmt.Fprintf(env.out, "%s is not mapped to a note\n", k)
		}
		keys = append(keys, k)
	}
	env.manual.Hold(keys...)
	return nil
}

func releaseCommand(env *env, args []dub.Node) error {
	env.manual.Release()
	return nil
}

func recordCommand(env *env, args []dub.Node) error {
	var file string
	var seconds float64
	if err := readArgs(args, &file, &seconds); err != nil {
		return err
	}
	if seconds <= 0 {
		return fmt.Errorf("length must be positive: %v", seconds)
	}
	rate := env.engine.SampleRate()
	r := audio.NewRecorder(seconds, rate)
	if err := env.engine.Record(r); err != nil {
		return err
	}
	env.group.Go(func() error {
		if err := r.Save(env.ctx, file, int(rate)); err != nil {
			log.Printf("recording %s: %v", file, err)
			return nil
		}
		log.Printf("wrote %s", file)
		return nil
	})
	return nil
}

func keysCommand(env *env, args []dub.Node) error {
	renderBindings(env.out, env.maps)
	return nil
}

func statusCommand(env *env, args []dub.Node) error {
	renderStatus(env.out, env.engine, env.manual.Keys(nil))
	return nil
}

func helpCommand(env *env, args []dub.Node) error {
	w := tabwriter.NewWriter(env.out, 0, 8, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(w, "%s %s\t%s\n", colorize(cmd.name, colorGreen), cmd.args, cmd.help)
	}
	return w.Flush()
}

func readArgs(args []dub.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case dub.String:
				*p = string(s)
			case dub.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch f := arg.(type) {
			case dub.Float:
				*p = float64(f)
			case dub.Int:
				*p = float64(f)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			n, ok := arg.(dub.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(n)
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}
