package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/mrdg/keytone/audio"
	"github.com/mrdg/keytone/dub"
	"github.com/mrdg/keytone/input"
	"github.com/mrdg/keytone/keymap"
)

type env struct {
	engine *audio.Engine
	maps   *keymap.Maps
	manual *input.Manual
	ctx    context.Context
	group  *errgroup.Group // runs recordings in the background
	out    io.Writer
}

func (e *env) eval(input string) error {
	command, err := dub.Parse(input)
	if err != nil {
		return err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) < arity {
				return fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		if err := cmd.run(e, command.Args); err != nil {
			return fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", name)
}

// runScript evaluates the commands in path, one per line. Empty lines and lines
// starting with # are skipped.
func (e *env) runScript(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := e.eval(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return scanner.Err()
}

// repl reads commands until EOF or until ctx is done.
func repl(ctx context.Context, env *env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if err := env.eval(line); err != nil {
			fmt.Fprintln(env.out, err)
		}
	}
}

func completer() *readline.PrefixCompleter {
	waves := make([]readline.PrefixCompleterInterface, 0, len(audio.WaveNames()))
	for _, w := range audio.WaveNames() {
		waves = append(waves, readline.PcItem(w))
	}
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, cmd := range commands {
		if cmd.name == "wave" {
			items = append(items, readline.PcItem(cmd.name, waves...))
		} else {
			items = append(items, readline.PcItem(cmd.name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
