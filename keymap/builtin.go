package keymap

import (
	"fmt"
	"sort"
)

// DefaultLayout is used when no keymap is given.
const DefaultLayout = "us"

// usKeys assigns one semitone per key, walking the rows of a US keyboard from
// Escape (A2) down to the arrow keys.
var usKeys = []Key{
	KeyEscape, KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	KeyInsert, KeyDelete,
	KeyGrave, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9, Key0, KeyMinus, KeyEqual, KeyBackspace,
	KeyTab, KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP, KeyLeftBracket, KeyRightBracket, KeyBackSlash,
	KeyCapsLock, KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, KeySemicolon, KeyApostrophe, KeyEnter,
	KeyLShift, KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, KeyComma, KeyDot, KeySlash, KeyRShift,
	KeyLControl, KeyMeta, KeyLAlt, KeySpace, KeyRAlt, KeyRControl,
	KeyLeft, KeyUp, KeyDown, KeyRight,
}

const usFirstNote = 45

// The piano layout has two overlapping octaves: Q..P starts at C3 and Z../ at C4,
// with the row above each providing the black keys. Q..P and Z.. overlap on C4-E4.
var pianoNotes = map[Key]int{
	KeyQ: 48, Key2: 49, KeyW: 50, Key3: 51, KeyE: 52, KeyR: 53, Key5: 54, KeyT: 55,
	Key6: 56, KeyY: 57, Key7: 58, KeyU: 59, KeyI: 60, Key9: 61, KeyO: 62, Key0: 63, KeyP: 64,

	KeyZ: 60, KeyS: 61, KeyX: 62, KeyD: 63, KeyC: 64, KeyV: 65, KeyG: 66, KeyB: 67,
	KeyH: 68, KeyN: 69, KeyJ: 70, KeyM: 71, KeyComma: 72, KeyL: 73, KeyDot: 74,
	KeySemicolon: 75, KeySlash: 76,
}

var builtins = map[string]func() Config{
	"us": func() Config {
		cfg := make(Config, len(usKeys))
		for i, k := range usKeys {
			cfg[k.String()] = pitch(usFirstNote + i)
		}
		return cfg
	},
	"piano": func() Config {
		cfg := make(Config, len(pianoNotes))
		for k, n := range pianoNotes {
			cfg[k.String()] = pitch(n)
		}
		return cfg
	},
}

func pitch(n int) *int { return &n }

// Builtin returns the configuration of a built-in layout.
func Builtin(name string) (Config, error) {
	layout, ok := builtins[name]
	if !ok {
		return nil, &ConfigError{Err: fmt.Errorf("unknown layout %q", name)}
	}
	return layout(), nil
}

// BuiltinNames lists the built-in layouts.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
