package keymap

import (
	"errors"
	"fmt"
	"sort"
)

// Config maps key names to an optional pitch. A nil pitch leaves the key unmapped.
type Config map[string]*int

// ConfigError reports a keymap entry that can't be turned into a mapping.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Value != "":
		return fmt.Sprintf("keymap: %s = %s: %v", e.Key, e.Value, e.Err)
	case e.Key != "":
		return fmt.Sprintf("keymap: %s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("keymap: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	errUnknownKey   = errors.New("unknown key")
	errPitchRange   = fmt.Errorf("pitch out of range 0-%d", MaxNote)
	errPitchInvalid = errors.New("pitch is not an integer")
)

type slot struct {
	note   Note
	mapped bool
}

// Maps holds the key to note and note to keys lookup tables. It is immutable once built.
type Maps struct {
	keyToNote  [NumKeys]slot
	noteToKeys [NumNotes][]Key
}

// Build validates cfg and builds its lookup tables.
func Build(cfg Config) (*Maps, error) {
	var m Maps
	// sorted so that the first invalid entry reported is stable
	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key, ok := ParseKey(name)
		if !ok {
			return nil, &ConfigError{Key: name, Err: errUnknownKey}
		}
		pitch := cfg[name]
		if pitch == nil {
			m.keyToNote[key] = slot{}
			continue
		}
		if *pitch < 0 || *pitch > MaxNote {
			return nil, &ConfigError{Key: name, Value: fmt.Sprint(*pitch), Err: errPitchRange}
		}
		m.keyToNote[key] = slot{note: Note(*pitch), mapped: true}
	}

	for k, s := range m.keyToNote {
		if s.mapped {
			m.noteToKeys[s.note] = append(m.noteToKeys[s.note], Key(k))
		}
	}
	return &m, nil
}

// Note returns the pitch k is mapped to.
func (m *Maps) Note(k Key) (Note, bool) {
	s := m.keyToNote[k]
	return s.note, s.mapped
}

// Keys returns the keys that trigger n in ascending order. The slice must not be modified.
func (m *Maps) Keys(n Note) []Key {
	if n > MaxNote {
		return nil
	}
	return m.noteToKeys[n]
}

// Binding is a single key to note assignment.
type Binding struct {
	Key  Key
	Note Note
}

// Bindings lists all mapped keys ordered by note, then key.
func (m *Maps) Bindings() []Binding {
	var bindings []Binding
	for n, keys := range m.noteToKeys {
		for _, k := range keys {
			bindings = append(bindings, Binding{Key: k, Note: Note(n)})
		}
	}
	return bindings
}
