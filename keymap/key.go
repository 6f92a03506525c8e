package keymap

import "fmt"

// Key identifies a physical key. Every value of the type is a valid table index.
type Key uint8

// Note is an absolute MIDI pitch.
type Note uint8

const (
	NumKeys  = 256
	NumNotes = 128
	MaxNote  = NumNotes - 1
)

const (
	KeyUnknown Key = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEscape
	KeySpace
	KeyLControl
	KeyRControl
	KeyLShift
	KeyRShift
	KeyLAlt
	KeyRAlt
	KeyMeta
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyCapsLock
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyGrave
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackSlash
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyDot
	KeySlash
	numNamedKeys
)

var keyNames = [numNamedKeys]string{
	KeyUnknown:      "Unknown",
	Key0:            "Key0",
	Key1:            "Key1",
	Key2:            "Key2",
	Key3:            "Key3",
	Key4:            "Key4",
	Key5:            "Key5",
	Key6:            "Key6",
	Key7:            "Key7",
	Key8:            "Key8",
	Key9:            "Key9",
	KeyA:            "A",
	KeyB:            "B",
	KeyC:            "C",
	KeyD:            "D",
	KeyE:            "E",
	KeyF:            "F",
	KeyG:            "G",
	KeyH:            "H",
	KeyI:            "I",
	KeyJ:            "J",
	KeyK:            "K",
	KeyL:            "L",
	KeyM:            "M",
	KeyN:            "N",
	KeyO:            "O",
	KeyP:            "P",
	KeyQ:            "Q",
	KeyR:            "R",
	KeyS:            "S",
	KeyT:            "T",
	KeyU:            "U",
	KeyV:            "V",
	KeyW:            "W",
	KeyX:            "X",
	KeyY:            "Y",
	KeyZ:            "Z",
	KeyF1:           "F1",
	KeyF2:           "F2",
	KeyF3:           "F3",
	KeyF4:           "F4",
	KeyF5:           "F5",
	KeyF6:           "F6",
	KeyF7:           "F7",
	KeyF8:           "F8",
	KeyF9:           "F9",
	KeyF10:          "F10",
	KeyF11:          "F11",
	KeyF12:          "F12",
	KeyEscape:       "Escape",
	KeySpace:        "Space",
	KeyLControl:     "LControl",
	KeyRControl:     "RControl",
	KeyLShift:       "LShift",
	KeyRShift:       "RShift",
	KeyLAlt:         "LAlt",
	KeyRAlt:         "RAlt",
	KeyMeta:         "Meta",
	KeyEnter:        "Enter",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyBackspace:    "Backspace",
	KeyCapsLock:     "CapsLock",
	KeyTab:          "Tab",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyGrave:        "Grave",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyBackSlash:    "BackSlash",
	KeySemicolon:    "Semicolon",
	KeyApostrophe:   "Apostrophe",
	KeyComma:        "Comma",
	KeyDot:          "Dot",
	KeySlash:        "Slash",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, numNamedKeys)
	for k, name := range keyNames {
		if Key(k) == KeyUnknown {
			continue
		}
		m[name] = Key(k)
	}
	return m
}()

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey returns the key with the given name. Names are case sensitive.
func ParseKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", noteNames[n%12], int(n/12)-1)
}
