package vis

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mrdg/keytone/keymap"
)

var ebitenKeys = func() map[ebiten.Key]keymap.Key {
	m := map[ebiten.Key]keymap.Key{
		ebiten.KeyF1:           keymap.KeyF1,
		ebiten.KeyF2:           keymap.KeyF2,
		ebiten.KeyF3:           keymap.KeyF3,
		ebiten.KeyF4:           keymap.KeyF4,
		ebiten.KeyF5:           keymap.KeyF5,
		ebiten.KeyF6:           keymap.KeyF6,
		ebiten.KeyF7:           keymap.KeyF7,
		ebiten.KeyF8:           keymap.KeyF8,
		ebiten.KeyF9:           keymap.KeyF9,
		ebiten.KeyF10:          keymap.KeyF10,
		ebiten.KeyF11:          keymap.KeyF11,
		ebiten.KeyF12:          keymap.KeyF12,
		ebiten.KeyEscape:       keymap.KeyEscape,
		ebiten.KeySpace:        keymap.KeySpace,
		ebiten.KeyControlLeft:  keymap.KeyLControl,
		ebiten.KeyControlRight: keymap.KeyRControl,
		ebiten.KeyShiftLeft:    keymap.KeyLShift,
		ebiten.KeyShiftRight:   keymap.KeyRShift,
		ebiten.KeyAltLeft:      keymap.KeyLAlt,
		ebiten.KeyAltRight:     keymap.KeyRAlt,
		ebiten.KeyMetaLeft:     keymap.KeyMeta,
		ebiten.KeyMetaRight:    keymap.KeyMeta,
		ebiten.KeyEnter:        keymap.KeyEnter,
		ebiten.KeyNumpadEnter:  keymap.KeyEnter,
		ebiten.KeyArrowUp:      keymap.KeyUp,
		ebiten.KeyArrowDown:    keymap.KeyDown,
		ebiten.KeyArrowLeft:    keymap.KeyLeft,
		ebiten.KeyArrowRight:   keymap.KeyRight,
		ebiten.KeyBackspace:    keymap.KeyBackspace,
		ebiten.KeyCapsLock:     keymap.KeyCapsLock,
		ebiten.KeyTab:          keymap.KeyTab,
		ebiten.KeyHome:         keymap.KeyHome,
		ebiten.KeyEnd:          keymap.KeyEnd,
		ebiten.KeyPageUp:       keymap.KeyPageUp,
		ebiten.KeyPageDown:     keymap.KeyPageDown,
		ebiten.KeyInsert:       keymap.KeyInsert,
		ebiten.KeyDelete:       keymap.KeyDelete,
		ebiten.KeyBackquote:    keymap.KeyGrave,
		ebiten.KeyMinus:        keymap.KeyMinus,
		ebiten.KeyEqual:        keymap.KeyEqual,
		ebiten.KeyBracketLeft:  keymap.KeyLeftBracket,
		ebiten.KeyBracketRight: keymap.KeyRightBracket,
		ebiten.KeyBackslash:    keymap.KeyBackSlash,
		ebiten.KeySemicolon:    keymap.KeySemicolon,
		ebiten.KeyQuote:        keymap.KeyApostrophe,
		ebiten.KeyComma:        keymap.KeyComma,
		ebiten.KeyPeriod:       keymap.KeyDot,
		ebiten.KeySlash:        keymap.KeySlash,
	}
	for i := 0; i < 26; i++ {
		m[ebiten.KeyA+ebiten.Key(i)] = keymap.KeyA + keymap.Key(i)
	}
	for i := 0; i < 10; i++ {
		m[ebiten.KeyDigit0+ebiten.Key(i)] = keymap.Key0 + keymap.Key(i)
	}
	return m
}()

func translateKey(k ebiten.Key) (keymap.Key, bool) {
	key, ok := ebitenKeys[k]
	return key, ok
}
