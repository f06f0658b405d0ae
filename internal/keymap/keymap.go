// Package keymap maps host keyboard keys to the 16 key CHIP-8 keypad.
//
// The standard layout uses the left block of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/retroenv/retrogolib/input"
)

// ErrUnmappedKey is returned for host keys that have no keypad mapping.
var ErrUnmappedKey = errors.New("key is not mapped to the keypad")

var standardLayout = map[input.Key]byte{
	input.Key1: 0x1, input.Key2: 0x2, input.Key3: 0x3, input.Key4: 0xC,
	input.Q: 0x4, input.W: 0x5, input.E: 0x6, input.R: 0xD,
	input.A: 0x7, input.S: 0x8, input.D: 0x9, input.F: 0xE,
	input.Z: 0xA, input.X: 0x0, input.C: 0xB, input.V: 0xF,
}

// Keymap translates host keys to keypad indexes.
type Keymap struct {
	keys map[input.Key]byte
}

// New returns a keymap with the standard layout.
func New() *Keymap {
	keys := make(map[input.Key]byte, len(standardLayout))
	for key, index := range standardLayout {
		keys[key] = index
	}
	return &Keymap{keys: keys}
}

// Bind maps a host key to a keypad index, replacing any previous binding of
// the host key.
func (k *Keymap) Bind(key input.Key, index byte) error {
	if index > 0xF {
		return fmt.Errorf("invalid keypad index $%X", index)
	}
	k.keys[key] = index
	return nil
}

// Keypad returns the keypad index of a host key.
func (k *Keymap) Keypad(key input.Key) (byte, bool) {
	index, ok := k.keys[key]
	return index, ok
}

// Mask returns the keypad mask for the pressed host keys, where bit N is
// keypad key N. Unmapped keys are ignored.
func (k *Keymap) Mask(pressed ...input.Key) uint16 {
	var mask uint16
	for _, key := range pressed {
		if index, ok := k.keys[key]; ok {
			mask |= 1 << index
		}
	}
	return mask
}

// ParseMask returns the keypad mask for a string of host key characters,
// for example "1qw".
func (k *Keymap) ParseMask(s string) (uint16, error) {
	pressed := make([]input.Key, 0, len(s))
	for _, r := range s {
		key, ok := KeyFromRune(r)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnmappedKey, r)
		}
		if _, ok := k.Keypad(key); !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnmappedKey, r)
		}
		pressed = append(pressed, key)
	}
	return k.Mask(pressed...), nil
}

// ParseBindings binds host keys from a comma separated list of key=index
// pairs with hex keypad indexes, for example "i=5,k=8".
func (k *Keymap) ParseBindings(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	for binding := range strings.SplitSeq(s, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(binding), "=")
		if !found {
			return fmt.Errorf("invalid key binding '%s'", binding)
		}

		runes := []rune(strings.TrimSpace(name))
		if len(runes) != 1 {
			return fmt.Errorf("invalid host key in binding '%s'", binding)
		}
		key, ok := KeyFromRune(runes[0])
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnmappedKey, runes[0])
		}

		index, err := strconv.ParseUint(strings.TrimSpace(value), 16, 8)
		if err != nil {
			return fmt.Errorf("parsing keypad index of binding '%s': %w", binding, err)
		}
		if err := k.Bind(key, byte(index)); err != nil {
			return err
		}
	}
	return nil
}

// KeyFromRune returns the host key for a digit or a letter, ignoring case.
func KeyFromRune(r rune) (input.Key, bool) {
	r = unicode.ToUpper(r)
	switch {
	case r >= '0' && r <= '9':
		return input.Key0 + input.Key(r-'0'), true
	case r >= 'A' && r <= 'Z':
		return input.A + input.Key(r-'A'), true
	default:
		return input.Unknown, false
	}
}
