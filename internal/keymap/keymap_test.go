package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/input"
)

func TestKeymap_StandardLayout(t *testing.T) {
	km := New()

	tests := []struct {
		key      input.Key
		expected byte
	}{
		{input.Key1, 0x1},
		{input.Key4, 0xC},
		{input.Q, 0x4},
		{input.R, 0xD},
		{input.A, 0x7},
		{input.F, 0xE},
		{input.Z, 0xA},
		{input.X, 0x0},
		{input.V, 0xF},
	}

	for _, tt := range tests {
		index, ok := km.Keypad(tt.key)
		assert.True(t, ok)
		assert.Equal(t, tt.expected, index)
	}

	_, ok := km.Keypad(input.Key9)
	assert.False(t, ok)
}

func TestKeymap_CoversKeypad(t *testing.T) {
	km := New()

	var mask uint16
	for key := range km.keys {
		mask |= km.Mask(key)
	}
	assert.Equal(t, uint16(0xFFFF), mask)
}

func TestKeymap_Mask(t *testing.T) {
	km := New()

	assert.Equal(t, uint16(0), km.Mask())
	assert.Equal(t, uint16(1<<0x1|1<<0x5|1<<0x0), km.Mask(input.Key1, input.W, input.X))
	assert.Equal(t, uint16(1<<0x4), km.Mask(input.Q, input.Q, input.Escape))
}

func TestKeymap_ParseMask(t *testing.T) {
	km := New()

	mask, err := km.ParseMask("1qW")
	assert.NoError(t, err)
	assert.Equal(t, uint16(1<<0x1|1<<0x4|1<<0x5), mask)

	mask, err = km.ParseMask("")
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), mask)

	_, err = km.ParseMask("1p")
	assert.ErrorIs(t, err, ErrUnmappedKey)

	_, err = km.ParseMask("1-")
	assert.ErrorIs(t, err, ErrUnmappedKey)
}

func TestKeymap_Bind(t *testing.T) {
	km := New()

	assert.NoError(t, km.Bind(input.Up, 0x2))
	assert.Equal(t, uint16(1<<0x2), km.Mask(input.Up))

	assert.Error(t, km.Bind(input.Down, 0x10))
	_, ok := km.Keypad(input.Down)
	assert.False(t, ok)

	// bindings of other keymaps are not affected
	_, ok = New().Keypad(input.Up)
	assert.False(t, ok)
}

func TestKeymap_ParseBindings(t *testing.T) {
	km := New()

	assert.NoError(t, km.ParseBindings("i=5, k = 8,0=F"))
	index, ok := km.Keypad(input.I)
	assert.True(t, ok)
	assert.Equal(t, byte(0x5), index)

	mask, err := km.ParseMask("ik0w")
	assert.NoError(t, err)
	assert.Equal(t, uint16(1<<0x5|1<<0x8|1<<0xF), mask)

	assert.NoError(t, km.ParseBindings(""))

	tests := []string{"i", "ik=5", "-=5", "i=10", "i=x"}
	for _, bindings := range tests {
		t.Run(bindings, func(t *testing.T) {
			assert.Error(t, New().ParseBindings(bindings))
		})
	}
}

func TestKeyFromRune(t *testing.T) {
	tests := []struct {
		r        rune
		expected input.Key
		ok       bool
	}{
		{'0', input.Key0, true},
		{'7', input.Key7, true},
		{'a', input.A, true},
		{'Z', input.Z, true},
		{' ', input.Unknown, false},
		{'-', input.Unknown, false},
	}

	for _, tt := range tests {
		key, ok := KeyFromRune(tt.r)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.expected, key)
	}
}
