package screen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestUnpack(t *testing.T) {
	var fb [chip8.FramebufferSize]byte
	fb[0] = 0x80
	fb[7] = 0x01
	fb[8] = 0x40
	fb[chip8.FramebufferSize-1] = 0x01

	pixels := Unpack(fb)
	assert.True(t, pixels[0][0])
	assert.False(t, pixels[0][1])
	assert.True(t, pixels[0][63])
	assert.True(t, pixels[1][1])
	assert.True(t, pixels[31][63])
	assert.Equal(t, 4, Lit(fb))
}

func TestUnpack_MatchesMachine(t *testing.T) {
	m := chip8.New(chip8.DefaultQuirks())
	m.LoadProgram([]byte{0x61, 0x0F, 0x62, 0x08, 0xF0, 0x29, 0xD1, 0x25})
	assert.NoError(t, m.Run(4))

	pixels := Unpack(m.Framebuffer())
	for row := range chip8.DisplayHeight {
		for col := range chip8.DisplayWidth {
			assert.Equal(t, m.Pixel(col, row), pixels[row][col], "pixel %d,%d", col, row)
		}
	}
	assert.Equal(t, 14, Lit(m.Framebuffer()))
}

func TestRender(t *testing.T) {
	var fb [chip8.FramebufferSize]byte
	fb[0] = 0xA0

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, fb))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, chip8.DisplayHeight)
	assert.Equal(t, "#.#"+strings.Repeat(".", chip8.DisplayWidth-3), lines[0])
	assert.Equal(t, strings.Repeat(".", chip8.DisplayWidth), lines[1])
}
