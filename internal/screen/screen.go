// Package screen unpacks the CHIP-8 framebuffer and renders it as text for
// headless runs.
package screen

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Characters used for lit and unlit pixels.
const (
	On  = '#'
	Off = '.'
)

// Pixels is the unpacked display, indexed by row and column.
type Pixels [chip8.DisplayHeight][chip8.DisplayWidth]bool

// Unpack expands the packed framebuffer. The most significant bit of each
// byte is the leftmost pixel.
func Unpack(fb [chip8.FramebufferSize]byte) Pixels {
	var pixels Pixels
	for i, b := range fb {
		row := i / (chip8.DisplayWidth / 8)
		col := i % (chip8.DisplayWidth / 8) * 8
		for bit := range 8 {
			pixels[row][col+bit] = b&(0x80>>bit) != 0
		}
	}
	return pixels
}

// Lit returns the number of lit pixels.
func Lit(fb [chip8.FramebufferSize]byte) int {
	count := 0
	for _, b := range fb {
		count += bits.OnesCount8(b)
	}
	return count
}

// Render writes the display as text, one line per row.
func Render(w io.Writer, fb [chip8.FramebufferSize]byte) error {
	pixels := Unpack(fb)
	buf := bufio.NewWriter(w)

	line := make([]byte, chip8.DisplayWidth+1)
	line[chip8.DisplayWidth] = '\n'
	for _, row := range pixels {
		for col, lit := range row {
			if lit {
				line[col] = On
			} else {
				line[col] = Off
			}
		}
		if _, err := buf.Write(line); err != nil {
			return fmt.Errorf("writing screen row: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing screen: %w", err)
	}
	return nil
}
