package chip8

import "fmt"

// draw XORs an n row sprite read from I onto the framebuffer at (Vx, Vy).
//
// The origin always wraps onto the display. A sprite row spans the byte
// containing the origin column and the byte after it. At the last byte of a
// row the trailing part wraps to the first byte of the same row with the
// WrapSprites quirk and is clipped without it. Past the last row drawing
// continues at row 0 with WrapSprites and stops without it.
//
// VF is set to 1 if any lit pixel was turned off and left untouched otherwise.
func (m *Machine) draw(x, y, rows byte) error {
	col := m.registers[x] % DisplayWidth
	row := int(m.registers[y] % DisplayHeight)
	wrap := m.quirks.WrapSprites

	byteCol := int(col / 8)
	offset := col % 8
	atEdge := byteCol == bytesPerRow-1

	address := int(m.index)
	for range int(rows) {
		if address >= MemorySize {
			return fmt.Errorf("%w: sprite at $%04X", ErrMemoryOutOfBounds, address)
		}
		sprite := m.memory[address]

		current := row*bytesPerRow + byteCol
		next := current + 1
		if atEdge {
			next = current - (bytesPerRow - 1)
		}

		if m.blit(current, sprite>>offset) {
			m.registers[flagRegister] = 1
		}
		if wrap || !atEdge {
			if m.blit(next, byte(uint16(sprite)<<(8-offset))) {
				m.registers[flagRegister] = 1
			}
		}

		row++
		if row == DisplayHeight {
			if !wrap {
				break
			}
			row = 0
		}
		address++
	}
	return nil
}

// blit XORs bits into the framebuffer byte at i and reports whether a lit
// pixel was turned off.
func (m *Machine) blit(i int, bits byte) bool {
	before := m.framebuffer[i]
	m.framebuffer[i] = before ^ bits
	return before&bits != 0
}
