package disasm

import (
	"fmt"
	"io"
)

// conditionalIndent prefixes instructions that can be skipped.
const conditionalIndent = "  "

// Line is one entry of a program listing.
type Line struct {
	Address     uint16
	Instruction Instruction
}

// Program decodes data linearly as a sequence of instructions starting at
// base. A trailing odd byte is decoded as the high byte of a final word.
func Program(data []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(data)+1)/opcodeSize)
	for i := 0; i < len(data); i += opcodeSize {
		opcode := uint16(data[i]) << 8
		if i+1 < len(data) {
			opcode |= uint16(data[i+1])
		}
		ins, _ := Decode(opcode)
		lines = append(lines, Line{
			Address:     base + uint16(i),
			Instruction: ins,
		})
	}
	return lines
}

// WriteListing writes the listing with the address and the opcode bytes as
// a comment on every line. Instructions that a preceding skip instruction
// can jump over are indented.
func WriteListing(w io.Writer, lines []Line) error {
	skipped := false
	for _, line := range lines {
		text := line.Instruction.String()
		if skipped {
			text = conditionalIndent + text
		}
		skipped = line.Instruction.IsSkip()

		if _, err := fmt.Fprintf(w, "%-20s ; $%03X %02X %02X\n", text,
			line.Address, byte(line.Instruction.Opcode>>8), byte(line.Instruction.Opcode)); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}
