// Package disasm decodes CHIP-8 opcodes into assembly mnemonics.
// It is used for instruction traces, error reports and program listings.
package disasm

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Instruction is a decoded CHIP-8 opcode.
type Instruction struct {
	Opcode uint16
	Name   string // lowercase mnemonic, empty for unknown opcodes
	Params string
}

// Decode looks up the opcode in the CHIP-8 instruction table. ok is false for
// opcodes that have no mnemonic, such as machine code calls.
func Decode(opcode uint16) (ins Instruction, ok bool) {
	ins.Opcode = opcode

	op, ok := lookup(opcode)
	if !ok {
		return ins, false
	}
	ins.Name = op.Instruction.Name
	ins.Params = formatInstruction(ins.Name, opcode)
	return ins, true
}

// Format returns the assembly text for the opcode.
func Format(opcode uint16) string {
	ins, _ := Decode(opcode)
	return ins.String()
}

// String returns the instruction as assembly text. Unknown opcodes are
// rendered as a data word.
func (i Instruction) String() string {
	switch {
	case i.Name == "":
		return fmt.Sprintf(".word $%04X", i.Opcode)
	case i.Params == "":
		return i.Name
	default:
		return fmt.Sprintf("%s %s", i.Name, i.Params)
	}
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	return chip8cpu.SkipInstructions.Contains(i.Name)
}

func lookup(opcode uint16) (chip8cpu.Opcode, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[firstNibble] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8cpu.Opcode{}, false
}

// formatInstruction formats the parameters of an instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8cpu.ClsName, chip8cpu.RetName:
		return ""
	case chip8cpu.JpName:
		return formatJumpInstruction(opcode)
	case chip8cpu.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8cpu.SeName, chip8cpu.SneName:
		return formatCompareInstruction(opcode)
	case chip8cpu.LdName:
		return formatLoadInstruction(opcode)
	case chip8cpu.AddName:
		return formatAddInstruction(opcode)
	case chip8cpu.OrName, chip8cpu.AndName, chip8cpu.XorName, chip8cpu.SubName, chip8cpu.SubnName:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8cpu.ShrName, chip8cpu.ShlName:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8cpu.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8cpu.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	case chip8cpu.SkpName, chip8cpu.SknpName:
		return fmt.Sprintf("V%X", registerX(opcode))
	}
	return ""
}

// formatJumpInstruction formats JP addr and JP V0, addr.
func formatJumpInstruction(opcode uint16) string {
	if opcode&0xF000 == 0xB000 {
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

func formatCompareInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	default:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
}

// formatLoadInstruction covers the register, index, timer, keypad, font, BCD
// and block transfer forms of LD.
func formatLoadInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	}

	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatAddInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	default:
		return fmt.Sprintf("I, V%X", x)
	}
}

func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
