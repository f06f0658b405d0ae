package chip8

import (
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestErrorsMatchCPUErrors(t *testing.T) {
	tests := []struct {
		name    string
		program []uint16
		setup   func(*Machine)
		target  error
	}{
		{"stack underflow", []uint16{0x00EE}, nil, chip8cpu.ErrStackUnderflow},
		{"stack overflow", []uint16{0x2202}, func(m *Machine) { m.sp = StackSize - 1 }, chip8cpu.ErrStackOverflow},
		{"memory", []uint16{0xF033}, func(m *Machine) { m.index = MemorySize - 1 }, chip8cpu.ErrMemoryOutOfBounds},
		{"key index", []uint16{0xE19E}, func(m *Machine) { m.registers[1] = KeyCount }, chip8cpu.ErrKeyIndexOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.program...)
			if tt.setup != nil {
				tt.setup(m)
			}
			err := m.Step()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCycleError(t *testing.T) {
	err := &CycleError{Address: 0x2A4, Opcode: 0x8008, Err: ErrInvalidArithmeticSubOp}
	assert.Equal(t, "cycle at $2A4 opcode $8008: invalid arithmetic sub-opcode", err.Error())
	assert.ErrorIs(t, err, ErrInvalidArithmeticSubOp)
}
