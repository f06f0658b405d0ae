package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStoreBCD(t *testing.T) {
	tests := []struct {
		value byte
		want  [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{7, [3]byte{0, 0, 7}},
		{42, [3]byte{0, 4, 2}},
		{137, [3]byte{1, 3, 7}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		m := newMachine(0xF533)
		m.registers[5] = tt.value
		m.index = 0x400

		assert.NoError(t, m.Step())
		mem := m.Memory()
		assert.Equal(t, tt.want[:], mem[0x400:0x403], "value %d", tt.value)
		assert.Equal(t, uint16(0x400), m.Index())
	}
}

func TestStoreBCD_OutOfBounds(t *testing.T) {
	m := newMachine(0xF033)
	m.index = MemorySize - 2

	err := m.Step()
	assert.ErrorIs(t, err, ErrMemoryOutOfBounds)
	assert.Equal(t, uint16(MemorySize-2), m.Index())
}

func TestStoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name      string
		increment bool
		wantIndex uint16
	}{
		{"with index increment", true, 0x500 + 8},
		{"without index increment", false, 0x500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quirks := DefaultQuirks()
			quirks.IncrementIndexOnStore = tt.increment
			m := newMachineWithQuirks(quirks, 0xF755)
			for i := range m.registers {
				m.registers[i] = byte(0x10 + i)
			}
			m.index = 0x500

			assert.NoError(t, m.Step())
			assert.Equal(t, tt.wantIndex, m.Index())
			mem := m.Memory()
			assert.Equal(t, []byte{0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x00}, mem[0x500:0x509])

			restored := newMachineWithQuirks(quirks, 0xF765)
			copy(restored.memory[0x500:], mem[0x500:0x508])
			restored.index = 0x500

			assert.NoError(t, restored.Step())
			assert.Equal(t, tt.wantIndex, restored.Index())
			regs := restored.Registers()
			assert.Equal(t, m.registers[:8], regs[:8])
			assert.Equal(t, make([]byte, 8), regs[8:])
		})
	}
}

func TestStoreLoadRegisters_OutOfBounds(t *testing.T) {
	for _, opcode := range []uint16{0xFF55, 0xFF65} {
		m := newMachine(opcode)
		m.index = MemorySize - 15
		m.registers[0] = 0x99

		err := m.Step()
		assert.ErrorIs(t, err, ErrMemoryOutOfBounds)
		assert.Equal(t, uint16(MemorySize-15), m.Index())
		assert.Equal(t, uint8(0x99), m.Register(0))
		assert.Equal(t, uint8(0), m.Memory()[MemorySize-15])
	}

	m := newMachine(0xFF55)
	m.index = MemorySize - 16
	assert.NoError(t, m.Step())
}

func TestAddIndex(t *testing.T) {
	m := newMachine(0xF31E)
	m.index = 0x100
	m.registers[3] = 0x20
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x120), m.Index())
	assert.Equal(t, uint8(0), m.Register(0xF))

	m = newMachine(0xF31E)
	m.index = 0xFFFF
	m.registers[3] = 0x02
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x0001), m.Index())
}

func TestFontCharacter(t *testing.T) {
	for _, value := range []byte{0x0, 0x7, 0xF, 0x1A, 0xFF} {
		m := newMachine(0xF429)
		m.registers[4] = value
		assert.NoError(t, m.Step())
		assert.Equal(t, FontStart+uint16(value&0x0F)*FontGlyphSize, m.Index(), "value %02X", value)
	}
}

func TestTimerInstructions(t *testing.T) {
	m := newMachine(0x6120, 0xF115, 0xF118, 0xF207)
	m.SetTimerMode(TimerExternal)

	assert.NoError(t, m.Run(4))
	assert.Equal(t, uint8(0x20), m.DelayTimer())
	assert.Equal(t, uint8(0x20), m.SoundTimer())
	assert.True(t, m.IsSoundPlaying())
	assert.Equal(t, uint8(0x20), m.Register(2))
}

func TestSoundTimer_ZeroValue(t *testing.T) {
	m := newMachine(0xF018)
	m.SetTimerMode(TimerExternal)

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(0), m.SoundTimer())
	assert.True(t, m.IsSoundPlaying())

	m.TickTimers(1)
	assert.True(t, m.IsSoundPlaying())
}

func TestRandom(t *testing.T) {
	m := newMachine(0xC30F, 0xC4FF)
	assert.NoError(t, m.Run(2))
	assert.Equal(t, uint8(0xA5&0x0F), m.Register(3))
	assert.Equal(t, uint8(0xA5), m.Register(4))

	m = New(DefaultQuirks(), WithEntropy(failingEntropy{}))
	m.LoadProgram(assemble(0xC3FF))
	m.registers[3] = 0x42

	err := m.Step()
	assert.ErrorIs(t, err, ErrEntropySource)
	assert.ErrorIs(t, err, errEntropyDepleted)
	assert.Equal(t, uint8(0x42), m.Register(3))
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
}

func TestKeySkips(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		skip    bool
	}{
		{"SKP pressed", 0xE19E, true, true},
		{"SKP released", 0xE19E, false, false},
		{"SKNP pressed", 0xE1A1, true, false},
		{"SKNP released", 0xE1A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.opcode)
			m.registers[1] = 0xB
			if tt.pressed {
				m.SetKeysMask(1 << 0xB)
			}

			assert.NoError(t, m.Step())
			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestKeySkips_InvalidKey(t *testing.T) {
	for _, opcode := range []uint16{0xE19E, 0xE1A1} {
		m := newMachine(opcode)
		m.registers[1] = KeyCount

		err := m.Step()
		assert.ErrorIs(t, err, ErrInvalidRegisterIndex)
		assert.Equal(t, uint16(ProgramStart+2), m.PC())
	}
}

func TestInvalidSubOps(t *testing.T) {
	for _, opcode := range []uint16{0xE100, 0xE19F, 0xF100, 0xF10B, 0xF1FF} {
		m := newMachine(opcode)
		err := m.Step()
		assert.ErrorIs(t, err, ErrInvalidKeyOrTimerSubOp, "opcode %04X", opcode)
	}
}
