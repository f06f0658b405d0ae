package chip8

import (
	"fmt"
	"io"
)

func (m *Machine) execute(ins instruction) error {
	x, y := ins.x, ins.y

	switch ins.class {
	case 0x0:
		return m.executeSystem(ins)
	case 0x1: // JP addr
		m.pc = ins.nnn()
	case 0x2: // CALL addr
		return m.call(ins.nnn())
	case 0x3: // SE Vx, byte
		m.skipIf(m.registers[x] == ins.nn())
	case 0x4: // SNE Vx, byte
		m.skipIf(m.registers[x] != ins.nn())
	case 0x5: // SE Vx, Vy
		m.skipIf(m.registers[x] == m.registers[y])
	case 0x6: // LD Vx, byte
		m.registers[x] = ins.nn()
	case 0x7: // ADD Vx, byte
		m.add(x, ins.nn())
	case 0x8:
		return m.executeArithmetic(ins)
	case 0x9: // SNE Vx, Vy
		m.skipIf(m.registers[x] != m.registers[y])
	case 0xA: // LD I, addr
		m.index = ins.nnn()
	case 0xB: // JP V0, addr
		m.pc = uint16(m.registers[0]) + ins.nnn()
	case 0xC: // RND Vx, byte
		return m.random(x, ins.nn())
	case 0xD: // DRW Vx, Vy, nibble
		return m.draw(x, y, ins.n)
	case 0xE:
		return m.executeKey(ins)
	case 0xF:
		return m.executeMisc(ins)
	default:
		return fmt.Errorf("%w: $%X", ErrInvalidOpClass, ins.class)
	}
	return nil
}

// executeSystem handles class 0x0. Machine code calls (0NNN) are ignored.
func (m *Machine) executeSystem(ins instruction) error {
	switch ins.opcode {
	case 0x00E0: // CLS
		clear(m.framebuffer[:])
	case 0x00EE: // RET
		return m.ret()
	}
	return nil
}

// call pushes the already advanced program counter. The stack pointer is
// incremented before the push, so slot 0 is never used.
func (m *Machine) call(address uint16) error {
	if int(m.sp) >= StackSize-1 {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, m.sp)
	}
	m.sp++
	m.stack[m.sp] = m.pc
	m.pc = address
	return nil
}

func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[m.sp]
	m.stack[m.sp] = 0
	m.sp--
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// add stores Vx+value into Vx and the carry into VF. VF is written last, so
// for x == 0xF the sum is overwritten by the carry.
func (m *Machine) add(x, value byte) {
	sum := uint16(m.registers[x]) + uint16(value)
	m.registers[x] = byte(sum)
	m.registers[flagRegister] = byte(sum >> 8)
}

// executeArithmetic handles class 0x8.
func (m *Machine) executeArithmetic(ins instruction) error {
	x, y := ins.x, ins.y
	vx, vy := m.registers[x], m.registers[y]

	switch ins.n {
	case 0x0: // LD Vx, Vy
		m.registers[x] = vy
	case 0x1: // OR Vx, Vy
		m.registers[x] = vx | vy
		m.resetFlagOnLogic()
	case 0x2: // AND Vx, Vy
		m.registers[x] = vx & vy
		m.resetFlagOnLogic()
	case 0x3: // XOR Vx, Vy
		m.registers[x] = vx ^ vy
		m.resetFlagOnLogic()
	case 0x4: // ADD Vx, Vy
		m.add(x, vy)
	case 0x5: // SUB Vx, Vy
		m.subtract(x, vx, vy)
	case 0x6: // SHR Vx {, Vy}
		src := m.shiftSource(vx, vy)
		m.registers[x] = src >> 1
		m.registers[flagRegister] = src & 0x01
	case 0x7: // SUBN Vx, Vy
		m.subtract(x, vy, vx)
	case 0xE: // SHL Vx {, Vy}
		src := m.shiftSource(vx, vy)
		m.registers[x] = src << 1
		// bit 3 is tested, not bit 7, to stay compatible with the ROMs
		// tuned against this interpreter
		m.registers[flagRegister] = (src & 0x08) >> 3
	default:
		return fmt.Errorf("%w: $%X", ErrInvalidArithmeticSubOp, ins.n)
	}
	return nil
}

// subtract stores minuend-subtrahend into Vx with two's complement wraparound
// and sets VF to 1 if no borrow occurred.
func (m *Machine) subtract(x, minuend, subtrahend byte) {
	m.registers[x] = minuend - subtrahend
	if minuend >= subtrahend {
		m.registers[flagRegister] = 1
	} else {
		m.registers[flagRegister] = 0
	}
}

func (m *Machine) resetFlagOnLogic() {
	if m.quirks.ResetFlagOnLogic {
		m.registers[flagRegister] = 0
	}
}

func (m *Machine) shiftSource(vx, vy byte) byte {
	if m.quirks.ShiftInPlace {
		return vx
	}
	return vy
}

func (m *Machine) random(x, mask byte) error {
	var buf [1]byte
	if _, err := io.ReadFull(m.entropy, buf[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrEntropySource, err)
	}
	m.registers[x] = buf[0] & mask
	return nil
}

// executeKey handles class 0xE.
func (m *Machine) executeKey(ins instruction) error {
	switch ins.nn() {
	case 0x9E: // SKP Vx
		pressed, err := m.keyPressed(ins.x)
		if err != nil {
			return err
		}
		m.skipIf(pressed)
	case 0xA1: // SKNP Vx
		pressed, err := m.keyPressed(ins.x)
		if err != nil {
			return err
		}
		m.skipIf(!pressed)
	default:
		return fmt.Errorf("%w: $E%X%02X", ErrInvalidKeyOrTimerSubOp, ins.x, ins.nn())
	}
	return nil
}

func (m *Machine) keyPressed(x byte) (bool, error) {
	key := m.registers[x]
	if int(key) >= KeyCount {
		return false, fmt.Errorf("%w: V%X=$%02X", ErrInvalidRegisterIndex, x, key)
	}
	return m.keys[key], nil
}

// executeMisc handles class 0xF.
func (m *Machine) executeMisc(ins instruction) error {
	x := ins.x

	switch ins.nn() {
	case 0x07: // LD Vx, DT
		m.registers[x] = m.delayTimer
	case 0x0A: // LD Vx, K
		return m.waitForKey(x)
	case 0x15: // LD DT, Vx
		m.delayTimer = m.registers[x]
		m.delayCycles = 0
	case 0x18: // LD ST, Vx
		m.soundTimer = m.registers[x]
		m.playingSound = true
	case 0x1E: // ADD I, Vx
		m.index += uint16(m.registers[x])
	case 0x29: // LD F, Vx
		m.index = FontAddress(m.registers[x])
	case 0x33: // LD B, Vx
		return m.storeBCD(x)
	case 0x55: // LD [I], Vx
		return m.storeRegisters(x)
	case 0x65: // LD Vx, [I]
		return m.loadRegisters(x)
	default:
		return fmt.Errorf("%w: $F%X%02X", ErrInvalidKeyOrTimerSubOp, x, ins.nn())
	}
	return nil
}

func (m *Machine) waitForKey(x byte) error {
	if int(x) >= RegisterCount {
		return fmt.Errorf("%w: V%X", ErrInvalidWaitRegister, x)
	}
	m.waiting = true
	m.waitRegister = x
	return nil
}

// checkRange verifies that size bytes starting at I are inside memory.
func (m *Machine) checkRange(size int) error {
	if int(m.index)+size > MemorySize {
		return fmt.Errorf("%w: I=$%04X size %d", ErrMemoryOutOfBounds, m.index, size)
	}
	return nil
}

func (m *Machine) storeBCD(x byte) error {
	if err := m.checkRange(3); err != nil {
		return err
	}
	value := m.registers[x]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return nil
}

func (m *Machine) storeRegisters(x byte) error {
	count := int(x) + 1
	if err := m.checkRange(count); err != nil {
		return err
	}
	copy(m.memory[m.index:], m.registers[:count])
	m.advanceIndex(count)
	return nil
}

func (m *Machine) loadRegisters(x byte) error {
	count := int(x) + 1
	if err := m.checkRange(count); err != nil {
		return err
	}
	copy(m.registers[:count], m.memory[m.index:])
	m.advanceIndex(count)
	return nil
}

func (m *Machine) advanceIndex(count int) {
	if m.quirks.IncrementIndexOnStore {
		m.index += uint16(count)
	}
}
