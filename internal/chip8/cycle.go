package chip8

import "fmt"

// Step executes one cycle.
//
// While suspended on FX0A nothing executes until a key is pressed. The cycle
// that observes the key stores the lowest pressed key index into the wait
// register and clears the suspension without fetching, so the instruction
// after FX0A runs on the following cycle.
func (m *Machine) Step() error {
	if m.waiting {
		return m.checkKeyWait()
	}

	if m.timerMode == TimerCycle {
		m.updateTimers()
	}

	address := m.pc
	opcode, ok := m.Opcode()
	if !ok {
		return &CycleError{
			Address: address,
			Err:     fmt.Errorf("%w: fetch at $%04X", ErrMemoryOutOfBounds, address),
		}
	}
	m.pc += opcodeSize

	if err := m.execute(decode(opcode)); err != nil {
		return &CycleError{
			Address: address,
			Opcode:  opcode,
			Err:     err,
		}
	}
	return nil
}

// Run executes up to cycles cycles and stops at the first error.
func (m *Machine) Run(cycles int) error {
	for range cycles {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// checkKeyWait resolves the suspension if a key is pressed.
func (m *Machine) checkKeyWait() error {
	if m.waitRegister >= RegisterCount {
		return &CycleError{
			Address: m.pc - opcodeSize,
			Err:     fmt.Errorf("%w: V%X", ErrInvalidWaitRegister, m.waitRegister),
		}
	}

	for key, pressed := range m.keys {
		if pressed {
			m.registers[m.waitRegister] = byte(key)
			m.waiting = false
			return nil
		}
	}
	return nil
}

// updateTimers emulates the 60 Hz timers of a slower historical clock. The
// delay timer counts down once every DelayDivider cycles, starting with the
// first cycle after it was set.
func (m *Machine) updateTimers() {
	if m.delayTimer > 0 {
		if m.delayCycles%DelayDivider == 0 {
			m.delayTimer--
		}
		m.delayCycles++
	}
	m.decrementSound()
}

// instruction holds the nibbles of a fetched opcode.
type instruction struct {
	opcode uint16
	class  byte
	x      byte
	y      byte
	n      byte
}

func decode(opcode uint16) instruction {
	return instruction{
		opcode: opcode,
		class:  byte(opcode >> 12),
		x:      byte(opcode>>8) & 0x0F,
		y:      byte(opcode>>4) & 0x0F,
		n:      byte(opcode) & 0x0F,
	}
}

// nn returns the low byte.
func (i instruction) nn() byte {
	return byte(i.opcode)
}

// nnn returns the 12 bit address.
func (i instruction) nnn() uint16 {
	return i.opcode & 0x0FFF
}
