package chip8

import (
	"crypto/rand"
	"io"
)

// Machine holds the complete CHIP-8 architectural state.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]byte
	index     uint16
	pc        uint16
	stack     [StackSize]uint16
	sp        uint8

	delayTimer   byte
	delayCycles  uint64 // cycles counted since the delay timer was last set
	soundTimer   byte
	playingSound bool

	keys         [KeyCount]bool
	waiting      bool
	waitRegister uint8

	framebuffer [FramebufferSize]byte

	quirks    Quirks
	timerMode TimerMode
	entropy   io.Reader
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithTimerMode sets the timer mode. The default is TimerCycle.
func WithTimerMode(mode TimerMode) Option {
	return func(m *Machine) {
		m.timerMode = mode
	}
}

// WithEntropy replaces the random source used by CXNN. The default is
// crypto/rand.Reader.
func WithEntropy(r io.Reader) Option {
	return func(m *Machine) {
		m.entropy = r
	}
}

// New returns a machine with the font loaded and the program counter at
// ProgramStart.
func New(quirks Quirks, opts ...Option) *Machine {
	m := &Machine{
		quirks:    quirks,
		timerMode: TimerCycle,
		entropy:   rand.Reader,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

// Reset reinitializes all state except the quirks, the timer mode and the
// entropy source.
func (m *Machine) Reset() {
	m.initialize()
}

func (m *Machine) initialize() {
	clear(m.memory[:])
	copy(m.memory[FontStart:], fontSet[:])
	clear(m.registers[:])
	clear(m.stack[:])
	clear(m.keys[:])
	clear(m.framebuffer[:])

	m.index = 0
	m.pc = ProgramStart
	m.sp = 0
	m.delayTimer = 0
	m.delayCycles = 0
	m.soundTimer = 0
	m.playingSound = false
	m.waiting = false
	m.waitRegister = 0
}

// SetQuirks replaces the quirk configuration.
func (m *Machine) SetQuirks(quirks Quirks) {
	m.quirks = quirks
}

// SetTimerMode replaces the timer mode.
func (m *Machine) SetTimerMode(mode TimerMode) {
	m.timerMode = mode
}

// LoadProgram copies program into memory at ProgramStart and zero fills the
// rest of the program space. Bytes beyond MaxProgramSize are dropped. It
// returns the number of bytes copied.
func (m *Machine) LoadProgram(program []byte) int {
	n := copy(m.memory[ProgramStart:], program)
	clear(m.memory[ProgramStart+n:])
	return n
}

// SetKeys replaces the keypad state.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keys = keys
}

// SetKeysMask replaces the keypad state from a mask where bit N is key N.
func (m *Machine) SetKeysMask(mask uint16) {
	for i := range m.keys {
		m.keys[i] = mask&(1<<i) != 0
	}
}

// TickTimers applies ticks 60 Hz steps to the delay and sound timers.
func (m *Machine) TickTimers(ticks int) {
	for range ticks {
		if m.delayTimer == 0 && m.soundTimer == 0 {
			return
		}
		if m.delayTimer > 0 {
			m.delayTimer--
		}
		m.decrementSound()
	}
}

func (m *Machine) decrementSound() {
	if m.soundTimer == 0 {
		return
	}
	m.soundTimer--
	if m.soundTimer == 0 {
		m.playingSound = false
	}
}

// Memory returns a copy of the address space.
func (m *Machine) Memory() []byte {
	mem := make([]byte, MemorySize)
	copy(mem, m.memory[:])
	return mem
}

// Register returns the value of register V0-VF. Indexes wrap at 16.
func (m *Machine) Register(i int) byte {
	return m.registers[i&0xF]
}

// Registers returns V0-VF.
func (m *Machine) Registers() [RegisterCount]byte {
	return m.registers
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SP returns the stack pointer.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Stack returns the return address stack.
func (m *Machine) Stack() [StackSize]uint16 {
	return m.stack
}

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the sound timer.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// IsSoundPlaying reports whether the tone should be audible.
func (m *Machine) IsSoundPlaying() bool {
	return m.playingSound
}

// Keys returns the keypad state.
func (m *Machine) Keys() [KeyCount]bool {
	return m.keys
}

// KeysMask returns the keypad state as a mask where bit N is key N.
func (m *Machine) KeysMask() uint16 {
	var mask uint16
	for i, pressed := range m.keys {
		if pressed {
			mask |= 1 << i
		}
	}
	return mask
}

// Framebuffer returns a copy of the packed framebuffer.
func (m *Machine) Framebuffer() [FramebufferSize]byte {
	return m.framebuffer
}

// Pixel reports whether the pixel at col, row is lit. Coordinates outside
// the display return false.
func (m *Machine) Pixel(col, row int) bool {
	if col < 0 || col >= DisplayWidth || row < 0 || row >= DisplayHeight {
		return false
	}
	b := m.framebuffer[row*bytesPerRow+col/8]
	return b&(0x80>>(col%8)) != 0
}

// Quirks returns the quirk configuration.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// TimerMode returns the timer mode.
func (m *Machine) TimerMode() TimerMode {
	return m.timerMode
}

// WaitingForKey returns the destination register of a pending FX0A and
// whether execution is suspended on it.
func (m *Machine) WaitingForKey() (uint8, bool) {
	return m.waitRegister, m.waiting
}

// Opcode returns the instruction at the program counter without executing
// it. ok is false if the program counter is outside memory.
func (m *Machine) Opcode() (opcode uint16, ok bool) {
	if int(m.pc)+1 >= MemorySize {
		return 0, false
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1]), true
}
