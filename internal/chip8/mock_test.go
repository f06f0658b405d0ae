package chip8

import "errors"

var errEntropyDepleted = errors.New("entropy depleted")

// fixedEntropy returns the same byte for every read.
type fixedEntropy byte

func (f fixedEntropy) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(f)
	}
	return len(p), nil
}

// failingEntropy fails every read.
type failingEntropy struct{}

func (failingEntropy) Read([]byte) (int, error) {
	return 0, errEntropyDepleted
}

// newMachine returns a machine with default quirks and the given
// instructions loaded at ProgramStart.
func newMachine(program ...uint16) *Machine {
	return newMachineWithQuirks(DefaultQuirks(), program...)
}

func newMachineWithQuirks(quirks Quirks, program ...uint16) *Machine {
	m := New(quirks, WithEntropy(fixedEntropy(0xA5)))
	m.LoadProgram(assemble(program...))
	return m
}

func assemble(program ...uint16) []byte {
	data := make([]byte, 0, len(program)*opcodeSize)
	for _, op := range program {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}
