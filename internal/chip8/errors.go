package chip8

import (
	"errors"
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Errors returned by Step, wrapped in a *CycleError.
var (
	ErrInvalidOpClass         = errors.New("invalid instruction class")
	ErrInvalidArithmeticSubOp = errors.New("invalid arithmetic sub-opcode")
	ErrInvalidKeyOrTimerSubOp = errors.New("invalid key or timer sub-opcode")
	ErrInvalidWaitRegister    = errors.New("invalid key wait register")
	ErrEntropySource          = errors.New("entropy source failure")
)

// Errors shared with the retrogolib CHIP-8 CPU, so callers can match either.
var (
	// ErrInvalidRegisterIndex is returned when a key instruction reads a
	// register value outside the keypad range.
	ErrInvalidRegisterIndex = chip8cpu.ErrKeyIndexOutOfBounds
	ErrStackOverflow        = chip8cpu.ErrStackOverflow
	ErrStackUnderflow       = chip8cpu.ErrStackUnderflow
	ErrMemoryOutOfBounds    = chip8cpu.ErrMemoryOutOfBounds
)

// CycleError is returned by Step when a cycle fails.
type CycleError struct {
	Address uint16 // address of the failing instruction
	Opcode  uint16 // zero if the failure happened before decoding
	Err     error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle at $%03X opcode $%04X: %v", e.Address, e.Opcode, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
