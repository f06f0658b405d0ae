// Package options contains the program options.
package options

import "github.com/retroenv/retrochip8/internal/chip8"

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"CHIP-8 program file to run" required:"true"`
}

// Parameters contains machine configuration options.
type Parameters struct {
	Config      string `flag:"c" usage:"quirk and timing profile file"`
	Quirks      string `flag:"quirks" usage:"quirk preset: chip8, schip, none" default:"chip8"`
	Timer       string `flag:"timer" usage:"timer mode: cycle, external (default: profile or external)"`
	Keys        string `flag:"keys" usage:"host key to hex keypad index bindings (e.g. i=5,k=8)"`
	Hold        string `flag:"hold" usage:"host keys held during the run (e.g. 1qw)"`
	Breakpoints string `flag:"break" usage:"comma separated hex addresses to stop at (e.g. 0x2A4,0x300)"`
	OnError     string `flag:"on-error" usage:"cycle error policy: halt, skip, reset" default:"halt"`
}

// Flags contains behavior options.
type Flags struct {
	Frames         int  `flag:"frames" usage:"number of 60 Hz frames to run" default:"600"`
	CyclesPerFrame int  `flag:"cpf" usage:"cycles per frame (default: profile or 10)"`
	List           bool `flag:"list" usage:"print a disassembly listing of the program and exit"`
	Screen         bool `flag:"screen" usage:"print the display when the run ends"`
	Trace          bool `flag:"trace" usage:"log every executed instruction"`
	Debug          bool `flag:"debug" usage:"enable debug logging"`
	Quiet          bool `flag:"q" usage:"quiet mode"`
}

// Program options of the runner command.
type Program struct {
	Positional
	Parameters
	Flags
}

// ErrorPolicy selects how the runner reacts to a failed cycle.
type ErrorPolicy string

const (
	// Halt stops the run and returns the error.
	Halt ErrorPolicy = "halt"
	// Skip logs the error and continues after the failing instruction.
	Skip ErrorPolicy = "skip"
	// Reset logs the error, resets the machine and reloads the program.
	Reset ErrorPolicy = "reset"
)

// Default runner values used when neither the command line nor a profile
// sets them.
const (
	DefaultCyclesPerFrame = 10
	DefaultTimerMode      = chip8.TimerExternal
)

// Runner defines the resolved options that control a run.
type Runner struct {
	Quirks         chip8.Quirks
	TimerMode      chip8.TimerMode
	Frames         int
	CyclesPerFrame int
	HoldMask       uint16   // keypad keys held for the whole run, bit N is key N
	Breakpoints    []uint16 // addresses that stop the run before executing
	OnError        ErrorPolicy
	Trace          bool
}

// NewRunner returns runner options with default values.
func NewRunner() Runner {
	return Runner{
		Quirks:         chip8.DefaultQuirks(),
		TimerMode:      DefaultTimerMode,
		Frames:         600,
		CyclesPerFrame: DefaultCyclesPerFrame,
		OnError:        Halt,
	}
}
