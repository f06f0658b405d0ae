// Package runner drives a CHIP-8 machine frame by frame without a display.
//
// Every frame holds the configured keys, executes the configured number of
// cycles and, in external timer mode, ticks the timers once, emulating a
// 60 Hz host loop.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Result summarizes a run.
type Result struct {
	Frames       int    // completed frames
	Cycles       uint64 // executed cycles, including failed ones
	Errors       int    // failed cycles
	PC           uint16
	SoundPlaying bool
	WaitingKey   bool // suspended on a key wait when the run ended
	Breakpoint   bool // stopped before executing a breakpoint address
}

// Runner runs a program on a CHIP-8 machine.
type Runner struct {
	logger      *log.Logger
	opts        options.Runner
	machine     *chip8.Machine
	program     []byte
	breakpoints set.Set[uint16]
}

// New returns a runner with the program loaded into a new machine.
// The machine options are applied after the timer mode of opts.
func New(logger *log.Logger, opts options.Runner, program []byte, machineOpts ...chip8.Option) *Runner {
	machineOpts = append([]chip8.Option{chip8.WithTimerMode(opts.TimerMode)}, machineOpts...)
	machine := chip8.New(opts.Quirks, machineOpts...)
	machine.LoadProgram(program)

	return &Runner{
		logger:      logger,
		opts:        opts,
		machine:     machine,
		program:     program,
		breakpoints: set.NewFromSlice(opts.Breakpoints),
	}
}

// Machine returns the machine the program runs on.
func (r *Runner) Machine() *chip8.Machine {
	return r.machine
}

// Run executes the configured number of frames. It returns early when the
// context is cancelled, a breakpoint is reached or a cycle fails with the
// halt error policy.
func (r *Runner) Run(ctx context.Context) (result Result, err error) {
	defer r.summarize(&result)

	r.logger.Debug("Starting run",
		log.Int("frames", r.opts.Frames),
		log.Int("cycles_per_frame", r.opts.CyclesPerFrame),
		log.String("timer", r.opts.TimerMode.String()),
		log.String("on_error", string(r.opts.OnError)))

	sound := r.machine.IsSoundPlaying()
	for result.Frames < r.opts.Frames {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("running frame %d: %w", result.Frames, err)
		}

		var stopped bool
		stopped, err = r.runFrame(&result)
		if err != nil {
			return result, err
		}
		if stopped {
			return result, nil
		}

		if r.opts.TimerMode == chip8.TimerExternal {
			r.machine.TickTimers(1)
		}
		result.Frames++
		sound = r.reportSound(sound, result.Frames)
	}
	return result, nil
}

// runFrame executes the cycles of one frame and returns whether a
// breakpoint stopped it.
func (r *Runner) runFrame(result *Result) (bool, error) {
	r.machine.SetKeysMask(r.opts.HoldMask)

	for range r.opts.CyclesPerFrame {
		pc := r.machine.PC()
		_, waiting := r.machine.WaitingForKey()
		if !waiting && r.breakpoints.Contains(pc) {
			r.logger.Info("Breakpoint reached", log.Hex("address", pc), log.Int("frame", result.Frames))
			result.Breakpoint = true
			return true, nil
		}
		if r.opts.Trace {
			r.trace(pc, waiting)
		}

		err := r.machine.Step()
		result.Cycles++
		if err == nil {
			continue
		}
		result.Errors++
		if err := r.handleError(err, result.Cycles); err != nil {
			return false, err
		}
	}
	return false, nil
}

// handleError applies the error policy to a failed cycle. Cycles recovered
// by the skip and reset policies are logged as warnings.
func (r *Runner) handleError(err error, cycle uint64) error {
	fields := []log.Field{log.Err(err), log.Uint64("cycle", cycle)}
	var cycleErr *chip8.CycleError
	if errors.As(err, &cycleErr) {
		fields = append(fields,
			log.Hex("address", cycleErr.Address),
			log.String("instruction", disasm.Format(cycleErr.Opcode)))
	}

	switch r.opts.OnError {
	case options.Skip:
		r.logger.Warn("Cycle failed, continuing", fields...)
	case options.Reset:
		r.logger.Warn("Cycle failed, resetting machine", fields...)
		r.machine.Reset()
		r.machine.LoadProgram(r.program)
	default:
		return fmt.Errorf("executing cycle %d: %w", cycle, err)
	}
	return nil
}

func (r *Runner) trace(pc uint16, waiting bool) {
	if waiting {
		r.logger.Trace("Waiting for key", log.Hex("pc", pc))
		return
	}
	opcode, ok := r.machine.Opcode()
	if !ok {
		return
	}
	r.logger.Trace("Executing",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", disasm.Format(opcode)),
		log.Hex("i", r.machine.Index()))
}

func (r *Runner) reportSound(previous bool, frame int) bool {
	playing := r.machine.IsSoundPlaying()
	if playing != previous {
		r.logger.Debug("Sound state changed", log.Bool("playing", playing), log.Int("frame", frame))
	}
	return playing
}

func (r *Runner) summarize(result *Result) {
	result.PC = r.machine.PC()
	result.SoundPlaying = r.machine.IsSoundPlaying()
	_, result.WaitingKey = r.machine.WaitingForKey()
}
