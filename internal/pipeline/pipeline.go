// Package pipeline orchestrates the workflow stages of a program run:
// loading, listing, running and reporting.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates loading and running a program file.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new pipeline instance.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute loads the program file and either writes its listing or runs it.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, runnerOpts options.Runner,
	writer io.Writer) (runner.Result, error) {

	data, err := p.loader.Load(opts.File)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	if opts.List {
		if err := disasm.WriteListing(writer, disasm.Program(data, chip8.ProgramStart)); err != nil {
			return runner.Result{}, fmt.Errorf("writing listing: %w", err)
		}
		return runner.Result{}, nil
	}

	return p.ExecuteWithProgram(ctx, data, opts, runnerOpts, writer)
}

// ExecuteWithProgram runs a pre-loaded program. The display is written to
// writer after the run if requested, also when the run failed.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, data []byte, opts options.Program,
	runnerOpts options.Runner, writer io.Writer) (runner.Result, error) {

	p.printInfo(opts, runnerOpts, len(data))

	r := runner.New(p.logger, runnerOpts, data)
	result, runErr := r.Run(ctx)

	if opts.Screen {
		if err := screen.Render(writer, r.Machine().Framebuffer()); err != nil {
			return result, fmt.Errorf("writing screen: %w", err)
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("running program: %w", runErr)
	}

	p.printSummary(opts, result, screen.Lit(r.Machine().Framebuffer()))
	return result, nil
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, runnerOpts options.Runner, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.File),
		log.Int("size", size),
		log.String("timer", runnerOpts.TimerMode.String()),
		log.Int("frames", runnerOpts.Frames),
		log.Int("cycles_per_frame", runnerOpts.CyclesPerFrame),
	)
	p.logger.Debug("Quirks",
		log.Bool("increment_index", runnerOpts.Quirks.IncrementIndexOnStore),
		log.Bool("reset_flag", runnerOpts.Quirks.ResetFlagOnLogic),
		log.Bool("wrap_sprites", runnerOpts.Quirks.WrapSprites),
		log.Bool("shift_in_place", runnerOpts.Quirks.ShiftInPlace),
	)
}

func (p *Pipeline) printSummary(opts options.Program, result runner.Result, litPixels int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Run finished",
		log.Int("frames", result.Frames),
		log.Uint64("cycles", result.Cycles),
		log.Hex("pc", result.PC),
		log.Int("errors", result.Errors),
		log.Int("lit_pixels", litPixels),
		log.Bool("sound", result.SoundPlaying),
		log.Bool("waiting_for_key", result.WaitingKey),
		log.Bool("breakpoint", result.Breakpoint),
	)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if strings.Contains(date, "unknown") {
		date = ""
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
