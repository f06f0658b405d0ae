// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/cli"
)

// ErrHelpRequested is wrapped by the usage error returned for -h and -help.
var ErrHelpRequested = cli.ErrHelpRequested

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := cli.NewFlagSet("retrochip8")
	var opts options.Program
	flags.AddSection("Machine", &opts.Parameters)
	flags.AddSection("Run", &opts.Flags)
	flags.AddPositional(&opts.Positional)

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		var missingArgs *cli.MissingArgsError
		var missingFlags *cli.MissingFlagsError
		// the flag set prints the usage itself for malformed flags and -h
		printed := !errors.As(err, &missingArgs) && !errors.As(err, &missingFlags)
		return opts, options.Runner{}, &UsageError{flags: flags, msg: err.Error(), err: err, printed: printed}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	runnerOpts, err := createRunnerOptions(opts)
	if err != nil {
		return opts, options.Runner{}, err
	}
	return opts, runnerOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags   *cli.FlagSet
	msg     string
	err     error
	printed bool
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the usage unless it was already printed while parsing.
func (e *UsageError) ShowUsage() {
	if e.printed || e.flags == nil {
		return
	}
	e.flags.ShowUsage()
}

// validateArgs checks that no arguments follow the program file
func validateArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	return &UsageError{
		msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", args[0]),
	}
}

// createRunnerOptions resolves the runner options. Quirks come from the
// preset, overridden by a profile file. Timing comes from the profile,
// overridden by the command line.
func createRunnerOptions(opts options.Program) (options.Runner, error) {
	runnerOpts := options.NewRunner()
	runnerOpts.Trace = opts.Trace

	quirks, err := config.Preset(opts.Quirks)
	if err != nil {
		return options.Runner{}, err
	}

	timer := opts.Timer
	cyclesPerFrame := opts.CyclesPerFrame
	if opts.Config != "" {
		profile, err := config.LoadProfile(opts.Config, quirks)
		if err != nil {
			return options.Runner{}, err
		}
		quirks = profile.Quirks()
		if timer == "" {
			timer = profile.TimerMode
		}
		if cyclesPerFrame == 0 {
			cyclesPerFrame = profile.CyclesPerFrame
		}
	}
	runnerOpts.Quirks = quirks

	if timer != "" {
		if runnerOpts.TimerMode, err = config.ParseTimerMode(timer); err != nil {
			return options.Runner{}, err
		}
	}

	switch {
	case cyclesPerFrame < 0:
		return options.Runner{}, fmt.Errorf("invalid cycles per frame %d", cyclesPerFrame)
	case cyclesPerFrame > 0:
		runnerOpts.CyclesPerFrame = cyclesPerFrame
	}

	if opts.Frames < 0 {
		return options.Runner{}, fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	runnerOpts.Frames = opts.Frames

	keys := keymap.New()
	if err := keys.ParseBindings(opts.Keys); err != nil {
		return options.Runner{}, fmt.Errorf("parsing key bindings: %w", err)
	}
	if runnerOpts.HoldMask, err = keys.ParseMask(opts.Hold); err != nil {
		return options.Runner{}, fmt.Errorf("parsing held keys: %w", err)
	}

	if runnerOpts.Breakpoints, err = parseBreakpoints(opts.Breakpoints); err != nil {
		return options.Runner{}, err
	}

	if runnerOpts.OnError, err = parseErrorPolicy(opts.OnError); err != nil {
		return options.Runner{}, err
	}
	return runnerOpts, nil
}

// parseBreakpoints parses a comma separated list of hex addresses. The
// addresses can be prefixed with 0x or $.
func parseBreakpoints(s string) ([]uint16, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var addresses []uint16
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		digits := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(field), "0x"), "$")

		address, err := strconv.ParseUint(digits, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint '%s': %w", field, err)
		}
		if address >= chip8.MemorySize {
			return nil, fmt.Errorf("breakpoint '%s' is outside of memory", field)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func parseErrorPolicy(s string) (options.ErrorPolicy, error) {
	policy := options.ErrorPolicy(strings.ToLower(s))
	switch policy {
	case options.Halt, options.Skip, options.Reset:
		return policy, nil
	case "":
		return options.Halt, nil
	default:
		return "", fmt.Errorf("unsupported error policy: %s. Valid options: %s, %s, %s",
			s, options.Halt, options.Skip, options.Reset)
	}
}
