package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/config"
)

var (
	// ErrUnknownPreset is returned for quirk preset names that do not exist.
	ErrUnknownPreset = errors.New("unknown quirk preset")
	// ErrUnknownTimerMode is returned for timer mode names that do not exist.
	ErrUnknownTimerMode = errors.New("unknown timer mode")
)

// Quirk preset names.
const (
	PresetChip8 = "chip8"
	PresetSChip = "schip"
	PresetNone  = "none"
)

// Preset returns the quirks of a named interpreter family.
func Preset(name string) (chip8.Quirks, error) {
	switch strings.ToLower(name) {
	case PresetChip8, "":
		return chip8.DefaultQuirks(), nil
	case PresetSChip:
		return chip8.Quirks{ShiftInPlace: true}, nil
	case PresetNone:
		return chip8.Quirks{}, nil
	default:
		return chip8.Quirks{}, fmt.Errorf("%w: %s. Valid options: %s, %s, %s",
			ErrUnknownPreset, name, PresetChip8, PresetSChip, PresetNone)
	}
}

// ParseTimerMode converts a timer mode name.
func ParseTimerMode(name string) (chip8.TimerMode, error) {
	switch strings.ToLower(name) {
	case chip8.TimerCycle.String():
		return chip8.TimerCycle, nil
	case chip8.TimerExternal.String():
		return chip8.TimerExternal, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownTimerMode, name)
	}
}

// Profile is the content of a machine profile file:
//
//	[quirks]
//	increment_index = true
//	reset_flag = true
//	wrap_sprites = false
//	shift_in_place = false
//
//	[timing]
//	mode = "cycle"
//	cycles_per_frame = 10
//
// Keys that are missing keep the values of the base the profile was loaded
// over. An empty timing mode or zero cycles per frame means not set.
type Profile struct {
	IncrementIndex bool `config:"quirks.increment_index"`
	ResetFlag      bool `config:"quirks.reset_flag"`
	WrapSprites    bool `config:"quirks.wrap_sprites"`
	ShiftInPlace   bool `config:"quirks.shift_in_place"`

	TimerMode      string `config:"timing.mode"`
	CyclesPerFrame int    `config:"timing.cycles_per_frame"`
}

// NewProfile returns a profile with the given quirks and no timing set.
func NewProfile(quirks chip8.Quirks) Profile {
	return Profile{
		IncrementIndex: quirks.IncrementIndexOnStore,
		ResetFlag:      quirks.ResetFlagOnLogic,
		WrapSprites:    quirks.WrapSprites,
		ShiftInPlace:   quirks.ShiftInPlace,
	}
}

// Quirks returns the quirks of the profile.
func (p Profile) Quirks() chip8.Quirks {
	return chip8.Quirks{
		IncrementIndexOnStore: p.IncrementIndex,
		ResetFlagOnLogic:      p.ResetFlag,
		WrapSprites:           p.WrapSprites,
		ShiftInPlace:          p.ShiftInPlace,
	}
}

// LoadProfile reads a profile file over the base quirks.
func LoadProfile(path string, base chip8.Quirks) (Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("opening profile %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	profile, err := ParseProfile(file, base)
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return profile, nil
}

// ParseProfile reads a profile from r over the base quirks.
func ParseProfile(r io.Reader, base chip8.Quirks) (Profile, error) {
	document, err := config.Parse(r, config.Options{})
	if err != nil {
		return Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return unmarshalProfile(document, base)
}

func unmarshalProfile(document *config.Config, base chip8.Quirks) (Profile, error) {
	profile := NewProfile(base)
	if err := document.Unmarshal(&profile); err != nil {
		return Profile{}, fmt.Errorf("reading profile values: %w", err)
	}

	if profile.TimerMode != "" {
		if _, err := ParseTimerMode(profile.TimerMode); err != nil {
			return Profile{}, fmt.Errorf("reading profile timing: %w", err)
		}
	}
	if profile.CyclesPerFrame < 0 {
		return Profile{}, fmt.Errorf("invalid cycles per frame %d", profile.CyclesPerFrame)
	}
	return profile, nil
}
