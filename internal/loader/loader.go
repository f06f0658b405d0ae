// Package loader handles CHIP-8 program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

var (
	// ErrEmptyProgram is returned for program files without any data.
	ErrEmptyProgram = errors.New("program is empty")
	// ErrProgramTooLarge is returned for programs that do not fit into the
	// program space.
	ErrProgramTooLarge = errors.New("program is too large")
)

// Loader handles loading program files from disk.
type Loader struct {
	maxSize int
}

// New creates a new program loader that accepts programs up to the size of
// the CHIP-8 program space.
func New() *Loader {
	return &Loader{
		maxSize: chip8.MaxProgramSize,
	}
}

// Load reads the program file at path.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a program from r. At most one byte more than the
// program space is read to detect oversized programs.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > l.maxSize:
		return nil, fmt.Errorf("%w: more than %d bytes", ErrProgramTooLarge, l.maxSize)
	}
	return data, nil
}
