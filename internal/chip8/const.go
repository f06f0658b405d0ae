package chip8

// Memory layout.
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: built-in font, 16 glyphs of 5 bytes
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart

	FontStart     = 0x050
	FontGlyphSize = 5
)

// Display geometry. The framebuffer packs 8 pixels per byte, most significant
// bit first, 8 bytes per row.
const (
	DisplayWidth    = 64
	DisplayHeight   = 32
	DisplayPixels   = DisplayWidth * DisplayHeight
	FramebufferSize = DisplayPixels / 8

	bytesPerRow = DisplayWidth / 8
)

const (
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// DelayDivider is the number of executed cycles per delay timer decrement
	// when timers run in TimerCycle mode.
	DelayDivider = 6

	flagRegister = 0xF
	opcodeSize   = 2
)
