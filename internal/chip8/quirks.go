package chip8

// Quirks selects between the divergent behaviors of historical interpreters.
type Quirks struct {
	// IncrementIndexOnStore makes FX55 and FX65 advance I by X+1.
	IncrementIndexOnStore bool
	// ResetFlagOnLogic clears VF after 8XY1, 8XY2 and 8XY3.
	ResetFlagOnLogic bool
	// WrapSprites continues sprites past the right and bottom edge on the
	// opposite side instead of clipping them.
	WrapSprites bool
	// ShiftInPlace makes 8XY6 and 8XYE shift VX and ignore VY.
	ShiftInPlace bool
}

// DefaultQuirks returns the quirks of the original COSMAC VIP interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		IncrementIndexOnStore: true,
		ResetFlagOnLogic:      true,
	}
}

// TimerMode defines who decrements the delay and sound timers.
type TimerMode int

const (
	// TimerCycle decrements the timers inside Step.
	TimerCycle TimerMode = iota
	// TimerExternal leaves the timers to the host calling TickTimers.
	TimerExternal
)

func (t TimerMode) String() string {
	switch t {
	case TimerCycle:
		return "cycle"
	case TimerExternal:
		return "external"
	default:
		return "unknown"
	}
}
