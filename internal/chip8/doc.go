// Package chip8 implements the CHIP-8 virtual machine core: the machine state
// and an interpreter that executes one instruction per Step call.
//
// # Machine State
//
// A Machine owns 4KB of memory with the built-in font at FontStart, sixteen
// 8-bit registers V0-VF, the index register I, the program counter, a 16 entry
// return stack, the delay and sound timers, the 16 key keypad and a packed
// 64x32 monochrome framebuffer. All state is reachable through read-only
// accessors; it is only mutated by Step and the host setters LoadProgram,
// SetKeys, SetKeysMask, TickTimers, SetQuirks and SetTimerMode.
//
// # Quirks
//
// Historical interpreters disagree on a few instructions. Quirks selects the
// behavior of FX55/FX65 (index increment), 8XY1-8XY3 (VF reset), DXYN (wrap or
// clip at the screen edges) and 8XY6/8XYE (shift source register).
//
// # Timers
//
// In TimerCycle mode Step decrements the sound timer on every cycle and the
// delay timer on every DelayDivider-th cycle. In TimerExternal mode the host
// calls TickTimers at 60 Hz instead.
//
// # Errors
//
// Step never panics on malformed programs. Every failure is returned as a
// *CycleError wrapping one of the Err* sentinels, to be matched with
// errors.Is. Work done by the failing instruction before the failure is not
// rolled back and the program counter stays advanced.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. Hosts that render from another
// goroutine must synchronize access themselves, for example by copying
// Framebuffer under a mutex.
//
// # Usage
//
//	m := chip8.New(chip8.DefaultQuirks(), chip8.WithTimerMode(chip8.TimerExternal))
//	m.LoadProgram(rom)
//	for {
//		m.SetKeysMask(keys)
//		if err := m.Run(cyclesPerFrame); err != nil {
//			return err
//		}
//		m.TickTimers(1)
//		draw(m.Framebuffer())
//	}
package chip8
