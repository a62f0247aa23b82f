package chip8

import (
	"context"
	"time"
)

// DefaultCycleHz is the instruction rate used when a caller doesn't
// override it. Real ROMs are tuned loosely around this figure.
const DefaultCycleHz = 500

// timerHz is fixed by the CHIP-8 spec itself: delay/sound timers
// always decrement at 60Hz regardless of the chosen cycle rate.
const timerHz = 60

// FramePresenter is the windowing layer's half of the driver contract:
// given a fresh pixel buffer, show it. Implementations decide how (or
// whether) to throttle to a display refresh rate; Driver calls Present
// only when the Display actually changed.
type FramePresenter interface {
	Present(buf []uint32)
}

// HostInput is the windowing layer's other half: report which of the
// 16 CHIP-8 keys are currently down, already mapped through the
// host-key table (spec.md §6.3), and whether the host asked to quit.
type HostInput interface {
	Poll() [16]bool
	ShouldQuit() bool
}

// Driver runs a VM against a host window, decoupling the CPU cycle
// rate from the fixed 60Hz timer tick with two independent tickers
// (spec.md §4.5). It depends only on the FramePresenter/HostInput
// interfaces, never on a concrete windowing library, so this package
// stays free of any GUI import.
type Driver struct {
	VM        *VM
	Presenter FramePresenter
	Input     HostInput

	// CycleHz is the instruction execution rate. Zero means DefaultCycleHz.
	CycleHz int
}

// Run drives the VM until ctx is cancelled, the host reports
// ShouldQuit, or the VM halts (00FD).
func (d *Driver) Run(ctx context.Context) {
	cycleHz := d.CycleHz
	if cycleHz <= 0 {
		cycleHz = DefaultCycleHz
	}

	cycleTicker := time.NewTicker(time.Second / time.Duration(cycleHz))
	defer cycleTicker.Stop()
	timerTicker := time.NewTicker(time.Second / timerHz)
	defer timerTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timerTicker.C:
			// The timer ticker is the once-per-frame boundary (spec.md
			// §4.5/§5): host input is polled here, not on every cycle, so
			// all Ex__/Fx0A executions within a frame see one snapshot.
			d.VM.Keyboard.SetStateFromHost(d.Input.Poll())
			if _, waiting := d.VM.WaitingForKey(); waiting {
				if key, ok := d.VM.Keyboard.FirstPressed(); ok {
					d.VM.ResolveWaitingKey(key)
				}
			}
			d.VM.UpdateTimers()
			if d.Input.ShouldQuit() {
				return
			}
			d.presentIfDirty()
		case <-cycleTicker.C:
			d.VM.Cycle()
			if !d.VM.Running {
				return
			}
		}
	}
}

func (d *Driver) presentIfDirty() {
	if !d.VM.Display.NeedsRedraw() {
		return
	}
	d.Presenter.Present(d.VM.Display.ToBuffer())
	d.VM.Display.ClearRedraw()
}
