package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"

	"github.com/lennart-voss/mpy8/internal/chip8"
	"github.com/lennart-voss/mpy8/internal/pixel"
)

var runCycleHz int

// runCmd loads a ROM, wires a presentation window and audio, and runs
// the driver loop until the window closes, Escape is pressed, or the
// VM halts (00FD). Carried over from the teacher's own cmd/run.go,
// generalized from the teacher's ManageAudio/Run goroutine pair to
// internal/chip8.Driver, and rewired onto pixelgl.Run since window
// creation needs the OS main thread.
var runCmd = &cobra.Command{
	Use:   "run <path/to/rom>",
	Short: "run a compiled ROM in a window",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&runCycleHz, "cycle-hz", chip8.DefaultCycleHz, "instructions executed per second")
}

func runRun(cmd *cobra.Command, args []string) error {
	romPath := args[0]
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", romPath, err)
	}

	vm := chip8.NewVM()
	if err := vm.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom %s: %w", romPath, err)
	}
	vm.OnNotice = func(n chip8.Notice) {
		fmt.Fprintln(os.Stderr, n.String())
	}

	// pixelgl needs the OS main thread to create and drive a window,
	// so the whole run happens inside the callback pixelgl.Run hands
	// control to.
	var runErr error
	pixelgl.Run(func() {
		win, err := pixel.NewWindow()
		if err != nil {
			runErr = err
			return
		}
		vm.OnBeep = win.Beep

		driver := &chip8.Driver{
			VM:        vm,
			Presenter: win,
			Input:     win,
			CycleHz:   runCycleHz,
		}
		driver.Run(context.Background())
	})
	return runErr
}
