// Package pixel is the windowing/frame-presentation adapter: it
// implements chip8.FramePresenter and chip8.HostInput on top of
// github.com/faiface/pixel, and plays the VM's one-shot beep event
// through github.com/faiface/beep. Grounded in the teacher's own
// internal/pixel package, generalized from a gfx-array/pixelgl.Button
// polling loop to the packed-uint32/[16]bool contract
// internal/chip8.Driver expects.
package pixel

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/lennart-voss/mpy8/internal/chip8"
)

const (
	winCellsX     float64 = chip8.ScreenWidth
	winCellsY     float64 = chip8.ScreenHeight
	screenWidth   float64 = 1024
	screenHeight  float64 = 768
	beepSampleHz          = 44100
	beepFrequency         = 440
	beepDuration          = 80 * time.Millisecond
)

// hostKeyMap is the fixed physical-key -> CHIP-8 hex-key table, spec.md
// §6.3, carried over from the teacher's internal/pixel.Window.KeyMap
// but keyed the opposite direction (hex key -> host button) since
// that's how the teacher built it and Poll needs exactly that lookup.
var hostKeyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window embeds a pixelgl window and implements chip8.FramePresenter
// and chip8.HostInput, so internal/chip8.Driver can run against it
// without importing pixel itself.
type Window struct {
	*pixelgl.Window

	speakerReady bool
}

// NewWindow creates and configures a pixelgl window sized for the
// CHIP-8 64x32 grid, scaled up for visibility, matching the teacher's
// own window bounds.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "mpy8",
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "error creating new window")
	}
	return &Window{Window: w}, nil
}

// Present implements chip8.FramePresenter: it draws the packed
// pixel-buffer contract (0xFFFFFF on, 0x000000 off) from
// chip8.Display.ToBuffer, translating the teacher's gfx-array imdraw
// loop to the row-major uint32 buffer the Driver hands it.
func (w *Window) Present(buf []uint32) {
	w.Clear(colornames.Black)
	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := screenWidth/winCellsX, screenHeight/winCellsY

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if buf[y*chip8.ScreenWidth+x] == 0 {
				continue
			}
			// The CHIP-8 grid's row 0 is the top; pixel's Y axis grows
			// upward, so row y is drawn at screen row (ScreenHeight-1-y),
			// same flip the teacher's DrawGraphics performs.
			flippedY := chip8.ScreenHeight - 1 - y
			draw.Push(pixel.V(cellW*float64(x), cellH*float64(flippedY)))
			draw.Push(pixel.V(cellW*float64(x)+cellW, cellH*float64(flippedY)+cellH))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w)
	w.Update()
}

// Poll implements chip8.HostInput: it returns the 16 CHIP-8 keys'
// pressed state for this frame, mapped through hostKeyMap, standing in
// for the teacher's HandleKeyInput.
func (w *Window) Poll() [16]bool {
	var pressed [16]bool
	for hexKey, button := range hostKeyMap {
		pressed[hexKey] = w.Pressed(button)
	}
	return pressed
}

// ShouldQuit implements chip8.HostInput: the window closed or Escape
// was pressed, per spec.md §4.5's termination conditions.
func (w *Window) ShouldQuit() bool {
	return w.Closed() || w.Pressed(pixelgl.KeyEscape)
}

// Beep plays a short sine-wave tone, wired to chip8.VM.OnBeep (spec.md
// §3.1's one-shot beep event on SoundTimer crossing to 0). Grounded in
// the teacher's go.mod dependency on faiface/beep, which the teacher
// itself pulls in but never calls from Go code (its "maybe handle
// beeps here" comment in main.go) — this is the one place in the repo
// that actually exercises it.
func (w *Window) Beep() {
	tone, err := generators.SinTone(beep.SampleRate(beepSampleHz), beepFrequency)
	if err != nil {
		return
	}
	if !w.speakerReady {
		if err := speaker.Init(beep.SampleRate(beepSampleHz), beepSampleHz/10); err != nil {
			return
		}
		w.speakerReady = true
	}
	n := beep.SampleRate(beepSampleHz).N(beepDuration)
	speaker.Play(beep.Take(n, tone))
}
