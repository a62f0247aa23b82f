package chip8

// ScreenWidth and ScreenHeight are the CHIP-8 monochrome grid
// dimensions (spec.md §3.2).
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the 64x32 monochrome pixel grid. It owns no timing of its
// own; it is mutated synchronously by 00E0 and Dxyn (spec.md §4.2).
type Display struct {
	pixels      [ScreenHeight][ScreenWidth]bool
	needsRedraw bool
}

func newDisplay() Display {
	return Display{needsRedraw: true}
}

// Clear zeros every pixel and marks the display for redraw.
func (d *Display) Clear() {
	d.pixels = [ScreenHeight][ScreenWidth]bool{}
	d.needsRedraw = true
}

// NeedsRedraw reports whether the display has changed since the last
// ClearRedraw call.
func (d *Display) NeedsRedraw() bool {
	return d.needsRedraw
}

// ClearRedraw clears the needs-redraw flag once a frame has been
// presented.
func (d *Display) ClearRedraw() {
	d.needsRedraw = false
}

// DrawSprite XORs an 8-bit-wide, len(sprite)-row sprite into the grid
// at (x, y), wrapping the origin and every drawn pixel modulo the grid
// dimensions (spec.md §3.2, §9(c): wrap chosen over clip, matching the
// original implementation). Returns true iff any bit turned an
// on-pixel off (a collision).
func (d *Display) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false
	x0 := int(x) % ScreenWidth
	y0 := int(y) % ScreenHeight

	for row, b := range sprite {
		py := (y0 + row) % ScreenHeight
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>uint(bit)) == 0 {
				continue
			}
			px := (x0 + bit) % ScreenWidth
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	d.needsRedraw = true
	return collision
}

// ToBuffer packs the grid into a presentation-friendly row-major buffer:
// 0xFFFFFF for an on pixel, 0x000000 for off. This is the pixel-buffer
// contract the external windowing layer consumes (spec.md §4.2).
func (d *Display) ToBuffer() []uint32 {
	buf := make([]uint32, ScreenWidth*ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if d.pixels[y][x] {
				buf[y*ScreenWidth+x] = 0xFFFFFF
			}
		}
	}
	return buf
}

// DebugString renders the grid as a text block, one line per row,
// '#' for on and ' ' for off. Optional; useful for headless debugging.
func (d *Display) DebugString() string {
	out := make([]byte, 0, (ScreenWidth+1)*ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if d.pixels[y][x] {
				out = append(out, '#')
			} else {
				out = append(out, ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
