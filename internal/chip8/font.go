package chip8

// FontStart is the memory address the built-in hex digit glyphs are
// loaded at. Fx29 and the compiler's Print lowering both depend on
// this layout (see internal/codegen/chip8gen for the compiler side).
const FontStart = 0x050

// fontBytesPerGlyph is the number of rows (bytes) per hex digit glyph.
const fontBytesPerGlyph = 5

// fontSet is the canonical CHIP-8 font, one glyph per hex digit 0-F,
// five bytes each. Carried over byte-for-byte from the teacher's
// internal/pixel.FontSet.
var fontSet = [16 * fontBytesPerGlyph]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0x80, // C
	0xF0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// FontAddress returns the memory address of the glyph for hex digit d.
func FontAddress(d byte) uint16 {
	return FontStart + uint16(d&0x0F)*fontBytesPerGlyph
}
