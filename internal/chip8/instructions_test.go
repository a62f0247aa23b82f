package chip8

import "testing"

func TestOpcode00E0ClearsDisplay(t *testing.T) {
	vm := NewVM()
	vm.Display.pixels[0][0] = true
	vm.Display.pixels[10][10] = true
	loadInstruction(vm, ProgramStart, 0x00E0)

	vm.Cycle()

	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if vm.Display.pixels[y][x] {
				t.Fatalf("pixel (%d,%d) still set after CLS", x, y)
			}
		}
	}
}

func TestOpcode1nnnJump(t *testing.T) {
	vm := NewVM()
	loadInstruction(vm, ProgramStart, 0x1400)

	vm.Cycle()

	if vm.PC != 0x400 {
		t.Errorf("PC should be 0x400, got %#x", vm.PC)
	}
}

func TestOpcode3xkkSkipsWhenEqual(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0x42
	loadInstruction(vm, ProgramStart, 0x3042)

	vm.Cycle()

	if vm.PC != ProgramStart+4 {
		t.Errorf("PC should skip to %#x, got %#x", ProgramStart+4, vm.PC)
	}
}

func TestOpcode3xkkNoSkipWhenNotEqual(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0x41
	loadInstruction(vm, ProgramStart, 0x3042)

	vm.Cycle()

	if vm.PC != ProgramStart+2 {
		t.Errorf("PC should be %#x, got %#x", ProgramStart+2, vm.PC)
	}
}

func TestOpcode7xkkWrapsOnOverflow(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0xFF
	loadInstruction(vm, ProgramStart, 0x7002)

	vm.Cycle()

	if vm.V[0] != 0x01 {
		t.Errorf("V0 should wrap to 0x01, got %#x", vm.V[0])
	}
}

func TestOpcode8xy4AddSetsCarry(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0xFF
	vm.V[1] = 0x02
	loadInstruction(vm, ProgramStart, 0x8014)

	vm.Cycle()

	if vm.V[0] != 0x01 {
		t.Errorf("V0 should be 0x01, got %#x", vm.V[0])
	}
	if vm.V[0xF] != 1 {
		t.Errorf("VF should be 1, got %d", vm.V[0xF])
	}
}

func TestOpcode8xy4AddNoCarry(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0x01
	vm.V[1] = 0x02
	loadInstruction(vm, ProgramStart, 0x8014)

	vm.Cycle()

	if vm.V[0] != 0x03 || vm.V[0xF] != 0 {
		t.Errorf("V0=%#x VF=%d, want V0=0x03 VF=0", vm.V[0], vm.V[0xF])
	}
}

func TestOpcode8xy5SubBorrow(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0x05
	vm.V[1] = 0x10
	loadInstruction(vm, ProgramStart, 0x8015)

	vm.Cycle()

	if vm.V[0] != 0xF5 {
		t.Errorf("V0 should wrap to 0xF5, got %#x", vm.V[0])
	}
	if vm.V[0xF] != 0 {
		t.Errorf("VF should be 0 (borrow occurred), got %d", vm.V[0xF])
	}
}

func TestOpcode8xy5SubNoBorrow(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0x10
	vm.V[1] = 0x05
	loadInstruction(vm, ProgramStart, 0x8015)

	vm.Cycle()

	if vm.V[0] != 0x0B || vm.V[0xF] != 1 {
		t.Errorf("V0=%#x VF=%d, want V0=0x0B VF=1", vm.V[0], vm.V[0xF])
	}
}

func TestOpcode8xy6ShiftsVyIntoVx(t *testing.T) {
	vm := NewVM()
	vm.V[1] = 0x03 // 0b011
	loadInstruction(vm, ProgramStart, 0x8016)

	vm.Cycle()

	if vm.V[0] != 0x01 {
		t.Errorf("V0 should be 0x01, got %#x", vm.V[0])
	}
	if vm.V[0xF] != 1 {
		t.Errorf("VF should carry the shifted-out bit (1), got %d", vm.V[0xF])
	}
}

func TestOpcodeAnnnSetsIndex(t *testing.T) {
	vm := NewVM()
	loadInstruction(vm, ProgramStart, 0xA456)

	vm.Cycle()

	if vm.I != 0x456 {
		t.Errorf("I should be 0x456, got %#x", vm.I)
	}
}

func TestOpcodeDxynDrawsAndReportsCollision(t *testing.T) {
	vm := NewVM()
	vm.I = 0x300
	vm.memory[0x300] = 0xFF // one row, all 8 bits on
	loadInstruction(vm, ProgramStart, 0xD001) // draw at (V0,V1), height 1

	vm.Cycle()
	if vm.V[0xF] != 0 {
		t.Errorf("first draw should not collide, VF=%d", vm.V[0xF])
	}

	vm.PC = ProgramStart
	vm.Cycle() // draw again, identical sprite, should collide and erase
	if vm.V[0xF] != 1 {
		t.Errorf("second draw should collide, VF=%d", vm.V[0xF])
	}
}

func TestOpcodeFx29PointsAtFontGlyph(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 0xA
	loadInstruction(vm, ProgramStart, 0xF029)

	vm.Cycle()

	if vm.I != FontAddress(0xA) {
		t.Errorf("I should point at glyph A, got %#x", vm.I)
	}
}

func TestOpcodeFx33BCD(t *testing.T) {
	vm := NewVM()
	vm.V[0] = 123
	vm.I = 0x300
	loadInstruction(vm, ProgramStart, 0xF033)

	vm.Cycle()

	if vm.memory[0x300] != 1 || vm.memory[0x301] != 2 || vm.memory[0x302] != 3 {
		t.Errorf("BCD digits wrong: %d %d %d", vm.memory[0x300], vm.memory[0x301], vm.memory[0x302])
	}
}

func TestOpcodeFx55AndFx65RoundTrip(t *testing.T) {
	vm := NewVM()
	vm.I = 0x300
	vm.V[0] = 0xAA
	vm.V[1] = 0xBB
	vm.V[2] = 0xCC
	loadInstruction(vm, ProgramStart, 0xF255)

	vm.Cycle()
	if vm.memory[0x300] != 0xAA || vm.memory[0x301] != 0xBB || vm.memory[0x302] != 0xCC {
		t.Fatal("Fx55 did not store V0..V2 at I")
	}

	vm2 := NewVM()
	vm2.I = 0x300
	vm2.memory[0x300] = 0xAA
	vm2.memory[0x301] = 0xBB
	vm2.memory[0x302] = 0xCC
	loadInstruction(vm2, ProgramStart, 0xF265)

	vm2.Cycle()
	if vm2.V[0] != 0xAA || vm2.V[1] != 0xBB || vm2.V[2] != 0xCC {
		t.Fatal("Fx65 did not load V0..V2 from I")
	}
}

func TestUnknownOpcodeRecordsNotice(t *testing.T) {
	vm := NewVM()
	loadInstruction(vm, ProgramStart, 0xC0FF) // Cxkk, intentionally unimplemented

	vm.Cycle()

	if len(vm.Notices) != 1 {
		t.Fatalf("expected one notice, got %d", len(vm.Notices))
	}
	if vm.Notices[0].Kind != NoticeUnknownOpcode {
		t.Errorf("expected NoticeUnknownOpcode, got %v", vm.Notices[0].Kind)
	}
}

func TestStackUnderflowRecordsNotice(t *testing.T) {
	vm := NewVM()
	loadInstruction(vm, ProgramStart, 0x00EE)

	vm.Cycle()

	if len(vm.Notices) != 1 || vm.Notices[0].Kind != NoticeStackUnderflow {
		t.Fatalf("expected a stack underflow notice, got %+v", vm.Notices)
	}
}

func TestStackOverflowRecordsNotice(t *testing.T) {
	vm := NewVM()
	vm.SP = stackDepth
	loadInstruction(vm, ProgramStart, 0x2300)

	vm.Cycle()

	if len(vm.Notices) != 1 || vm.Notices[0].Kind != NoticeStackOverflow {
		t.Fatalf("expected a stack overflow notice, got %+v", vm.Notices)
	}
}
