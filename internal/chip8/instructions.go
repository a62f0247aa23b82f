package chip8

// execute decodes opcode into nibbles (a, b, c, d), a 12-bit address
// nnn, an 8-bit immediate kk, and a 4-bit n, then dispatches to the
// matching instruction handler (spec.md §4.1's authoritative table).
// Unknown patterns are reported via a RuntimeNotice; PC has already
// been advanced past the instruction, so execution continues from the
// next one.
func (vm *VM) execute(opcode uint16) {
	a := (opcode & 0xF000) >> 12
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	n := opcode & 0x000F
	nnn := opcode & 0x0FFF
	kk := byte(opcode & 0x00FF)

	switch a {
	case 0x0:
		switch opcode {
		case 0x00E0:
			vm.op00E0()
		case 0x00EE:
			vm.op00EE()
		case 0x00FD:
			vm.op00FD()
		default:
			vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0x0___ instruction")
		}
	case 0x1:
		vm.op1nnn(nnn)
	case 0x2:
		vm.op2nnn(nnn)
	case 0x3:
		vm.op3xkk(x, kk)
	case 0x4:
		vm.op4xkk(x, kk)
	case 0x5:
		if n == 0 {
			vm.op5xy0(x, y)
		} else {
			vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0x5xy_ instruction")
		}
	case 0x6:
		vm.op6xkk(x, kk)
	case 0x7:
		vm.op7xkk(x, kk)
	case 0x8:
		vm.execute8xyN(opcode, x, y, n)
	case 0x9:
		if n == 0 {
			vm.op9xy0(x, y)
		} else {
			vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0x9xy_ instruction")
		}
	case 0xA:
		vm.opAnnn(nnn)
	case 0xB:
		vm.opBnnn(nnn)
	case 0xD:
		vm.opDxyn(x, y, n)
	case 0xE:
		switch kk {
		case 0x9E:
			vm.opEx9E(x)
		case 0xA1:
			vm.opExA1(x)
		default:
			vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0xEx__ instruction")
		}
	case 0xF:
		vm.executeFxNN(opcode, x, kk)
	default:
		vm.notify(NoticeUnknownOpcode, opcode, "unrecognized instruction family")
	}
}

func (vm *VM) op00E0() {
	vm.Display.Clear()
}

func (vm *VM) op00EE() {
	if vm.SP == 0 {
		vm.notify(NoticeStackUnderflow, 0x00EE, "RET with empty call stack")
		return
	}
	vm.SP--
	vm.PC = vm.stack[vm.SP]
}

func (vm *VM) op00FD() {
	vm.Running = false
}

func (vm *VM) op1nnn(nnn uint16) {
	vm.PC = nnn
}

func (vm *VM) op2nnn(nnn uint16) {
	if vm.SP == stackDepth {
		vm.notify(NoticeStackOverflow, 0x2000|nnn, "CALL with full call stack")
		return
	}
	vm.stack[vm.SP] = vm.PC
	vm.SP++
	vm.PC = nnn
}

func (vm *VM) op3xkk(x uint16, kk byte) {
	if vm.V[x] == kk {
		vm.PC += 2
	}
}

func (vm *VM) op4xkk(x uint16, kk byte) {
	if vm.V[x] != kk {
		vm.PC += 2
	}
}

func (vm *VM) op5xy0(x, y uint16) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

func (vm *VM) op6xkk(x uint16, kk byte) {
	vm.V[x] = kk
}

func (vm *VM) op7xkk(x uint16, kk byte) {
	vm.V[x] += kk // byte addition wraps mod 256; VF untouched
}

// execute8xyN dispatches the classic ALU family. The compiler backend
// only ever emits 8xy0/8xy4/8xy5/8xy7, but an interpreter has to decode and
// execute the full family for arbitrary ROMs (spec.md §4.1). For every
// variant the destination register is written before VF, per spec.
func (vm *VM) execute8xyN(opcode uint16, x, y, n uint16) {
	switch n {
	case 0x0:
		vm.V[x] = vm.V[y]
	case 0x1:
		vm.V[x] |= vm.V[y]
	case 0x2:
		vm.V[x] &= vm.V[y]
	case 0x3:
		vm.V[x] ^= vm.V[y]
	case 0x4:
		sum := uint16(vm.V[x]) + uint16(vm.V[y])
		vm.V[x] = byte(sum)
		if sum > 0xFF {
			vm.V[0xF] = 1
		} else {
			vm.V[0xF] = 0
		}
	case 0x5:
		noBorrow := vm.V[x] >= vm.V[y]
		vm.V[x] = vm.V[x] - vm.V[y]
		if noBorrow {
			vm.V[0xF] = 1
		} else {
			vm.V[0xF] = 0
		}
	case 0x6:
		shiftedOut := vm.V[y] & 0x01
		vm.V[x] = vm.V[y] >> 1
		vm.V[0xF] = shiftedOut
	case 0x7:
		noBorrow := vm.V[y] >= vm.V[x]
		vm.V[x] = vm.V[y] - vm.V[x]
		if noBorrow {
			vm.V[0xF] = 1
		} else {
			vm.V[0xF] = 0
		}
	case 0xE:
		shiftedOut := (vm.V[y] >> 7) & 0x01
		vm.V[x] = vm.V[y] << 1
		vm.V[0xF] = shiftedOut
	default:
		vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0x8xy_ instruction")
	}
}

func (vm *VM) op9xy0(x, y uint16) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

func (vm *VM) opAnnn(nnn uint16) {
	vm.I = nnn
}

func (vm *VM) opBnnn(nnn uint16) {
	vm.PC = uint16(vm.V[0]) + nnn
}

// opDxyn draws an 8-bit wide, n-row sprite from memory[I:I+n] at
// (Vx, Vy), setting VF on collision (spec.md §4.1's Dxyn, §3.2).
func (vm *VM) opDxyn(x, y, n uint16) {
	height := int(n)
	start := int(vm.I)
	end := start + height
	if end > MemorySize {
		end = MemorySize
	}
	sprite := vm.memory[start:end]
	collision := vm.Display.DrawSprite(vm.V[x], vm.V[y], sprite)
	if collision {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

func (vm *VM) opEx9E(x uint16) {
	if vm.Keyboard.IsPressed(vm.V[x] & 0x0F) {
		vm.PC += 2
	}
}

func (vm *VM) opExA1(x uint16) {
	if !vm.Keyboard.IsPressed(vm.V[x] & 0x0F) {
		vm.PC += 2
	}
}

func (vm *VM) executeFxNN(opcode uint16, x uint16, kk byte) {
	switch kk {
	case 0x07:
		vm.V[x] = vm.DelayTimer
	case 0x0A:
		reg := byte(x)
		vm.waitingForKey = &reg
	case 0x15:
		vm.DelayTimer = vm.V[x]
	case 0x18:
		vm.SoundTimer = vm.V[x]
	case 0x29:
		vm.I = FontAddress(vm.V[x] & 0x0F)
	case 0x33:
		v := vm.V[x]
		vm.memory[vm.I] = v / 100
		vm.memory[vm.I+1] = (v / 10) % 10
		vm.memory[vm.I+2] = v % 10
	case 0x55:
		for i := uint16(0); i <= x; i++ {
			vm.memory[vm.I+i] = vm.V[i]
		}
	case 0x65:
		for i := uint16(0); i <= x; i++ {
			vm.V[i] = vm.memory[vm.I+i]
		}
	default:
		vm.notify(NoticeUnknownOpcode, opcode, "unrecognized 0xFx__ instruction")
	}
}
