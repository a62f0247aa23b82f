// Package chip8 implements the CHIP-8 execution engine: memory map,
// fetch/decode/execute cycle, display XOR/collision rules, the 60Hz
// timer model, keyboard input latch, and the wait-for-key state. It
// mirrors the layout of the teacher's internal/chip8 package (a single
// VM struct plus an instructions.go holding opcode handlers) while
// implementing the instruction semantics spec.md §4.1 specifies.
package chip8

import (
	"github.com/pkg/errors"
)

// Memory layout constants (spec.md §3.1).
const (
	MemorySize   = 4096
	ProgramStart = 0x200
	stackDepth   = 16
	maxROMSize   = MemorySize - ProgramStart
)

// ErrROMTooLarge is returned by LoadROM when the ROM won't fit in the
// program/data region.
var ErrROMTooLarge = errors.New("rom too large for available memory")

// VM holds all CHIP-8 machine state. It is owned and mutated only by
// itself (via Cycle/UpdateTimers) or by a Driver between cycles,
// per spec.md §5's shared-resource policy.
type VM struct {
	memory [MemorySize]byte

	// V0-VF general purpose registers. VF is the flag register: ALU
	// and draw instructions overwrite it, but user code may read it.
	V [16]byte

	// I is the 16-bit index register; only the low 12 bits address memory.
	I uint16

	// PC is the program counter, 0x200 at reset.
	PC uint16

	stack [stackDepth]uint16
	// SP indexes the next free stack slot, 0..=16.
	SP int

	DelayTimer byte
	SoundTimer byte

	Display  Display
	Keyboard Keyboard

	// waitingForKey is nil when the CPU is not suspended; otherwise it
	// names the register Fx0A will write the next keypress into.
	waitingForKey *byte

	// Running is cleared by the custom 00FD halt opcode.
	Running bool

	// Notices records RuntimeNotice-class diagnostics (spec.md §7): a
	// bounded log of unknown opcodes, stack under/overflow.
	Notices []Notice
	// OnNotice, if set, is invoked synchronously for every notice in
	// addition to being appended to Notices.
	OnNotice func(Notice)

	// OnBeep, if set, is invoked once each time SoundTimer transitions
	// from 1 to 0 (spec.md §3.1's one-shot beep event).
	OnBeep func()
}

// NewVM returns a freshly reset VM with the font set loaded and
// Running true.
func NewVM() *VM {
	vm := &VM{
		PC:      ProgramStart,
		Display: newDisplay(),
		Running: true,
	}
	copy(vm.memory[FontStart:], fontSet[:])
	return vm
}

// LoadROM copies rom into memory starting at ProgramStart. A ROM
// smaller than the available region is allowed; trailing memory is
// left unchanged.
func (vm *VM) LoadROM(rom []byte) error {
	if len(rom) > maxROMSize {
		return errors.Wrapf(ErrROMTooLarge, "rom is %d bytes, max is %d", len(rom), maxROMSize)
	}
	copy(vm.memory[ProgramStart:], rom)
	return nil
}

// WaitingForKey reports whether the CPU is suspended on Fx0A, and if
// so, which register will receive the keypress.
func (vm *VM) WaitingForKey() (reg byte, waiting bool) {
	if vm.waitingForKey == nil {
		return 0, false
	}
	return *vm.waitingForKey, true
}

// ResolveWaitingKey delivers a keypress to the register Fx0A is
// blocked on and resumes the CPU. It is a no-op if the CPU isn't
// waiting. The driver loop is the sole caller of this (spec.md §5).
func (vm *VM) ResolveWaitingKey(key byte) {
	if vm.waitingForKey == nil {
		return
	}
	vm.V[*vm.waitingForKey] = key
	vm.waitingForKey = nil
}

// Cycle performs one fetch/decode/execute step. It is a no-op if the
// VM has halted or is suspended waiting for a key (spec.md §5).
func (vm *VM) Cycle() {
	if !vm.Running || vm.waitingForKey != nil {
		return
	}

	opcode := uint16(vm.memory[vm.PC])<<8 | uint16(vm.memory[vm.PC+1])
	vm.PC += 2
	vm.execute(opcode)
}

// UpdateTimers performs one 60Hz timer tick: each of DelayTimer and
// SoundTimer decrements if positive. Crossing SoundTimer from 1 to 0
// fires OnBeep exactly once.
func (vm *VM) UpdateTimers() {
	if vm.DelayTimer > 0 {
		vm.DelayTimer--
	}
	if vm.SoundTimer > 0 {
		vm.SoundTimer--
		if vm.SoundTimer == 0 && vm.OnBeep != nil {
			vm.OnBeep()
		}
	}
}
