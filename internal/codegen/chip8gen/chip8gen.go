// Package chip8gen lowers a micro-Python ast.Program to CHIP-8 machine
// code: a single-pass emitter with a forward-jump patch table,
// grounded in the original implementation's backends::chip8 module.
package chip8gen

import (
	"github.com/lennart-voss/mpy8/internal/ast"
	"github.com/lennart-voss/mpy8/internal/chip8"
	"github.com/lennart-voss/mpy8/internal/codegen"
	"github.com/lennart-voss/mpy8/internal/compileerr"
)

func init() {
	codegen.Register(codegen.Descriptor{
		Name:        "chip8",
		Description: "CHIP-8 virtual machine",
		New:         func() codegen.Backend { return New() },
	})
}

// baseAddress is the virtual address the first emitted byte lands at.
const baseAddress uint16 = 0x200

// scratchRegister is VE, reserved for comparisons and for-loop bounds.
const scratchRegister = 0xE

// flagRegister is VF, the ALU/collision flag register.
const flagRegister = 0xF

// patch is a deferred rewrite of a jump placeholder. An empty label
// means "patch to the final current_address at program finalization"
// (the original's collective end-of-program patch behavior); a
// non-empty label is resolved as soon as that Label statement compiles,
// or falls back to end-of-program if the label is never defined.
type patch struct {
	placeholderAddr uint16
	label           string
}

// Backend is the CHIP-8 code generator. It carries its own emission
// state; nothing is shared across Backend instances.
type Backend struct {
	code           []byte
	currentAddress uint16
	labels         map[string]uint16
	patches        []patch

	// notices accumulates non-fatal diagnostics from the last Compile
	// call (spec.md §7's RuntimeNotice taxonomy, SPEC_FULL.md §10.3's
	// NoticePatchOutOfBounds), surfaced to callers via Notices.
	notices []chip8.Notice
}

// Notices returns the non-fatal diagnostics accumulated by the most
// recent Compile call — currently only out-of-bounds patch targets,
// which are reported and skipped rather than aborting compilation
// (spec.md §4.4, §7).
func (b *Backend) Notices() []chip8.Notice {
	return b.notices
}

// New returns a Backend ready to compile a Program.
func New() *Backend {
	return &Backend{
		currentAddress: baseAddress,
		labels:         make(map[string]uint16),
	}
}

// Compile lowers program to a flat CHIP-8 opcode byte stream, ending
// in the custom 00FD halt, with every forward jump patched.
func (b *Backend) Compile(program ast.Program) ([]byte, error) {
	for _, stmt := range program.Statements {
		if err := b.compileStatement(stmt); err != nil {
			return nil, err
		}
	}

	b.emit(0x00FD)

	for _, p := range b.patches {
		b.patchJump(p.placeholderAddr, b.currentAddress)
	}

	return b.code, nil
}

func (b *Backend) compileStatement(stmt ast.Statement) error {
	switch stmt.Kind {
	case ast.Pass:
		return nil
	case ast.Assign:
		return b.compileAssign(stmt.AssignTarget, stmt.AssignValue)
	case ast.Print:
		return b.compilePrint(stmt.PrintX, stmt.PrintY, stmt.PrintChar)
	case ast.ClearScreen:
		b.emit(0x00E0)
		return nil
	case ast.Label:
		b.resolveLabel(stmt.Name)
		return nil
	case ast.Jump:
		return b.compileJump(stmt.Name)
	case ast.While:
		return b.compileWhile(stmt.Condition, stmt.Then)
	case ast.For:
		return b.compileFor(stmt.ForVariable, stmt.ForStart, stmt.ForEnd, stmt.Then)
	default:
		return compileerr.New(compileerr.KindBackend, "statement kind %d not implemented", stmt.Kind)
	}
}

func (b *Backend) compileAssign(target string, value ast.Expression) error {
	switch value.Kind {
	case ast.ExprNumber:
		reg, err := parseRegister(target)
		if err != nil {
			return err
		}
		b.emit(0x6000 | uint16(reg)<<8 | value.Number)
		return nil
	case ast.ExprVariable:
		regDst, err := parseRegister(target)
		if err != nil {
			return err
		}
		regSrc, err := parseRegister(value.Variable)
		if err != nil {
			return err
		}
		b.emit(0x8000 | uint16(regDst)<<8 | uint16(regSrc)<<4)
		return nil
	case ast.ExprBinaryOp:
		return b.compileBinaryOp(target, *value.Left, *value.Right, value.Op)
	default:
		return compileerr.New(compileerr.KindBackend, "unsupported assignment value shape")
	}
}

// compileBinaryOp implements the lowering templates spec.md §4.4
// documents: only ADD over a variable+number, number+variable, or
// variable+variable pair. Anything else, including every other
// operator (subtract/multiply/or/and/xor) and two numeric operands,
// is an explicit BackendError rather than a silent miscompile.
func (b *Backend) compileBinaryOp(target string, left, right ast.Expression, op ast.BinaryOperator) error {
	if op != ast.Add {
		return compileerr.New(compileerr.KindBackend, "operator %d not implemented in the chip8 backend", op)
	}

	regTarget, err := parseRegister(target)
	if err != nil {
		return err
	}

	switch {
	case left.Kind == ast.ExprVariable && right.Kind == ast.ExprNumber:
		regLeft, err := parseRegister(left.Variable)
		if err != nil {
			return err
		}
		b.emit(0x8000 | uint16(regTarget)<<8 | uint16(regLeft)<<4) // Vtarget = Vleft
		b.emit(0x7000 | uint16(regTarget)<<8 | right.Number)       // Vtarget += n
		return nil
	case left.Kind == ast.ExprNumber && right.Kind == ast.ExprVariable:
		regRight, err := parseRegister(right.Variable)
		if err != nil {
			return err
		}
		b.emit(0x6000 | uint16(regTarget)<<8 | left.Number)          // Vtarget = n
		b.emit(0x8004 | uint16(regTarget)<<8 | uint16(regRight)<<4) // Vtarget += Vright (carry into VF)
		return nil
	case left.Kind == ast.ExprVariable && right.Kind == ast.ExprVariable:
		regLeft, err := parseRegister(left.Variable)
		if err != nil {
			return err
		}
		regRight, err := parseRegister(right.Variable)
		if err != nil {
			return err
		}
		b.emit(0x8000 | uint16(regTarget)<<8 | uint16(regLeft)<<4)
		b.emit(0x8004 | uint16(regTarget)<<8 | uint16(regRight)<<4)
		return nil
	default:
		return compileerr.New(compileerr.KindBackend, "unsupported binary operand shape")
	}
}

func (b *Backend) compilePrint(x, y ast.Expression, character rune) error {
	digit, err := hexDigit(character)
	if err != nil {
		return err
	}
	regX, err := registerOperand(x)
	if err != nil {
		return err
	}
	regY, err := registerOperand(y)
	if err != nil {
		return err
	}

	b.emit(0xA000 | chip8.FontAddress(digit)) // I = font glyph address
	b.emit(0xD000 | uint16(regX)<<8 | uint16(regY)<<4 | 5)
	return nil
}

func (b *Backend) compileJump(label string) error {
	if addr, ok := b.labels[label]; ok {
		b.emit(0x1000 | addr)
		return nil
	}
	placeholder := b.emitJumpPlaceholder()
	b.patches = append(b.patches, patch{placeholderAddr: placeholder, label: label})
	return nil
}

// resolveLabel records a label's address and immediately patches any
// jump placeholders that were waiting on it.
func (b *Backend) resolveLabel(name string) {
	b.labels[name] = b.currentAddress

	remaining := b.patches[:0]
	for _, p := range b.patches {
		if p.label == name {
			b.patchJump(p.placeholderAddr, b.currentAddress)
			continue
		}
		remaining = append(remaining, p)
	}
	b.patches = remaining
}

func (b *Backend) compileWhile(cond ast.Condition, body []ast.Statement) error {
	if cond.Kind == ast.CondTrue {
		loopStart := b.currentAddress
		for _, stmt := range body {
			if err := b.compileStatement(stmt); err != nil {
				return err
			}
		}
		b.emit(0x1000 | loopStart)
		return nil
	}

	checkAddr := b.currentAddress
	if err := b.compileCondition(cond); err != nil {
		return err
	}
	exitPlaceholder := b.emitJumpPlaceholder()
	b.patches = append(b.patches, patch{placeholderAddr: exitPlaceholder})

	for _, stmt := range body {
		if err := b.compileStatement(stmt); err != nil {
			return err
		}
	}
	b.emit(0x1000 | checkAddr)

	b.patchJump(exitPlaceholder, b.currentAddress)
	b.removePatch(exitPlaceholder)
	return nil
}

func (b *Backend) compileFor(variable string, start, end ast.Expression, body []ast.Statement) error {
	regCounter, err := parseRegister(variable)
	if err != nil {
		return err
	}

	if err := b.compileAssign(variable, start); err != nil {
		return err
	}

	loopStart := b.currentAddress

	switch end.Kind {
	case ast.ExprNumber:
		b.emit(0x6000 | uint16(scratchRegister)<<8 | end.Number)
	case ast.ExprVariable:
		regEnd, err := parseRegister(end.Variable)
		if err != nil {
			return err
		}
		b.emit(0x8000 | uint16(scratchRegister)<<8 | uint16(regEnd)<<4)
	default:
		return compileerr.New(compileerr.KindBackend, "complex for-loop end expressions are not supported")
	}

	b.emit(0x8007 | uint16(scratchRegister)<<8 | uint16(regCounter)<<4) // VE = Vcounter - VE, VF=1 if no borrow (counter >= end); counter untouched
	b.emit(0x4000 | uint16(flagRegister)<<8 | 0x01)                    // skip exit-jump if VF != 1 (counter < end)
	exitPlaceholder := b.emitJumpPlaceholder()

	for _, stmt := range body {
		if err := b.compileStatement(stmt); err != nil {
			return err
		}
	}

	b.emit(0x7001 | uint16(regCounter)<<8) // Vcounter += 1
	b.emit(0x1000 | loopStart)

	b.patchJump(exitPlaceholder, b.currentAddress)
	return nil
}

// compileCondition emits the skip half of the "skip-then-jump"
// inversion pattern: the skip passes over the next instruction when
// cond is true. The caller (compileWhile) emits the unconditional jump
// placeholder right after it, so that jump is taken only when cond is
// false.
func (b *Backend) compileCondition(cond ast.Condition) error {
	switch cond.Kind {
	case ast.CondTrue:
		return nil
	case ast.CondEqual:
		return b.compileEqualityCheck(cond.Left, cond.Right, false)
	case ast.CondNotEqual:
		return b.compileEqualityCheck(cond.Left, cond.Right, true)
	case ast.CondGreater:
		return b.compileGreaterCheck(cond.Left, cond.Right)
	case ast.CondLess, ast.CondKeyPressed:
		return compileerr.New(compileerr.KindBackend, "condition kind %d is not implemented by the chip8 backend", cond.Kind)
	default:
		return compileerr.New(compileerr.KindBackend, "unknown condition kind %d", cond.Kind)
	}
}

// compileEqualityCheck emits 3xkk/5xy0 (skip when equal) or, with
// invert set, 4xkk/9xy0 (skip when not-equal), so that the subsequent
// unconditional jump placeholder is only taken when the condition is
// false.
func (b *Backend) compileEqualityCheck(left, right ast.Expression, invert bool) error {
	switch {
	case left.Kind == ast.ExprVariable && right.Kind == ast.ExprNumber:
		reg, err := parseRegister(left.Variable)
		if err != nil {
			return err
		}
		if !invert {
			b.emit(0x3000 | uint16(reg)<<8 | right.Number) // skip if Vx == n
		} else {
			b.emit(0x4000 | uint16(reg)<<8 | right.Number) // skip if Vx != n
		}
	case left.Kind == ast.ExprVariable && right.Kind == ast.ExprVariable:
		regLeft, err := parseRegister(left.Variable)
		if err != nil {
			return err
		}
		regRight, err := parseRegister(right.Variable)
		if err != nil {
			return err
		}
		if !invert {
			b.emit(0x5000 | uint16(regLeft)<<8 | uint16(regRight)<<4) // skip if Vx == Vy
		} else {
			b.emit(0x9000 | uint16(regLeft)<<8 | uint16(regRight)<<4) // skip if Vx != Vy
		}
	default:
		return compileerr.New(compileerr.KindBackend, "complex equality comparisons are not supported")
	}
	return nil
}

// compileGreaterCheck implements spec.md §4.4's Greater template,
// which is a documented approximation: it tests Vx >= n, not strict
// Vx > n (§9(a); implemented verbatim, not "fixed").
func (b *Backend) compileGreaterCheck(left, right ast.Expression) error {
	if left.Kind != ast.ExprVariable || right.Kind != ast.ExprNumber {
		return compileerr.New(compileerr.KindBackend, "complex greater comparisons are not supported")
	}
	regLeft, err := parseRegister(left.Variable)
	if err != nil {
		return err
	}

	b.emit(0x6000 | uint16(scratchRegister)<<8 | right.Number)          // VE = n
	b.emit(0x8005 | uint16(regLeft)<<8 | uint16(scratchRegister)<<4)    // Vx -= VE, VF=1 if Vx >= n
	b.emit(0x3000 | uint16(flagRegister)<<8 | 0x01)                    // skip (fall through to body) if VF == 1
	return nil
}

func (b *Backend) emit(instruction uint16) {
	b.code = append(b.code, byte(instruction>>8), byte(instruction))
	b.currentAddress += 2
}

func (b *Backend) emitJumpPlaceholder() uint16 {
	addr := b.currentAddress
	b.emit(0x1000)
	return addr
}

// patchJump rewrites the placeholder at placeholderAddr to jump to
// target. Out-of-bounds placeholders are reported via a
// NoticePatchOutOfBounds and skipped rather than panicking, matching
// original_source/micro-py/src/backends/chip8.rs's own bounds check
// (it eprintln!s a warning and continues rather than aborting).
func (b *Backend) patchJump(placeholderAddr, target uint16) {
	index := int(placeholderAddr - baseAddress)
	if index < 0 || index+1 >= len(b.code) {
		b.notices = append(b.notices, chip8.Notice{
			Kind:    chip8.NoticePatchOutOfBounds,
			Opcode:  0x1000 | target,
			PC:      placeholderAddr,
			Message: "jump placeholder address falls outside the compiled code buffer",
		})
		return
	}
	instruction := 0x1000 | target
	b.code[index] = byte(instruction >> 8)
	b.code[index+1] = byte(instruction)
}

func (b *Backend) removePatch(placeholderAddr uint16) {
	remaining := b.patches[:0]
	for _, p := range b.patches {
		if p.placeholderAddr != placeholderAddr {
			remaining = append(remaining, p)
		}
	}
	b.patches = remaining
}

// parseRegister validates a register mnemonic v0..vF and returns its index.
func parseRegister(name string) (byte, error) {
	if len(name) != 2 || (name[0] != 'v' && name[0] != 'V') {
		return 0, compileerr.New(compileerr.KindUnknownRegister, "unknown register: %s", name)
	}
	digit := name[1]
	var value byte
	switch {
	case digit >= '0' && digit <= '9':
		value = digit - '0'
	case digit >= 'a' && digit <= 'f':
		value = digit - 'a' + 10
	case digit >= 'A' && digit <= 'F':
		value = digit - 'A' + 10
	default:
		return 0, compileerr.New(compileerr.KindUnknownRegister, "unknown register: %s", name)
	}
	return value, nil
}

func registerOperand(expr ast.Expression) (byte, error) {
	if expr.Kind != ast.ExprVariable {
		return 0, compileerr.New(compileerr.KindBackend, "draw coordinates must be registers")
	}
	return parseRegister(expr.Variable)
}

func hexDigit(character rune) (byte, error) {
	switch {
	case character >= '0' && character <= '9':
		return byte(character - '0'), nil
	case character >= 'A' && character <= 'F':
		return byte(character-'A') + 10, nil
	case character >= 'a' && character <= 'f':
		return byte(character-'a') + 10, nil
	default:
		return 0, compileerr.New(compileerr.KindBackend, "unsupported character: %q", character)
	}
}
