package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/lennart-voss/mpy8/internal/chip8"
	"github.com/lennart-voss/mpy8/internal/codegen"
	_ "github.com/lennart-voss/mpy8/internal/codegen/chip8gen" // registers the "chip8" backend
	"github.com/lennart-voss/mpy8/internal/parser"
)

// noticeSource is implemented by backends that accumulate non-fatal
// diagnostics (spec.md §7's RuntimeNotice taxonomy) during Compile,
// such as chip8gen.Backend's out-of-bounds patch reports.
type noticeSource interface {
	Notices() []chip8.Notice
}

var (
	compileTarget  string
	compileOutput  string
	compileShowAST bool
)

// compileCmd mirrors original_source/micro-py/src/main.rs's Compile
// branch: read, parse, lower, write the ROM, and print a disassembly
// listing.
var compileCmd = &cobra.Command{
	Use:   "compile <input>",
	Short: "compile a source file to a target's machine code",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileTarget, "target", "t", "chip8", "backend target")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output path (default: <input-without-.py>.ch8)")
	compileCmd.Flags().BoolVar(&compileShowAST, "show-ast", false, "print the parsed AST before compiling")
}

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]
	fmt.Printf("Compiling %s for %s...\n", input, compileTarget)

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return err
	}

	if compileShowAST {
		fmt.Println("=== AST ===")
		spew.Dump(program)
	}

	descriptor, ok := codegen.Lookup(compileTarget)
	if !ok {
		return fmt.Errorf("unknown target: %s", compileTarget)
	}

	backend := descriptor.New()
	code, err := backend.Compile(program)
	if err != nil {
		return err
	}
	if ns, ok := backend.(noticeSource); ok {
		for _, n := range ns.Notices() {
			fmt.Fprintln(os.Stderr, "warning:", n.String())
		}
	}

	outputPath := compileOutput
	if outputPath == "" {
		base := strings.TrimSuffix(input, ".py")
		if compileTarget == "chip8" {
			outputPath = base + ".ch8"
		} else {
			outputPath = base + ".bin"
		}
	}

	if err := os.WriteFile(outputPath, code, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("Compiled to: %s\n", outputPath)
	fmt.Printf("Code size: %d bytes\n", len(code))

	fmt.Println("Disassembly:")
	for i := 0; i+1 < len(code); i += 2 {
		instruction := uint16(code[i])<<8 | uint16(code[i+1])
		fmt.Printf("  0x%03X: %04X\n", 0x200+i, instruction)
	}

	return nil
}
