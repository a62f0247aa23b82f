package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/lennart-voss/mpy8/internal/lexer"
	"github.com/lennart-voss/mpy8/internal/parser"
)

// parseCmd mirrors original_source/micro-py/src/main.rs's Parse
// branch: print source, tokens, and AST without compiling.
var parseCmd = &cobra.Command{
	Use:   "parse <input>",
	Short: "parse a source file and print its tokens and AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]
	fmt.Printf("Parsing %s...\n", input)

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}

	fmt.Println("=== SOURCE ===")
	fmt.Println(string(source))

	fmt.Println("=== TOKENS ===")
	tokens, err := lexer.Tokenize(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil
	}
	for _, tok := range tokens {
		fmt.Printf("%+v\n", tok)
	}

	fmt.Println("=== AST ===")
	program, err := parser.ParseTokens(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil
	}
	spew.Dump(program)

	return nil
}
