// Package cmd wires the mpy8 CLI surface (spec.md §6.4's compile/parse/
// targets, plus the teacher's own run/version) as cobra subcommands,
// grounded in the teacher's own cmd/root.go for the command-wiring
// idiom and in original_source/micro-py/src/main.rs for the
// compile/parse/targets behavior itself.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// currentReleaseVersion is printed by the version subcommand.
const currentReleaseVersion = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:   "mpy8 [command]",
	Short: "mpy8 compiles a micro-Python dialect to CHIP-8 and runs it",
	Long:  "mpy8 is a compiler/emulator toolchain: it lowers a small Python-flavored language to CHIP-8 machine code and can run the result.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `mpy8 help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs mpy8 according to the user's command/subcommand/flags.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
