package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lennart-voss/mpy8/internal/codegen"
	_ "github.com/lennart-voss/mpy8/internal/codegen/chip8gen" // registers the "chip8" backend
)

// targetsCmd mirrors original_source/micro-py/src/main.rs's Targets
// branch: list every registered backend and its description.
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "list supported backend targets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported targets:")
		for _, d := range codegen.All() {
			fmt.Printf("  %-8s - %s\n", d.Name, d.Description)
		}
	},
}
