package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd returns the caller's installed mpy8 version. Carried over
// from the teacher's own cmd/version.go, unchanged in spirit.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the currently installed mpy8 version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}
