package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "multireasoner",
	Short:   "Multi-backend reasoning assistant",
	Long:    "Multireasoner consults independent AI backends (Codex CLI, Gemini API)\nfor qualitative reasoning, individually or in parallel consensus.",
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
