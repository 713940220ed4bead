package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"multireasoner/internal/backend"
	_ "multireasoner/internal/backend/codex"
	_ "multireasoner/internal/backend/gemini"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List reasoning backends and their availability",
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	names := backend.Names()
	if len(names) == 0 {
		fmt.Println("No backends registered")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tAVAILABLE\tDETAIL")
	fmt.Fprintln(writer, "----\t---------\t------")

	for _, name := range names {
		available := "yes"
		detail := ""
		instance, ok := backend.Get(name)
		if !ok {
			continue
		}
		if err := instance.CheckAvailable(); err != nil {
			available = "no"
			detail = err.Error()
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", name, available, detail)
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Println("")
	fmt.Println("Usage: multireasoner ask --backend <name> \"your question\"")
	return nil
}
