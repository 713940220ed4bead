package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"multireasoner/internal/backend"
	"multireasoner/internal/config"
	"multireasoner/internal/files"
	"multireasoner/internal/logging"
	"multireasoner/internal/prompt"
)

var (
	askBackend string
	askDepth   string
	askMode    string
	askFiles   []string
	askTimeout int
	askAll     bool
)

var askCmd = &cobra.Command{
	Use:   "ask <input>",
	Short: "Ask a reasoning backend a question from the shell",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askBackend, "backend", "b", "", "Backend to consult (chatgpt, gemini)")
	askCmd.Flags().StringVarP(&askDepth, "depth", "d", "", "Reasoning depth (low, medium, high)")
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "Output mode (memo, bullets, questions, quick)")
	askCmd.Flags().StringSliceVarP(&askFiles, "file", "f", nil, "File to attach (repeatable)")
	askCmd.Flags().IntVar(&askTimeout, "timeout", 0, "Per-backend timeout in seconds")
	askCmd.Flags().BoolVar(&askAll, "all", false, "Query all backends in parallel (consensus)")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	logging.Init(slog.LevelWarn, "text")

	chatgptB, geminiB, err := configuredBackends()
	if err != nil {
		return err
	}

	depth := strings.TrimSpace(askDepth)
	if depth == "" {
		if v, ok := config.GetConfig("defaults.depth"); ok {
			depth = strings.TrimSpace(v)
		}
	}
	if depth == "" {
		depth = backend.DepthHigh
	}

	mode := strings.TrimSpace(askMode)
	if mode == "" {
		if v, ok := config.GetConfig("defaults.mode"); ok {
			mode = strings.TrimSpace(v)
		}
	}
	if mode == "" {
		mode = prompt.DefaultMode
	}

	timeout := configuredTimeout()
	if askTimeout > 0 {
		timeout = time.Duration(askTimeout) * time.Second
	}

	blocks, readErrs := files.Read(askFiles)
	req := backend.Request{
		Prompt:  prompt.Build(args[0], mode, blocks, readErrs),
		Depth:   depth,
		Timeout: timeout,
	}

	ctx := cmd.Context()

	if askAll {
		results := backend.FanOut(ctx, []backend.Backend{chatgptB, geminiB}, req)
		combined, err := backend.Combine(results)
		if err != nil {
			return fmt.Errorf("all backends failed: %s", err)
		}
		fmt.Println(combined)
		return nil
	}

	name := strings.TrimSpace(askBackend)
	if name == "" {
		name = backend.DefaultName()
	}
	b, ok := backend.Get(name)
	if !ok {
		return fmt.Errorf("unknown backend %q (have: %s)", name, strings.Join(backend.Names(), ", "))
	}

	res := backend.Invoke(ctx, b, req)
	if !res.OK {
		return errors.New(res.Reason)
	}
	fmt.Println(res.Answer)
	return nil
}
