package cmd

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"multireasoner/internal/config"
	"multireasoner/internal/logging"
	mcpserver "multireasoner/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the chatgpt, gemini, and
consensus reasoning tools. The server monitors for parent process death and
self-terminates when the client disconnects, so no zombie server lingers.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	level := slog.LevelInfo
	chatgptB, geminiB, err := configuredBackends()
	if err != nil {
		return err
	}
	if v, ok := config.GetConfig("logging.level"); ok {
		level = logging.ParseLevel(v)
	}
	logging.Init(level, "text")

	srv := mcpserver.NewServer(chatgptB, geminiB)
	srv.Timeout = configuredTimeout()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting multireasoner MCP server over stdio")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
