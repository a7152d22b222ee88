package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the engine as MCP tools (simulate, convert, equal, closure) so AI agents
can run automata. The library is published as the automata://library resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := logging.New(slog.LevelInfo)
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		opts := engineOptions(cmd)
		engine, err := cli.NewEngine(opts, logger)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		store, closeStore, err := cli.OpenStore(ctx, storeOptions(cmd, engine.Profile().Lambda))
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(engine, store)

		switch transport {
		case "stdio":
			slog.Info("Starting automata MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
		case "sse":
			slog.Info("Starting automata MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
		default:
			return fmt.Errorf("unknown transport %q (expected stdio or sse)", transport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio|sse)")
	mcpCmd.Flags().Int("port", 8080, "Port for SSE transport")
	addStoreFlags(mcpCmd)
}
