// latexmcp is an MCP server exposing LaTeX tooling: compilation,
// structural validation, PDF metadata extraction, and auxiliary-file
// cleanup.
package main

import (
	"fmt"
	"os"

	"latexmcp/internal/config"
	"latexmcp/internal/logging"
	"latexmcp/internal/mcp"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "latexmcp",
		Short:        "MCP server for LaTeX compile, validate, PDF info, and cleanup tools",
		SilenceUsage: true,
		// Running without a subcommand serves, so MCP hosts can point
		// at the bare binary.
		RunE: runServe,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the latexmcp version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "latexmcp %s\n", mcp.Version)
		},
	}

	root.AddCommand(serve, version)
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("loading configuration: %w", err)
	}

	srv := mcp.NewServer(cfg, logger)
	if err := srv.Start(); err != nil {
		logger.Error("Server exited with error", "error", err)
		return err
	}
	return nil
}
