package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikejonesguy/SlimSwagger/internal/cliutil"
	"github.com/mikejonesguy/SlimSwagger/internal/mcpserver"
	"github.com/spf13/pflag"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	EnvFile string
	LogFile string
	Verbose bool
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*pflag.FlagSet, *MCPFlags) {
	fs := pflag.NewFlagSet("mcp", pflag.ContinueOnError)
	fs.SortFlags = false
	flags := &MCPFlags{}

	fs.StringVar(&flags.EnvFile, "env-file", "", "load SLIMSWAGGER_* settings from this file (default: ./.env if present)")
	fs.StringVar(&flags.LogFile, "log-file", "", "write logs to a size-rotated file (default: $"+mcpserver.LogFileEnv+", else stderr)")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")

	fs.Usage = func() {
		out := os.Stderr
		cliutil.Writef(out, "Usage: slimswagger mcp [flags]\n\n")
		cliutil.Writef(out, "Serve the list_operations, list_schemas and slim tools over MCP on stdio.\n")
		cliutil.Writef(out, "Stdout carries the protocol; logs go to stderr or --log-file.\n\n")
		cliutil.Writef(out, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(out, "\nExamples:\n")
		cliutil.Writef(out, "  slimswagger mcp\n")
		cliutil.Writef(out, "  slimswagger mcp --env-file ~/.config/slimswagger.env --log-file /tmp/slimswagger-mcp.log\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command with the provided arguments. It blocks
// until the client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	if err := mcpserver.LoadEnvFile(flags.EnvFile); err != nil {
		return err
	}
	logFile := flags.LogFile
	if logFile == "" {
		logFile = os.Getenv(mcpserver.LogFileEnv)
	}

	logger, closeLog := NewLogger(os.Stderr, LogOptions{File: logFile, Verbose: flags.Verbose})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting MCP server on stdio")
	if err := mcpserver.Run(ctx, mcpserver.Options{Logger: logger}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
