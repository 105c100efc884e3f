// Package commands implements the kundenstopper command line.
package commands

import (
	"github.com/spf13/cobra"

	"kundenstopper/internal/app"
	"kundenstopper/internal/config"
	"kundenstopper/internal/logger"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd builds the command tree. Configuration comes from the
// environment and an optional .env file.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kundenstopper",
		Short: "Kundenstopper - PDF display board",
		Long: `Kundenstopper manages a library of uploaded PDF documents and decides
which one a public display shows. Documents older than the retention
window are swept automatically.

Use "kundenstopper [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newServeCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newDocumentsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// bootstrap loads configuration and assembles the application.
func bootstrap(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New(logger.NewWriter(cfg.Log), cfg.Location(), cfg.Log.Level)
	return app.New(cmd.Context(), cfg, log)
}
