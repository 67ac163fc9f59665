// Package cli implements the command-line interface.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
	"github.com/meridian-labs/stratagem-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired by main before Execute. Commands check for nil and
// fail with a configuration error, which keeps the package testable
// without a full engine.
var (
	ingestService   driving.IngestService
	askService      driving.AskService
	documentService driving.DocumentService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "stratagem",
	Short: "Strategic decision engine for business documents",
	Long: `Stratagem ingests business documents, classifies and indexes them,
and answers strategic questions with citations grounded in the indexed corpus.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetServices wires the driving services consumed by the commands.
func SetServices(ingest driving.IngestService, ask driving.AskService, docs driving.DocumentService) {
	ingestService = ingest
	askService = ask
	documentService = docs
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command under a context cancelled by SIGINT or
// SIGTERM, so in-flight provider calls stop when the user interrupts.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
