package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show engine statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := cmd.Context()

	stats, err := documentService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Engine statistics:")
	cmd.Println()
	cmd.Printf("  Documents: %d\n", stats.Documents)
	for _, label := range domain.Labels() {
		if count := stats.ByLabel[label]; count > 0 {
			cmd.Printf("    %-16s %d\n", string(label)+":", count)
		}
	}
	cmd.Printf("  Vectors:   %d\n", stats.Vectors)
	cmd.Printf("  Queries:   %d\n", stats.Queries)
	cmd.Println()
	cmd.Printf("  Embedding model:  %s%s\n", stats.EmbeddingModel, reachabilityNote(stats.EmbeddingModel, stats.EmbeddingReachable))
	cmd.Printf("  Completion model: %s%s\n", stats.CompletionModel, reachabilityNote(stats.CompletionModel, stats.CompletionReachable))
	return nil
}

// reachabilityNote annotates a configured model that did not answer a ping.
func reachabilityNote(model string, reachable bool) string {
	if model == "" || reachable {
		return ""
	}
	return " (unreachable)"
}
