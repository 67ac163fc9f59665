package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
)

var (
	askTopK   int
	askFilter string
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a strategic question",
	Long: `Retrieves the most relevant document passages and composes a
cited strategic analysis answering the question.

Use --filter to restrict retrieval to one classification label.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, "number of passages to retrieve")
	askCmd.Flags().StringVarP(&askFilter, "filter", "f", "all", "classification label filter")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	ctx := cmd.Context()
	opts := driving.AskOptions{
		TopK:        askTopK,
		LabelFilter: askFilter,
	}

	result, err := askService.Ask(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}
	return outputAskText(cmd, result)
}

func outputAskJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, result *domain.QueryResult) error {
	cmd.Println(result.Answer.Text)
	cmd.Println()

	if len(result.Answer.Citations) > 0 {
		cmd.Println("Sources:")
		for _, c := range result.Answer.Citations {
			cmd.Printf("  - %s\n", c)
		}
	}

	cmd.Printf("Confidence: %.2f (%d passage(s) used)\n",
		result.Answer.Confidence, result.Answer.ChunksUsed)
	return nil
}
