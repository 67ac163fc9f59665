package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driving"
)

var (
	uploadLabel string
	uploadJSON  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Ingest documents into the engine",
	Long: `Extracts text from the given files, classifies each document,
splits it into chunks and indexes the chunks for retrieval.

Classification is automatic unless --label names one of:
financial, market_research, internal, general.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadLabel, "label", "l", "auto", "classification label (auto to detect)")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output receipts as JSON")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	receipts := make([]*driving.UploadReceipt, 0, len(args))

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		receipt, err := ingestService.Upload(ctx, filepath.Base(path), data, uploadLabel)
		if err != nil {
			return fmt.Errorf("upload %s failed: %w", path, err)
		}
		receipts = append(receipts, receipt)
	}

	if uploadJSON {
		return outputUploadJSON(cmd, receipts)
	}
	return outputUploadTable(cmd, receipts)
}

func outputUploadJSON(cmd *cobra.Command, receipts []*driving.UploadReceipt) error {
	data, err := json.MarshalIndent(receipts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal receipts: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputUploadTable(cmd *cobra.Command, receipts []*driving.UploadReceipt) error {
	for _, r := range receipts {
		cmd.Printf("%s\n", r.Filename)
		cmd.Printf("  ID:     %s\n", r.DocumentID)
		cmd.Printf("  Label:  %s\n", r.Label)
		cmd.Printf("  Status: %s\n", r.Status)
		if r.Status == domain.IndexCompleted {
			cmd.Printf("  Chunks: %d (%d words, %d chars)\n", r.ChunkCount, r.WordCount, r.CharCount)
		}
		if r.FailReason != "" {
			cmd.Printf("  Reason: %s\n", r.FailReason)
		}
		cmd.Println()
	}

	cmd.Printf("Processed %d file(s)\n", len(receipts))
	return nil
}
