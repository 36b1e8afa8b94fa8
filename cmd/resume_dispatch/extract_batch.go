package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/extraction"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var extractBatchCmd = &cobra.Command{
	Use:   "extract-batch FILE...",
	Short: "Extract job information from many article text files in parallel",
	Long:  "Extract job information from each text file and write one JSON object per line, in argument order.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtractBatch,
}

var (
	batchConcurrency int
	batchOutput      string
)

// batchLine is one line of extract-batch output.
type batchLine struct {
	File    string        `json:"file"`
	JobInfo types.JobInfo `json:"jobInfo"`
}

func init() {
	extractBatchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", extraction.DefaultBatchLimit, "Maximum files processed at once")
	extractBatchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to output JSON lines file (default stdout)")
	rootCmd.AddCommand(extractBatchCmd)
}

func runExtractBatch(cmd *cobra.Command, args []string) error {
	inputs := make([]extraction.Input, len(args))
	for i, path := range args {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs[i] = extraction.Input{Text: string(text)}
	}

	jobs, err := extraction.ExtractAll(cmd.Context(), inputs, batchConcurrency)
	if err != nil {
		return fmt.Errorf("batch extraction failed: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	found := 0
	for i, job := range jobs {
		if job.ContactEmail != "" {
			found++
		}
		if err := enc.Encode(batchLine{File: args[i], JobInfo: job}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	logger.Info().Int("files", len(args)).Int("with_email", found).Msg("batch extraction complete")
	return nil
}
