package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/observability"
	"github.com/jonathan/resume-dispatch/internal/types"
)

// Files written next to the customized résumé.
const (
	coverLetterFile = "cover_letter.txt"
	emailFile       = "email.txt"
)

var customizeCmd = &cobra.Command{
	Use:   "customize",
	Short: "Tailor a résumé to a job and write the results to a directory",
	Long: `Tailor a résumé file to a job (JSON as printed by extract-job) and write the customized
résumé, the cover letter and the email subject and body into --out.`,
	RunE: runCustomize,
}

var (
	customizeResume string
	customizeJob    string
	customizeOut    string
)

func init() {
	customizeCmd.Flags().StringVar(&customizeResume, "resume", "", "Path to the résumé file (required)")
	customizeCmd.Flags().StringVar(&customizeJob, "job", "", "Path to the job JSON file (required)")
	customizeCmd.Flags().StringVar(&customizeOut, "out", ".", "Output directory")
	rootCmd.AddCommand(customizeCmd)
}

func runCustomize(cmd *cobra.Command, _ []string) error {
	if customizeResume == "" || customizeJob == "" {
		return errors.New("--resume and --job are required")
	}

	sections, text, err := readResume(customizeResume)
	if err != nil {
		return err
	}
	resume := &types.ResumeData{
		ID:             uuid.New().String(),
		FileName:       filepath.Base(customizeResume),
		RawText:        text,
		ParsedSections: sections,
		UploadedAt:     time.Now().UTC(),
	}

	raw, err := os.ReadFile(customizeJob)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobInfo
	if err := json.Unmarshal(raw, &job); err != nil {
		return fmt.Errorf("failed to parse job JSON: %w", err)
	}

	customizer, closeCustomizer, err := newCustomizer(cmd.Context(), cfg, nil, logger.With().Str("component", "customize").Logger())
	if err != nil {
		return err
	}
	defer closeCustomizer()

	customized, err := customizer.Customize(cmd.Context(), resume, &job)
	if err != nil {
		return fmt.Errorf("failed to customize résumé: %w", err)
	}

	if err := os.MkdirAll(customizeOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	files := map[string]string{
		customized.CustomizedFileName: customized.CustomizedText,
		coverLetterFile:               customized.CoverLetter,
		emailFile:                     customized.EmailSubject + "\n\n" + customized.EmailBody,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(customizeOut, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCustomized(customized)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (strategy: %s)\n",
		filepath.Join(customizeOut, customized.CustomizedFileName), customized.Strategy)
	return nil
}
