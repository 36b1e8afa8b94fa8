package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/ingestion"
	"github.com/jonathan/resume-dispatch/internal/observability"
	"github.com/jonathan/resume-dispatch/internal/parsing"
	"github.com/jonathan/resume-dispatch/internal/patterns"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract and parse a résumé file into sections",
	Long:  "Read a .pdf, .docx, .doc or .txt résumé and print its parsed sections as JSON.",
	RunE:  runParseResume,
}

var (
	parseResumeFile    string
	parseResumeOutput  string
	parseResumeSection string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeFile, "file", "f", "", "Path to the résumé file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	parseResumeCmd.Flags().StringVar(&parseResumeSection, "section", "", "Print only one section as text (education, experience, skills, projects, summary)")
	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	if parseResumeFile == "" {
		return errors.New("--file is required")
	}
	if parseResumeSection != "" && !slices.Contains(patterns.ResumeSections.Labels(), parseResumeSection) {
		return fmt.Errorf("unknown section %q", parseResumeSection)
	}
	sections, text, err := readResume(parseResumeFile)
	if err != nil {
		return err
	}
	if parseResumeSection != "" {
		return writeSection(cmd, text)
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintParsedSections(&sections)
	}
	return writeJSON(cmd, parseResumeOutput, sections)
}

func writeSection(cmd *cobra.Command, text string) error {
	body, ok := parsing.SectionText(text, parseResumeSection)
	if !ok {
		return fmt.Errorf("section %q not found in résumé", parseResumeSection)
	}
	data := []byte(body + "\n")
	if parseResumeOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(parseResumeOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readResume extracts the text of path and parses it.
func readResume(path string) (types.ParsedSections, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ParsedSections{}, "", fmt.Errorf("failed to read résumé: %w", err)
	}
	name := filepath.Base(path)
	if err := ingestion.CheckUpload(name, int64(len(data))); err != nil {
		return types.ParsedSections{}, "", err
	}
	text, err := ingestion.NewExtractor(logger).Extract(name, data)
	if err != nil {
		return types.ParsedSections{}, "", err
	}
	return parsing.Parse(text), text, nil
}
