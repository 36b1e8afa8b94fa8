package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/extraction"
	"github.com/jonathan/resume-dispatch/internal/fetch"
	"github.com/jonathan/resume-dispatch/internal/observability"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var extractJobCmd = &cobra.Command{
	Use:   "extract-job",
	Short: "Extract job information from article text, saved HTML or a URL",
	Long: `Extract job information from one article. Use --text-file for plain text, --html-file
for a saved page or --url to download it. With a file source, --url only sets the article URL.`,
	RunE: runExtractJob,
}

var (
	extractTextFile string
	extractHTMLFile string
	extractURL      string
	extractBrowser  bool
	extractOutput   string
)

func init() {
	extractJobCmd.Flags().StringVar(&extractTextFile, "text-file", "", "Path to article text")
	extractJobCmd.Flags().StringVar(&extractHTMLFile, "html-file", "", "Path to saved article HTML")
	extractJobCmd.Flags().StringVar(&extractURL, "url", "", "Article URL to fetch, or the source URL of a file")
	extractJobCmd.Flags().BoolVar(&extractBrowser, "browser", false, "Render short pages in headless Chrome")
	extractJobCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	rootCmd.AddCommand(extractJobCmd)
}

func runExtractJob(cmd *cobra.Command, _ []string) error {
	if extractTextFile != "" && extractHTMLFile != "" {
		return errors.New("use only one of --text-file and --html-file")
	}
	if extractTextFile == "" && extractHTMLFile == "" && extractURL == "" {
		return errors.New("one of --text-file, --html-file or --url is required")
	}

	var job types.JobInfo
	switch {
	case extractTextFile != "":
		text, err := os.ReadFile(extractTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		job = extraction.Extract(string(text), extractURL)

	case extractHTMLFile != "":
		html, err := os.ReadFile(extractHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		article, err := fetch.ExtractArticle(string(html), extractURL)
		if err != nil {
			return fmt.Errorf("failed to extract article: %w", err)
		}
		job = extraction.ExtractPage(*article, time.Now())

	default:
		fetcher, closeFetcher := newFetcher(cfg, extractBrowser, logger.With().Str("component", "fetch").Logger())
		defer closeFetcher()
		article, err := fetcher.FetchArticle(cmd.Context(), extractURL)
		if err != nil {
			return fmt.Errorf("failed to fetch article: %w", err)
		}
		job = extraction.ExtractPage(*article, time.Now())
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobInfo(&job)
	}
	return writeJSON(cmd, extractOutput, job)
}
