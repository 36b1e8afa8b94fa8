// Package main provides the resume_dispatch CLI and HTTP API server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/config"
	"github.com/jonathan/resume-dispatch/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_dispatch",
	Short: "Extract job postings, tailor résumés and email them",
	Long: "resume_dispatch reads job postings from WeChat articles, tailors an uploaded résumé " +
		"to each posting and emails it to the recruiter, either through its HTTP API or from the command line.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted summaries and debug logs")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		loaded.Log.Level = "debug"
	}
	cfg = loaded
	logger = logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return nil
}

// writeJSON writes v as indented JSON to path, or to the command output when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
