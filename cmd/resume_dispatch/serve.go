package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-dispatch/internal/dispatch"
	"github.com/jonathan/resume-dispatch/internal/server"
	"github.com/jonathan/resume-dispatch/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the /api endpoints used by the browser extension.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if servePort > 0 {
		cfg.Port = servePort
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	blobs, err := openBlobs(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open blob store: %w", err)
	}

	customizer, closeCustomizer, err := newCustomizer(ctx, cfg, blobs, logger.With().Str("component", "customize").Logger())
	if err != nil {
		return err
	}
	defer closeCustomizer()

	opts := []dispatch.Option{
		dispatch.WithBlobStore(blobs),
		dispatch.WithCustomizer(customizer),
		dispatch.WithLogger(logger.With().Str("component", "dispatch").Logger()),
	}
	m, err := newMailer(cfg)
	if err != nil {
		return err
	}
	if m != nil {
		opts = append(opts, dispatch.WithMailer(m))
	} else {
		logger.Warn().Msg("SMTP_USER/SMTP_PASS not set, sending is disabled")
	}
	svc := dispatch.New(st, opts...)

	logger.Info().
		Str("store", cfg.Store.Backend).
		Str("blob", cfg.Blob.Backend).
		Str("strategy", customizer.StrategyName()).
		Bool("mailer", svc.MailerConfigured()).
		Msg("services ready")

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadLimit:    cfg.UploadLimit,
		RateLimit:      ratelimit.NewConfig(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst),
	}, svc, logger.With().Str("component", "server").Logger())

	return srv.Start(ctx)
}
