package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/blob"
	"github.com/jonathan/resume-dispatch/internal/config"
	"github.com/jonathan/resume-dispatch/internal/customize"
	"github.com/jonathan/resume-dispatch/internal/fetch"
	"github.com/jonathan/resume-dispatch/internal/llm"
	"github.com/jonathan/resume-dispatch/internal/mailer"
	"github.com/jonathan/resume-dispatch/internal/store"
)

func openStore(ctx context.Context, c config.Config) (store.Store, error) {
	switch c.Store.Backend {
	case config.StorePostgres:
		pg, err := store.ConnectPostgres(ctx, c.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	case config.StoreRedis:
		rs, err := store.ConnectRedis(ctx, c.Store.RedisAddr, c.Store.RedisPassword, c.Store.RedisDB)
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return store.NewMemory(), nil
	}
}

func openBlobs(ctx context.Context, c config.Config) (blob.Store, error) {
	if c.Blob.Backend == config.BlobMinIO {
		ms, err := blob.NewMinIOStore(ctx, blob.MinIOConfig{
			Endpoint:  c.Blob.MinIOEndpoint,
			AccessKey: c.Blob.MinIOAccessKey,
			SecretKey: c.Blob.MinIOSecretKey,
			Bucket:    c.Blob.MinIOBucket,
			UseSSL:    c.Blob.MinIOUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	ls, err := blob.NewLocalStore(c.Blob.Dir)
	if err != nil {
		return nil, err
	}
	return ls, nil
}

// newCustomizer uses the Gemini strategy when an API key is configured. The
// returned close func releases the model client.
func newCustomizer(ctx context.Context, c config.Config, blobs blob.Store, log zerolog.Logger) (*customize.Customizer, func(), error) {
	opts := []customize.Option{customize.WithLogger(log)}
	if blobs != nil {
		opts = append(opts, customize.WithBlobStore(blobs))
	}
	if c.GeminiAPIKey == "" {
		return customize.New(opts...), func() {}, nil
	}

	client, err := llm.NewGeminiClient(ctx, nil, c.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	opts = append(opts, customize.WithStrategy(customize.NewAIStrategy(client, llm.TierStandard)))
	return customize.New(opts...), func() { _ = client.Close() }, nil
}

func smtpConfig(c config.Config) mailer.SMTPConfig {
	return mailer.SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Secure:   c.SMTP.IsSecure(),
		User:     c.SMTP.User,
		Pass:     c.SMTP.Pass,
		From:     c.SMTP.From,
		FromName: c.SMTP.FromName,
	}
}

// newMailer returns nil when SMTP credentials are not configured.
func newMailer(c config.Config) (mailer.Mailer, error) {
	sc := smtpConfig(c)
	if !sc.Enabled() {
		return nil, nil
	}
	return mailer.NewSMTPMailer(sc)
}

// newFetcher caches pages in Redis when an address is configured and
// renders short pages in Chrome when browser is set.
func newFetcher(c config.Config, browser bool, log zerolog.Logger) (*fetch.Fetcher, func()) {
	opts := []fetch.FetcherOption{fetch.WithLogger(log)}
	closeFn := func() {}
	if c.Store.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
		})
		opts = append(opts, fetch.WithCache(fetch.NewRedisCache(client), fetch.DefaultCacheTTL))
		closeFn = func() { _ = client.Close() }
	}
	if browser || c.UseBrowser {
		opts = append(opts, fetch.WithRenderer(&fetch.ChromeRenderer{Timeout: fetch.DefaultRenderTimeout}))
	}
	return fetch.NewFetcher(opts...), closeFn
}
