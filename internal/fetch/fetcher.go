package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/types"
)

// Fetcher downloads article pages, optionally through a cache and with a
// headless browser fallback.
type Fetcher struct {
	options  *Options
	cache    Cache
	cacheTTL time.Duration
	renderer Renderer
	logger   zerolog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithOptions sets the HTTP options.
func WithOptions(o *Options) FetcherOption {
	return func(f *Fetcher) { f.options = o }
}

// WithCache caches fetched HTML for ttl. A zero ttl uses DefaultCacheTTL.
func WithCache(c Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		if ttl > 0 {
			f.cacheTTL = ttl
		}
	}
}

// WithRenderer enables the browser fallback for pages that yield too little
// text over plain HTTP.
func WithRenderer(r Renderer) FetcherOption {
	return func(f *Fetcher) { f.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher returns a Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		options:  DefaultOptions(),
		cacheTTL: DefaultCacheTTL,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchHTML returns the HTML of url, from the cache when present. Cache
// failures are logged and otherwise ignored.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		html, ok, err := f.cache.Get(ctx, url)
		if err != nil {
			f.logger.Warn().Err(err).Str("url", url).Msg("page cache read failed")
		}
		if ok {
			f.logger.Debug().Str("url", url).Msg("page cache hit")
			return html, nil
		}
	}

	result, err := URL(ctx, url, f.options)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, url, result.HTML, f.cacheTTL); err != nil {
			f.logger.Warn().Err(err).Str("url", url).Msg("page cache write failed")
		}
	}
	return result.HTML, nil
}

// FetchArticle fetches url and extracts its article. When the text is too
// short and a renderer is configured, the page is rendered and extracted
// again; the longer result wins.
func (f *Fetcher) FetchArticle(ctx context.Context, url string) (*types.Article, error) {
	html, err := f.FetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}
	article, err := ExtractArticle(html, url)
	if err != nil {
		return nil, err
	}
	f.logger.Debug().Str("url", url).Str("platform", string(DetectPlatform(url))).
		Int("chars", len(article.Text)).Msg("extracted article")

	if f.renderer == nil || !ShouldUseBrowser(article.Text) {
		return article, nil
	}

	f.logger.Info().Str("url", url).Msg("article text too short, rendering with browser")
	rendered, err := f.renderer.Render(f.logger.WithContext(ctx), url)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", url).Msg("browser fallback failed")
		return article, nil
	}
	full, err := ExtractArticle(rendered, url)
	if err != nil || len(full.Text) <= len(article.Text) {
		return article, nil
	}
	return full, nil
}
