package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// MinContentRunes is the shortest article text accepted from a plain HTTP
// fetch before falling back to browser rendering.
const MinContentRunes = 100

// DefaultRenderTimeout bounds one headless browser render.
const DefaultRenderTimeout = 45 * time.Second

// ShouldUseBrowser reports whether extracted text is too short to hold a
// posting, which usually means the page is rendered by script.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentRunes
}

// Renderer renders a URL to its final HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages with headless Chrome. Chrome or Chromium must
// be installed.
type ChromeRenderer struct {
	Timeout time.Duration
}

// Render navigates to url, waits for the platform's content element and
// returns the page's outer HTML.
func (r ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	logger := zerolog.Ctx(ctx)
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	logger.Debug().Str("url", url).Msg("starting headless browser")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	waitFor := "body"
	if DetectPlatform(url) == PlatformWeChat {
		waitFor = PlatformSelectors(PlatformWeChat).Content[0]
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(waitFor),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug().Int("bytes", len(html)).Msg("rendered page")
	return html, nil
}
