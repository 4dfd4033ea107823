package gmaps

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"gmaps-stays-scraper/config"
)

// userAgents is the fixed pool a session picks from at launch.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
}

// stealthScript masks the usual automation signals before any page script runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = window.chrome || { runtime: {} };
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3] });
`

// Session owns the single browser instance used for a run.
type Session struct {
	Ctx    context.Context
	cancel context.CancelFunc
}

// NewSession launches a browser configured with a random user agent, a fixed
// viewport/locale/timezone, the optional upstream proxy, and the stealth init
// script. Launch failure is fatal to the run; there is no retry here.
func NewSession(cfg *config.Config, logger zerolog.Logger) (*Session, error) {
	ua := userAgents[rand.Intn(len(userAgents))]

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.UserAgent(ua),
		chromedp.WindowSize(1366, 768),
	)
	if cfg.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.ProxyURL))
		logger.Info().Str("proxy", cfg.ProxyURL).Msg("routing through upstream proxy")
	} else {
		logger.Info().Msg("no proxy configured, connecting directly")
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}

	// Starting the browser and installing overrides must happen before the
	// first navigation so every document sees the masked environment.
	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetTimezoneOverride("Asia/Kolkata").Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetLocaleOverride().WithLocale("en-US").Do(ctx)
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	logger.Debug().Str("user_agent", ua).Msg("browser session ready")
	return &Session{Ctx: ctx, cancel: cancel}, nil
}

// Close tears the browser down. Safe to call exactly once, always deferred.
func (s *Session) Close() {
	s.cancel()
}
