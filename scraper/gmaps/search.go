package gmaps

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"gmaps-stays-scraper/utils"
)

const feedWaitTimeout = 15 * time.Second

// feedProber abstracts the scrollable results feed so the scroll loop can be
// exercised without a browser.
type feedProber interface {
	Scroll(ctx context.Context) error
	CountItems(ctx context.Context) (int, error)
	AtEnd(ctx context.Context) (bool, error)
}

// scrollUntilStable scrolls the feed until the explicit end marker appears,
// the item count repeats for `stability` consecutive iterations, or maxIters
// is reached. Returns the last observed item count.
func scrollUntilStable(ctx context.Context, feed feedProber, pause func(), stability, maxIters int) (int, error) {
	lastCount := -1
	streak := 0
	count := 0

	for i := 0; i < maxIters; i++ {
		if err := feed.Scroll(ctx); err != nil {
			return count, fmt.Errorf("scroll results feed: %w", err)
		}
		if pause != nil {
			pause()
		}

		var err error
		count, err = feed.CountItems(ctx)
		if err != nil {
			return count, fmt.Errorf("count feed items: %w", err)
		}

		if count == lastCount {
			streak++
		} else {
			lastCount = count
			streak = 1
		}
		if streak >= stability {
			break
		}

		if end, err := feed.AtEnd(ctx); err == nil && end {
			break
		}
	}
	return count, nil
}

// chromedpFeed drives the real results feed through the browser.
type chromedpFeed struct{}

func (chromedpFeed) Scroll(ctx context.Context) error {
	return chromedp.Run(ctx, chromedp.Evaluate(scrollScript, nil))
}

func (chromedpFeed) CountItems(ctx context.Context) (int, error) {
	var n int
	err := chromedp.Run(ctx, chromedp.Evaluate(countItemsScript, &n))
	return n, err
}

func (chromedpFeed) AtEnd(ctx context.Context) (bool, error) {
	var end bool
	err := chromedp.Run(ctx, chromedp.Evaluate(endOfResultsScript, &end))
	return end, err
}

// collectItemURLs runs one search query and returns the canonical place URLs
// found in the results feed, deduplicated in first-seen order.
func (s *Scraper) collectItemURLs(ctx context.Context, query string) ([]string, error) {
	searchURL := searchBaseURL + url.QueryEscape(query)

	err := utils.Retry(ctx, s.retryCfg, s.logger, func() error {
		return chromedp.Run(ctx,
			chromedp.Navigate(searchURL),
			chromedp.Evaluate(consentScript, nil),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", searchURL, err)
	}

	// Bounded wait for the results feed. A feed that never appears means the
	// query produced nothing extractable, not a failure worth retrying.
	waitCtx, cancelWait := context.WithTimeout(ctx, feedWaitTimeout)
	waitErr := chromedp.Run(waitCtx, chromedp.WaitVisible(FeedSelector, chromedp.ByQuery))
	cancelWait()
	if waitErr != nil {
		s.logger.Warn().Str("query", query).Msg("results feed never appeared, treating as empty")
		return nil, nil
	}

	count, err := scrollUntilStable(ctx, chromedpFeed{}, func() { s.pacer.Wait() },
		s.cfg.ScrollStability, s.cfg.MaxScrollIters)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("scrolling aborted, collecting what rendered")
	}
	s.logger.Debug().Str("query", query).Int("feed_items", count).Msg("results feed stabilized")

	var hrefs []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(collectLinksScript, &hrefs)); err != nil {
		return nil, fmt.Errorf("collect item links: %w", err)
	}
	return dedupeCanonical(hrefs), nil
}

// dedupeCanonical canonicalizes hrefs and drops duplicates, preserving
// first-seen order.
func dedupeCanonical(hrefs []string) []string {
	tracker := utils.NewURLTracker()
	for _, h := range hrefs {
		if h = strings.TrimSpace(h); h == "" {
			continue
		}
		tracker.Add(CanonicalURL(h))
	}
	return tracker.URLs()
}
