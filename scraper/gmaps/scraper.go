package gmaps

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"gmaps-stays-scraper/config"
	"gmaps-stays-scraper/models"
	"gmaps-stays-scraper/utils"
)

const runTimeout = 45 * time.Minute

// Scraper drives the whole pipeline against a single browser session:
// one query at a time, one item at a time, no overlapping navigations.
type Scraper struct {
	cfg      *config.Config
	logger   zerolog.Logger
	pacer    *utils.Pacer
	retryCfg utils.RetryConfig
}

// New creates a Scraper from application config.
func New(cfg *config.Config, logger zerolog.Logger) *Scraper {
	retryCfg := utils.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		pacer:    utils.NewPacer(cfg.MinDelayMs, cfg.MaxDelayMs),
		retryCfg: retryCfg,
	}
}

// Scrape is the main entry point. The browser session is released
// unconditionally when it returns, including on error.
func (s *Scraper) Scrape() ([]*models.Stay, error) {
	s.logger.Info().Strs("queries", s.cfg.SearchQueries).Msg("starting Google Maps scraper")

	session, err := NewSession(s.cfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("session launch: %w", err)
	}
	defer session.Close()

	ctx, cancelTimeout := context.WithTimeout(session.Ctx, runTimeout)
	defer cancelTimeout()

	var stays []*models.Stay
	for _, query := range s.cfg.SearchQueries {
		s.pacer.Wait()

		urls, err := s.collectItemURLs(ctx, query)
		if err != nil {
			s.logger.Error().Err(err).Str("query", query).Msg("query failed, moving on")
			continue
		}
		s.logger.Info().Str("query", query).Int("items", len(urls)).Msg("collected item links")
		if len(urls) == 0 {
			continue
		}

		bar := progressbar.Default(int64(len(urls)), query)
		for _, itemURL := range urls {
			s.pacer.Wait()

			stay, err := s.extractStay(ctx, itemURL, query)
			_ = bar.Add(1)
			if err != nil {
				// Item-level failure: skip and keep going.
				s.logger.Warn().Err(err).Str("url", itemURL).Msg("skipping item")
				continue
			}
			stays = append(stays, stay)
		}
		_ = bar.Finish()

		s.logger.Info().Str("query", query).Int("total_so_far", len(stays)).Msg("query done")
	}

	s.logger.Info().Int("total", len(stays)).Msg("scraping complete")
	return stays, nil
}
