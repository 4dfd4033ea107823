package services

import (
	"strings"

	"github.com/rs/zerolog"

	"gmaps-stays-scraper/models"
	"gmaps-stays-scraper/scraper/gmaps"
)

// Deduplicator collapses the in-memory result set before persistence.
type Deduplicator struct {
	logger zerolog.Logger
}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator(logger zerolog.Logger) *Deduplicator {
	return &Deduplicator{logger: logger}
}

// Deduplicate runs two passes over the accumulated stays: first keyed by
// canonical URL, then by the case-insensitive name+address pair. The first
// occurrence wins in both passes and first-seen order is preserved.
// Records with neither a name nor an address are dropped outright.
func (d *Deduplicator) Deduplicate(stays []*models.Stay) []*models.Stay {
	byURL := make(map[string]struct{}, len(stays))
	pass1 := make([]*models.Stay, 0, len(stays))
	for _, s := range stays {
		if s == nil || !s.HasIdentity() {
			continue
		}
		key := gmaps.CanonicalURL(s.GoogleMapsURL)
		if key == "" {
			key = nameAddressKey(s)
		}
		if _, dup := byURL[key]; dup {
			continue
		}
		byURL[key] = struct{}{}
		pass1 = append(pass1, s)
	}

	byNameAddr := make(map[string]struct{}, len(pass1))
	out := make([]*models.Stay, 0, len(pass1))
	for _, s := range pass1 {
		key := nameAddressKey(s)
		if _, dup := byNameAddr[key]; dup {
			continue
		}
		byNameAddr[key] = struct{}{}
		out = append(out, s)
	}

	d.logger.Info().Int("in", len(stays)).Int("out", len(out)).Msg("deduplicated stays")
	return out
}

func nameAddressKey(s *models.Stay) string {
	addr := ""
	if s.Address != nil {
		addr = *s.Address
	}
	return strings.ToLower(strings.TrimSpace(s.Name)) + "|" + strings.ToLower(strings.TrimSpace(addr))
}
