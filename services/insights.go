package services

import (
	"sort"

	"github.com/rs/zerolog"

	"gmaps-stays-scraper/models"
)

// InsightService computes summary stats from the final dataset
type InsightService struct {
	logger zerolog.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger zerolog.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the run report from a slice of deduplicated stays
func (s *InsightService) Generate(stays []*models.Stay) *models.RunReport {
	report := &models.RunReport{
		StaysByCategory: make(map[string]int),
	}

	if len(stays) == 0 {
		s.logger.Warn().Msg("no stays to generate a report from")
		return report
	}

	var ratingTotal float64
	for _, st := range stays {
		report.TotalStays++

		if st.Rating != nil {
			report.WithRating++
			ratingTotal += *st.Rating
		}
		if st.Website != nil && *st.Website != "" {
			report.WithWebsite++
		}
		if st.Phone != nil && *st.Phone != "" {
			report.WithPhone++
		}
		if st.Category != "" {
			report.StaysByCategory[st.Category]++
		}
	}

	if report.WithRating > 0 {
		report.AverageRating = ratingTotal / float64(report.WithRating)
	}

	// Top 5 highest-rated
	rated := make([]*models.Stay, 0, len(stays))
	for _, st := range stays {
		if st.Rating != nil {
			rated = append(rated, st)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Rating > *rated[j].Rating
	})
	maxTop := 5
	if len(rated) < maxTop {
		maxTop = len(rated)
	}
	report.TopRated = rated[:maxTop]

	return report
}
