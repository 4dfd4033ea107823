package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gmaps-stays-scraper/models"
)

// CSVWriter writes a snapshot of scraped stays to a CSV file
type CSVWriter struct {
	filePath string
	logger   zerolog.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger zerolog.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// WriteStays writes a slice of stays to the CSV file
func (w *CSVWriter) WriteStays(stays []*models.Stay) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"name", "rating", "total_reviews", "address", "phone", "website",
		"category", "latitude", "longitude", "google_maps_url", "image_urls", "scraped_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range stays {
		row := []string{
			s.Name,
			floatField(s.Rating),
			intField(s.TotalReviews),
			strField(s.Address),
			strField(s.Phone),
			strField(s.Website),
			s.Category,
			floatField(s.Latitude),
			floatField(s.Longitude),
			s.GoogleMapsURL,
			strings.Join(s.ImageURLs, " "),
			s.ScrapedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			w.logger.Error().Err(err).Str("name", s.Name).Msg("failed to write CSV row")
		}
	}

	w.logger.Info().Str("path", w.filePath).Int("rows", len(stays)).Msg("stays written to CSV")
	return nil
}

func strField(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatField(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
