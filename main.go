package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gmaps-stays-scraper/config"
	"gmaps-stays-scraper/scraper/gmaps"
	"gmaps-stays-scraper/services"
	"gmaps-stays-scraper/storage"
	"gmaps-stays-scraper/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	// ================== Bootstrap ====================
	_ = godotenv.Load()
	logger := utils.NewLogger(os.Getenv("APP_ENV"))

	logger.Info().Msg("Google Maps Lodging Scraper")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Info().
		Strs("queries", cfg.SearchQueries).
		Int("min_delay_ms", cfg.MinDelayMs).
		Int("max_delay_ms", cfg.MaxDelayMs).
		Int("retries", cfg.MaxRetries).
		Msg("configuration loaded")

	// =================== PostgreSQL Setup ========================================
	pgWriter, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer pgWriter.Close()

	if err := pgWriter.CreateTable(); err != nil {
		return fmt.Errorf("create DB table: %w", err)
	}

	// =============== Scraping ===================================
	scraper := gmaps.New(cfg, logger)
	stays, err := scraper.Scrape()
	if err != nil {
		return fmt.Errorf("scraping failed: %w", err)
	}

	if len(stays) == 0 {
		logger.Warn().Msg("no stays scraped — check your network connection or the Maps page structure")
		return nil
	}

	// =========== Deduplication ======================
	dedup := services.NewDeduplicator(logger)
	unique := dedup.Deduplicate(stays)

	// ========= CSV: snapshot before persistence ===========================
	if cfg.CSVFilePath != "" {
		csvWriter := storage.NewCSVWriter(cfg.CSVFilePath, logger)
		if err := csvWriter.WriteStays(unique); err != nil {
			logger.Error().Err(err).Msg("failed to write CSV snapshot")
			// Non-fatal: continue to DB storage
		}
	}

	// ========= PostgreSQL: store deduplicated records ============
	attempted, err := pgWriter.SaveStays(unique)
	if err != nil {
		return fmt.Errorf("insert into PostgreSQL: %w", err)
	}

	// ==== Summary ============================
	report := services.NewInsightService(logger).Generate(unique)
	services.PrintRunReport(report)

	logger.Info().Int("attempted", attempted).Msg("done, records stored in PostgreSQL table: stays")
	return nil
}
