package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gmaps-stays-scraper/models"

	_ "github.com/lib/pq"
)

// insertChunkSize bounds how many rows go into one transaction.
const insertChunkSize = 50

// PostgresWriter handles storing stays in PostgreSQL
type PostgresWriter struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewPostgresWriter opens the connection, pings it, and hands ownership to
// the caller. The caller opens once, reuses for the run, and closes at exit.
func NewPostgresWriter(connStr string, logger zerolog.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info().Msg("connected to PostgreSQL")
	return &PostgresWriter{db: db, logger: logger}, nil
}

// CreateTable creates the stays table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS stays (
		id              SERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		rating          NUMERIC(3,1),
		total_reviews   INTEGER,
		address         TEXT,
		phone           TEXT,
		website         TEXT,
		category        TEXT,
		latitude        NUMERIC(10,7),
		longitude       NUMERIC(10,7),
		google_maps_url TEXT NOT NULL UNIQUE,
		image_urls      JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at      TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_stays_category ON stays (category);
	CREATE INDEX IF NOT EXISTS idx_stays_rating   ON stays (rating);
	`
	if _, err := w.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	w.logger.Info().Msg("table 'stays' is ready")
	return nil
}

// SaveStays inserts stays in fixed-size chunks, silently skipping rows whose
// canonical URL already exists. Returns the number of rows attempted:
// conflict-ignored rows are indistinguishable without a second query.
func (w *PostgresWriter) SaveStays(stays []*models.Stay) (int, error) {
	attempted := 0
	for start := 0; start < len(stays); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(stays) {
			end = len(stays)
		}
		chunk := stays[start:end]
		if err := w.insertChunk(chunk); err != nil {
			return attempted, err
		}
		attempted += len(chunk)
	}

	w.logger.Info().Int("attempted", attempted).Msg("stays handed to PostgreSQL")
	return attempted, nil
}

func (w *PostgresWriter) insertChunk(chunk []*models.Stay) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO stays (name, rating, total_reviews, address, phone, website,
		                   category, latitude, longitude, google_maps_url, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (google_maps_url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range chunk {
		images := s.ImageURLs
		if images == nil {
			images = []string{}
		}
		imagesJSON, jsonErr := json.Marshal(images)
		if jsonErr != nil {
			w.logger.Warn().Err(jsonErr).Str("name", s.Name).Msg("skipping row, image list not encodable")
			continue
		}

		if _, err = stmt.Exec(
			s.Name,
			s.Rating,
			s.TotalReviews,
			s.Address,
			s.Phone,
			s.Website,
			s.Category,
			s.Latitude,
			s.Longitude,
			s.GoogleMapsURL,
			imagesJSON,
		); err != nil {
			return fmt.Errorf("failed to insert %q: %w", s.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}
