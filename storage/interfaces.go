package storage

import "gmaps-stays-scraper/models"

// StaySink stores deduplicated stay records. SaveStays returns the number
// of rows attempted; rows dropped by the sink's conflict policy are not
// distinguished.
type StaySink interface {
	SaveStays(stays []*models.Stay) (int, error)
	Close()
}

// SnapshotWriter writes a flat-file snapshot of the scraped records.
type SnapshotWriter interface {
	WriteStays(stays []*models.Stay) error
}
