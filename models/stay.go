package models

import "time"

// UnknownName is the sentinel used when a stay's name could not be recovered
// but the record is still identifiable by its address.
const UnknownName = "Unknown"

// Stay represents one lodging business extracted from Google Maps.
// Optional fields are pointers; nil means the field could not be recovered.
type Stay struct {
	ID            int64
	Name          string
	Rating        *float64 // 0–5 scale
	TotalReviews  *int
	Address       *string
	Phone         *string
	Website       *string
	Category      string // search query that produced the item
	Latitude      *float64
	Longitude     *float64
	GoogleMapsURL string // canonical (query-stripped) detail URL, identity key
	ImageURLs     []string
	ScrapedAt     time.Time
}

// HasIdentity reports whether the record carries enough identifying data
// to be worth keeping. Records with neither a name nor an address are dropped.
func (s *Stay) HasIdentity() bool {
	if s.Name != "" && s.Name != UnknownName {
		return true
	}
	return s.Address != nil && *s.Address != ""
}

// RunReport holds computed summary stats for one scrape run.
type RunReport struct {
	TotalStays      int
	WithRating      int
	WithWebsite     int
	WithPhone       int
	AverageRating   float64
	TopRated        []*Stay
	StaysByCategory map[string]int
}
