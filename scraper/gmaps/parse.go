package gmaps

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	coordsRegex       = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	decimalRegex      = regexp.MustCompile(`\d+(?:\.\d+)?`)
	reviewsRegex      = regexp.MustCompile(`(?i)([\d,]+)\s*reviews?`)
	parenReviewsRegex = regexp.MustCompile(`\(([\d,]+)\)`)
)

// CanonicalURL strips the query string and fragment from a place URL,
// yielding the stable identity key used for deduplication and storage.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// ParseCoordinates recovers latitude/longitude from the @lat,lng segment of
// a place URL. Both are nil when the segment is absent.
func ParseCoordinates(raw string) (*float64, *float64) {
	m := coordsRegex.FindStringSubmatch(raw)
	if len(m) < 3 {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(m[1], 64)
	lng, errLng := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLng != nil {
		return nil, nil
	}
	return &lat, &lng
}

// ParseRating pulls a 0–5 rating and a review count out of label text like
// "4.2 · 120 reviews" or "4.2 stars 120 Reviews". Either value is nil when
// its pattern is missing.
func ParseRating(text string) (*float64, *int) {
	var rating *float64
	if m := decimalRegex.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil && v >= 0 && v <= 5 {
			rating = &v
		}
	}
	return rating, ParseReviewCount(text)
}

// ParseReviewCount finds a review count in text, either as "<n> reviews" or
// as a bare parenthesized number ("(120)").
func ParseReviewCount(text string) *int {
	m := reviewsRegex.FindStringSubmatch(text)
	if len(m) < 2 {
		m = parenReviewsRegex.FindStringSubmatch(text)
	}
	if len(m) < 2 {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// stripLabel removes a leading label phrase ("Address:") and surrounding
// whitespace, including the icon glyphs Maps prepends to panel rows.
func stripLabel(s, label string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, label)
	return strings.TrimFunc(s, func(r rune) bool {
		// Maps prepends icon glyphs from the Unicode private use area.
		return r == ' ' || r == ':' || (r >= '\ue000' && r <= '\uf8ff')
	})
}
