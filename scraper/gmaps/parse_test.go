package gmaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantLat float64
		wantLng float64
		wantNil bool
	}{
		{
			name:    "standard place URL",
			url:     "https://www.google.com/maps/place/Some+Stay/@8.734,76.703,14z/data=!3m1",
			wantLat: 8.734,
			wantLng: 76.703,
		},
		{
			name:    "negative coordinates",
			url:     "https://www.google.com/maps/place/X/@-33.8675,151.207,12z",
			wantLat: -33.8675,
			wantLng: 151.207,
		},
		{
			name:    "no coordinate segment",
			url:     "https://www.google.com/maps/place/Some+Stay/data=!3m1",
			wantNil: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantNil: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lat, lng := ParseCoordinates(tc.url)
			if tc.wantNil {
				assert.Nil(t, lat)
				assert.Nil(t, lng)
				return
			}
			require.NotNil(t, lat)
			require.NotNil(t, lng)
			assert.InDelta(t, tc.wantLat, *lat, 1e-9)
			assert.InDelta(t, tc.wantLng, *lng, 1e-9)
		})
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantRating  float64
		wantReviews int
		noRating    bool
		noReviews   bool
	}{
		{name: "dot-separated label", text: "4.2 · 120 reviews", wantRating: 4.2, wantReviews: 120},
		{name: "star label", text: "4.8 stars 2,345 Reviews", wantRating: 4.8, wantReviews: 2345},
		{name: "rating only", text: "3.9", wantRating: 3.9, noReviews: true},
		{name: "no digits", text: "No ratings yet", noRating: true, noReviews: true},
		{name: "empty", text: "", noRating: true, noReviews: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rating, reviews := ParseRating(tc.text)
			if tc.noRating {
				assert.Nil(t, rating)
			} else {
				require.NotNil(t, rating)
				assert.InDelta(t, tc.wantRating, *rating, 1e-9)
			}
			if tc.noReviews {
				assert.Nil(t, reviews)
			} else {
				require.NotNil(t, reviews)
				assert.Equal(t, tc.wantReviews, *reviews)
			}
		})
	}
}

func TestParseReviewCountParenthesized(t *testing.T) {
	n := ParseReviewCount("(1,204)")
	require.NotNil(t, n)
	assert.Equal(t, 1204, *n)

	assert.Nil(t, ParseReviewCount("()"))
	assert.Nil(t, ParseReviewCount("nothing here"))
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips query string",
			in:   "https://www.google.com/maps/place/X/@8.7,76.7,14z?authuser=0&hl=en",
			want: "https://www.google.com/maps/place/X/@8.7,76.7,14z",
		},
		{
			name: "strips fragment",
			in:   "https://www.google.com/maps/place/X#section",
			want: "https://www.google.com/maps/place/X",
		},
		{
			name: "already canonical",
			in:   "https://www.google.com/maps/place/X",
			want: "https://www.google.com/maps/place/X",
		},
		{
			name: "whitespace trimmed",
			in:   "  https://www.google.com/maps/place/X  ",
			want: "https://www.google.com/maps/place/X",
		},
		{name: "empty", in: "", want: ""},
		{name: "unparseable returned as-is", in: "://not-a-url", want: "://not-a-url"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanonicalURL(tc.in))
		})
	}
}

func TestStripLabel(t *testing.T) {
	assert.Equal(t, "123 Beach Rd, Varkala", stripLabel("Address: 123 Beach Rd, Varkala", "Address"))
	assert.Equal(t, "123 Beach Rd", stripLabel("  Address:123 Beach Rd", "Address"))
	assert.Equal(t, "plain text", stripLabel("plain text", "Address"))
	assert.Equal(t, "", stripLabel("", "Address"))
}
