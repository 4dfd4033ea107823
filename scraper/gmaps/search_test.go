package gmaps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed replays a fixed sequence of item counts, repeating the last one.
type fakeFeed struct {
	counts  []int
	idx     int
	scrolls int
	endAt   int // scroll number at which the end marker appears; 0 disables
}

func (f *fakeFeed) Scroll(context.Context) error {
	f.scrolls++
	return nil
}

func (f *fakeFeed) CountItems(context.Context) (int, error) {
	i := f.idx
	if i >= len(f.counts) {
		i = len(f.counts) - 1
	}
	f.idx++
	return f.counts[i], nil
}

func (f *fakeFeed) AtEnd(context.Context) (bool, error) {
	return f.endAt > 0 && f.scrolls >= f.endAt, nil
}

func TestScrollStopsWhenCountStabilizes(t *testing.T) {
	feed := &fakeFeed{counts: []int{5, 9, 9, 9}}

	count, err := scrollUntilStable(context.Background(), feed, nil, 3, 25)

	require.NoError(t, err)
	assert.Equal(t, 9, count)
	// Counts 5, 9, 9, 9: the streak of identical counts reaches 3 on the
	// fourth iteration, so exactly 4 scrolls happen.
	assert.Equal(t, 4, feed.scrolls)
}

func TestScrollStopsAtIterationCap(t *testing.T) {
	// Count grows forever, so only the cap can stop the loop.
	feed := &fakeFeed{counts: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}

	count, err := scrollUntilStable(context.Background(), feed, nil, 3, 6)

	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, 6, feed.scrolls)
}

func TestScrollStopsAtEndMarker(t *testing.T) {
	feed := &fakeFeed{counts: []int{3, 6, 9, 12}, endAt: 2}

	count, err := scrollUntilStable(context.Background(), feed, nil, 5, 25)

	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, 2, feed.scrolls)
}

func TestDedupeCanonicalCollectsUniqueURLs(t *testing.T) {
	// Nine distinct places, some repeated with differing query strings,
	// mirroring what a stabilized feed hands back.
	hrefs := []string{
		"https://www.google.com/maps/place/P1/@8.7,76.7,14z?authuser=0",
		"https://www.google.com/maps/place/P2/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P1/@8.7,76.7,14z?hl=en",
		"https://www.google.com/maps/place/P3/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P4/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P5/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P2/@8.7,76.7,14z?x=1",
		"https://www.google.com/maps/place/P6/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P7/@8.7,76.7,14z",
		"",
		"https://www.google.com/maps/place/P8/@8.7,76.7,14z",
		"https://www.google.com/maps/place/P9/@8.7,76.7,14z",
	}

	urls := dedupeCanonical(hrefs)

	require.Len(t, urls, 9)
	assert.Equal(t, "https://www.google.com/maps/place/P1/@8.7,76.7,14z", urls[0])
	assert.Equal(t, "https://www.google.com/maps/place/P2/@8.7,76.7,14z", urls[1])
	assert.Equal(t, "https://www.google.com/maps/place/P9/@8.7,76.7,14z", urls[8])
	for _, u := range urls {
		assert.NotContains(t, u, "?")
	}
}
