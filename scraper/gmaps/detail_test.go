package gmaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReviewCount(t *testing.T) {
	html := `<div role="main">
		<h1>Sea View Resort</h1>
		<span>4.3</span> · <span>1,204 reviews</span>
	</div>`

	n := scanReviewCount(html)
	require.NotNil(t, n)
	assert.Equal(t, 1204, *n)

	assert.Nil(t, scanReviewCount(`<div>no numbers here</div>`))
	assert.Nil(t, scanReviewCount(""))
}

func TestScanImages(t *testing.T) {
	html := `<div role="main">
		<img src="https://lh3.example.com/a.jpg">
		<img data-src="https://lh3.example.com/b.jpg">
		<img src="/relative/ignored.jpg">
		<img src="https://lh3.example.com/c.jpg">
		<img src="https://lh3.example.com/d.jpg">
		<img src="https://lh3.example.com/e.jpg">
	</div>`

	urls := scanImages(html, maxImages)

	require.Len(t, urls, 3)
	assert.Equal(t, "https://lh3.example.com/a.jpg", urls[0])
	assert.Equal(t, "https://lh3.example.com/b.jpg", urls[1])
	assert.Equal(t, "https://lh3.example.com/c.jpg", urls[2])
}

func TestScanImagesEmptyPanel(t *testing.T) {
	assert.Nil(t, scanImages("", maxImages))
	assert.Empty(t, scanImages(`<div role="main"><p>no photos</p></div>`, maxImages))
}
