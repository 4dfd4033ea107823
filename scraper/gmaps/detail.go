package gmaps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"gmaps-stays-scraper/models"
	"gmaps-stays-scraper/utils"
)

const (
	panelWaitTimeout = 12 * time.Second
	strategyTimeout  = 5 * time.Second

	maxImageCandidates = 5
	maxImages          = 3
)

// Per-field extraction scripts. Each tries an ordered set of independent
// strategies inside one JS round-trip and returns '' when nothing matched.
const (
	nameScript = `(function () {
	  const h1 = document.querySelector('div[role="main"] h1, h1');
	  if (h1 && h1.textContent.trim()) return h1.textContent.trim();
	  const main = document.querySelector('div[role="main"]');
	  return main ? (main.getAttribute('aria-label') || '') : '';
	})();`

	addressScript = `(function () {
	  const btn = document.querySelector('button[data-item-id="address"]');
	  if (btn) {
	    const label = btn.getAttribute('aria-label');
	    if (label) return label;
	    if (btn.textContent.trim()) return btn.textContent.trim();
	  }
	  const alt = document.querySelector('[data-item-id="address"] .Io6YTe, div[data-tooltip="Copy address"]');
	  return alt ? alt.textContent.trim() : '';
	})();`

	phoneScript = `(function () {
	  const tel = document.querySelector('a[href^="tel:"], button[data-item-id^="phone:tel"]');
	  if (tel) {
	    const href = tel.getAttribute('href') || tel.getAttribute('data-item-id') || '';
	    const m = href.match(/tel:\+?([\d\s\-()]+)/);
	    if (m) return m[0].replace(/^tel:/, '');
	  }
	  const labeled = document.querySelector('button[aria-label^="Phone:"], div[aria-label^="Phone:"]');
	  return labeled ? (labeled.getAttribute('aria-label') || '').replace(/^Phone:\s*/, '') : '';
	})();`

	websiteScript = `(function () {
	  const authority = document.querySelector('a[data-item-id="authority"], a[aria-label^="Website"]');
	  if (authority && authority.href) return authority.href;
	  const links = Array.from(document.querySelectorAll('a[href^="http"]'));
	  for (const a of links) {
	    if (a.href.includes('google.com/maps') || a.href.includes('/maps/')) continue;
	    const text = (a.textContent || '').toLowerCase();
	    if (/website|www\.|\.com|\.in|\.net|\.org/.test(text)) return a.href;
	  }
	  return '';
	})();`

	ratingLabelScript = `(function () {
	  const star = document.querySelector('div[role="main"] span[role="img"], span[aria-label*="stars"]');
	  if (star) {
	    const label = star.getAttribute('aria-label');
	    if (label) return label;
	  }
	  const block = document.querySelector('div.F7nice');
	  return block ? block.textContent.trim() : '';
	})();`

	secondaryRatingScript = `(function () {
	  const r = document.querySelector('.MW4etd');
	  const c = document.querySelector('.UY7F9');
	  return (r ? r.textContent.trim() : '') + ' ' + (c ? c.textContent.trim() : '');
	})();`

	reviewsLabelScript = `(function () {
	  const btn = document.querySelector('button[aria-label*="reviews"], span[aria-label*="reviews"]');
	  return btn ? (btn.getAttribute('aria-label') || '') : '';
	})();`

	imagesScript = `(function () {
	  const urls = [];
	  const imgs = document.querySelectorAll('div[role="main"] img, img[src*="googleusercontent"]');
	  for (const img of imgs) {
	    const src = img.getAttribute('src') || img.getAttribute('data-src') || '';
	    if (src.startsWith('http')) urls.push(src);
	    if (urls.length >= 5) break;
	  }
	  return urls;
	})();`

	panelHTMLScript = `(function () {
	  const main = document.querySelector('div[role="main"]');
	  return main ? main.outerHTML : '';
	})();`
)

// extractStay visits one place URL and recovers whatever fields the page
// gives up. Every strategy swallows its own failure; the only hard error is
// exhausted navigation retries or a record with no identity at all.
func (s *Scraper) extractStay(ctx context.Context, itemURL, category string) (*models.Stay, error) {
	err := utils.Retry(ctx, s.retryCfg, s.logger, func() error {
		return chromedp.Run(ctx,
			chromedp.Navigate(itemURL),
			chromedp.Evaluate(consentScript, nil),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("navigate %s: %w", itemURL, err)
	}

	// A panel that never renders after a successful navigation means "no
	// data extractable", not a navigation failure worth retrying.
	waitCtx, cancelWait := context.WithTimeout(ctx, panelWaitTimeout)
	if waitErr := chromedp.Run(waitCtx, chromedp.WaitVisible(PanelSelector, chromedp.ByQuery)); waitErr != nil {
		s.logger.Debug().Str("url", itemURL).Msg("place panel never rendered")
	}
	cancelWait()

	stay := &models.Stay{
		Category:      category,
		GoogleMapsURL: CanonicalURL(itemURL),
		ScrapedAt:     time.Now(),
	}

	stay.Name = s.extractName(ctx)
	stay.Address = s.extractAddress(ctx)
	stay.Phone = s.extractPhone(ctx)
	stay.Website = s.extractWebsite(ctx)
	stay.Rating, stay.TotalReviews = s.extractRating(ctx)
	stay.Latitude, stay.Longitude = ParseCoordinates(itemURL)
	stay.ImageURLs = s.extractImages(ctx)

	// Last-resort strategies scan the rendered panel HTML statically.
	if stay.TotalReviews == nil || len(stay.ImageURLs) == 0 {
		html := s.evalString(ctx, panelHTMLScript)
		if stay.TotalReviews == nil {
			stay.TotalReviews = scanReviewCount(html)
		}
		if len(stay.ImageURLs) == 0 {
			stay.ImageURLs = scanImages(html, maxImages)
		}
	}

	if !stay.HasIdentity() {
		return nil, fmt.Errorf("neither name nor address recovered")
	}
	if stay.Name == "" {
		stay.Name = models.UnknownName
	}
	return stay, nil
}

func (s *Scraper) extractName(ctx context.Context) string {
	return s.evalString(ctx, nameScript)
}

func (s *Scraper) extractAddress(ctx context.Context) *string {
	raw := s.evalString(ctx, addressScript)
	if addr := stripLabel(raw, "Address"); addr != "" {
		return &addr
	}
	return nil
}

func (s *Scraper) extractPhone(ctx context.Context) *string {
	if phone := s.evalString(ctx, phoneScript); phone != "" {
		return &phone
	}
	return nil
}

func (s *Scraper) extractWebsite(ctx context.Context) *string {
	if site := s.evalString(ctx, websiteScript); site != "" {
		return &site
	}
	return nil
}

func (s *Scraper) extractRating(ctx context.Context) (*float64, *int) {
	rating, reviews := ParseRating(s.evalString(ctx, ratingLabelScript))
	if rating == nil {
		rating, _ = ParseRating(s.evalString(ctx, secondaryRatingScript))
	}
	if reviews == nil {
		reviews = ParseReviewCount(s.evalString(ctx, secondaryRatingScript))
	}
	if reviews == nil {
		reviews = ParseReviewCount(s.evalString(ctx, reviewsLabelScript))
	}
	return rating, reviews
}

func (s *Scraper) extractImages(ctx context.Context) []string {
	evalCtx, cancel := context.WithTimeout(ctx, strategyTimeout)
	defer cancel()

	var urls []string
	if err := chromedp.Run(evalCtx, chromedp.Evaluate(imagesScript, &urls)); err != nil {
		return nil
	}
	if len(urls) > maxImageCandidates {
		urls = urls[:maxImageCandidates]
	}
	if len(urls) > maxImages {
		urls = urls[:maxImages]
	}
	return urls
}

// evalString runs a JS expression with a short timeout, swallowing failure.
func (s *Scraper) evalString(ctx context.Context, script string) string {
	evalCtx, cancel := context.WithTimeout(ctx, strategyTimeout)
	defer cancel()

	var out string
	if err := chromedp.Run(evalCtx, chromedp.Evaluate(script, &out)); err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// scanReviewCount scans rendered panel HTML for a "<n> reviews" phrase.
func scanReviewCount(html string) *int {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return ParseReviewCount(doc.Text())
}

// scanImages pulls image URLs out of rendered panel HTML, in document order.
func scanImages(html string, limit int) []string {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src, _ = sel.Attr("data-src")
		}
		if strings.HasPrefix(src, "http") {
			urls = append(urls, src)
		}
		return len(urls) < maxImageCandidates
	})
	if len(urls) > limit {
		urls = urls[:limit]
	}
	return urls
}
