package gmaps

// CSS selectors and JS snippets used across the scraper.
// Google Maps class names churn without notice; keeping them in one place
// makes updates trivial.
const (
	searchBaseURL = "https://www.google.com/maps/search/"

	// Search results page
	FeedSelector     = `div[role="feed"]`
	ItemLinkSelector = `a.hfpxzc`

	// Detail page
	PanelSelector = `div[role="main"]`
)

// consentScript clicks through the consent interstitial Maps shows in some
// regions. A no-op when the dialog is absent.
const consentScript = `(function () {
  const buttons = Array.from(document.querySelectorAll('button'));
  for (const btn of buttons) {
    const label = (btn.getAttribute('aria-label') || btn.textContent || '').toLowerCase();
    if (label.includes('accept all') || label.includes('reject all') || label.includes('agree')) {
      btn.click();
      return true;
    }
  }
  return false;
})();`

// scrollScript advances the results feed by one viewport height.
const scrollScript = `(function () {
  const feed = document.querySelector('div[role="feed"]');
  if (feed) {
    feed.scrollBy(0, feed.offsetHeight);
  }
})();`

// countItemsScript counts place links currently rendered in the feed.
const countItemsScript = `document.querySelectorAll('a.hfpxzc').length`

// endOfResultsScript checks for the explicit end-of-list marker.
const endOfResultsScript = `(function () {
  const feed = document.querySelector('div[role="feed"]');
  if (!feed) return false;
  return feed.innerText.includes("You've reached the end of the list");
})();`

// collectLinksScript gathers every place link href in DOM order.
const collectLinksScript = `(function () {
  return Array.from(document.querySelectorAll('a.hfpxzc'))
    .map(a => a.href || '')
    .filter(h => h !== '');
})();`
