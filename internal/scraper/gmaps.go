package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"vibenav/internal/config"
)

// All Google Maps selectors live here. When the site markup changes, this
// block is the only thing that needs touching.
const (
	gmapsSearchURL = "https://www.google.com/maps/search/"

	selResultsFeed   = `div[role="feed"]`
	selPlaceLink     = `a[href^="https://www.google.com/maps/place/"]`
	selPlaceTitle    = `h1`
	selPlaceAddress  = `button[data-item-id="address"] .Io6YTe`
	selPlaceRating   = `div.F7nice span[aria-hidden="true"]`
	selReviewsPanel  = `div.m6QErb.DxyBCb.kA9K6e.li8Ydd.dS8AEf`
	selReviewBlock   = `div.jftiEf.fontBodyMedium`
	selReviewAuthor  = `.d4r55`
	selReviewText    = `.MyEned .wiI7pd`
	xpathReviewsTab  = `//button[contains(@aria-label, "Reviews for") or contains(@aria-label, "reviews")]`
	scrollSettleTime = 1200 * time.Millisecond
)

const gmapsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// GoogleMapsSource drives a headless browser against the Maps web UI.
type GoogleMapsSource struct {
	cfg config.ScraperConfig
}

func NewGoogleMapsSource(cfg config.ScraperConfig) *GoogleMapsSource {
	return &GoogleMapsSource{cfg: cfg}
}

func (s *GoogleMapsSource) Name() string { return "Google Maps" }

// newBrowser builds a headless browser context. The returned cancel releases
// the whole browser process.
func (s *GoogleMapsSource) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(gmapsUserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		browserCancel()
		allocCancel()
	}
	return browserCtx, cancel
}

// Search loads the results feed for the query, scrolls it to surface more
// entries and collects unique place links up to limit. A timeout waiting on
// the feed aborts the whole search.
func (s *GoogleMapsSource) Search(ctx context.Context, query string, limit int) ([]Listing, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	searchURL := gmapsSearchURL + strings.ReplaceAll(query, " ", "+")
	log.Printf("Searching Google Maps for %q", query)

	waitCtx, waitCancel := context.WithTimeout(browserCtx, s.cfg.SearchTimeout)
	defer waitCancel()

	if err := chromedp.Run(waitCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady(selResultsFeed, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("results feed did not appear for %q: %w", query, err)
	}

	// Scroll the feed so lazily-loaded entries render.
	scrolls := limit/5 + 2
	var html string
	if err := chromedp.Run(browserCtx,
		scrollElement(selResultsFeed, scrolls),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("collect results feed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	seen := make(map[string]bool)
	var listings []Listing
	doc.Find(selPlaceLink).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if _, ok := sel.Attr("aria-label"); !ok {
			return true
		}
		href, ok := sel.Attr("href")
		if !ok || seen[href] {
			return true
		}
		seen[href] = true
		listings = append(listings, Listing{Query: query, URL: href})
		return len(listings) < limit
	})

	log.Printf("Found %d unique locations for %q", len(listings), query)
	return listings, nil
}

// FetchReviews opens the place page, extracts title, address and rating,
// opens the reviews panel when a separate tab exists, scrolls it and parses
// the loaded review blocks.
func (s *GoogleMapsSource) FetchReviews(ctx context.Context, listing Listing) (Listing, []RawReview, error) {
	browserCtx, cancel := s.newBrowser(ctx)
	defer cancel()

	waitCtx, waitCancel := context.WithTimeout(browserCtx, s.cfg.DetailTimeout)
	defer waitCancel()

	var title string
	if err := chromedp.Run(waitCtx,
		chromedp.Navigate(listing.URL),
		chromedp.WaitVisible(selPlaceTitle, chromedp.ByQuery),
		chromedp.Text(selPlaceTitle, &title, chromedp.ByQuery),
	); err != nil {
		return listing, nil, fmt.Errorf("timeout on title for %s: %w", listing.URL, err)
	}
	listing.Title = strings.TrimSpace(title)

	var html string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return listing, nil, fmt.Errorf("read place page: %w", err)
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		listing.Address = strings.TrimSpace(doc.Find(selPlaceAddress).First().Text())
		listing.Rating = strings.TrimSpace(doc.Find(selPlaceRating).First().Text())
	}

	// Some places keep reviews on the main page; both the tab click and the
	// dedicated panel are best effort.
	clickCtx, clickCancel := context.WithTimeout(browserCtx, 3*time.Second)
	if err := chromedp.Run(clickCtx, chromedp.Click(xpathReviewsTab, chromedp.BySearch)); err != nil {
		log.Printf("No reviews tab for %s: %v", listing.URL, err)
	}
	clickCancel()

	panelCtx, panelCancel := context.WithTimeout(browserCtx, 5*time.Second)
	scrolls := s.cfg.ReviewsPerLocation/8 + 1
	if err := chromedp.Run(panelCtx,
		chromedp.WaitReady(selReviewsPanel, chromedp.ByQuery),
		scrollElement(selReviewsPanel, scrolls),
	); err != nil {
		log.Printf("No dedicated reviews panel for %s: %v", listing.URL, err)
	}
	panelCancel()

	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return listing, nil, fmt.Errorf("read reviews page: %w", err)
	}

	reviews, err := parseGmapsReviews(html, s.cfg.ReviewsPerLocation)
	if err != nil {
		return listing, nil, err
	}
	return listing, reviews, nil
}

// parseGmapsReviews extracts author/text pairs from loaded review blocks.
// Blocks missing either part are skipped.
func parseGmapsReviews(html string, limit int) ([]RawReview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse reviews page: %w", err)
	}

	var reviews []RawReview
	doc.Find(selReviewBlock).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		author := strings.TrimSpace(sel.Find(selReviewAuthor).First().Text())
		text := strings.TrimSpace(sel.Find(selReviewText).First().Text())
		if author != "" && text != "" {
			reviews = append(reviews, RawReview{Author: author, Text: text})
		}
		return len(reviews) < limit
	})
	return reviews, nil
}

// scrollElement repeatedly scrolls a container to its bottom, pausing after
// each round so lazy content can load.
func scrollElement(selector string, rounds int) chromedp.Tasks {
	js := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); if (el) { el.scrollTop = el.scrollHeight; } })()`,
		selector,
	)

	var tasks chromedp.Tasks
	for i := 0; i < rounds; i++ {
		tasks = append(tasks,
			chromedp.Evaluate(js, nil),
			chromedp.Sleep(scrollSettleTime),
		)
	}
	return tasks
}
