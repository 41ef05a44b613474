// package scraper extracts release entries from the review site's paginated listing pages
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/jsingh/trendtracker/internal/models"
	"github.com/jsingh/trendtracker/internal/shared"
	"golang.org/x/time/rate"
)

// Listing sections published by the review site.
const (
	SectionAlbums = "albums"
	SectionTracks = "tracks"
)

// Scraper fetches listing pages and extracts one [models.ReleaseEntry] per
// review block. Page-level failures are logged and skipped so the remaining
// pages still contribute.
type Scraper struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// Opts contains configuration options for creating a Scraper.
type Opts struct {
	BaseURL   string
	Client    *http.Client
	RateLimit float64 // requests per second, 0 disables limiting
	Logger    *log.Logger
}

// New creates a Scraper for the review site at opts.BaseURL.
func New(opts Opts) *Scraper {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Scraper{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		client:  opts.Client,
		limiter: limiter,
		logger:  opts.Logger,
	}
}

// ScrapeListings fetches pages 1..pages of a section and collects the
// extracted entries into a [models.ReleaseCollection]. A title seen twice
// overwrites the earlier entry, so later pages win.
func (s *Scraper) ScrapeListings(ctx context.Context, section string, pages int) (models.ReleaseCollection, error) {
	if section != SectionAlbums && section != SectionTracks {
		return nil, fmt.Errorf("%w: unknown section %q", shared.ErrInvalidArgument, section)
	}

	collection := models.ReleaseCollection{}
	for page := 1; page <= pages; page++ {
		entries, err := s.scrapePage(ctx, section, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			s.logger.Warn("skipping listing page", "section", section, "page", page, "error", err)
			continue
		}
		for _, entry := range entries {
			collection[entry.Title] = entry
		}
	}

	return collection, nil
}

func (s *Scraper) scrapePage(ctx context.Context, section string, page int) ([]*models.ReleaseEntry, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
		}
	}

	pageURL := fmt.Sprintf("%s/reviews/%s/?page=%d", s.baseURL, section, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing page status %d", shared.ErrFetchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
	}

	var entries []*models.ReleaseEntry
	doc.Find(".review").Each(func(_ int, review *goquery.Selection) {
		// The byline/genre sub-block also holds list items, drop it before
		// extracting any text.
		review.Find(".review__meta").Remove()

		title := StripQuotes(strings.TrimSpace(review.Find("h2").First().Text()))
		if title == "" {
			return
		}

		var artists []string
		review.Find("ul.artist-list li").Each(func(_ int, li *goquery.Selection) {
			if name := strings.TrimSpace(li.Text()); name != "" {
				artists = append(artists, name)
			}
		})

		entries = append(entries, &models.ReleaseEntry{Title: title, Artists: artists})
	})

	s.logger.Debug("scraped listing page", "section", section, "page", page, "entries", len(entries))
	return entries, nil
}

// StripQuotes removes the typographic double quotation marks the review site
// wraps track titles in. Ordinary characters pass through unchanged.
func StripQuotes(title string) string {
	title = strings.ReplaceAll(title, "“", "")
	return strings.ReplaceAll(title, "”", "")
}
