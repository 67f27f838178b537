package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultSeedPath is the first listing page relative to the site base.
const DefaultSeedPath = "catalogue/page-1.html"

// Crawler walks listing pages sequentially and fans detail fetches out per
// page. Listing pages are load-bearing: the next-page link is only known
// after parsing the current page, so losing one aborts the crawl.
type Crawler struct {
	fetcher     *Fetcher
	baseURL     string
	seedURL     string
	concurrency int
	log         zerolog.Logger
}

// NewCrawler validates the base URL and derives the seed listing page from
// it. concurrency bounds in-flight detail fetches within one listing page.
func NewCrawler(fetcher *Fetcher, baseURL string, concurrency int, log zerolog.Logger) (*Crawler, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	seed, err := base.Parse(DefaultSeedPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Crawler{
		fetcher:     fetcher,
		baseURL:     baseURL,
		seedURL:     seed.String(),
		concurrency: concurrency,
		log:         log.With().Str("component", "crawler").Logger(),
	}, nil
}

// Run crawls the whole catalogue and returns records in listing-link order.
// A detail page failure is logged and that one item skipped; a listing page
// failure aborts the crawl and whatever was collected is discarded.
func (c *Crawler) Run(ctx context.Context) ([]Record, error) {
	var all []Record
	pageURL := c.seedURL
	pages := 0

	for pageURL != "" {
		c.log.Info().Str("url", pageURL).Msg("fetching listing page")

		body, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing page: %w", err)
		}
		listing, err := ParseListing(body, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing page: %w", err)
		}

		// Fan out this page's detail fetches; slots keep link order so the
		// final accumulation is deterministic.
		slots := make([]*Record, len(listing.ItemLinks))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)
		for i, link := range listing.ItemLinks {
			g.Go(func() error {
				rec, err := c.scrapeItem(gctx, link)
				if err != nil {
					c.log.Warn().Err(err).Str("url", link).Msg("skipping detail page")
					return nil
				}
				slots[i] = rec
				return nil
			})
		}
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, rec := range slots {
			if rec != nil {
				all = append(all, *rec)
			}
		}

		pages++
		pageURL = listing.NextPage
	}

	c.log.Info().Int("pages", pages).Int("records", len(all)).Msg("crawl finished")
	return all, nil
}

func (c *Crawler) scrapeItem(ctx context.Context, link string) (*Record, error) {
	body, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	rec, err := ParseItem(body, link, c.baseURL)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
