package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/casecrawl/internal/model"
)

// DefaultListDelay is the pause after each listing page that had cards.
const DefaultListDelay = 500 * time.Millisecond

// Sink receives merged case records in crawl order.
type Sink interface {
	Append(record model.CaseRecord) error
}

// Progress is notified after every record handed to the Sink.
// It is called from the crawling goroutine.
type Progress interface {
	CaseMerged(year, page int)
}

type noopProgress struct{}

func (noopProgress) CaseMerged(int, int) {}

// YearPageCrawler walks listing pages year by year and merges every card
// with the details of its judgment page.
type YearPageCrawler struct {
	fetcher   Fetcher
	details   *DetailExtractor
	endpoints Endpoints
	listDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	progress  Progress
	logger    *slog.Logger
}

// Option configures a YearPageCrawler.
type Option func(*YearPageCrawler)

// WithEndpoints overrides the listing and judgment addresses.
func WithEndpoints(e Endpoints) Option {
	return func(c *YearPageCrawler) {
		c.endpoints = e
	}
}

// WithListDelay sets the pause after each listing page that had cards.
// Negative values are treated as zero.
func WithListDelay(d time.Duration) Option {
	return func(c *YearPageCrawler) {
		c.listDelay = max(d, 0)
	}
}

// WithProgress sets the progress observer.
func WithProgress(p Progress) Option {
	return func(c *YearPageCrawler) {
		if p != nil {
			c.progress = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *YearPageCrawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewYearPageCrawler creates a crawler that reads every page through fetcher.
func NewYearPageCrawler(fetcher Fetcher, opts ...Option) *YearPageCrawler {
	c := &YearPageCrawler{
		fetcher:   fetcher,
		endpoints: DefaultEndpoints(),
		listDelay: DefaultListDelay,
		sleep:     sleepContext,
		progress:  noopProgress{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.details = NewDetailExtractor(fetcher, WithDetailLogger(c.logger))
	return c
}

// Crawl visits every listing page of run's year range and appends one
// record per card whose judgment page could be read. Per-year statistics
// are recorded on run.
//
// Listing and judgment failures never end the crawl. Crawl returns an
// error only when ctx is done or when sink rejects a record.
func (c *YearPageCrawler) Crawl(ctx context.Context, run *model.Run, sink Sink) error {
	cursor := NewPageCursor(run.StartYear, run.EndYear)

	for ref, ok := cursor.Next(); ok; ref, ok = cursor.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats := run.YearStats(ref.Year)

		listing, err := c.listing(ctx, ref)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			c.logger.Info("listing page unavailable, moving to next year",
				"year", ref.Year, "page", ref.Page, "error", err)
			cursor.EndYear()
			continue
		}
		if listing.Total == 0 {
			c.logger.Info("listing page has no cards, moving to next year",
				"year", ref.Year, "page", ref.Page)
			cursor.EndYear()
			continue
		}

		stats.Pages++
		stats.Cards += listing.Total
		stats.SkippedCards += listing.Skipped
		if listing.Skipped > 0 {
			c.logger.Debug("cards without identifier skipped",
				"year", ref.Year, "page", ref.Page, "count", listing.Skipped)
		}

		for _, card := range listing.Cards {
			detail, ok := c.details.Extract(ctx, card.URL)
			if !ok {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				stats.DroppedCases++
				c.logger.Debug("case dropped", "identifier", card.Identifier, "url", card.URL)
				continue
			}

			if err := sink.Append(model.NewCaseRecord(card, detail)); err != nil {
				return fmt.Errorf("failed to append %s: %w", card.Identifier, err)
			}
			stats.Cases++
			c.progress.CaseMerged(ref.Year, ref.Page)
		}

		cursor.Advance()
		if err := c.wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// listing fetches and parses the listing page at ref.
func (c *YearPageCrawler) listing(ctx context.Context, ref PageRef) (*Listing, error) {
	body, err := c.fetcher.Fetch(ctx, c.endpoints.ListPageURL(ref))
	if err != nil {
		return nil, err
	}
	return ParseListing(body, ref, c.endpoints)
}

// wait blocks for the list delay or until ctx is done.
func (c *YearPageCrawler) wait(ctx context.Context) error {
	if c.listDelay <= 0 {
		return ctx.Err()
	}
	return c.sleep(ctx, c.listDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
