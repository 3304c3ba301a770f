// Package crawler walks the eLitigation judgment listings and turns every
// result card into a model.CaseRecord.
//
// # Components
//
//   - Fetcher: performs one GET and returns the body of a 200 response
//   - PageCursor: a pull iterator over (year, page) listing coordinates
//   - ParseListing: reads the result cards of one listing page
//   - DetailExtractor: fetches a judgment page and derives its fields
//   - YearPageCrawler: drives the cursor, merges cards with their details,
//     and appends the merged records to a sink
//
// # Traversal
//
// Years are visited in ascending order, pages within a year from 1 upward.
// A year ends at the first listing page that fails to load or has no
// cards. Both cases are logged differently but behave the same.
//
// After every listing page that had cards the crawler waits a fixed delay
// before requesting the next listing page. Judgment pages are fetched
// without delay. Every wait and every request honours the context.
//
// # Usage
//
//	fetcher := crawler.NewFetcher(crawler.WithUserAgent(cfg.UserAgent))
//	c := crawler.NewYearPageCrawler(fetcher, crawler.WithListDelay(cfg.ListDelay))
//	err := c.Crawl(ctx, run, aggregator)
//
// The crawler is strictly sequential: one request in flight at a time.
package crawler
