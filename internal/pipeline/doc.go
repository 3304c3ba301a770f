// Package pipeline runs a crawl as a fixed sequence of steps.
//
// A run goes through three steps:
//   - CrawlStep walks the listings and appends records to the aggregator
//   - FlushStep writes the dataset to its file and, optionally, the archive
//   - SummaryStep renders the run summary
//
// Every step receives the same *model.Run and records its outcome there.
// The pipeline stops at the first failing step and checks the context
// before each step, so a cancelled or failed crawl is never flushed.
package pipeline
