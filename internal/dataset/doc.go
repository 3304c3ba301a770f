// Package dataset accumulates crawled case records and writes them out
// once the crawl is complete.
//
// An Aggregator is append-only: records can be added while crawling, and
// the collected dataset is handed to its sinks in a single Flush. Nothing is
// written before Flush, so an interrupted run leaves no output behind.
package dataset
