// Package main provides the entry point for the casecrawl CLI.
//
// casecrawl collects Supreme Court judgments published on eLitigation and
// writes one row per case to a CSV (or JSON) file.
//
// Usage:
//
//	casecrawl crawl <start-year> <end-year>
//	casecrawl crawl --start 2020 --end 2022 --format json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
