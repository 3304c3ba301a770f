// Package report renders the summary of a finished crawl run.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown with a per-year pie chart
//   - JSONWriter: structured JSON for tool integration
//
// Writers implement the Writer interface and can be combined with
// MultiWriter.
package report
