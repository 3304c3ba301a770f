package model

import (
	"sort"
	"time"
)

// YearStats holds the per-year counters collected while crawling.
type YearStats struct {
	// Year is the listing year.
	Year int `json:"year"`

	// Pages is the number of listing pages that returned at least one card.
	Pages int `json:"pages"`

	// Cards is the number of result cards seen on those pages.
	Cards int `json:"cards"`

	// SkippedCards counts cards without an identifier.
	SkippedCards int `json:"skipped_cards"`

	// DroppedCases counts cards whose judgment page could not be fetched.
	DroppedCases int `json:"dropped_cases"`

	// Cases is the number of records appended for this year.
	Cases int `json:"cases"`
}

// Run describes one crawl invocation over an inclusive year range.
//
// A Run is owned by the goroutine driving the crawl. It is not safe for
// concurrent use.
type Run struct {
	// StartYear is the first listing year to crawl.
	StartYear int `json:"start_year"`

	// EndYear is the last listing year to crawl, inclusive.
	EndYear int `json:"end_year"`

	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last pipeline step completed.
	FinishedAt time.Time `json:"finished_at"`

	// OutputPath is the dataset file written by the flush, empty until then.
	OutputPath string `json:"output_path,omitempty"`

	// ArchiveRunID is the archive row id, zero when the run was not archived.
	ArchiveRunID int64 `json:"archive_run_id,omitempty"`

	// Years holds statistics keyed by listing year.
	Years map[int]*YearStats `json:"years"`

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error that ended the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewRun creates a run for the inclusive year range [start, end].
func NewRun(start, end int) *Run {
	return &Run{
		StartYear: start,
		EndYear:   end,
		StartedAt: time.Now(),
		Years:     make(map[int]*YearStats),
	}
}

// YearStats returns the statistics of year, creating them on first use.
func (r *Run) YearStats(year int) *YearStats {
	if stats, ok := r.Years[year]; ok {
		return stats
	}
	stats := &YearStats{Year: year}
	r.Years[year] = stats
	return stats
}

// SortedYears returns the statistics ordered by year.
func (r *Run) SortedYears() []YearStats {
	years := make([]YearStats, 0, len(r.Years))
	for _, stats := range r.Years {
		years = append(years, *stats)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years
}

// TotalCases returns the number of records appended across all years.
func (r *Run) TotalCases() int {
	total := 0
	for _, stats := range r.Years {
		total += stats.Cases
	}
	return total
}

// TotalPages returns the number of listing pages with cards across all years.
func (r *Run) TotalPages() int {
	total := 0
	for _, stats := range r.Years {
		total += stats.Pages
	}
	return total
}

// TotalDropped returns the number of cases lost to failed judgment fetches.
func (r *Run) TotalDropped() int {
	total := 0
	for _, stats := range r.Years {
		total += stats.DroppedCases
	}
	return total
}

// TotalSkipped returns the number of cards skipped for lack of an identifier.
func (r *Run) TotalSkipped() int {
	total := 0
	for _, stats := range r.Years {
		total += stats.SkippedCards
	}
	return total
}

// MarkStep records that a pipeline step completed.
func (r *Run) MarkStep(name string) {
	r.PerformedSteps = append(r.PerformedSteps, name)
}

// Fail records the error that ended the run.
func (r *Run) Fail(err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.ErrorMessage = err.Error()
}

// Finish stamps the completion time.
func (r *Run) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took. It is zero until Finish is called.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
