package model

import "time"

// Summary is a flattened, serializable view of a finished Run.
// Report writers render Summaries rather than Runs so they never see
// partially built state.
type Summary struct {
	// StartYear and EndYear bound the crawled range, inclusive.
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`

	// OutputPath is the dataset file, empty when nothing was flushed.
	OutputPath string `json:"output_path,omitempty"`

	// Archived is true when the dataset was copied to the archive.
	Archived bool `json:"archived"`

	// TotalCases is the number of records in the dataset.
	TotalCases int `json:"total_cases"`

	// TotalPages is the number of listing pages that had cards.
	TotalPages int `json:"total_pages"`

	// DroppedCases is the number of cards lost to failed judgment fetches.
	DroppedCases int `json:"dropped_cases"`

	// SkippedCards is the number of cards without an identifier.
	SkippedCards int `json:"skipped_cards"`

	// Years holds per-year statistics in ascending order.
	Years []YearStats `json:"years"`

	// Error contains the error message if the run failed.
	Error string `json:"error,omitempty"`
}

// NewSummary builds a Summary from run.
func NewSummary(run *Run) *Summary {
	return &Summary{
		StartYear:    run.StartYear,
		EndYear:      run.EndYear,
		StartedAt:    run.StartedAt,
		Duration:     run.Duration(),
		OutputPath:   run.OutputPath,
		Archived:     run.ArchiveRunID != 0,
		TotalCases:   run.TotalCases(),
		TotalPages:   run.TotalPages(),
		DroppedCases: run.TotalDropped(),
		SkippedCards: run.TotalSkipped(),
		Years:        run.SortedYears(),
		Error:        run.ErrorMessage,
	}
}

// Succeeded reports whether the run ended without error.
func (s *Summary) Succeeded() bool {
	return s.Error == ""
}
