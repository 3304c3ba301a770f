package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrInvalidYear is returned when a year is missing or not positive.
	ErrInvalidYear = errors.New("invalid year: start and end years must be positive")

	// ErrInvalidYearRange is returned when the start year is after the end year.
	ErrInvalidYearRange = errors.New("invalid year range: start year is after end year")

	// ErrEmptyEndpoint is returned when the listing or judgment URL is empty.
	ErrEmptyEndpoint = errors.New("invalid endpoint: list_url and case_url must be set")

	// ErrInvalidListDelay is returned when the list delay is negative.
	// Use 0 for no delay between listing pages.
	ErrInvalidListDelay = errors.New("invalid list delay: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrUnsupportedFormat is returned for a dataset format other than csv or json.
	ErrUnsupportedFormat = errors.New("unsupported format: must be csv or json")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoDBDir is returned when archiving is enabled without a database directory.
	ErrNoDBDir = errors.New("archive enabled but no database directory set")
)
