package dataset

import "errors"

var (
	// ErrAlreadyFlushed is returned when an Aggregator is appended to or
	// flushed after it has been flushed.
	ErrAlreadyFlushed = errors.New("dataset already flushed")

	// ErrUnsupportedFormat is returned for an output format other than csv or json.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
