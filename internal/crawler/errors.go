package crawler

import "errors"

// Fetch errors.
// They are wrapped with the requested URL, so callers should compare with
// errors.Is rather than by equality.
var (
	// ErrUnexpectedStatus is returned when a page answers with anything but 200 OK.
	// Redirect targets are followed first; only the final status is checked.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrEmptyURL is returned when a fetch is requested without a URL.
	ErrEmptyURL = errors.New("empty URL")
)
