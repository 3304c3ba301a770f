// Package log builds the slog loggers used by casecrawl.
//
// Loggers returned by NewLogger write text records and shorten long string
// attributes, so a failed judgment page does not dump its whole body:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("judgment page unreadable", "url", url, "error", err)
package log
