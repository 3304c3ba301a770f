// Package progress renders a live case counter while a crawl is running.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

const (
	baseMessage     = "Scraping cases"
	updateFrequency = 100 * time.Millisecond
)

// Bar counts merged cases and shows the position of the crawl.
// CaseMerged is called from the crawling goroutine; the render goroutine
// only reads tracker state.
type Bar struct {
	writer  progress.Writer
	tracker *progress.Tracker
	started bool
}

// New creates a Bar rendering to out. Nothing is drawn until Start.
func New(out io.Writer) *Bar {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetUpdateFrequency(updateFrequency)
	pw.SetTrackerLength(20)
	pw.SetMessageLength(48)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Percentage = false
	pw.Style().Visibility.Value = true

	// Total 0 makes the tracker indeterminate: the number of cases is not
	// known until the crawl ends.
	tracker := &progress.Tracker{
		Message: baseMessage,
		Total:   0,
		Units: progress.Units{
			Notation:         " cases",
			NotationPosition: progress.UnitsNotationPositionAfter,
			Formatter:        progress.FormatNumber,
		},
	}
	pw.AppendTracker(tracker)

	return &Bar{
		writer:  pw,
		tracker: tracker,
	}
}

// Start begins rendering in a background goroutine.
func (b *Bar) Start() {
	if b.started {
		return
	}
	b.started = true
	go b.writer.Render()
	// Stop is a no-op until rendering has begun.
	for !b.writer.IsRenderInProgress() {
		time.Sleep(updateFrequency / 10)
	}
}

// CaseMerged counts one merged case found on the given listing page.
func (b *Bar) CaseMerged(year, page int) {
	b.tracker.Increment(1)
	b.tracker.UpdateMessage(fmt.Sprintf("%s (Year: %d, Page: %d)", baseMessage, year, page))
}

// Count returns the number of cases counted so far.
func (b *Bar) Count() int64 {
	return b.tracker.Value()
}

// Stop marks the tracker done and waits for the final render.
func (b *Bar) Stop() {
	b.tracker.MarkAsDone()
	if !b.started {
		return
	}
	b.writer.Stop()
	for b.writer.IsRenderInProgress() {
		time.Sleep(updateFrequency / 10)
	}
	b.started = false
}
