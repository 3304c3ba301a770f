package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/nao1215/casecrawl/internal/model"
)

// Sink persists a complete dataset.
type Sink interface {
	// Name identifies the sink in logs and errors.
	Name() string

	// Write stores records. It is called at most once per Aggregator.
	Write(ctx context.Context, records []model.CaseRecord) error
}

// Aggregator collects records in insertion order until it is flushed.
// It is safe for concurrent use, although the crawler appends from a
// single goroutine.
type Aggregator struct {
	mu      sync.Mutex
	records []model.CaseRecord
	flushed bool
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		records: make([]model.CaseRecord, 0),
	}
}

// Append adds record to the dataset. Duplicates are kept.
func (a *Aggregator) Append(record model.CaseRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.flushed {
		return ErrAlreadyFlushed
	}
	a.records = append(a.records, record)
	return nil
}

// Len returns the number of records collected so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Records returns a copy of the collected records.
func (a *Aggregator) Records() []model.CaseRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.CaseRecord, len(a.records))
	copy(out, a.records)
	return out
}

// Flush writes the dataset to every sink in order and seals the
// Aggregator. It can be called once; later calls return ErrAlreadyFlushed.
// The Aggregator is sealed even when a sink fails, so a failed flush is
// never retried with a partially written dataset.
func (a *Aggregator) Flush(ctx context.Context, sinks ...Sink) error {
	a.mu.Lock()
	if a.flushed {
		a.mu.Unlock()
		return ErrAlreadyFlushed
	}
	a.flushed = true
	records := a.records
	a.mu.Unlock()

	for _, sink := range sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(ctx, records); err != nil {
			return fmt.Errorf("failed to write dataset to %s: %w", sink.Name(), err)
		}
	}
	return nil
}
