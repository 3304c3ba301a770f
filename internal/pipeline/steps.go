package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/casecrawl/internal/crawler"
	"github.com/nao1215/casecrawl/internal/dataset"
	"github.com/nao1215/casecrawl/internal/model"
	"github.com/nao1215/casecrawl/internal/report"
)

// Crawler walks the listings of a run and appends records to sink.
// *crawler.YearPageCrawler implements it.
type Crawler interface {
	Crawl(ctx context.Context, run *model.Run, sink crawler.Sink) error
}

// CrawlStep crawls the run's year range into the aggregator.
type CrawlStep struct {
	crawler    Crawler
	aggregator *dataset.Aggregator
	logger     *slog.Logger
}

// NewCrawlStep creates a crawl step.
func NewCrawlStep(c Crawler, aggregator *dataset.Aggregator, logger *slog.Logger) *CrawlStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrawlStep{
		crawler:    c,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl.
func (s *CrawlStep) Do(ctx context.Context, run *model.Run) error {
	if err := s.crawler.Crawl(ctx, run, s.aggregator); err != nil {
		return fmt.Errorf("crawl stopped after %d cases: %w", s.aggregator.Len(), err)
	}
	s.logger.Info("crawl finished",
		"cases", s.aggregator.Len(),
		"dropped", run.TotalDropped(),
		"skipped", run.TotalSkipped(),
	)
	return nil
}

// FlushStep writes the collected dataset to its output file and then to
// any further sinks, such as the archive.
type FlushStep struct {
	aggregator *dataset.Aggregator
	file       *dataset.FileSink
	extra      []dataset.Sink
}

// NewFlushStep creates a flush step writing to file and then to extra.
func NewFlushStep(aggregator *dataset.Aggregator, file *dataset.FileSink, extra ...dataset.Sink) *FlushStep {
	return &FlushStep{
		aggregator: aggregator,
		file:       file,
		extra:      extra,
	}
}

// Name returns the step name.
func (s *FlushStep) Name() string {
	return "flush"
}

// Do flushes the aggregator. The run's OutputPath is set once the file has
// been written, so later sinks see it.
func (s *FlushStep) Do(ctx context.Context, run *model.Run) error {
	sinks := make([]dataset.Sink, 0, 1+len(s.extra))
	sinks = append(sinks, &outputRecorder{FileSink: s.file, run: run})
	sinks = append(sinks, s.extra...)
	return s.aggregator.Flush(ctx, sinks...)
}

// outputRecorder records the output path on the run after a successful write.
type outputRecorder struct {
	*dataset.FileSink
	run *model.Run
}

// Write writes the file and records its path.
func (r *outputRecorder) Write(ctx context.Context, records []model.CaseRecord) error {
	if err := r.FileSink.Write(ctx, records); err != nil {
		return err
	}
	r.run.OutputPath = r.Path()
	return nil
}

// SummaryStep stamps the run as finished and renders its summary.
type SummaryStep struct {
	writer report.Writer
}

// NewSummaryStep creates a summary step writing through w.
func NewSummaryStep(w report.Writer) *SummaryStep {
	return &SummaryStep{writer: w}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do renders the summary.
func (s *SummaryStep) Do(_ context.Context, run *model.Run) error {
	run.Finish()
	if _, err := s.writer.Write(model.NewSummary(run)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
