package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/casecrawl/internal/crawler"
	"github.com/nao1215/casecrawl/internal/dataset"
	"github.com/nao1215/casecrawl/internal/model"
	"github.com/nao1215/casecrawl/internal/report"
)

// fakeCrawler appends fixed records, then returns err.
type fakeCrawler struct {
	records []model.CaseRecord
	err     error
}

func (f *fakeCrawler) Crawl(_ context.Context, run *model.Run, sink crawler.Sink) error {
	for _, r := range f.records {
		if err := sink.Append(r); err != nil {
			return err
		}
		run.YearStats(r.Year).Cases++
	}
	return f.err
}

// recordingSink captures what the flush hands it.
type recordingSink struct {
	outputPath string
	run        *model.Run
	records    []model.CaseRecord
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Write(_ context.Context, records []model.CaseRecord) error {
	s.outputPath = s.run.OutputPath
	s.records = records
	return nil
}

func testRecords() []model.CaseRecord {
	return []model.CaseRecord{
		{CaseIdentifier: "[2021] SGHC 1", Year: 2021, Author: "J", LegalParties: model.PartiesNotFound},
		{CaseIdentifier: "[2021] SGHC 2", Year: 2021, Author: "J", LegalParties: model.PartiesNotFound},
	}
}

func newFileSink(t *testing.T) *dataset.FileSink {
	t.Helper()

	sink, err := dataset.NewFileSink(filepath.Join(t.TempDir(), dataset.FileName(2021, 2021, dataset.FormatCSV)), dataset.FormatCSV)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	return sink
}

func TestCrawlPipeline(t *testing.T) {
	t.Parallel()

	t.Run("successful run writes the file then the archive then the summary", func(t *testing.T) {
		t.Parallel()

		run := model.NewRun(2021, 2021)
		agg := dataset.NewAggregator()
		file := newFileSink(t)
		archive := &recordingSink{run: run}
		var out bytes.Buffer

		p := New()
		p.AddSteps(
			NewCrawlStep(&fakeCrawler{records: testRecords()}, agg, nil),
			NewFlushStep(agg, file, archive),
			NewSummaryStep(report.NewSimpleWriter(&out)),
		)
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}

		if _, err := os.Stat(file.Path()); err != nil {
			t.Errorf("expected output file: %v", err)
		}
		if run.OutputPath != file.Path() {
			t.Errorf("OutputPath = %q, want %q", run.OutputPath, file.Path())
		}
		if archive.outputPath != file.Path() {
			t.Error("expected archive to see the output path")
		}
		if len(archive.records) != 2 {
			t.Errorf("archive got %d records, want 2", len(archive.records))
		}
		if !strings.Contains(out.String(), "Saved all cases to "+file.Path()) {
			t.Errorf("summary missing saved line:\n%s", out.String())
		}
		if run.FinishedAt.IsZero() {
			t.Error("expected run to be finished")
		}
	})

	t.Run("failed crawl writes nothing", func(t *testing.T) {
		t.Parallel()

		errNetwork := errors.New("interrupted")
		run := model.NewRun(2021, 2021)
		agg := dataset.NewAggregator()
		file := newFileSink(t)
		var out bytes.Buffer

		p := New()
		p.AddSteps(
			NewCrawlStep(&fakeCrawler{records: testRecords(), err: errNetwork}, agg, nil),
			NewFlushStep(agg, file),
			NewSummaryStep(report.NewSimpleWriter(&out)),
		)
		if err := p.Execute(context.Background(), run); !errors.Is(err, errNetwork) {
			t.Fatalf("expected crawl error, got %v", err)
		}

		if _, err := os.Stat(file.Path()); !os.IsNotExist(err) {
			t.Error("expected no output file")
		}
		if run.OutputPath != "" {
			t.Errorf("OutputPath = %q, want empty", run.OutputPath)
		}
		if out.Len() != 0 {
			t.Error("expected no summary")
		}
	})

	t.Run("cancelled crawl writes nothing", func(t *testing.T) {
		t.Parallel()

		run := model.NewRun(2021, 2021)
		agg := dataset.NewAggregator()
		file := newFileSink(t)

		p := New()
		p.AddSteps(
			NewCrawlStep(&fakeCrawler{records: testRecords(), err: context.Canceled}, agg, nil),
			NewFlushStep(agg, file),
		)
		if err := p.Execute(context.Background(), run); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if _, err := os.Stat(file.Path()); !os.IsNotExist(err) {
			t.Error("expected no output file")
		}
	})
}
