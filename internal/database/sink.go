package database

import (
	"context"

	"github.com/nao1215/casecrawl/internal/model"
)

// ArchiveSink archives a flushed dataset together with its run.
// It implements dataset.Sink.
type ArchiveSink struct {
	db  *ArchiveDB
	run *model.Run
}

// NewArchiveSink returns a sink that stores records as part of run.
func NewArchiveSink(db *ArchiveDB, run *model.Run) *ArchiveSink {
	return &ArchiveSink{db: db, run: run}
}

// Name returns the sink name.
func (s *ArchiveSink) Name() string {
	return "archive " + s.db.Path()
}

// Write stores the run and its records and records the new id on the run.
func (s *ArchiveSink) Write(ctx context.Context, records []model.CaseRecord) error {
	id, err := s.db.SaveRun(ctx, s.run, records)
	if err != nil {
		return err
	}
	s.run.ArchiveRunID = id
	return nil
}
