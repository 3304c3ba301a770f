package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/casecrawl/internal/model"
)

// FileName is the name of the archive database file.
const FileName = "casecrawl.db"

// ErrRunNotFound is returned when an archived run does not exist.
var ErrRunNotFound = errors.New("archived run not found")

// ArchiveDB stores finished runs and their case records.
type ArchiveDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ArchiveDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the archive in dbDir.
// When CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ArchiveDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &ArchiveDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Path returns the database file path.
func (adb *ArchiveDB) Path() string {
	return adb.dbPath
}

// Close closes the database connection.
func (adb *ArchiveDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *ArchiveDB) createTables() error {
	schema := `
	-- One row per archived crawl run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		archived_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		output_path TEXT,
		case_count INTEGER NOT NULL,
		dropped_count INTEGER NOT NULL DEFAULT 0,
		year_stats TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Case records in crawl order; duplicates are kept
	CREATE TABLE IF NOT EXISTS cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		case_identifier TEXT NOT NULL,
		catchwords TEXT,
		year INTEGER NOT NULL,
		url TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		paragraph_count INTEGER NOT NULL,
		author TEXT NOT NULL,
		legal_parties TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_run ON cases(run_id, position);
	CREATE INDEX IF NOT EXISTS idx_cases_identifier ON cases(case_identifier);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is the stored summary of an archived run.
type RunRecord struct {
	ID           int64
	StartYear    int
	EndYear      int
	StartedAt    time.Time
	ArchivedAt   time.Time
	OutputPath   string
	CaseCount    int
	DroppedCount int
	Years        []model.YearStats
}

// SaveRun stores run and its records in one transaction and returns the
// new run id.
func (adb *ArchiveDB) SaveRun(ctx context.Context, run *model.Run, records []model.CaseRecord) (int64, error) {
	statsJSON, err := json.Marshal(run.SortedYears())
	if err != nil {
		return 0, fmt.Errorf("failed to serialize year stats: %w", err)
	}

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (start_year, end_year, started_at, output_path, case_count, dropped_count, year_stats)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.StartYear,
		run.EndYear,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.OutputPath,
		len(records),
		run.TotalDropped(),
		string(statsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cases (run_id, position, case_identifier, catchwords, year, url, word_count, paragraph_count, author, legal_parties)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare case insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var catchwords sql.NullString
		if text, ok := r.CatchwordsText(); ok {
			catchwords = sql.NullString{String: text, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			runID,
			i,
			r.CaseIdentifier,
			catchwords,
			r.Year,
			r.URL,
			r.WordCount,
			r.ParagraphCount,
			r.Author,
			r.LegalParties,
		); err != nil {
			return 0, fmt.Errorf("failed to insert case %s: %w", r.CaseIdentifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns archived runs, newest first. A positive limit caps the
// number of runs returned.
func (adb *ArchiveDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, start_year, end_year, started_at, archived_at, output_path, case_count, dropped_count, year_stats
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			startedAt  string
			archivedAt string
			outputPath sql.NullString
			statsJSON  sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.StartYear,
			&rec.EndYear,
			&startedAt,
			&archivedAt,
			&outputPath,
			&rec.CaseCount,
			&rec.DroppedCount,
			&statsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.StartedAt = parseTimestamp(startedAt)
		rec.ArchivedAt = parseTimestamp(archivedAt)
		rec.OutputPath = outputPath.String
		if statsJSON.Valid && statsJSON.String != "" {
			if err := json.Unmarshal([]byte(statsJSON.String), &rec.Years); err != nil {
				return nil, fmt.Errorf("failed to decode year statistics of run %d: %w", rec.ID, err)
			}
		}
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// RunCases returns the records of an archived run in crawl order.
func (adb *ArchiveDB) RunCases(ctx context.Context, runID int64) ([]model.CaseRecord, error) {
	var exists int
	err := adb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}

	rows, err := adb.db.QueryContext(ctx, `
	SELECT case_identifier, catchwords, year, url, word_count, paragraph_count, author, legal_parties
	FROM cases
	WHERE run_id = ?
	ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	records := make([]model.CaseRecord, 0)
	for rows.Next() {
		var (
			r          model.CaseRecord
			catchwords sql.NullString
		)
		if err := rows.Scan(
			&r.CaseIdentifier,
			&catchwords,
			&r.Year,
			&r.URL,
			&r.WordCount,
			&r.ParagraphCount,
			&r.Author,
			&r.LegalParties,
		); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		if catchwords.Valid {
			text := catchwords.String
			r.Catchwords = &text
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
