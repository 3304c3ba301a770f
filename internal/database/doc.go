// Package database provides the SQLite archive of finished crawl runs.
//
// Each archived run stores one row in the runs table, holding the year
// range, the output path and per-year statistics, plus one row per case in
// the cases table. A run is written in a single transaction when its
// dataset is flushed, so the archive never holds a partial run.
//
// The archive uses modernc.org/sqlite, a CGO-free driver, and lives in a
// single file under the XDG data directory unless another directory is
// configured.
package database
