package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/casecrawl/internal/dataset"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "casecrawl"

	// DefaultListURL is the listing endpoint of the judgments site.
	DefaultListURL = "https://www.elitigation.sg/gd/Home/Index"

	// DefaultCaseURL is the prefix every judgment slug is appended to.
	DefaultCaseURL = "https://www.elitigation.sg/gd/s/"

	// DefaultCourtFilter restricts listings to Supreme Court judgments.
	DefaultCourtFilter = "SUPCT"

	// DefaultSortBy is the sort order sent with listing requests.
	DefaultSortBy = "Score"

	// DefaultListDelay is the pause after each listing page that had cards.
	DefaultListDelay = 500 * time.Millisecond

	// DefaultTimeout of zero means requests never time out.
	DefaultTimeout time.Duration = 0

	// DefaultUserAgent identifies casecrawl in HTTP requests.
	DefaultUserAgent = "casecrawl/1.0 (+https://github.com/nao1215/casecrawl)"

	// DefaultMaxBodySize limits the response body size read per page.
	// Long judgments run to a few megabytes of HTML.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultOutputDir is where the dataset file is written.
	DefaultOutputDir = "."

	// DefaultFormat is the dataset file format.
	DefaultFormat = dataset.FormatCSV
)

// Config holds all configuration options for a crawl.
// It is populated from defaults, then the config file, then CLI flags,
// and passed down explicitly rather than kept in global state.
type Config struct {
	// StartYear is the first listing year to crawl, inclusive.
	StartYear int

	// EndYear is the last listing year to crawl, inclusive.
	EndYear int

	// ListURL is the listing endpoint, without a query string.
	ListURL string

	// CaseURL is the prefix every judgment slug is appended to.
	CaseURL string

	// CourtFilter is the Filter value sent with every listing request.
	CourtFilter string

	// SortBy is the SortBy value sent with every listing request.
	SortBy string

	// ListDelay is the pause after each listing page that had cards.
	// Judgment pages are fetched without delay.
	ListDelay time.Duration

	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (10MB).
	MaxBodySize int64

	// OutputDir is the directory the dataset file is written into.
	// It is created if it does not exist.
	OutputDir string

	// Format is the dataset file format, "csv" or "json".
	Format string

	// JSONReport prints the run summary as JSON instead of plain text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the run summary as GitHub Flavored Markdown
	// instead of plain text. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is where the run summary is written. Empty means stdout.
	ReportFile string

	// Archive stores a copy of the finished dataset in the SQLite archive.
	Archive bool

	// DBDir is the directory holding the SQLite archive.
	// Defaults to the XDG data directory (~/.local/share/casecrawl on Linux).
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// The year range is left unset; callers must provide it.
func NewConfig() *Config {
	return &Config{
		ListURL:     DefaultListURL,
		CaseURL:     DefaultCaseURL,
		CourtFilter: DefaultCourtFilter,
		SortBy:      DefaultSortBy,
		ListDelay:   DefaultListDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   DefaultOutputDir,
		Format:      DefaultFormat,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for casecrawl.
// On Linux: ~/.local/share/casecrawl
// On macOS: ~/Library/Application Support/casecrawl
// On Windows: %LOCALAPPDATA%\casecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for casecrawl.
// On Linux: ~/.config/casecrawl
// On macOS: ~/Library/Application Support/casecrawl
// On Windows: %APPDATA%\casecrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.StartYear <= 0 || c.EndYear <= 0 {
		return ErrInvalidYear
	}
	if c.StartYear > c.EndYear {
		return ErrInvalidYearRange
	}
	if c.ListURL == "" || c.CaseURL == "" {
		return ErrEmptyEndpoint
	}
	if c.ListDelay < 0 {
		return ErrInvalidListDelay
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if !dataset.ValidFormat(c.Format) {
		return ErrUnsupportedFormat
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Archive && c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}
