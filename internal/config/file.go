package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig overrides the addresses and query values of the judgments site.
type SiteConfig struct {
	// ListURL is the listing endpoint, without a query string.
	ListURL string `yaml:"list_url,omitempty"`

	// CaseURL is the prefix every judgment slug is appended to.
	CaseURL string `yaml:"case_url,omitempty"`

	// CourtFilter is the Filter value of listing requests, e.g. "SUPCT".
	CourtFilter string `yaml:"court_filter,omitempty"`

	// SortBy is the SortBy value of listing requests, e.g. "Score".
	SortBy string `yaml:"sort_by,omitempty"`
}

// CrawlConfig overrides request behavior.
// Pointer fields distinguish an explicit zero from an absent key.
type CrawlConfig struct {
	// ListDelay is a Go duration string such as "500ms".
	ListDelay *Duration `yaml:"list_delay,omitempty"`

	// Timeout is a Go duration string; "0s" disables it.
	Timeout *Duration `yaml:"timeout,omitempty"`

	UserAgent   string `yaml:"user_agent,omitempty"`
	MaxBodySize *int64 `yaml:"max_body_size,omitempty"`
}

// OutputConfig overrides where and how results are stored.
type OutputConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Archive *bool  `yaml:"archive,omitempty"`
	DBDir   string `yaml:"db_dir,omitempty"`
}

// File represents the structure of the .casecrawl configuration file.
type File struct {
	Site   SiteConfig   `yaml:"site,omitempty"`
	Crawl  CrawlConfig  `yaml:"crawl,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// ApplyTo overwrites the fields of cfg that are set in the file.
// Keys absent from the file leave cfg untouched.
func (cf *File) ApplyTo(cfg *Config) {
	if cf.Site.ListURL != "" {
		cfg.ListURL = cf.Site.ListURL
	}
	if cf.Site.CaseURL != "" {
		cfg.CaseURL = cf.Site.CaseURL
	}
	if cf.Site.CourtFilter != "" {
		cfg.CourtFilter = cf.Site.CourtFilter
	}
	if cf.Site.SortBy != "" {
		cfg.SortBy = cf.Site.SortBy
	}

	if cf.Crawl.ListDelay != nil {
		cfg.ListDelay = cf.Crawl.ListDelay.Duration
	}
	if cf.Crawl.Timeout != nil {
		cfg.Timeout = cf.Crawl.Timeout.Duration
	}
	if cf.Crawl.UserAgent != "" {
		cfg.UserAgent = cf.Crawl.UserAgent
	}
	if cf.Crawl.MaxBodySize != nil {
		cfg.MaxBodySize = *cf.Crawl.MaxBodySize
	}

	if cf.Output.Dir != "" {
		cfg.OutputDir = cf.Output.Dir
	}
	if cf.Output.Format != "" {
		cfg.Format = strings.ToLower(cf.Output.Format)
	}
	if cf.Output.Archive != nil {
		cfg.Archive = *cf.Output.Archive
	}
	if cf.Output.DBDir != "" {
		cfg.DBDir = cf.Output.DBDir
	}
}

// Duration is a time.Duration read from a YAML duration string.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses values like "500ms" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
