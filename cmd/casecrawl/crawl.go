package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/nao1215/casecrawl/internal/config"
	"github.com/nao1215/casecrawl/internal/crawler"
	"github.com/nao1215/casecrawl/internal/database"
	"github.com/nao1215/casecrawl/internal/dataset"
	"github.com/nao1215/casecrawl/internal/log"
	"github.com/nao1215/casecrawl/internal/model"
	"github.com/nao1215/casecrawl/internal/pipeline"
	"github.com/nao1215/casecrawl/internal/progress"
	"github.com/nao1215/casecrawl/internal/report"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [start-year end-year]",
		Short: "Crawl judgments for a range of years",
		Long: `Crawl visits every listing page of each year in the inclusive range,
reads the judgment page of every case found and writes the dataset once
the whole range has been crawled.

Pagination of a year stops at the first listing page that cannot be
fetched or has no cards. A judgment page that cannot be read drops only
that case. Interrupting the crawl (Ctrl+C) writes nothing.

Examples:
  # Crawl 2020 through 2022 into elitigation_cases_2020_to_2022.csv
  casecrawl crawl 2020 2022

  # Same range using flags, as JSON, into ./data
  casecrawl crawl --start 2020 --end 2022 --format json -o data

  # Keep a copy of the run in the SQLite archive
  casecrawl crawl --archive 2021 2021

Configuration file (.casecrawl) example:
  crawl:
    list_delay: 1s
    timeout: 60s
  output:
    dir: data
    archive: true`,
		Args: validateYearArgs,
		RunE: runCrawlCmd,
	}

	// Year range
	cmd.Flags().Int("start", 0, "First year to crawl (alternative to the first argument)")
	cmd.Flags().Int("end", 0, "Last year to crawl (alternative to the second argument)")

	// Request behavior
	cmd.Flags().DurationP("delay", "d", config.DefaultListDelay,
		"Pause after each listing page")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 disables it)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")

	// Output
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the dataset file is written into (created if needed)")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Dataset format: csv or json")
	cmd.Flags().BoolP("archive", "a", false,
		"Also store the run in the SQLite archive")
	cmd.Flags().String("db-dir", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().Bool("no-progress", false,
		"Do not display the progress indicator")

	// Summary
	cmd.Flags().BoolP("json", "j", false,
		"Print the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the run summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("report-file", "r", "",
		"Write the run summary to this file instead of stdout")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .casecrawl in current or home directory)")

	return cmd
}

// validateYearArgs accepts either no arguments or a start and end year.
func validateYearArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("expected <start-year> <end-year>, got %d argument(s)", len(args))
	}
	return nil
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := crawlEnv{
		out:    cmd.OutOrStdout(),
		logger: logger,
	}
	if !noProgress {
		env.progress = cmd.ErrOrStderr()
	}
	return runCrawl(ctx, cfg, env)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the config file and the flags the user set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// A missing file is only an error when the user named it.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.ApplyTo(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cfg.StartYear, cfg.EndYear, err = yearRange(cmd, args); err != nil {
		return nil, err
	}

	if flags.Changed("delay") {
		if cfg.ListDelay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
		cfg.Format = strings.ToLower(cfg.Format)
	}
	if flags.Changed("archive") {
		if cfg.Archive, err = flags.GetBool("archive"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("report-file"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// yearRange reads the years from the positional arguments or from
// --start and --end. Giving both forms is an error.
func yearRange(cmd *cobra.Command, args []string) (int, int, error) {
	flags := cmd.Flags()
	if len(args) == 2 {
		if flags.Changed("start") || flags.Changed("end") {
			return 0, 0, errors.New("give the years either as arguments or with --start/--end, not both")
		}
		start, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start year %q: %w", args[0], err)
		}
		end, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end year %q: %w", args[1], err)
		}
		return start, end, nil
	}

	start, err := flags.GetInt("start")
	if err != nil {
		return 0, 0, err
	}
	end, err := flags.GetInt("end")
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// crawlEnv holds where a crawl writes to.
type crawlEnv struct {
	// out receives the run summary unless a report file is configured.
	out io.Writer

	// progress receives the progress indicator; nil hides it.
	progress io.Writer

	logger *slog.Logger
}

// runCrawl crawls cfg's year range and writes the dataset, the optional
// archive copy and the run summary. Nothing is written when the crawl
// fails or ctx is cancelled.
func runCrawl(ctx context.Context, cfg *config.Config, env crawlEnv) error {
	logger := env.logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("starting crawl",
		"start_year", cfg.StartYear,
		"end_year", cfg.EndYear,
		"format", cfg.Format,
		"archive", cfg.Archive,
	)

	outputPath := filepath.Join(cfg.OutputDir, dataset.FileName(cfg.StartYear, cfg.EndYear, cfg.Format))
	fileSink, err := dataset.NewFileSink(outputPath, cfg.Format)
	if err != nil {
		return err
	}

	run := model.NewRun(cfg.StartYear, cfg.EndYear)

	var extra []dataset.Sink
	if cfg.Archive {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()
		logger.Info("archive opened", "path", db.Path())
		extra = append(extra, database.NewArchiveSink(db, run))
	}

	summaryOut := env.out
	if cfg.ReportFile != "" {
		rf := &reportFile{path: cfg.ReportFile}
		defer rf.Close()
		summaryOut = rf
	}

	fetcher := crawler.NewFetcher(
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)

	crawlerOpts := []crawler.Option{
		crawler.WithEndpoints(crawler.Endpoints{
			ListURL: cfg.ListURL,
			CaseURL: cfg.CaseURL,
			Filter:  cfg.CourtFilter,
			SortBy:  cfg.SortBy,
		}),
		crawler.WithListDelay(cfg.ListDelay),
		crawler.WithLogger(logger),
	}

	var bar *progress.Bar
	if env.progress != nil {
		bar = progress.New(env.progress)
		crawlerOpts = append(crawlerOpts, crawler.WithProgress(bar))
		bar.Start()
		defer bar.Stop()
	}

	aggregator := dataset.NewAggregator()
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewCrawlStep(
			crawler.NewYearPageCrawler(fetcher, crawlerOpts...),
			aggregator,
			logger,
		),
		&stopProgressStep{bar: bar},
		pipeline.NewFlushStep(aggregator, fileSink, extra...),
		pipeline.NewSummaryStep(summaryWriter(cfg, summaryOut)),
	)

	if err := p.Execute(ctx, run); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("crawl interrupted: %w", err)
		}
		return err
	}
	return nil
}

// stopProgressStep clears the progress indicator before the dataset and
// summary are written.
type stopProgressStep struct {
	bar *progress.Bar
}

func (s *stopProgressStep) Name() string {
	return "stop-progress"
}

func (s *stopProgressStep) Do(_ context.Context, _ *model.Run) error {
	if s.bar != nil {
		s.bar.Stop()
	}
	return nil
}

// summaryWriter returns the report writer for the configured format.
func summaryWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}

// reportFile is an io.Writer that creates its file on the first write,
// so a failed run leaves no empty report behind.
type reportFile struct {
	path string
	f    *os.File
}

func (r *reportFile) Write(p []byte) (int, error) {
	if r.f == nil {
		dir := filepath.Dir(r.path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return 0, fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.OpenFile(filepath.Clean(r.path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return 0, fmt.Errorf("failed to create report file: %w", err)
		}
		r.f = f
	}
	return r.f.Write(p)
}

// Close closes the file if it was created.
func (r *reportFile) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
