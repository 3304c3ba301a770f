package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nao1215/casecrawl/internal/config"
	"github.com/nao1215/casecrawl/internal/database"
	"github.com/nao1215/casecrawl/internal/log"
	"github.com/nao1215/casecrawl/internal/model"
)

// defaultHistoryLimit is the number of runs listed when --limit is not set.
const defaultHistoryLimit = 20

// maxPartiesWidth caps the LegalParties column of the case table.
const maxPartiesWidth = 60

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs stored in the archive",
		Long: `History lists crawls saved with --archive, newest first.
With --run it lists the cases stored for one run instead.

Examples:
  # Show the last 20 archived runs
  casecrawl history

  # Show the cases of run 3
  casecrawl history --run 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs to list")
	cmd.Flags().Int64("run", 0, "List the cases of this run id")
	cmd.Flags().String("db-dir", "", "Archive directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no archive found (run a crawl with --archive first): %w", err)
	}
	defer db.Close()
	logger.Debug("archive opened", "path", db.Path())

	out := cmd.OutOrStdout()
	if runID > 0 {
		cases, err := db.RunCases(cmd.Context(), runID)
		if err != nil {
			return err
		}
		renderCases(out, runID, cases)
		return nil
	}

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs.")
		return nil
	}
	renderRuns(out, runs)
	return nil
}

// newTable returns a rounded table writer mirroring to out.
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// renderRuns prints one row per archived run.
func renderRuns(out io.Writer, runs []database.RunRecord) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Years", "Started", "Cases", "Dropped", "Output"})

	total := 0
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			fmt.Sprintf("%d-%d", r.StartYear, r.EndYear),
			r.StartedAt.Local().Format(time.DateTime),
			r.CaseCount,
			r.DroppedCount,
			r.OutputPath,
		})
		total += r.CaseCount
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d runs", len(runs)), "", total, "", ""})
	t.Render()
}

// renderCases prints the stored cases of one run.
func renderCases(out io.Writer, runID int64, cases []model.CaseRecord) {
	t := newTable(out)
	t.SetTitle(fmt.Sprintf("Run %d", runID))
	t.AppendHeader(table.Row{"Case", "Year", "Words", "Paragraphs", "Author", "Legal Parties"})

	for _, c := range cases {
		t.AppendRow(table.Row{
			c.CaseIdentifier,
			c.Year,
			c.WordCount,
			c.ParagraphCount,
			c.Author,
			text.Snip(c.LegalParties, maxPartiesWidth, "..."),
		})
	}

	t.AppendFooter(table.Row{"Total", len(cases), "", "", "", ""})
	t.Render()
}
