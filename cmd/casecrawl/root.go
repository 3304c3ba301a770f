package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for casecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "casecrawl",
		Short: "Collect Singapore Supreme Court judgments into a dataset",
		Long: `casecrawl walks the eLitigation judgment listings year by year, reads
every judgment page and writes one row per case to a tabular file:

  CaseIdentifier, Catchwords, Year, URL, WordCount, ParagraphCount,
  Author, LegalParties

Requests are sequential with a pause after every listing page.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
