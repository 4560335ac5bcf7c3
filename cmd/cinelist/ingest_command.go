package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cinelist/internal/ingest"
	"cinelist/internal/logging"
	"cinelist/internal/store"
	"cinelist/internal/textutil"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var sources []string
	var cacheOnly bool
	var commitEvery int
	var showSamples int

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse the list files and load them into the database",
		Long: `Parse the configured list files into normalized database rows.

Without --sources every list file is processed in dependency order. A
selection runs only the named files; dependent files still resolve owners
against the resolver cache and the existing database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cacheOnly {
				cfg.Ingest.CacheOnly = true
			}
			if commitEvery > 0 {
				cfg.Ingest.CommitEvery = commitEvery
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pipeline := ingest.New(cfg, logger, st)
			summaries, runErr := pipeline.Run(runCtx, sources)
			if runErr != nil && errors.Is(runErr, ingest.ErrLocked) {
				return fmt.Errorf("another ingest run is already active (lock in %s)", cfg.Paths.CacheDir)
			}

			out := cmd.OutOrStdout()
			if len(summaries) > 0 {
				fmt.Fprintln(out, renderSummaries(summaries))
				if n := totalDiagnostics(summaries); n > 0 && showSamples == 0 {
					fmt.Fprintln(out, warnLine(fmt.Sprintf("%d lines produced diagnostics; rerun with --samples to inspect", n), shouldColorize(out)))
				}
				printDiagnosticSamples(out, summaries, showSamples)
			}
			if runErr != nil {
				return fmt.Errorf("ingest run %s failed: %w", pipeline.RunID(), runErr)
			}
			fmt.Fprintf(out, "Run %s complete\n", pipeline.RunID())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sources, "sources", nil, "List files to process (default: all)")
	cmd.Flags().BoolVar(&cacheOnly, "cache-only", false, "Resolve owners from the cache only, never the database")
	cmd.Flags().IntVar(&commitEvery, "commit-every", 0, "Override the configured commit interval")
	cmd.Flags().IntVar(&showSamples, "samples", 0, "Print up to N sampled diagnostics per file")
	return cmd
}

func renderSummaries(summaries []ingest.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			textutil.SourceDisplayName(s.Source),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Written),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Diagnostics),
			s.Duration.Round(time.Millisecond).String(),
		})
	}
	return renderTable(
		[]string{"Source", "Lines", "Written", "Skipped", "Diagnostics", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func totalDiagnostics(summaries []ingest.Summary) int {
	total := 0
	for _, s := range summaries {
		total += s.Diagnostics
	}
	return total
}

func printDiagnosticSamples(out io.Writer, summaries []ingest.Summary, limit int) {
	if limit <= 0 {
		return
	}
	for _, s := range summaries {
		for i, d := range s.Samples {
			if i >= limit {
				fmt.Fprintf(out, "%s: %d more diagnostics not shown\n", s.Source, s.Diagnostics-limit)
				break
			}
			fmt.Fprintf(out, "%s:%d: %s\n", d.Source, d.Line, d.Reason)
		}
	}
}
