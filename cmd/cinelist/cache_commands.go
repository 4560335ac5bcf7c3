package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cinelist/internal/logging"
	"cinelist/internal/records"
	"cinelist/internal/resolve"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Resolver cache maintenance",
	}

	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolver snapshot contents per entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			resolver := resolve.New(cfg.Paths.CacheDir, logging.NewNop())
			rows := make([][]string, 0, len(records.AllEntities))
			for _, kind := range records.AllEntities {
				loaded, err := resolver.Restore(kind, false)
				if err != nil {
					return fmt.Errorf("read %s snapshot: %w", kind, err)
				}
				state := "missing"
				if loaded {
					state = "loaded"
				}
				rows = append(rows, []string{
					string(kind),
					state,
					strconv.Itoa(resolver.Count(kind)),
					strconv.FormatInt(resolver.NextID(kind), 10),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache directory: %s\n", cfg.Paths.CacheDir)
			fmt.Fprintln(out, renderTable(
				[]string{"Entity", "Snapshot", "Keys", "Next ID"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete resolver snapshots",
		Long: `Delete the resolver snapshot files. The next ingest run starts with a
cold cache and falls back to database lookups for previously committed
entities.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			matches, err := filepath.Glob(filepath.Join(cfg.Paths.CacheDir, "*.resolver.json"))
			if err != nil {
				return fmt.Errorf("scan cache directory: %w", err)
			}
			removed := 0
			for _, path := range matches {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("remove snapshot %s: %w", path, err)
				}
				removed++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d snapshot file(s) from %s\n", removed, cfg.Paths.CacheDir)
			return nil
		},
	}
}
