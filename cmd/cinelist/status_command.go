package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinelist/internal/records"
	"cinelist/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			counts, err := st.Counts(cmd.Context())
			if err != nil {
				return fmt.Errorf("count rows: %w", err)
			}

			rows := make([][]string, 0, len(records.AllEntities)+1)
			for _, entity := range records.AllEntities {
				rows = append(rows, []string{string(entity), strconv.FormatInt(counts[string(entity)], 10)})
			}
			rows = append(rows, []string{"credits", strconv.FormatInt(counts["credits"], 10)})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", st.Path())
			fmt.Fprintln(out, renderTable(
				[]string{"Table", "Rows"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
