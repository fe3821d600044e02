package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReparseCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "reparse",
		Short: "Re-run the parser over every stored decision",
		Long: `Re-parse the stored full text of every decision and rewrite its metadata
and sections. Use after parser rules change. Failures are logged and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if batchSize <= 0 {
				return fmt.Errorf("--batch-size must be positive, got %d", batchSize)
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			var (
				after          uuid.UUID
				total, skipped int
			)
			for {
				ids, err := a.repo.ListIDs(ctx, after, batchSize)
				if err != nil {
					return fmt.Errorf("listing decisions after %s: %w", after, err)
				}
				if len(ids) == 0 {
					break
				}

				for _, id := range ids {
					if _, err := a.decisions.Reparse(ctx, id); err != nil {
						a.log.Warn("reparse_skipped", zap.String("decision_id", id.String()), zap.Error(err))
						skipped++
						continue
					}
					total++
				}
				after = ids[len(ids)-1]
				a.log.Info("reparse_batch_completed", zap.Int("reparsed", total), zap.Int("skipped", skipped))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "reparse complete: %d decisions updated, %d skipped\n", total, skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "decisions loaded per page")
	return cmd
}
