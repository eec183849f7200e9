package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"takeout/internal/batch"
	"takeout/internal/config"
	"takeout/internal/media"
	"takeout/internal/writer"
)

func newWriteCommand(ctx *commandContext) *cobra.Command {
	var resumeBatch string

	cmd := &cobra.Command{
		Use:   "write [paths...]",
		Short: "Write sidecar metadata into media files with exiftool",
		Long: "Seeds a chunked write batch from the given paths (or the whole archive " +
			"when none are given) and drains it through exiftool. Chunks whose " +
			"failures name files outside the chunk are marked mismatched and " +
			"never retried.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *batch.Store) error {
				client := writer.NewCLI(
					writer.WithBinary(cfg.ExiftoolBinary()),
					writer.WithTimeout(time.Duration(cfg.Exiftool.TimeoutSeconds)*time.Second),
				)
				runner := writer.NewRunner(cfg, store, client, logger)

				batchID := resumeBatch
				if batchID == "" {
					paths := args
					if len(paths) == 0 {
						records, err := media.Scan(cfg.Paths.TakeoutDir)
						if err != nil {
							return fmt.Errorf("scan archive: %w", err)
						}
						for _, rec := range records {
							paths = append(paths, rec.PrimaryPath())
						}
					}
					batchID, err = runner.Seed(cmd.Context(), paths)
					if err != nil {
						return err
					}
				}

				summary, err := runner.Run(cmd.Context(), batchID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Batch %s\n", batchID)
				fmt.Fprintln(out, renderWriteSummary(summary))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&resumeBatch, "resume", "", "Drain the pending chunks of an existing batch instead of seeding a new one")
	return cmd
}

func renderWriteSummary(summary writer.Summary) string {
	rows := [][]string{
		{"Completed chunks", strconv.Itoa(summary.ChunksCompleted)},
		{"Failed chunks", strconv.Itoa(summary.ChunksFailed)},
		{"Mismatched chunks", strconv.Itoa(summary.ChunksMismatched)},
		{"Write attempts", strconv.Itoa(summary.WriteAttempts)},
	}
	return renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
