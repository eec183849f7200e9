package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"takeout/internal/batch"
	"takeout/internal/config"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the chunk queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueResetCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	var batchID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show chunk counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *batch.Store) error {
				counts, err := store.Counts(cmd.Context(), batchID)
				if err != nil {
					return err
				}
				if len(counts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderQueueStatus(counts))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Limit to a single batch")
	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var batchID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chunks with their status and last error",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *batch.Store) error {
				chunks, err := store.List(cmd.Context(), batchID)
				if err != nil {
					return err
				}
				if len(chunks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				rows := make([][]string, 0, len(chunks))
				for _, chunk := range chunks {
					rows = append(rows, []string{
						shortID(chunk.ID),
						shortID(chunk.BatchID),
						string(chunk.Status),
						strconv.Itoa(len(chunk.Members)),
						strconv.Itoa(chunk.Attempts),
						truncateError(chunk.LastError),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Chunk", "Batch", "Status", "Files", "Attempts", "Last error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Limit to a single batch")
	return cmd
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Return chunks stranded in the writing state to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *batch.Store) error {
				reset, err := store.ResetStuck(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d stuck chunk(s) to pending\n", reset)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var batchID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove chunks from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *batch.Store) error {
				if err := store.Clear(cmd.Context(), batchID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Queue cleared")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Limit to a single batch")
	return cmd
}

func renderQueueStatus(counts map[batch.Status]int) string {
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)

	rows := make([][]string, 0, len(statuses))
	total := 0
	for _, status := range statuses {
		count := counts[batch.Status(status)]
		total += count
		rows = append(rows, []string{status, strconv.Itoa(count)})
	}
	rows = append(rows, []string{"total", strconv.Itoa(total)})
	return renderTable([]string{"Status", "Chunks"}, rows, []columnAlignment{alignLeft, alignRight})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateError(message string) string {
	const limit = 60
	if len(message) <= limit {
		return message
	}
	return message[:limit-3] + "..."
}
