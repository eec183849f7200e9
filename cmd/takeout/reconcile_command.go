package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"takeout/internal/reconcile"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var tryhard bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Restore truncated media filenames from sidecar titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Reconcile.DryRun = dryRun
			}
			if cmd.Flags().Changed("tryhard") {
				cfg.Reconcile.Tryhard = tryhard
			}

			opts := []reconcile.Option{}
			if isTerminal(os.Stderr) {
				var bar *progressbar.ProgressBar
				opts = append(opts, reconcile.WithObserver(func(done, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetDescription("reconciling"),
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionClearOnFinish(),
						)
					}
					_ = bar.Set(done)
				}))
			}

			summary, err := reconcile.New(cfg, logger, opts...).Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReconcileSummary(summary, cfg.Reconcile.DryRun))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report renames without touching files")
	cmd.Flags().BoolVar(&tryhard, "tryhard", false, "Search expanded sidecar naming variants")
	return cmd
}

func renderReconcileSummary(summary reconcile.Summary, dryRun bool) string {
	rows := [][]string{
		{"Checked", strconv.Itoa(summary.Checked)},
		{"Renamed", strconv.Itoa(summary.Renamed)},
	}
	if dryRun {
		rows = append(rows, []string{"Would rename", strconv.Itoa(summary.WouldRename)})
	}
	rows = append(rows,
		[]string{"No sidecar", strconv.Itoa(summary.NoSidecar)},
		[]string{"No title", strconv.Itoa(summary.NoTitle)},
		[]string{"Not truncated", strconv.Itoa(summary.NotTruncated)},
		[]string{"Target exists", strconv.Itoa(summary.TargetExists)},
		[]string{"Failed", strconv.Itoa(summary.Failed)},
	)
	return renderTable([]string{"Outcome", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
