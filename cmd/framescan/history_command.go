package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framescan/internal/catalog"
	"framescan/internal/config"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the scan-history catalog",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func withCatalog(ctx *commandContext, fn func(cfg *config.Config, store *catalog.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, func(cfg *config.Config, store *catalog.Store) error {
				scans, err := store.ListScans(context.Background(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(scans) == 0 {
					fmt.Fprintln(out, "No recorded scans.")
					return nil
				}

				rows := make([][]string, 0, len(scans))
				for _, scan := range scans {
					rows = append(rows, []string{
						scan.ID,
						scan.StartedAt.Local().Format(time.DateTime),
						strings.Join(scan.Roots, ", "),
						strconv.Itoa(scan.SeqCount),
						strconv.Itoa(scan.FileCount),
						strconv.Itoa(len(scan.Errors)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Started", "Roots", "Seqs", "Files", "Errors"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum scans to list (0 = all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <scan-id>",
		Short: "Show one recorded scan with its sequences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, func(cfg *config.Config, store *catalog.Store) error {
				scan, err := store.GetScan(context.Background(), args[0])
				if err != nil {
					return err
				}
				seqs, err := store.Sequences(context.Background(), scan.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scan %s\n", scan.ID)
				fmt.Fprintf(out, "  started:   %s\n", scan.StartedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "  elapsed:   %s\n", scan.Elapsed.Round(time.Millisecond))
				fmt.Fprintf(out, "  roots:     %s\n", strings.Join(scan.Roots, ", "))
				fmt.Fprintf(out, "  recursive: %v\n", scan.Recursive)
				if scan.Filter != "" {
					fmt.Fprintf(out, "  filter:    %s\n", scan.Filter)
				}
				fmt.Fprintf(out, "  min len:   %d\n", scan.MinLen)
				for _, e := range scan.Errors {
					fmt.Fprintf(out, "  error:     %s\n", e)
				}

				if len(seqs) == 0 {
					fmt.Fprintln(out, "No sequences recorded.")
					return nil
				}
				rows := make([][]string, 0, len(seqs))
				for _, seq := range seqs {
					rows = append(rows, []string{
						seq.Pattern,
						fmt.Sprintf("%d-%d", seq.Start, seq.End),
						strconv.Itoa(seq.FrameCount),
						strconv.Itoa(seq.MissedCount),
						formatPadding(seq.Padding),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Pattern", "Range", "Files", "Missed", "Padding"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest recorded scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(ctx, func(cfg *config.Config, store *catalog.Store) error {
				removed, err := store.Prune(context.Background(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d scan(s), kept %d.\n", removed, keep)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 10, "Number of scans to keep")
	return cmd
}
