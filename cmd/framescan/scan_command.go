package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"framescan/internal/catalog"
	"framescan/internal/filter"
	"framescan/internal/scanner"
	"framescan/internal/sequence"
)

type scanOutput struct {
	Sequences      []*sequence.Seq `json:"sequences"`
	TotalSequences int             `json:"total_sequences"`
	TotalFiles     int             `json:"total_files"`
	ElapsedMS      float64         `json:"elapsed_ms"`
	Errors         []string        `json:"errors"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive  bool
		filterSpec string
		minLen     int
		workers    int
		jsonOut    bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Detect file sequences under one or more directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec := cfg.Scan.Filter
			if cmd.Flags().Changed("filter") {
				spec = filterSpec
			}
			fileFilter, err := filter.Parse(spec)
			if err != nil {
				return err
			}

			scanCfg := scanner.NewConfig(args...).
				WithFilter(fileFilter).
				WithMinLen(resolveInt(cmd, "min", minLen, cfg.Scan.MinLen)).
				WithWorkers(resolveInt(cmd, "workers", workers, cfg.Scan.Workers))
			if cmd.Flags().Changed("recursive") {
				scanCfg = scanCfg.WithRecursive(recursive)
			} else {
				scanCfg = scanCfg.WithRecursive(cfg.Scan.Recursive)
			}

			opts := []scanner.Option{scanner.WithLogger(ctx.ensureLogger())}
			var bar *progressbar.ProgressBar
			if !noProgress && !jsonOut && isTerminal(os.Stderr) {
				bar = progressbar.NewOptions64(1,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("scanning"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				opts = append(opts, scanner.WithProgress(func(done, total int64) {
					bar.ChangeMax64(total)
					_ = bar.Set64(done)
				}))
			}

			s, err := scanner.New(scanCfg, opts...)
			if err != nil {
				return err
			}
			result := s.Scan()
			if bar != nil {
				_ = bar.Finish()
			}

			recordScan(cmd, cfg.Catalog.Enabled, cfg.Catalog.Path, s.Config(), result)

			if jsonOut {
				if err := writeJSON(cmd, newScanOutput(result)); err != nil {
					return err
				}
			} else {
				printScanResult(cmd, result)
			}

			if len(result.Errors) > 0 {
				return fmt.Errorf("scan finished with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Scan subdirectories")
	cmd.Flags().StringVarP(&filterSpec, "filter", "m", "", "File filter: extension list (\"exr,dpx\") or glob (\"*.{exr,png}\")")
	cmd.Flags().IntVarP(&minLen, "min", "n", scanner.DefaultMinLen, "Minimum sequence length")
	cmd.Flags().IntVar(&workers, "workers", 0, "Directory worker count (0 = CPU count)")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Emit JSON")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}

// resolveInt prefers an explicitly set flag over the config default.
func resolveInt(cmd *cobra.Command, name string, flagValue, configValue int) int {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func newScanOutput(result *scanner.Result) scanOutput {
	seqs := result.Seqs
	if seqs == nil {
		seqs = []*sequence.Seq{}
	}
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	return scanOutput{
		Sequences:      seqs,
		TotalSequences: len(seqs),
		TotalFiles:     result.TotalFiles(),
		ElapsedMS:      float64(result.Elapsed) / float64(time.Millisecond),
		Errors:         errs,
	}
}

func printScanResult(cmd *cobra.Command, result *scanner.Result) {
	out := cmd.OutOrStdout()
	printErrors(cmd, result.Errors)

	if len(result.Seqs) == 0 {
		fmt.Fprintln(out, "No sequences found.")
		return
	}

	if isTerminal(out) {
		rows := make([][]string, 0, len(result.Seqs))
		for _, seq := range result.Seqs {
			rows = append(rows, []string{
				seq.Pattern(),
				fmt.Sprintf("%d-%d", seq.Start, seq.End),
				strconv.Itoa(seq.Len()),
				strconv.Itoa(len(seq.Missed)),
				formatPadding(seq.Padding),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Pattern", "Range", "Files", "Missed", "Padding"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
		))
	} else {
		for _, seq := range result.Seqs {
			fmt.Fprintln(out, formatSeqLine(seq))
		}
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(out, "%d sequences, %d files in %s\n",
		len(result.Seqs), result.TotalFiles(), result.Elapsed.Round(time.Millisecond))
}

func formatSeqLine(seq *sequence.Seq) string {
	if seq.IsComplete() {
		return fmt.Sprintf("%s [%d-%d] (%d files)", seq.Pattern(), seq.Start, seq.End, seq.Len())
	}
	return fmt.Sprintf("%s [%d-%d] (%d files, %d missed)",
		seq.Pattern(), seq.Start, seq.End, seq.Len(), len(seq.Missed))
}

func formatPadding(padding int) string {
	if padding == 0 {
		return "-"
	}
	return strconv.Itoa(padding)
}

func printErrors(cmd *cobra.Command, errs []string) {
	if len(errs) == 0 {
		return
	}
	errOut := cmd.ErrOrStderr()
	red := color.New(color.FgRed)
	for _, e := range errs {
		red.Fprintf(errOut, "error: %s\n", e)
	}
}

// recordScan writes the run into the catalog when enabled. Catalog
// problems never fail the scan itself.
func recordScan(cmd *cobra.Command, enabled bool, path string, cfg scanner.Config, result *scanner.Result) {
	if !enabled {
		return
	}
	store, err := catalog.Open(path)
	if err != nil {
		warnCatalog(cmd, err)
		return
	}
	defer store.Close()

	rec := catalog.ScanRecord{
		Roots:     cfg.Roots,
		Recursive: cfg.Recursive,
		MinLen:    cfg.MinLen,
		Elapsed:   result.Elapsed,
		Errors:    result.Errors,
		Seqs:      result.Seqs,
	}
	if cfg.Filter != nil {
		rec.Filter = cfg.Filter.String()
	}
	if _, err := store.RecordScan(context.Background(), rec); err != nil {
		warnCatalog(cmd, err)
	}
}

func warnCatalog(cmd *cobra.Command, err error) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(cmd.ErrOrStderr(), "warning: catalog: %v\n", err)
}
