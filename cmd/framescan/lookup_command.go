package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"framescan/internal/scanner"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var (
		minLen  int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <file>",
		Short: "Resolve the sequence a single file belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			seq := scanner.FromFile(args[0], minLen)
			if seq == nil {
				return fmt.Errorf("%s is not part of a sequence", args[0])
			}

			if jsonOut {
				return writeJSON(cmd, seq)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatSeqLine(seq))
			if !seq.IsComplete() {
				fmt.Fprintf(out, "missing: %v\n", seq.Missed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&minLen, "min", "n", scanner.DefaultMinLen, "Minimum sequence length")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Emit JSON")
	return cmd
}
