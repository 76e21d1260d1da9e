package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"framescan/internal/filter"
	"framescan/internal/walk"
)

type filesOutput struct {
	Files    []string `json:"files"`
	Total    int      `json:"total"`
	Warnings []string `json:"warnings"`
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	var (
		recursive bool
		exts      []string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "files [paths...]",
		Short: "List files matching extensions or globs, without sequence grouping",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			f := filter.All()
			if len(exts) > 0 {
				spec := strings.Join(exts, ",")
				if strings.ContainsAny(spec, "{") {
					parsed, err := filter.Parse(spec)
					if err != nil {
						return err
					}
					f = parsed
				} else {
					f = filter.Extensions(exts...)
				}
			}

			files, warnings := walk.Files(args, recursive, f)

			if jsonOut {
				out := filesOutput{Files: files, Total: len(files), Warnings: warnings}
				if out.Files == nil {
					out.Files = []string{}
				}
				if out.Warnings == nil {
					out.Warnings = []string{}
				}
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
			} else {
				printErrors(cmd, warnings)
				out := cmd.OutOrStdout()
				for _, file := range files {
					fmt.Fprintln(out, file)
				}
				printer := message.NewPrinter(language.English)
				printer.Fprintf(cmd.ErrOrStderr(), "Total: %d files\n", len(files))
			}

			if len(warnings) > 0 {
				return fmt.Errorf("file scan finished with %d error(s)", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Scan subdirectories")
	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, "Extensions to match (supports globs: jp*, tif?)")
	cmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Emit JSON")
	return cmd
}
