package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"md2gdocs/markdown"
)

type checkReport struct {
	Findings []markdown.Finding `json:"findings"`
	Requests int                `json:"requests"`
	Error    string             `json:"error,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Report markdown the compiler cannot render faithfully",
		Long: `List code blocks, images, nested lists and raw HTML, which are published
as plain text or dropped, and verify that the file compiles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(sourceArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			report := checkReport{Findings: markdown.Audit([]byte(src.Body))}
			compiled, compileErr := a.dryRun(cmd, src.Body, 1)
			if compileErr != nil {
				report.Error = compileErr.Error()
			} else {
				report.Requests = len(compiled.Requests)
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				if err := encode(out, format, report); err != nil {
					return err
				}
				return compileErr
			}

			s := newStyles(out)
			for _, f := range report.Findings {
				fmt.Fprintf(out, "%s %s\n", s.Warning.Render("warning"), f)
			}
			if compileErr != nil {
				return compileErr
			}
			fmt.Fprintf(out, "%s %d request(s), %d warning(s)\n",
				s.Success.Render("ok"), report.Requests, len(report.Findings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}
