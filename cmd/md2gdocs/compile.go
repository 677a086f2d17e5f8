package main

import (
	"github.com/spf13/cobra"
	"google.golang.org/api/docs/v1"
	"md2gdocs/markdown"
)

type compileOutput struct {
	Requests []*docs.Request    `json:"requests"`
	Cursor   int64              `json:"cursor"`
	Outline  []markdown.Heading `json:"outline"`
}

func newCompileCommand(a *app) *cobra.Command {
	var (
		format     string
		startIndex int64
	)

	cmd := &cobra.Command{
		Use:   "compile [file|-]",
		Short: "Print the Docs requests a file compiles to, without sending them",
		Long: `Compile markdown offline. Table positions are predicted as they would be
in a document that receives exactly these requests.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(sourceArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			out, err := a.dryRun(cmd, src.Body, startIndex)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().Int64Var(&startIndex, "start-index", 1, "index of the first writable position")
	return cmd
}

// dryRun compiles body against a DryRunDocument and returns every request in
// the order a real document would receive them.
func (a *app) dryRun(cmd *cobra.Command, body string, startIndex int64) (*compileOutput, error) {
	doc := markdown.NewDryRunDocument()
	opts := append(a.compilerOptions(), markdown.WithStartIndex(startIndex))

	res, err := markdown.NewCompiler(doc, opts...).Compile(cmd.Context(), body)
	if err != nil {
		return nil, err
	}

	return &compileOutput{
		Requests: append(doc.Requests(), res.Requests...),
		Cursor:   res.Cursor,
		Outline:  res.Outline,
	}, nil
}
