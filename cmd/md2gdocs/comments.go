package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"md2gdocs/gdocs"
	"md2gdocs/markdown"
	"md2gdocs/registry"
)

type commentsOptions struct {
	docID   string
	all     bool
	resolve []string
	format  string
}

func newCommentsCommand(a *app) *cobra.Command {
	var opts commentsOptions

	cmd := &cobra.Command{
		Use:   "comments [file]",
		Short: "List or resolve comments on a published document",
		Long: `List the comments on the document a file was published to, grouped under
the heading each comment is anchored in when the anchor carries a position.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.comments(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.docID, "doc", "", "document id (default: the document the file was published to)")
	f.BoolVar(&opts.all, "all", false, "include resolved comments")
	f.StringSliceVar(&opts.resolve, "resolve", nil, "resolve these comment ids")
	f.StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func (a *app) comments(cmd *cobra.Command, args []string, opts commentsOptions) error {
	ctx := cmd.Context()

	store, err := registry.Open(ctx, a.cfg.RegistryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	docID, outline, err := lookupDocument(cmd, store, args, opts.docID)
	if err != nil {
		return err
	}

	client, err := gdocs.NewClient(ctx, a.cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := newStyles(out)

	if len(opts.resolve) > 0 {
		resolved := gdocs.ResolveComments(ctx, client, docID, opts.resolve)
		fmt.Fprintf(out, "%s %d/%d comment(s)\n", s.Success.Render("resolved"), len(resolved), len(opts.resolve))
		if len(resolved) < len(opts.resolve) {
			return fmt.Errorf("%d comment(s) could not be resolved", len(opts.resolve)-len(resolved))
		}
		return nil
	}

	comments, err := gdocs.ListComments(ctx, client, docID, gdocs.ListOptions{
		Outline:         outline,
		IncludeResolved: opts.all,
	})
	if err != nil {
		return err
	}

	if opts.format != formatText {
		return encode(out, opts.format, comments)
	}

	if len(comments) == 0 {
		fmt.Fprintln(out, s.Dim.Render("no comments"))
		return nil
	}
	for _, c := range comments {
		section := "(unplaced)"
		if c.Section != nil {
			section = c.Section.Text
		}
		fmt.Fprintf(out, "%s %s %s\n", s.Title.Render(section), s.Dim.Render(c.ID), s.Label.Render(c.AuthorName))
		if c.QuotedText != "" {
			fmt.Fprintf(out, "  > %s\n", c.QuotedText)
		}
		fmt.Fprintf(out, "  %s\n", c.Text)
	}
	return nil
}

// lookupDocument resolves the document id and its recorded outline from the
// --doc flag or a previously published file.
func lookupDocument(cmd *cobra.Command, store *registry.Store, args []string, docID string) (string, []markdown.Heading, error) {
	ctx := cmd.Context()

	if docID != "" {
		pubs, err := store.List(ctx)
		if err != nil {
			return "", nil, err
		}
		for _, p := range pubs {
			if p.DocumentID == docID {
				return docID, p.Outline, nil
			}
		}
		return docID, nil, nil
	}

	if len(args) == 0 {
		return "", nil, errors.New("give a published file or --doc")
	}
	src, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return "", nil, err
	}
	if src.Meta.DocumentID != "" {
		return src.Meta.DocumentID, nil, nil
	}

	pub, err := store.Get(ctx, src.Path)
	if errors.Is(err, registry.ErrNotFound) {
		return "", nil, fmt.Errorf("%s has not been published", args[0])
	}
	if err != nil {
		return "", nil, err
	}
	return pub.DocumentID, pub.Outline, nil
}
