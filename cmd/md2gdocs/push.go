package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"md2gdocs/debug"
	"md2gdocs/gdocs"
	"md2gdocs/markdown"
	"md2gdocs/registry"
)

type pushOptions struct {
	title   string
	docID   string
	update  bool
	share   string
	timeout time.Duration
}

func newPushCommand(a *app) *cobra.Command {
	var opts pushOptions

	cmd := &cobra.Command{
		Use:   "push [file|-]",
		Short: "Publish a markdown file to Google Docs",
		Long: `Compile a markdown file and write it to a Google Doc.

The target document is, in order: --doc, document_id from the front matter,
the document this file was last published to (unless --update=false), or a
new document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.push(cmd, sourceArg(args), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "document title (default: front matter title or file name)")
	f.StringVar(&opts.docID, "doc", "", "overwrite this document id")
	f.BoolVar(&opts.update, "update", true, "reuse the document this file was last published to")
	f.StringVar(&opts.share, "share", "", `share with an email address or "anyone"`)
	f.DurationVar(&opts.timeout, "async-timeout", 0, "cancel the publish pass after this long (0 waits indefinitely)")

	return cmd
}

func (a *app) push(cmd *cobra.Command, arg string, opts pushOptions) error {
	ctx := cmd.Context()

	src, err := readSource(arg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	for _, f := range markdown.Audit([]byte(src.Body)) {
		debug.Logger().Warn("unsupported markdown", "line", f.Line, "kind", f.Kind, "detail", f.Message)
	}

	var store *registry.Store
	if src.Path != "" {
		store, err = registry.Open(ctx, a.cfg.RegistryPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	req := gdocs.PublishRequest{
		Markdown:   src.Body,
		Title:      src.title(opts.title),
		DocumentID: firstNonEmpty(opts.docID, src.Meta.DocumentID),
		Share:      firstNonEmpty(opts.share, src.Meta.Share),
	}
	if req.DocumentID == "" && opts.update && store != nil {
		prev, err := store.Get(ctx, src.Path)
		switch {
		case err == nil:
			req.DocumentID = prev.DocumentID
			debug.Log("Updating previously published document %s", prev.DocumentID)
		case !errors.Is(err, registry.ErrNotFound):
			return err
		}
	}

	client, err := gdocs.NewClient(ctx, a.cfg)
	if err != nil {
		return err
	}
	publisher := gdocs.NewPublisher(client, gdocs.NewSubmitter(client, a.cfg),
		gdocs.WithCompilerOptions(a.compilerOptions()...),
		gdocs.WithShareRole(a.cfg.ShareRole),
	)

	res, err := awaitPublish(ctx, publisher.Start(ctx, req), opts.timeout)
	if err != nil {
		return err
	}

	if store != nil {
		if _, err := store.Record(ctx, registry.Publication{
			SourcePath:  src.Path,
			DocumentID:  res.DocumentID,
			DocumentURL: res.DocumentURL,
			Title:       req.Title,
			Outline:     res.Outline,
		}); err != nil {
			return fmt.Errorf("record publication: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	s := newStyles(out)
	verb := "Updated"
	if res.Created {
		verb = "Created"
	}
	fmt.Fprintln(out, s.Success.Render(verb+" "+req.Title))
	s.field(out, "document", res.DocumentID)
	s.field(out, "url", res.DocumentURL)
	s.field(out, "requests", res.Requests)
	s.field(out, "headings", len(res.Outline))
	return nil
}

// awaitPublish waits for task, cancelling it once timeout has passed or ctx
// ends.
func awaitPublish(ctx context.Context, task *gdocs.Task, timeout time.Duration) (*gdocs.PublishResult, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	var stopped error
	select {
	case <-task.Done():
	case <-expired:
		debug.Logger().Warn("publish pass timed out, cancelling", "timeout", timeout)
		stopped = fmt.Errorf("%w after %s", context.DeadlineExceeded, timeout)
		task.Cancel()
	case <-ctx.Done():
		stopped = ctx.Err()
		task.Cancel()
	}

	res, err := task.Wait(context.Background())
	if err != nil && stopped != nil {
		return nil, fmt.Errorf("%w: %v", stopped, err)
	}
	return res, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
