package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"md2gdocs/registry"
)

type historyEntry struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	DocumentID  string    `json:"document_id"`
	DocumentURL string    `json:"document_url"`
	PublishedAt time.Time `json:"published_at"`
	Headings    int       `json:"headings"`
}

func newHistoryCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List published files and their documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := registry.Open(cmd.Context(), a.cfg.RegistryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			pubs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			entries := make([]historyEntry, 0, len(pubs))
			for _, p := range pubs {
				entries = append(entries, historyEntry{
					Source:      p.SourcePath,
					Title:       p.Title,
					DocumentID:  p.DocumentID,
					DocumentURL: p.DocumentURL,
					PublishedAt: p.PublishedAt,
					Headings:    len(p.Outline),
				})
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return encode(out, format, entries)
			}

			s := newStyles(out)
			if len(entries) == 0 {
				fmt.Fprintln(out, s.Dim.Render("nothing published yet"))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s\n", s.Title.Render(e.Title), s.Dim.Render(e.PublishedAt.Local().Format(time.DateTime)))
				s.field(out, "source", e.Source)
				s.field(out, "url", e.DocumentURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}
