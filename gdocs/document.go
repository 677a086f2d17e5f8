package gdocs

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"
	"md2gdocs/markdown"
)

// Document is a remote Google Doc a compilation pass writes into.
type Document struct {
	ID        string
	client    *Client
	submitter *Submitter
}

func NewDocument(c *Client, s *Submitter, id string) *Document {
	return &Document{ID: id, client: c, submitter: s}
}

func (d *Document) BatchUpdate(ctx context.Context, reqs []*docs.Request) error {
	return d.submitter.Submit(ctx, d.ID, reqs)
}

// LastTableStart reads the document body and returns the start index of its
// last table.
func (d *Document) LastTableStart(ctx context.Context) (int64, error) {
	doc, err := d.client.Docs.Documents.Get(d.ID).Fields("body").Context(ctx).Do()
	if err != nil {
		return 0, markdown.RemoteError(err, markdown.CodeRemoteFailure, "reading document body failed")
	}

	el := lastTable(doc)
	if el == nil {
		return 0, markdown.RemoteError(markdown.ErrTableNotFound, markdown.CodeTableNotFound,
			fmt.Sprintf("document %s has no table", d.ID))
	}
	return el.StartIndex, nil
}

// EndIndex returns the index just past the document body.
func (d *Document) EndIndex(ctx context.Context) (int64, error) {
	doc, err := d.client.Docs.Documents.Get(d.ID).Fields("body").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	return documentEndIndex(doc), nil
}

func lastTable(doc *docs.Document) *docs.StructuralElement {
	if doc.Body == nil {
		return nil
	}
	var last *docs.StructuralElement
	for _, el := range doc.Body.Content {
		if el.Table != nil {
			last = el
		}
	}
	return last
}

func documentEndIndex(doc *docs.Document) int64 {
	var end int64 = 1
	if doc.Body == nil {
		return end
	}
	for _, el := range doc.Body.Content {
		if el.EndIndex > end {
			end = el.EndIndex
		}
	}
	return end
}
