package markdown

import (
	"context"
	"sync"

	"google.golang.org/api/docs/v1"
)

// DryRunDocument is a Document that only records what it is sent. The start
// of an inserted table is predicted as one past its insert location, where
// Docs places a table after splitting the paragraph it is inserted into.
type DryRunDocument struct {
	mu        sync.Mutex
	batches   [][]*docs.Request
	lastTable int64
}

func NewDryRunDocument() *DryRunDocument {
	return &DryRunDocument{lastTable: -1}
}

func (d *DryRunDocument) BatchUpdate(_ context.Context, reqs []*docs.Request) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	batch := make([]*docs.Request, len(reqs))
	copy(batch, reqs)
	d.batches = append(d.batches, batch)

	for _, r := range reqs {
		if r.InsertTable != nil && r.InsertTable.Location != nil {
			d.lastTable = r.InsertTable.Location.Index + 1
		}
	}
	return nil
}

func (d *DryRunDocument) LastTableStart(context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lastTable < 0 {
		return 0, RemoteError(ErrTableNotFound, CodeTableNotFound, "no table has been inserted")
	}
	return d.lastTable, nil
}

// Batches returns the recorded batches in the order they were applied.
func (d *DryRunDocument) Batches() [][]*docs.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.batches
}

// Requests returns every recorded request as one ordered list.
func (d *DryRunDocument) Requests() []*docs.Request {
	d.mu.Lock()
	defer d.mu.Unlock()

	var all []*docs.Request
	for _, b := range d.batches {
		all = append(all, b...)
	}
	return all
}
