package gdocs

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"md2gdocs/debug"
	"md2gdocs/markdown"
)

// ShareAnyone shares a document with everyone who has the link.
const ShareAnyone = "anyone"

type PublishRequest struct {
	// Markdown is the body to compile, without front matter.
	Markdown string
	Title    string
	// DocumentID names an existing document to overwrite. Empty creates one.
	DocumentID string
	// Share is an email address, ShareAnyone, or empty for no sharing.
	Share string
}

type PublishResult struct {
	DocumentID  string
	DocumentURL string
	Created     bool
	Outline     []markdown.Heading
	// Requests counts every request sent to the document.
	Requests int
}

type Publisher struct {
	client       *Client
	submitter    *Submitter
	compilerOpts []markdown.Option
	shareRole    string
	locks        *docLocks
}

type PublisherOption func(*Publisher)

func WithCompilerOptions(opts ...markdown.Option) PublisherOption {
	return func(p *Publisher) {
		p.compilerOpts = append(p.compilerOpts, opts...)
	}
}

func WithShareRole(role string) PublisherOption {
	return func(p *Publisher) {
		if role != "" {
			p.shareRole = role
		}
	}
}

func NewPublisher(c *Client, s *Submitter, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client:    c,
		submitter: s,
		shareRole: "writer",
		locks:     newDocLocks(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func DocumentURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", id)
}

// Start runs Publish on its own goroutine. Cancelling ctx or the returned
// task stops the pass at its next request.
func (p *Publisher) Start(ctx context.Context, req PublishRequest) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer cancel()
		defer close(t.done)
		t.result, t.err = p.Publish(ctx, req)
	}()

	return t
}

// Publish compiles req.Markdown into a document. Passes against the same
// document run one at a time.
func (p *Publisher) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	res := &PublishResult{DocumentID: req.DocumentID}

	if res.DocumentID == "" {
		created, err := p.client.Docs.Documents.Create(&docs.Document{Title: req.Title}).Context(ctx).Do()
		if err != nil {
			return nil, markdown.RemoteError(err, markdown.CodeRemoteFailure, "creating document failed")
		}
		res.DocumentID = created.DocumentId
		res.Created = true
		debug.Log("Created document %s", res.DocumentID)
	}
	res.DocumentURL = DocumentURL(res.DocumentID)

	unlock, err := p.locks.lock(ctx, res.DocumentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc := NewDocument(p.client, p.submitter, res.DocumentID)

	prelude, err := p.prelude(ctx, doc, res.Created)
	if err != nil {
		return nil, err
	}
	if err := p.submitter.Submit(ctx, doc.ID, prelude); err != nil {
		return nil, markdown.RemoteError(err, markdown.CodeRemoteFailure, "preparing document failed")
	}

	if !res.Created && req.Title != "" {
		if err := p.rename(ctx, doc.ID, req.Title); err != nil {
			return nil, err
		}
	}

	compiled, err := markdown.NewCompiler(doc, p.compilerOpts...).Compile(ctx, req.Markdown)
	if err != nil {
		return nil, err
	}
	if err := p.submitter.Submit(ctx, doc.ID, compiled.Requests); err != nil {
		return nil, markdown.RemoteError(err, markdown.CodeRemoteFailure, "submitting requests failed")
	}

	if req.Share != "" {
		if err := p.share(ctx, doc.ID, req.Share); err != nil {
			return nil, err
		}
	}

	res.Outline = compiled.Outline
	res.Requests = len(prelude) + compiled.Applied + len(compiled.Requests)
	return res, nil
}

// prelude clears an existing document and sets 1 inch margins.
func (p *Publisher) prelude(ctx context.Context, doc *Document, created bool) ([]*docs.Request, error) {
	var reqs []*docs.Request

	if !created {
		end, err := doc.EndIndex(ctx)
		if err != nil {
			return nil, markdown.RemoteError(err, markdown.CodeRemoteFailure, "reading document failed")
		}
		// The final paragraph break of a body cannot be deleted.
		if end-1 > 1 {
			reqs = append(reqs, &docs.Request{
				DeleteContentRange: &docs.DeleteContentRangeRequest{
					Range: &docs.Range{StartIndex: 1, EndIndex: end - 1},
				},
			})
		}
	}

	marginPt := &docs.Dimension{Magnitude: 72, Unit: "PT"}
	reqs = append(reqs, &docs.Request{
		UpdateDocumentStyle: &docs.UpdateDocumentStyleRequest{
			DocumentStyle: &docs.DocumentStyle{
				MarginTop:    marginPt,
				MarginBottom: marginPt,
				MarginLeft:   marginPt,
				MarginRight:  marginPt,
			},
			Fields: "marginTop,marginBottom,marginLeft,marginRight",
		},
	})

	return reqs, nil
}

func (p *Publisher) rename(ctx context.Context, docID, title string) error {
	_, err := p.client.Drive.Files.Update(docID, &drive.File{Name: title}).Context(ctx).Do()
	if err != nil {
		return markdown.RemoteError(err, markdown.CodeRemoteFailure, "renaming document failed")
	}
	return nil
}

func (p *Publisher) share(ctx context.Context, docID, with string) error {
	perm := &drive.Permission{Role: p.shareRole}
	if strings.EqualFold(with, ShareAnyone) {
		perm.Type = "anyone"
	} else {
		perm.Type = "user"
		perm.EmailAddress = with
	}

	call := p.client.Drive.Permissions.Create(docID, perm).Context(ctx)
	if perm.Type == "user" {
		call = call.SendNotificationEmail(false)
	}
	if _, err := call.Do(); err != nil {
		return markdown.RemoteError(err, markdown.CodeRemoteFailure, "sharing document failed")
	}
	debug.Log("Shared %s with %s as %s", docID, with, p.shareRole)
	return nil
}

// Task is a publish pass running in the background.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	result *PublishResult
	err    error
}

// Done is closed when the pass has finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel stops the pass. Requests already applied stay in the document.
func (t *Task) Cancel() { t.cancel() }

// Wait blocks until the pass finishes or ctx ends. Ending ctx does not
// cancel the pass.
func (t *Task) Wait(ctx context.Context) (*PublishResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// docLocks serializes passes per document id.
type docLocks struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newDocLocks() *docLocks {
	return &docLocks{held: make(map[string]chan struct{})}
}

func (l *docLocks) lock(ctx context.Context, id string) (func(), error) {
	for {
		l.mu.Lock()
		busy, ok := l.held[id]
		if !ok {
			release := make(chan struct{})
			l.held[id] = release
			l.mu.Unlock()
			return func() {
				l.mu.Lock()
				delete(l.held, id)
				l.mu.Unlock()
				close(release)
			}, nil
		}
		l.mu.Unlock()

		debug.Log("Waiting for in-flight pass on %s", id)
		select {
		case <-busy:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
