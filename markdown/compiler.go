package markdown

import (
	"context"

	"google.golang.org/api/docs/v1"
	"md2gdocs/debug"
)

// Document is the target of a compilation pass.
//
// BatchUpdate applies requests in order. LastTableStart reports the start
// index of the most recently inserted table.
type Document interface {
	BatchUpdate(ctx context.Context, reqs []*docs.Request) error
	LastTableStart(ctx context.Context) (int64, error)
}

type Option func(*Compiler)

// WithStartIndex sets the first writable index. Defaults to 1, the index
// right after the body's section break.
func WithStartIndex(index int64) Option {
	return func(c *Compiler) {
		if index > 0 {
			c.start = index
		}
	}
}

// WithQuoteIndent sets the start indent, in points, per block quote level.
func WithQuoteIndent(pt float64) Option {
	return func(c *Compiler) { c.quoteIndent = pt }
}

func WithStrikeStyle(s StrikeStyle) Option {
	return func(c *Compiler) {
		if s != "" {
			c.strike = s
		}
	}
}

// WithBlankLines makes every blank line insert an empty paragraph.
func WithBlankLines(preserve bool) Option {
	return func(c *Compiler) { c.blankLines = preserve }
}

type Compiler struct {
	doc         Document
	start       int64
	quoteIndent float64
	strike      StrikeStyle
	blankLines  bool
}

// NewCompiler returns a compiler writing into doc. doc may be nil for input
// without tables.
func NewCompiler(doc Document, opts ...Option) *Compiler {
	c := &Compiler{
		doc:         doc,
		start:       1,
		quoteIndent: 18,
		strike:      StrikeThrough,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Heading is an entry of the compiled document outline.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Index int64  `json:"index" yaml:"index"`
}

type Result struct {
	// Requests are the operations not yet applied to the document, in order.
	Requests []*docs.Request
	// Applied counts operations already sent to the document to make room
	// for tables.
	Applied int
	// Cursor is the next writable index once Requests are applied.
	Cursor  int64
	Outline []Heading
}

type listRun struct {
	kind  BlockKind
	start int64
}

// emitter accumulates the output of one pass.
type emitter struct {
	cursor  int64
	pending []*docs.Request
	applied int
	list    *listRun
	outline []Heading
	strike  StrikeStyle
}

// emit appends a block's insert and structural requests followed by its
// style requests, then moves the cursor.
func (e *emitter) emit(reqs []*docs.Request, next int64, spans []Span) error {
	styles, err := StyleRequests(spans, e.strike)
	if err != nil {
		return err
	}
	e.pending = append(e.pending, reqs...)
	e.pending = append(e.pending, styles...)
	e.cursor = next
	return nil
}

// closeList emits the bullets request covering the current list run.
func (e *emitter) closeList() {
	if e.list == nil {
		return
	}
	if e.cursor > e.list.start {
		e.pending = append(e.pending, bulletsRequest(e.list.start, e.cursor, e.list.kind))
	}
	e.list = nil
}

func (e *emitter) flush(ctx context.Context, doc Document) error {
	if len(e.pending) == 0 {
		return nil
	}
	debug.LogRequests("flush before table", e.pending)
	if err := doc.BatchUpdate(ctx, e.pending); err != nil {
		return RemoteError(err, CodeRemoteFailure, "applying queued requests failed")
	}
	e.applied += len(e.pending)
	e.pending = nil
	return nil
}

// Compile converts markdown into positioned document requests.
//
// Requests before each table are applied to the document as the table is
// reached; everything after the last table is returned in Result.Requests.
func (c *Compiler) Compile(ctx context.Context, src string) (*Result, error) {
	e := &emitter{cursor: c.start, strike: c.strike}

	blocks := SplitBlocks(NormalizeOrderedLists(src))
	for i := 0; i < len(blocks); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b := Classify(blocks[i])
		if b.Kind != BlockTableRow {
			if err := c.compileBlock(e, b); err != nil {
				return nil, err
			}
			continue
		}

		lines := []string{b.Text}
		for i+1 < len(blocks) {
			next := Classify(blocks[i+1])
			if next.Kind != BlockTableRow {
				break
			}
			lines = append(lines, next.Text)
			i++
		}
		if err := c.compileTable(ctx, e, lines); err != nil {
			return nil, err
		}
	}
	e.closeList()

	debug.Log("compiled %d requests (%d applied), cursor %d", len(e.pending), e.applied, e.cursor)

	return &Result{
		Requests: e.pending,
		Applied:  e.applied,
		Cursor:   e.cursor,
		Outline:  e.outline,
	}, nil
}

func (c *Compiler) compileBlock(e *emitter, b Block) error {
	if b.Kind != BlockBullet && b.Kind != BlockOrdered {
		e.closeList()
	}

	switch b.Kind {
	case BlockBlank:
		if !c.blankLines {
			return nil
		}
		reqs, next := buildParagraphRequests(e.cursor, "")
		return e.emit(reqs, next, nil)

	case BlockHeading:
		res := Resolve(b.Text, e.cursor)
		reqs, next, err := buildHeadingRequests(e.cursor, b.Level, res.Text)
		if err != nil {
			return err
		}
		e.outline = append(e.outline, Heading{Level: b.Level, Text: res.Text, Index: e.cursor})
		return e.emit(reqs, next, res.Spans)

	case BlockBullet, BlockOrdered:
		if e.list != nil && e.list.kind != b.Kind {
			e.closeList()
		}
		if e.list == nil {
			e.list = &listRun{kind: b.Kind, start: e.cursor}
		}
		res := Resolve(b.Text, e.cursor)
		reqs, next := buildParagraphRequests(e.cursor, res.Text)
		return e.emit(reqs, next, res.Spans)

	case BlockQuote:
		res := Resolve(b.Text, e.cursor)
		reqs, next := buildQuoteRequests(e.cursor, b.Level, res.Text, c.quoteIndent)
		return e.emit(reqs, next, res.Spans)

	case BlockHyperlink:
		res := Resolve(b.Text, e.cursor)
		reqs, next := buildLinkRequests(e.cursor, res.Text, b.URL)
		return e.emit(reqs, next, res.Spans)

	case BlockRule:
		reqs, next := buildRuleRequests(e.cursor)
		return e.emit(reqs, next, nil)

	default:
		res := Resolve(b.Text, e.cursor)
		reqs, next := buildParagraphRequests(e.cursor, res.Text)
		return e.emit(reqs, next, res.Spans)
	}
}

func (c *Compiler) compileTable(ctx context.Context, e *emitter, lines []string) error {
	table, err := ParseTable(lines)
	if err != nil {
		return err
	}
	if c.doc == nil {
		return inputError(ErrNoDocument, CodeNoDocument, "input contains a table but no document was given")
	}

	// A list run ends at the table and its bullets go out with the flush.
	e.closeList()
	if err := e.flush(ctx, c.doc); err != nil {
		return err
	}

	debug.Log("inserting %dx%d table at %d", table.NumRows(), table.NumCols(), e.cursor)
	insert := insertTableRequest(e.cursor, table.NumRows(), table.NumCols())
	if err := c.doc.BatchUpdate(ctx, []*docs.Request{insert}); err != nil {
		return RemoteError(err, CodeRemoteFailure, "inserting table failed")
	}
	e.applied++

	start, err := c.doc.LastTableStart(ctx)
	if err != nil {
		return RemoteError(err, CodeTableNotFound, "reading table position failed")
	}
	debug.Log("table starts at %d", start)

	inserts, spans, end := buildTableContent(table, start)
	e.pending = append(e.pending, inserts...)
	e.cursor = end

	reqs, next := buildParagraphRequests(e.cursor, "")
	return e.emit(reqs, next, spans)
}
