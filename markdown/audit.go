package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type FindingKind string

const (
	FindingCodeBlock  FindingKind = "code_block"
	FindingImage      FindingKind = "image"
	FindingNestedList FindingKind = "nested_list"
	FindingHTML       FindingKind = "html"
)

// Finding is a construct the compiler renders as plain paragraphs or drops.
type Finding struct {
	Line    int         `json:"line"`
	Kind    FindingKind `json:"kind"`
	Message string      `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Message)
}

var auditMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Audit reports constructs in src that have no document equivalent.
func Audit(src []byte) []Finding {
	root := auditMarkdown.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var findings []Finding
	add := func(n ast.Node, kind FindingKind, msg string) {
		findings = append(findings, Finding{Line: nodeLine(n, src), Kind: kind, Message: msg})
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			add(n, FindingCodeBlock, "code blocks are inserted as plain paragraphs")
		case *ast.Image:
			add(n, FindingImage, "images are not inserted")
		case *ast.HTMLBlock:
			add(n, FindingHTML, "raw HTML is inserted as text")
		case *ast.List:
			if hasListAncestor(node) {
				add(n, FindingNestedList, "nested lists are flattened")
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})

	return findings
}

func hasListAncestor(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return true
		}
	}
	return false
}

// nodeLine returns the 1-based source line a node starts on, or 0 when the
// node carries no position.
func nodeLine(n ast.Node, src []byte) int {
	if off, ok := blockOffset(n); ok {
		return bytes.Count(src[:off], []byte("\n")) + 1
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if off, ok := blockOffset(p); ok {
			return bytes.Count(src[:off], []byte("\n")) + 1
		}
	}
	return 0
}

// blockOffset finds the first byte offset recorded on a block node or its
// descendants. Inline nodes carry no lines.
func blockOffset(n ast.Node) (int, bool) {
	if n.Type() != ast.TypeBlock {
		return 0, false
	}
	if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		return fenced.Info.Segment.Start, true
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return lines.At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := blockOffset(c); ok {
			return off, true
		}
	}
	return 0, false
}
