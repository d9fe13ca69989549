// Package parser is the declaration-file frontend. It parses TypeScript with
// tree-sitter and converts the concrete syntax tree into a foreign.SourceFile.
package parser

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/tsbinderr"
)

// TreeSitterParser parses declaration files. Each Parse call creates its own
// tree-sitter parser, so one TreeSitterParser may be shared between goroutines.
type TreeSitterParser struct {
}

func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// Parse converts src into a SourceFile. Every ERROR or missing node of the
// syntax tree is reported; a file with syntax errors yields no tree.
func (p *TreeSitterParser) Parse(ctx context.Context, src []byte, path string) (*foreign.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if !utf8.Valid(src) {
		return nil, tsbinderr.NewSyntaxErrorInFile(path, 1, 1, "content is not valid UTF-8")
	}

	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())
	tree, err := ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, tsbinderr.NewSyntaxErrorInFile(path, 1, 1, "empty syntax tree")
	}
	if root.HasError() {
		errs := &tsbinderr.MultiError{}
		collectErrors(root, src, path, errs)
		if err := errs.ErrOrNil(); err != nil {
			return nil, err
		}
	}

	b := &builder{src: src}
	return &foreign.SourceFile{Path: path, Statements: b.statements(root)}, nil
}

func collectErrors(n *sitter.Node, src []byte, path string, errs *tsbinderr.MultiError) {
	at := n.StartPoint()
	line, col := int(at.Row)+1, int(at.Column)+1
	switch {
	case n.IsMissing():
		errs.Add(tsbinderr.NewSyntaxErrorInFile(path, line, col, fmt.Sprintf("missing %s", n.Type())))
		return
	case n.Type() == "ERROR":
		errs.Add(tsbinderr.NewSyntaxErrorInFile(path, line, col, fmt.Sprintf("unexpected %q", snippet(n.Content(src)))))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.HasError() || c.IsMissing() || c.Type() == "ERROR" {
			collectErrors(c, src, path, errs)
		}
	}
}

func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}

// builder holds the source text the node contents are sliced from.
type builder struct {
	src []byte
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.src)
}

func pos(n *sitter.Node) foreign.Pos {
	at := n.StartPoint()
	return foreign.Pos{Line: int(at.Row) + 1, Column: int(at.Column) + 1}
}

func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if c := named(n); len(c) > 0 {
		return c[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous direct child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

// hasTokenBefore is hasToken restricted to children that start before mark.
func hasTokenBefore(n, mark *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if mark != nil && c.StartByte() >= mark.StartByte() {
			return false
		}
		if !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range named(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
