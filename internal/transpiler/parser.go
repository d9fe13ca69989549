package transpiler

import (
	"context"

	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/parser"
)

type treeSitterDeclarationParser struct {
	wrapper *parser.TreeSitterParser
}

// NewTreeSitterDeclarationParser creates a DeclarationParser backed by the
// tree-sitter TypeScript grammar.
func NewTreeSitterDeclarationParser() DeclarationParser {
	return &treeSitterDeclarationParser{
		wrapper: parser.NewTreeSitterParser(),
	}
}

// Parse implements the DeclarationParser interface.
func (p *treeSitterDeclarationParser) Parse(ctx context.Context, src []byte, path string) (*foreign.SourceFile, error) {
	return p.wrapper.Parse(ctx, src, path)
}

var _ DeclarationParser = (*treeSitterDeclarationParser)(nil)
