// Package transpiler defines the stages of the declaration-to-binding
// pipeline and the orchestrator that runs them for one unit.
package transpiler

import (
	"context"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
)

// DeclarationParser parses declaration source into a syntax tree.
type DeclarationParser interface {
	Parse(ctx context.Context, src []byte, path string) (*foreign.SourceFile, error)
}

// Binder turns a parsed unit into its binding tree. Diagnostics are returned
// even when binding fails.
type Binder interface {
	Bind(file *foreign.SourceFile) (*binding.File, []diag.Diagnostic, error)
}

// Printer renders a binding tree as target source code.
type Printer interface {
	Print(file *binding.File) (string, error)
}

// Transpiler defines the high-level interface for one unit.
type Transpiler interface {
	Transpile(ctx context.Context, src []byte, path string) (*Result, error)
}

// Result is the outcome of translating one unit.
type Result struct {
	Code        string
	Diagnostics []diag.Diagnostic
	// Items counts the binding items emitted, nested scopes included.
	Items int
}

// Empty reports whether the unit bound nothing worth writing.
func (r *Result) Empty() bool {
	return r.Items == 0
}

// DtsToRustTranspiler orchestrates parsing, binding and printing.
type DtsToRustTranspiler struct {
	parser  DeclarationParser
	binder  Binder
	printer Printer
}

// NewDtsToRustTranspiler creates a new instance of DtsToRustTranspiler with its dependencies.
func NewDtsToRustTranspiler(parser DeclarationParser, binder Binder, printer Printer) *DtsToRustTranspiler {
	return &DtsToRustTranspiler{
		parser:  parser,
		binder:  binder,
		printer: printer,
	}
}

// Transpile executes the full pipeline. When binding fails the result still
// carries the diagnostics gathered up to that point.
func (t *DtsToRustTranspiler) Transpile(ctx context.Context, src []byte, path string) (*Result, error) {
	file, err := t.parser.Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}

	bound, diags, err := t.binder.Bind(file)
	res := &Result{Diagnostics: diags}
	if err != nil {
		return res, err
	}
	res.Items = binding.CountItems(bound.Nodes)

	res.Code, err = t.printer.Print(bound)
	if err != nil {
		return res, err
	}
	return res, nil
}

var _ Transpiler = (*DtsToRustTranspiler)(nil)
