package compose

import (
	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler"
	"martianoff/tsbind/internal/transpiler/abi"
	"martianoff/tsbind/internal/transpiler/imports"
	"martianoff/tsbind/internal/transpiler/lower"
	"martianoff/tsbind/internal/transpiler/typemap"
)

// Options configures a Binder.
type Options struct {
	// Catalog is the known-type catalog; nil means the embedded default.
	Catalog *catalog.Catalog
	// ModuleSuffix is appended to scope names; empty means the default.
	ModuleSuffix string
}

type unitBinder struct {
	catalog *catalog.Catalog
	namer   imports.Namer
}

// NewBinder creates a Binder that composes a unit, legalizes every
// signature and prepends the host library imports the unit needs. A binder
// holds no per-unit state and may be shared between goroutines.
func NewBinder(opts Options) transpiler.Binder {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	return &unitBinder{catalog: cat, namer: imports.NewNamer(opts.ModuleSuffix)}
}

// Bind implements the Binder interface.
func (b *unitBinder) Bind(file *foreign.SourceFile) (*binding.File, []diag.Diagnostic, error) {
	sink := diag.NewSink()
	ctx := diag.Context{Unit: file.Path}
	mapper := typemap.New(b.catalog, b.namer, sink)
	composer := New(
		lower.New(mapper, sink, ctx),
		imports.NewTranslator(b.namer, sink, ctx),
		b.namer, sink, ctx,
	)

	nodes, err := composer.Module(file)
	if err != nil {
		return nil, sink.Diagnostics(), err
	}

	declared := abi.Declared(nodes)
	abi.Legalize(abi.NewSet(b.catalog, declared), nodes)

	hosts := HostUses(b.catalog, declared, nodes)
	out := make([]binding.Node, 0, len(hosts)+len(nodes))
	for _, use := range hosts {
		out = append(out, use)
	}
	out = append(out, nodes...)
	return &binding.File{Unit: file.Path, Nodes: out}, sink.Diagnostics(), nil
}

var _ transpiler.Binder = (*unitBinder)(nil)
