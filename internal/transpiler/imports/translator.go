package imports

import (
	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/sanitize"
)

// DefaultExport is the leaf name a default export is re-exported under.
const DefaultExport = "default"

// Translator turns the import and export statements of one unit into
// `pub use` statements, in statement order.
type Translator struct {
	namer Namer
	sink  *diag.Sink
	ctx   diag.Context
}

// NewTranslator creates a translator reporting into sink.
func NewTranslator(namer Namer, sink *diag.Sink, ctx diag.Context) *Translator {
	return &Translator{namer: namer, sink: sink, ctx: ctx}
}

// Translate returns one use statement per import or export statement that
// names at least one binding. Statements of other kinds are ignored.
func (t *Translator) Translate(stmts []foreign.Stmt) []*binding.Use {
	var uses []*binding.Use
	for _, stmt := range stmts {
		var use *binding.Use
		switch s := stmt.(type) {
		case *foreign.ImportDecl:
			use = t.importDecl(s)
		case *foreign.ExportDefaultExpr:
			use = &binding.Use{
				Pub:    true,
				Path:   []string{"self"},
				Leaves: []binding.UseLeaf{leaf(s.Ident, DefaultExport)},
			}
		case *foreign.ExportNamed:
			use = t.exportNamed(s)
		case *foreign.ExportAll:
			use = &binding.Use{Pub: true, Path: t.namer.Prefix(s.Source), Glob: true}
		}
		if use != nil {
			uses = append(uses, use)
		}
	}
	return uses
}

func (t *Translator) importDecl(s *foreign.ImportDecl) *binding.Use {
	var leaves []binding.UseLeaf
	for _, spec := range s.Specifiers {
		switch spec.Kind {
		case foreign.ImportNamed:
			if spec.Imported == "" {
				leaves = append(leaves, leaf(spec.Local, ""))
			} else {
				leaves = append(leaves, leaf(spec.Imported, spec.Local))
			}
		case foreign.ImportDefault:
			leaves = append(leaves, binding.UseLeaf{Name: DefaultExport, Rename: sanitize.Ident(spec.Local).Ident})
		case foreign.ImportNamespace:
			t.sink.Report(t.ctx, diag.KindImport, "namespace import %s from %q is not supported", spec.Local, s.Source)
		}
	}
	if len(leaves) == 0 {
		return nil
	}
	return &binding.Use{Pub: true, Path: t.namer.Prefix(s.Source), Leaves: leaves}
}

func (t *Translator) exportNamed(s *foreign.ExportNamed) *binding.Use {
	var leaves []binding.UseLeaf
	for _, spec := range s.Specifiers {
		switch spec.Kind {
		case foreign.ExportNamedSpec:
			l := leaf(spec.Orig, spec.Exported)
			if !s.HasSource && l.Rename == "" {
				// Already public under this name in the unit.
				continue
			}
			leaves = append(leaves, l)
		case foreign.ExportDefaultSpec:
			leaves = append(leaves, binding.UseLeaf{Name: DefaultExport, Rename: sanitize.Ident(spec.Exported).Ident})
		case foreign.ExportNamespaceSpec:
			t.sink.Report(t.ctx, diag.KindImport, "namespace export %s is not supported", spec.Exported)
		}
	}
	if len(leaves) == 0 {
		return nil
	}
	path := []string{"self"}
	if s.HasSource {
		path = t.namer.Prefix(s.Source)
	}
	return &binding.Use{Pub: true, Path: path, Leaves: leaves}
}

// leaf builds `name as rename`, dropping the rename when both sides sanitize
// to the same identifier.
func leaf(name, rename string) binding.UseLeaf {
	l := binding.UseLeaf{Name: sanitize.Ident(name).Ident}
	if rename == "" {
		return l
	}
	if r := sanitize.Ident(rename).Ident; r != l.Name {
		l.Rename = r
	}
	return l
}
