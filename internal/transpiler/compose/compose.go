// Package compose assembles the output tree of one unit: re-exports, one
// extern block per scope and a nested module per namespace.
package compose

import (
	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/collide"
	"martianoff/tsbind/internal/transpiler/imports"
	"martianoff/tsbind/internal/transpiler/lower"
	"martianoff/tsbind/tsbinderr"
)

// Prelude brings the binding attribute into scope at the root of a unit.
var Prelude = &binding.Use{Path: []string{"wasm_bindgen", "prelude"}, Leaves: []binding.UseLeaf{{Name: "wasm_bindgen"}}}

// Parent makes everything visible in the enclosing scope visible in a
// namespace module.
var Parent = &binding.Use{Path: []string{imports.Up}, Glob: true}

// Composer composes the statements of one unit.
type Composer struct {
	lowerer    *lower.Lowerer
	translator *imports.Translator
	namer      imports.Namer
	sink       *diag.Sink
	ctx        diag.Context
}

// New creates a composer for the unit described by ctx.
func New(lowerer *lower.Lowerer, translator *imports.Translator, namer imports.Namer, sink *diag.Sink, ctx diag.Context) *Composer {
	return &Composer{
		lowerer:    lowerer,
		translator: translator,
		namer:      namer,
		sink:       sink,
		ctx:        ctx,
	}
}

// Module composes a top-level unit. Only exported declarations are bound,
// unless the unit is a global script, plus every declaration a default
// export or a local export list refers to. The returned nodes are complete
// for every declaration that lowered; the error collects the declarations
// that did not.
func (c *Composer) Module(file *foreign.SourceFile) ([]binding.Node, error) {
	script := file.IsScript()
	var (
		items     []binding.Item
		modules   []binding.Node
		errs      tsbinderr.MultiError
		private   = make(map[string][]foreign.Decl)
		visible   = make(map[string]bool)
		referred  []string
		enclosing string
	)

	bind := func(decl foreign.Decl) {
		visible[decl.DeclName()] = true
		if ns, ok := decl.(*foreign.NamespaceDecl); ok && !ns.Global {
			mod, err := c.namespaceModule(ns)
			errs.Add(err)
			if mod != nil {
				modules = append(modules, mod)
			}
			return
		}
		lowered, err := c.lowerer.Lower(decl)
		errs.Add(err)
		items = append(items, lowered...)
	}

	for _, stmt := range file.Statements {
		switch s := stmt.(type) {
		case *foreign.DeclStmt:
			if ns, ok := s.Decl.(*foreign.NamespaceDecl); ok && ns.Global {
				bind(s.Decl)
			} else if s.Exported || script {
				bind(s.Decl)
			} else {
				name := s.Decl.DeclName()
				private[name] = append(private[name], s.Decl)
			}
		case *foreign.ExportDefaultDecl:
			bind(s.Decl)
		case *foreign.ExportDefaultExpr:
			referred = append(referred, s.Ident)
		case *foreign.ExportAssignment:
			referred = append(referred, s.Ident)
		case *foreign.ExportNamed:
			if s.HasSource {
				continue
			}
			for _, spec := range s.Specifiers {
				if spec.Kind == foreign.ExportNamedSpec {
					referred = append(referred, spec.Orig)
				}
			}
		case *foreign.ImportDecl:
			for _, spec := range s.Specifiers {
				visible[spec.Local] = true
			}
		case *foreign.NamespaceExport:
			enclosing = s.Name
		case *foreign.OtherStmt:
			c.sink.Report(c.ctx.WithDecl("", s.Pos.Line), diag.KindStatement, "%s is not a declaration", s.Kind)
		}
	}
	for _, name := range referred {
		decls, ok := private[name]
		if !ok {
			if !visible[name] {
				c.sink.Report(c.ctx.WithDecl(name, 0), diag.KindImport, "exported name %s is not declared in this unit", name)
			}
			continue
		}
		for _, decl := range decls {
			bind(decl)
		}
		delete(private, name)
	}

	var nodes []binding.Node
	for _, use := range c.translator.Translate(file.Statements) {
		nodes = append(nodes, use)
	}
	block := c.block(items)
	if block != nil || binding.CountItems(modules) > 0 {
		nodes = append(nodes, Prelude)
	}
	if block != nil {
		nodes = append(nodes, block)
	}
	nodes = append(nodes, modules...)

	if enclosing != "" {
		applyNamespace(nodes, enclosing)
	}
	return nodes, errs.ErrOrNil()
}

// Namespace composes the body of namespace name. Every declaration in it is
// bound and every item is routed through name.
func (c *Composer) Namespace(name string, stmts []foreign.Stmt) ([]binding.Node, error) {
	var (
		items   []binding.Item
		modules []binding.Node
		errs    tsbinderr.MultiError
	)
	for _, stmt := range stmts {
		var decl foreign.Decl
		switch s := stmt.(type) {
		case *foreign.DeclStmt:
			decl = s.Decl
		case *foreign.ExportDefaultDecl:
			decl = s.Decl
		case *foreign.OtherStmt:
			c.sink.Report(c.ctx.WithDecl(name, s.Pos.Line), diag.KindStatement, "%s is not a declaration", s.Kind)
			continue
		default:
			continue
		}
		if ns, ok := decl.(*foreign.NamespaceDecl); ok && !ns.Global {
			mod, err := c.namespaceModule(ns)
			errs.Add(err)
			if mod != nil {
				modules = append(modules, mod)
			}
			continue
		}
		lowered, err := c.lowerer.Lower(decl)
		errs.Add(err)
		items = append(items, lowered...)
	}

	var nodes []binding.Node
	if block := c.block(items); block != nil {
		nodes = append(nodes, Parent, block)
	}
	nodes = append(nodes, modules...)
	applyNamespace(nodes, name)
	return nodes, errs.ErrOrNil()
}

// namespaceModule wraps a namespace body in its own module. A namespace
// that binds nothing produces no module.
func (c *Composer) namespaceModule(d *foreign.NamespaceDecl) (*binding.Module, error) {
	ctx := c.ctx.WithDecl(d.Name, d.Pos.Line)
	switch {
	case d.Nested != nil:
		c.sink.Report(ctx, diag.KindNamespace, "dotted namespace %s.%s is not supported", d.Name, d.Nested.Name)
		return nil, nil
	case d.Body == nil:
		c.sink.Report(ctx, diag.KindNamespace, "namespace %s without a body is not supported", d.Name)
		return nil, nil
	case d.Quoted:
		c.sink.Report(ctx, diag.KindNamespace, "ambient module %q is not supported", d.Name)
		return nil, nil
	}
	nodes, err := c.Namespace(d.Name, d.Body)
	if len(nodes) == 0 {
		return nil, err
	}
	return &binding.Module{Name: c.namer.Scope(d.Name), Nodes: nodes}, err
}

// block merges and disambiguates the items of one scope. It returns nil when
// there is nothing to bind.
func (c *Composer) block(items []binding.Item) *binding.ExternBlock {
	items = mergeTypes(items)
	if len(items) == 0 {
		return nil
	}
	collide.NewResolver().Resolve(items)
	return &binding.ExternBlock{Items: items}
}

// applyNamespace routes every item of nodes, nested modules included,
// through namespace name.
func applyNamespace(nodes []binding.Node, name string) {
	binding.Walk(nodes, func(it binding.Item) {
		attrs := it.ItemAttrs()
		attrs.Namespace = attrs.Namespace.Prepend(name)
	})
}

// mergeTypes folds a repeated opaque type into its first declaration, as
// happens when an interface and a class share a name.
func mergeTypes(items []binding.Item) []binding.Item {
	types := make(map[string]*binding.OpaqueType)
	out := make([]binding.Item, 0, len(items))
	for _, it := range items {
		ty, ok := it.(*binding.OpaqueType)
		if !ok {
			out = append(out, it)
			continue
		}
		first, seen := types[ty.Name]
		if !seen {
			types[ty.Name] = ty
			out = append(out, ty)
			continue
		}
		if first.Attrs.Extends == "" {
			first.Attrs.Extends = ty.Attrs.Extends
		}
		if first.Attrs.JSName == "" {
			first.Attrs.JSName = ty.Attrs.JSName
		}
	}
	return out
}
