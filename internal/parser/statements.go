package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"martianoff/tsbind/internal/foreign"
)

func (b *builder) statements(n *sitter.Node) []foreign.Stmt {
	var out []foreign.Stmt
	for _, c := range named(n) {
		if s := b.statement(c); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (b *builder) statement(n *sitter.Node) foreign.Stmt {
	switch n.Type() {
	case "import_statement":
		return b.importStatement(n)
	case "export_statement":
		return b.exportStatement(n)
	case "empty_statement", "hash_bang_line":
		return nil
	case "expression_statement":
		// `namespace A {}` without declare parses as an expression.
		if inner := firstNamed(n); inner != nil && inner.Type() == "internal_module" {
			return &foreign.DeclStmt{Decl: b.namespace(inner)}
		}
	}
	if d := b.declaration(n); d != nil {
		return &foreign.DeclStmt{Decl: d}
	}
	return b.other(n)
}

func (b *builder) other(n *sitter.Node) *foreign.OtherStmt {
	return &foreign.OtherStmt{Kind: strings.ReplaceAll(n.Type(), "_", " "), Pos: pos(n)}
}

// declaration converts a declaration node, looking through `declare`.
// It returns nil for nodes that declare nothing bindable.
func (b *builder) declaration(n *sitter.Node) foreign.Decl {
	switch n.Type() {
	case "ambient_declaration":
		if hasToken(n, "global") {
			return &foreign.NamespaceDecl{
				Name:   "global",
				Global: true,
				Body:   b.statements(childOfType(n, "statement_block")),
				Pos:    pos(n),
			}
		}
		if inner := firstNamed(n); inner != nil {
			return b.declaration(inner)
		}
	case "function_signature", "function_declaration", "generator_function_declaration":
		return &foreign.FunctionDecl{
			Name: b.text(n.ChildByFieldName("name")),
			Sig:  b.signature(n),
			Pos:  pos(n),
		}
	case "class_declaration", "abstract_class_declaration", "class":
		return b.class(n)
	case "lexical_declaration", "variable_declaration":
		return b.variable(n)
	case "type_alias_declaration":
		return &foreign.TypeAliasDecl{
			Name:       b.text(n.ChildByFieldName("name")),
			TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
			Type:       b.typ(n.ChildByFieldName("value")),
			Pos:        pos(n),
		}
	case "interface_declaration":
		return b.iface(n)
	case "enum_declaration":
		return b.enum(n)
	case "module", "internal_module":
		return b.namespace(n)
	}
	return nil
}

func (b *builder) class(n *sitter.Node) *foreign.ClassDecl {
	d := &foreign.ClassDecl{
		Name:       b.text(n.ChildByFieldName("name")),
		TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
		Abstract:   n.Type() == "abstract_class_declaration",
		Pos:        pos(n),
	}
	if heritage := childOfType(n, "class_heritage"); heritage != nil {
		if ext := childOfType(heritage, "extends_clause"); ext != nil {
			value := ext.ChildByFieldName("value")
			if value == nil {
				value = firstNamed(ext)
			}
			if value != nil && value.Type() == "identifier" {
				d.SuperClass = b.text(value)
			} else {
				d.SuperComplex = true
			}
		}
	}
	d.Members = b.classMembers(n.ChildByFieldName("body"))
	return d
}

func (b *builder) variable(n *sitter.Node) *foreign.VarDecl {
	kind := "var"
	if k := n.ChildByFieldName("kind"); k != nil {
		kind = b.text(k)
	}
	d := &foreign.VarDecl{Kind: kind, Pos: pos(n)}
	for _, c := range named(n) {
		if c.Type() != "variable_declarator" {
			continue
		}
		name := c.ChildByFieldName("name")
		decl := foreign.Declarator{Type: b.typ(c.ChildByFieldName("type"))}
		switch name.Type() {
		case "object_pattern":
			decl.Pattern = foreign.PatternObject
		case "array_pattern":
			decl.Pattern = foreign.PatternArray
		default:
			decl.Name = b.text(name)
		}
		d.Declarators = append(d.Declarators, decl)
	}
	return d
}

func (b *builder) iface(n *sitter.Node) *foreign.InterfaceDecl {
	d := &foreign.InterfaceDecl{
		Name:       b.text(n.ChildByFieldName("name")),
		TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
		Pos:        pos(n),
	}
	if ext := childOfType(n, "extends_type_clause"); ext != nil {
		for _, t := range named(ext) {
			d.Extends = append(d.Extends, b.typ(t))
		}
	}
	d.Body = b.typeMembers(n.ChildByFieldName("body"))
	return d
}

func (b *builder) enum(n *sitter.Node) *foreign.EnumDecl {
	d := &foreign.EnumDecl{
		Name:  b.text(n.ChildByFieldName("name")),
		Const: hasToken(n, "const"),
		Pos:   pos(n),
	}
	for _, m := range named(n.ChildByFieldName("body")) {
		if m.Type() == "enum_assignment" {
			m = m.ChildByFieldName("name")
		}
		d.Members = append(d.Members, unquote(b.text(m)))
	}
	return d
}

// namespace converts `namespace A.B { }` and `module "m" { }`. The dotted
// form becomes a chain of Nested declarations, innermost holding the body.
func (b *builder) namespace(n *sitter.Node) *foreign.NamespaceDecl {
	nameNode := n.ChildByFieldName("name")
	var body []foreign.Stmt
	if block := n.ChildByFieldName("body"); block != nil {
		body = b.statements(block)
	}
	if nameNode != nil && nameNode.Type() == "string" {
		return &foreign.NamespaceDecl{Name: unquote(b.text(nameNode)), Quoted: true, Body: body, Pos: pos(n)}
	}

	segs := strings.Split(b.text(nameNode), ".")
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}
	inner := &foreign.NamespaceDecl{Name: segs[len(segs)-1], Body: body, Pos: pos(n)}
	for i := len(segs) - 2; i >= 0; i-- {
		inner = &foreign.NamespaceDecl{Name: segs[i], Nested: inner, Pos: pos(n)}
	}
	return inner
}

func (b *builder) importStatement(n *sitter.Node) foreign.Stmt {
	if childOfType(n, "import_require_clause") != nil {
		return b.other(n)
	}
	d := &foreign.ImportDecl{
		Source:   unquote(b.text(n.ChildByFieldName("source"))),
		TypeOnly: hasToken(n, "type"),
	}
	clause := childOfType(n, "import_clause")
	for _, c := range named(clause) {
		switch c.Type() {
		case "identifier":
			d.Specifiers = append(d.Specifiers, foreign.ImportSpecifier{Kind: foreign.ImportDefault, Local: b.text(c)})
		case "namespace_import":
			d.Specifiers = append(d.Specifiers, foreign.ImportSpecifier{Kind: foreign.ImportNamespace, Local: b.text(firstNamed(c))})
		case "named_imports":
			for _, s := range named(c) {
				if s.Type() != "import_specifier" {
					continue
				}
				spec := foreign.ImportSpecifier{Kind: foreign.ImportNamed, Local: unquote(b.text(s.ChildByFieldName("name")))}
				if alias := s.ChildByFieldName("alias"); alias != nil {
					spec.Imported, spec.Local = spec.Local, b.text(alias)
				}
				d.Specifiers = append(d.Specifiers, spec)
			}
		}
	}
	return d
}

func (b *builder) exportStatement(n *sitter.Node) foreign.Stmt {
	source := n.ChildByFieldName("source")

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		d := b.declaration(decl)
		if d == nil {
			return b.other(decl)
		}
		if hasToken(n, "default") {
			return &foreign.ExportDefaultDecl{Decl: d}
		}
		return &foreign.DeclStmt{Decl: d, Exported: true}
	}

	if hasToken(n, "default") {
		value := n.ChildByFieldName("value")
		switch {
		case value == nil:
		case value.Type() == "identifier":
			return &foreign.ExportDefaultExpr{Ident: b.text(value)}
		case value.Type() == "class":
			return &foreign.ExportDefaultDecl{Decl: b.class(value)}
		}
		return b.other(n)
	}

	if hasToken(n, "=") {
		if value := firstNamed(n); value != nil && value.Type() == "identifier" {
			return &foreign.ExportAssignment{Ident: b.text(value)}
		}
		return b.other(n)
	}

	if hasToken(n, "namespace") {
		return &foreign.NamespaceExport{Name: b.text(childOfType(n, "identifier"))}
	}

	if clause := childOfType(n, "export_clause"); clause != nil {
		e := &foreign.ExportNamed{Source: unquote(b.text(source)), HasSource: source != nil}
		for _, s := range named(clause) {
			if s.Type() != "export_specifier" {
				continue
			}
			orig := unquote(b.text(s.ChildByFieldName("name")))
			spec := foreign.ExportSpecifier{Kind: foreign.ExportNamedSpec, Orig: orig}
			if alias := s.ChildByFieldName("alias"); alias != nil {
				spec.Exported = unquote(b.text(alias))
			}
			if orig == "default" && spec.Exported != "" {
				spec.Kind = foreign.ExportDefaultSpec
			}
			e.Specifiers = append(e.Specifiers, spec)
		}
		return e
	}

	if ns := childOfType(n, "namespace_export"); ns != nil {
		return &foreign.ExportNamed{
			Source:    unquote(b.text(source)),
			HasSource: source != nil,
			Specifiers: []foreign.ExportSpecifier{{
				Kind:     foreign.ExportNamespaceSpec,
				Exported: unquote(b.text(firstNamed(ns))),
			}},
		}
	}

	if hasToken(n, "*") && source != nil {
		return &foreign.ExportAll{Source: unquote(b.text(source))}
	}
	return b.other(n)
}
