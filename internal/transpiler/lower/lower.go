// Package lower turns one foreign declaration into binding items.
package lower

import (
	"fmt"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/generics"
	"martianoff/tsbind/internal/transpiler/sanitize"
	"martianoff/tsbind/internal/transpiler/typemap"
	"martianoff/tsbind/tsbinderr"
)

// Lowerer lowers the declarations of one unit. Diagnostics go to the sink
// and fatal problems are returned as errors for the offending declaration.
type Lowerer struct {
	mapper *typemap.Mapper
	sink   *diag.Sink
	ctx    diag.Context
}

// New creates a lowerer for the unit described by ctx.
func New(mapper *typemap.Mapper, sink *diag.Sink, ctx diag.Context) *Lowerer {
	return &Lowerer{mapper: mapper, sink: sink, ctx: ctx}
}

// Lower returns the binding items for decl. Every item has its generic
// parameters erased. A namespace returns the items of every body
// declaration that lowered, together with the errors of those that did not.
func (l *Lowerer) Lower(decl foreign.Decl) ([]binding.Item, error) {
	switch d := decl.(type) {
	case *foreign.ClassDecl:
		if d.Name == "" {
			return l.anonymous("class", d.Pos)
		}
		return l.class(d)
	case *foreign.FunctionDecl:
		if d.Name == "" {
			return l.anonymous("function", d.Pos)
		}
		return l.function(d)
	case *foreign.VarDecl:
		return l.variable(d)
	case *foreign.TypeAliasDecl:
		return l.alias(d)
	case *foreign.InterfaceDecl:
		return l.iface(d)
	case *foreign.EnumDecl:
		return nil, l.unsupported(l.ctx.WithDecl(d.Name, d.Pos.Line), "enum")
	case *foreign.NamespaceDecl:
		return l.namespace(d)
	}
	return nil, tsbinderr.NewInternalError(decl.DeclName(), fmt.Sprintf("unexpected declaration %T", decl))
}

func (l *Lowerer) function(d *foreign.FunctionDecl) ([]binding.Item, error) {
	ctx := l.ctx.WithDecl(d.Name, d.Pos.Line)
	name := sanitize.Ident(d.Name)
	fn, err := l.signature(ctx, name.Ident, nil, d.Sig)
	if err != nil {
		return nil, err
	}
	fn.Attrs.JSName = name.Original
	generics.Erase(generics.NewScope(d.Sig.TypeParams), fn)
	return []binding.Item{fn}, nil
}

func (l *Lowerer) variable(d *foreign.VarDecl) ([]binding.Item, error) {
	if len(d.Declarators) != 1 {
		return nil, tsbinderr.NewInternalError(d.DeclName(),
			fmt.Sprintf("%s statement has %d declarators, expected one", d.Kind, len(d.Declarators)))
	}
	decl := d.Declarators[0]
	ctx := l.ctx.WithDecl(decl.Name, d.Pos.Line)
	if decl.Pattern != foreign.PatternIdent {
		return nil, l.unsupported(ctx, "destructuring variable pattern")
	}
	t, err := l.mapper.At(ctx).Map(decl.Type)
	if err != nil {
		return nil, err
	}
	name := sanitize.Ident(decl.Name)
	return []binding.Item{&binding.ExternStatic{
		Name:  name.Ident,
		Type:  t,
		Attrs: binding.Attrs{JSName: name.Original},
	}}, nil
}

func (l *Lowerer) namespace(d *foreign.NamespaceDecl) ([]binding.Item, error) {
	ctx := l.ctx.WithDecl(d.Name, d.Pos.Line)
	switch {
	case d.Nested != nil:
		l.sink.Report(ctx, diag.KindNamespace, "dotted namespace %s.%s is not supported", d.Name, d.Nested.Name)
		return nil, nil
	case d.Body == nil && !d.Global:
		l.sink.Report(ctx, diag.KindNamespace, "namespace %s without a body is not supported", d.Name)
		return nil, nil
	case d.Quoted:
		l.sink.Report(ctx, diag.KindNamespace, "ambient module %q is not supported", d.Name)
		return nil, nil
	}

	var items []binding.Item
	var errs tsbinderr.MultiError
	for _, stmt := range d.Body {
		var decl foreign.Decl
		switch s := stmt.(type) {
		case *foreign.DeclStmt:
			decl = s.Decl
		case *foreign.ExportDefaultDecl:
			decl = s.Decl
		default:
			continue
		}
		lowered, err := l.Lower(decl)
		errs.Add(err)
		items = append(items, lowered...)
	}
	if !d.Global {
		for _, it := range items {
			attrs := it.ItemAttrs()
			attrs.Namespace = attrs.Namespace.Prepend(d.Name)
		}
	}
	return items, errs.ErrOrNil()
}

// anonymous skips a nameless default declaration; there is no JS name to
// bind it to.
func (l *Lowerer) anonymous(kind string, pos foreign.Pos) ([]binding.Item, error) {
	l.sink.Report(l.ctx.WithDecl("", pos.Line), diag.KindStatement, "anonymous default %s is not supported", kind)
	return nil, nil
}

func (l *Lowerer) unsupported(ctx diag.Context, construct string) error {
	err := tsbinderr.NewUnsupportedError(ctx.Decl, ctx.Member, construct)
	err.Line = ctx.Line
	return err
}
