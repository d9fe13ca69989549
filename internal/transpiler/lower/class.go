package lower

import (
	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/generics"
	"martianoff/tsbind/internal/transpiler/sanitize"
)

// ConstructorName is the item name of every lowered constructor.
const ConstructorName = "new"

func (l *Lowerer) class(d *foreign.ClassDecl) ([]binding.Item, error) {
	o := newOwner(l.ctx.WithDecl(d.Name, d.Pos.Line), d.Name, d.TypeParams)
	ty := o.opaque()
	if d.SuperClass != "" && !d.SuperComplex {
		ty.Attrs.Extends = sanitize.Ident(d.SuperClass).Ident
	}
	items := []binding.Item{ty}

	for _, member := range d.Members {
		lowered, err := l.classMember(o, member)
		if err != nil {
			return nil, err
		}
		if lowered != nil {
			items = append(items, lowered)
		}
	}
	return items, nil
}

// classMember lowers one member. A nil item with a nil error means the
// member is not part of the public surface.
func (l *Lowerer) classMember(o owner, member foreign.ClassMember) (binding.Item, error) {
	switch m := member.(type) {
	case *foreign.Constructor:
		if m.Access.Hidden() {
			return nil, nil
		}
		ctx := o.ctx.WithMember(m.Key.Name, m.Pos.Line)
		if m.Key.Name != "constructor" {
			return nil, l.unsupported(ctx, "constructor named "+m.Key.Name)
		}
		fn, err := l.signature(ctx, ConstructorName, nil, foreign.Signature{Params: m.Params})
		if err != nil {
			return nil, err
		}
		fn.Return = o.handle
		fn.Attrs.Constructor = true
		generics.Erase(o.scope, fn)
		return fn, nil

	case *foreign.Method:
		if m.Access.Hidden() {
			return nil, nil
		}
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		name := accessorName(m.Kind, raw)
		var receiver *binding.Param
		if !m.Static {
			receiver = o.receiver()
		}
		fn, err := l.signature(ctx, name.Ident, receiver, m.Sig)
		if err != nil {
			return nil, err
		}
		fn.Attrs = binding.Attrs{
			JSName: name.Original,
			Method: !m.Static,
			Getter: m.Kind == foreign.MethodGetter,
			Setter: m.Kind == foreign.MethodSetter,
		}
		if m.Static {
			fn.Attrs.StaticOf = o.name.Ident
		}
		generics.Erase(o.scope.Join(m.Sig.TypeParams), fn)
		return fn, nil

	case *foreign.Property:
		if m.Access.Hidden() {
			return nil, nil
		}
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		fn, err := l.getter(o, ctx, raw, m.Static, m.Optional, m.Type)
		if err != nil {
			return nil, err
		}
		generics.Erase(o.scope, fn)
		return fn, nil

	case *foreign.IndexSignature:
		return nil, l.unsupported(o.ctx.WithMember("", m.Pos.Line), "class index signature")
	case *foreign.StaticBlock:
		return nil, l.unsupported(o.ctx.WithMember("", m.Pos.Line), "static initialization block")
	case *foreign.EmptyMember:
		return nil, l.unsupported(o.ctx.WithMember("", m.Pos.Line), "empty class member")
	}
	return nil, l.unsupported(o.ctx, "class member")
}
