package lower

import (
	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/generics"
)

// alias lowers `type T = ...`. Only an object type literal contributes
// members; any other right-hand side yields just the opaque handle.
func (l *Lowerer) alias(d *foreign.TypeAliasDecl) ([]binding.Item, error) {
	o := newOwner(l.ctx.WithDecl(d.Name, d.Pos.Line), d.Name, d.TypeParams)
	items := []binding.Item{o.opaque()}
	lit, ok := d.Type.(*foreign.TypeLiteral)
	if !ok {
		return items, nil
	}
	members, err := l.typeMembers(o, lit.Members)
	if err != nil {
		return nil, err
	}
	return append(items, members...), nil
}

// iface lowers an interface from its declared members. Inherited members
// are not included.
func (l *Lowerer) iface(d *foreign.InterfaceDecl) ([]binding.Item, error) {
	o := newOwner(l.ctx.WithDecl(d.Name, d.Pos.Line), d.Name, d.TypeParams)
	members, err := l.typeMembers(o, d.Body)
	if err != nil {
		return nil, err
	}
	return append([]binding.Item{o.opaque()}, members...), nil
}

func (l *Lowerer) typeMembers(o owner, members []foreign.TypeMember) ([]binding.Item, error) {
	var items []binding.Item
	for _, member := range members {
		fn, err := l.typeMember(o, member)
		if err != nil {
			return nil, err
		}
		if fn != nil {
			items = append(items, fn)
		}
	}
	return items, nil
}

func (l *Lowerer) typeMember(o owner, member foreign.TypeMember) (*binding.ExternFunction, error) {
	switch m := member.(type) {
	case *foreign.PropertySignature:
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		if m.Params != nil {
			l.sink.Report(ctx, diag.KindMember, "property %s with parameters is not supported", raw)
			return nil, nil
		}
		fn, err := l.getter(o, ctx, raw, false, m.Optional, m.Type)
		if err != nil {
			return nil, err
		}
		generics.Erase(o.scope.Join(m.TypeParams), fn)
		return fn, nil

	case *foreign.MethodSignature:
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		return l.typeMethod(o, ctx, foreign.MethodPlain, raw, m.Sig)

	case *foreign.GetterSignature:
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		ret := m.Type
		if ret == nil {
			ret = foreign.Kw(foreign.KwAny)
		}
		return l.typeMethod(o, ctx, foreign.MethodGetter, raw, foreign.Signature{Return: ret})

	case *foreign.SetterSignature:
		raw, ctx, ok := l.memberName(o, m.Key, m.Pos.Line)
		if !ok {
			return nil, nil
		}
		return l.typeMethod(o, ctx, foreign.MethodSetter, raw, foreign.Signature{Params: []foreign.Param{m.Param}})

	case *foreign.CallSignature:
		l.sink.Report(o.ctx.WithMember("", m.Pos.Line), diag.KindMember, "call signature is not supported")
	case *foreign.ConstructSignature:
		l.sink.Report(o.ctx.WithMember("", m.Pos.Line), diag.KindMember, "construct signature is not supported")
	case *foreign.IndexSignature:
		l.sink.Report(o.ctx.WithMember("", m.Pos.Line), diag.KindMember, "index signature is not supported")
	}
	return nil, nil
}

// typeMethod lowers a method or accessor signature to an instance method.
func (l *Lowerer) typeMethod(o owner, ctx diag.Context, kind foreign.MethodKind, raw string, sig foreign.Signature) (*binding.ExternFunction, error) {
	name := accessorName(kind, raw)
	fn, err := l.signature(ctx, name.Ident, o.receiver(), sig)
	if err != nil {
		return nil, err
	}
	fn.Attrs = binding.Attrs{
		JSName: name.Original,
		Method: true,
		Getter: kind == foreign.MethodGetter,
		Setter: kind == foreign.MethodSetter,
	}
	generics.Erase(o.scope.Join(sig.TypeParams), fn)
	return fn, nil
}
