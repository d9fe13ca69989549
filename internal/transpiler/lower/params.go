package lower

import (
	"fmt"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/generics"
	"martianoff/tsbind/internal/transpiler/sanitize"
	"martianoff/tsbind/internal/transpiler/typemap"
)

// owner is the declaration whose members are being lowered.
type owner struct {
	name   sanitize.Name
	handle binding.Named
	scope  generics.Scope
	ctx    diag.Context
}

func newOwner(ctx diag.Context, raw string, params []foreign.TypeParam) owner {
	name := sanitize.Ident(raw)
	return owner{
		name:   name,
		handle: binding.NamedOf(name.Ident),
		scope:  generics.NewScope(params),
		ctx:    ctx,
	}
}

func (o owner) opaque() *binding.OpaqueType {
	return &binding.OpaqueType{Name: o.name.Ident, Attrs: binding.Attrs{JSName: o.name.Original}}
}

func (o owner) receiver() *binding.Param {
	return &binding.Param{Name: binding.ThisParam, Type: binding.Reference{Elem: o.handle}}
}

// memberName resolves the raw name of a member key. Private names are
// skipped silently; computed keys are skipped with a diagnostic.
func (l *Lowerer) memberName(o owner, key foreign.PropKey, line int) (string, diag.Context, bool) {
	ctx := o.ctx.WithMember(key.Name, line)
	switch key.Kind {
	case foreign.KeyPrivate:
		return "", ctx, false
	case foreign.KeyComputed:
		l.sink.Report(ctx, diag.KindMember, "computed member name %s is not supported", key.Name)
		return "", ctx, false
	}
	return key.Name, ctx, true
}

// signature builds an extern function from sig. A non-nil receiver becomes
// the leading parameter.
func (l *Lowerer) signature(ctx diag.Context, name string, receiver *binding.Param, sig foreign.Signature) (*binding.ExternFunction, error) {
	m := l.mapper.At(ctx)
	params, err := l.params(m, sig.Params)
	if err != nil {
		return nil, err
	}
	ret, err := m.MapReturn(sig.Return)
	if err != nil {
		return nil, err
	}
	if receiver != nil {
		params = append([]binding.Param{*receiver}, params...)
	}
	return &binding.ExternFunction{Name: name, Params: params, Return: ret}, nil
}

// params maps a parameter list. A `this` parameter only types the receiver
// and is dropped. Destructured parameters are named after their position.
func (l *Lowerer) params(m *typemap.Mapper, ps []foreign.Param) ([]binding.Param, error) {
	out := make([]binding.Param, 0, len(ps))
	for i, p := range ps {
		if p.Pattern == foreign.PatternIdent && p.Name == "this" {
			continue
		}
		t, err := m.Param(p)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("arg%d", i)
		if p.Pattern == foreign.PatternIdent {
			name = sanitize.Ident(p.Name).Ident
		}
		out = append(out, binding.Param{Name: name, Type: t})
	}
	return out, nil
}

// getter builds a getter-shaped accessor for a data property.
func (l *Lowerer) getter(o owner, ctx diag.Context, raw string, static, optional bool, t foreign.Type) (*binding.ExternFunction, error) {
	ret, err := l.mapper.At(ctx).Map(t)
	if err != nil {
		return nil, err
	}
	if optional {
		ret = binding.OptionalOf(ret)
	}
	name := sanitize.Ident(raw)
	fn := &binding.ExternFunction{
		Name:   name.Ident,
		Return: ret,
		Attrs:  binding.Attrs{JSName: name.Original, Getter: true},
	}
	if static {
		fn.Attrs.StaticOf = o.name.Ident
	} else {
		fn.Params = []binding.Param{*o.receiver()}
		fn.Attrs.Method = true
	}
	return fn, nil
}

// accessorName is the prefixed name of an explicit get or set accessor.
func accessorName(kind foreign.MethodKind, raw string) sanitize.Name {
	switch kind {
	case foreign.MethodGetter:
		return sanitize.Prefixed("get_", raw)
	case foreign.MethodSetter:
		return sanitize.Prefixed("set_", raw)
	}
	return sanitize.Ident(raw)
}
