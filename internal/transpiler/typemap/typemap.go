// Package typemap maps foreign type expressions onto binding types.
package typemap

import (
	"fmt"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/generics"
	"martianoff/tsbind/internal/transpiler/imports"
	"martianoff/tsbind/internal/transpiler/sanitize"
	"martianoff/tsbind/tsbinderr"
)

// Mapper maps the types of one declaration. Constructs that cannot be
// represented either degrade to the dynamic value type with a diagnostic or
// fail the declaration with an UnsupportedError.
type Mapper struct {
	catalog *catalog.Catalog
	namer   imports.Namer
	sink    *diag.Sink
	ctx     diag.Context
}

// New creates a mapper. A nil catalog means the embedded default.
func New(cat *catalog.Catalog, namer imports.Namer, sink *diag.Sink) *Mapper {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Mapper{catalog: cat, namer: namer, sink: sink}
}

// At returns a mapper reporting against ctx.
func (m *Mapper) At(ctx diag.Context) *Mapper {
	c := *m
	c.ctx = ctx
	return &c
}

// MapReturn maps a return annotation. A missing annotation or `void` yields
// a nil type, meaning the function returns nothing.
func (m *Mapper) MapReturn(t foreign.Type) (binding.Type, error) {
	if t == nil {
		return nil, nil
	}
	if kw, ok := t.(*foreign.KeywordType); ok && kw.Kind == foreign.KwVoid {
		return nil, nil
	}
	return m.Map(t)
}

// Map maps a type in value position.
func (m *Mapper) Map(t foreign.Type) (binding.Type, error) {
	switch tt := t.(type) {
	case nil:
		return binding.Dynamic{}, nil
	case *foreign.KeywordType:
		return m.keyword(tt.Kind)
	case *foreign.FunctionType:
		return m.callable(tt.Sig)
	case *foreign.TypeRef:
		return m.reference(tt)
	case *foreign.ArrayType:
		elem, err := m.Map(tt.Elem)
		if err != nil {
			return nil, err
		}
		return binding.BoxedSlice{Elem: elem}, nil
	case *foreign.OptionalType:
		elem, err := m.Map(tt.Elem)
		if err != nil {
			return nil, err
		}
		return binding.OptionalOf(elem), nil
	case *foreign.UnionType:
		return m.union(tt)
	case *foreign.IntersectionType:
		if len(tt.Types) == 0 {
			m.report("empty intersection type")
			return binding.Dynamic{}, nil
		}
		return m.Map(tt.Types[0])
	case *foreign.TupleType:
		elems := make([]binding.Type, len(tt.Elems))
		for i, e := range tt.Elems {
			mapped, err := m.Map(e.Type)
			if err != nil {
				return nil, err
			}
			elems[i] = mapped
		}
		return binding.Tuple{Elems: elems}, nil
	case *foreign.ParenType:
		return m.Map(tt.Inner)
	case *foreign.ThisType:
		return binding.Self, nil
	case *foreign.ImportType:
		return m.importType(tt), nil
	case *foreign.TypeLiteral:
		m.report("object type literal is not supported")
		return binding.Dynamic{}, nil
	case *foreign.LiteralType:
		m.report("literal type %s is not supported", tt.Text)
		return binding.Dynamic{}, nil
	case *foreign.UnknownType:
		m.report("type %s is not supported", tt.Kind)
		return binding.Dynamic{}, nil
	case *foreign.ConstructorType:
		return nil, m.unsupported("constructor type")
	case *foreign.IndexedAccessType:
		return nil, m.unsupported("indexed access type")
	case *foreign.TypeQuery:
		return nil, m.unsupported("type query")
	case *foreign.MappedType:
		return nil, m.unsupported("mapped type")
	case *foreign.ConditionalType:
		return nil, m.unsupported("conditional type")
	case *foreign.PredicateType:
		return nil, m.unsupported("type predicate")
	case *foreign.InferType:
		return nil, m.unsupported("infer type")
	case *foreign.RestType:
		return nil, m.unsupported("rest type")
	case *foreign.TypeOperator:
		return nil, m.unsupported(fmt.Sprintf("%s type operator", tt.Op))
	}
	return nil, tsbinderr.NewInternalError(m.ctx.Decl, fmt.Sprintf("unexpected type node %T", t))
}

func (m *Mapper) keyword(kw foreign.Keyword) (binding.Type, error) {
	switch kw {
	case foreign.KwNumber:
		return binding.F64Type, nil
	case foreign.KwBoolean:
		return binding.BoolType, nil
	case foreign.KwString:
		return binding.StringType, nil
	case foreign.KwVoid:
		return binding.UnitType, nil
	case foreign.KwAny, foreign.KwUnknown, foreign.KwNull, foreign.KwUndefined, foreign.KwNever, foreign.KwObject:
		return binding.Dynamic{}, nil
	}
	return nil, m.unsupported(kw.String() + " type")
}

// callable maps a function type to a borrowed callable. The function's own
// type parameters are erased from its parameter and return types.
func (m *Mapper) callable(sig foreign.Signature) (binding.Type, error) {
	scope := generics.NewScope(sig.TypeParams)
	params := make([]binding.Type, 0, len(sig.Params))
	for _, p := range sig.Params {
		if p.Name == "this" && p.Pattern == foreign.PatternIdent {
			continue
		}
		pt, err := m.Param(p)
		if err != nil {
			return nil, err
		}
		params = append(params, generics.EraseType(scope, pt))
	}
	ret, err := m.MapReturn(sig.Return)
	if err != nil {
		return nil, err
	}
	return binding.Reference{Elem: binding.Callable{
		Params: params,
		Return: generics.EraseType(scope, ret),
	}}, nil
}

// Param maps the type of one parameter. An unannotated parameter is dynamic
// and an optional one is wrapped.
func (m *Mapper) Param(p foreign.Param) (binding.Type, error) {
	t, err := m.Map(p.Type)
	if err != nil {
		return nil, err
	}
	if p.Optional {
		t = binding.OptionalOf(t)
	}
	return t, nil
}

func (m *Mapper) reference(ref *foreign.TypeRef) (binding.Type, error) {
	if len(ref.Name) > 1 {
		return m.qualified(ref.Name, len(ref.Args) > 0), nil
	}
	name := sanitize.Ident(ref.Name[0]).Ident
	if name == "Array" && len(ref.Args) > 0 {
		elem, err := m.Map(ref.Args[0])
		if err != nil {
			return nil, err
		}
		return binding.BoxedSlice{Elem: elem}, nil
	}
	if len(ref.Args) == 0 && m.catalog.IsStringType(name) {
		return binding.StringType, nil
	}
	return binding.Named{Path: []string{name}, Generic: len(ref.Args) > 0}, nil
}

// qualified maps `A.B.C` to a path where every namespace segment is a scope
// and the last segment is the type.
func (m *Mapper) qualified(segs []string, generic bool) binding.Named {
	path := make([]string, 0, len(segs))
	for _, seg := range segs[:len(segs)-1] {
		path = append(path, m.namer.Scope(seg))
	}
	path = append(path, sanitize.Ident(segs[len(segs)-1]).Ident)
	return binding.Named{Path: path, Generic: generic}
}

func (m *Mapper) union(u *foreign.UnionType) (binding.Type, error) {
	if len(u.Types) == 2 {
		for i, t := range u.Types {
			if isNullish(t) {
				inner, err := m.Map(u.Types[1-i])
				if err != nil {
					return nil, err
				}
				return binding.OptionalOf(inner), nil
			}
		}
	}
	m.report("union of %d members is not representable", len(u.Types))
	return binding.Dynamic{}, nil
}

func isNullish(t foreign.Type) bool {
	kw, ok := t.(*foreign.KeywordType)
	return ok && (kw.Kind == foreign.KwNull || kw.Kind == foreign.KwUndefined)
}

func (m *Mapper) importType(it *foreign.ImportType) binding.Type {
	if !imports.IsRelative(it.Module) {
		m.report("import type from non-relative module %q is not supported", it.Module)
		return binding.Dynamic{}
	}
	if len(it.Qualifier) == 0 {
		m.report("import type of module %q without a member is not supported", it.Module)
		return binding.Dynamic{}
	}
	member := m.qualified(it.Qualifier, len(it.Args) > 0)
	path := append(m.namer.Prefix(it.Module), member.Path...)
	return binding.Named{Path: path, Generic: member.Generic}
}

func (m *Mapper) report(format string, args ...any) {
	m.sink.Report(m.ctx, diag.KindType, format, args...)
}

func (m *Mapper) unsupported(construct string) error {
	err := tsbinderr.NewUnsupportedError(m.ctx.Decl, m.ctx.Member, construct)
	err.Line = m.ctx.Line
	return err
}
