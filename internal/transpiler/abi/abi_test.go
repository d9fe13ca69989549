package abi_test

import (
	"math/rand"
	"testing"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/abi"
	"martianoff/tsbind/internal/transpiler/imports"
	"martianoff/tsbind/internal/transpiler/typemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet() *abi.Set {
	return abi.NewSet(catalog.Default(), []string{"Foo"})
}

func TestSetMembership(t *testing.T) {
	set := newSet()
	foo := binding.NamedOf("Foo")
	html := binding.NamedOf("HtmlElement")

	tests := []struct {
		name string
		typ  binding.Type
		want bool
	}{
		{name: "f64", typ: binding.F64Type, want: true},
		{name: "string", typ: binding.StringType, want: true},
		{name: "unit", typ: binding.UnitType, want: true},
		{name: "dynamic", typ: binding.Dynamic{}, want: true},
		{name: "declared", typ: foo, want: true},
		{name: "declared ref", typ: binding.Reference{Elem: foo}, want: true},
		{name: "catalog", typ: html, want: true},
		{name: "catalog slice", typ: binding.BoxedSlice{Elem: html}, want: true},
		{name: "optional numeric slice", typ: binding.Optional{Elem: binding.BoxedSlice{Elem: binding.F64Type}}, want: true},
		{name: "optional declared", typ: binding.Optional{Elem: foo}, want: true},
		{name: "bool slice", typ: binding.BoxedSlice{Elem: binding.BoolType}, want: false},
		{name: "string slice", typ: binding.BoxedSlice{Elem: binding.StringType}, want: false},
		{name: "nested slice", typ: binding.BoxedSlice{Elem: binding.BoxedSlice{Elem: binding.F64Type}}, want: false},
		{name: "unknown", typ: binding.NamedOf("Bar"), want: false},
		{name: "qualified", typ: binding.Named{Path: []string{"nsMod", "Foo"}}, want: false},
		{name: "tuple", typ: binding.Tuple{Elems: []binding.Type{binding.F64Type}}, want: false},
		{name: "dynamic ref", typ: binding.Reference{Elem: binding.Dynamic{}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Contains(tt.typ))
		})
	}
}

func TestSetNamesSorted(t *testing.T) {
	set := abi.NewSet(catalog.New(catalog.Data{StringTypes: []string{"Mode"}}), []string{"Zed", "Alpha"})
	assert.Equal(t, []string{"Alpha", "Mode", "Zed"}, set.Names())
}

func TestLegalizeCallables(t *testing.T) {
	set := newSet()
	cb := binding.Reference{Elem: binding.Callable{Params: []binding.Type{binding.NamedOf("Unknown")}}}

	assert.Equal(t, cb, set.Param(cb))
	assert.Equal(t, binding.Dynamic{}, set.Return(cb))
	assert.Equal(t, binding.Dynamic{}, set.Return(binding.Optional{Elem: cb}))
	assert.Nil(t, set.Return(nil))
}

func TestLegalizeNodes(t *testing.T) {
	fn := &binding.ExternFunction{
		Name: "f",
		Params: []binding.Param{
			{Name: "a", Type: binding.NamedOf("Bar")},
			{Name: "b", Type: binding.Optional{Elem: binding.NamedOf("Foo")}},
		},
		Return: binding.Tuple{Elems: []binding.Type{binding.F64Type, binding.F64Type}},
	}
	static := &binding.ExternStatic{Name: "s", Type: binding.BoxedSlice{Elem: binding.StringType}}
	nodes := []binding.Node{
		&binding.ExternBlock{Items: []binding.Item{fn}},
		&binding.Module{Name: "nsMod", Nodes: []binding.Node{&binding.ExternBlock{Items: []binding.Item{static}}}},
	}

	abi.Legalize(newSet(), nodes)

	assert.Equal(t, binding.Dynamic{}, fn.Params[0].Type)
	assert.Equal(t, binding.Optional{Elem: binding.NamedOf("Foo")}, fn.Params[1].Type)
	assert.Equal(t, binding.Dynamic{}, fn.Return)
	assert.Equal(t, binding.Dynamic{}, static.Type)
}

func TestDeclared(t *testing.T) {
	nodes := []binding.Node{
		&binding.Use{Pub: true, Path: []string{"super", "aMod"}, Leaves: []binding.UseLeaf{{Name: "A"}, {Name: "B", Rename: "C"}}},
		&binding.Use{Pub: true, Path: []string{"super", "gMod"}, Glob: true},
		&binding.ExternBlock{Items: []binding.Item{
			&binding.OpaqueType{Name: "Foo"},
			&binding.ExternFunction{Name: "make"},
		}},
	}
	assert.Equal(t, []string{"A", "C", "Foo", "make"}, abi.Declared(nodes))
}

// randomForeign builds a foreign type tree that maps without a fatal error.
func randomForeign(r *rand.Rand, depth int) foreign.Type {
	leaves := []func() foreign.Type{
		func() foreign.Type { return foreign.Kw(foreign.KwNumber) },
		func() foreign.Type { return foreign.Kw(foreign.KwString) },
		func() foreign.Type { return foreign.Kw(foreign.KwBoolean) },
		func() foreign.Type { return foreign.Kw(foreign.KwAny) },
		func() foreign.Type { return foreign.Kw(foreign.KwVoid) },
		func() foreign.Type { return foreign.Ref("Foo") },
		func() foreign.Type { return foreign.Ref("Bar") },
		func() foreign.Type { return foreign.Ref("HTMLElement") },
		func() foreign.Type { return foreign.Ref("ns", "Foo") },
		func() foreign.Type { return &foreign.LiteralType{Text: `"a"`} },
		func() foreign.Type { return &foreign.ThisType{} },
	}
	if depth == 0 {
		return leaves[r.Intn(len(leaves))]()
	}
	next := func() foreign.Type { return randomForeign(r, depth-1) }
	switch r.Intn(9) {
	case 0:
		return &foreign.ArrayType{Elem: next()}
	case 1:
		return &foreign.UnionType{Types: []foreign.Type{next(), foreign.Kw(foreign.KwUndefined)}}
	case 2:
		return &foreign.UnionType{Types: []foreign.Type{next(), next(), next()}}
	case 3:
		return &foreign.IntersectionType{Types: []foreign.Type{next(), next()}}
	case 4:
		return &foreign.TupleType{Elems: []foreign.TupleElement{{Type: next()}, {Type: next()}}}
	case 5:
		return &foreign.ParenType{Inner: next()}
	case 6:
		return &foreign.FunctionType{Sig: foreign.Signature{
			Params: []foreign.Param{{Name: "x", Type: next()}},
			Return: next(),
		}}
	case 7:
		return &foreign.TypeRef{Name: []string{"Array"}, Args: []foreign.Type{next()}}
	}
	return leaves[r.Intn(len(leaves))]()
}

func TestClosureProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	set := newSet()
	mapper := typemap.New(catalog.Default(), imports.NewNamer(""), diag.NewSink())

	for i := 0; i < 1000; i++ {
		ft := randomForeign(r, 4)

		mapped, err := mapper.Map(ft)
		require.NoError(t, err)
		param := set.Param(mapped)
		assert.True(t, set.Contains(param) || binding.IsCallableRef(param), "param %s", param)

		ret, err := mapper.MapReturn(ft)
		require.NoError(t, err)
		if ret = set.Return(ret); ret != nil {
			assert.True(t, set.Contains(ret), "return %s", ret)
		}
	}
}

func TestLegalizedMappingIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	set := newSet()
	mapper := typemap.New(catalog.Default(), imports.NewNamer(""), diag.NewSink())

	for i := 0; i < 500; i++ {
		ft := randomForeign(r, 3)
		first, err := mapper.Map(ft)
		require.NoError(t, err)
		second, err := mapper.Map(ft)
		require.NoError(t, err)

		legal := set.Param(first)
		assert.Equal(t, legal, set.Param(second))
		assert.Equal(t, legal, set.Param(legal))
	}
}
