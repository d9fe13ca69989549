package lower_test

import (
	"errors"
	"testing"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/imports"
	"martianoff/tsbind/internal/transpiler/lower"
	"martianoff/tsbind/internal/transpiler/typemap"
	"martianoff/tsbind/tsbinderr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLowerer() (*lower.Lowerer, *diag.Sink) {
	sink := diag.NewSink()
	ctx := diag.Context{Unit: "lib.d.ts"}
	mapper := typemap.New(catalog.Default(), imports.NewNamer(""), sink)
	return lower.New(mapper, sink, ctx), sink
}

func lowerOK(t *testing.T, decl foreign.Decl) ([]binding.Item, *diag.Sink) {
	t.Helper()
	l, sink := newLowerer()
	items, err := l.Lower(decl)
	require.NoError(t, err)
	return items, sink
}

func num() foreign.Type { return foreign.Kw(foreign.KwNumber) }
func str() foreign.Type { return foreign.Kw(foreign.KwString) }

func thisOf(name string) binding.Param {
	return binding.Param{Name: binding.ThisParam, Type: binding.Reference{Elem: binding.NamedOf(name)}}
}

func TestLowerClassScenario(t *testing.T) {
	items, sink := lowerOK(t, &foreign.ClassDecl{
		Name: "Foo",
		Members: []foreign.ClassMember{
			&foreign.Constructor{Key: foreign.Ident("constructor"), Params: []foreign.Param{{Name: "x", Type: num()}}},
			&foreign.Method{Key: foreign.Ident("bar"), Sig: foreign.Signature{Return: str()}},
		},
	})
	assert.Zero(t, sink.Len())
	require.Len(t, items, 3)

	assert.Equal(t, &binding.OpaqueType{Name: "Foo"}, items[0])
	assert.Equal(t, &binding.ExternFunction{
		Name:   "new",
		Params: []binding.Param{{Name: "x", Type: binding.F64Type}},
		Return: binding.NamedOf("Foo"),
		Attrs:  binding.Attrs{Constructor: true},
	}, items[1])
	assert.Equal(t, &binding.ExternFunction{
		Name:   "bar",
		Params: []binding.Param{thisOf("Foo")},
		Return: binding.StringType,
		Attrs:  binding.Attrs{Method: true},
	}, items[2])
}

func TestLowerClassMembers(t *testing.T) {
	items, sink := lowerOK(t, &foreign.ClassDecl{
		Name:       "Widget",
		TypeParams: []foreign.TypeParam{{Name: "T"}},
		SuperClass: "Base",
		Members: []foreign.ClassMember{
			&foreign.Method{Key: foreign.Ident("create"), Static: true, Sig: foreign.Signature{Return: foreign.Ref("Widget")}},
			&foreign.Method{Key: foreign.Ident("value"), Kind: foreign.MethodGetter, Sig: foreign.Signature{Return: foreign.Ref("T")}},
			&foreign.Method{Key: foreign.Ident("value"), Kind: foreign.MethodSetter, Sig: foreign.Signature{
				Params: []foreign.Param{{Name: "v", Type: foreign.Ref("T")}},
			}},
			&foreign.Property{Key: foreign.Ident("label"), Optional: true, Type: str()},
			&foreign.Property{Key: foreign.Ident("count"), Static: true, Type: num()},
			&foreign.Property{Key: foreign.PropKey{Kind: foreign.KeyString, Name: "data-id"}, Type: str()},
			&foreign.Property{Key: foreign.PropKey{Kind: foreign.KeyPrivate, Name: "#secret"}, Type: str()},
			&foreign.Property{Key: foreign.PropKey{Kind: foreign.KeyComputed, Name: "[Symbol.iterator]"}, Type: str()},
			&foreign.Method{Key: foreign.Ident("hidden"), Access: foreign.AccessProtected},
		},
	})
	require.Len(t, items, 7)
	assert.Equal(t, "Base", items[0].ItemAttrs().Extends)

	create := items[1].(*binding.ExternFunction)
	assert.Equal(t, "Widget", create.Attrs.StaticOf)
	assert.Empty(t, create.Params)
	assert.False(t, create.Attrs.Method)

	get := items[2].(*binding.ExternFunction)
	assert.Equal(t, "get_value", get.Name)
	assert.Equal(t, binding.Attrs{JSName: "value", Method: true, Getter: true}, get.Attrs)
	assert.Equal(t, binding.Dynamic{}, get.Return)

	set := items[3].(*binding.ExternFunction)
	assert.Equal(t, "set_value", set.Name)
	assert.True(t, set.Attrs.Setter)
	assert.Equal(t, []binding.Param{thisOf("Widget"), {Name: "v", Type: binding.Dynamic{}}}, set.Params)
	assert.Nil(t, set.Return)

	label := items[4].(*binding.ExternFunction)
	assert.Equal(t, binding.Optional{Elem: binding.StringType}, label.Return)
	assert.Equal(t, binding.Attrs{Method: true, Getter: true}, label.Attrs)

	count := items[5].(*binding.ExternFunction)
	assert.Equal(t, binding.Attrs{StaticOf: "Widget", Getter: true}, count.Attrs)
	assert.Empty(t, count.Params)

	dataID := items[6].(*binding.ExternFunction)
	assert.Equal(t, "data_id", dataID.Name)
	assert.Equal(t, "data-id", dataID.Attrs.JSName)

	require.Equal(t, 1, sink.Len())
	assert.Equal(t, diag.KindMember, sink.Diagnostics()[0].Kind)
	assert.Equal(t, "Widget", sink.Diagnostics()[0].Context.Decl)
}

func TestLowerClassAccessibility(t *testing.T) {
	items, _ := lowerOK(t, &foreign.ClassDecl{
		Name: "A",
		Members: []foreign.ClassMember{
			&foreign.Method{Key: foreign.Ident("m"), Access: foreign.AccessPrivate, Sig: foreign.Signature{Return: num()}},
			&foreign.Method{Key: foreign.Ident("m"), Access: foreign.AccessPublic, Sig: foreign.Signature{Return: str()}},
		},
	})
	require.Len(t, items, 2)
	m := items[1].(*binding.ExternFunction)
	assert.Equal(t, "m", m.Name)
	assert.Equal(t, binding.StringType, m.Return)
}

func TestLowerClassComplexSuperclass(t *testing.T) {
	items, _ := lowerOK(t, &foreign.ClassDecl{Name: "C", SuperClass: "mixin(Base)", SuperComplex: true})
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ItemAttrs().Extends)
}

func TestLowerClassFatalMembers(t *testing.T) {
	tests := []struct {
		name      string
		member    foreign.ClassMember
		construct string
	}{
		{name: "index signature", member: &foreign.IndexSignature{}, construct: "class index signature"},
		{name: "static block", member: &foreign.StaticBlock{}, construct: "static initialization block"},
		{name: "empty member", member: &foreign.EmptyMember{}, construct: "empty class member"},
		{
			name:      "misnamed constructor",
			member:    &foreign.Constructor{Key: foreign.PropKey{Kind: foreign.KeyString, Name: "ctor"}},
			construct: "constructor named ctor",
		},
		{
			name:      "bigint member",
			member:    &foreign.Property{Key: foreign.Ident("big"), Type: foreign.Kw(foreign.KwBigInt)},
			construct: "bigint type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLowerer()
			items, err := l.Lower(&foreign.ClassDecl{Name: "K", Members: []foreign.ClassMember{tt.member}})
			assert.Nil(t, items)
			var unsupported *tsbinderr.UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, tt.construct, unsupported.Construct)
			assert.Equal(t, "K", unsupported.Decl)
		})
	}
}

func TestLowerConstructorOverloads(t *testing.T) {
	items, _ := lowerOK(t, &foreign.ClassDecl{
		Name: "P",
		Members: []foreign.ClassMember{
			&foreign.Constructor{Key: foreign.Ident("constructor")},
			&foreign.Constructor{Key: foreign.Ident("constructor"), Params: []foreign.Param{{Name: "x", Type: num()}}},
		},
	})
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[1].ItemName())
	assert.Equal(t, "new", items[2].ItemName())
}

func TestLowerAliasScenario(t *testing.T) {
	items, sink := lowerOK(t, &foreign.TypeAliasDecl{
		Name: "T",
		Type: &foreign.TypeLiteral{Members: []foreign.TypeMember{
			&foreign.PropertySignature{Key: foreign.Ident("x"), Readonly: true, Optional: true, Type: num()},
		}},
	})
	assert.Zero(t, sink.Len())
	require.Len(t, items, 2)
	assert.Equal(t, &binding.OpaqueType{Name: "T"}, items[0])
	assert.Equal(t, &binding.ExternFunction{
		Name:   "x",
		Params: []binding.Param{thisOf("T")},
		Return: binding.Optional{Elem: binding.F64Type},
		Attrs:  binding.Attrs{Method: true, Getter: true},
	}, items[1])
}

func TestLowerAliasDropsSignatures(t *testing.T) {
	items, sink := lowerOK(t, &foreign.TypeAliasDecl{
		Name: "Fn",
		Type: &foreign.TypeLiteral{Members: []foreign.TypeMember{
			&foreign.CallSignature{},
			&foreign.ConstructSignature{},
			&foreign.IndexSignature{},
			&foreign.PropertySignature{Key: foreign.Ident("legacy"), Params: []foreign.Param{}},
			&foreign.PropertySignature{Key: foreign.Ident("ok"), Type: str()},
		}},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "ok", items[1].ItemName())
	assert.Equal(t, 4, sink.Len())
}

func TestLowerAliasOfOtherType(t *testing.T) {
	items, _ := lowerOK(t, &foreign.TypeAliasDecl{Name: "Id", Type: str()})
	assert.Equal(t, []binding.Item{&binding.OpaqueType{Name: "Id"}}, items)
}

func TestLowerInterface(t *testing.T) {
	items, sink := lowerOK(t, &foreign.InterfaceDecl{
		Name:       "Map",
		TypeParams: []foreign.TypeParam{{Name: "K"}},
		Extends:    []foreign.Type{foreign.Ref("Base")},
		Body: []foreign.TypeMember{
			&foreign.MethodSignature{Key: foreign.Ident("get"), Sig: foreign.Signature{
				TypeParams: []foreign.TypeParam{{Name: "V"}},
				Params:     []foreign.Param{{Name: "key", Type: foreign.Ref("K")}},
				Return:     &foreign.UnionType{Types: []foreign.Type{foreign.Ref("V"), foreign.Kw(foreign.KwUndefined)}},
			}},
			&foreign.GetterSignature{Key: foreign.Ident("size"), Type: num()},
			&foreign.SetterSignature{Key: foreign.Ident("size"), Param: foreign.Param{Name: "n", Type: num()}},
			&foreign.PropertySignature{Key: foreign.Ident("self"), Type: &foreign.ThisType{}},
		},
	})
	assert.Zero(t, sink.Len())
	require.Len(t, items, 5)
	assert.Equal(t, &binding.OpaqueType{Name: "Map"}, items[0])

	get := items[1].(*binding.ExternFunction)
	assert.Equal(t, []binding.Param{thisOf("Map"), {Name: "key", Type: binding.Dynamic{}}}, get.Params)
	assert.Equal(t, binding.Dynamic{}, get.Return)
	assert.Equal(t, binding.Attrs{Method: true}, get.Attrs)

	assert.Equal(t, "get_size", items[2].ItemName())
	assert.True(t, items[2].ItemAttrs().Getter)
	assert.Equal(t, "set_size", items[3].ItemName())
	assert.True(t, items[3].ItemAttrs().Setter)

	self := items[4].(*binding.ExternFunction)
	assert.Equal(t, "self_rs", self.Name)
	assert.Equal(t, "self", self.Attrs.JSName)
	assert.Equal(t, binding.Self, self.Return)
}

func TestLowerFunctionScenario(t *testing.T) {
	items, _ := lowerOK(t, &foreign.FunctionDecl{Name: "f", Sig: foreign.Signature{Return: foreign.Kw(foreign.KwVoid)}})
	assert.Equal(t, []binding.Item{&binding.ExternFunction{Name: "f", Params: []binding.Param{}}}, items)
}

func TestLowerFunctionParams(t *testing.T) {
	items, _ := lowerOK(t, &foreign.FunctionDecl{
		Name: "getID",
		Sig: foreign.Signature{
			TypeParams: []foreign.TypeParam{{Name: "T"}},
			Params: []foreign.Param{
				{Name: "this", Type: foreign.Ref("Window")},
				{Pattern: foreign.PatternObject, Type: foreign.Ref("Options")},
				{Name: "type", Type: foreign.Ref("T")},
				{Name: "rest", Rest: true, Type: &foreign.ArrayType{Elem: num()}},
				{Name: "opt", Optional: true},
			},
			Return: foreign.Ref("T"),
		},
	})
	require.Len(t, items, 1)
	fn := items[0].(*binding.ExternFunction)
	assert.Equal(t, "getId", fn.Name)
	assert.Equal(t, "getID", fn.Attrs.JSName)
	assert.Equal(t, []binding.Param{
		{Name: "arg1", Type: binding.NamedOf("Options")},
		{Name: "r#type", Type: binding.Dynamic{}},
		{Name: "rest", Type: binding.BoxedSlice{Elem: binding.F64Type}},
		{Name: "opt", Type: binding.Dynamic{}},
	}, fn.Params)
	assert.Equal(t, binding.Dynamic{}, fn.Return)
}

func TestLowerVariable(t *testing.T) {
	items, sink := lowerOK(t, &foreign.VarDecl{Kind: "let", Declarators: []foreign.Declarator{{
		Name: "x",
		Type: &foreign.UnionType{Types: []foreign.Type{foreign.Ref("SomeUnknownUnion"), num(), str()}},
	}}})
	assert.Equal(t, []binding.Item{&binding.ExternStatic{Name: "x", Type: binding.Dynamic{}}}, items)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, "x", sink.Diagnostics()[0].Context.Decl)
}

func TestLowerVariableErrors(t *testing.T) {
	l, _ := newLowerer()
	_, err := l.Lower(&foreign.VarDecl{Kind: "const", Declarators: []foreign.Declarator{{Name: "a"}, {Name: "b"}}})
	var internal *tsbinderr.InternalError
	assert.True(t, errors.As(err, &internal))

	_, err = l.Lower(&foreign.VarDecl{Kind: "const", Declarators: []foreign.Declarator{{Pattern: foreign.PatternArray}}})
	var unsupported *tsbinderr.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "destructuring variable pattern", unsupported.Construct)
}

func TestLowerEnum(t *testing.T) {
	l, _ := newLowerer()
	items, err := l.Lower(&foreign.EnumDecl{Name: "Color", Members: []string{"Red"}})
	assert.Nil(t, items)
	var unsupported *tsbinderr.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "enum", unsupported.Construct)
	assert.Equal(t, tsbinderr.TypeUnsupported, unsupported.Type())
}

func TestLowerNamespaceScenario(t *testing.T) {
	items, _ := lowerOK(t, &foreign.NamespaceDecl{
		Name: "N",
		Body: []foreign.Stmt{&foreign.DeclStmt{Decl: &foreign.FunctionDecl{
			Name: "g",
			Sig:  foreign.Signature{Return: foreign.Kw(foreign.KwBoolean)},
		}}},
	})
	require.Len(t, items, 1)
	g := items[0].(*binding.ExternFunction)
	assert.Equal(t, "g", g.Name)
	assert.Equal(t, binding.BoolType, g.Return)
	assert.Equal(t, binding.NamespacePath{"N"}, g.Attrs.Namespace)
}

func TestLowerNestedNamespace(t *testing.T) {
	items, _ := lowerOK(t, &foreign.NamespaceDecl{
		Name: "Outer",
		Body: []foreign.Stmt{&foreign.DeclStmt{Decl: &foreign.NamespaceDecl{
			Name: "Inner",
			Body: []foreign.Stmt{&foreign.DeclStmt{Decl: &foreign.VarDecl{
				Kind:        "const",
				Declarators: []foreign.Declarator{{Name: "v", Type: num()}},
			}}},
		}}},
	})
	require.Len(t, items, 1)
	assert.Equal(t, binding.NamespacePath{"Outer", "Inner"}, items[0].ItemAttrs().Namespace)
}

func TestLowerNamespaceKeepsGoodDeclarations(t *testing.T) {
	l, _ := newLowerer()
	items, err := l.Lower(&foreign.NamespaceDecl{
		Name: "N",
		Body: []foreign.Stmt{
			&foreign.DeclStmt{Decl: &foreign.EnumDecl{Name: "E"}},
			&foreign.DeclStmt{Decl: &foreign.FunctionDecl{Name: "ok"}},
		},
	})
	require.Error(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].ItemName())
}

func TestLowerNamespaceWithoutBody(t *testing.T) {
	tests := []struct {
		name    string
		decl    *foreign.NamespaceDecl
		message string
	}{
		{
			name:    "dotted",
			decl:    &foreign.NamespaceDecl{Name: "A", Nested: &foreign.NamespaceDecl{Name: "B", Body: []foreign.Stmt{}}},
			message: "dotted namespace A.B is not supported",
		},
		{
			name:    "bodyless",
			decl:    &foreign.NamespaceDecl{Name: "A"},
			message: "namespace A without a body is not supported",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, sink := lowerOK(t, tt.decl)
			assert.Empty(t, items)
			require.Equal(t, 1, sink.Len())
			assert.Equal(t, diag.KindNamespace, sink.Diagnostics()[0].Kind)
			assert.Equal(t, tt.message, sink.Diagnostics()[0].Message)
		})
	}
}

func TestLowerAnonymousDefault(t *testing.T) {
	for _, decl := range []foreign.Decl{
		&foreign.ClassDecl{Members: []foreign.ClassMember{&foreign.Method{Key: foreign.Ident("m")}}},
		&foreign.FunctionDecl{Sig: foreign.Signature{Params: []foreign.Param{{Name: "x", Type: num()}}}},
	} {
		items, sink := lowerOK(t, decl)
		assert.Empty(t, items)
		require.Equal(t, 1, sink.Len())
		assert.Equal(t, diag.KindStatement, sink.Diagnostics()[0].Kind)
	}
}

func TestLowerGlobalAugmentation(t *testing.T) {
	items, _ := lowerOK(t, &foreign.NamespaceDecl{
		Name:   "global",
		Global: true,
		Body:   []foreign.Stmt{&foreign.DeclStmt{Decl: &foreign.FunctionDecl{Name: "g"}}},
	})
	require.Len(t, items, 1)
	assert.Empty(t, items[0].ItemAttrs().Namespace)
}
