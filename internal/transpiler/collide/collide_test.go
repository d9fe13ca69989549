package collide_test

import (
	"fmt"
	"testing"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/transpiler/collide"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func method(owner, name string, ret binding.Type) *binding.ExternFunction {
	return &binding.ExternFunction{
		Name:   name,
		Params: []binding.Param{{Name: binding.ThisParam, Type: binding.Reference{Elem: binding.NamedOf(owner)}}},
		Return: ret,
		Attrs:  binding.Attrs{Method: true},
	}
}

func TestOwnerOf(t *testing.T) {
	tests := []struct {
		name string
		item binding.Item
		want collide.OwnerKey
	}{
		{name: "free function", item: &binding.ExternFunction{Name: "f"}, want: collide.Free},
		{name: "static item", item: &binding.ExternStatic{Name: "s"}, want: collide.Free},
		{name: "opaque type", item: &binding.OpaqueType{Name: "T"}, want: collide.Free},
		{name: "method", item: method("A", "m", nil), want: collide.OwnerKey{Type: "A"}},
		{name: "static method", item: &binding.ExternFunction{Name: "m", Attrs: binding.Attrs{StaticOf: "B"}}, want: collide.OwnerKey{Type: "B"}},
		{
			name: "constructor",
			item: &binding.ExternFunction{Name: "new", Return: binding.NamedOf("C"), Attrs: binding.Attrs{Constructor: true}},
			want: collide.OwnerKey{Type: "C"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collide.OwnerOf(tt.item))
		})
	}
	assert.True(t, collide.Free.IsFree())
	assert.Equal(t, "A", collide.OwnerKey{Type: "A"}.String())
}

func TestResolveDistinctOwners(t *testing.T) {
	a := method("A", "m", binding.NamedOf("A"))
	a2 := method("A2", "m", binding.NamedOf("A"))
	collide.NewResolver().Resolve([]binding.Item{
		&binding.OpaqueType{Name: "A"}, a,
		&binding.OpaqueType{Name: "A2"}, a2,
	})
	assert.Equal(t, "m", a.Name)
	assert.Equal(t, "m", a2.Name)
}

func TestResolveSuffixesInEncounterOrder(t *testing.T) {
	var items []binding.Item
	for i := 0; i < 4; i++ {
		items = append(items, method("A", "m", nil))
	}
	collide.NewResolver().Resolve(items)

	for i, it := range items {
		want := "m"
		if i > 0 {
			want = fmt.Sprintf("m_%d", i)
		}
		assert.Equal(t, want, it.ItemName())
	}
	assert.Empty(t, items[0].ItemAttrs().JSName)
	assert.Equal(t, "m", items[1].ItemAttrs().JSName)
}

func TestResolveSkipsTakenSuffix(t *testing.T) {
	items := []binding.Item{
		&binding.ExternFunction{Name: "f_1"},
		&binding.ExternFunction{Name: "f"},
		&binding.ExternFunction{Name: "f"},
	}
	collide.NewResolver().Resolve(items)
	assert.Equal(t, []string{"f_1", "f", "f_2"}, []string{items[0].ItemName(), items[1].ItemName(), items[2].ItemName()})
}

func TestResolveConstructors(t *testing.T) {
	ctor := func() *binding.ExternFunction {
		return &binding.ExternFunction{Name: "new", Return: binding.NamedOf("P"), Attrs: binding.Attrs{Constructor: true}}
	}
	items := []binding.Item{ctor(), ctor(), method("P", "new", nil)}
	collide.NewResolver().Resolve(items)
	assert.Equal(t, "new", items[0].ItemName())
	assert.Equal(t, "new_1", items[1].ItemName())
	assert.Empty(t, items[1].ItemAttrs().JSName)
	assert.Equal(t, "new_2", items[2].ItemName())
}

func TestResolveRawIdentifiers(t *testing.T) {
	items := []binding.Item{
		&binding.ExternFunction{Name: "r#type", Attrs: binding.Attrs{JSName: "type"}},
		&binding.ExternFunction{Name: "r#type", Attrs: binding.Attrs{JSName: "type"}},
	}
	collide.NewResolver().Resolve(items)
	assert.Equal(t, "type_1", items[1].ItemName())
	assert.Equal(t, "type", items[1].ItemAttrs().JSName)
}

func TestResolveStaticsShareFreeNamespace(t *testing.T) {
	items := []binding.Item{
		&binding.ExternStatic{Name: "x", Type: binding.F64Type},
		&binding.ExternFunction{Name: "x"},
	}
	collide.NewResolver().Resolve(items)
	assert.Equal(t, "x", items[0].ItemName())
	assert.Equal(t, "x_1", items[1].ItemName())
}

func TestResolveSelf(t *testing.T) {
	m := method("Node", "clone", binding.Optional{Elem: binding.Self})
	m.Params = append(m.Params, binding.Param{Name: "other", Type: binding.BoxedSlice{Elem: binding.Self}})
	static := &binding.ExternFunction{Name: "make", Return: binding.Self, Attrs: binding.Attrs{StaticOf: "Node"}}
	free := &binding.ExternFunction{Name: "f", Return: binding.Optional{Elem: binding.Self}}

	collide.NewResolver().Resolve([]binding.Item{m, static, free})

	assert.Equal(t, binding.Optional{Elem: binding.NamedOf("Node")}, m.Return)
	assert.Equal(t, binding.BoxedSlice{Elem: binding.NamedOf("Node")}, m.Params[1].Type)
	assert.Equal(t, binding.NamedOf("Node"), static.Return)
	assert.Equal(t, binding.Dynamic{}, free.Return)
}

func TestCollisionInvariant(t *testing.T) {
	owners := []string{"", "A", "B"}
	names := []string{"m", "n", "m_1"}
	var items []binding.Item
	for i := 0; i < 60; i++ {
		owner := owners[i%len(owners)]
		name := names[(i/3)%len(names)]
		if owner == "" {
			items = append(items, &binding.ExternFunction{Name: name})
		} else {
			items = append(items, method(owner, name, nil))
		}
	}
	collide.NewResolver().Resolve(items)

	seen := make(map[collide.OwnerKey]map[string]bool)
	for _, it := range items {
		owner := collide.OwnerOf(it)
		if seen[owner] == nil {
			seen[owner] = make(map[string]bool)
		}
		require.False(t, seen[owner][it.ItemName()], "duplicate %s under %s", it.ItemName(), owner)
		seen[owner][it.ItemName()] = true
	}
}
