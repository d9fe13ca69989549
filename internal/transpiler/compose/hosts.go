package compose

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
)

// HostUses returns one absolute use per host library type the unit refers
// to by bare name without declaring it, sorted by path. Supertypes count as
// references.
func HostUses(cat *catalog.Catalog, declared []string, nodes []binding.Node) []*binding.Use {
	if cat == nil {
		cat = catalog.Default()
	}
	local := make(map[string]bool, len(declared))
	for _, name := range declared {
		local[name] = true
	}

	paths := treeset.NewWithStringComparator()
	note := func(name string) {
		if name == "" || local[name] {
			return
		}
		if host, ok := cat.HostOf(name); ok {
			paths.Add(host.Crate + "::" + name)
		}
	}
	binding.Walk(nodes, func(it binding.Item) {
		if ty, ok := it.(*binding.OpaqueType); ok {
			note(ty.Attrs.Extends)
			return
		}
		for _, t := range binding.SignatureTypes(it) {
			binding.VisitType(t, func(t binding.Type) {
				if n, ok := t.(binding.Named); ok && len(n.Path) == 1 {
					note(n.Path[0])
				}
			})
		}
	})

	uses := make([]*binding.Use, 0, paths.Size())
	for _, v := range paths.Values() {
		crate, name, _ := strings.Cut(v.(string), "::")
		uses = append(uses, &binding.Use{
			Absolute: true,
			Path:     []string{crate},
			Leaves:   []binding.UseLeaf{{Name: name}},
		})
	}
	return uses
}
