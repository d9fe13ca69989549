// Package collide gives every function and static a name that is unique
// among the items sharing its owner, and resolves self references to the
// owning type.
package collide

import (
	"fmt"
	"strings"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/transpiler/sanitize"
)

// OwnerKey identifies the scope a name must be unique in. The zero value is
// the free namespace of the extern block.
type OwnerKey struct {
	Type string
}

// Free is the owner of free functions and statics.
var Free = OwnerKey{}

// IsFree reports whether k is the free namespace.
func (k OwnerKey) IsFree() bool {
	return k.Type == ""
}

func (k OwnerKey) String() string {
	if k.IsFree() {
		return "<free>"
	}
	return k.Type
}

// OwnerOf returns the owner of item: the type a static method belongs to,
// the type a constructor builds, the type of a method receiver, or the free
// namespace.
func OwnerOf(item binding.Item) OwnerKey {
	fn, ok := item.(*binding.ExternFunction)
	if !ok {
		return Free
	}
	if fn.Attrs.StaticOf != "" {
		return OwnerKey{Type: fn.Attrs.StaticOf}
	}
	if fn.Attrs.Constructor {
		if n, ok := fn.Return.(binding.Named); ok {
			return OwnerKey{Type: n.String()}
		}
	}
	if recv, ok := fn.Receiver(); ok {
		return OwnerKey{Type: recv.String()}
	}
	return Free
}

// Resolver tracks the names registered under every owner. One resolver
// covers one extern block.
type Resolver struct {
	used map[OwnerKey]map[string]bool
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{used: make(map[OwnerKey]map[string]bool)}
}

// Resolve renames items in place, in order. The first item with a given
// name under an owner keeps it; later ones get the first free `_N` suffix.
// A renamed item keeps its foreign name so the binding still resolves.
func (r *Resolver) Resolve(items []binding.Item) {
	for _, item := range items {
		switch it := item.(type) {
		case *binding.ExternFunction:
			owner := OwnerOf(it)
			resolveSelf(it, owner)
			name := r.claim(owner, it.Name)
			if name != it.Name {
				if it.Attrs.JSName == "" && !it.Attrs.Constructor {
					it.Attrs.JSName = it.Name
				}
				it.Name = name
			}
		case *binding.ExternStatic:
			resolveSelf(it, Free)
			name := r.claim(Free, it.Name)
			if name != it.Name {
				if it.Attrs.JSName == "" {
					it.Attrs.JSName = it.Name
				}
				it.Name = name
			}
		}
	}
}

func (r *Resolver) claim(owner OwnerKey, name string) string {
	names := r.used[owner]
	if names == nil {
		names = make(map[string]bool)
		r.used[owner] = names
	}
	candidate := name
	base := strings.TrimPrefix(name, sanitize.RawPrefix)
	for i := 1; names[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	names[candidate] = true
	return candidate
}

// resolveSelf replaces the self placeholder with the owning type. Outside
// of a type there is nothing to refer to, so it becomes dynamic.
func resolveSelf(item binding.Item, owner OwnerKey) {
	var target binding.Type = binding.Dynamic{}
	if !owner.IsFree() {
		target = binding.NamedOf(owner.Type)
	}
	binding.RewriteTypes(item, func(t binding.Type) binding.Type {
		return binding.MapType(t, func(t binding.Type) binding.Type {
			if binding.IsSelf(t) {
				return target
			}
			if opt, ok := t.(binding.Optional); ok {
				return binding.OptionalOf(opt.Elem)
			}
			return t
		})
	})
}
