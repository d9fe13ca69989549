// Package abi restricts binding signatures to the types that can cross the
// call boundary. Anything else is replaced by the dynamic value type.
package abi

import (
	"github.com/emirpasic/gods/sets/treeset"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/catalog"
)

var sliceable = []binding.PrimKind{
	binding.I32, binding.ISize, binding.I64,
	binding.U32, binding.USize, binding.U64,
	binding.F32, binding.F64,
}

var nonSliceable = []binding.PrimKind{
	binding.Bool, binding.Char, binding.Unit, binding.Str,
}

// Set is the closed set of boundary-safe types for one unit. Membership is
// keyed by the canonical spelling of a type.
type Set struct {
	members map[string]bool
	names   *treeset.Set
}

// NewSet builds the closure of the builtin primitives, every catalog type and
// every declared name under reference and option. Numeric primitives, catalog
// types and declared names are also closed under boxed slice and optional
// boxed slice.
func NewSet(cat *catalog.Catalog, declared []string) *Set {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Set{members: make(map[string]bool), names: treeset.NewWithStringComparator()}

	var base, slices []binding.Type
	for _, k := range sliceable {
		base = append(base, binding.Primitive{Kind: k})
	}
	for _, k := range nonSliceable {
		base = append(base, binding.Primitive{Kind: k})
	}
	slices = append(slices, base[:len(sliceable)]...)
	for _, name := range append(cat.Names(), declared...) {
		if name == "" {
			continue
		}
		s.names.Add(name)
		named := binding.NamedOf(name)
		base = append(base, named)
		slices = append(slices, named)
	}

	for _, t := range base {
		s.add(t)
		s.add(binding.Reference{Elem: t})
		s.add(binding.Optional{Elem: t})
	}
	for _, t := range slices {
		boxed := binding.BoxedSlice{Elem: t}
		s.add(boxed)
		s.add(binding.Optional{Elem: boxed})
	}
	s.add(binding.Dynamic{})
	return s
}

func (s *Set) add(t binding.Type) {
	s.members[t.String()] = true
}

// Contains reports whether t may appear in a signature as is.
func (s *Set) Contains(t binding.Type) bool {
	return s.members[t.String()]
}

// Names returns the named (non-primitive) base members in sorted order.
func (s *Set) Names() []string {
	out := make([]string, 0, s.names.Size())
	for _, v := range s.names.Values() {
		out = append(out, v.(string))
	}
	return out
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Param legalizes a parameter type. Borrowed callables are always legal.
func (s *Set) Param(t binding.Type) binding.Type {
	if binding.IsCallableRef(t) {
		return t
	}
	return s.value(t)
}

// Return legalizes a return or static type. A callable cannot be returned,
// even wrapped in an option or slice.
func (s *Set) Return(t binding.Type) binding.Type {
	if t == nil {
		return nil
	}
	if binding.IsCallableRef(unwrap(t)) {
		return binding.Dynamic{}
	}
	return s.value(t)
}

func (s *Set) value(t binding.Type) binding.Type {
	if s.Contains(t) {
		return t
	}
	return binding.Dynamic{}
}

func unwrap(t binding.Type) binding.Type {
	for {
		switch tt := t.(type) {
		case binding.Optional:
			t = tt.Elem
		case binding.BoxedSlice:
			t = tt.Elem
		default:
			return t
		}
	}
}

// LegalizeItem rewrites every signature type of item in place.
func (s *Set) LegalizeItem(item binding.Item) {
	switch it := item.(type) {
	case *binding.ExternFunction:
		for i := range it.Params {
			it.Params[i].Type = s.Param(it.Params[i].Type)
		}
		it.Return = s.Return(it.Return)
	case *binding.ExternStatic:
		it.Type = s.Return(it.Type)
	}
}

// Legalize rewrites every item of nodes, including nested modules.
func Legalize(s *Set, nodes []binding.Node) {
	binding.Walk(nodes, s.LegalizeItem)
}

// Declared collects the names a unit makes visible: every item name and the
// visible name of every use leaf.
func Declared(nodes []binding.Node) []string {
	names := treeset.NewWithStringComparator()
	binding.Walk(nodes, func(it binding.Item) {
		names.Add(it.ItemName())
	})
	binding.WalkUses(nodes, func(u *binding.Use) {
		for _, l := range u.Leaves {
			if l.Rename != "" {
				names.Add(l.Rename)
			} else {
				names.Add(l.Name)
			}
		}
	})
	out := make([]string, 0, names.Size())
	for _, v := range names.Values() {
		out = append(out, v.(string))
	}
	return out
}
