// Package generics erases references to type parameters from binding
// signatures. Type parameters are never reified across the boundary, so a
// bare reference to one becomes the dynamic value type.
package generics

import (
	"slices"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/foreign"
	"martianoff/tsbind/internal/transpiler/sanitize"
)

// Scope is the set of type parameter names visible at a declaration.
// The zero value is the empty scope. Scopes are immutable.
type Scope struct {
	names []string
}

// NewScope builds a scope from declared type parameters.
func NewScope(params []foreign.TypeParam) Scope {
	return Scope{}.Join(params)
}

// Join returns a scope that also holds params. The receiver is unchanged.
func (s Scope) Join(params []foreign.TypeParam) Scope {
	if len(params) == 0 {
		return s
	}
	names := slices.Clone(s.names)
	for _, p := range params {
		name := sanitize.Ident(p.Name).Ident
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return Scope{names: names}
}

// Contains reports whether name is a type parameter in scope.
func (s Scope) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

// Names returns the parameter names in declaration order.
func (s Scope) Names() []string {
	return slices.Clone(s.names)
}

// Empty reports whether the scope binds nothing.
func (s Scope) Empty() bool {
	return len(s.names) == 0
}

// EraseType rewrites every bare reference to an in-scope name within t.
func EraseType(s Scope, t binding.Type) binding.Type {
	if s.Empty() {
		return t
	}
	return binding.MapType(t, func(t binding.Type) binding.Type {
		switch tt := t.(type) {
		case binding.Named:
			if tt.Bare() && s.Contains(tt.Path[0]) {
				return binding.Dynamic{}
			}
		case binding.Optional:
			return binding.OptionalOf(tt.Elem)
		}
		return t
	})
}

// Erase rewrites every signature type of item in place.
func Erase(s Scope, item binding.Item) {
	if s.Empty() {
		return
	}
	binding.RewriteTypes(item, func(t binding.Type) binding.Type {
		return EraseType(s, t)
	})
}

// EraseAll erases every item.
func EraseAll(s Scope, items []binding.Item) {
	for _, it := range items {
		Erase(s, it)
	}
}
