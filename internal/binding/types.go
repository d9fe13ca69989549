// Package binding defines the binding items produced by the translation passes
// and the output tree handed to the printer.
package binding

import (
	"strings"
)

// Type is a target type expression. String returns a canonical spelling that
// doubles as the identity key for type-set membership.
type Type interface {
	String() string
	isType()
}

// PrimKind enumerates the target primitives.
type PrimKind int

const (
	I32 PrimKind = iota
	ISize
	I64
	U32
	USize
	U64
	F32
	F64
	Bool
	Char
	Unit
	Str
)

var primNames = [...]string{
	I32:   "i32",
	ISize: "isize",
	I64:   "i64",
	U32:   "u32",
	USize: "usize",
	U64:   "u64",
	F32:   "f32",
	F64:   "f64",
	Bool:  "bool",
	Char:  "char",
	Unit:  "()",
	Str:   "String",
}

// Numeric reports whether the primitive is a fixed-width integer or float.
func (k PrimKind) Numeric() bool {
	return k <= F64
}

// Primitive is a builtin scalar, unit, or owned string.
type Primitive struct {
	Kind PrimKind
}

func (t Primitive) String() string { return primNames[t.Kind] }

// Dynamic is the opaque value that can carry anything across the boundary.
type Dynamic struct{}

func (Dynamic) String() string { return "JsValue" }

// Named is a path to a declared or external type. Generic records that the
// source reference carried type arguments, which are never emitted.
type Named struct {
	Path    []string
	Generic bool
}

func (t Named) String() string { return strings.Join(t.Path, "::") }

// Name returns the last path segment.
func (t Named) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// Bare reports whether the reference is a single unparameterized identifier.
func (t Named) Bare() bool {
	return len(t.Path) == 1 && !t.Generic
}

// Reference is a borrowed `&T`.
type Reference struct {
	Elem Type
}

func (t Reference) String() string { return "&" + t.Elem.String() }

// Optional is `Option<T>`.
type Optional struct {
	Elem Type
}

func (t Optional) String() string { return "Option<" + t.Elem.String() + ">" }

// BoxedSlice is `Box<[T]>`.
type BoxedSlice struct {
	Elem Type
}

func (t BoxedSlice) String() string { return "Box<[" + t.Elem.String() + "]>" }

// Tuple is `(A, B, ...)`.
type Tuple struct {
	Elems []Type
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Callable is `dyn Fn(A, B) -> R`. It only appears behind a Reference.
type Callable struct {
	Params []Type
	// Return is nil when the callable returns nothing.
	Return Type
}

func (t Callable) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	s := "dyn Fn(" + strings.Join(parts, ", ") + ")"
	if t.Return != nil {
		s += " -> " + t.Return.String()
	}
	return s
}

func (Primitive) isType()  {}
func (Dynamic) isType()    {}
func (Named) isType()      {}
func (Reference) isType()  {}
func (Optional) isType()   {}
func (BoxedSlice) isType() {}
func (Tuple) isType()      {}
func (Callable) isType()   {}

// SelfName is the placeholder for the polymorphic `this` type until the owner is known.
const SelfName = "Self"

// Self is the self-reference placeholder.
var Self = Named{Path: []string{SelfName}}

// Convenience values for the common primitives.
var (
	F64Type    = Primitive{Kind: F64}
	BoolType   = Primitive{Kind: Bool}
	StringType = Primitive{Kind: Str}
	UnitType   = Primitive{Kind: Unit}
)

// IsSelf reports whether t is the self-reference placeholder.
func IsSelf(t Type) bool {
	n, ok := t.(Named)
	return ok && len(n.Path) == 1 && n.Path[0] == SelfName && !n.Generic
}

// IsCallableRef reports whether t is a borrowed callable.
func IsCallableRef(t Type) bool {
	ref, ok := t.(Reference)
	if !ok {
		return false
	}
	_, ok = ref.Elem.(Callable)
	return ok
}

// OptionalOf wraps t in Optional, keeping the result flat: an optional of an
// optional stays single, and an optional dynamic value is just dynamic.
func OptionalOf(t Type) Type {
	switch t.(type) {
	case Optional, Dynamic:
		return t
	}
	return Optional{Elem: t}
}

// NamedOf builds a bare reference to one identifier.
func NamedOf(name string) Named {
	return Named{Path: []string{name}}
}

// MapType rebuilds t bottom-up, applying fn to every node after its children.
func MapType(t Type, fn func(Type) Type) Type {
	if t == nil {
		return nil
	}
	switch tt := t.(type) {
	case Reference:
		t = Reference{Elem: MapType(tt.Elem, fn)}
	case Optional:
		t = Optional{Elem: MapType(tt.Elem, fn)}
	case BoxedSlice:
		t = BoxedSlice{Elem: MapType(tt.Elem, fn)}
	case Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = MapType(e, fn)
		}
		t = Tuple{Elems: elems}
	case Callable:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = MapType(p, fn)
		}
		t = Callable{Params: params, Return: MapType(tt.Return, fn)}
	}
	return fn(t)
}

// VisitType calls fn on t and every nested type, outermost first.
func VisitType(t Type, fn func(Type)) {
	if t == nil {
		return
	}
	fn(t)
	switch tt := t.(type) {
	case Reference:
		VisitType(tt.Elem, fn)
	case Optional:
		VisitType(tt.Elem, fn)
	case BoxedSlice:
		VisitType(tt.Elem, fn)
	case Tuple:
		for _, e := range tt.Elems {
			VisitType(e, fn)
		}
	case Callable:
		for _, p := range tt.Params {
			VisitType(p, fn)
		}
		VisitType(tt.Return, fn)
	}
}
