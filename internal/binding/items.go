package binding

// NamespacePath is the chain of enclosing namespaces, outer to inner.
type NamespacePath []string

// Prepend returns a new path with seg in front.
func (p NamespacePath) Prepend(seg string) NamespacePath {
	out := make(NamespacePath, 0, len(p)+1)
	out = append(out, seg)
	return append(out, p...)
}

// Attrs is the metadata attached to a binding item.
type Attrs struct {
	// JSName is the foreign name when it differs from the item name.
	JSName      string
	Constructor bool
	Method      bool
	Getter      bool
	Setter      bool
	// StaticOf names the owning type of a static member.
	StaticOf string
	// Extends names the supertype of an opaque type.
	Extends   string
	Namespace NamespacePath
}

// Item is one unit of extern surface.
type Item interface {
	ItemName() string
	ItemAttrs() *Attrs
	isItem()
}

// OpaqueType is a foreign class, interface or alias exposed as a handle.
type OpaqueType struct {
	Name  string
	Attrs Attrs
}

// Param is one function parameter.
type Param struct {
	Name string
	Type Type
}

// ThisParam is the name of the synthesized receiver parameter.
const ThisParam = "this"

// ExternFunction is an imported function, method, accessor or constructor.
type ExternFunction struct {
	Name   string
	Params []Param
	// Return is nil when the function returns nothing.
	Return Type
	Attrs  Attrs
}

// ExternStatic is an imported global value.
type ExternStatic struct {
	Name  string
	Type  Type
	Attrs Attrs
}

func (t *OpaqueType) ItemName() string     { return t.Name }
func (f *ExternFunction) ItemName() string { return f.Name }
func (s *ExternStatic) ItemName() string   { return s.Name }

func (t *OpaqueType) ItemAttrs() *Attrs     { return &t.Attrs }
func (f *ExternFunction) ItemAttrs() *Attrs { return &f.Attrs }
func (s *ExternStatic) ItemAttrs() *Attrs   { return &s.Attrs }

func (*OpaqueType) isItem()     {}
func (*ExternFunction) isItem() {}
func (*ExternStatic) isItem()   {}

// Receiver returns the type behind the synthesized `this` parameter, if any.
func (f *ExternFunction) Receiver() (Named, bool) {
	if len(f.Params) == 0 || f.Params[0].Name != ThisParam {
		return Named{}, false
	}
	ref, ok := f.Params[0].Type.(Reference)
	if !ok {
		return Named{}, false
	}
	n, ok := ref.Elem.(Named)
	return n, ok
}

// RewriteTypes replaces every signature type of item with fn's result.
func RewriteTypes(item Item, fn func(Type) Type) {
	switch it := item.(type) {
	case *ExternFunction:
		for i := range it.Params {
			it.Params[i].Type = fn(it.Params[i].Type)
		}
		if it.Return != nil {
			it.Return = fn(it.Return)
		}
	case *ExternStatic:
		it.Type = fn(it.Type)
	}
}

// SignatureTypes returns the parameter and return types of item in order.
func SignatureTypes(item Item) []Type {
	switch it := item.(type) {
	case *ExternFunction:
		out := make([]Type, 0, len(it.Params)+1)
		for _, p := range it.Params {
			out = append(out, p.Type)
		}
		if it.Return != nil {
			out = append(out, it.Return)
		}
		return out
	case *ExternStatic:
		return []Type{it.Type}
	}
	return nil
}
