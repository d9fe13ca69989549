package foreign

// ClassMember is one entry of a class body.
type ClassMember interface {
	classMember()
}

// Constructor is `constructor(...)`. Key is the name as written; anything but
// "constructor" cannot be bound.
type Constructor struct {
	Key    PropKey
	Access Access
	Params []Param
	Pos    Pos
}

// MethodKind separates plain methods from accessors.
type MethodKind int

const (
	MethodPlain MethodKind = iota
	MethodGetter
	MethodSetter
)

// Method is a class method or accessor.
type Method struct {
	Key      PropKey
	Kind     MethodKind
	Access   Access
	Static   bool
	Optional bool
	Sig      Signature
	Pos      Pos
}

// Property is a class field.
type Property struct {
	Key      PropKey
	Access   Access
	Static   bool
	Optional bool
	Readonly bool
	Type     Type
	Pos      Pos
}

// IndexSignature is `[key: K]: V` in a class or type body.
type IndexSignature struct {
	Pos Pos
}

// StaticBlock is `static { ... }`.
type StaticBlock struct {
	Pos Pos
}

// EmptyMember is a stray `;` in a class body.
type EmptyMember struct {
	Pos Pos
}

func (*Constructor) classMember()    {}
func (*Method) classMember()         {}
func (*Property) classMember()       {}
func (*IndexSignature) classMember() {}
func (*StaticBlock) classMember()    {}
func (*EmptyMember) classMember()    {}

// TypeMember is one entry of an interface body or object type literal.
type TypeMember interface {
	typeMember()
}

// PropertySignature is `readonly name?: T`. Params is non-nil for the legacy
// form where a property carries a parameter list.
type PropertySignature struct {
	Key        PropKey
	Readonly   bool
	Optional   bool
	TypeParams []TypeParam
	Params     []Param
	Type       Type
	Pos        Pos
}

// MethodSignature is `name?<T>(...): R`.
type MethodSignature struct {
	Key      PropKey
	Optional bool
	Sig      Signature
	Pos      Pos
}

// GetterSignature is `get name(): T`.
type GetterSignature struct {
	Key  PropKey
	Type Type
	Pos  Pos
}

// SetterSignature is `set name(v: T)`.
type SetterSignature struct {
	Key   PropKey
	Param Param
	Pos   Pos
}

// CallSignature is `(...): R` inside a type body.
type CallSignature struct {
	Sig Signature
	Pos Pos
}

// ConstructSignature is `new (...): R` inside a type body.
type ConstructSignature struct {
	Sig Signature
	Pos Pos
}

func (*PropertySignature) typeMember()  {}
func (*MethodSignature) typeMember()    {}
func (*GetterSignature) typeMember()    {}
func (*SetterSignature) typeMember()    {}
func (*CallSignature) typeMember()      {}
func (*ConstructSignature) typeMember() {}
func (*IndexSignature) typeMember()     {}
