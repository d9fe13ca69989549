package foreign

// Type is a type expression.
type Type interface {
	typeNode()
}

// Keyword enumerates the predefined type keywords.
type Keyword int

const (
	KwAny Keyword = iota
	KwUnknown
	KwNumber
	KwBoolean
	KwString
	KwVoid
	KwNull
	KwUndefined
	KwNever
	KwObject
	KwBigInt
	KwSymbol
	KwIntrinsic
)

var keywordNames = map[string]Keyword{
	"any":       KwAny,
	"unknown":   KwUnknown,
	"number":    KwNumber,
	"boolean":   KwBoolean,
	"string":    KwString,
	"void":      KwVoid,
	"null":      KwNull,
	"undefined": KwUndefined,
	"never":     KwNever,
	"object":    KwObject,
	"bigint":    KwBigInt,
	"symbol":    KwSymbol,
	"intrinsic": KwIntrinsic,
}

// LookupKeyword resolves a predefined type name.
func LookupKeyword(name string) (Keyword, bool) {
	kw, ok := keywordNames[name]
	return kw, ok
}

func (k Keyword) String() string {
	for name, kw := range keywordNames {
		if kw == k {
			return name
		}
	}
	return "keyword"
}

// KeywordType is a predefined type such as `number`.
type KeywordType struct {
	Kind Keyword
}

// TypeRef is a reference to a named type. Name holds the dotted segments
// outer to inner; `A.B.C<X>` is Name ["A", "B", "C"] with Args [X].
type TypeRef struct {
	Name []string
	Args []Type
}

// FunctionType is `<T>(a: A) => R`.
type FunctionType struct {
	Sig Signature
}

// ConstructorType is `new (a: A) => R`.
type ConstructorType struct {
	Sig Signature
}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem Type
}

// OptionalType is `T?` inside a tuple.
type OptionalType struct {
	Elem Type
}

// UnionType is `A | B | ...`.
type UnionType struct {
	Types []Type
}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Types []Type
}

// TupleElement is one position of a tuple type, optionally labeled.
type TupleElement struct {
	Label string
	Type  Type
}

// TupleType is `[A, B]`.
type TupleType struct {
	Elems []TupleElement
}

// ParenType is `(T)`.
type ParenType struct {
	Inner Type
}

// ThisType is the polymorphic `this` type.
type ThisType struct{}

// ImportType is `import("module").Qualifier<Args>`.
type ImportType struct {
	Module    string
	Qualifier []string
	Args      []Type
}

// TypeLiteral is an object type `{ ... }`.
type TypeLiteral struct {
	Members []TypeMember
}

// LiteralType is a literal such as `"a"`, `1` or `true`.
type LiteralType struct {
	Text string
}

// IndexedAccessType is `T[K]`.
type IndexedAccessType struct {
	Object Type
	Index  Type
}

// TypeQuery is `typeof x`.
type TypeQuery struct {
	Expr string
}

// MappedType is `{ [K in T]: V }`.
type MappedType struct{}

// ConditionalType is `A extends B ? C : D`.
type ConditionalType struct{}

// PredicateType is `x is T` or `asserts x`.
type PredicateType struct{}

// InferType is `infer T`.
type InferType struct {
	Name string
}

// RestType is `...T` inside a tuple.
type RestType struct {
	Elem Type
}

// TypeOperator is `keyof T`, `unique symbol` or `readonly T[]`.
type TypeOperator struct {
	Op    string
	Inner Type
}

// UnknownType is a construct the frontend recognized but has no model for.
type UnknownType struct {
	Kind string
}

func (*KeywordType) typeNode()       {}
func (*TypeRef) typeNode()           {}
func (*FunctionType) typeNode()      {}
func (*ConstructorType) typeNode()   {}
func (*ArrayType) typeNode()         {}
func (*OptionalType) typeNode()      {}
func (*UnionType) typeNode()         {}
func (*IntersectionType) typeNode()  {}
func (*TupleType) typeNode()         {}
func (*ParenType) typeNode()         {}
func (*ThisType) typeNode()          {}
func (*ImportType) typeNode()        {}
func (*TypeLiteral) typeNode()       {}
func (*LiteralType) typeNode()       {}
func (*IndexedAccessType) typeNode() {}
func (*TypeQuery) typeNode()         {}
func (*MappedType) typeNode()        {}
func (*ConditionalType) typeNode()   {}
func (*PredicateType) typeNode()     {}
func (*InferType) typeNode()         {}
func (*RestType) typeNode()          {}
func (*TypeOperator) typeNode()      {}
func (*UnknownType) typeNode()       {}

// Kw is shorthand for a keyword type.
func Kw(k Keyword) *KeywordType {
	return &KeywordType{Kind: k}
}

// Ref is shorthand for a reference to a possibly dotted name.
func Ref(name ...string) *TypeRef {
	return &TypeRef{Name: name}
}
