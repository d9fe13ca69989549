// Package foreign defines the declaration-file syntax tree consumed by the
// binding generator. Trees are built by a frontend (see internal/parser) and
// are never mutated afterwards.
package foreign

// Pos is a 1-based source position.
type Pos struct {
	Line   int
	Column int
}

// SourceFile is one parsed declaration file.
type SourceFile struct {
	Path       string
	Statements []Stmt
}

// IsScript reports whether the file is a global script: it has no top-level
// import or export, so every declaration it makes is globally visible.
func (f *SourceFile) IsScript() bool {
	for _, s := range f.Statements {
		switch st := s.(type) {
		case *ImportDecl, *ExportNamed, *ExportDefaultExpr, *ExportDefaultDecl,
			*ExportAll, *NamespaceExport, *ExportAssignment:
			return false
		case *DeclStmt:
			if st.Exported {
				return false
			}
		}
	}
	return true
}

// Stmt is a top-level or namespace-level statement.
type Stmt interface {
	stmtNode()
}

// DeclStmt wraps a declaration, exported or not.
type DeclStmt struct {
	Decl     Decl
	Exported bool
}

// ImportSpecKind distinguishes the forms of an import specifier.
type ImportSpecKind int

const (
	ImportNamed ImportSpecKind = iota
	ImportDefault
	ImportNamespace
)

// ImportSpecifier is one binding introduced by an import statement.
// For `import { a as b }`, Imported is "a" and Local is "b".
type ImportSpecifier struct {
	Kind     ImportSpecKind
	Local    string
	Imported string
}

// ImportDecl is `import ... from "source"`.
type ImportDecl struct {
	Source     string
	Specifiers []ImportSpecifier
	TypeOnly   bool
}

// ExportSpecKind distinguishes the forms of an export specifier.
type ExportSpecKind int

const (
	ExportNamedSpec ExportSpecKind = iota
	ExportDefaultSpec
	ExportNamespaceSpec
)

// ExportSpecifier is one entry of an export clause. For `export { a as b }`,
// Orig is "a" and Exported is "b".
type ExportSpecifier struct {
	Kind     ExportSpecKind
	Orig     string
	Exported string
}

// ExportNamed is `export { ... }` with an optional `from "source"`.
type ExportNamed struct {
	Source     string
	HasSource  bool
	Specifiers []ExportSpecifier
}

// ExportDefaultExpr is `export default Ident;`.
type ExportDefaultExpr struct {
	Ident string
}

// ExportDefaultDecl is `export default class/function ...`.
type ExportDefaultDecl struct {
	Decl Decl
}

// ExportAll is `export * from "source"`.
type ExportAll struct {
	Source string
}

// NamespaceExport is `export as namespace Name;`.
type NamespaceExport struct {
	Name string
}

// ExportAssignment is `export = Ident;`.
type ExportAssignment struct {
	Ident string
}

// OtherStmt is any statement without a declaration meaning, kept so that the
// composer can report it.
type OtherStmt struct {
	Kind string
	Pos  Pos
}

func (*DeclStmt) stmtNode()          {}
func (*ImportDecl) stmtNode()        {}
func (*ExportNamed) stmtNode()       {}
func (*ExportDefaultExpr) stmtNode() {}
func (*ExportDefaultDecl) stmtNode() {}
func (*ExportAll) stmtNode()         {}
func (*NamespaceExport) stmtNode()   {}
func (*ExportAssignment) stmtNode()  {}
func (*OtherStmt) stmtNode()         {}

// Decl is a named declaration.
type Decl interface {
	DeclName() string
	DeclPos() Pos
	declNode()
}

// TypeParam is a declared generic parameter.
type TypeParam struct {
	Name string
}

// Signature is the callable part shared by functions, methods and function types.
type Signature struct {
	TypeParams []TypeParam
	Params     []Param
	// Return is nil when the source has no return annotation.
	Return Type
}

// PatternKind tells whether a parameter binds a plain identifier.
type PatternKind int

const (
	PatternIdent PatternKind = iota
	PatternObject
	PatternArray
)

// Param is one formal parameter.
type Param struct {
	Name     string
	Pattern  PatternKind
	Type     Type
	Optional bool
	Rest     bool
}

// Access is an explicit accessibility modifier.
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessPrivate
	AccessProtected
)

// Hidden reports whether a member with this modifier is invisible to bindings.
func (a Access) Hidden() bool {
	return a == AccessPrivate || a == AccessProtected
}

// KeyKind is the syntactic form of a member name.
type KeyKind int

const (
	KeyIdent KeyKind = iota
	KeyString
	KeyNumber
	KeyComputed
	KeyPrivate
)

// PropKey is a member name.
type PropKey struct {
	Kind KeyKind
	Name string
}

// Ident returns an identifier key.
func Ident(name string) PropKey {
	return PropKey{Kind: KeyIdent, Name: name}
}

// ClassDecl is `class Name<T> extends Super { ... }`.
type ClassDecl struct {
	Name       string
	TypeParams []TypeParam
	// SuperClass is the identifier in the extends clause. SuperComplex is set
	// when the clause holds any other expression.
	SuperClass   string
	SuperComplex bool
	Abstract     bool
	Members      []ClassMember
	Pos          Pos
}

// FunctionDecl is `function name(...): T;`.
type FunctionDecl struct {
	Name string
	Sig  Signature
	Pos  Pos
}

// Declarator is one binding of a variable statement.
type Declarator struct {
	Name    string
	Pattern PatternKind
	Type    Type
}

// VarDecl is `var|let|const a: T;`.
type VarDecl struct {
	Kind        string
	Declarators []Declarator
	Pos         Pos
}

// TypeAliasDecl is `type Name<T> = Type;`.
type TypeAliasDecl struct {
	Name       string
	TypeParams []TypeParam
	Type       Type
	Pos        Pos
}

// InterfaceDecl is `interface Name<T> extends A, B { ... }`.
type InterfaceDecl struct {
	Name       string
	TypeParams []TypeParam
	Extends    []Type
	Body       []TypeMember
	Pos        Pos
}

// EnumDecl is `enum Name { ... }`.
type EnumDecl struct {
	Name    string
	Const   bool
	Members []string
	Pos     Pos
}

// NamespaceDecl is `namespace Name { ... }` or `module "name" { ... }`.
// Nested is set instead of Body for the dotted form `namespace A.B { }`,
// whose body belongs to another namespace.
type NamespaceDecl struct {
	Name   string
	Quoted bool
	Body   []Stmt
	Nested *NamespaceDecl
	Global bool
	Pos    Pos
}

func (d *ClassDecl) DeclName() string     { return d.Name }
func (d *FunctionDecl) DeclName() string  { return d.Name }
func (d *TypeAliasDecl) DeclName() string { return d.Name }
func (d *InterfaceDecl) DeclName() string { return d.Name }
func (d *EnumDecl) DeclName() string      { return d.Name }
func (d *NamespaceDecl) DeclName() string { return d.Name }

// DeclName returns the first declarator's name.
func (d *VarDecl) DeclName() string {
	if len(d.Declarators) == 0 {
		return ""
	}
	return d.Declarators[0].Name
}

func (d *ClassDecl) DeclPos() Pos     { return d.Pos }
func (d *FunctionDecl) DeclPos() Pos  { return d.Pos }
func (d *VarDecl) DeclPos() Pos       { return d.Pos }
func (d *TypeAliasDecl) DeclPos() Pos { return d.Pos }
func (d *InterfaceDecl) DeclPos() Pos { return d.Pos }
func (d *EnumDecl) DeclPos() Pos      { return d.Pos }
func (d *NamespaceDecl) DeclPos() Pos { return d.Pos }

func (*ClassDecl) declNode()     {}
func (*FunctionDecl) declNode()  {}
func (*VarDecl) declNode()       {}
func (*TypeAliasDecl) declNode() {}
func (*InterfaceDecl) declNode() {}
func (*EnumDecl) declNode()      {}
func (*NamespaceDecl) declNode() {}
