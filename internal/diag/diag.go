// Package diag collects the non-fatal diagnostics raised while binding one
// source unit.
package diag

import (
	"fmt"
	"strings"
)

// Kind groups diagnostics by the construct that raised them.
type Kind int

const (
	KindType Kind = iota
	KindMember
	KindNamespace
	KindImport
	KindStatement
)

var kindNames = map[Kind]string{
	KindType:      "Type",
	KindMember:    "Member",
	KindNamespace: "Namespace",
	KindImport:    "Import",
	KindStatement: "Statement",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Context locates a diagnostic.
type Context struct {
	Unit   string
	Decl   string
	Member string
	Line   int
}

// WithDecl returns a copy of c scoped to a declaration.
func (c Context) WithDecl(name string, line int) Context {
	c.Decl = name
	c.Member = ""
	c.Line = line
	return c
}

// WithMember returns a copy of c scoped to a member of the current declaration.
func (c Context) WithMember(name string, line int) Context {
	c.Member = name
	if line > 0 {
		c.Line = line
	}
	return c
}

// Diagnostic is one reported occurrence.
type Diagnostic struct {
	Kind    Kind
	Context Context
	Message string
}

// Location renders the context as `unit:line decl.member`.
func (d Diagnostic) Location() string {
	var sb strings.Builder
	sb.WriteString(d.Context.Unit)
	if d.Context.Line > 0 {
		sb.WriteString(fmt.Sprintf(":%d", d.Context.Line))
	}
	if d.Context.Decl != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(d.Context.Decl)
		if d.Context.Member != "" {
			sb.WriteByte('.')
			sb.WriteString(d.Context.Member)
		}
	}
	return sb.String()
}

func (d Diagnostic) String() string {
	loc := d.Location()
	if loc == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Kind, d.Message)
}

// Sink accumulates diagnostics for a single unit. It is not safe for
// concurrent use; every unit owns its own sink.
type Sink struct {
	diags []Diagnostic
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report records one diagnostic. A nil sink discards it.
func (s *Sink) Report(ctx Context, kind Kind, format string, args ...any) {
	if s == nil {
		return
	}
	s.diags = append(s.diags, Diagnostic{
		Kind:    kind,
		Context: ctx,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns the recorded diagnostics in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.diags
}

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.diags)
}
