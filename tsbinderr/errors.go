// Package tsbinderr defines the error types reported while translating
// declaration files into bindings.
package tsbinderr

import (
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeSyntax      ErrorType = "SyntaxError"
	TypeUnsupported ErrorType = "UnsupportedError"
	TypeInternal    ErrorType = "InternalError"
)

// BindError is the interface for all tsbind errors.
type BindError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for tsbind errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// SyntaxError is reported by the frontend when the declaration file does not parse.
type SyntaxError struct {
	BaseError
	Line     int
	Column   int
	FilePath string
}

func (e *SyntaxError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("[%s] %s:%d:%d %s", e.ErrType, e.FilePath, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("[%s] line %d:%d %s", e.ErrType, e.Line, e.Column, e.Msg)
}

// UnsupportedError aborts the lowering of one declaration. It is raised for
// constructs that are structurally required but have no lowering, so the
// supported grammar subset has to grow before the input can be bound.
type UnsupportedError struct {
	BaseError
	Decl      string
	Member    string
	Construct string
	Line      int
}

func (e *UnsupportedError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", e.ErrType))
	if e.Decl != "" {
		sb.WriteString(e.Decl)
		if e.Member != "" {
			sb.WriteString(".")
			sb.WriteString(e.Member)
		}
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf(" (line %d)", e.Line))
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

// InternalError reports a violated invariant of the input tree.
type InternalError struct {
	BaseError
	Decl string
}

func (e *InternalError) Error() string {
	if e.Decl != "" {
		return fmt.Sprintf("[%s] %s: %s", e.ErrType, e.Decl, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// MultiError collects multiple tsbind errors.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if be, ok := m.Errors[0].(BindError); ok {
			return be.Type()
		}
	}
	return "MultiError"
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add appends err unless it is nil. A nested MultiError is flattened.
func (m *MultiError) Add(err error) {
	if err == nil {
		return
	}
	if nested, ok := err.(*MultiError); ok {
		m.Errors = append(m.Errors, nested.Errors...)
		return
	}
	m.Errors = append(m.Errors, err)
}

// ErrOrNil returns m when it holds at least one error.
func (m *MultiError) ErrOrNil() error {
	if m == nil || len(m.Errors) == 0 {
		return nil
	}
	return m
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(line, column int, msg string) *SyntaxError {
	return &SyntaxError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSyntax,
		},
		Line:   line,
		Column: column,
	}
}

// NewSyntaxErrorInFile creates a SyntaxError with file path, line, and column position.
func NewSyntaxErrorInFile(filePath string, line, column int, msg string) *SyntaxError {
	err := NewSyntaxError(line, column, msg)
	err.FilePath = filePath
	return err
}

// NewUnsupportedError creates an UnsupportedError for the named construct.
func NewUnsupportedError(decl, member, construct string) *UnsupportedError {
	return &UnsupportedError{
		BaseError: BaseError{
			Msg:     construct + " is not supported",
			ErrType: TypeUnsupported,
		},
		Decl:      decl,
		Member:    member,
		Construct: construct,
	}
}

// NewInternalError creates a new InternalError.
func NewInternalError(decl, msg string) *InternalError {
	return &InternalError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeInternal,
		},
		Decl: decl,
	}
}
