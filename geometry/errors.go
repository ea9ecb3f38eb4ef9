package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax    = errors.New("syntax error")
	ErrReference = errors.New("reference error")
	ErrGeometry  = errors.New("geometry error")
	ErrConfig    = errors.New("config error")
	ErrDuplicate = errors.New("duplicate declaration")
)

// Error ties a failure kind to the entity it was found on. Entity is empty
// for failures that are not attached to a single declaration.
type Error struct {
	Kind   error
	Entity string
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var prefix string
	if e.Line > 0 {
		prefix = fmt.Sprintf("%d:%d: ", e.Line, e.Column)
	}
	switch {
	case e.Entity != "" && e.Msg != "":
		return fmt.Sprintf("%s%s: %s: %s", prefix, e.Kind.Error(), e.Entity, e.Msg)
	case e.Entity != "":
		return fmt.Sprintf("%s%s: %s", prefix, e.Kind.Error(), e.Entity)
	case e.Msg != "":
		return fmt.Sprintf("%s%s: %s", prefix, e.Kind.Error(), e.Msg)
	}
	return prefix + e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, entity string, format string, args ...any) *Error {
	return &Error{Kind: kind, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// SyntaxErrorf builds a positioned syntax error for readers.
func SyntaxErrorf(line, column int, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

// Problems flattens an error returned by Validate back into its parts.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
