package gen

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures. Every kind aborts the pass.
type ErrorKind int

const (
	// StructuralPrecondition means the layout or node graph is malformed:
	// packing a root view, packing relative to a non-sibling, unknown names.
	StructuralPrecondition ErrorKind = iota + 1
	// UnsupportedOperation is raised for operations deliberately left out,
	// such as filling towards Above.
	UnsupportedOperation
	// TypeConversion means a property value has no target-language form.
	TypeConversion
	// MalformedShortcutSpec means a key shortcut did not reduce to one key.
	MalformedShortcutSpec
)

func (k ErrorKind) String() string {
	switch k {
	case StructuralPrecondition:
		return "structural precondition"
	case UnsupportedOperation:
		return "unsupported operation"
	case TypeConversion:
		return "type conversion"
	case MalformedShortcutSpec:
		return "malformed shortcut"
	default:
		return "unknown"
	}
}

// Error is a structured generation error.
type Error struct {
	Kind ErrorKind
	Op   string // operation that failed, e.g. "fill", "convert"
	Node string // var name or description of the node involved
	Key  string // property key, when relevant
	Msg  string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Node != "" {
		msg += " (" + e.Node
		if e.Key != "" {
			msg += "." + e.Key
		}
		msg += ")"
	}
	return msg + ": " + e.Msg
}

// Errorf creates an Error of the given kind.
func Errorf(kind ErrorKind, op, node, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Node: node,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err wraps a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind == kind
	}
	return false
}
