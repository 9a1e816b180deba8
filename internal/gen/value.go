package gen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variants of Value.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindNull
	KindNode
	KindRef
	KindLiteral
	KindBool
	KindNumber
	KindText
	KindString
	KindFlags
	KindConverter
)

// Literal is emitted verbatim, e.g. Literal("NSBezelBorder").
type Literal string

// NonLocalizable is a string emitted as a plain @"..." literal instead of
// being wrapped in NSLocalizedString.
type NonLocalizable string

// Flags is an ordered set of symbolic flags joined with "|".
type Flags []string

// Add appends flag unless it is already present.
func (f *Flags) Add(flag string) {
	for _, x := range *f {
		if x == flag {
			return
		}
	}
	*f = append(*f, flag)
}

// Converter is implemented by values that know their own target form.
type Converter interface {
	ObjC() (string, error)
}

// Value is a property value. It is a closed set of variants; build one with
// ValueOf or the typed constructors.
type Value struct {
	kind  ValueKind
	node  Node
	ref   *Ref
	str   string
	num   float64
	isInt bool
	b     bool
	flags Flags
	conv  Converter
	raw   any
}

// Null is the absent value; assignments of Null are skipped.
var Null = Value{kind: KindNull}

// NodeValue wraps a node reference.
func NodeValue(n Node) Value { return Value{kind: KindNode, node: n} }

// RefValue wraps a key path; it renders as the path's accessor.
func RefValue(r *Ref) Value { return Value{kind: KindRef, ref: r} }

// Text is a localizable string.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Int is an integral number.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i), isInt: true} }

// Float is a floating point number.
func Float(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool is a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf classifies an arbitrary Go value. It never fails: values of an
// unsupported type are kept as KindInvalid and rejected at generation time.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case Node:
		return NodeValue(x)
	case *Ref:
		if x == nil {
			return Null
		}
		return RefValue(x)
	case Literal:
		return Value{kind: KindLiteral, str: string(x)}
	case NonLocalizable:
		return Value{kind: KindString, str: string(x)}
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int64:
		return Int(int(x))
	case int32:
		return Int(int(x))
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case Flags:
		return Value{kind: KindFlags, flags: x}
	case *Flags:
		if x == nil {
			return Null
		}
		return Value{kind: KindFlags, flags: *x}
	case Converter:
		return Value{kind: KindConverter, conv: x}
	default:
		return Value{kind: KindInvalid, raw: v}
	}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Node returns the wrapped node for KindNode values.
func (v Value) Node() Node { return v.node }

// IsNull reports whether the assignment of v should be skipped.
func (v Value) IsNull() bool { return v.kind == KindNull }

// ObjC converts v to its target expression.
func (v Value) ObjC() (string, error) {
	switch v.kind {
	case KindNull:
		return "nil", nil
	case KindNode:
		return v.node.Core().VarName(), nil
	case KindRef:
		return v.ref.Accessor(), nil
	case KindLiteral:
		return v.str, nil
	case KindBool:
		if v.b {
			return "YES", nil
		}
		return "NO", nil
	case KindNumber:
		return formatNumber(v.num, v.isInt), nil
	case KindText:
		return "NSLocalizedString(" + quote(v.str) + ", @\"\")", nil
	case KindString:
		return quote(v.str), nil
	case KindFlags:
		if len(v.flags) == 0 {
			return "0", nil
		}
		return strings.Join(v.flags, "|"), nil
	case KindConverter:
		return v.conv.ObjC()
	default:
		return "", &Error{
			Kind: TypeConversion,
			Op:   "convert",
			Msg:  fmt.Sprintf("unsupported value of type %T", v.raw),
		}
	}
}

// Convert is the any-typed shorthand for ValueOf(x).ObjC().
func Convert(x any) (string, error) {
	return ValueOf(x).ObjC()
}

func formatNumber(n float64, isInt bool) string {
	if isInt || n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// quote renders an Objective-C string literal. '$' is written as an octal
// escape so quoted text can never form a template placeholder.
func quote(s string) string {
	var b strings.Builder
	b.WriteString(`@"`)
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			b.WriteString(`\044`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(`"`)
	return b.String()
}
