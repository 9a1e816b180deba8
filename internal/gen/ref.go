package gen

import (
	"strings"
)

// Ref is a key path rooted at a named entity, e.g. "window.contentView.frame".
// Refs are interned: Child returns the same *Ref for the same name, so a Ref
// can be used as a map key in the deferred assignment index.
type Ref struct {
	owner    *Ref
	name     string
	fake     bool
	node     *Base // set on a node's accessor root
	children map[string]*Ref
}

// NewRoot creates a root reference. Roots are normally obtained through
// Context.Root so that they are interned per generation run.
func NewRoot(name string) *Ref {
	return &Ref{name: name}
}

// NewFakeRoot creates a root that never appears in accessor strings. It is
// used to namespace symbolic constants: FakeRoot("const").Child("NSOnState")
// renders as "NSOnState".
func NewFakeRoot(name string) *Ref {
	return &Ref{name: name, fake: true}
}

// Name returns the last path segment.
func (r *Ref) Name() string { return r.name }

// Owner returns the parent reference, or nil for a root.
func (r *Ref) Owner() *Ref { return r.owner }

// Root returns the first segment of the path.
func (r *Ref) Root() *Ref {
	for r.owner != nil {
		r = r.owner
	}
	return r
}

// Child returns the interned child reference for name, creating it on first use.
func (r *Ref) Child(name string) *Ref {
	if c, ok := r.children[name]; ok {
		return c
	}
	if r.children == nil {
		r.children = make(map[string]*Ref)
	}
	c := &Ref{owner: r, name: name}
	r.children[name] = c
	return c
}

// Path walks Child for every segment of a dotted path.
func (r *Ref) Path(dotted string) *Ref {
	cur := r
	for _, seg := range strings.Split(dotted, ".") {
		if seg == "" {
			continue
		}
		cur = cur.Child(seg)
	}
	return cur
}

// visibleOwner returns the owner that should appear in accessors, or nil
// when the owner is absent or fake.
func (r *Ref) visibleOwner() *Ref {
	if r.owner == nil || r.owner.fake {
		return nil
	}
	return r.owner
}

// Dotted returns the language-agnostic form, e.g. "owner.child.name".
func (r *Ref) Dotted() string {
	if o := r.visibleOwner(); o != nil {
		return o.Dotted() + "." + r.name
	}
	return r.name
}

// Accessor returns the message-send form used in generated statements,
// e.g. "[[owner child] name]".
func (r *Ref) Accessor() string {
	if o := r.visibleOwner(); o != nil {
		return "[" + o.Accessor() + " " + r.name + "]"
	}
	return r.name
}

// Call renders a zero- or one-argument message send on this reference.
// args are already-converted target expressions.
func (r *Ref) Call(method string, args ...string) (string, error) {
	switch len(args) {
	case 0:
		return "[" + r.Accessor() + " " + method + "]", nil
	case 1:
		return "[" + r.Accessor() + " " + method + ":" + args[0] + "]", nil
	default:
		return "", &Error{
			Kind: UnsupportedOperation,
			Op:   "call",
			Node: r.Dotted(),
			Msg:  "method " + method + " takes at most one argument",
		}
	}
}

// setter returns the statement assigning expr to the key this reference
// names: "[owner setName:expr];" or "name = expr;" for roots.
func (r *Ref) setter(expr string) string {
	o := r.visibleOwner()
	if o == nil {
		return r.name + " = " + expr + ";"
	}
	return "[" + o.Accessor() + " " + setterName(r.name) + ":" + expr + "];"
}

func setterName(name string) string {
	if name == "" {
		return "set"
	}
	return "set" + strings.ToUpper(name[:1]) + name[1:]
}
