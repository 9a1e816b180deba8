// Package gen is the dependency-ordered code emission engine.
//
// A Context carries everything one generation run needs: the creation token
// counter, the set of nodes already emitted, and the deferred assignment
// index (values that were assigned to a key path before the value itself was
// constructed). Nodes are emitted at most once, dependencies first, and a
// deferred assignment is flushed right after its value has been emitted.
//
// A Context is not safe for concurrent use. Generation is a single,
// synchronous pass; use one Context per run.
package gen

import (
	"errors"
	"strings"
)

// assignment is one deferred "ref = value" statement.
type assignment struct {
	ref   *Ref
	value *Base
}

// pendingEntry holds the assignments waiting for one node to be emitted.
type pendingEntry struct {
	waits []assignment
}

// Context is the generation ledger plus the deferred assignment index.
type Context struct {
	nextToken int
	emitted   map[*Base]bool
	visiting  map[*Base]bool
	pending   map[*Base]*pendingEntry
	order     []*Base // insertion order of pending keys
	roots     map[string]*Ref
}

// NewContext returns a fresh context.
func NewContext() *Context {
	c := &Context{}
	c.Reset()
	return c
}

// Reset clears creation tokens, the emitted set, pending deferred
// assignments and interned roots.
func (c *Context) Reset() {
	c.nextToken = 0
	c.emitted = make(map[*Base]bool)
	c.visiting = make(map[*Base]bool)
	c.pending = make(map[*Base]*pendingEntry)
	c.order = nil
	c.roots = make(map[string]*Ref)
}

// NextToken returns the next creation-order token, starting at 1.
func (c *Context) NextToken() int {
	c.nextToken++
	return c.nextToken
}

// Root returns the interned root reference with the given name.
func (c *Context) Root(name string) *Ref {
	if r, ok := c.roots[name]; ok {
		return r
	}
	r := NewRoot(name)
	c.roots[name] = r
	return r
}

// FakeRoot returns the interned fake root with the given name. A fake root
// is dropped from accessor strings.
func (c *Context) FakeRoot(name string) *Ref {
	if r, ok := c.roots[name]; ok {
		return r
	}
	r := NewFakeRoot(name)
	c.roots[name] = r
	return r
}

// IsEmitted reports whether n has already been generated in this run.
func (c *Context) IsEmitted(n Node) bool {
	return c.emitted[n.Core()]
}

// Assign records that ref must be set to value once value has been
// constructed. If value is already emitted the statement can no longer be
// placed after it, so it is queued and flushed on the next Flush call.
func (c *Context) Assign(ref *Ref, value Node) {
	v := value.Core()
	c.deferAssign(v, assignment{ref: ref, value: v})
}

// deferAssign queues a until key has been emitted.
func (c *Context) deferAssign(key *Base, a assignment) {
	e, ok := c.pending[key]
	if !ok {
		e = &pendingEntry{}
		c.pending[key] = e
		c.order = append(c.order, key)
	}
	for _, w := range e.waits {
		if w == a {
			return
		}
	}
	e.waits = append(e.waits, a)
}

// blocker returns the node a still waits for: its value, or the node owning
// the key path. It returns nil when the statement can be written.
func (c *Context) blocker(a assignment) *Base {
	if !c.emitted[a.value] {
		return a.value
	}
	if owner := a.ref.Root().node; owner != nil && !c.emitted[owner] {
		return owner
	}
	return nil
}

// flush removes every assignment keyed on key. Those whose value and owner
// are both emitted are written; the others move to the node they still
// wait for.
func (c *Context) flush(key *Base) string {
	e, ok := c.pending[key]
	if !ok {
		return ""
	}
	delete(c.pending, key)
	for i, b := range c.order {
		if b == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	var sb strings.Builder
	for _, a := range e.waits {
		if next := c.blocker(a); next != nil {
			c.deferAssign(next, a)
			continue
		}
		sb.WriteString(a.ref.setter(a.value.VarName()))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Flush emits pending assignments whose node is already emitted. It covers
// Assign calls made after the value was generated.
func (c *Context) Flush() string {
	var sb strings.Builder
	for _, b := range append([]*Base(nil), c.order...) {
		if c.emitted[b] {
			sb.WriteString(c.flush(b))
		}
	}
	return sb.String()
}

// Pending returns the dotted keys still waiting for a value that was never
// generated, in registration order.
func (c *Context) Pending() []string {
	var keys []string
	for _, b := range c.order {
		for _, a := range c.pending[b].waits {
			keys = append(keys, a.ref.Dotted()+" = "+a.value.VarName())
		}
	}
	return keys
}

// GenerateAll generates each node in order and concatenates the output.
func (c *Context) GenerateAll(nodes ...Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		code, err := c.Generate(n)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}
	sb.WriteString(c.Flush())
	return sb.String(), nil
}

// Generate emits n: its unemitted dependencies first, then its construction,
// its property assignments, and the deferred assignments that were waiting
// for it. Generating an emitted node returns "". A node reached again while
// its own dependencies are being generated also returns "", which lets
// cycles through properties resolve via deferred assignment.
func (c *Context) Generate(n Node) (string, error) {
	b := n.Core()
	n = b.Outer()
	if c.emitted[b] || c.visiting[b] {
		return "", nil
	}
	c.visiting[b] = true
	defer delete(c.visiting, b)

	var sb strings.Builder

	deps := b.Dependencies()
	if d, ok := n.(Depender); ok {
		deps = d.Dependencies()
	}
	for _, dep := range deps {
		if dep == nil || c.IsEmitted(dep) {
			continue
		}
		code, err := c.Generate(dep)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}

	tmpl, err := n.GenerateInit(c)
	if err != nil {
		return "", err
	}
	sb.WriteString(tmpl.Render())

	for _, p := range b.props {
		code, err := c.generateProperty(b, p)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}

	c.emitted[b] = true
	sb.WriteString(c.flush(b))

	if f, ok := n.(Finalizer); ok {
		code, err := f.GenerateFinalize(c)
		if err != nil {
			return "", err
		}
		sb.WriteString(code)
	}
	return sb.String(), nil
}

func (c *Context) generateProperty(b *Base, p property) (string, error) {
	v := p.value
	if v.IsNull() {
		return "", nil
	}
	ref := b.keyRef(p.key)
	if v.Kind() == KindNode && !c.IsEmitted(v.Node()) {
		value := v.Node().Core()
		c.deferAssign(value, assignment{ref: ref, value: value})
		return "", nil
	}
	expr, err := v.ObjC()
	if err != nil {
		var ge *Error
		if errors.As(err, &ge) && ge.Kind == TypeConversion {
			ge.Node = b.VarName()
			ge.Key = p.key
		}
		return "", err
	}
	return ref.setter(expr) + "\n", nil
}
