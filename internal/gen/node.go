package gen

import (
	"fmt"
	"strings"
)

// Node is a unit of emitted code: one construction plus its configuration.
// Widget kinds embed Base and override GenerateInit.
type Node interface {
	Core() *Base
	GenerateInit(c *Context) (*Template, error)
}

// Depender lets a kind compute its dependencies at generation time instead
// of declaring them with Base.DependOn.
type Depender interface {
	Dependencies() []Node
}

// Finalizer emits statements after a node and its deferred assignments,
// e.g. children of a container or trailing calls like sizeToFit.
type Finalizer interface {
	GenerateFinalize(c *Context) (string, error)
}

// BaseInit is the default construction template.
const BaseInit = "$classname$ *$varname$ = [[$classname$ alloc] $initmethod$];\n$setup$\n"

type property struct {
	key   string
	value Value
}

// Base holds the state shared by every generatable node.
type Base struct {
	Token int
	Class string

	varName string
	ref     *Ref
	outer   Node
	props   []property
	paths   map[string]string
	deps    []Node
}

// Init assigns a creation token from c and records outer as the node that
// Generate dispatches to when it is handed this Base (or any wrapper of it).
func (b *Base) Init(c *Context, outer Node, class string) {
	b.Token = c.NextToken()
	b.Class = class
	b.outer = outer
	b.varName = defaultVarName(class, b.Token)
}

func defaultVarName(class string, token int) string {
	name := strings.TrimPrefix(class, "NS")
	if name == "" {
		name = "obj"
	}
	return fmt.Sprintf("_%s%d", strings.ToLower(name[:1])+name[1:], token)
}

// Core returns b itself; it satisfies Node for kinds that embed Base.
func (b *Base) Core() *Base { return b }

// Outer returns the node this Base belongs to.
func (b *Base) Outer() Node {
	if b.outer == nil {
		return b
	}
	return b.outer
}

// VarName returns the variable holding the constructed object.
func (b *Base) VarName() string { return b.varName }

// SetVarName renames the generated variable. The accessor root keeps its
// identity so deferred assignments registered against it stay valid.
func (b *Base) SetVarName(name string) {
	b.varName = name
	if b.ref != nil {
		b.ref.name = name
	}
}

// Ref returns the accessor root for this node's variable.
func (b *Base) Ref() *Ref {
	if b.ref == nil {
		b.ref = NewRoot(b.varName)
		b.ref.node = b
	}
	return b.ref
}

// Alias maps a property name to an accessor path relative to the node,
// e.g. Alias("trackingMode", "cell.trackingMode").
func (b *Base) Alias(name, path string) {
	if b.paths == nil {
		b.paths = make(map[string]string)
	}
	b.paths[name] = path
}

// Set declares a property. Any value is accepted here; conversion happens
// at generation time. Setting a key twice replaces the earlier value.
func (b *Base) Set(key string, v any) {
	val := ValueOf(v)
	for i := range b.props {
		if b.props[i].key == key {
			b.props[i].value = val
			return
		}
	}
	b.props = append(b.props, property{key: key, value: val})
}

// Get returns the declared value for key.
func (b *Base) Get(key string) (Value, bool) {
	for _, p := range b.props {
		if p.key == key {
			return p.value, true
		}
	}
	return Null, false
}

// Unset removes a declared property.
func (b *Base) Unset(key string) {
	for i, p := range b.props {
		if p.key == key {
			b.props = append(b.props[:i], b.props[i+1:]...)
			return
		}
	}
}

// keyRef resolves a property key to its accessor path.
func (b *Base) keyRef(key string) *Ref {
	if path, ok := b.paths[key]; ok {
		return b.Ref().Path(path)
	}
	return b.Ref().Path(key)
}

// DependOn records nodes that must be emitted before this one.
func (b *Base) DependOn(nodes ...Node) {
	for _, n := range nodes {
		if n != nil {
			b.deps = append(b.deps, n)
		}
	}
}

// Dependencies returns the declared dependencies in order.
func (b *Base) Dependencies() []Node {
	return b.deps
}

// GenerateInit returns the default "alloc/init" template.
func (b *Base) GenerateInit(c *Context) (*Template, error) {
	t := NewTemplate(BaseInit)
	t.Set("classname", b.Class)
	t.Set("varname", b.varName)
	t.Set("initmethod", "init")
	return t, nil
}

// CallCode renders "[var method:arg];" with arg converted from any value.
func (b *Base) CallCode(method string, args ...any) (string, error) {
	return CallStatement(b.Ref(), method, args...)
}

// CallStatement renders a message send statement on ref, converting args.
func CallStatement(ref *Ref, method string, args ...any) (string, error) {
	conv := make([]string, 0, len(args))
	for _, a := range args {
		s, err := Convert(a)
		if err != nil {
			return "", err
		}
		conv = append(conv, s)
	}
	expr, err := ref.Call(method, conv...)
	if err != nil {
		return "", err
	}
	return expr + ";\n", nil
}
