// Package widget is the catalog of Cocoa widget kinds built on the layout
// and gen packages. Each kind knows its class, default size, layout deltas
// and the statements specific to it; ordering, deferral and geometry are
// left to gen and layout.
package widget

import (
	"github.com/matthewbaird/framegen/internal/gen"
)

// Const returns the namespace for symbolic constants, e.g.
// Const(c).Child("NSOnState"). The namespace itself is never emitted.
func Const(c *gen.Context) *gen.Ref { return c.FakeRoot("const") }

// App returns the NSApp global.
func App(c *gen.Context) *gen.Ref { return c.Root("NSApp") }

// Owner returns the "owner" argument of the generated function.
func Owner(c *gen.Context) *gen.Ref { return c.Root("owner") }

// Action is a target/selector pair. A nil Target sends the action to the
// first responder.
type Action struct {
	Target   any
	Selector string
}

func (a Action) selector() gen.Literal {
	return gen.Literal("@selector(" + a.Selector + ")")
}

// apply declares the target and action properties on b.
func (a *Action) apply(b *gen.Base) {
	if a == nil {
		return
	}
	if a.Target != nil {
		b.Set("target", a.Target)
	}
	b.Set("action", a.selector())
}
