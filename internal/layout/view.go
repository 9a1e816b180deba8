// Package layout implements views: generatable nodes with a geometry, a
// parent, and packing operations that compute absolute coordinates from
// relative rules (corner placement, placement next to a sibling, filling
// the remaining space).
//
// Coordinates are layout coordinates with the origin at the lower left
// corner of the parent. They are converted to drawable frames with
// per-kind Deltas at generation time.
package layout

import (
	"fmt"
	"math"

	"github.com/matthewbaird/framegen/internal/gen"
)

// Parent is anything views can be packed in: another view, a window, a
// tab's content view.
type Parent interface {
	gen.Node
	Rect() Rect
	Margins() Margins
	// Adopt records child as a subview; children are generated in adoption
	// order after their parent.
	Adopt(child *View)
	// AddSubviewCode returns the statement attaching subview (a node or a
	// key path) to the parent.
	AddSubviewCode(c *gen.Context, subview any) (string, error)
}

// ParentAttacher is implemented by kinds that attach something other than
// themselves to their parent, e.g. a table inside a scroll view.
type ParentAttacher interface {
	GenerateAddToParent(c *gen.Context) (string, error)
}

// View is a layout node.
type View struct {
	gen.Base

	X, Y          float64
	Width, Height float64
	Deltas        Deltas

	parent    Parent
	children  []*View
	anchor    Anchor
	margins   Margins
	neighbors map[Side][]*View
}

// NewView creates a view of the given class. outer is the widget embedding
// the view (nil when the view is used on its own); parent may be nil for a
// root view.
func NewView(c *gen.Context, outer gen.Node, class string, parent Parent, width, height float64) *View {
	v := &View{
		Width:     width,
		Height:    height,
		parent:    parent,
		anchor:    Anchor{Corner: UpperLeft},
		margins:   DefaultMargins(),
		neighbors: make(map[Side][]*View),
	}
	if outer == nil {
		outer = v
	}
	v.Init(c, outer, class)
	if parent != nil {
		parent.Adopt(v)
	}
	return v
}

// Parent returns the view's parent, nil for a root view.
func (v *View) Parent() Parent { return v.parent }

// Children returns subviews in adoption order.
func (v *View) Children() []*View { return v.children }

// Adopt implements Parent.
func (v *View) Adopt(child *View) {
	v.children = append(v.children, child)
}

// Rect returns the layout rectangle.
func (v *View) Rect() Rect {
	return Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}

// Margins implements Parent.
func (v *View) Margins() Margins { return v.margins }

// SetMargins changes the border margins used when packing children.
func (v *View) SetMargins(m Margins) { v.margins = m }

// Anchor returns the current anchor.
func (v *View) Anchor() Anchor { return v.anchor }

// Neighbors returns the views recorded on side by relative packing.
func (v *View) Neighbors(side Side) []*View {
	return v.neighbors[side]
}

func (v *View) addNeighbor(side Side, n *View) {
	for _, x := range v.neighbors[side] {
		if x == n {
			return
		}
	}
	v.neighbors[side] = append(v.neighbors[side], n)
}

func (v *View) noParent(op string) error {
	return gen.Errorf(gen.StructuralPrecondition, op, v.VarName(), "view has no parent")
}

// PackToCorner places the view in a corner of its parent, inside the
// parent's margins.
func (v *View) PackToCorner(corner Corner) error {
	if v.parent == nil {
		return v.noParent("packToCorner")
	}
	pr := v.parent.Rect()
	m := v.parent.Margins()
	if corner.left() {
		v.X = m.Left
	} else {
		v.X = pr.Width - m.Right - v.Width
	}
	if corner.lower() {
		v.Y = m.Bottom
	} else {
		v.Y = pr.Height - m.Top - v.Height
	}
	return nil
}

// PackRelativeTo places the view on side of other, a sibling, aligned
// according to align, and records the two views as neighbors.
func (v *View) PackRelativeTo(other *View, side, align Side) error {
	if v.parent == nil {
		return v.noParent("packRelativeTo")
	}
	if other.parent != v.parent {
		return gen.Errorf(gen.StructuralPrecondition, "packRelativeTo", v.VarName(),
			"%s is not a sibling", other.VarName())
	}
	o := other.Rect()
	x, y := v.X, v.Y

	switch side {
	case Above, Below:
		switch align {
		case Left:
			x = o.X
		case Right:
			x = o.X + o.Width - v.Width
		default:
			x = o.X + math.Floor((o.Width-v.Width)/2)
		}
		if side == Above {
			y = o.Y + o.Height + Gap
		} else {
			y = o.Y - Gap - v.Height
		}
	case Left, Right:
		switch align {
		case Below:
			y = o.Y
		case Above:
			y = o.Y + o.Height - v.Height
		default:
			y = o.Y + math.Floor((o.Height-v.Height)/2)
		}
		if side == Left {
			x = o.X - Gap - v.Width
		} else {
			x = o.X + o.Width + Gap
		}
	default:
		return gen.Errorf(gen.UnsupportedOperation, "packRelativeTo", v.VarName(),
			"cannot pack on side %s", side)
	}

	v.X, v.Y = x, y
	v.addNeighbor(side.Opposite(), other)
	other.addNeighbor(side, v)
	return nil
}

// Fill grows the view towards side until it reaches the parent's margin,
// moving the neighbors recorded on that side along so they stay adjacent.
func (v *View) Fill(side Side) error {
	if v.parent == nil {
		return v.noParent("fill")
	}
	pr := v.parent.Rect()
	m := v.parent.Margins()
	neighbors := v.neighbors[side]

	switch side {
	case Right:
		edge := v.X + v.Width
		for _, n := range neighbors {
			edge = max(edge, n.X+n.Width)
		}
		growth := pr.Width - m.Right - edge
		v.Width += growth
		for _, n := range neighbors {
			n.X += growth
		}
	case Left:
		edge := v.X
		for _, n := range neighbors {
			edge = min(edge, n.X)
		}
		growth := edge - m.Left
		v.Width += growth
		v.X -= growth
		for _, n := range neighbors {
			n.X -= growth
		}
	case Below:
		edge := v.Y
		for _, n := range neighbors {
			edge = min(edge, n.Y)
		}
		growth := edge - m.Bottom
		v.Height += growth
		v.Y -= growth
		for _, n := range neighbors {
			n.Y -= growth
		}
	case Above:
		return gen.Errorf(gen.UnsupportedOperation, "fill", v.VarName(), "filling above is not supported")
	default:
		return gen.Errorf(gen.UnsupportedOperation, "fill", v.VarName(), "cannot fill towards %s", side)
	}
	return nil
}

// SetAnchor sets the corner the view sticks to and whether it grows with
// its parent.
func (v *View) SetAnchor(corner Corner, growX, growY bool) {
	v.anchor = Anchor{Corner: corner, GrowX: growX, GrowY: growY}
}

// ResizeMask derives the autoresizing mask from the anchor. The two margins
// touching the anchored corner stay rigid, the other two are elastic.
func (v *View) ResizeMask() gen.Flags {
	a := v.anchor
	switch {
	case a.GrowX && a.GrowY:
		return gen.Flags{"NSViewWidthSizable", "NSViewHeightSizable"}
	case a.GrowX:
		if a.Corner.lower() {
			return gen.Flags{"NSViewWidthSizable", "NSViewMaxYMargin"}
		}
		return gen.Flags{"NSViewWidthSizable", "NSViewMinYMargin"}
	case a.GrowY:
		if a.Corner.left() {
			return gen.Flags{"NSViewHeightSizable", "NSViewMaxXMargin"}
		}
		return gen.Flags{"NSViewHeightSizable", "NSViewMinXMargin"}
	}
	switch a.Corner {
	case LowerLeft:
		return gen.Flags{"NSViewMaxXMargin", "NSViewMaxYMargin"}
	case UpperRight:
		return gen.Flags{"NSViewMinXMargin", "NSViewMinYMargin"}
	case LowerRight:
		return gen.Flags{"NSViewMinXMargin", "NSViewMaxYMargin"}
	default:
		return gen.Flags{"NSViewMaxXMargin", "NSViewMinYMargin"}
	}
}

// Frame returns the drawable frame: the layout rectangle corrected by the
// kind's deltas.
func (v *View) Frame() Rect {
	return Rect{
		X:      v.X + v.Deltas.X,
		Y:      v.Y + v.Deltas.Y,
		Width:  v.Width + v.Deltas.W,
		Height: v.Height + v.Deltas.H,
	}
}

// MakeRect renders r as an NSMakeRect expression with integral values.
func MakeRect(r Rect) string {
	return fmt.Sprintf("NSMakeRect(%d, %d, %d, %d)", int(r.X), int(r.Y), int(r.Width), int(r.Height))
}

// Dependencies puts the parent before the view so the attach statement
// never refers to an undeclared variable.
func (v *View) Dependencies() []gen.Node {
	deps := v.Base.Dependencies()
	if v.parent == nil {
		return deps
	}
	return append([]gen.Node{v.parent}, deps...)
}

// GenerateInit emits "initWithFrame:" with the corrected frame, the
// autoresizing mask and the statement adding the view to its parent.
func (v *View) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := v.Base.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	t.Set("setup", "$viewsetup$\n$addtoparent$\n")
	t.Set("initmethod", "initWithFrame:$rect$")
	t.Set("rect", MakeRect(v.Frame()))
	v.Set("autoresizingMask", v.ResizeMask())

	if v.parent != nil {
		var code string
		if a, ok := v.Outer().(ParentAttacher); ok {
			code, err = a.GenerateAddToParent(c)
		} else {
			code, err = v.parent.AddSubviewCode(c, v.Outer())
		}
		if err != nil {
			return nil, err
		}
		t.Set("addtoparent", code)
	}
	return t, nil
}

// AddSubviewCode implements Parent.
func (v *View) AddSubviewCode(c *gen.Context, subview any) (string, error) {
	return v.CallCode("addSubview", subview)
}

// GenerateFinalize generates the children after the view itself.
func (v *View) GenerateFinalize(c *gen.Context) (string, error) {
	return GenerateChildren(c, v.children)
}

// GenerateChildren generates views in order. Parents that are not views use
// it for their own children.
func GenerateChildren(c *gen.Context, children []*View) (string, error) {
	var out string
	for _, child := range children {
		code, err := c.Generate(child.Outer())
		if err != nil {
			return "", fmt.Errorf("generating %s: %w", child.VarName(), err)
		}
		out += code
	}
	return out, nil
}
