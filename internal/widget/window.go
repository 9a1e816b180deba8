package widget

import (
	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
)

const windowInit = "NSWindow *$varname$ = [[NSWindow alloc] initWithContentRect:$rect$ " +
	"styleMask:$style$ backing:NSBackingStoreBuffered defer:NO];\n$setup$\n"

// Window is a top-level window. Its content view is the parent of the
// widgets packed in it.
type Window struct {
	gen.Base

	X, Y, Width, Height float64
	Closable            bool
	Miniaturizable      bool
	Resizable           bool

	margins  layout.Margins
	children []*layout.View
}

// NewWindow creates a window with its content rect at (x, y) in screen
// coordinates.
func NewWindow(c *gen.Context, x, y, width, height float64, title string) *Window {
	w := &Window{
		X: x, Y: y, Width: width, Height: height,
		Closable:       true,
		Miniaturizable: true,
		Resizable:      true,
		margins:        layout.DefaultMargins(),
	}
	w.Init(c, w, "NSWindow")
	w.Set("title", title)
	w.Set("releasedWhenClosed", false)
	return w
}

// Rect implements layout.Parent. Children are laid out in content view
// coordinates, so the origin is always zero.
func (w *Window) Rect() layout.Rect {
	return layout.Rect{Width: w.Width, Height: w.Height}
}

// Margins implements layout.Parent.
func (w *Window) Margins() layout.Margins { return w.margins }

// Adopt implements layout.Parent.
func (w *Window) Adopt(child *layout.View) {
	w.children = append(w.children, child)
}

// Children returns the views packed in the window.
func (w *Window) Children() []*layout.View { return w.children }

// AddSubviewCode implements layout.Parent.
func (w *Window) AddSubviewCode(c *gen.Context, subview any) (string, error) {
	return gen.CallStatement(w.Ref().Child("contentView"), "addSubview", subview)
}

func (w *Window) styleMask() gen.Flags {
	f := gen.Flags{"NSTitledWindowMask"}
	if w.Closable {
		f.Add("NSClosableWindowMask")
	}
	if w.Miniaturizable {
		f.Add("NSMiniaturizableWindowMask")
	}
	if w.Resizable {
		f.Add("NSResizableWindowMask")
	}
	return f
}

// GenerateInit implements gen.Node.
func (w *Window) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t := gen.NewTemplate(windowInit)
	t.Set("varname", w.VarName())
	t.Set("rect", layout.MakeRect(layout.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}))
	style, err := gen.Convert(w.styleMask())
	if err != nil {
		return nil, err
	}
	t.Set("style", style)
	return t, nil
}

// GenerateFinalize generates the content of the window.
func (w *Window) GenerateFinalize(c *gen.Context) (string, error) {
	return layout.GenerateChildren(c, w.children)
}
