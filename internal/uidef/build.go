package uidef

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
	"github.com/matthewbaird/framegen/internal/widget"
)

// Result is a built widget graph ready for generation.
type Result struct {
	// Name is the description name, used for the generated function.
	Name string
	// Root is the node returned by the generated function.
	Root gen.Node
	// Extra holds top-level nodes not reachable from Root, e.g. the main
	// menu of a window description.
	Extra []gen.Node
}

// RootClass returns the class of the returned object.
func (r *Result) RootClass() string { return r.Root.Core().Class }

// RootVar returns the variable holding the returned object.
func (r *Result) RootVar() string { return r.Root.Core().VarName() }

// Generate emits the whole graph into c and reports the deferred
// assignments that were never resolved.
func (r *Result) Generate(c *gen.Context) (code string, pending []string, err error) {
	code, err = c.GenerateAll(append([]gen.Node{r.Root}, r.Extra...)...)
	if err != nil {
		return "", nil, err
	}
	return code, c.Pending(), nil
}

type builder struct {
	c       *gen.Context
	doc     *Document
	window  *widget.Window
	fonts   map[string]*widget.Font
	views   map[string]*layout.View
	nodes   map[string]gen.Node
	parents map[string]layout.Parent
	menus   map[string]*widget.Menu
}

// Build constructs the widget graph described by d in c: fonts, widgets in
// declaration order, layout steps in order, menus and assignments.
func (d *Document) Build(c *gen.Context) (*Result, error) {
	b := &builder{
		c:       c,
		doc:     d,
		fonts:   make(map[string]*widget.Font),
		views:   make(map[string]*layout.View),
		nodes:   make(map[string]gen.Node),
		parents: make(map[string]layout.Parent),
		menus:   make(map[string]*widget.Menu),
	}
	res := &Result{Name: d.Name}

	if d.Window != nil {
		wd := d.Window
		b.window = widget.NewWindow(c, wd.X, wd.Y, wd.Width, wd.Height, wd.Title)
		b.window.Closable = wd.Closable
		b.window.Miniaturizable = wd.Miniaturizable
		b.window.Resizable = wd.Resizable
		b.nodes["window"] = b.window
		b.parents["window"] = b.window
	}
	for _, fd := range d.Fonts {
		if err := b.font(fd); err != nil {
			return nil, err
		}
	}
	for _, wd := range d.Widgets {
		if err := b.widget(wd); err != nil {
			return nil, err
		}
	}
	for i, step := range d.Layout {
		if err := b.step(step); err != nil {
			return nil, fmt.Errorf("layout step %d: %w", i+1, err)
		}
	}
	roots, err := b.buildMenus()
	if err != nil {
		return nil, err
	}
	for _, a := range d.Assign {
		if err := b.assign(a); err != nil {
			return nil, err
		}
	}

	switch d.Kind {
	case "menu":
		if len(roots) == 0 {
			return nil, gen.Errorf(gen.StructuralPrecondition, "build", d.Name, "menu description without a menu")
		}
		res.Root = roots[0]
		for _, m := range roots[1:] {
			res.Extra = append(res.Extra, m)
		}
		if b.window != nil {
			res.Extra = append(res.Extra, b.window)
		}
	default:
		if b.window == nil {
			return nil, gen.Errorf(gen.StructuralPrecondition, "build", d.Name, "window description without a window")
		}
		res.Root = b.window
		for _, m := range roots {
			res.Extra = append(res.Extra, m)
		}
	}
	return res, nil
}

func (b *builder) missing(op, kind, name string) error {
	return gen.Errorf(gen.StructuralPrecondition, op, name, "unknown %s %q", kind, name)
}

func (b *builder) register(name string, n gen.Node) error {
	if _, dup := b.nodes[name]; dup {
		return gen.Errorf(gen.StructuralPrecondition, "build", name, "duplicate name %q", name)
	}
	b.nodes[name] = n
	return nil
}

var fontTraits = map[string]widget.FontTrait{
	"bold":   widget.Bold,
	"italic": widget.Italic,
}

func (b *builder) font(fd FontDef) error {
	var traits []widget.FontTrait
	for _, t := range fd.Traits {
		trait, ok := fontTraits[t]
		if !ok {
			return b.missing("font", "font trait", t)
		}
		traits = append(traits, trait)
	}
	f := widget.NewFont(b.c, fd.Family, fd.Size, traits...)
	if err := b.register(fd.Name, f); err != nil {
		return err
	}
	b.fonts[fd.Name] = f
	return nil
}

func (b *builder) parent(name string) (layout.Parent, error) {
	if name == "" {
		if b.window == nil {
			return nil, gen.Errorf(gen.StructuralPrecondition, "widget", "", "no window to pack into")
		}
		return b.window, nil
	}
	p, ok := b.parents[name]
	if !ok {
		return nil, b.missing("widget", "parent", name)
	}
	return p, nil
}

func (b *builder) fontRef(name string) (*widget.Font, error) {
	if name == "" {
		return nil, nil
	}
	f, ok := b.fonts[name]
	if !ok {
		return nil, b.missing("widget", "font", name)
	}
	return f, nil
}

func (b *builder) action(a *ActionDef) (*widget.Action, error) {
	if a == nil {
		return nil, nil
	}
	act := &widget.Action{Selector: a.Selector}
	switch a.Target {
	case "":
	case "owner":
		act.Target = widget.Owner(b.c)
	case "app":
		act.Target = widget.App(b.c)
	default:
		n, ok := b.nodes[a.Target]
		if !ok {
			return nil, b.missing("action", "target", a.Target)
		}
		act.Target = n
	}
	return act, nil
}

func (b *builder) widget(wd WidgetDef) error {
	parent, err := b.parent(wd.Parent)
	if err != nil {
		return err
	}
	font, err := b.fontRef(wd.Font)
	if err != nil {
		return err
	}
	action, err := b.action(wd.Action)
	if err != nil {
		return err
	}

	var (
		node gen.Node
		view *layout.View
	)
	switch wd.Kind {
	case "view":
		view = layout.NewView(b.c, nil, "NSView", parent, 100, 100)
		node = view
		b.parents[wd.Name] = view
	case "button":
		w := widget.NewButton(b.c, parent, wd.Text)
		w.SetAction(action)
		node, view = w, w.View
	case "checkbox":
		w := widget.NewCheckbox(b.c, parent, wd.Text)
		w.SetAction(action)
		node, view = w, w.View
	case "label":
		w := widget.NewLabel(b.c, parent, wd.Text)
		w.SetFont(font)
		node, view = w, w.View
	case "textField":
		w := widget.NewTextField(b.c, parent, wd.Text)
		w.SetFont(font)
		node, view = w, w.View
	case "segmented":
		w := widget.NewSegmentedControl(b.c, parent)
		for _, s := range wd.Segments {
			w.AddSegment(s.Label, s.Width)
		}
		node, view = w, w.View
	case "tabView":
		w := widget.NewTabView(b.c, parent)
		if wd.Width > 0 {
			w.Width = wd.Width
		}
		if wd.Height > 0 {
			w.Height = wd.Height
		}
		for _, td := range wd.Tabs {
			item := w.AddTab(b.c, td.Label)
			if err := b.register(td.Name, item); err != nil {
				return err
			}
			b.parents[td.Name] = item
		}
		node, view = w, w.View
	case "table", "outline":
		newTable := widget.NewTableView
		if wd.Kind == "outline" {
			newTable = widget.NewOutlineView
		}
		w := newTable(b.c, parent)
		w.Font = font
		for _, cd := range wd.Columns {
			w.AddColumn(b.c, cd.ID, cd.Title, cd.Width)
		}
		node, view = w, w.View
	default:
		return gen.Errorf(gen.StructuralPrecondition, "widget", wd.Name, "unknown widget kind %q", wd.Kind)
	}

	if wd.Width > 0 {
		view.Width = wd.Width
	}
	if wd.Height > 0 {
		view.Height = wd.Height
	}
	for _, key := range sortedKeys(wd.Props) {
		val, err := b.prop(wd.Props[key])
		if err != nil {
			return fmt.Errorf("widget %s: %w", wd.Name, err)
		}
		view.Set(key, val)
	}
	if err := b.register(wd.Name, node); err != nil {
		return err
	}
	b.views[wd.Name] = view
	return nil
}

// prop converts a description value: "const:X" is the symbol X, "ref:a.b"
// a key path, any other string localizable text.
func (b *builder) prop(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return color(v), nil
	case string:
		switch {
		case strings.HasPrefix(v, "const:"):
			return gen.Literal(strings.TrimPrefix(v, "const:")), nil
		case strings.HasPrefix(v, "ref:"):
			dotted := strings.TrimPrefix(v, "ref:")
			// A bare node name is the node itself, so the assignment is
			// deferred until the node exists.
			if n, ok := b.nodes[dotted]; ok {
				return n, nil
			}
			return b.path(dotted)
		}
	}
	return v, nil
}

// color converts a decoded #Color. The schema guarantees every component.
func color(m map[string]any) widget.Color {
	return widget.Color{
		R: number(m["red"]),
		G: number(m["green"]),
		B: number(m["blue"]),
		A: number(m["alpha"]),
	}
}

func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// path resolves a dotted key path. Its first segment is a widget name or a
// global root such as owner or NSApp.
func (b *builder) path(dotted string) (*gen.Ref, error) {
	head, rest, _ := strings.Cut(dotted, ".")
	if head == "" {
		return nil, gen.Errorf(gen.StructuralPrecondition, "path", dotted, "empty key path")
	}
	var root *gen.Ref
	switch head {
	case "const":
		root = widget.Const(b.c)
	case "app", "NSApp":
		root = widget.App(b.c)
	case "owner":
		root = widget.Owner(b.c)
	default:
		n, ok := b.nodes[head]
		if !ok {
			root = b.c.Root(head)
		} else {
			root = n.Core().Ref()
		}
	}
	return root.Path(rest), nil
}

func (b *builder) view(op, name string) (*layout.View, error) {
	v, ok := b.views[name]
	if !ok {
		return nil, b.missing(op, "widget", name)
	}
	return v, nil
}

var corners = map[string]layout.Corner{
	"upperLeft":  layout.UpperLeft,
	"upperRight": layout.UpperRight,
	"lowerLeft":  layout.LowerLeft,
	"lowerRight": layout.LowerRight,
}

var sides = map[string]layout.Side{
	"left":   layout.Left,
	"right":  layout.Right,
	"above":  layout.Above,
	"below":  layout.Below,
	"middle": layout.Middle,
}

func (b *builder) step(s StepDef) error {
	v, err := b.view("layout", s.Widget)
	if err != nil {
		return err
	}
	if s.Width > 0 {
		v.Width = s.Width
	}
	if s.Height > 0 {
		v.Height = s.Height
	}
	if s.Corner != "" {
		if err := v.PackToCorner(corners[s.Corner]); err != nil {
			return err
		}
	}
	if s.RelativeTo != "" {
		other, err := b.view("layout", s.RelativeTo)
		if err != nil {
			return err
		}
		side, ok := sides[s.Side]
		if !ok {
			return gen.Errorf(gen.StructuralPrecondition, "packRelativeTo", s.Widget, "missing side")
		}
		align := sides[s.Align]
		if align == 0 {
			align = layout.Middle
		}
		if err := v.PackRelativeTo(other, side, align); err != nil {
			return err
		}
	}
	for _, f := range s.Fill {
		if err := v.Fill(sides[f]); err != nil {
			return err
		}
	}
	if s.Anchor != nil {
		v.SetAnchor(corners[s.Anchor.Corner], s.Anchor.GrowX, s.Anchor.GrowY)
	}
	return nil
}

// buildMenus creates menus in declaration order. A menu referenced as a
// submenu is created by its parent item, so it must be declared after it.
// It returns the menus that are nobody's submenu.
func (b *builder) buildMenus() ([]*widget.Menu, error) {
	defs := make(map[string]MenuDef, len(b.doc.Menus))
	for _, md := range b.doc.Menus {
		defs[md.Name] = md
	}
	var roots []*widget.Menu
	for _, md := range b.doc.Menus {
		m, ok := b.menus[md.Name]
		if !ok {
			m = widget.NewMenu(b.c, md.Title)
			if err := b.register(md.Name, m); err != nil {
				return nil, err
			}
			b.menus[md.Name] = m
			roots = append(roots, m)
		}
		for _, it := range md.Items {
			if err := b.menuItem(m, it, defs); err != nil {
				return nil, fmt.Errorf("menu %s: %w", md.Name, err)
			}
		}
	}
	return roots, nil
}

func (b *builder) menuItem(m *widget.Menu, it ItemDef, defs map[string]MenuDef) error {
	if it.Separator {
		m.AddSeparator(b.c)
		return nil
	}
	if it.Submenu != "" {
		sd, ok := defs[it.Submenu]
		if !ok {
			return b.missing("menu", "submenu", it.Submenu)
		}
		if _, built := b.menus[it.Submenu]; built {
			return gen.Errorf(gen.StructuralPrecondition, "menu", it.Submenu,
				"submenu %q must be declared after the menu using it", it.Submenu)
		}
		title := it.Title
		if title == "" {
			title = sd.Title
		}
		sub := m.AddMenu(b.c, title)
		sub.Title = sd.Title
		if err := b.register(it.Submenu, sub); err != nil {
			return err
		}
		b.menus[it.Submenu] = sub
		return nil
	}
	action, err := b.action(it.Action)
	if err != nil {
		return err
	}
	tag, err := b.prop(it.Tag)
	if err != nil {
		return err
	}
	if i, ok := tag.(int64); ok {
		tag = int(i)
	}
	_, err = m.AddItem(b.c, it.Title, action, it.Shortcut, tag)
	return err
}

func (b *builder) assign(a AssignDef) error {
	ref, err := b.path(a.Path)
	if err != nil {
		return err
	}
	if ref.Owner() == nil {
		return gen.Errorf(gen.StructuralPrecondition, "assign", a.Path, "cannot assign to a bare root")
	}
	n, ok := b.nodes[a.Value]
	if !ok {
		return b.missing("assign", "value", a.Value)
	}
	b.c.Assign(ref, n)
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
