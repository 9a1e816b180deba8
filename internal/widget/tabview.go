package widget

import (
	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
)

// Space taken by the tab strip and the bezel around a tab's content.
const (
	tabInsetWidth  = 20
	tabInsetHeight = 36
)

// TabView is a tabbed container. Widgets are packed in its tabs, not in the
// tab view itself.
type TabView struct {
	*layout.View
	tabs []*TabItem
}

// NewTabView creates an empty tab view.
func NewTabView(c *gen.Context, parent layout.Parent) *TabView {
	tv := &TabView{}
	tv.View = layout.NewView(c, tv, "NSTabView", parent, 100, 100)
	tv.Deltas = layout.Deltas{X: -7, Y: -10, W: 14, H: 16}
	return tv
}

// AddTab appends a tab with the given label.
func (tv *TabView) AddTab(c *gen.Context, label string) *TabItem {
	item := &TabItem{tabView: tv, Label: label, margins: layout.DefaultMargins()}
	item.Init(c, item, "NSTabViewItem")
	item.Set("label", label)
	tv.tabs = append(tv.tabs, item)
	return item
}

// Tabs returns the tabs in order.
func (tv *TabView) Tabs() []*TabItem { return tv.tabs }

// GenerateFinalize generates the tabs, which generate their content.
func (tv *TabView) GenerateFinalize(c *gen.Context) (string, error) {
	out, err := tv.View.GenerateFinalize(c)
	if err != nil {
		return "", err
	}
	for _, item := range tv.tabs {
		code, err := c.Generate(item)
		if err != nil {
			return "", err
		}
		out += code
	}
	return out, nil
}

// TabItem is one tab. It is the parent of the widgets shown in the tab; its
// content rect follows the tab view's size at packing time.
type TabItem struct {
	gen.Base
	Label string

	tabView  *TabView
	margins  layout.Margins
	children []*layout.View
}

// Rect implements layout.Parent.
func (item *TabItem) Rect() layout.Rect {
	return layout.Rect{
		Width:  item.tabView.Width - tabInsetWidth,
		Height: item.tabView.Height - tabInsetHeight,
	}
}

// Margins implements layout.Parent.
func (item *TabItem) Margins() layout.Margins { return item.margins }

// Adopt implements layout.Parent.
func (item *TabItem) Adopt(child *layout.View) {
	item.children = append(item.children, child)
}

// AddSubviewCode implements layout.Parent.
func (item *TabItem) AddSubviewCode(c *gen.Context, subview any) (string, error) {
	return gen.CallStatement(item.Ref().Child("view"), "addSubview", subview)
}

// Dependencies makes the tab view come first.
func (item *TabItem) Dependencies() []gen.Node {
	return append([]gen.Node{item.tabView}, item.Base.Dependencies()...)
}

// GenerateInit implements gen.Node.
func (item *TabItem) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := item.Base.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	id, err := gen.Convert(gen.NonLocalizable(item.Label))
	if err != nil {
		return nil, err
	}
	t.Set("initmethod", "initWithIdentifier:"+id)
	add, err := item.tabView.CallCode("addTabViewItem", item)
	if err != nil {
		return nil, err
	}
	t.Set("setup", add)
	return t, nil
}

// GenerateFinalize generates the widgets of the tab.
func (item *TabItem) GenerateFinalize(c *gen.Context) (string, error) {
	return layout.GenerateChildren(c, item.children)
}
