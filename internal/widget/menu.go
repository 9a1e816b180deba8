package widget

import (
	"fmt"

	"github.com/matthewbaird/framegen/internal/gen"
)

// Menu is an NSMenu. Items are generated after the menu, each followed by
// its submenu if it has one.
type Menu struct {
	gen.Base
	Title string
	items []*MenuItem
}

// NewMenu creates an empty menu.
func NewMenu(c *gen.Context, title string) *Menu {
	m := &Menu{Title: title}
	m.Init(c, m, "NSMenu")
	return m
}

// Items returns the items in order, separators included.
func (m *Menu) Items() []*MenuItem { return m.items }

// AddItem appends an item. shortcut may be empty. tag is an int, emitted
// only when non-zero, or a symbolic constant such as
// gen.Literal("NSFindPanelActionShowFindPanel").
func (m *Menu) AddItem(c *gen.Context, title string, action *Action, shortcut string, tag any) (*MenuItem, error) {
	item := &MenuItem{menu: m, Title: title, Action: action}
	if shortcut != "" {
		sc, err := ParseShortcut(shortcut)
		if err != nil {
			return nil, fmt.Errorf("menu item %q: %w", title, err)
		}
		item.Shortcut = &sc
	}
	item.Init(c, item, "NSMenuItem")
	switch v := tag.(type) {
	case nil:
	case int:
		if v != 0 {
			item.Set("tag", v)
		}
	default:
		item.Set("tag", v)
	}
	m.items = append(m.items, item)
	return item, nil
}

// AddSeparator appends a separator item.
func (m *Menu) AddSeparator(c *gen.Context) *MenuItem {
	item := &MenuItem{menu: m, separator: true}
	item.Init(c, item, "NSMenuItem")
	m.items = append(m.items, item)
	return item
}

// AddMenu appends an item holding a new submenu and returns the submenu.
// The item's submenu is assigned once the submenu has been generated.
func (m *Menu) AddMenu(c *gen.Context, title string) *Menu {
	item, _ := m.AddItem(c, title, nil, "", nil)
	sub := NewMenu(c, title)
	item.submenu = sub
	item.Set("submenu", sub)
	return sub
}

// GenerateInit implements gen.Node.
func (m *Menu) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := m.Base.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	title, err := gen.Convert(m.Title)
	if err != nil {
		return nil, err
	}
	t.Set("initmethod", "initWithTitle:"+title)
	return t, nil
}

// GenerateFinalize generates the items and submenus.
func (m *Menu) GenerateFinalize(c *gen.Context) (string, error) {
	var out string
	for _, item := range m.items {
		code, err := c.Generate(item)
		if err != nil {
			return "", err
		}
		out += code
		if item.submenu != nil {
			code, err := c.Generate(item.submenu)
			if err != nil {
				return "", err
			}
			out += code
		}
	}
	return out, nil
}

const (
	menuItemInit  = "NSMenuItem *$varname$ = [$menu$ addItemWithTitle:$title$ action:$action$ keyEquivalent:$key$];\n$setup$\n"
	separatorInit = "[$menu$ addItem:[NSMenuItem separatorItem]];\n"
)

// MenuItem is an item of a Menu. Items are created by the menu itself with
// addItemWithTitle:action:keyEquivalent:.
type MenuItem struct {
	gen.Base
	Title    string
	Action   *Action
	Shortcut *KeyShortcut

	menu      *Menu
	submenu   *Menu
	separator bool
}

// Submenu returns the submenu opened by the item, if any.
func (item *MenuItem) Submenu() *Menu { return item.submenu }

// Dependencies makes the menu come first.
func (item *MenuItem) Dependencies() []gen.Node {
	return append([]gen.Node{item.menu}, item.Base.Dependencies()...)
}

// GenerateInit implements gen.Node.
func (item *MenuItem) GenerateInit(c *gen.Context) (*gen.Template, error) {
	if item.separator {
		t := gen.NewTemplate(separatorInit)
		t.Set("menu", item.menu.VarName())
		return t, nil
	}
	t := gen.NewTemplate(menuItemInit)
	t.Set("varname", item.VarName())
	t.Set("menu", item.menu.VarName())
	title, err := gen.Convert(item.Title)
	if err != nil {
		return nil, err
	}
	t.Set("title", title)
	t.Set("action", "nil")
	if item.Action != nil {
		t.Set("action", string(item.Action.selector()))
		if item.Action.Target != nil {
			item.Set("target", item.Action.Target)
		}
	}
	t.Set("key", `@""`)
	if item.Shortcut != nil {
		key, err := gen.Convert(gen.NonLocalizable(item.Shortcut.Key))
		if err != nil {
			return nil, err
		}
		t.Set("key", key)
		item.Set("keyEquivalentModifierMask", item.Shortcut.Flags)
	}
	return t, nil
}
