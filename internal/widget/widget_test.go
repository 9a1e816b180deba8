package widget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
)

// assertOrder checks that every snippet occurs in out, in the given order.
func assertOrder(t *testing.T, out string, snippets ...string) {
	t.Helper()
	last := -1
	for _, s := range snippets {
		i := strings.Index(out, s)
		require.NotEqual(t, -1, i, "missing %q in:\n%s", s, out)
		assert.Greater(t, i, last, "%q out of order in:\n%s", s, out)
		last = i
	}
}

func TestWindow_GeneratesButtonInContentView(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 100, 200, 300, 200, "Main")
	b := NewButton(c, w, "OK")
	require.NoError(t, b.PackToCorner(layout.LowerRight))
	assert.Equal(t, 200.0, b.X)
	assert.Equal(t, 20.0, b.Y)

	out, err := c.Generate(w)
	require.NoError(t, err)
	want := "NSWindow *_window1 = [[NSWindow alloc] initWithContentRect:NSMakeRect(100, 200, 300, 200) " +
		"styleMask:NSTitledWindowMask|NSClosableWindowMask|NSMiniaturizableWindowMask|NSResizableWindowMask " +
		"backing:NSBackingStoreBuffered defer:NO];\n" +
		"[_window1 setTitle:NSLocalizedString(@\"Main\", @\"\")];\n" +
		"[_window1 setReleasedWhenClosed:NO];\n" +
		"NSButton *_button2 = [[NSButton alloc] initWithFrame:NSMakeRect(194, 13, 92, 32)];\n" +
		"[[_window1 contentView] addSubview:_button2];\n" +
		"[_button2 setTitle:NSLocalizedString(@\"OK\", @\"\")];\n" +
		"[_button2 setBezelStyle:NSRoundedBezelStyle];\n" +
		"[_button2 setAutoresizingMask:NSViewMaxXMargin|NSViewMinYMargin];\n"
	assert.Equal(t, want, out)
}

func TestWindow_StyleMaskFollowsFlags(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 0, 0, 100, 100, "Panel")
	w.Closable = false
	w.Resizable = false

	out, err := c.Generate(w)
	require.NoError(t, err)
	assert.Contains(t, out, "styleMask:NSTitledWindowMask|NSMiniaturizableWindowMask backing:")
}

func TestButton_Action(t *testing.T) {
	c := gen.NewContext()
	b := NewButton(c, nil, "Go")
	b.SetAction(&Action{Target: Owner(c), Selector: "go:"})

	out, err := c.Generate(b)
	require.NoError(t, err)
	assert.Contains(t, out, "[_button1 setTarget:owner];\n")
	assert.Contains(t, out, "[_button1 setAction:@selector(go:)];\n")
}

func TestButton_NilTargetOnlySetsAction(t *testing.T) {
	c := gen.NewContext()
	b := NewCheckbox(c, nil, "Check")
	b.SetAction(&Action{Selector: "toggle:"})

	out, err := c.Generate(b)
	require.NoError(t, err)
	assert.NotContains(t, out, "setTarget:")
	assert.Contains(t, out, "[_button1 setAction:@selector(toggle:)];\n")
	assert.Contains(t, out, "[_button1 setButtonType:NSSwitchButton];\n")
}

func TestLabel_FontIsGeneratedFirst(t *testing.T) {
	c := gen.NewContext()
	l := NewLabel(c, nil, "Hello")
	f := NewFont(c, SystemFamily, 13, Bold)
	l.SetFont(f)

	out, err := c.Generate(l)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSFont *_font2 = [NSFont systemFontOfSize:13];\n",
		"_font2 = [[NSFontManager sharedFontManager] convertFont:_font2 toHaveTrait:NSBoldFontMask];\n",
		"NSTextField *_textField1 = [[NSTextField alloc] initWithFrame:NSMakeRect(-3, 0, 106, 17)];\n",
		"[_textField1 setEditable:NO];\n",
		"[_textField1 setStringValue:NSLocalizedString(@\"Hello\", @\"\")];\n",
		"[_textField1 setFont:_font2];\n",
	)
}

func TestFont_SharedFontEmittedOnce(t *testing.T) {
	c := gen.NewContext()
	f := NewFont(c, "Helvetica", 12)
	a := NewLabel(c, nil, "a")
	b := NewTextField(c, nil, "b")
	a.SetFont(f)
	b.SetFont(f)

	out, err := c.GenerateAll(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "[NSFont fontWithName:@\"Helvetica\" size:12]"))
	assert.Contains(t, out, "[_textField2 setFont:_font1];\n")
	assert.Contains(t, out, "[_textField3 setFont:_font1];\n")
}

func TestColor_ObjC(t *testing.T) {
	s, err := RGB(1, 0.5, 0).ObjC()
	require.NoError(t, err)
	assert.Equal(t, "[NSColor colorWithDeviceRed:1 green:0.5 blue:0 alpha:1]", s)

	_, err = Color{R: 2, A: 1}.ObjC()
	assert.Error(t, err)
}

func TestSegmentedControl_WidthAndSegments(t *testing.T) {
	c := gen.NewContext()
	s := NewSegmentedControl(c, nil)
	s.AddSegment("A", 40)
	s.AddSegment("B", 60)
	assert.Equal(t, 108.0, s.Width)
	require.Len(t, s.Segments(), 2)
	assert.Equal(t, "B", s.Segments()[1].Label)
	s.Set("trackingMode", gen.Literal("NSSegmentSwitchTrackingSelectOne"))

	out, err := c.Generate(s)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSSegmentedControl *_segmentedControl1 = [[NSSegmentedControl alloc] initWithFrame:NSMakeRect(0, -2, 108, 28)];\n",
		"[_segmentedControl1 setSegmentCount:2];\n",
		"[_segmentedControl1 setLabel:NSLocalizedString(@\"A\", @\"\") forSegment:0];\n",
		"[_segmentedControl1 setWidth:40 forSegment:0];\n",
		"[_segmentedControl1 setLabel:NSLocalizedString(@\"B\", @\"\") forSegment:1];\n",
		"[_segmentedControl1 setWidth:60 forSegment:1];\n",
		"[[_segmentedControl1 cell] setTrackingMode:NSSegmentSwitchTrackingSelectOne];\n",
	)
}

func TestTabView_ChildrenGoInTabs(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 0, 0, 400, 300, "Tabs")
	tv := NewTabView(c, w)
	tv.Width, tv.Height = 300, 200
	item := tv.AddTab(c, "General")
	assert.Equal(t, []*TabItem{item}, tv.Tabs())
	assert.Equal(t, layout.Rect{Width: 280, Height: 164}, item.Rect())

	cb := NewCheckbox(c, item, "Enable")
	require.NoError(t, cb.PackToCorner(layout.UpperLeft))
	assert.Equal(t, 20.0, cb.X)
	assert.Equal(t, 126.0, cb.Y)

	out, err := c.Generate(w)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSTabView *_tabView2 = ",
		"[[_window1 contentView] addSubview:_tabView2];\n",
		"NSTabViewItem *_tabViewItem3 = [[NSTabViewItem alloc] initWithIdentifier:@\"General\"];\n",
		"[_tabView2 addTabViewItem:_tabViewItem3];\n",
		"[_tabViewItem3 setLabel:NSLocalizedString(@\"General\", @\"\")];\n",
		"NSButton *_button4 = [[NSButton alloc] initWithFrame:NSMakeRect(18, 124, 84, 22)];\n",
		"[[_tabViewItem3 view] addSubview:_button4];\n",
	)
}

func TestTabView_GeneratingLeafEmitsAncestorsOnce(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 0, 0, 400, 300, "Tabs")
	tv := NewTabView(c, w)
	item := tv.AddTab(c, "One")
	cb := NewCheckbox(c, item, "Enable")

	out, err := c.Generate(cb)
	require.NoError(t, err)
	assertOrder(t, out, "NSWindow *_window1", "NSTabView *_tabView2", "NSTabViewItem *_tabViewItem3", "NSButton *_button4")
	assert.Equal(t, 1, strings.Count(out, "NSButton *_button4"))

	again, err := c.Generate(w)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestTableView_ContainerAndColumns(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 0, 0, 400, 300, "Table")
	tv := NewTableView(c, w)
	col := tv.AddColumn(c, "name", "Name", 120)
	col.AutoResizable = true
	assert.Equal(t, []*TableColumn{col}, tv.Columns())
	assert.Equal(t, []*layout.View{tv.View}, w.Children())
	require.NoError(t, tv.PackToCorner(layout.UpperLeft))
	tv.SetAnchor(layout.UpperLeft, true, true)

	out, err := c.Generate(w)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSTableView *_tableView2 = [[NSTableView alloc] initWithFrame:NSMakeRect(20, 180, 100, 100)];\n",
		"NSScrollView *_tableView2_container = [[NSScrollView alloc] initWithFrame:NSMakeRect(20, 180, 100, 100)];\n",
		"[_tableView2_container setDocumentView:_tableView2];\n",
		"[_tableView2_container setAutoresizingMask:NSViewWidthSizable|NSViewHeightSizable];\n",
		"NSTableColumn *_tableColumn3 = [[NSTableColumn alloc] initWithIdentifier:@\"name\"];\n",
		"[[_tableColumn3 headerCell] setStringValue:NSLocalizedString(@\"Name\", @\"\")];\n",
		"[_tableColumn3 setWidth:120];\n",
		"[_tableColumn3 setEditable:YES];\n",
		"[_tableColumn3 setResizingMask:NSTableColumnUserResizingMask|NSTableColumnAutoresizingMask];\n",
		"[_tableView2 addTableColumn:_tableColumn3];\n",
		"[[_window1 contentView] addSubview:_tableView2_container];\n",
		"[_tableView2 setColumnAutoresizingStyle:NSTableViewUniformColumnAutoresizingStyle];\n",
		"[_tableView2 sizeToFit];\n",
	)
	assert.NotContains(t, out, "addSubview:_tableView2]")
}

func TestOutlineView_IsATable(t *testing.T) {
	c := gen.NewContext()
	w := NewWindow(c, 0, 0, 400, 300, "Outline")
	ov := NewOutlineView(c, w)
	ov.AddColumn(c, "name", "Name", 120)

	out, err := c.Generate(w)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSOutlineView *_outlineView2 = [[NSOutlineView alloc] initWithFrame:",
		"NSScrollView *_outlineView2_container = ",
		"[_outlineView2 addTableColumn:_tableColumn3];\n",
		"[[_window1 contentView] addSubview:_outlineView2_container];\n",
		"[_outlineView2 sizeToFit];\n",
	)
}

func TestMenu_SubmenuIsAssignedAfterItsConstruction(t *testing.T) {
	c := gen.NewContext()
	main := NewMenu(c, "Main")
	file := main.AddMenu(c, "File")
	_, err := file.AddItem(c, "Quit", &Action{Selector: "terminate:"}, "cmd+q", 0)
	require.NoError(t, err)
	file.AddSeparator(c)
	c.Assign(App(c).Child("mainMenu"), main)

	out, err := c.GenerateAll(main)
	require.NoError(t, err)
	want := "NSMenu *_menu1 = [[NSMenu alloc] initWithTitle:NSLocalizedString(@\"Main\", @\"\")];\n" +
		"[NSApp setMainMenu:_menu1];\n" +
		"NSMenuItem *_menuItem2 = [_menu1 addItemWithTitle:NSLocalizedString(@\"File\", @\"\") action:nil keyEquivalent:@\"\"];\n" +
		"NSMenu *_menu3 = [[NSMenu alloc] initWithTitle:NSLocalizedString(@\"File\", @\"\")];\n" +
		"[_menuItem2 setSubmenu:_menu3];\n" +
		"NSMenuItem *_menuItem4 = [_menu3 addItemWithTitle:NSLocalizedString(@\"Quit\", @\"\") action:@selector(terminate:) keyEquivalent:@\"q\"];\n" +
		"[_menuItem4 setKeyEquivalentModifierMask:NSCommandKeyMask];\n" +
		"[_menu3 addItem:[NSMenuItem separatorItem]];\n"
	assert.Equal(t, want, out)
	assert.Empty(t, c.Pending())
}

func TestMenu_ItemTagAndTarget(t *testing.T) {
	c := gen.NewContext()
	m := NewMenu(c, "Edit")
	item, err := m.AddItem(c, "Undo", &Action{Target: Owner(c), Selector: "undo:"}, "cmd+z", 7)
	require.NoError(t, err)

	out, err := c.Generate(m)
	require.NoError(t, err)
	assertOrder(t, out,
		"NSMenuItem *_menuItem2 = ",
		"[_menuItem2 setTag:7];\n",
		"[_menuItem2 setTarget:owner];\n",
	)
	assert.Nil(t, item.Submenu())
}

func TestMenu_SymbolicTag(t *testing.T) {
	c := gen.NewContext()
	m := NewMenu(c, "Find")
	_, err := m.AddItem(c, "Find...", &Action{Selector: "performFindPanelAction:"}, "cmd+f",
		gen.Literal("NSFindPanelActionShowFindPanel"))
	require.NoError(t, err)

	out, err := c.Generate(m)
	require.NoError(t, err)
	assert.Contains(t, out, "[_menuItem2 setTag:NSFindPanelActionShowFindPanel];\n")
}

func TestMenu_TitlesKeepDollarSigns(t *testing.T) {
	c := gen.NewContext()
	m := NewMenu(c, "$varname$")
	_, err := m.AddItem(c, "Pay $amount$ now", nil, "", nil)
	require.NoError(t, err)

	out, err := c.Generate(m)
	require.NoError(t, err)
	assertOrder(t, out,
		"[[NSMenu alloc] initWithTitle:NSLocalizedString(@\"\\044varname\\044\", @\"\")];\n",
		"[_menu1 addItemWithTitle:NSLocalizedString(@\"Pay \\044amount\\044 now\", @\"\") action:nil",
	)
	assert.NotContains(t, out, "_menuItem2 now")
}

func TestMenu_BadShortcut(t *testing.T) {
	c := gen.NewContext()
	m := NewMenu(c, "Edit")
	_, err := m.AddItem(c, "Odd", nil, "cmd+shift", 0)
	require.Error(t, err)
	assert.True(t, gen.IsKind(err, gen.MalformedShortcutSpec))
	assert.Empty(t, m.Items())
}

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		spec  string
		flags gen.Flags
		key   string
	}{
		{"cmd+shift+z", gen.Flags{"NSCommandKeyMask", "NSShiftKeyMask"}, "z"},
		{"Cmd+CMD+q", gen.Flags{"NSCommandKeyMask"}, "q"},
		{"alt+ctrl+x", gen.Flags{"NSControlKeyMask", "NSAlternateKeyMask"}, "x"},
		{"a", nil, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			sc, err := ParseShortcut(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.flags, sc.Flags)
			assert.Equal(t, tt.key, sc.Key)
		})
	}
}

func TestParseShortcut_Malformed(t *testing.T) {
	for _, spec := range []string{"cmd+shift", "cmd+a+b", "cmd+", ""} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseShortcut(spec)
			require.Error(t, err)
			assert.True(t, gen.IsKind(err, gen.MalformedShortcutSpec))
		})
	}
}
