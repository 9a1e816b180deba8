package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	Base
}

func newThing(c *Context, class string) *thing {
	t := &thing{}
	t.Init(c, t, class)
	return t
}

func TestContext_TokensAreMonotonic(t *testing.T) {
	c := NewContext()
	a := newThing(c, "NSThing")
	b := newThing(c, "NSThing")
	assert.Equal(t, 1, a.Token)
	assert.Equal(t, 2, b.Token)
	assert.Equal(t, "_thing1", a.VarName())
	assert.Equal(t, "_thing2", b.VarName())
}

func TestContext_GenerateEmitsOnce(t *testing.T) {
	c := NewContext()
	shared := newThing(c, "NSFont")
	left := newThing(c, "NSLeft")
	right := newThing(c, "NSRight")
	root := newThing(c, "NSRoot")
	left.DependOn(shared)
	right.DependOn(shared)
	root.DependOn(left, right)

	out, err := c.Generate(root)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "[[NSFont alloc] init]"))

	again, err := c.Generate(root)
	require.NoError(t, err)
	assert.Empty(t, again)
	again, err = c.Generate(shared)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestContext_DependenciesComeFirst(t *testing.T) {
	c := NewContext()
	b := newThing(c, "NSB")
	a := newThing(c, "NSA")
	d := newThing(c, "NSD")
	a.DependOn(b, d)

	out, err := c.Generate(a)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NSB *_b1 = [[NSB alloc] init];", lines[0])
	assert.Equal(t, "NSD *_d3 = [[NSD alloc] init];", lines[1])
	assert.Equal(t, "NSA *_a2 = [[NSA alloc] init];", lines[2])
}

func TestContext_PropertiesFollowConstruction(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSThing")
	x.Set("title", "Hi")
	x.Set("enabled", false)
	x.Set("tag", 42)
	x.Set("missing", nil)
	x.Alias("mode", "cell.trackingMode")
	x.Set("mode", Literal("NSSegmentSwitchTrackingSelectOne"))

	out, err := c.Generate(x)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"NSThing *_thing1 = [[NSThing alloc] init];",
		`[_thing1 setTitle:NSLocalizedString(@"Hi", @"")];`,
		"[_thing1 setEnabled:NO];",
		"[_thing1 setTag:42];",
		"[[_thing1 cell] setTrackingMode:NSSegmentSwitchTrackingSelectOne];",
		"",
	}, "\n"), out)
}

func TestContext_DeferredAssignmentWaitsForValue(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSWindow")
	y := newThing(c, "NSDelegate")
	y.Set("name", NonLocalizable("main"))
	x.Set("delegate", y)

	out, err := c.GenerateAll(x, y)
	require.NoError(t, err)

	assign := "[_window1 setDelegate:_delegate2];"
	yInit := "NSDelegate *_delegate2 = [[NSDelegate alloc] init];"
	yProp := `[_delegate2 setName:@"main"];`
	require.Contains(t, out, assign)
	assert.Less(t, strings.Index(out, yInit), strings.Index(out, assign))
	assert.Less(t, strings.Index(out, yProp), strings.Index(out, assign))
	assert.Empty(t, c.Pending())
}

func TestContext_EmittedValueAssignsImmediately(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSWindow")
	y := newThing(c, "NSDelegate")
	x.Set("delegate", y)
	x.DependOn(y)

	out, err := c.Generate(x)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "[_window1 setDelegate:_delegate2];", lines[len(lines)-1])
}

func TestContext_AssignToExternalKey(t *testing.T) {
	c := NewContext()
	menu := newThing(c, "NSMenu")
	c.Assign(c.Root("NSApp").Child("servicesMenu"), menu)
	assert.Equal(t, []string{"NSApp.servicesMenu = _menu1"}, c.Pending())

	out, err := c.Generate(menu)
	require.NoError(t, err)
	assert.Contains(t, out, "[NSApp setServicesMenu:_menu1];")
	assert.Empty(t, c.Pending())
}

func TestContext_AssignWaitsForKeyOwner(t *testing.T) {
	c := NewContext()
	ok := newThing(c, "NSButton")
	field := newThing(c, "NSTextField")
	c.Assign(field.Ref().Child("nextKeyView"), ok)

	out, err := c.Generate(ok)
	require.NoError(t, err)
	assert.NotContains(t, out, "setNextKeyView")
	assert.Equal(t, []string{"_textField2.nextKeyView = _button1"}, c.Pending())

	out, err = c.Generate(field)
	require.NoError(t, err)
	assert.Equal(t, "NSTextField *_textField2 = [[NSTextField alloc] init];\n"+
		"[_textField2 setNextKeyView:_button1];\n", out)
	assert.Empty(t, c.Pending())
}

func TestContext_PropertyOwnerInProgress(t *testing.T) {
	c := NewContext()
	field := newThing(c, "NSTextField")
	ok := newThing(c, "NSButton")
	c.Assign(field.Ref().Child("nextKeyView"), ok)
	field.DependOn(ok)

	out, err := c.Generate(field)
	require.NoError(t, err)
	assign := "[_textField1 setNextKeyView:_button2];"
	require.Contains(t, out, assign)
	assert.Less(t, strings.Index(out, "NSTextField *_textField1"), strings.Index(out, assign))
}

func TestContext_AssignAfterEmissionIsFlushed(t *testing.T) {
	c := NewContext()
	menu := newThing(c, "NSMenu")
	_, err := c.Generate(menu)
	require.NoError(t, err)

	c.Assign(c.Root("NSApp").Child("mainMenu"), menu)
	assert.Equal(t, "[NSApp setMainMenu:_menu1];\n", c.Flush())
	assert.Empty(t, c.Flush())
}

func TestContext_CycleThroughPropertiesResolves(t *testing.T) {
	c := NewContext()
	a := newThing(c, "NSA")
	b := newThing(c, "NSB")
	a.DependOn(b)
	b.DependOn(a)
	b.Set("peer", a)

	out, err := c.Generate(a)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "[[NSA alloc] init]"))
	assert.Equal(t, 1, strings.Count(out, "[[NSB alloc] init]"))
	assert.Less(t, strings.Index(out, "[[NSA alloc] init]"), strings.Index(out, "[_b2 setPeer:_a1];"))
}

func TestContext_TypeConversionIsLazy(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSThing")
	x.Set("weird", struct{ A int }{1})

	_, err := c.Generate(x)
	require.Error(t, err)
	assert.True(t, IsKind(err, TypeConversion))

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "_thing1", ge.Node)
	assert.Equal(t, "weird", ge.Key)
}

func TestContext_Reset(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSThing")
	y := newThing(c, "NSThing")
	x.Set("other", y)
	_, err := c.Generate(x)
	require.NoError(t, err)
	require.NotEmpty(t, c.Pending())
	root := c.Root("NSApp")

	c.Reset()
	assert.Empty(t, c.Pending())
	assert.False(t, c.IsEmitted(x))
	assert.Equal(t, 1, c.NextToken())
	assert.NotSame(t, root, c.Root("NSApp"))
}

func TestContext_SetVarNameKeepsRefIdentity(t *testing.T) {
	c := NewContext()
	x := newThing(c, "NSWindow")
	ref := x.Ref()
	x.SetVarName("result")
	assert.Same(t, ref, x.Ref())
	assert.Equal(t, "[result contentView]", x.Ref().Child("contentView").Accessor())
}
