package widget

import (
	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
)

const tableContainerSetup = `NSScrollView *$varname$_container = [[NSScrollView alloc] initWithFrame:$rect$];
[$varname$_container setDocumentView:$varname$];
[$varname$_container setHasVerticalScroller:YES];
[$varname$_container setHasHorizontalScroller:YES];
[$varname$_container setAutohidesScrollers:YES];
[$varname$_container setBorderType:NSBezelBorder];
[$varname$_container setAutoresizingMask:$autoresize$];
`

// TableView is a table inside a scroll view. The scroll view, not the table,
// is what gets attached to the parent.
type TableView struct {
	*layout.View
	columns  []*TableColumn
	Font     *Font
	Editable bool
}

// NewTableView creates an empty table.
func NewTableView(c *gen.Context, parent layout.Parent) *TableView {
	return newTable(c, parent, "NSTableView")
}

// NewOutlineView creates an empty outline view. It is set up exactly like
// a table.
func NewOutlineView(c *gen.Context, parent layout.Parent) *TableView {
	return newTable(c, parent, "NSOutlineView")
}

func newTable(c *gen.Context, parent layout.Parent, class string) *TableView {
	tv := &TableView{Editable: true}
	tv.View = layout.NewView(c, tv, class, parent, 100, 100)
	return tv
}

// AddColumn appends a column. Columns inherit the table's font and
// editability at the time they are added.
func (tv *TableView) AddColumn(c *gen.Context, identifier, title string, width float64) *TableColumn {
	col := &TableColumn{
		Identifier:    identifier,
		Title:         title,
		Width:         width,
		Font:          tv.Font,
		Editable:      tv.Editable,
		UserResizable: true,
	}
	col.Init(c, col, "NSTableColumn")
	tv.columns = append(tv.columns, col)
	return col
}

// Columns returns the columns in order.
func (tv *TableView) Columns() []*TableColumn { return tv.columns }

func (tv *TableView) containerRef() *gen.Ref {
	return gen.NewRoot(tv.VarName() + "_container")
}

// GenerateInit wraps the table in a scroll view and generates its columns.
func (tv *TableView) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := tv.View.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	autoresize, err := gen.Convert(tv.ResizeMask())
	if err != nil {
		return nil, err
	}
	t.Set("autoresize", autoresize)
	tv.Set("columnAutoresizingStyle", gen.Literal("NSTableViewUniformColumnAutoresizingStyle"))

	setup := tableContainerSetup
	for _, col := range tv.columns {
		code, err := c.Generate(col)
		if err != nil {
			return nil, err
		}
		add, err := tv.CallCode("addTableColumn", col)
		if err != nil {
			return nil, err
		}
		setup += code + add
	}
	t.Set("viewsetup", setup)
	return t, nil
}

// GenerateAddToParent attaches the scroll view instead of the table.
func (tv *TableView) GenerateAddToParent(c *gen.Context) (string, error) {
	return tv.Parent().AddSubviewCode(c, tv.containerRef())
}

// GenerateFinalize sizes the table once its columns are in place.
func (tv *TableView) GenerateFinalize(c *gen.Context) (string, error) {
	out, err := tv.View.GenerateFinalize(c)
	if err != nil {
		return "", err
	}
	code, err := tv.CallCode("sizeToFit")
	if err != nil {
		return "", err
	}
	return out + code, nil
}

// TableColumn is a column of a TableView.
type TableColumn struct {
	gen.Base
	Identifier    string
	Title         string
	Width         float64
	Font          *Font
	Editable      bool
	UserResizable bool
	AutoResizable bool
}

// Dependencies makes the column font come first.
func (col *TableColumn) Dependencies() []gen.Node {
	deps := col.Base.Dependencies()
	if col.Font != nil {
		deps = append([]gen.Node{col.Font}, deps...)
	}
	return deps
}

// GenerateInit implements gen.Node.
func (col *TableColumn) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := col.Base.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	id, err := gen.Convert(gen.NonLocalizable(col.Identifier))
	if err != nil {
		return nil, err
	}
	t.Set("initmethod", "initWithIdentifier:"+id)
	col.Set("headerCell.stringValue", col.Title)
	if col.Font != nil {
		col.Set("dataCell.font", col.Font)
	}
	col.Set("width", col.Width)
	col.Set("editable", col.Editable)
	var mask gen.Flags
	if col.UserResizable {
		mask.Add("NSTableColumnUserResizingMask")
	}
	if col.AutoResizable {
		mask.Add("NSTableColumnAutoresizingMask")
	}
	if len(mask) > 0 {
		col.Set("resizingMask", mask)
	}
	return t, nil
}
