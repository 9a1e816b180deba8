package widget

import (
	"github.com/matthewbaird/framegen/internal/gen"
	"github.com/matthewbaird/framegen/internal/layout"
)

// Button is a push button.
type Button struct {
	*layout.View
}

// NewButton creates a rounded push button.
func NewButton(c *gen.Context, parent layout.Parent, title string) *Button {
	b := &Button{}
	b.View = layout.NewView(c, b, "NSButton", parent, 80, 20)
	b.Deltas = layout.Deltas{X: -6, Y: -7, W: 12, H: 12}
	b.Set("title", title)
	b.Set("bezelStyle", gen.Literal("NSRoundedBezelStyle"))
	return b
}

// SetAction wires the button to a target and selector.
func (b *Button) SetAction(a *Action) { a.apply(&b.Base) }

// Checkbox is a switch-style button.
type Checkbox struct {
	*layout.View
}

// NewCheckbox creates a checkbox.
func NewCheckbox(c *gen.Context, parent layout.Parent, title string) *Checkbox {
	b := &Checkbox{}
	b.View = layout.NewView(c, b, "NSButton", parent, 80, 18)
	b.Deltas = layout.Deltas{X: -2, Y: -2, W: 4, H: 4}
	b.Set("buttonType", gen.Literal("NSSwitchButton"))
	b.Set("title", title)
	return b
}

// SetAction wires the checkbox to a target and selector.
func (b *Checkbox) SetAction(a *Action) { a.apply(&b.Base) }

// Label is a non-editable, borderless text field.
type Label struct {
	*layout.View
}

// NewLabel creates a label.
func NewLabel(c *gen.Context, parent layout.Parent, text string) *Label {
	l := &Label{}
	l.View = layout.NewView(c, l, "NSTextField", parent, 100, 17)
	l.Deltas = layout.Deltas{X: -3, W: 6}
	l.Set("editable", false)
	l.Set("selectable", false)
	l.Set("bordered", false)
	l.Set("drawsBackground", false)
	l.Set("stringValue", text)
	return l
}

// SetFont sets the label font. The font is generated before the label.
func (l *Label) SetFont(f *Font) {
	if f == nil {
		return
	}
	l.DependOn(f)
	l.Set("font", f)
}

// TextField is an editable text field.
type TextField struct {
	*layout.View
}

// NewTextField creates an editable text field.
func NewTextField(c *gen.Context, parent layout.Parent, text string) *TextField {
	tf := &TextField{}
	tf.View = layout.NewView(c, tf, "NSTextField", parent, 100, 22)
	tf.Set("stringValue", text)
	return tf
}

// SetFont sets the text field font.
func (tf *TextField) SetFont(f *Font) {
	if f == nil {
		return
	}
	tf.DependOn(f)
	tf.Set("font", f)
}

// Segment is one segment of a SegmentedControl.
type Segment struct {
	Label string
	Width float64
}

// segmentOverhead is the width a segmented control adds around its segments.
const segmentOverhead = 8

// SegmentedControl is a row of segments.
type SegmentedControl struct {
	*layout.View
	segments []Segment
}

// NewSegmentedControl creates an empty segmented control.
func NewSegmentedControl(c *gen.Context, parent layout.Parent) *SegmentedControl {
	s := &SegmentedControl{}
	s.View = layout.NewView(c, s, "NSSegmentedControl", parent, segmentOverhead, 25)
	s.Deltas = layout.Deltas{Y: -2, H: 3}
	s.Alias("trackingMode", "cell.trackingMode")
	return s
}

// AddSegment appends a segment and widens the control to fit.
func (s *SegmentedControl) AddSegment(label string, width float64) Segment {
	seg := Segment{Label: label, Width: width}
	s.segments = append(s.segments, seg)
	total := float64(segmentOverhead)
	for _, x := range s.segments {
		total += x.Width
	}
	s.Width = total
	return seg
}

// Segments returns the segments in order.
func (s *SegmentedControl) Segments() []Segment { return s.segments }

// GenerateInit adds the per-segment setup to the view construction.
func (s *SegmentedControl) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t, err := s.View.GenerateInit(c)
	if err != nil {
		return nil, err
	}
	count, err := s.CallCode("setSegmentCount", len(s.segments))
	if err != nil {
		return nil, err
	}
	t.Append("setup", count)
	for i, seg := range s.segments {
		label, err := gen.Convert(seg.Label)
		if err != nil {
			return nil, err
		}
		width, err := gen.Convert(seg.Width)
		if err != nil {
			return nil, err
		}
		index, _ := gen.Convert(i)
		t.Append("setup", "[$varname$ setLabel:"+label+" forSegment:"+index+"];\n")
		t.Append("setup", "[$varname$ setWidth:"+width+" forSegment:"+index+"];\n")
	}
	return t, nil
}
