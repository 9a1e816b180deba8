package layout

// Corner is one of the four corners of a parent.
type Corner int

const (
	UpperLeft Corner = iota + 1
	UpperRight
	LowerLeft
	LowerRight
)

func (c Corner) String() string {
	switch c {
	case UpperLeft:
		return "UpperLeft"
	case UpperRight:
		return "UpperRight"
	case LowerLeft:
		return "LowerLeft"
	case LowerRight:
		return "LowerRight"
	default:
		return "Corner(?)"
	}
}

func (c Corner) left() bool  { return c == UpperLeft || c == LowerLeft }
func (c Corner) lower() bool { return c == LowerLeft || c == LowerRight }

// Side is a packing side. Left/Right/Above/Below double as alignment values
// for PackRelativeTo; Middle centers.
type Side int

const (
	Left Side = iota + 1
	Right
	Above
	Below
	Middle
)

func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Above:
		return "Above"
	case Below:
		return "Below"
	case Middle:
		return "Middle"
	default:
		return "Side(?)"
	}
}

// Opposite returns the side facing s. Middle has no opposite.
func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	case Above:
		return Below
	case Below:
		return Above
	default:
		return s
	}
}

// Anchor describes how a view follows its parent when the parent resizes.
type Anchor struct {
	Corner Corner
	GrowX  bool
	GrowY  bool
}

// Rect is a rectangle in layout coordinates. The origin is the lower left
// corner of the parent, y grows upwards.
type Rect struct {
	X, Y, Width, Height float64
}

// Margins are the border margins a parent keeps around packed children.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Deltas compensate the difference between a widget's layout rectangle and
// the frame it is actually drawn in. Every widget kind has its own.
type Deltas struct {
	X, Y, W, H float64
}

const (
	// DefaultMargin is the border margin of every parent.
	DefaultMargin = 20
	// Gap is the spacing between views packed next to each other.
	Gap = 8
)

// DefaultMargins returns DefaultMargin on every side.
func DefaultMargins() Margins {
	return Margins{Left: DefaultMargin, Right: DefaultMargin, Top: DefaultMargin, Bottom: DefaultMargin}
}
