package widget

import (
	"fmt"
	"strconv"

	"github.com/matthewbaird/framegen/internal/gen"
)

// SystemFamily selects the system font instead of a named family.
const SystemFamily = ""

// FontTrait is a font manager trait mask.
type FontTrait string

const (
	Bold   FontTrait = "NSBoldFontMask"
	Italic FontTrait = "NSItalicFontMask"
)

// Font is a generated NSFont. Several widgets may share one font; it is
// emitted once, before the first widget that uses it.
type Font struct {
	gen.Base
	Family string
	Size   float64
	Traits []FontTrait
}

// NewFont creates a font. Use SystemFamily for the system font.
func NewFont(c *gen.Context, family string, size float64, traits ...FontTrait) *Font {
	f := &Font{Family: family, Size: size, Traits: traits}
	f.Init(c, f, "NSFont")
	return f
}

// GenerateInit implements gen.Node.
func (f *Font) GenerateInit(c *gen.Context) (*gen.Template, error) {
	t := gen.NewTemplate("NSFont *$varname$ = $create$;\n$setup$\n")
	t.Set("varname", f.VarName())
	size, err := gen.Convert(f.Size)
	if err != nil {
		return nil, err
	}
	if f.Family == SystemFamily {
		t.Set("create", "[NSFont systemFontOfSize:"+size+"]")
	} else {
		name, err := gen.Convert(gen.NonLocalizable(f.Family))
		if err != nil {
			return nil, err
		}
		t.Set("create", "[NSFont fontWithName:"+name+" size:"+size+"]")
	}
	for _, trait := range f.Traits {
		t.Append("setup", "$varname$ = [[NSFontManager sharedFontManager] convertFont:$varname$ toHaveTrait:"+string(trait)+"];\n")
	}
	return t, nil
}

// Color is an RGBA device color. It is converted inline, never emitted as
// its own variable.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ObjC implements gen.Converter.
func (col Color) ObjC() (string, error) {
	for _, x := range []float64{col.R, col.G, col.B, col.A} {
		if x < 0 || x > 1 {
			return "", fmt.Errorf("color component %v out of range [0, 1]", x)
		}
	}
	return fmt.Sprintf("[NSColor colorWithDeviceRed:%s green:%s blue:%s alpha:%s]",
		component(col.R), component(col.G), component(col.B), component(col.A)), nil
}

func component(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
