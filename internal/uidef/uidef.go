// Package uidef loads declarative UI descriptions written in CUE and builds
// the corresponding widget graph.
//
// A description is a CUE file with a top-level "ui" field. It is unified
// with the embedded #UI schema, so structural mistakes (unknown fields,
// wrong kinds, non-concrete values) are reported by CUE with positions
// before anything is built.
package uidef

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed schema.cue
var schemaSource string

// Document is a decoded UI description.
type Document struct {
	Name    string      `json:"name"`
	Kind    string      `json:"kind"`
	Window  *WindowDef  `json:"window,omitempty"`
	Fonts   []FontDef   `json:"fonts"`
	Widgets []WidgetDef `json:"widgets"`
	Layout  []StepDef   `json:"layout"`
	Menus   []MenuDef   `json:"menus"`
	Assign  []AssignDef `json:"assign"`
}

type WindowDef struct {
	Title          string  `json:"title"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Closable       bool    `json:"closable"`
	Miniaturizable bool    `json:"miniaturizable"`
	Resizable      bool    `json:"resizable"`
}

type FontDef struct {
	Name   string   `json:"name"`
	Family string   `json:"family"`
	Size   float64  `json:"size"`
	Traits []string `json:"traits"`
}

type ActionDef struct {
	Target   string `json:"target,omitempty"`
	Selector string `json:"selector"`
}

type SegmentDef struct {
	Label string  `json:"label"`
	Width float64 `json:"width"`
}

type TabDef struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type ColumnDef struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Width float64 `json:"width"`
}

type WidgetDef struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Parent   string         `json:"parent,omitempty"`
	Text     string         `json:"text,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Font     string         `json:"font,omitempty"`
	Action   *ActionDef     `json:"action,omitempty"`
	Segments []SegmentDef   `json:"segments,omitempty"`
	Tabs     []TabDef       `json:"tabs,omitempty"`
	Columns  []ColumnDef    `json:"columns,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
}

type AnchorDef struct {
	Corner string `json:"corner"`
	GrowX  bool   `json:"growX"`
	GrowY  bool   `json:"growY"`
}

type StepDef struct {
	Widget     string     `json:"widget"`
	Width      float64    `json:"width,omitempty"`
	Height     float64    `json:"height,omitempty"`
	Corner     string     `json:"corner,omitempty"`
	RelativeTo string     `json:"relativeTo,omitempty"`
	Side       string     `json:"side,omitempty"`
	Align      string     `json:"align,omitempty"`
	Fill       []string   `json:"fill,omitempty"`
	Anchor     *AnchorDef `json:"anchor,omitempty"`
}

type ItemDef struct {
	Title     string     `json:"title"`
	Separator bool       `json:"separator"`
	Action    *ActionDef `json:"action,omitempty"`
	Shortcut  string     `json:"shortcut,omitempty"`
	Tag       any        `json:"tag,omitempty"`
	Submenu   string     `json:"submenu,omitempty"`
}

type MenuDef struct {
	Name  string    `json:"name"`
	Title string    `json:"title"`
	Items []ItemDef `json:"items"`
}

type AssignDef struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// Compile parses src, validates its "ui" field against the schema and
// decodes it. name is used in error positions.
func Compile(name string, src []byte) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	return decode(ctx, name, v)
}

// Load reads and compiles a single description file.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(filepath.Base(path), src)
}

// LoadInstance loads the CUE package in dir, which may split a description
// over several files.
func LoadInstance(dir string) (*Document, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, fmt.Errorf("no CUE instances found in %s", dir)
	}
	if insts[0].Err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, insts[0].Err)
	}
	ctx := cuecontext.New()
	v := ctx.BuildInstance(insts[0])
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("building %s: %w", dir, err)
	}
	return decode(ctx, dir, v)
}

func decode(ctx *cue.Context, name string, v cue.Value) (*Document, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	ui := v.LookupPath(cue.ParsePath("ui"))
	if !ui.Exists() {
		return nil, fmt.Errorf("%s: no ui field", name)
	}
	ui = schema.LookupPath(cue.ParsePath("#UI")).Unify(ui)
	if err := ui.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}
	var doc Document
	if err := ui.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if doc.Kind == "window" && doc.Window == nil {
		return nil, fmt.Errorf("%s: a window description needs a window field", name)
	}
	if doc.Kind == "menu" && len(doc.Menus) == 0 {
		return nil, fmt.Errorf("%s: a menu description needs at least one menu", name)
	}
	return &doc, nil
}
