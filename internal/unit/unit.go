// Package unit wraps generated statements into an Objective-C compilation
// unit: a header declaring create<Name>(id owner) and an implementation file
// whose body constructs and returns the root object.
package unit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

// Unit is one generated header/implementation pair.
type Unit struct {
	Name      string
	Source    string
	RootClass string
	RootVar   string
	Body      string
	RunID     uuid.UUID
}

// New returns a unit with a fresh run ID.
func New(name, source, rootClass, rootVar, body string) *Unit {
	return &Unit{
		Name:      name,
		Source:    source,
		RootClass: rootClass,
		RootVar:   rootVar,
		Body:      body,
		RunID:     uuid.New(),
	}
}

// FuncName is the name of the generated constructor function.
func (u *Unit) FuncName() string { return "create" + u.Name }

// HeaderFile and ImplFile are the file names for the unit.
func (u *Unit) HeaderFile() string { return u.Name + ".h" }
func (u *Unit) ImplFile() string   { return u.Name + ".m" }

const banner = `// Generated by framegen{{if .Source}} from {{.Source}}{{end}}. Do not edit.
// Run {{.RunID}}
`

var headerTmpl = template.Must(template.New("header").Parse(banner + `
#import <Cocoa/Cocoa.h>

{{.RootClass}} *{{.FuncName}}(id owner);
`))

var implTmpl = template.Must(template.New("impl").Funcs(template.FuncMap{
	"indent": indent,
}).Parse(banner + `
#import "{{.HeaderFile}}"

{{.RootClass}} *{{.FuncName}}(id owner)
{
{{indent .Body}}    return {{.RootVar}};
}
`))

// Header renders the .h file.
func (u *Unit) Header() (string, error) {
	return u.render(headerTmpl)
}

// Implementation renders the .m file.
func (u *Unit) Implementation() (string, error) {
	return u.render(implTmpl)
}

func (u *Unit) render(t *template.Template) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, u); err != nil {
		return "", fmt.Errorf("template %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func indent(body string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		if line == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
