package gen

import (
	"regexp"
	"sort"
	"strings"
)

// maxPasses bounds placeholder substitution; replacements may themselves
// contain placeholders, so rendering repeats until the text is stable.
const maxPasses = 8

var placeholderRe = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*\$`)

// Template is statement text with $name$ placeholders. Generated code is full
// of braces and brackets, so text/template style delimiters are avoided.
type Template struct {
	text   string
	values map[string]string
}

// NewTemplate creates a template from text.
func NewTemplate(text string) *Template {
	return &Template{text: text, values: make(map[string]string)}
}

// Set assigns the replacement for $name$.
func (t *Template) Set(name, value string) {
	t.values[name] = value
}

// Append adds value to the end of the current replacement for $name$.
func (t *Template) Append(name, value string) {
	t.values[name] += value
}

// Get returns the current replacement for $name$.
func (t *Template) Get(name string) string {
	return t.values[name]
}

// Render substitutes placeholders until nothing changes, drops unfilled
// placeholders and normalizes the result to one trimmed statement per line.
func (t *Template) Render() string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)

	result := t.text
	for pass := 0; pass < maxPasses; pass++ {
		prev := result
		for _, name := range names {
			ph := "$" + name + "$"
			if !strings.Contains(result, ph) {
				continue
			}
			result = strings.ReplaceAll(result, ph, t.values[name])
		}
		if result == prev {
			break
		}
	}
	result = placeholderRe.ReplaceAllString(result, "")
	return normalizeLines(result)
}

func normalizeLines(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
