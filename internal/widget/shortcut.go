package widget

import (
	"strings"

	"github.com/matthewbaird/framegen/internal/gen"
)

var modifierFlags = []struct {
	ident string
	flag  string
}{
	{"cmd", "NSCommandKeyMask"},
	{"ctrl", "NSControlKeyMask"},
	{"alt", "NSAlternateKeyMask"},
	{"shift", "NSShiftKeyMask"},
}

// KeyShortcut is a parsed shortcut such as "cmd+shift+z".
type KeyShortcut struct {
	Spec  string
	Flags gen.Flags
	Key   string
}

// ParseShortcut splits spec on "+", extracts the modifiers and requires
// exactly one remaining key. Tokens are case insensitive and may repeat.
func ParseShortcut(spec string) (KeyShortcut, error) {
	sc := KeyShortcut{Spec: spec}
	elements := make(map[string]bool)
	for _, tok := range strings.Split(strings.ToLower(spec), "+") {
		elements[tok] = true
	}
	for _, m := range modifierFlags {
		if elements[m.ident] {
			delete(elements, m.ident)
			sc.Flags = append(sc.Flags, m.flag)
		}
	}
	if len(elements) != 1 {
		return KeyShortcut{}, gen.Errorf(gen.MalformedShortcutSpec, "shortcut", "",
			"%q must name exactly one key besides modifiers, got %d", spec, len(elements))
	}
	for key := range elements {
		sc.Key = key
	}
	if sc.Key == "" {
		return KeyShortcut{}, gen.Errorf(gen.MalformedShortcutSpec, "shortcut", "", "%q has an empty key", spec)
	}
	return sc, nil
}
