// Package styles maps logical style keys to scoped CSS class names.
//
// A Sheet belongs to one component. Each rule's class name is derived as
// "<sheet>__<key>" when the sheet is built, so lookups at render time are a
// map read. The sheet's CSS is injected into the host page once, as a
// <style> element, by whoever mounts the component.
//
//	var titleStyles = styles.New("Title", styles.Rule{Key: "red", Decl: "color: red;"})
//	titleStyles.Class("red") // "Title__red"
package styles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// ErrUnknownStyle is returned when a key has no rule in the sheet.
var ErrUnknownStyle = errors.New("styles: unknown style")

// Rule is one logical style: a key local to the component and the CSS
// declarations applied under the scoped class.
type Rule struct {
	Key  string
	Decl string
}

// Sheet is an immutable set of scoped rules for one component.
type Sheet struct {
	name    string
	classes map[string]string
	rules   []Rule
}

// New builds a sheet for the named component. Panics on duplicate keys,
// since sheets are package-level values built at init.
func New(name string, rules ...Rule) *Sheet {
	s := &Sheet{
		name:    name,
		classes: make(map[string]string, len(rules)),
		rules:   append([]Rule(nil), rules...),
	}
	for _, r := range rules {
		if _, dup := s.classes[r.Key]; dup {
			panic(fmt.Sprintf("styles: duplicate key %q in sheet %q", r.Key, name))
		}
		s.classes[r.Key] = Scope(name, r.Key)
	}
	sort.Slice(s.rules, func(i, j int) bool { return s.rules[i].Key < s.rules[j].Key })
	return s
}

// Scope returns the scoped class name for a local key.
func Scope(name, key string) string {
	return name + "__" + key
}

// Name returns the component name the sheet is scoped to.
func (s *Sheet) Name() string {
	return s.name
}

// Class returns the scoped class for key, or "" if the key is unknown.
func (s *Sheet) Class(key string) string {
	return s.classes[key]
}

// Lookup is Class with an error for unknown keys.
func (s *Sheet) Lookup(key string) (string, error) {
	c, ok := s.classes[key]
	if !ok {
		return "", fmt.Errorf("%w: %q in sheet %q", ErrUnknownStyle, key, s.name)
	}
	return c, nil
}

// Keys returns the sheet's logical keys in sorted order.
func (s *Sheet) Keys() []string {
	keys := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		keys = append(keys, r.Key)
	}
	return keys
}

// CSS renders the sheet as a stylesheet, one rule per line.
func (s *Sheet) CSS() string {
	var sb strings.Builder
	for _, r := range s.rules {
		sb.WriteString(".")
		sb.WriteString(s.classes[r.Key])
		sb.WriteString(" { ")
		sb.WriteString(r.Decl)
		sb.WriteString(" }\n")
	}
	return sb.String()
}

// StyleTag returns the sheet as a <style> element. An empty sheet renders
// nothing.
func (s *Sheet) StyleTag() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(s.rules) == 0 {
			return nil
		}
		_, err := io.WriteString(w, `<style data-sheet="`+templ.EscapeString(s.name)+`">`+s.CSS()+`</style>`)
		return err
	})
}
