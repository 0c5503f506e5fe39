package lexical

import (
	"fmt"
	"strings"
)

// Template is a single-pass ${placeholder} substitution engine (spec
// §4.5/§9): it scans for "${", captures until the matching "}", and looks
// the captured key up in a small map. Substitution is total — every
// placeholder in the source must have a value, and every value supplied
// must be consumed — matching the "the round-trip... produces no residual
// ${...} tokens" testable property of spec §8.
//
// This is deliberately not text/template: the emitter's placeholders are a
// flat key->string map with no control flow, loops, or field access, so a
// dedicated scanner is simpler and lets us assert totality in both
// directions (unused keys are a caller bug, same as unmatched placeholders).
type Template struct {
	source string
	values map[string]string
	used   map[string]bool
}

// New starts a builder around a template source string.
func New(source string) *Template {
	return &Template{source: source, values: map[string]string{}, used: map[string]bool{}}
}

// With chains in one placeholder value, self-documenting call sites:
// lexical.New(src).With("name", n).With("type", t).Substitute().
func (t *Template) With(key, value string) *Template {
	t.values[key] = value
	return t
}

// Substitute performs the substitution pass. It returns an error naming the
// first unmatched placeholder (a value was never supplied) or the first
// supplied value that the template never referenced (a caller bug, per the
// "unused entries assert" rule of spec §4.5).
func (t *Template) Substitute() (string, error) {
	var b strings.Builder
	i := 0
	for i < len(t.source) {
		start := strings.Index(t.source[i:], "${")
		if start < 0 {
			b.WriteString(t.source[i:])
			break
		}
		start += i
		b.WriteString(t.source[i:start])

		end := strings.IndexByte(t.source[start+2:], '}')
		if end < 0 {
			return "", fmt.Errorf("lexical: unterminated placeholder starting at byte %d", start)
		}
		end += start + 2
		key := t.source[start+2 : end]

		val, ok := t.values[key]
		if !ok {
			return "", fmt.Errorf("lexical: unmatched placeholder ${%s}", key)
		}
		t.used[key] = true
		b.WriteString(val)
		i = end + 1
	}

	for k := range t.values {
		if !t.used[k] {
			return "", fmt.Errorf("lexical: unused template value %q", k)
		}
	}

	return b.String(), nil
}

// MustSubstitute panics on error; used at call sites where the placeholder
// set is a compile-time constant known to match (e.g. the emitter's fixed
// per-entity templates), matching the teacher's practice of panicking on
// shapes that genuinely can't happen rather than threading an error back
// through every caller.
func (t *Template) MustSubstitute() string {
	s, err := t.Substitute()
	if err != nil {
		panic(err)
	}
	return s
}

// Residual reports the set of placeholder keys left in s after a partial
// substitution pass, without constructing a full Template.
func Residual(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(s[start+2:], '}')
		if end < 0 {
			break
		}
		end += start + 2
		out = append(out, s[start+2:end])
		i = end + 1
	}
	return out
}
