// Package lexical holds the string-level utilities the rest of the
// generator builds on: stripping the Vk/vk/VK prefix triplet, camelCase and
// SCREAMING_SNAKE conversions, vendor tag extraction, and splitting tokens
// off enum/bitmask value names so the cpp-facing identifiers come out
// de-prefixed with the tag kept at the end (spec GLOSSARY "Tag").
//
// Grounded on ardanlabs-ffi-converter/generator/generator.go's toGoName /
// toLowerCamel / toGoEnumName: the same "split on a separator, capitalize
// each part" shape, generalized to Vulkan's specific casing rules (tag
// reordering, prefix-per-category) since the teacher's own toGoName only
// needed to emit Go identifiers, not vulkan.hpp's.
package lexical

import (
	"strings"
	"unicode"
)

// Tags is the set of known vendor/working-group suffixes. The registry also
// declares these in its <tags> element; ingest records those in
// registry.Tags (see registry.Tag), but casing here always uses this static
// list, so it stays stable for fixtures that omit <tags>.
var Tags = []string{
	"KHR", "EXT", "AMD", "AMDX", "ARM", "FSL", "BRCM", "NXP", "NV",
	"NVX", "VIV", "VSI", "KDAB", "ANDROID", "CHROMIUM", "FUCHSIA",
	"GGP", "GOOGLE", "QCOM", "LUNARG", "SAMSUNG", "SEC", "TIZEN",
	"RENDERDOC", "NN", "MVK", "IMG", "INTEL", "MESA", "POCO", "VALVE",
	"JUICE", "HUAWEI", "OHOS",
}

// StripVkPrefix removes a leading Vk / vk / VK (case matched to the
// registry's C-prefix triplet) from a C identifier.
func StripVkPrefix(s string) string {
	for _, p := range []string{"VK_", "Vk", "vk", "VK"} {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}
	return s
}

// ExtractTag splits a trailing vendor tag off a PascalCase or
// SCREAMING_SNAKE identifier, returning the base and the tag (tag is ""
// when none of known matches). known may be nil, in which case the
// package-level default Tags list is used.
func ExtractTag(name string, known []string) (base, tag string) {
	if known == nil {
		known = Tags
	}
	for _, t := range known {
		if strings.HasSuffix(name, t) {
			rest := name[:len(name)-len(t)]
			if rest == "" {
				continue
			}
			// a SCREAMING_SNAKE identifier: the tag must be its own token,
			// i.e. rest ends in '_' or the tag sits right after a word
			// boundary for PascalCase identifiers.
			if strings.Contains(name, "_") {
				if strings.HasSuffix(rest, "_") {
					return strings.TrimSuffix(rest, "_"), t
				}
				continue
			}
			if rest != "" && unicode.IsUpper(rune(rest[len(rest)-1])) {
				return rest, t
			}
		}
	}
	return name, ""
}

// ToUpperCamel converts a SCREAMING_SNAKE_CASE or snake_case token sequence
// to UpperCamelCase, e.g. "BUFFER_CREATE_INFO" -> "BufferCreateInfo".
func ToUpperCamel(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalizeWord(p))
	}
	return b.String()
}

// ToLowerCamel converts like ToUpperCamel but lower-cases the first rune of
// the result, e.g. "CREATE_BUFFER" -> "createBuffer".
func ToLowerCamel(s string) string {
	up := ToUpperCamel(s)
	if up == "" {
		return up
	}
	r := []rune(up)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// splitWords breaks an identifier into case/underscore-delimited words,
// preserving runs of digits and runs of uppercase letters as single words
// (so "R8G8B8" splits into "R8","G8","B8" the way the real vulkan.hpp
// generator's tokenizer does for component-encoded format names).
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '_' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			cur.WriteRune(r)
		case unicode.IsDigit(r) && i > 0 && unicode.IsLetter(runes[i-1]):
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	if isAllUpperOrDigits(w) && len(w) > 1 {
		// an acronym-like run ("KHR", "R8") keeps its first letter
		// capitalized and lower-cases the remainder, matching the real
		// generator's treatment of enum value tails such as eR8G8B8Unorm.
		return string(unicode.ToUpper(rune(w[0]))) + strings.ToLower(w[1:])
	}
	r := []rune(strings.ToLower(w))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isAllUpperOrDigits(w string) bool {
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// StripCommonPrefix removes the longest shared leading-word run of base
// from value, word-by-word, so an enum value's cpp name can be derived
// relative to its enclosing enum's own de-prefixed name. Both arguments are
// expected already split into SCREAMING_SNAKE words (callers pass the raw
// "_"-joined token sequence).
func StripCommonPrefix(base, value []string) []string {
	i := 0
	for i < len(base) && i < len(value) && strings.EqualFold(base[i], value[i]) {
		i++
	}
	return value[i:]
}

// EnumValueCppName derives a value's C++ name from its C name and the
// enclosing enum's de-prefixed, de-tagged base name, per spec §4.5's "enum
// class Name ... to_string" shape: "VK_FORMAT_UNDEFINED" in enum "VkFormat"
// becomes "eUndefined"; bitmask bits follow the identical rule ("e" prefix,
// PascalCase remainder).
func EnumValueCppName(enumBaseWords []string, cName string) string {
	trimmed := strings.TrimPrefix(cName, "VK_")
	valWords := strings.Split(trimmed, "_")
	rest := StripCommonPrefix(upperWords(enumBaseWords), valWords)
	if len(rest) == 0 {
		rest = valWords
	}
	// a trailing known tag is kept as its own un-lowered word (eFooKHR, not
	// eFooKhr), matching vulkan.hpp's convention of preserving the tag case.
	var tag string
	if len(rest) > 1 {
		last := rest[len(rest)-1]
		for _, t := range Tags {
			if strings.EqualFold(last, t) {
				tag = t
				rest = rest[:len(rest)-1]
				break
			}
		}
	}
	body := ToUpperCamel(strings.Join(rest, "_"))
	return "e" + body + tag
}

func upperWords(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}

// NormalizePointerPostfix inserts a space before every bare '*' in a type
// postfix string so "const T**" reads as "const T * *", per spec §4.1's
// name/type grammar note on pointer-star normalization.
func NormalizePointerPostfix(postfix string) string {
	var b strings.Builder
	for i, r := range postfix {
		if r == '*' && i > 0 && postfix[i-1] != ' ' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
