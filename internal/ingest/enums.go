package ingest

import (
	"encoding/xml"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// parseEnumsBlock handles one top-level <enums> element. A block with no
// type= attribute (the "API Constants" block) holds free-floating literal
// constants rather than a named enum, per spec §3's "in addition: a set of
// enum constants" note on Registry.
func parseEnumsBlock(r *reader, start startElem, line int, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List

	name := findAttr("name", start.Attr)
	kind := findAttr("type", start.Attr)

	if kind == "" {
		for {
			el, eline, err := r.nextElement()
			if err != nil {
				if errEOFOf(err) {
					return diags, nil
				}
				return diags, err
			}
			if el.Name.Local != "enum" {
				if err := r.skip(); err != nil {
					return diags, err
				}
				continue
			}
			cname := findAttr("name", el.Attr)
			value := findAttr("value", el.Attr)
			alias := findAttr("alias", el.Attr)
			if alias != "" {
				if v, ok := reg.Constants[alias]; ok {
					value = v
				}
			}
			if cname != "" {
				reg.Constants[cname] = value
			}
			_ = eline
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
		}
	}

	e, ok := reg.Enums[name]
	if !ok {
		e = &registry.EnumData{Name: name, XMLLine: line}
		reg.Enums[name] = e
	}
	e.IsBitmask = kind == "bitmask"

	baseWords := enumBaseWords(name, reg)

	for {
		el, eline, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return diags, nil
			}
			return diags, err
		}
		if el.Name.Local != "enum" {
			if err := r.skip(); err != nil {
				return diags, err
			}
			continue
		}

		cname := findAttr("name", el.Attr)
		if cname == "" {
			diags = append(diags, specerror.New(specerror.KindSchema, "<enum> missing name").AtLine(eline))
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
			continue
		}

		if alias := findAttr("alias", el.Attr); alias != "" {
			target, _ := e.FindValue(alias)
			cppName := target.CppName
			if cppName == "" {
				cppName = lexical.EnumValueCppName(baseWords, alias)
			}
			dedupeAlias := false
			for _, v := range e.Values {
				if v.CppName == cppName {
					dedupeAlias = true
					break
				}
			}
			if !dedupeAlias {
				e.Aliases = append(e.Aliases, registry.EnumAlias{CName: cname, Target: alias, CppName: cppName})
			}
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
			continue
		}

		_, hasBitpos := findAttrOK("bitpos", el.Attr)
		cpp := lexical.EnumValueCppName(baseWords, cname)
		e.Values = append(e.Values, registry.EnumValueData{
			CName:     cname,
			CppName:   cpp,
			SingleBit: hasBitpos,
			XMLLine:   eline,
		})

		if err := r.elementEnd(); err != nil {
			return diags, err
		}
	}
}

func findAttrOK(name string, attrs []xml.Attr) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// enumBaseWords derives the SCREAMING_SNAKE word sequence an enum's values
// are expected to share a prefix with, e.g. "VkBufferCreateFlagBits" ->
// ["BUFFER","CREATE"] (dropping the trailing "FLAG","BITS" words, which the
// values themselves spell "_BIT" rather than "_FLAG_BITS").
func enumBaseWords(enumName string, reg *registry.Registry) []string {
	_ = reg
	base := lexical.StripVkPrefix(enumName)
	words := splitPascal(base)
	for len(words) > 0 {
		last := words[len(words)-1]
		if last == "FLAG" || last == "BITS" || last == "FLAGS" {
			words = words[:len(words)-1]
			continue
		}
		break
	}
	return words
}

func splitPascal(s string) []string {
	var words []string
	var cur []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i > 0 && c >= 'A' && c <= 'Z' && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
			words = append(words, string(cur))
			cur = nil
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	for i, w := range words {
		words[i] = toUpper(w)
	}
	return words
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
