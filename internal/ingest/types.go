package ingest

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// parseTypes handles <types>, dispatching each <type> by its category
// attribute to one of the handlers spec §4.1 names: base type, bitmask,
// define, enum forward-declaration, function pointer, handle, include,
// struct, union. Absence of category means either a requires-based include
// reference or a primitive, both of which are recorded and otherwise
// skipped.
func parseTypes(r *reader, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List
	for {
		start, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return diags, nil
			}
			return diags, err
		}
		if start.Name.Local != "type" {
			if err := r.skip(); err != nil {
				return diags, err
			}
			continue
		}

		category := findAttr("category", start.Attr)
		switch category {
		case "basetype":
			d, err := parseBaseType(r, start, line, reg)
			diags = append(diags, d...)
			if err != nil {
				return diags, err
			}
		case "bitmask":
			d, err := parseBitmask(r, start, line, reg)
			diags = append(diags, d...)
			if err != nil {
				return diags, err
			}
		case "enum":
			// forward declaration only; the values arrive later via a
			// top-level <enums> block that shares this name.
			name := findAttr("name", start.Attr)
			if name != "" {
				if _, ok := reg.Enums[name]; !ok {
					reg.Enums[name] = &registry.EnumData{Name: name, XMLLine: line}
				}
			}
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
		case "funcpointer":
			d, err := parseFuncPointer(r, start, line, reg)
			diags = append(diags, d...)
			if err != nil {
				return diags, err
			}
		case "handle":
			d, err := parseHandle(r, start, line, reg)
			diags = append(diags, d...)
			if err != nil {
				return diags, err
			}
		case "include", "define":
			name := findAttr("name", start.Attr)
			if name == "" {
				name, _ = r.text()
			}
			reg.Defines[name] = category
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
		case "struct", "union":
			d, err := parseStructure(r, start, line, category == "union", reg)
			diags = append(diags, d...)
			if err != nil {
				return diags, err
			}
		default:
			// a bare <type name="uint32_t" requires="..."/> primitive or
			// include reference: recorded as an opaque type, otherwise skipped.
			if name := findAttr("name", start.Attr); name != "" {
				reg.Types[name] = registry.TypeInfo{}
			}
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
		}
	}
}

func parseBaseType(r *reader, start startElem, line int, reg *registry.Registry) (specerror.List, error) {
	var name, underlying string
	for {
		el, _, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return nil, err
		}
		text, _ := r.text()
		switch el.Name.Local {
		case "type":
			underlying = strings.TrimSpace(text)
		case "name":
			name = strings.TrimSpace(text)
		}
		if err := r.elementEnd(); err != nil {
			return nil, err
		}
	}
	if name == "" {
		return nil, nil
	}
	reg.Types[name] = registry.TypeInfo{Type: underlying}
	return nil, nil
}

func parseFuncPointer(r *reader, start startElem, line int, reg *registry.Registry) (specerror.List, error) {
	name := findAttr("name", start.Attr)
	var decl strings.Builder
	for {
		t, err := r.nextToken2()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return nil, err
		}
		switch v := t.(type) {
		case charDataToken:
			decl.WriteString(string(v))
		case nameToken:
			if name == "" {
				name = string(v)
			}
			decl.WriteString(string(v))
		}
	}
	if name != "" {
		reg.FuncPointers[name] = decl.String()
	}
	return nil, nil
}

func parseHandle(r *reader, start startElem, line int, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List

	if alias := findAttr("alias", start.Attr); alias != "" {
		name := findAttr("name", start.Attr)
		if name == "" {
			diags = append(diags, specerror.New(specerror.KindSchema, "<type category=\"handle\"> alias without name").AtLine(line))
			return diags, r.elementEnd()
		}
		reg.Handles[name] = &registry.HandleData{Name: name, Alias: alias, XMLLine: line}
		return diags, r.elementEnd()
	}

	name := findAttr("name", start.Attr)
	parentAttr := findAttr("parent", start.Attr)
	objType := findAttr("objtypeenum", start.Attr)

	var macro string
	for {
		el, _, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return diags, err
		}
		text, _ := r.text()
		switch el.Name.Local {
		case "type":
			macro = strings.TrimSpace(text)
		case "name":
			if name == "" {
				name = strings.TrimSpace(text)
			}
		}
		if err := r.elementEnd(); err != nil {
			return diags, err
		}
	}
	if name == "" {
		diags = append(diags, specerror.New(specerror.KindSchema, "<type category=\"handle\"> missing <name>").AtLine(line))
		return diags, nil
	}

	category := registry.HandleUnknown
	switch macro {
	case "VK_DEFINE_HANDLE":
		category = registry.HandleDispatchable
	case "VK_DEFINE_NON_DISPATCHABLE_HANDLE":
		category = registry.HandleNonDispatchable
	}

	var parents []string
	if parentAttr != "" {
		parents = strings.Split(parentAttr, ",")
	}

	reg.Handles[name] = &registry.HandleData{
		Name:        name,
		Category:    category,
		Parents:     parents,
		ObjTypeEnum: objType,
		XMLLine:     line,
	}
	return diags, nil
}

func parseBitmask(r *reader, start startElem, line int, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List

	if alias := findAttr("alias", start.Attr); alias != "" {
		name := findAttr("name", start.Attr)
		reg.Bitmasks[name] = &registry.BitmaskData{Name: name, Alias: alias, XMLLine: line}
		return diags, r.elementEnd()
	}

	requires := findAttr("requires", start.Attr)
	bitvalues := findAttr("bitvalues", start.Attr)
	if requires == "" {
		requires = bitvalues
	}

	var name, underlying string
	for {
		el, _, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return diags, err
		}
		text, _ := r.text()
		switch el.Name.Local {
		case "type":
			underlying = strings.TrimSpace(text)
		case "name":
			name = strings.TrimSpace(text)
		}
		if err := r.elementEnd(); err != nil {
			return diags, err
		}
	}
	if name == "" {
		diags = append(diags, specerror.New(specerror.KindSchema, "<type category=\"bitmask\"> missing <name>").AtLine(line))
		return diags, nil
	}
	reg.Bitmasks[name] = &registry.BitmaskData{
		Name:         name,
		Requirements: requires,
		Type:         underlying,
		XMLLine:      line,
	}
	return diags, nil
}

// parseStructure handles <type category="struct"|"union">, per the
// name/type grammar of spec §4.1: each <member> is ParamData-shaped text
// interleaved with <type>/<name> children.
func parseStructure(r *reader, start startElem, line int, isUnion bool, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List
	name := findAttr("name", start.Attr)

	if alias := findAttr("alias", start.Attr); alias != "" {
		if existing, ok := reg.Structures[alias]; ok {
			existing.Aliases = append(existing.Aliases, name)
		}
		reg.Structures[name] = &registry.StructureData{Name: name, XMLLine: line}
		return diags, r.elementEnd()
	}

	s := &registry.StructureData{
		Name:           name,
		IsUnion:        isUnion,
		AllowDuplicate: findAttr("allowduplicate", start.Attr) == "true",
		ReturnedOnly:   findAttr("returnedonly", start.Attr) == "true",
		XMLLine:        line,
	}
	if ext := findAttr("structextends", start.Attr); ext != "" {
		s.StructExtends = strings.Split(ext, ",")
	}

	for {
		el, mline, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return diags, err
		}
		switch el.Name.Local {
		case "member":
			m, d := parseMember(r, el, mline)
			diags = append(diags, d...)
			s.Members = append(s.Members, m)
		default:
			if err := r.skip(); err != nil {
				return diags, err
			}
		}
	}

	reg.Structures[name] = s
	return diags, nil
}

func parseMember(r *reader, start startElem, line int) (registry.MemberData, specerror.List) {
	var diags specerror.List
	m := registry.MemberData{}
	m.XMLLine = line
	m.Len = findAttr("len", start.Attr)
	m.Optional = parseOptionalList(findAttr("optional", start.Attr))
	m.NoAutoValidity = findAttr("noautovalidity", start.Attr) == "true"
	m.Selector = findAttr("selector", start.Attr)
	m.Selection = findAttr("selection", start.Attr)
	if v := findAttr("values", start.Attr); v != "" {
		m.Values = strings.Split(v, ",")
	}

	var prefix, postfix strings.Builder
	seenType := false
	for {
		t, err := r.nextToken2()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			break
		}
		switch v := t.(type) {
		case charDataToken:
			text := string(v)
			if !seenType {
				prefix.WriteString(text)
			} else if m.Name == "" {
				// text between </type> and <name>, e.g. " " before a
				// pointer-only member; rare, keep as postfix lead-in.
				postfix.WriteString(text)
			} else {
				applyNameTrailer(&m, text)
			}
		case typeToken:
			m.Type.Type = string(v)
			seenType = true
		case nameToken:
			m.Name = string(v)
		}
	}
	m.Type.Prefix = strings.TrimSpace(prefix.String())
	m.Type.Postfix = lexical.NormalizePointerPostfix(strings.TrimSpace(postfix.String()))
	return m, diags
}

// applyNameTrailer parses the grammar that follows <name> inside a
// <param>/<member>: "[n]" array sizes, ":b" bitfield width, or nothing.
func applyNameTrailer(m *registry.MemberData, text string) {
	text = strings.TrimSpace(text)
	for len(text) > 0 {
		switch text[0] {
		case '[':
			end := strings.IndexByte(text, ']')
			if end < 0 {
				return
			}
			m.ArraySizes = append(m.ArraySizes, text[1:end])
			text = text[end+1:]
		case ':':
			m.BitCount = strings.TrimLeft(text[1:], " ")
			return
		default:
			return
		}
	}
}

func parseOptionalList(attr string) []bool {
	if attr == "" {
		return nil
	}
	parts := strings.Split(attr, ",")
	out := make([]bool, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p) == "true"
	}
	return out
}
