package ingest

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// parseExtensions handles <extensions>, generalized from the teacher's
// xmlParseExtensions (which only tracked Handles/Extends/Types/Commands for
// its own vkm build) to the full Extension shape spec §3 names. Emitted
// enum values only ever need a CppName, never a numeric value (the C++
// wrapper casts through the already-numbered C constant), so an extension's
// <enum extends=...> additions merge into the target EnumData the same way
// a plain <enums><enum> value does. Returns the names of extensions whose
// supported="vulkan" attribute is absent, per spec §4.1's "Extension
// disabling" paragraph.
func parseExtensions(r *reader, reg *registry.Registry) (disabled []string, diags specerror.List, err error) {
	for {
		start, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return disabled, diags, nil
			}
			return disabled, diags, err
		}
		if start.Name.Local != "extension" {
			if err := r.skip(); err != nil {
				return disabled, diags, err
			}
			continue
		}

		name := findAttr("name", start.Attr)
		if name == "" {
			diags = append(diags, specerror.New(specerror.KindSchema, "<extension> missing name").AtLine(line))
			if err := r.elementEnd(); err != nil {
				return disabled, diags, err
			}
			continue
		}

		supportedList := strings.Split(findAttr("supported", start.Attr), ",")
		supported := false
		for _, s := range supportedList {
			if strings.TrimSpace(s) == "vulkan" {
				supported = true
			}
		}
		if !supported {
			disabled = append(disabled, name)
		}

		number, _ := strconv.Atoi(findAttr("number", start.Attr))
		e := &registry.Extension{
			Name:         name,
			Number:       number,
			Platform:     findAttr("platform", start.Attr),
			Supported:    supported,
			PromotedTo:   findAttr("promotedto", start.Attr),
			DeprecatedBy: findAttr("deprecatedby", start.Attr),
			ObsoletedBy:  findAttr("obsoletedby", start.Attr),
			XMLLine:      line,
		}

		for {
			child, _, err := r.nextElement()
			if err != nil {
				if errEOFOf(err) {
					break
				}
				return disabled, diags, err
			}
			if child.Name.Local != "require" {
				if err := r.skip(); err != nil {
					return disabled, diags, err
				}
				continue
			}
			d, err := parseRequireBlock(r, e, nil, reg)
			diags = append(diags, d...)
			if err != nil {
				return disabled, diags, err
			}
		}

		reg.Extensions[name] = e
	}
}

// parseFeature handles <feature name=... number=...>, the core-version
// grammar spec §3's Feature type names, reusing the same <require> grammar
// extensions use.
func parseFeature(r *reader, start startElem, reg *registry.Registry) error {
	name := findAttr("name", start.Attr)
	f := &registry.Feature{
		Name:   name,
		Number: findAttr("number", start.Attr),
	}
	for {
		child, _, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return err
		}
		if child.Name.Local != "require" {
			if err := r.skip(); err != nil {
				return err
			}
			continue
		}
		if _, err := parseRequireBlock(r, nil, f, reg); err != nil {
			return err
		}
	}
	reg.Features[name] = f
	return nil
}

// parseRequireBlock walks one <require> element's children, recording
// type/command names against whichever of ext or feat is non-nil, and
// merging any enum-extending children into the referenced EnumData
// regardless of which one is requiring it.
func parseRequireBlock(r *reader, ext *registry.Extension, feat *registry.Feature, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List
	for {
		t, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return diags, nil
			}
			return diags, err
		}
		switch t.Name.Local {
		case "type":
			name := findAttr("name", t.Attr)
			if name != "" && ext != nil {
				ext.RequiredTypes = append(ext.RequiredTypes, name)
				ext.Requirements = append(ext.Requirements, name)
			}
			if name != "" && feat != nil {
				feat.RequiredTypes = append(feat.RequiredTypes, name)
			}
		case "command":
			name := findAttr("name", t.Attr)
			if name != "" && ext != nil {
				ext.RequiredCmds = append(ext.RequiredCmds, name)
				ext.Requirements = append(ext.Requirements, name)
			}
			if name != "" && feat != nil {
				feat.RequiredCmds = append(feat.RequiredCmds, name)
			}
		case "enum":
			d := applyRequireEnum(t, line, ext, reg)
			diags = append(diags, d...)
		}
		if err := r.elementEnd(); err != nil {
			return diags, err
		}
	}
}

// applyRequireEnum handles one <enum> child of a <require> block. It either
// references an existing free-floating constant (no extends=), or adds a
// new value or alias to an existing named enum (extends=); the numeric
// value/offset/bitpos attributes that accompany the latter don't need
// tracking here since CppName is all emission ever needs.
func applyRequireEnum(t startElem, line int, ext *registry.Extension, reg *registry.Registry) specerror.List {
	var diags specerror.List
	name := findAttr("name", t.Attr)
	extends := findAttr("extends", t.Attr)
	if name == "" {
		diags = append(diags, specerror.New(specerror.KindSchema, "<enum> missing name").AtLine(line))
		return diags
	}
	if extends == "" {
		if ext != nil {
			ext.Requirements = append(ext.Requirements, name)
		}
		return diags
	}

	e, ok := reg.Enums[extends]
	if !ok {
		diags = append(diags, specerror.Newf(specerror.KindReference,
			"<enum extends=%q> refers to an undeclared enum", extends).AtLine(line))
		return diags
	}
	if ext != nil {
		ext.Requirements = append(ext.Requirements, name)
	}

	baseWords := enumBaseWords(extends, reg)

	if alias := findAttr("alias", t.Attr); alias != "" {
		target, found := e.FindValue(alias)
		cppName := target.CppName
		if !found {
			cppName = lexical.EnumValueCppName(baseWords, alias)
		}
		for _, v := range e.Values {
			if v.CppName == cppName {
				return diags
			}
		}
		e.Aliases = append(e.Aliases, registry.EnumAlias{CName: name, Target: alias, CppName: cppName})
		return diags
	}

	_, hasBitpos := findAttrOK("bitpos", t.Attr)
	for _, v := range e.Values {
		if v.CName == name {
			return diags // already present, e.g. promoted from the same extension twice
		}
	}
	e.Values = append(e.Values, registry.EnumValueData{
		CName:     name,
		CppName:   lexical.EnumValueCppName(baseWords, name),
		SingleBit: hasBitpos,
		XMLLine:   line,
	})
	return diags
}

// applyDisabledExtensions removes everything an unsupported extension
// introduced — its own Extension entry, the commands and the struct,
// bitmask and enum types it requires, its handle types unless another
// extension or a feature also requires them, and the enum values and
// aliases it names in its <require> blocks — so later stages never
// see them, per spec §4.1's "Extension disabling" paragraph. Declaration
// order does not matter here since this runs as a second pass over an
// already fully ingested Registry.
func applyDisabledExtensions(reg *registry.Registry, disabled []string) {
	for _, name := range disabled {
		ext, ok := reg.Extensions[name]
		if !ok {
			continue
		}
		for _, cmdName := range ext.RequiredCmds {
			delete(reg.Commands, cmdName)
		}
		for _, typeName := range ext.RequiredTypes {
			if _, ok := reg.Handles[typeName]; ok && !handleUsedElsewhere(reg, typeName, name) {
				delete(reg.Handles, typeName)
			}
			if _, ok := reg.Structures[typeName]; ok {
				delete(reg.Structures, typeName)
			}
			if _, ok := reg.Bitmasks[typeName]; ok {
				delete(reg.Bitmasks, typeName)
			}
			if _, ok := reg.Enums[typeName]; ok {
				delete(reg.Enums, typeName)
			}
		}
		named := map[string]bool{}
		for _, n := range ext.Requirements {
			named[n] = true
		}
		for _, en := range reg.Enums {
			en.Values = slices.DeleteFunc(en.Values, func(v registry.EnumValueData) bool { return named[v.CName] })
			en.Aliases = slices.DeleteFunc(en.Aliases, func(a registry.EnumAlias) bool { return named[a.CName] })
		}
		delete(reg.Extensions, name)
	}
}

// handleUsedElsewhere reports whether any still-enabled extension or a core
// feature also requires typeName, so a type two extensions both declare is
// only dropped once all of its declarers are disabled.
func handleUsedElsewhere(reg *registry.Registry, typeName, excludeExt string) bool {
	for extName, ext := range reg.Extensions {
		if extName == excludeExt {
			continue
		}
		for _, t := range ext.RequiredTypes {
			if t == typeName {
				return true
			}
		}
	}
	for _, f := range reg.Features {
		for _, t := range f.RequiredTypes {
			if t == typeName {
				return true
			}
		}
	}
	return false
}
