// Package xref cross-reference-validates an ingested registry.Registry, per
// spec §4.2: every name-keyed reference must resolve, and a handful of
// domain invariants (sType uniqueness, ObjectType<->handle correspondence,
// union selector/selection coverage) must hold.
//
// Grounded on jacoelho-xsd/internal/resolver/validation.go's shape: one
// Validate entrypoint dispatching to many small validateX(reg) specerror.List
// helpers, each walking registry.SortedNames(...) rather than an unordered
// map range, so two runs over the same input always report diagnostics in
// the same order (spec §8's idempotence property extends to diagnostics,
// not just emitted bytes).
package xref

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// primitiveTypes are the C scalar names a base type or parameter may bottom
// out at without the registry ever declaring them, per the Vulkan registry
// convention of using <types requires="vk_platform"> for these rather than
// a <type category="basetype"> entry.
var primitiveTypes = map[string]bool{
	"void": true, "char": true, "float": true, "double": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"size_t": true, "int": true,
}

// Validate runs every invariant spec §4.2 names and returns the combined
// diagnostic list. All returned diagnostics are fatal (KindReference or
// KindInvariant); callers should treat a non-empty result as a hard ingest
// failure.
func Validate(reg *registry.Registry) specerror.List {
	var diags specerror.List
	diags = append(diags, validateBaseTypes(reg)...)
	diags = append(diags, validateBitmasks(reg)...)
	diags = append(diags, validateCommands(reg)...)
	diags = append(diags, validateExtensions(reg)...)
	diags = append(diags, validateHandles(reg)...)
	diags = append(diags, validateStructures(reg)...)
	diags = append(diags, validateStructureTypeUsage(reg)...)
	diags = append(diags, validateEnumAliases(reg)...)
	return diags
}

// knownType reports whether name resolves to something the registry (or C
// itself) declares.
func knownType(reg *registry.Registry, name string) bool {
	if primitiveTypes[name] {
		return true
	}
	if _, ok := reg.Types[name]; ok {
		return true
	}
	if _, ok := reg.Handles[name]; ok {
		return true
	}
	if _, ok := reg.Structures[name]; ok {
		return true
	}
	if _, ok := reg.Enums[name]; ok {
		return true
	}
	if _, ok := reg.Bitmasks[name]; ok {
		return true
	}
	if _, ok := reg.FuncPointers[name]; ok {
		return true
	}
	if _, ok := reg.Defines[name]; ok {
		return true
	}
	return false
}

func validateBaseTypes(reg *registry.Registry) specerror.List {
	var diags specerror.List
	for _, name := range registry.SortedNames(reg.Types) {
		t := reg.Types[name]
		if t.Type == "" {
			continue // opaque forward declaration, e.g. a raw platform handle typedef
		}
		if !knownType(reg, t.Type) {
			diags = append(diags, specerror.Newf(specerror.KindReference,
				"base type %s refers to unknown underlying type %s", name, t.Type))
		}
	}
	return diags
}

func validateBitmasks(reg *registry.Registry) specerror.List {
	var diags specerror.List
	for _, name := range registry.SortedNames(reg.Bitmasks) {
		b := reg.Bitmasks[name]
		if b.Alias != "" {
			if _, ok := reg.Bitmasks[b.Alias]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"bitmask %s aliases unknown bitmask %s", name, b.Alias).AtLine(b.XMLLine))
			}
			continue
		}
		if b.Requirements == "" {
			continue // a Flags type with no FlagBits enum yet (reserved-for-future), valid per schema
		}
		if _, ok := reg.Enums[b.Requirements]; !ok {
			diags = append(diags, specerror.Newf(specerror.KindReference,
				"bitmask %s requires unknown enum %s", name, b.Requirements).AtLine(b.XMLLine))
		}
	}
	return diags
}

func validateCommands(reg *registry.Registry) specerror.List {
	var diags specerror.List
	result, hasResult := reg.Enums["VkResult"]

	for _, name := range registry.SortedNames(reg.Commands) {
		c := reg.Commands[name]
		if c.Alias != "" {
			if _, ok := reg.Commands[c.Alias]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"command %s aliases unknown command %s", name, c.Alias).AtLine(c.XMLLine))
			}
			continue
		}

		if c.ReturnType != "" && c.ReturnType != "void" && !knownType(reg, c.ReturnType) {
			diags = append(diags, specerror.Newf(specerror.KindReference,
				"command %s returns unknown type %s", name, c.ReturnType).AtLine(c.XMLLine))
		}
		for _, p := range c.Params {
			if !knownType(reg, p.Type.Type) {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"command %s parameter %s has unknown type %s", name, p.Name, p.Type.Type).AtLine(p.XMLLine))
			}
		}

		if !hasResult {
			continue
		}
		for _, code := range append(append([]string{}, c.SuccessCodes...), c.ErrorCodes...) {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			if _, ok := result.FindValue(code); !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"command %s names unknown VkResult value %s", name, code).AtLine(c.XMLLine))
			}
		}
	}
	return diags
}

func validateExtensions(reg *registry.Registry) specerror.List {
	var diags specerror.List
	for _, name := range registry.SortedNames(reg.Extensions) {
		e := reg.Extensions[name]
		for label, target := range map[string]string{
			"promotedTo":   e.PromotedTo,
			"deprecatedBy": e.DeprecatedBy,
			"obsoletedBy":  e.ObsoletedBy,
		} {
			if target == "" {
				continue
			}
			if resolvesToExtensionOrFeature(reg, target) {
				continue
			}
			diags = append(diags, specerror.Newf(specerror.KindReference,
				"extension %s %s=%q does not resolve to a known extension or feature", name, label, target).AtLine(e.XMLLine))
		}
	}
	return diags
}

// resolvesToExtensionOrFeature handles both forms the registry uses for
// this attribute: a bare extension/feature name, or (for multi-target
// deprecatedBy) a comma-separated list of such names.
func resolvesToExtensionOrFeature(reg *registry.Registry, target string) bool {
	for _, t := range strings.Split(target, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := reg.Extensions[t]; ok {
			continue
		}
		if _, ok := reg.Features[t]; ok {
			continue
		}
		return false
	}
	return true
}

func validateHandles(reg *registry.Registry) specerror.List {
	var diags specerror.List
	objType, hasObjType := reg.Enums["VkObjectType"]

	for _, name := range registry.SortedNames(reg.Handles) {
		h := reg.Handles[name]
		if h.Alias != "" {
			if _, ok := reg.Handles[h.Alias]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"handle %s aliases unknown handle %s", name, h.Alias).AtLine(h.XMLLine))
			}
			continue
		}
		for _, parent := range h.Parents {
			if _, ok := reg.Handles[parent]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"handle %s names unknown parent handle %s", name, parent).AtLine(h.XMLLine))
			}
		}
		if h.ObjTypeEnum != "" && hasObjType {
			if _, ok := objType.FindValue(h.ObjTypeEnum); !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"handle %s objtypeenum %s is not a VkObjectType value", name, h.ObjTypeEnum).AtLine(h.XMLLine))
			}
		}
	}

	if !hasObjType {
		return diags
	}
	handleByObjType := map[string]string{}
	for _, name := range registry.SortedNames(reg.Handles) {
		if h := reg.Handles[name]; h.ObjTypeEnum != "" {
			handleByObjType[h.ObjTypeEnum] = name
		}
	}
	for _, v := range objType.Values {
		if strings.Contains(v.CName, "UNKNOWN") || strings.Contains(v.CName, "MAX_ENUM") {
			continue
		}
		if _, ok := handleByObjType[v.CName]; !ok {
			diags = append(diags, specerror.Newf(specerror.KindInvariant,
				"VkObjectType value %s names no handle", v.CName).AtLine(v.XMLLine))
		}
	}
	return diags
}

func validateStructures(reg *registry.Registry) specerror.List {
	var diags specerror.List
	for _, name := range registry.SortedNames(reg.Structures) {
		s := reg.Structures[name]
		for _, ext := range s.StructExtends {
			if _, ok := reg.Structures[ext]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"struct %s structextends unknown struct %s", name, ext).AtLine(s.XMLLine))
			}
		}
		for _, m := range s.Members {
			if m.Selector == "" {
				continue
			}
			field, ok := s.FindMember(m.Selector)
			if !ok {
				diags = append(diags, specerror.Newf(specerror.KindReference,
					"struct %s member %s selector %s names no sibling member", name, m.Name, m.Selector).AtLine(m.XMLLine))
				continue
			}
			if _, ok := reg.Enums[field.Type.Type]; !ok {
				diags = append(diags, specerror.Newf(specerror.KindInvariant,
					"struct %s selector field %s is not enum-typed", name, field.Name).AtLine(m.XMLLine))
				continue
			}
			union, ok := reg.Structures[m.Type.Type]
			if !ok || !union.IsUnion {
				continue
			}
			for _, arm := range union.Members {
				if arm.Selection == "" {
					diags = append(diags, specerror.Newf(specerror.KindInvariant,
						"union %s member %s has no selection value for discriminator %s", union.Name, arm.Name, field.Type.Type).AtLine(arm.XMLLine))
				}
			}
		}
	}
	return diags
}

// validateStructureTypeUsage enforces that every VkStructureType value is
// claimed by at most one struct's sType member, per spec §4.2's "used by
// exactly one struct" invariant (values no struct ever claims are a
// forward-reserved slot, not a violation — only collisions are fatal).
func validateStructureTypeUsage(reg *registry.Registry) specerror.List {
	var diags specerror.List
	claimedBy := map[string]string{}
	for _, name := range registry.SortedNames(reg.Structures) {
		s := reg.Structures[name]
		m, ok := s.FindMember("sType")
		if !ok || len(m.Values) == 0 {
			continue
		}
		for _, v := range m.Values {
			v = strings.TrimSpace(v)
			if v == "" || strings.Contains(v, "RESERVED") {
				continue
			}
			if owner, already := claimedBy[v]; already {
				diags = append(diags, specerror.Newf(specerror.KindInvariant,
					"VkStructureType value %s is claimed by both %s and %s", v, owner, name).AtLine(s.XMLLine))
				continue
			}
			claimedBy[v] = name
		}
	}
	return diags
}

func validateEnumAliases(reg *registry.Registry) specerror.List {
	var diags specerror.List
	for _, name := range registry.SortedNames(reg.Enums) {
		e := reg.Enums[name]
		for _, a := range e.Aliases {
			if _, ok := e.FindValue(a.Target); ok {
				continue
			}
			if targetIsAlias(e, a.Target) {
				continue
			}
			diags = append(diags, specerror.Newf(specerror.KindReference,
				"enum %s alias %s targets unknown value %s", name, a.CName, a.Target))
		}
	}
	return diags
}

func targetIsAlias(e *registry.EnumData, target string) bool {
	for _, a := range e.Aliases {
		if a.CName == target {
			return true
		}
	}
	return false
}
