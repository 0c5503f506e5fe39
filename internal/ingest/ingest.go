// Package ingest tree-walks a Vulkan XML registry document and populates an
// internal/registry.Registry, per spec §4.1. It is recursive descent keyed
// on element name: each handler reads the attributes it uses and dispatches
// each child by name, skipping children it does not know. Handlers do not
// reject unexpected attributes and do not check child multiplicity; a
// missing name (or a command's missing <proto><name>) is reported as a
// KindSchema diagnostic.
//
// Grounded on goarrg-vkm/vkspec/xml.go's dispatch-by-root-child-name loop
// (`parsers := map[string]func(xmlParserInterface) any{...}`) and its
// per-type dispatch-by-category loop (`xmlParseTypes`/`xmlParseHandles`),
// generalized from the teacher's three categories (handle, command,
// extension) to the full set spec §4.1 requires (base type, bitmask,
// define, enum forward-declaration, function pointer, handle, include,
// struct, union, plus platforms/tags/features/enums-with-values).
package ingest

import (
	"io"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// Result carries the populated registry plus every non-fatal diagnostic
// collected along the way (soft schema warnings); fatal diagnostics are
// returned as an error instead, per spec §7's "structural errors... are
// fatal; unknown-attribute warnings are not."
type Result struct {
	Registry    *registry.Registry
	Diagnostics specerror.List
}

// Load parses data (the full registry document) into a Registry.
func Load(data []byte) (*Result, error) {
	r := newReader(data)
	reg := registry.New()
	res := &Result{Registry: reg}

	root, _, err := r.nextElement()
	if err != nil {
		return nil, wrapIOErr("reading root element", err)
	}
	if root.Name.Local != "registry" {
		return nil, wrapIOErr("reading root element", specerror.Newf(specerror.KindSchema,
			"unknown document root <%s>, expected <registry>", root.Name.Local))
	}

	var disabledExtensions []string

	for {
		child, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				break
			}
			return nil, wrapIOErr("reading <registry> children", err)
		}
		switch child.Name.Local {
		case "comment":
			text, _ := r.text()
			if strings.HasPrefix(strings.TrimSpace(text), "Copyright") {
				reg.LicenseHeader = text
			}
			if err := r.elementEnd(); err != nil {
				return nil, wrapIOErr("reading <comment>", err)
			}
		case "platforms":
			if err := parsePlatforms(r, reg); err != nil {
				return nil, wrapIOErr("reading <platforms>", err)
			}
		case "tags":
			if err := parseTags(r, reg); err != nil {
				return nil, wrapIOErr("reading <tags>", err)
			}
		case "types":
			diags, err := parseTypes(r, reg)
			if err != nil {
				return nil, wrapIOErr("reading <types>", err)
			}
			res.Diagnostics = append(res.Diagnostics, diags...)
		case "enums":
			diags, err := parseEnumsBlock(r, child, line, reg)
			if err != nil {
				return nil, wrapIOErr("reading <enums>", err)
			}
			res.Diagnostics = append(res.Diagnostics, diags...)
		case "commands":
			diags, err := parseCommands(r, reg)
			if err != nil {
				return nil, wrapIOErr("reading <commands>", err)
			}
			res.Diagnostics = append(res.Diagnostics, diags...)
		case "feature":
			if err := parseFeature(r, child, reg); err != nil {
				return nil, wrapIOErr("reading <feature>", err)
			}
		case "extensions":
			disabled, diags, err := parseExtensions(r, reg)
			if err != nil {
				return nil, wrapIOErr("reading <extensions>", err)
			}
			disabledExtensions = disabled
			res.Diagnostics = append(res.Diagnostics, diags...)
		default:
			if err := r.skip(); err != nil && err != io.EOF {
				return nil, wrapIOErr("skipping <"+child.Name.Local+">", err)
			}
		}
	}
	if res.Diagnostics.Fatal() {
		return nil, res.Diagnostics
	}

	// Second pass: disabled extensions remove everything they introduced,
	// independent of declaration order, per spec §4.1's "Extension
	// disabling" paragraph.
	applyDisabledExtensions(reg, disabledExtensions)

	// Third pass: record each command's owning handle now that every
	// handle and command is in place, so classify/emit never have to guess
	// it from a param list themselves.
	registry.AssignCommandOwners(reg)

	return res, nil
}
