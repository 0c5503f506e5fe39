// Package emit renders a validated registry.Registry into C++ source text,
// per spec §4.5: one function per entity category, each built from a
// ${placeholder} template via internal/lexical.Template, with a DFS
// listing/listed walk ensuring every referenced name is emitted before its
// first use.
//
// Grounded on the teacher's header.go (goarrg-vkm/vkspec/header.go), the
// one place in the teacher that assembles C++ text from a registry model,
// generalized from its single bufio.Scanner line-rewrite pass to a
// multi-category, dependency-ordered emission (the teacher never needed
// ordering because it only ever rewrote an existing header line by line).
package emit

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/classify"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/diagnostics"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/overload"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

// cppName strips the registry's raw C identifier down to the bare,
// de-prefixed name every emitted C++ class/enum/using declaration uses, per
// spec §4.5's per-entity rules (all of which name the wrapper type without
// its Vk/VK prefix while still referencing the raw C type for casts and
// static_asserts).
func cppName(raw string) string { return lexical.StripVkPrefix(raw) }

// wrapType renders a raw C type name the way it appears in a C++-facing
// signature: known handles, structures, enums, and bitmasks are rendered
// under their de-prefixed wrapper name, everything else (primitives,
// unrecognized typedefs) passes through unchanged.
func wrapType(reg *registry.Registry, raw string) string {
	switch {
	case reg.Handles[raw] != nil, reg.Structures[raw] != nil, reg.Enums[raw] != nil, reg.Bitmasks[raw] != nil:
		return cppName(raw)
	default:
		return raw
	}
}

// Emitter holds the mutable state spec §5 says is the only mutable state
// during emission: the listing (on-DFS-stack) and listed (already emitted)
// sets, plus the accumulating output buffer.
type Emitter struct {
	Reg     *registry.Registry
	Diag    *diagnostics.Counter
	listing map[string]bool
	listed  map[string]bool
	out     strings.Builder
}

// New returns an Emitter over reg, reporting shape errors and invariant
// diagnostics it encounters mid-emission through diag.
func New(reg *registry.Registry, diag *diagnostics.Counter) *Emitter {
	return &Emitter{
		Reg:     reg,
		Diag:    diag,
		listing: map[string]bool{},
		listed:  map[string]bool{},
	}
}

// String returns everything emitted so far.
func (e *Emitter) String() string { return e.out.String() }

func (e *Emitter) write(s string) { e.out.WriteString(s) }

// ensureEmitted emits name (and transitively everything it depends on)
// exactly once, skipping silently if name is not a known struct, union,
// handle, bitmask, or enum (i.e. it is a primitive or an opaque typedef
// with nothing further to emit), and short-circuiting if name is already
// on the DFS stack — the mechanism spec §4.5/§5 describes for tolerating a
// struct with a pointer-to-self member without infinite recursion.
func (e *Emitter) ensureEmitted(name string) {
	if e.listed[name] || e.listing[name] {
		return
	}
	switch {
	case e.Reg.Structures[name] != nil:
		e.emitStructureOrdered(name)
	case e.Reg.Handles[name] != nil:
		e.emitHandleOrdered(name)
	case e.Reg.Bitmasks[name] != nil:
		e.emitBitmaskOrdered(name)
	case e.Reg.Enums[name] != nil:
		e.emitEnumOrdered(name)
	}
}

func (e *Emitter) emitEnumOrdered(name string) {
	e.listing[name] = true
	e.write(e.renderEnum(e.Reg.Enums[name]))
	delete(e.listing, name)
	e.listed[name] = true
}

func (e *Emitter) emitBitmaskOrdered(name string) {
	e.listing[name] = true
	b := e.Reg.Bitmasks[name]
	if b.Requirements != "" {
		e.ensureEmitted(b.Requirements)
	}
	e.write(e.renderBitmask(b))
	delete(e.listing, name)
	e.listed[name] = true
}

func (e *Emitter) emitStructureOrdered(name string) {
	e.listing[name] = true
	s := e.Reg.Structures[name]
	for _, m := range s.Members {
		e.ensureEmitted(m.Type.Type)
	}
	for _, parent := range s.StructExtends {
		e.ensureEmitted(parent)
	}
	e.write(e.renderStructure(s))
	delete(e.listing, name)
	e.listed[name] = true
}

func (e *Emitter) emitHandleOrdered(name string) {
	e.listing[name] = true
	h := e.Reg.Handles[name]
	for _, parent := range h.Parents {
		e.ensureEmitted(parent)
	}
	for _, cmdName := range commandsOwnedBy(e.Reg, name) {
		cmd := e.Reg.Commands[cmdName]
		if cmd.ReturnType != "" {
			e.ensureEmitted(cmd.ReturnType)
		}
		for _, p := range cmd.Params[minInt(1, len(cmd.Params)):] {
			e.ensureEmitted(p.Type.Type)
		}
	}
	e.write(e.renderHandle(h))
	delete(e.listing, name)
	e.listed[name] = true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// EmitAll runs the full §4.5/§4.6 emission plan in the order the driver
// needs it: base types need no emission text of their own (they pass
// through as C typedefs in the prelude's include of vulkan_core.h), so
// emission starts at enums.
func (e *Emitter) EmitAll() {
	for _, name := range registry.SortedNames(e.Reg.Enums) {
		e.ensureEmitted(name)
	}
	for _, name := range registry.SortedNames(e.Reg.Bitmasks) {
		e.ensureEmitted(name)
	}
	for _, name := range registry.SortedNames(e.Reg.Structures) {
		e.ensureEmitted(name)
	}
	for _, name := range registry.SortedNames(e.Reg.Handles) {
		e.ensureEmitted(name)
	}
	e.write(e.renderContext())
	e.write(e.renderStructureChainTraits())
	e.write(e.renderDynamicDispatch())
	e.write(e.renderStaticDispatch())
}

// commandsOwnedBy returns, in sorted order, the names of every command
// (including aliases) whose first parameter is handleName — or, when
// handleName is "", every command with no parameters or whose first
// parameter is not a handle at all, which spec §8's boundary behavior
// assigns to the top-level handle's command set.
func commandsOwnedBy(reg *registry.Registry, handleName string) []string {
	var names []string
	for _, name := range registry.SortedNames(reg.Commands) {
		c := reg.Commands[name]
		owner := ""
		if len(c.Params) > 0 {
			if _, ok := reg.Handles[c.Params[0].Type.Type]; ok {
				owner = c.Params[0].Type.Type
			}
		}
		if owner == handleName {
			names = append(names, name)
		}
	}
	return names
}

// classifyAndSelect is the glue between the parameter classifier and the
// overload selector that every command-emitting path (handle bodies,
// static dispatch) shares.
func classifyAndSelect(reg *registry.Registry, cmd *registry.CommandData) (classify.Classification, []overload.Overload) {
	c := classify.Classify(cmd)
	return c, overload.Select(cmd, c, reg)
}
