// Package classify computes, for a single command, the derived artifacts
// spec §4.3 names: which parameters are vectors and what sizes them, which
// are non-const/const pointer candidates, how many return parameters the
// command has, which parameters the wrapped overload hides, and whether a
// singular (length-implicitly-1) variant is derivable.
//
// Grounded on the teacher's CommandParam/Command shape (goarrg-vkm's
// vkspec.go), generalized from the teacher's flat param list — which the
// teacher's narrower vkm build pipeline consumes directly without deriving
// any of this — to the classification spec §4.3 requires for overload
// selection.
package classify

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

// StructMemberLength marks a vector parameter whose len= names a struct
// member path (q->m) rather than a sibling parameter, per spec §4.3a.
const StructMemberLength = -1

// specialPointerTypes are non-const pointer C types the Vulkan API treats
// as opaque input handles by convention rather than as output parameters,
// per spec §4.3b.
var specialPointerTypes = map[string]bool{
	"Display":         true,
	"IDirectFB":       true,
	"wl_display":      true,
	"xcb_connection_t": true,
	"ANativeWindow":   true,
	"AHardwareBuffer": true,
	"CAMetalLayer":    true,
	"_screen_context": true,
	"_screen_window":  true,
}

// Classification holds every artifact spec §4.3 derives for one command.
type Classification struct {
	// VectorLengthIndex maps a vector parameter's index to the index of the
	// parameter that sizes it, or StructMemberLength when the size comes
	// from a struct-member path instead of a sibling parameter.
	VectorLengthIndex map[int]int

	// NonConstPointerIndices and ConstPointerIndices are the indices of
	// non-special-cased pointer parameters of each constness, in
	// declaration order.
	NonConstPointerIndices []int
	ConstPointerIndices    []int

	// SkippedParams are the parameter indices the wrapped overload hides:
	// the owning handle (if any), vector length parameters, and every
	// return-param candidate.
	SkippedParams map[int]bool

	// SingularLengthIndex is the shared length parameter of a two-vector,
	// value-length command eligible for a singular variant, or -1.
	SingularLengthIndex int
}

// ReturnParamCount is the cardinality spec §4.3d names: the number of
// non-const-pointer candidates, which drives overload selection.
func (c Classification) ReturnParamCount() int { return len(c.NonConstPointerIndices) }

// Classify derives a Classification for cmd.
func Classify(cmd *registry.CommandData) Classification {
	byName := map[string]int{}
	for i, p := range cmd.Params {
		byName[p.Name] = i
	}

	c := Classification{
		VectorLengthIndex: map[int]int{},
		SkippedParams:     map[int]bool{},
		SingularLengthIndex: -1,
	}

	for i, p := range cmd.Params {
		if lenIdx, isVector := vectorLength(p.Len, byName, i); isVector {
			c.VectorLengthIndex[i] = lenIdx
		}
	}

	for i, p := range cmd.Params {
		if !p.Type.IsPointer() {
			continue
		}
		if specialPointerTypes[p.Type.Type] {
			continue
		}
		if p.Type.IsConstPointer() {
			c.ConstPointerIndices = append(c.ConstPointerIndices, i)
		} else {
			c.NonConstPointerIndices = append(c.NonConstPointerIndices, i)
		}
	}

	if cmd.Handle != "" && len(cmd.Params) > 0 {
		c.SkippedParams[0] = true
	}
	for _, lenIdx := range c.VectorLengthIndex {
		if lenIdx != StructMemberLength {
			c.SkippedParams[lenIdx] = true
		}
	}
	for _, i := range c.NonConstPointerIndices {
		c.SkippedParams[i] = true
	}

	c.SingularLengthIndex = singularLengthIndex(c, cmd)
	return c
}

// vectorLength reports whether len names an earlier sibling parameter (the
// common case) or a struct-member path q->m (sentinel case), per spec
// §4.3a. A len of "null-terminated" or a bare numeric/LaTeX expression
// names neither, so p is not classified as a vector.
func vectorLength(len string, byName map[string]int, selfIndex int) (lengthIndex int, isVector bool) {
	if len == "" || len == "null-terminated" {
		return 0, false
	}
	if strings.Contains(len, "->") {
		return StructMemberLength, true
	}
	idx, ok := byName[len]
	if !ok || idx >= selfIndex {
		return 0, false
	}
	return idx, true
}

// singularLengthIndex finds a length parameter shared by exactly two vector
// parameters where that length is itself a value (not a pointer), the
// precondition spec §4.3's "Singular variant" paragraph names for deriving
// a length-implicitly-1 overload.
func singularLengthIndex(c Classification, cmd *registry.CommandData) int {
	sharedBy := map[int]int{}
	for _, lenIdx := range c.VectorLengthIndex {
		if lenIdx != StructMemberLength {
			sharedBy[lenIdx]++
		}
	}
	for lenIdx, count := range sharedBy {
		if count == 2 && lenIdx < len(cmd.Params) && cmd.Params[lenIdx].Type.IsValue() {
			return lenIdx
		}
	}
	return -1
}
