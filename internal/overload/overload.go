// Package overload implements the decision procedure spec §4.4 names: given
// a command and its classify.Classification, decide which coherent set of
// C++ overloads the emitter should produce for it.
//
// There is no teacher precedent for this decision tree — goarrg-vkm's vkm
// build never wraps commands in alternate-shaped overloads, it emits one
// function per command — so this package is grounded on the teacher's
// general "small struct describing what to emit, switch on a discriminant"
// style (CommandParam/Command itself) rather than on a specific teacher
// algorithm, generalized to the tagged-variant shape a real vulkan.hpp
// generator needs.
package overload

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/classify"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

// Kind names one of the overload shapes spec §4.4 enumerates.
type Kind string

const (
	KindStandard            Kind = "standard"
	KindEnhanced            Kind = "enhanced"
	KindEnhancedVector      Kind = "enhanced-vector"
	KindSingular            Kind = "singular"
	KindUniqueRAII          Kind = "unique"
	KindSingularUnique      Kind = "singular-unique"
	KindWithAllocator       Kind = "with-allocator"
	KindChained             Kind = "chained"
	KindVectorChained       Kind = "vector-chained"
	KindEnumeratePair       Kind = "enumerate-pair"
	KindEnhancedDeprecated  Kind = "enhanced-deprecated"
	KindDeprecatedTwoVector Kind = "deprecated-two-vector"
)

// Overload is one emittable shape for a command: which kind, which
// parameters it hides from the wrapped signature, and the handful of
// cross-cutting modifiers (singular length, allocator template parameter,
// structure-chain templating, macro-gating) the emitter needs to render it.
type Overload struct {
	Kind Kind

	// Skip lists the parameter indices this particular overload hides; it
	// starts from the classifier's default skip set and may narrow it (a
	// standard overload hides nothing; every enhanced-family shape hides at
	// least the classifier's default set).
	Skip map[int]bool

	// SingularIndex is the shared vector-length parameter index this
	// overload treats as implicitly 1, or -1.
	SingularIndex int

	WithAllocator bool
	Chained       bool

	// MacroGated marks a standard overload that only exists when enhanced
	// mode is compiled out (VULKAN_HPP_DISABLE_ENHANCED_MODE), per spec
	// §4.4's "(macro-gated)" annotation on the 0-return-param/no-vector
	// case.
	MacroGated bool
}

// Select runs the decision procedure spec §4.4 describes over cmd and its
// classification, returning the overloads to emit.
func Select(cmd *registry.CommandData, c classify.Classification, reg *registry.Registry) []Overload {
	switch c.ReturnParamCount() {
	case 0:
		return selectZeroReturn(cmd, c)
	case 1:
		return selectOneReturn(cmd, c, reg)
	case 2:
		return selectTwoReturn(cmd, c, reg)
	case 3:
		return selectThreeReturn(cmd, c)
	default:
		// Never encountered a function with this many return-param
		// candidates in the wild; the caller reports this as the
		// non-fatal shape error spec §7/§9 describes ("never encountered
		// a function like X") and skips the command.
		return nil
	}
}

func hasVectors(c classify.Classification) bool { return len(c.VectorLengthIndex) > 0 }

func isResultReturning(cmd *registry.CommandData) bool {
	return cmd.ReturnType == "Result" || cmd.ReturnType == "VkResult"
}

func selectZeroReturn(cmd *registry.CommandData, c classify.Classification) []Overload {
	if !hasVectors(c) && len(c.ConstPointerIndices) == 0 {
		if isResultReturning(cmd) {
			return []Overload{
				{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1, MacroGated: true},
				{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
			}
		}
		return []Overload{{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1}}
	}
	return []Overload{
		{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
		{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
	}
}

func returnParamType(cmd *registry.CommandData, c classify.Classification, which int) string {
	if which >= len(c.NonConstPointerIndices) {
		return ""
	}
	return cmd.Params[c.NonConstPointerIndices[which]].Type.Type
}

func selectOneReturn(cmd *registry.CommandData, c classify.Classification, reg *registry.Registry) []Overload {
	retIdx := c.NonConstPointerIndices[0]
	retType := returnParamType(cmd, c, 0)
	_, isVector := c.VectorLengthIndex[retIdx]

	if _, isHandle := reg.Handles[retType]; isHandle {
		switch {
		case !isVector && isResultReturning(cmd):
			return []Overload{
				{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
				{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
				{Kind: KindUniqueRAII, Skip: c.SkippedParams, SingularIndex: -1},
			}
		case !isVector && strings.HasPrefix(cmd.Name, "Get") && cmd.ReturnType == "void":
			return []Overload{
				{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
				{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
			}
		case isVector && c.SingularLengthIndex >= 0 && twoCoSizedVectors(c, retIdx):
			return []Overload{
				{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
				{Kind: KindEnhancedVector, Skip: c.SkippedParams, SingularIndex: -1},
				{Kind: KindSingular, Skip: c.SkippedParams, SingularIndex: c.SingularLengthIndex},
				{Kind: KindUniqueRAII, Skip: c.SkippedParams, SingularIndex: -1, WithAllocator: true},
				{Kind: KindSingularUnique, Skip: c.SkippedParams, SingularIndex: c.SingularLengthIndex},
				{Kind: KindWithAllocator, Skip: c.SkippedParams, SingularIndex: -1, WithAllocator: true},
			}
		case isVector && c.VectorLengthIndex[retIdx] == classify.StructMemberLength:
			return []Overload{
				{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
				{Kind: KindEnhancedVector, Skip: c.SkippedParams, SingularIndex: -1},
				{Kind: KindUniqueRAII, Skip: c.SkippedParams, SingularIndex: -1},
				{Kind: KindWithAllocator, Skip: c.SkippedParams, SingularIndex: -1, WithAllocator: true},
			}
		}
	}

	if isStructureChainAnchor(reg, retType) {
		return []Overload{
			{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
			{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindChained, Skip: c.SkippedParams, SingularIndex: -1, Chained: true},
		}
	}

	switch {
	case !isVector && (isResultReturning(cmd) || cmd.ReturnType == "void"):
		return []Overload{
			{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
			{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
		}
	case isVector && retType == "void" && c.SingularLengthIndex >= 0:
		return []Overload{
			{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
			{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindSingular, Skip: c.SkippedParams, SingularIndex: c.SingularLengthIndex},
		}
	}

	return []Overload{
		{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
		{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
	}
}

// twoCoSizedVectors reports whether retIdx is one of exactly two vector
// parameters that share classification's singular length index.
func twoCoSizedVectors(c classify.Classification, retIdx int) bool {
	count := 0
	retShares := false
	for vecIdx, lenIdx := range c.VectorLengthIndex {
		if lenIdx == c.SingularLengthIndex {
			count++
			if vecIdx == retIdx {
				retShares = true
			}
		}
	}
	return count == 2 && retShares
}

func isStructureChainAnchor(reg *registry.Registry, typeName string) bool {
	s, ok := reg.Structures[typeName]
	if !ok {
		return false
	}
	_, hasPNext := s.FindMember("pNext")
	return hasPNext
}

func selectTwoReturn(cmd *registry.CommandData, c classify.Classification, reg *registry.Registry) []Overload {
	second := returnParamType(cmd, c, 1)
	if isStructureChainAnchor(reg, second) {
		return []Overload{
			{Kind: KindVectorChained, Skip: c.SkippedParams, SingularIndex: -1, Chained: true},
		}
	}

	vectorReturns := 0
	sizeAlsoReturned := false
	for _, idx := range c.NonConstPointerIndices {
		if _, ok := c.VectorLengthIndex[idx]; ok {
			vectorReturns++
		}
	}
	for _, idx := range c.NonConstPointerIndices {
		if lenIdx, isLenOfSomeVector := findVectorSizedBy(c, idx); isLenOfSomeVector {
			_ = lenIdx
			sizeAlsoReturned = true
		}
	}
	if vectorReturns == 1 && sizeAlsoReturned {
		return []Overload{
			{Kind: KindEnumeratePair, Skip: c.SkippedParams, SingularIndex: -1},
		}
	}

	firstIsVector := false
	if len(c.NonConstPointerIndices) > 0 {
		_, firstIsVector = c.VectorLengthIndex[c.NonConstPointerIndices[0]]
	}
	if firstIsVector {
		return []Overload{
			{Kind: KindEnhancedDeprecated, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindWithAllocator, Skip: c.SkippedParams, SingularIndex: -1, WithAllocator: true},
		}
	}

	return []Overload{
		{Kind: KindStandard, Skip: map[int]bool{}, SingularIndex: -1},
		{Kind: KindEnhanced, Skip: c.SkippedParams, SingularIndex: -1},
	}
}

func findVectorSizedBy(c classify.Classification, paramIdx int) (int, bool) {
	for _, lenIdx := range c.VectorLengthIndex {
		if lenIdx == paramIdx {
			return paramIdx, true
		}
	}
	return 0, false
}

func selectThreeReturn(cmd *registry.CommandData, c classify.Classification) []Overload {
	sharedLen := c.SingularLengthIndex >= 0
	sizeIsReturn := false
	for _, idx := range c.NonConstPointerIndices {
		if idx == c.SingularLengthIndex {
			sizeIsReturn = true
		}
	}
	if sharedLen && sizeIsReturn {
		return []Overload{
			{Kind: KindDeprecatedTwoVector, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindEnhancedVector, Skip: c.SkippedParams, SingularIndex: -1},
			{Kind: KindWithAllocator, Skip: c.SkippedParams, SingularIndex: -1, WithAllocator: true},
		}
	}
	return nil
}
