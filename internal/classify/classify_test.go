package classify

import (
	"testing"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

func value(t string) registry.TypeInfo  { return registry.TypeInfo{Type: t} }
func constPtr(t string) registry.TypeInfo {
	return registry.TypeInfo{Prefix: "const", Type: t, Postfix: "*"}
}
func ptr(t string) registry.TypeInfo { return registry.TypeInfo{Type: t, Postfix: "*"} }

// createBuffer( device, pCreateInfo, pAllocator, pBuffer ): single non-const
// pointer return, no vectors.
func TestClassify_SingleReturn(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkDevice"] = &registry.HandleData{Name: "VkDevice"}
	cmd := &registry.CommandData{
		Name: "vkCreateBuffer",
		Params: []registry.ParamData{
			{Type: value("VkDevice"), Name: "device"},
			{Type: constPtr("VkBufferCreateInfo"), Name: "pCreateInfo"},
			{Type: constPtr("VkAllocationCallbacks"), Name: "pAllocator"},
			{Type: ptr("VkBuffer"), Name: "pBuffer"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	if cmd.Handle != "VkDevice" {
		t.Fatalf("AssignCommandOwners() left Handle = %q, want VkDevice", cmd.Handle)
	}
	c := Classify(cmd)
	if c.ReturnParamCount() != 1 {
		t.Fatalf("ReturnParamCount() = %d, want 1", c.ReturnParamCount())
	}
	if c.NonConstPointerIndices[0] != 3 {
		t.Errorf("NonConstPointerIndices = %v, want [3]", c.NonConstPointerIndices)
	}
	if !c.SkippedParams[0] || !c.SkippedParams[3] {
		t.Errorf("SkippedParams = %v, want 0 and 3 skipped", c.SkippedParams)
	}
}

// enumeratePhysicalDevices( instance, pCount, pDevices ): one vector return
// co-sized with its length, which is itself also a return parameter.
func TestClassify_EnumeratePattern(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkInstance"] = &registry.HandleData{Name: "VkInstance"}
	cmd := &registry.CommandData{
		Name: "vkEnumeratePhysicalDevices",
		Params: []registry.ParamData{
			{Type: value("VkInstance"), Name: "instance"},
			{Type: ptr("uint32_t"), Name: "pPhysicalDeviceCount"},
			{Type: ptr("VkPhysicalDevice"), Name: "pPhysicalDevices", Len: "pPhysicalDeviceCount"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := Classify(cmd)
	if c.ReturnParamCount() != 2 {
		t.Fatalf("ReturnParamCount() = %d, want 2", c.ReturnParamCount())
	}
	lenIdx, isVector := c.VectorLengthIndex[2]
	if !isVector || lenIdx != 1 {
		t.Errorf("VectorLengthIndex[2] = (%d, %v), want (1, true)", lenIdx, isVector)
	}
}

// A command with two vectors sharing one value-typed length parameter is
// eligible for a singular variant.
func TestClassify_SingularVariant(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkDevice"] = &registry.HandleData{Name: "VkDevice"}
	cmd := &registry.CommandData{
		Name: "vkGetThings",
		Params: []registry.ParamData{
			{Type: value("VkDevice"), Name: "device"},
			{Type: value("uint32_t"), Name: "count"},
			{Type: ptr("VkThing"), Name: "pThings", Len: "count"},
			{Type: ptr("VkOtherThing"), Name: "pOthers", Len: "count"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := Classify(cmd)
	if c.SingularLengthIndex != 1 {
		t.Errorf("SingularLengthIndex = %d, want 1", c.SingularLengthIndex)
	}
}

// When the shared length is itself a pointer (an output count), no singular
// variant is derivable per spec's value-typed-length precondition.
func TestClassify_SingularVariant_RequiresValueLength(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkDevice"] = &registry.HandleData{Name: "VkDevice"}
	cmd := &registry.CommandData{
		Name: "vkGetThings2",
		Params: []registry.ParamData{
			{Type: value("VkDevice"), Name: "device"},
			{Type: ptr("uint32_t"), Name: "pCount"},
			{Type: ptr("VkThing"), Name: "pThings", Len: "pCount"},
			{Type: ptr("VkOtherThing"), Name: "pOthers", Len: "pCount"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := Classify(cmd)
	if c.SingularLengthIndex != -1 {
		t.Errorf("SingularLengthIndex = %d, want -1 (length is a pointer)", c.SingularLengthIndex)
	}
}

// A struct-member length path (q->m) is recorded with the StructMemberLength
// sentinel rather than a sibling parameter index.
func TestClassify_StructMemberLength(t *testing.T) {
	cmd := &registry.CommandData{
		Name: "vkGetStuff",
		Params: []registry.ParamData{
			{Type: constPtr("VkStuffInfo"), Name: "pInfo"},
			{Type: ptr("uint8_t"), Name: "pData", Len: "pInfo->dataSize"},
		},
	}
	c := Classify(cmd)
	if lenIdx := c.VectorLengthIndex[1]; lenIdx != StructMemberLength {
		t.Errorf("VectorLengthIndex[1] = %d, want StructMemberLength (%d)", lenIdx, StructMemberLength)
	}
}

// Special opaque pointer types (platform window handles) never count as a
// return-param candidate even though they're non-const pointers.
func TestClassify_SpecialPointerExcluded(t *testing.T) {
	cmd := &registry.CommandData{
		Name: "vkCreateXcbSurfaceKHR",
		Params: []registry.ParamData{
			{Type: ptr("xcb_connection_t"), Name: "connection"},
			{Type: ptr("VkSurfaceKHR"), Name: "pSurface"},
		},
	}
	c := Classify(cmd)
	if c.ReturnParamCount() != 1 || c.NonConstPointerIndices[0] != 1 {
		t.Errorf("NonConstPointerIndices = %v, want [1] (connection excluded)", c.NonConstPointerIndices)
	}
}

// Zero parameters must not crash and must classify to zero return params.
func TestClassify_ZeroParams(t *testing.T) {
	cmd := &registry.CommandData{Name: "vkSomeVoidCall"}
	c := Classify(cmd)
	if c.ReturnParamCount() != 0 {
		t.Errorf("ReturnParamCount() = %d, want 0", c.ReturnParamCount())
	}
}
