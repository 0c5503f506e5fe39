package overload

import (
	"testing"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/classify"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

func value(t string) registry.TypeInfo { return registry.TypeInfo{Type: t} }
func constPtr(t string) registry.TypeInfo {
	return registry.TypeInfo{Prefix: "const", Type: t, Postfix: "*"}
}
func ptr(t string) registry.TypeInfo { return registry.TypeInfo{Type: t, Postfix: "*"} }

func hasKind(overloads []Overload, k Kind) bool {
	for _, o := range overloads {
		if o.Kind == k {
			return true
		}
	}
	return false
}

// createBuffer: one non-const pointer returning a handle, Result-returning
// -> standard, enhanced, and the RAII unique-handle overload.
func TestSelect_HandleCreate(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkDevice"] = &registry.HandleData{Name: "VkDevice"}
	reg.Handles["VkBuffer"] = &registry.HandleData{Name: "VkBuffer"}
	cmd := &registry.CommandData{
		Name:       "vkCreateBuffer",
		ReturnType: "VkResult",
		Params: []registry.ParamData{
			{Type: value("VkDevice"), Name: "device"},
			{Type: constPtr("VkBufferCreateInfo"), Name: "pCreateInfo"},
			{Type: constPtr("VkAllocationCallbacks"), Name: "pAllocator"},
			{Type: ptr("VkBuffer"), Name: "pBuffer"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := classify.Classify(cmd)
	overloads := Select(cmd, c, reg)
	for _, k := range []Kind{KindStandard, KindEnhanced, KindUniqueRAII} {
		if !hasKind(overloads, k) {
			t.Errorf("Select() missing kind %s in %v", k, overloads)
		}
	}
}

// A command with no return-param candidates and no vectors, returning
// Result, gets the macro-gated standard overload plus enhanced (which
// throws instead of returning Result).
func TestSelect_ZeroReturnResult(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkQueue"] = &registry.HandleData{Name: "VkQueue"}
	cmd := &registry.CommandData{
		Name:       "vkQueueWaitIdle",
		ReturnType: "VkResult",
		Params: []registry.ParamData{
			{Type: value("VkQueue"), Name: "queue"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := classify.Classify(cmd)
	overloads := Select(cmd, c, reg)
	if !hasKind(overloads, KindStandard) || !hasKind(overloads, KindEnhanced) {
		t.Errorf("Select() = %v, want standard+enhanced", overloads)
	}
}

// enumeratePhysicalDevices-shaped command (one vector return, length also
// returned) selects the enumerate-pair overload.
func TestSelect_EnumeratePair(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkInstance"] = &registry.HandleData{Name: "VkInstance"}
	reg.Handles["VkPhysicalDevice"] = &registry.HandleData{Name: "VkPhysicalDevice"}
	cmd := &registry.CommandData{
		Name:       "vkEnumeratePhysicalDevices",
		ReturnType: "VkResult",
		Params: []registry.ParamData{
			{Type: value("VkInstance"), Name: "instance"},
			{Type: ptr("uint32_t"), Name: "pPhysicalDeviceCount"},
			{Type: ptr("VkPhysicalDevice"), Name: "pPhysicalDevices", Len: "pPhysicalDeviceCount"},
		},
	}
	reg.Commands[cmd.Name] = cmd
	registry.AssignCommandOwners(reg)
	c := classify.Classify(cmd)
	overloads := Select(cmd, c, reg)
	if !hasKind(overloads, KindEnumeratePair) {
		t.Errorf("Select() = %v, want enumerate-pair", overloads)
	}
}

// A command with more than three return-param candidates yields no
// overloads; the emitter reports this as a non-fatal shape error rather
// than crashing or inventing a fallback.
func TestSelect_TooManyReturnsYieldsNil(t *testing.T) {
	cmd := &registry.CommandData{
		Name: "vkSomeUnprecedentedCall",
		Params: []registry.ParamData{
			{Type: ptr("uint32_t"), Name: "a"},
			{Type: ptr("uint32_t"), Name: "b"},
			{Type: ptr("uint32_t"), Name: "c"},
			{Type: ptr("uint32_t"), Name: "d"},
		},
	}
	c := classify.Classify(cmd)
	overloads := Select(cmd, c, registry.New())
	if overloads != nil {
		t.Errorf("Select() = %v, want nil", overloads)
	}
}

// Zero parameters must not crash.
func TestSelect_ZeroParams(t *testing.T) {
	cmd := &registry.CommandData{Name: "vkSomeVoidCall"}
	c := classify.Classify(cmd)
	overloads := Select(cmd, c, registry.New())
	if len(overloads) == 0 {
		t.Errorf("Select() = %v, want at least one overload for a zero-param void command", overloads)
	}
}
