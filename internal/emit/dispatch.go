package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

const dynamicDispatchTemplate = `class DispatchLoaderDynamic
{
public:
  DispatchLoaderDynamic() VULKAN_HPP_NOEXCEPT = default;

  void init( VULKAN_HPP_NAMESPACE::Instance instance, PFN_vkGetInstanceProcAddr getInstanceProcAddr ) VULKAN_HPP_NOEXCEPT
  {
    vkGetInstanceProcAddr = getInstanceProcAddr;
${instanceInits}
  }

  void init( VULKAN_HPP_NAMESPACE::Device device, PFN_vkGetDeviceProcAddr getDeviceProcAddr ) VULKAN_HPP_NOEXCEPT
  {
    vkGetDeviceProcAddr = getDeviceProcAddr;
${deviceInits}
  }

  PFN_vkGetInstanceProcAddr vkGetInstanceProcAddr = nullptr;
  PFN_vkGetDeviceProcAddr   vkGetDeviceProcAddr   = nullptr;
${members}
};

`

// renderDynamicDispatch builds the per-command function-pointer table spec
// §4.6 names: one PFN_ member per command (aliases resolve to the same
// loader name, so an extension promoted into core still loads through one
// slot), filled in during the instance or device init phase depending on
// whether the command's owning handle is rooted at Instance/PhysicalDevice
// or at Device.
func (e *Emitter) renderDynamicDispatch() string {
	var members, instanceInits, deviceInits []string
	seen := map[string]bool{}

	for _, name := range registry.SortedNames(e.Reg.Commands) {
		cmd := e.Reg.Commands[name]
		if cmd.Alias != "" {
			continue
		}
		pfn := "PFN_" + cmd.Name
		if seen[pfn] {
			continue
		}
		seen[pfn] = true

		members = append(members, fmt.Sprintf("  %s %s = nullptr;", pfn, cmd.Name))

		if isDeviceRooted(e.Reg, cmd) {
			deviceInits = append(deviceInits, fmt.Sprintf(
				"    %s = PFN_%s( getDeviceProcAddr( device, \"%s\" ) );", cmd.Name, cmd.Name, cmd.Name))
		} else {
			instanceInits = append(instanceInits, fmt.Sprintf(
				"    %s = PFN_%s( getInstanceProcAddr( instance, \"%s\" ) );", cmd.Name, cmd.Name, cmd.Name))
		}
	}

	return lexical.New(dynamicDispatchTemplate).
		With("members", strings.Join(members, "\n")).
		With("instanceInits", strings.Join(instanceInits, "\n")).
		With("deviceInits", strings.Join(deviceInits, "\n")).
		MustSubstitute()
}

// isDeviceRooted reports whether cmd's owning handle traces back to Device
// rather than Instance/PhysicalDevice, deciding which init() phase loads it.
func isDeviceRooted(reg *registry.Registry, cmd *registry.CommandData) bool {
	if len(cmd.Params) == 0 {
		return false
	}
	name := cmd.Params[0].Type.Type
	for name != "" {
		switch name {
		case "VkDevice":
			return true
		case "VkInstance", "VkPhysicalDevice":
			return false
		}
		h, ok := reg.Handles[name]
		if !ok || len(h.Parents) == 0 {
			return false
		}
		name = h.Parents[0]
	}
	return false
}

const staticDispatchTemplate = `class DispatchLoaderStatic
{
public:
${methods}
};

`

// renderStaticDispatch builds the thin forwarding-to-global-symbol dispatch
// table spec §4.6 names as the non-dynamic alternative to
// DispatchLoaderDynamic: every non-alias command gets one method that calls
// straight through to its C entry point.
func (e *Emitter) renderStaticDispatch() string {
	var methods []string
	for _, name := range registry.SortedNames(e.Reg.Commands) {
		cmd := e.Reg.Commands[name]
		if cmd.Alias != "" {
			continue
		}
		params := renderParamList(e.Reg, cmd, map[int]bool{})
		args := make([]string, len(cmd.Params))
		for i, p := range cmd.Params {
			args[i] = p.Name + "_"
		}
		methods = append(methods, fmt.Sprintf(
			"  %s %s( %s ) const VULKAN_HPP_NOEXCEPT\n  {\n    return %s( %s );\n  }\n",
			wrapType(e.Reg, cmd.ReturnType), lexical.ToLowerCamel(lexical.StripVkPrefix(cmd.Name)), params, cmd.Name, strings.Join(args, ", ")))
	}
	return lexical.New(staticDispatchTemplate).
		With("methods", strings.Join(methods, "\n")).
		MustSubstitute()
}
