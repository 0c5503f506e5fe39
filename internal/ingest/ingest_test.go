package ingest

import "testing"

const fixtureRegistry = `<?xml version="1.0" encoding="UTF-8"?>
<registry>
  <comment>Copyright 2026 nobody, test fixture only</comment>
  <types>
    <type category="basetype"><type>unsigned int</type> <name>VkBool32</name></type>
    <type category="enum" name="VkResult"/>
    <type category="handle" name="VkInstance"><type>VK_DEFINE_HANDLE</type></type>
    <type category="handle" name="VkPhysicalDevice" parent="VkInstance"><type>VK_DEFINE_HANDLE</type></type>
    <type category="bitmask" requires="VkInstanceCreateFlagBits"><type>VkFlags</type> <name>VkInstanceCreateFlags</name></type>
    <type category="enum" name="VkInstanceCreateFlagBits"/>
    <type category="struct" name="VkApplicationInfo">
      <member><type>VkStructureType</type> <name>sType</name></member>
      <member optional="true"><type>void</type>* <name>pNext</name></member>
    </type>
    <type category="struct" name="VkDisabledStruct">
      <member><type>uint32_t</type> <name>x</name></member>
    </type>
  </types>
  <enums name="VkResult" type="enum">
    <enum value="0" name="VK_SUCCESS"/>
    <enum value="5" name="VK_INCOMPLETE"/>
  </enums>
  <enums name="VkInstanceCreateFlagBits" type="bitmask"/>
  <commands>
    <command successcodes="VK_SUCCESS,VK_INCOMPLETE">
      <proto><type>VkResult</type> <name>vkCreateInstance</name></proto>
      <param>const <type>VkInstanceCreateInfo</type>* <name>pCreateInfo</name></param>
    </command>
    <command>
      <proto><type>void</type> <name>vkDestroyInstance</name></proto>
      <param><type>VkInstance</type> <name>instance</name></param>
      <param optional="true">const <type>VkAllocationCallbacks</type>* <name>pAllocator</name></param>
    </command>
    <command>
      <proto><type>void</type> <name>vkDisabledCommand</name></proto>
    </command>
  </commands>
  <feature name="VK_VERSION_1_0" number="1.0">
    <require>
      <type name="VkInstance"/>
      <command name="vkCreateInstance"/>
    </require>
  </feature>
  <extensions>
    <extension name="VK_EXT_disabled_thing" number="999" supported="disabled">
      <require>
        <type name="VkDisabledStruct"/>
        <command name="vkDisabledCommand"/>
      </require>
    </extension>
  </extensions>
</registry>
`

func TestLoad_FixtureRegistry(t *testing.T) {
	result, err := Load([]byte(fixtureRegistry))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", result.Diagnostics)
	}
	reg := result.Registry

	if reg.Types["VkBool32"].Type != "unsigned int" {
		t.Errorf("Types[VkBool32].Type = %q, want %q", reg.Types["VkBool32"].Type, "unsigned int")
	}

	inst, ok := reg.Handles["VkInstance"]
	if !ok {
		t.Fatal("Handles[VkInstance] missing")
	}
	if inst.Category != 1 { // registry.HandleDispatchable
		t.Errorf("VkInstance.Category = %v, want HandleDispatchable", inst.Category)
	}

	phys, ok := reg.Handles["VkPhysicalDevice"]
	if !ok {
		t.Fatal("Handles[VkPhysicalDevice] missing")
	}
	if len(phys.Parents) != 1 || phys.Parents[0] != "VkInstance" {
		t.Errorf("VkPhysicalDevice.Parents = %v, want [VkInstance]", phys.Parents)
	}

	bm, ok := reg.Bitmasks["VkInstanceCreateFlags"]
	if !ok {
		t.Fatal("Bitmasks[VkInstanceCreateFlags] missing")
	}
	if bm.Requirements != "VkInstanceCreateFlagBits" {
		t.Errorf("Bitmasks[VkInstanceCreateFlags].Requirements = %q, want VkInstanceCreateFlagBits", bm.Requirements)
	}

	s, ok := reg.Structures["VkApplicationInfo"]
	if !ok {
		t.Fatal("Structures[VkApplicationInfo] missing")
	}
	if len(s.Members) != 2 || s.Members[0].Name != "sType" || s.Members[1].Name != "pNext" {
		t.Errorf("VkApplicationInfo.Members = %+v, want [sType, pNext]", s.Members)
	}
	if !s.Members[1].Type.IsPointer() {
		t.Errorf("pNext.Type = %+v, want a pointer", s.Members[1].Type)
	}

	result2, ok := reg.Enums["VkResult"]
	if !ok {
		t.Fatal("Enums[VkResult] missing")
	}
	success, found := result2.FindValue("VK_SUCCESS")
	if !found || success.CppName != "eSuccess" {
		t.Errorf("VK_SUCCESS CppName = %q, want eSuccess", success.CppName)
	}
	incomplete, found := result2.FindValue("VK_INCOMPLETE")
	if !found || incomplete.CppName != "eIncomplete" {
		t.Errorf("VK_INCOMPLETE CppName = %q, want eIncomplete", incomplete.CppName)
	}

	create, ok := reg.Commands["vkCreateInstance"]
	if !ok {
		t.Fatal("Commands[vkCreateInstance] missing")
	}
	if len(create.SuccessCodes) != 2 || create.SuccessCodes[0] != "VK_SUCCESS" {
		t.Errorf("vkCreateInstance.SuccessCodes = %v, want [VK_SUCCESS VK_INCOMPLETE]", create.SuccessCodes)
	}
	if len(create.Params) != 1 || !create.Params[0].Type.IsConstPointer() {
		t.Errorf("vkCreateInstance.Params = %+v, want one const-pointer param", create.Params)
	}
	if create.Handle != "" {
		t.Errorf("vkCreateInstance.Handle = %q, want \"\" (its first param is a struct pointer, not a handle)", create.Handle)
	}

	destroy, ok := reg.Commands["vkDestroyInstance"]
	if !ok {
		t.Fatal("Commands[vkDestroyInstance] missing")
	}
	if len(destroy.Params) != 2 || destroy.Params[1].Name != "pAllocator" || !destroy.Params[1].Optional {
		t.Errorf("vkDestroyInstance.Params = %+v, want [instance, pAllocator(optional)]", destroy.Params)
	}
	if destroy.Handle != "VkInstance" {
		t.Errorf("vkDestroyInstance.Handle = %q, want VkInstance", destroy.Handle)
	}

	feat, ok := reg.Features["VK_VERSION_1_0"]
	if !ok {
		t.Fatal("Features[VK_VERSION_1_0] missing")
	}
	if len(feat.RequiredCmds) != 1 || feat.RequiredCmds[0] != "vkCreateInstance" {
		t.Errorf("feature RequiredCmds = %v, want [vkCreateInstance]", feat.RequiredCmds)
	}

	if _, ok := reg.Extensions["VK_EXT_disabled_thing"]; ok {
		t.Error("disabled extension must not survive ingestion")
	}
	if _, ok := reg.Structures["VkDisabledStruct"]; ok {
		t.Error("struct introduced solely by a disabled extension must be removed")
	}
	if _, ok := reg.Commands["vkDisabledCommand"]; ok {
		t.Error("command introduced solely by a disabled extension must be removed")
	}
}

func TestLoad_RejectsNonRegistryRoot(t *testing.T) {
	_, err := Load([]byte(`<?xml version="1.0"?><notregistry/>`))
	if err == nil {
		t.Fatal("Load() error = nil, want a schema error for the wrong root element")
	}
}
