package xref

import (
	"testing"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

func TestValidate_CleanRegistryHasNoDiagnostics(t *testing.T) {
	reg := registry.New()
	reg.Handles["VkInstance"] = &registry.HandleData{Name: "VkInstance"}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none", diags)
	}
}

func TestValidate_UnknownCommandReturnType(t *testing.T) {
	reg := registry.New()
	reg.Commands["vkDoThing"] = &registry.CommandData{
		Name:       "vkDoThing",
		ReturnType: "VkNeverDeclared",
	}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
	if diags[0].Kind != "reference" {
		t.Errorf("diags[0].Kind = %q, want reference", diags[0].Kind)
	}
}

func TestValidate_UnknownParamType(t *testing.T) {
	reg := registry.New()
	reg.Commands["vkDoThing"] = &registry.CommandData{
		Name: "vkDoThing",
		Params: []registry.ParamData{
			{Type: registry.TypeInfo{Type: "VkBogusHandle"}, Name: "h"},
		},
	}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
}

func TestValidate_CommandAliasResolves(t *testing.T) {
	reg := registry.New()
	reg.Commands["vkDoThing"] = &registry.CommandData{Name: "vkDoThing"}
	reg.Commands["vkDoThingEXT"] = &registry.CommandData{Name: "vkDoThingEXT", Alias: "vkDoThing"}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none for a resolving alias", diags)
	}
}

func TestValidate_CommandAliasUnknownTarget(t *testing.T) {
	reg := registry.New()
	reg.Commands["vkDoThingEXT"] = &registry.CommandData{Name: "vkDoThingEXT", Alias: "vkNeverExisted"}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
}

func TestValidate_StructureTypeCollision(t *testing.T) {
	reg := registry.New()
	reg.Structures["VkFooInfo"] = &registry.StructureData{
		Name: "VkFooInfo",
		Members: []registry.MemberData{
			{ParamData: registry.ParamData{Name: "sType"}, Values: []string{"VK_STRUCTURE_TYPE_FOO"}},
		},
	}
	reg.Structures["VkBarInfo"] = &registry.StructureData{
		Name: "VkBarInfo",
		Members: []registry.MemberData{
			{ParamData: registry.ParamData{Name: "sType"}, Values: []string{"VK_STRUCTURE_TYPE_FOO"}},
		},
	}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one collision diagnostic", diags)
	}
	if diags[0].Kind != "invariant" {
		t.Errorf("diags[0].Kind = %q, want invariant", diags[0].Kind)
	}
}

func TestValidate_StructureTypeNoCollisionAcrossDistinctValues(t *testing.T) {
	reg := registry.New()
	reg.Structures["VkFooInfo"] = &registry.StructureData{
		Name: "VkFooInfo",
		Members: []registry.MemberData{
			{ParamData: registry.ParamData{Name: "sType"}, Values: []string{"VK_STRUCTURE_TYPE_FOO"}},
		},
	}
	reg.Structures["VkBarInfo"] = &registry.StructureData{
		Name: "VkBarInfo",
		Members: []registry.MemberData{
			{ParamData: registry.ParamData{Name: "sType"}, Values: []string{"VK_STRUCTURE_TYPE_BAR"}},
		},
	}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none", diags)
	}
}

func TestValidate_HandleObjTypeEnumMustBeKnownValue(t *testing.T) {
	reg := registry.New()
	reg.Enums["VkObjectType"] = &registry.EnumData{
		Name: "VkObjectType",
		Values: []registry.EnumValueData{
			{CName: "VK_OBJECT_TYPE_BUFFER"},
			{CName: "VK_OBJECT_TYPE_UNKNOWN"},
		},
	}
	reg.Handles["VkBuffer"] = &registry.HandleData{Name: "VkBuffer", ObjTypeEnum: "VK_OBJECT_TYPE_BUFFER"}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none for a resolving objtypeenum", diags)
	}
}

func TestValidate_ObjectTypeValueWithNoHandleIsInvariantViolation(t *testing.T) {
	reg := registry.New()
	reg.Enums["VkObjectType"] = &registry.EnumData{
		Name: "VkObjectType",
		Values: []registry.EnumValueData{
			{CName: "VK_OBJECT_TYPE_BUFFER"},
		},
	}
	// No handle claims VK_OBJECT_TYPE_BUFFER.
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
	if diags[0].Kind != "invariant" {
		t.Errorf("diags[0].Kind = %q, want invariant", diags[0].Kind)
	}
}

func TestValidate_UnknownAndMaxEnumObjectTypesAreExempt(t *testing.T) {
	reg := registry.New()
	reg.Enums["VkObjectType"] = &registry.EnumData{
		Name: "VkObjectType",
		Values: []registry.EnumValueData{
			{CName: "VK_OBJECT_TYPE_UNKNOWN"},
			{CName: "VK_OBJECT_TYPE_MAX_ENUM"},
		},
	}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none (sentinel values exempt)", diags)
	}
}

func TestValidate_StructExtendsUnknownTarget(t *testing.T) {
	reg := registry.New()
	reg.Structures["VkFooInfo"] = &registry.StructureData{
		Name:          "VkFooInfo",
		StructExtends: []string{"VkNeverDeclaredInfo"},
	}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
}

func TestValidate_EnumAliasResolves(t *testing.T) {
	reg := registry.New()
	reg.Enums["VkResult"] = &registry.EnumData{
		Name:   "VkResult",
		Values: []registry.EnumValueData{{CName: "VK_SUCCESS"}},
		Aliases: []registry.EnumAlias{
			{CName: "VK_SUCCESS_EXT", Target: "VK_SUCCESS"},
		},
	}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none for a resolving alias", diags)
	}
}

func TestValidate_EnumAliasUnknownTarget(t *testing.T) {
	reg := registry.New()
	reg.Enums["VkResult"] = &registry.EnumData{
		Name:   "VkResult",
		Values: []registry.EnumValueData{{CName: "VK_SUCCESS"}},
		Aliases: []registry.EnumAlias{
			{CName: "VK_NEVER_EXT", Target: "VK_NEVER_DECLARED"},
		},
	}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
}

func TestValidate_ExtensionPromotedToResolves(t *testing.T) {
	reg := registry.New()
	reg.Extensions["VK_KHR_foo"] = &registry.Extension{Name: "VK_KHR_foo", PromotedTo: "VK_VERSION_1_1"}
	reg.Features["VK_VERSION_1_1"] = &registry.Feature{Name: "VK_VERSION_1_1"}
	diags := Validate(reg)
	if len(diags) != 0 {
		t.Errorf("Validate() = %v, want none", diags)
	}
}

func TestValidate_ExtensionPromotedToUnknown(t *testing.T) {
	reg := registry.New()
	reg.Extensions["VK_KHR_foo"] = &registry.Extension{Name: "VK_KHR_foo", PromotedTo: "VK_VERSION_9_9"}
	diags := Validate(reg)
	if len(diags) != 1 {
		t.Fatalf("Validate() = %v, want exactly one diagnostic", diags)
	}
}
