package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/genconfig"
)

const smokeRegistry = `<?xml version="1.0" encoding="UTF-8"?>
<registry>
  <comment>Copyright 2026 nobody, test fixture only</comment>
  <types>
    <type category="enum" name="VkResult"/>
    <type category="handle" name="VkInstance"><type>VK_DEFINE_HANDLE</type></type>
    <type category="struct" name="VkApplicationInfo">
      <member><type>VkStructureType</type> <name>sType</name></member>
      <member optional="true"><type>void</type>* <name>pNext</name></member>
    </type>
  </types>
  <enums name="VkResult" type="enum">
    <enum value="0" name="VK_SUCCESS"/>
  </enums>
  <commands>
    <command>
      <proto><type>void</type> <name>vkDestroyInstance</name></proto>
      <param><type>VkInstance</type> <name>instance</name></param>
    </command>
  </commands>
</registry>
`

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "vk.xml")
	outputPath := filepath.Join(dir, genconfig.DefaultOutputPath)

	if err := os.WriteFile(inputPath, []byte(smokeRegistry), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	counter, err := Run(inputPath, outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if counter.Errors != 0 {
		t.Errorf("counter.Errors = %d, want 0", counter.Errors)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading generated output: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"Copyright 2026 nobody",
		"namespace VULKAN_HPP_NAMESPACE",
		"struct ApplicationInfo",
		"class Instance",
		"} // namespace VULKAN_HPP_NAMESPACE",
		"vkDestroyInstance( static_cast<VkInstance>( instance_ ) );",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("generated output missing %q", want)
		}
	}
	if strings.Contains(text, "return static_cast<void>") {
		t.Error("generated output still contains the placeholder command body for a void command")
	}
}

func TestRun_MissingInputIsAnIOError(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(filepath.Join(dir, "does-not-exist.xml"), filepath.Join(dir, "out.hpp"))
	if err == nil {
		t.Fatal("Run() error = nil, want a read error for a missing input file")
	}
}
