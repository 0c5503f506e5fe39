// Package genconfig holds the compile-time constants spec §6 names as the
// generator's only configuration surface: the output namespace, the C API
// name-prefix triplet, the target header macro, and the default I/O paths.
// None of these affect algorithm, only emitted text, so they are plain
// consts rather than anything flag- or env-driven, per spec §6's "these
// affect only text content, never algorithm."
package genconfig

const (
	Namespace = "VULKAN_HPP_NAMESPACE"

	PrefixUpper = "VK"
	PrefixLower = "vk"
	PrefixMixed = "Vk"

	VersionMacro = "VK_HEADER_VERSION"

	DefaultInputPath  = "vk.xml"
	DefaultOutputPath = "vulkan.hpp"

	// FormatterBinary is invoked on the output path as a final pass; its
	// absence is non-fatal per spec §6's "External collaborators".
	FormatterBinary = "clang-format"
)
