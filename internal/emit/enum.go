package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

const enumTemplate = `enum class ${name} : ${underlying}
{
${values}
};

VULKAN_HPP_INLINE std::string to_string( ${name} value )
{
  switch ( value )
  {
${cases}
    default: return "invalid ( " + ::vk::toHexString( static_cast<uint32_t>( value ) ) + " )";
  }
}

`

// renderEnum builds `enum class Name : underlying { ... }` plus its
// to_string free function, per spec §4.5's Enum rule: primary values
// precede aliases, and to_string falls back to "invalid ( <hex> )", the
// value formatted by ::vk::toHexString.
func (e *Emitter) renderEnum(en *registry.EnumData) string {
	underlying := "uint32_t"
	name := cppName(en.Name)

	var valueLines, caseLines []string
	seen := map[string]bool{}
	for _, v := range en.Values {
		if seen[v.CppName] {
			continue
		}
		seen[v.CppName] = true
		valueLines = append(valueLines, fmt.Sprintf("  %s = %s,", v.CppName, v.CName))
		caseLines = append(caseLines, fmt.Sprintf("    case %s::%s : return %q;", name, v.CppName, strings.TrimPrefix(v.CppName, "e")))
	}
	for _, a := range en.Aliases {
		if seen[a.CppName] {
			continue
		}
		seen[a.CppName] = true
		valueLines = append(valueLines, fmt.Sprintf("  %s = %s,", a.CppName, a.CName))
	}

	return lexical.New(enumTemplate).
		With("name", name).
		With("underlying", underlying).
		With("values", strings.Join(valueLines, "\n")).
		With("cases", strings.Join(caseLines, "\n")).
		MustSubstitute()
}
