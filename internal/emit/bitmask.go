package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

const bitmaskTemplate = `${bitsEnum}
using ${name} = Flags<${bits}>;

VULKAN_HPP_CONSTEXPR_14 VULKAN_HPP_INLINE ${name} operator|( ${bits} bit0, ${bits} bit1 ) VULKAN_HPP_NOEXCEPT
{
  return ${name}( bit0 ) | bit1;
}

VULKAN_HPP_CONSTEXPR_14 VULKAN_HPP_INLINE ${name} operator&( ${bits} bit0, ${bits} bit1 ) VULKAN_HPP_NOEXCEPT
{
  return ${name}( bit0 ) & bit1;
}

VULKAN_HPP_CONSTEXPR_14 VULKAN_HPP_INLINE ${name} operator^( ${bits} bit0, ${bits} bit1 ) VULKAN_HPP_NOEXCEPT
{
  return ${name}( bit0 ) ^ bit1;
}

VULKAN_HPP_CONSTEXPR VULKAN_HPP_INLINE ${name} operator~( ${bits} bits ) VULKAN_HPP_NOEXCEPT
{
  return ~( ${name}( bits ) );
}

template <>
struct FlagTraits<${bits}>
{
  enum : VkFlags
  {
    allFlags = ${allFlags}
  };
};

VULKAN_HPP_INLINE std::string to_string( ${name} value )
{
  if ( !value )
    return "{}";
  std::string result;
${appends}
  return "{ " + result.substr( 0, result.size() - 3 ) + " }";
}

`

const emptyBitsEnumTemplate = `enum class ${bits} : VkFlags
{
};

`

// renderBitmask builds `using Name = Flags<Bits>` plus the four bitwise
// operator overloads, a FlagTraits<Bits> specialization, and to_string, per
// spec §4.5's Bitmask rule. An empty bit enum (no declared bits) is
// synthesized rather than omitted, per spec §8's boundary behavior.
func (e *Emitter) renderBitmask(b *registry.BitmaskData) string {
	bitsRaw := b.Requirements
	if bitsRaw == "" {
		bitsRaw = b.Name + "Bits"
	}
	bits := cppName(bitsRaw)
	name := cppName(b.Name)

	var bitsEnumText string
	en, ok := e.Reg.Enums[bitsRaw]
	if !ok {
		bitsEnumText = lexical.New(emptyBitsEnumTemplate).With("bits", bits).MustSubstitute()
	}

	var allFlags []string
	var appends []string
	if ok {
		for _, v := range en.Values {
			if !v.SingleBit {
				continue
			}
			allFlags = append(allFlags, fmt.Sprintf("VkFlags( %s::%s )", bits, v.CppName))
			appends = append(appends, fmt.Sprintf(
				"  if ( value & %s::%s ) result += \"%s | \";", bits, v.CppName, strings.TrimPrefix(v.CppName, "e")))
		}
	}
	if len(allFlags) == 0 {
		allFlags = []string{"0"}
	}

	return lexical.New(bitmaskTemplate).
		With("bitsEnum", bitsEnumText).
		With("name", name).
		With("bits", bits).
		With("allFlags", strings.Join(allFlags, " | ")).
		With("appends", strings.Join(appends, "\n")).
		MustSubstitute()
}
