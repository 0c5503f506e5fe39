package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

const structureTemplate = `struct ${name}
{
${ctor}
  operator ${cname} const &() const VULKAN_HPP_NOEXCEPT
  {
    return *reinterpret_cast<const ${cname} *>( this );
  }

  operator ${cname} &() VULKAN_HPP_NOEXCEPT
  {
    return *reinterpret_cast<${cname} *>( this );
  }

${setters}
${equality}
${members}
};
static_assert( sizeof( ${name} ) == sizeof( ${cname} ), "struct and wrapper must be the same size" );

`

const unionTemplate = `union ${name}
{
${ctors}
  operator ${cname} const &() const VULKAN_HPP_NOEXCEPT
  {
    return *reinterpret_cast<const ${cname} *>( this );
  }

${members}
};

`

// renderStructure builds either the struct or union shape spec §4.5 names.
// Structures get a defaulted-argument constructor, a setter per non-sType
// member, conversion operators, and member-wise equality; unions get a
// constructor per member and skip equality (the members share storage, so
// there is no meaningful per-member comparison).
func (e *Emitter) renderStructure(s *registry.StructureData) string {
	if s.IsUnion {
		return e.renderUnion(s)
	}

	name := cppName(s.Name)

	var ctorParams, ctorInits, members, setters []string
	for _, m := range s.Members {
		if m.Name == "pNext" || m.Name == "sType" {
			members = append(members, fmt.Sprintf("  %s %s = {};", cppMemberType(e.Reg, m), m.Name))
			if m.Name == "pNext" {
				setters = append(setters, fmt.Sprintf(
					"  %s & set%s( %s %s_ ) VULKAN_HPP_NOEXCEPT\n  {\n    %s = %s_;\n    return *this;\n  }\n",
					name, lexical.ToUpperCamel(m.Name), cppMemberType(e.Reg, m), m.Name, m.Name, m.Name))
			}
			continue
		}
		cpp := cppMemberType(e.Reg, m)
		def := defaultValueFor(m)
		ctorParams = append(ctorParams, fmt.Sprintf("%s %s_ = %s", cpp, m.Name, def))
		ctorInits = append(ctorInits, fmt.Sprintf("%s( %s_ )", m.Name, m.Name))
		members = append(members, fmt.Sprintf("  %s %s = {};", cpp, m.Name))
		setters = append(setters, fmt.Sprintf(
			"  %s & set%s( %s %s_ ) VULKAN_HPP_NOEXCEPT\n  {\n    %s = %s_;\n    return *this;\n  }\n",
			name, lexical.ToUpperCamel(m.Name), cpp, m.Name, m.Name, m.Name))
	}

	ctor := fmt.Sprintf("  VULKAN_HPP_CONSTEXPR %s( %s ) VULKAN_HPP_NOEXCEPT\n    %s\n  {}\n",
		name, strings.Join(ctorParams, ", "), ctorInitList(ctorInits))

	var equality string
	if len(s.Members) > 0 {
		var terms []string
		for _, m := range s.Members {
			terms = append(terms, fmt.Sprintf("( %s == rhs.%s )", m.Name, m.Name))
		}
		equality = fmt.Sprintf(
			"  bool operator==( %s const & rhs ) const VULKAN_HPP_NOEXCEPT\n  {\n    return %s;\n  }\n",
			name, strings.Join(terms, "\n        && "))
	}

	return lexical.New(structureTemplate).
		With("name", name).
		With("cname", s.Name).
		With("ctor", ctor).
		With("setters", strings.Join(setters, "\n")).
		With("equality", equality).
		With("members", strings.Join(members, "\n")).
		MustSubstitute()
}

func (e *Emitter) renderUnion(s *registry.StructureData) string {
	name := cppName(s.Name)

	var ctors, members []string
	for _, m := range s.Members {
		cpp := cppMemberType(e.Reg, m)
		members = append(members, fmt.Sprintf("  %s %s;", cpp, m.Name))
		ctors = append(ctors, fmt.Sprintf(
			"  %s( %s %s_ = {} ) VULKAN_HPP_NOEXCEPT : %s( %s_ ) {}\n",
			name, cpp, m.Name, m.Name, m.Name))
	}
	return lexical.New(unionTemplate).
		With("name", name).
		With("cname", s.Name).
		With("ctors", strings.Join(ctors, "\n")).
		With("members", strings.Join(members, "\n")).
		MustSubstitute()
}

func ctorInitList(inits []string) string {
	if len(inits) == 0 {
		return ""
	}
	return ": " + strings.Join(inits, ", ")
}

// cppMemberType renders a member's C++-facing type: array members become
// std::array<T,N...>, pointer members keep their star, everything else is
// the bare referenced type name.
func cppMemberType(reg *registry.Registry, m registry.MemberData) string {
	base := wrapType(reg, m.Type.Type)
	if m.Type.IsPointer() {
		return base + " " + m.Type.Postfix
	}
	if len(m.ArraySizes) > 0 {
		t := base
		for _, size := range m.ArraySizes {
			t = fmt.Sprintf("std::array<%s, %s>", t, size)
		}
		return t
	}
	return base
}

func defaultValueFor(m registry.MemberData) string {
	if m.Type.IsPointer() {
		return "{}"
	}
	return "{}"
}
