package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/classify"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/overload"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

const handleTemplate = `class ${name}
{
public:
  using CType = ${cname};

  VULKAN_HPP_CONSTEXPR ${name}() VULKAN_HPP_NOEXCEPT : m_${field}( VK_NULL_HANDLE ) {}

  VULKAN_HPP_TYPESAFE_EXPLICIT ${name}( ${cname} ${field} ) VULKAN_HPP_NOEXCEPT : m_${field}( ${field} ) {}

  ${name} & operator=( std::nullptr_t ) VULKAN_HPP_NOEXCEPT
  {
    m_${field} = VK_NULL_HANDLE;
    return *this;
  }

  explicit operator ${cname}() const VULKAN_HPP_NOEXCEPT
  {
    return m_${field};
  }

  explicit operator bool() const VULKAN_HPP_NOEXCEPT
  {
    return m_${field} != VK_NULL_HANDLE;
  }

  bool operator!() const VULKAN_HPP_NOEXCEPT
  {
    return m_${field} == VK_NULL_HANDLE;
  }

  bool operator==( ${name} const & rhs ) const VULKAN_HPP_NOEXCEPT
  {
    return m_${field} == rhs.m_${field};
  }

  bool operator!=( ${name} const & rhs ) const VULKAN_HPP_NOEXCEPT
  {
    return m_${field} != rhs.m_${field};
  }

  bool operator<( ${name} const & rhs ) const VULKAN_HPP_NOEXCEPT
  {
    return m_${field} < rhs.m_${field};
  }

${commands}
private:
  ${cname} m_${field};
};
static_assert( sizeof( ${name} ) == sizeof( ${cname} ), "handle and wrapper must be the same size" );

template <>
struct CppType<VULKAN_HPP_NAMESPACE::ObjectType, VULKAN_HPP_NAMESPACE::ObjectType::e${name}>
{
  using Type = VULKAN_HPP_NAMESPACE::${name};
};

using Unique${name} = UniqueHandle<${name}, VULKAN_HPP_DEFAULT_DISPATCHER_TYPE>;

`

const contextTemplate = `class Context
{
public:
  Context() VULKAN_HPP_NOEXCEPT = default;

${commands}
};

`

// destroyAliases maps a destroy-family command's verb to the shortened
// member name spec §4.5's Handle rule names ("destroy", "free", "release").
var destroyAliases = map[string]string{
	"Destroy": "destroy",
	"Free":    "free",
	"Release": "release",
}

// renderHandle builds the handle wrapper class: a single CType member,
// default/explicit constructors, null assignment, the classical relational
// operators, and every command owned by this handle emitted through the
// overload selector, per spec §4.5's Handle rule.
func (e *Emitter) renderHandle(h *registry.HandleData) string {
	name := cppName(h.Name)
	field := ownerField(h)

	var commandBlocks []string
	for _, cmdName := range commandsOwnedBy(e.Reg, h.Name) {
		cmd := e.Reg.Commands[cmdName]
		if cmd.Alias != "" {
			continue
		}
		commandBlocks = append(commandBlocks, e.renderCommandOverloads(h, cmd)...)
	}

	return lexical.New(handleTemplate).
		With("name", name).
		With("cname", h.Name).
		With("field", field).
		With("commands", strings.Join(commandBlocks, "\n")).
		MustSubstitute()
}

// renderContext builds the top-level command set spec §8's boundary rule
// assigns to commands whose first parameter is not a handle at all
// (vkCreateInstance, vkEnumerateInstanceExtensionProperties, ...): there is
// no backing C handle to wrap, so these become plain member functions of a
// Context that forwards straight to the global C entry point instead of
// through an m_<field> instance.
func (e *Emitter) renderContext() string {
	var commandBlocks []string
	for _, cmdName := range commandsOwnedBy(e.Reg, "") {
		cmd := e.Reg.Commands[cmdName]
		if cmd.Alias != "" {
			continue
		}
		if cmd.ReturnType != "" {
			e.ensureEmitted(cmd.ReturnType)
		}
		for _, p := range cmd.Params {
			e.ensureEmitted(p.Type.Type)
		}
		commandBlocks = append(commandBlocks, e.renderCommandOverloads(nil, cmd)...)
	}
	if len(commandBlocks) == 0 {
		return ""
	}
	return lexical.New(contextTemplate).
		With("commands", strings.Join(commandBlocks, "\n")).
		MustSubstitute()
}

// ownerField derives the m_<field> member name a handle's own wrapper class
// uses for itself, and that every command it owns substitutes in place of
// its (hidden) first parameter.
func ownerField(h *registry.HandleData) string {
	return lexical.ToLowerCamel(cppName(h.Name))
}

// renderCommandOverloads renders every overload.Select result for cmd as a
// member function of owner (nil for the free-function Context), using an
// unambiguous base name derived by stripping the owning handle's own
// verb-object convention (left as the raw command name minus its "vk"
// prefix, lower-cameled) and appending the destroy-family short name when
// applicable.
func (e *Emitter) renderCommandOverloads(owner *registry.HandleData, cmd *registry.CommandData) []string {
	c, overloads := classifyAndSelect(e.Reg, cmd)
	if len(overloads) == 0 {
		e.Diag.Observe(specerror.New(specerror.KindShape, cmd.Name).AtLine(cmd.XMLLine))
		return nil
	}

	base := lexical.ToLowerCamel(lexical.StripVkPrefix(cmd.Name))
	var blocks []string
	for _, ov := range overloads {
		blocks = append(blocks, renderOneOverload(e.Reg, owner, cmd, c, ov, base))
	}

	for verb, short := range destroyAliases {
		if strings.HasPrefix(cmd.Name, verb) || strings.Contains(cmd.Name, verb) {
			blocks = append(blocks, fmt.Sprintf(
				"  template <typename Dispatch = VULKAN_HPP_DEFAULT_DISPATCHER_TYPE>\n  void %s( Dispatch const & d = VULKAN_HPP_DEFAULT_DISPATCHER ) const VULKAN_HPP_NOEXCEPT\n  {\n    %s();\n  }\n",
				short, base))
			break
		}
	}

	return blocks
}

func renderOneOverload(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, c classify.Classification, ov overload.Overload, base string) string {
	name := base
	switch ov.Kind {
	case overload.KindUniqueRAII:
		name = base + "Unique"
	case overload.KindSingular:
		name = base
	case overload.KindSingularUnique:
		name = base + "Unique"
	}

	params := renderParamList(reg, cmd, ov.Skip)
	ret := returnTypeFor(reg, cmd, c, ov)
	body := renderCallBody(reg, owner, cmd, c, ov, ret)

	return fmt.Sprintf(
		"  // overload: %s\n  template <typename Dispatch = VULKAN_HPP_DEFAULT_DISPATCHER_TYPE>\n  %s %s( %s ) const\n  {\n%s  }\n",
		ov.Kind, ret, name, params, body)
}

func renderParamList(reg *registry.Registry, cmd *registry.CommandData, skip map[int]bool) string {
	var parts []string
	for i, p := range cmd.Params {
		if skip[i] {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s_", cppParamType(reg, p), p.Name))
	}
	return strings.Join(parts, ", ")
}

func cppParamType(reg *registry.Registry, p registry.ParamData) string {
	if p.Type.IsPointer() {
		return wrapType(reg, p.Type.Type) + " " + p.Type.Postfix
	}
	return wrapType(reg, p.Type.Type)
}

// vectorParamIndex reports which of a classification's non-const-pointer
// candidates is itself a vector (as opposed to the sibling count that sizes
// it), the distinction §8's enumerate scenario depends on: the returned
// vector's element type comes from the vector parameter, never from
// whichever return candidate happens to sort first.
func vectorParamIndex(c classify.Classification) (int, bool) {
	for _, idx := range c.NonConstPointerIndices {
		if _, ok := c.VectorLengthIndex[idx]; ok {
			return idx, true
		}
	}
	return 0, false
}

func returnTypeFor(reg *registry.Registry, cmd *registry.CommandData, c classify.Classification, ov overload.Overload) string {
	switch ov.Kind {
	case overload.KindStandard:
		return wrapType(reg, cmd.ReturnType)
	case overload.KindUniqueRAII, overload.KindSingularUnique:
		if len(c.NonConstPointerIndices) > 0 {
			return "Unique" + wrapType(reg, cmd.Params[c.NonConstPointerIndices[0]].Type.Type)
		}
		return "void"
	default:
		if len(c.NonConstPointerIndices) == 1 {
			return wrapType(reg, cmd.Params[c.NonConstPointerIndices[0]].Type.Type)
		}
		if len(c.NonConstPointerIndices) > 1 {
			idx := c.NonConstPointerIndices[0]
			if vecIdx, ok := vectorParamIndex(c); ok {
				idx = vecIdx
			}
			return "std::vector<" + wrapType(reg, cmd.Params[idx].Type.Type) + ">"
		}
		return wrapType(reg, cmd.ReturnType)
	}
}

func resultReturning(cmd *registry.CommandData) bool {
	return cmd.ReturnType == "Result" || cmd.ReturnType == "VkResult"
}

// rawCallArgs builds the argument list passed to the raw C entry point:
// overrides[i] wins outright (a return pointer or a rewritten length
// argument), index 0 becomes the owner's m_<field> when the classifier
// skipped it as the implicit handle, any other skipped index falls back to
// a null/zero placeholder (the classifier hides it from the wrapped
// signature, so the call can't reference it by name), and everything else
// passes through cArgExpr unchanged.
func rawCallArgs(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, skip map[int]bool, overrides map[int]string) string {
	args := make([]string, len(cmd.Params))
	for i, p := range cmd.Params {
		switch {
		case overrides[i] != "":
			args[i] = overrides[i]
		case i == 0 && skip[0] && owner != nil && cmd.Handle != "":
			args[i] = "m_" + ownerField(owner)
		case skip[i]:
			if p.Type.IsPointer() {
				args[i] = "nullptr"
			} else {
				args[i] = "0"
			}
		default:
			args[i] = cArgExpr(reg, p)
		}
	}
	return strings.Join(args, ", ")
}

// cArgExpr renders p's wrapped-signature name (p.Name + "_") the way it
// must appear in a call to the raw C function: a reinterpret_cast through
// the raw type for a wrapped pointer, a static_cast for a wrapped value,
// and the bare name for anything that passes through unwrapped.
func cArgExpr(reg *registry.Registry, p registry.ParamData) string {
	wrapped := wrapType(reg, p.Type.Type)
	if p.Type.IsPointer() {
		if wrapped == p.Type.Type {
			return p.Name + "_"
		}
		constness := ""
		if p.Type.IsConstPointer() {
			constness = "const "
		}
		return fmt.Sprintf("reinterpret_cast<%s%s%s>( %s_ )", constness, p.Type.Type, p.Type.Postfix, p.Name)
	}
	if wrapped != p.Type.Type {
		return fmt.Sprintf("static_cast<%s>( %s_ )", p.Type.Type, p.Name)
	}
	return p.Name + "_"
}

func checkCall(cmd *registry.CommandData, call, resultVar string) string {
	return fmt.Sprintf("    Result %s = static_cast<Result>( %s );\n    resultCheck( %s, \"%s\" );\n", resultVar, call, resultVar, cmd.Name)
}

// renderCallBody emits the §4.4/§4.5 two-step command body for ov: a
// forwarding call to the raw C entry point, a Result-to-exception
// conversion when the command returns Result, and — for the shapes that
// report a vector — the size-then-fill loop spec §8's enumerate scenario
// describes.
func renderCallBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, c classify.Classification, ov overload.Overload, ret string) string {
	switch ov.Kind {
	case overload.KindStandard:
		return renderStandardBody(reg, owner, cmd, ov, ret)
	case overload.KindUniqueRAII:
		return renderUniqueBody(reg, owner, cmd, ov, c, ret)
	case overload.KindSingular, overload.KindSingularUnique:
		return renderSingularBody(reg, owner, cmd, ov, c, ret)
	case overload.KindEnumeratePair, overload.KindEnhancedVector, overload.KindWithAllocator,
		overload.KindVectorChained, overload.KindEnhancedDeprecated, overload.KindDeprecatedTwoVector:
		return renderVectorBody(reg, owner, cmd, ov, c, ret)
	default: // KindEnhanced, KindChained
		return renderEnhancedBody(reg, owner, cmd, ov, c, ret)
	}
}

func renderStandardBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, ret string) string {
	call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, nil))
	if cmd.ReturnType == "" || cmd.ReturnType == "void" {
		return fmt.Sprintf("    %s;\n", call)
	}
	return fmt.Sprintf("    return static_cast<%s>( %s );\n", ret, call)
}

// renderEnhancedBody covers the zero- and single-non-vector-return shapes:
// with no return candidate it's a thin Result-checked forward, with one it
// declares a local, passes its address to the raw call, and returns it.
func renderEnhancedBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, c classify.Classification, ret string) string {
	if len(c.NonConstPointerIndices) == 0 {
		call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, nil))
		if !resultReturning(cmd) {
			return fmt.Sprintf("    %s;\n", call)
		}
		var b strings.Builder
		b.WriteString(checkCall(cmd, call, "result"))
		b.WriteString("    return result;\n")
		return b.String()
	}

	retIdx := c.NonConstPointerIndices[0]
	retParam := cmd.Params[retIdx]
	overrides := map[int]string{retIdx: fmt.Sprintf("reinterpret_cast<%s *>( &result )", retParam.Type.Type)}
	call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, overrides))

	var b strings.Builder
	fmt.Fprintf(&b, "    %s result;\n", wrapType(reg, retParam.Type.Type))
	if resultReturning(cmd) {
		b.WriteString(checkCall(cmd, call, "r"))
	} else {
		fmt.Fprintf(&b, "    %s;\n", call)
	}
	b.WriteString("    return result;\n")
	return b.String()
}

// renderUniqueBody is renderEnhancedBody's RAII sibling: the same single
// forwarding call, wrapped in the handle's UniqueHandle constructor instead
// of returned bare.
func renderUniqueBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, c classify.Classification, ret string) string {
	if len(c.NonConstPointerIndices) == 0 {
		return renderEnhancedBody(reg, owner, cmd, ov, c, ret)
	}
	retIdx := c.NonConstPointerIndices[0]
	retParam := cmd.Params[retIdx]
	handleType := wrapType(reg, retParam.Type.Type)
	overrides := map[int]string{retIdx: fmt.Sprintf("reinterpret_cast<%s *>( &result )", retParam.Type.Type)}
	call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, overrides))

	var b strings.Builder
	fmt.Fprintf(&b, "    %s result;\n", handleType)
	if resultReturning(cmd) {
		b.WriteString(checkCall(cmd, call, "r"))
	} else {
		fmt.Fprintf(&b, "    %s;\n", call)
	}
	fmt.Fprintf(&b, "    return %s( result, *this, d );\n", ret)
	return b.String()
}

// renderSingularBody pins the shared vector length to 1 and returns the
// single resulting element (or its UniqueHandle) instead of a vector.
func renderSingularBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, c classify.Classification, ret string) string {
	vecIdx, ok := vectorParamIndex(c)
	if !ok {
		return renderEnhancedBody(reg, owner, cmd, ov, c, ret)
	}
	elemType := wrapType(reg, cmd.Params[vecIdx].Type.Type)
	overrides := map[int]string{
		vecIdx: fmt.Sprintf("reinterpret_cast<%s *>( &result )", cmd.Params[vecIdx].Type.Type),
	}
	if ov.SingularIndex >= 0 {
		overrides[ov.SingularIndex] = "1"
	}
	call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, overrides))

	var b strings.Builder
	fmt.Fprintf(&b, "    %s result;\n", elemType)
	if resultReturning(cmd) {
		b.WriteString(checkCall(cmd, call, "r"))
	} else {
		fmt.Fprintf(&b, "    %s;\n", call)
	}
	if ov.Kind == overload.KindSingularUnique {
		fmt.Fprintf(&b, "    return %s( result, *this, d );\n", ret)
	} else {
		b.WriteString("    return result;\n")
	}
	return b.String()
}

// renderVectorBody covers every shape whose return candidate is a vector.
// When the vector's length is itself another return candidate (the
// enumerate-pair shape), the count is unknown ahead of the call and needs
// the query-then-fill loop; otherwise the caller-visible length parameter
// already sizes the vector up front and one call suffices.
func renderVectorBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, c classify.Classification, ret string) string {
	vecIdx, ok := vectorParamIndex(c)
	if !ok {
		return renderEnhancedBody(reg, owner, cmd, ov, c, ret)
	}
	elemType := wrapType(reg, cmd.Params[vecIdx].Type.Type)
	lenIdx, hasLen := c.VectorLengthIndex[vecIdx]

	if ov.Kind == overload.KindEnumeratePair && hasLen && lenIdx != classify.StructMemberLength {
		return renderEnumerateLoopBody(reg, owner, cmd, ov, vecIdx, lenIdx, elemType)
	}

	sizeExpr := "0"
	overrides := map[int]string{
		vecIdx: fmt.Sprintf("reinterpret_cast<%s *>( result.data() )", cmd.Params[vecIdx].Type.Type),
	}
	if hasLen && lenIdx != classify.StructMemberLength && lenIdx < len(cmd.Params) {
		sizeExpr = cmd.Params[lenIdx].Name + "_"
		overrides[lenIdx] = sizeExpr
	}
	call := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, overrides))

	var b strings.Builder
	fmt.Fprintf(&b, "    std::vector<%s> result( %s );\n", elemType, sizeExpr)
	if resultReturning(cmd) {
		b.WriteString(checkCall(cmd, call, "r"))
	} else {
		fmt.Fprintf(&b, "    %s;\n", call)
	}
	b.WriteString("    return result;\n")
	return b.String()
}

// renderEnumerateLoopBody emits the query-then-fill loop spec §8's
// enumerate scenario requires: call once with a null vector pointer to
// learn the count, resize, call again to fill, repeat while the C call
// reports Incomplete, then trim the vector to the count the final call
// actually reported.
func renderEnumerateLoopBody(reg *registry.Registry, owner *registry.HandleData, cmd *registry.CommandData, ov overload.Overload, vecIdx, lenIdx int, elemType string) string {
	countName := cmd.Params[lenIdx].Name
	vecParam := cmd.Params[vecIdx]

	countCall := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, map[int]string{
		lenIdx: "&" + countName,
		vecIdx: "nullptr",
	}))
	fillCall := fmt.Sprintf("%s( %s )", cmd.Name, rawCallArgs(reg, owner, cmd, ov.Skip, map[int]string{
		lenIdx: "&" + countName,
		vecIdx: fmt.Sprintf("reinterpret_cast<%s *>( result.data() )", vecParam.Type.Type),
	}))

	var b strings.Builder
	fmt.Fprintf(&b, "    uint32_t %s;\n", countName)
	b.WriteString("    Result r;\n")
	fmt.Fprintf(&b, "    std::vector<%s> result;\n", elemType)
	b.WriteString("    do\n    {\n")
	fmt.Fprintf(&b, "      r = static_cast<Result>( %s );\n", countCall)
	fmt.Fprintf(&b, "      if ( ( r == Result::eSuccess ) && %s )\n      {\n", countName)
	fmt.Fprintf(&b, "        result.resize( %s );\n", countName)
	fmt.Fprintf(&b, "        r = static_cast<Result>( %s );\n", fillCall)
	b.WriteString("      }\n")
	b.WriteString("    } while ( r == Result::eIncomplete );\n")
	fmt.Fprintf(&b, "    resultCheck( r, \"%s\" );\n", cmd.Name)
	fmt.Fprintf(&b, "    if ( %s < result.size() )\n    {\n      result.resize( %s );\n    }\n", countName, countName)
	b.WriteString("    return result;\n")
	return b.String()
}
