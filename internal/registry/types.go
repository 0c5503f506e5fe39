// Package registry holds the cross-referenced, name-keyed in-memory model
// of a Vulkan XML registry (spec §3). Every inter-entity reference is a
// string key into the appropriate Registry map — there are no
// back-pointers — which, as spec §3 notes, keeps the ownership graph
// acyclic even though the conceptual relationships (a handle names
// commands that reference the handle's own type) are not.
//
// Grounded on the teacher's vkspec.Data/Handle/Command/Extension (same
// map[string]T-keyed-by-registry-name shape) generalized to the full
// structure/enum/bitmask/platform/feature model spec.md §3 requires, which
// the teacher's narrower vkm build pipeline did not need.
package registry

import "slices"

// TypeInfo is the prefix/type/postfix decomposition of a C declaration's
// type, per spec §3.
type TypeInfo struct {
	Prefix  string // "", "const", "const struct", "struct", "typedef"
	Type    string // the referenced type name
	Postfix string // pointer-depth string of "*", optionally " const "
}

// IsValue reports whether the type carries no pointer indirection.
func (t TypeInfo) IsValue() bool { return t.Postfix == "" }

// IsPointer reports whether the type has at least one level of indirection.
func (t TypeInfo) IsPointer() bool { return t.Postfix != "" }

// IsConstPointer reports whether the type is a pointer-to-const.
func (t TypeInfo) IsConstPointer() bool {
	return t.IsPointer() && containsConst(t.Prefix) && endsInStar(t.Postfix)
}

func containsConst(prefix string) bool {
	return prefix == "const" || prefix == "const struct"
}

func endsInStar(postfix string) bool {
	for i := len(postfix) - 1; i >= 0; i-- {
		switch postfix[i] {
		case ' ':
			continue
		case '*':
			return true
		default:
			return false
		}
	}
	return false
}

// PointerDepth counts the levels of indirection encoded in Postfix.
func (t TypeInfo) PointerDepth() int {
	n := 0
	for _, r := range t.Postfix {
		if r == '*' {
			n++
		}
	}
	return n
}

// NameData is the name plus array-size/bitfield suffix grammar shared by
// struct members and command parameters, per spec §3.
type NameData struct {
	Name       string
	ArraySizes []string // one size expression per "[...]"
	BitCount   string   // non-empty when a ":<width>" bitfield suffix was present
}

// ParamData is a single command parameter, per spec §3.
type ParamData struct {
	Type       TypeInfo
	Name       string
	ArraySizes []string
	Len        string // sibling name, "null-terminated", "p->m", or an ignored LaTeX expr
	Optional   bool
	XMLLine    int
}

// MemberData is a struct/union member: ParamData plus validity metadata, per
// spec §3.
type MemberData struct {
	ParamData
	Values        []string // required enum values for this member, e.g. sType
	Selector      string   // discriminator field name, for union members
	Selection     string   // discriminator value this member corresponds to
	UsedConstant  string
	NoAutoValidity bool
	Optional      []bool // per-array-dimension optionality, overrides ParamData.Optional when set
	BitCount      string // non-empty when a ":<width>" bitfield suffix was present
}

// EnumValueData is one value of an Enum or the bits of a Bitmask, per spec
// §3.
type EnumValueData struct {
	CName     string
	CppName   string
	SingleBit bool // true when declared via bitpos= rather than value=
	XMLLine   int
}

// EnumAlias records that CName is a deduplicated synonym for Target, whose
// own cpp name is CppName.
type EnumAlias struct {
	CName   string
	Target  string
	CppName string
}

// EnumData is an <enums> block: an ordered value sequence plus any aliases
// and whether it is a bitmask's backing FlagBits enum, per spec §3.
type EnumData struct {
	Name      string
	Values    []EnumValueData
	Aliases   []EnumAlias
	IsBitmask bool
	Alias     string // non-empty when this whole enum is an alias of another
	XMLLine   int
}

// FindValue returns the EnumValueData with the given C name, if present.
func (e *EnumData) FindValue(cName string) (EnumValueData, bool) {
	for _, v := range e.Values {
		if v.CName == cName {
			return v, true
		}
	}
	return EnumValueData{}, false
}

// BitmaskData is a <type category="bitmask"> entry, per spec §3.
type BitmaskData struct {
	Name         string
	Requirements string // the backing FlagBits enum's name
	Type         string // "VkFlags" or "VkFlags64"
	Alias        string
	XMLLine      int
}

// HandleCategory distinguishes dispatchable handles (rooted at VkInstance
// or VkDevice) from non-dispatchable ones (64-bit integers), per the
// GLOSSARY.
type HandleCategory int

const (
	HandleUnknown HandleCategory = iota
	HandleDispatchable
	HandleNonDispatchable
)

// HandleData is a <type category="handle"> entry, per spec §3.
type HandleData struct {
	Name            string
	Category        HandleCategory
	Parents         []string
	ObjTypeEnum     string
	DeleteCommand   string
	DeletePool      string
	Commands        []string
	ChildrenHandles []string
	Alias           string
	XMLLine         int
}

// StructureData is a <type category="struct"|"union"> entry, per spec §3.
type StructureData struct {
	Name              string
	Members           []MemberData
	StructExtends     []string
	Aliases           []string
	AllowDuplicate    bool
	IsUnion           bool
	ReturnedOnly      bool
	SubStruct         string // optional embedded structure name
	MutualExclusiveLens bool
	XMLLine           int
}

// FindMember returns a struct's member by name, if present.
func (s *StructureData) FindMember(name string) (MemberData, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return MemberData{}, false
}

// AliasInfo records an aliased command's own feature/extension/line, so a
// command alias can be emitted under its own conditional-compilation
// guards even though it shares the primary's params, per spec §3's
// CommandData.aliasData.
type AliasInfo struct {
	Feature    string
	Extensions []string
	XMLLine    int
}

// CommandData is a <command> entry, per spec §3.
type CommandData struct {
	ReturnType   string
	Name         string
	SuccessCodes []string
	ErrorCodes   []string
	Params       []ParamData
	Handle       string // owning handle name, "" for a free function
	Feature      string
	Extensions   []string
	Alias        string // non-empty when this command is wholly an alias
	AliasData    map[string]AliasInfo
	XMLLine      int
}

// Platform is a <platform> entry: a name plus its #ifdef protect macro.
type Platform struct {
	Name    string
	Protect string
}

// Extension is an <extension> entry, per spec §3.
type Extension struct {
	Name          string
	Number        int
	Platform      string
	Supported     bool
	PromotedTo    string
	DeprecatedBy  string
	ObsoletedBy   string
	Requirements  []string // names of types/commands/enum-values it declares
	RequiredTypes []string
	RequiredCmds  []string
	XMLLine       int
}

// Feature is a <feature> entry (a core API version), per spec §3.
type Feature struct {
	Name          string
	Number        string
	RequiredTypes []string
	RequiredCmds  []string
	XMLLine       int
}

// Tag is a <tag> entry: a vendor/working-group suffix declaration.
type Tag struct {
	Name   string
	Author string
}

// Registry is the top-level model spec §3 describes: maps from name to each
// category, plus the scalar metadata (license text, spec version, the
// type-safety check expression) and a cross-cutting set of free-floating
// enum constants / defines / function-pointer typedefs that belong to no
// single structured entity.
type Registry struct {
	Types      map[string]TypeInfo // base types and opaque forward-declarations
	Enums      map[string]*EnumData
	Bitmasks   map[string]*BitmaskData
	Handles    map[string]*HandleData
	Structures map[string]*StructureData
	Commands   map[string]*CommandData
	Platforms  map[string]*Platform
	Extensions map[string]*Extension
	Features   map[string]*Feature
	Tags       map[string]*Tag

	Defines      map[string]string
	FuncPointers map[string]string // function-pointer typedef name -> raw C declaration
	Constants    map[string]string // API-constants enum values, keyed by cName

	LicenseHeader     string
	SpecVersion       string
	TypeSafetyCheck   string

	// ShapeErrors is not updated by any stage: overload-selector shape
	// errors are counted in diagnostics.Counter.Shapes during emission,
	// which driver.Run returns, and the Registry is left unchanged.
	ShapeErrors int
}

// New returns an empty, fully initialized Registry.
func New() *Registry {
	return &Registry{
		Types:        map[string]TypeInfo{},
		Enums:        map[string]*EnumData{},
		Bitmasks:     map[string]*BitmaskData{},
		Handles:      map[string]*HandleData{},
		Structures:   map[string]*StructureData{},
		Commands:     map[string]*CommandData{},
		Platforms:    map[string]*Platform{},
		Extensions:   map[string]*Extension{},
		Features:     map[string]*Feature{},
		Tags:         map[string]*Tag{},
		Defines:      map[string]string{},
		FuncPointers: map[string]string{},
		Constants:    map[string]string{},
	}
}

// SortedNames returns the keys of a map[string]T sorted, used throughout
// the emitter so map-backed iteration stays deterministic (spec §8's
// idempotence property: "running the generator twice... produces
// byte-identical output").
func SortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
