package emit

import (
	"fmt"
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
)

// renderStructureChainTraits builds one StructExtends<Extender, Base>
// specialization per (struct, structextends target) pair recorded during
// ingest, per spec §4.5's structure-chain validation rule: a pNext chain can
// only be built from structs that declare they extend the anchor they are
// being linked onto, and that declaration is what this trait encodes.
func (e *Emitter) renderStructureChainTraits() string {
	var blocks []string
	for _, name := range registry.SortedNames(e.Reg.Structures) {
		s := e.Reg.Structures[name]
		extender := cppName(s.Name)
		for _, base := range s.StructExtends {
			blocks = append(blocks, fmt.Sprintf(
				"template <>\nstruct StructExtends<%s, %s>\n{\n  enum\n  {\n    value = true\n  };\n};\n\n",
				extender, cppName(base)))
		}
	}
	return strings.Join(blocks, "")
}
