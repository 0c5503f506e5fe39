package registry

// AssignCommandOwners records each non-alias command's owning handle: the
// type of its first parameter, when that type is itself a declared handle.
// The XML grammar never states this directly, so classify and emit both
// rely on this pass having already run over a fully ingested Registry
// before they inspect CommandData.Handle.
func AssignCommandOwners(reg *Registry) {
	for _, cmd := range reg.Commands {
		if cmd.Alias != "" || len(cmd.Params) == 0 {
			continue
		}
		first := cmd.Params[0].Type.Type
		if _, ok := reg.Handles[first]; ok {
			cmd.Handle = first
		}
	}
}
