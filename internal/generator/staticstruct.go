package generator

import (
	"fmt"
	"strings"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// StaticStructGenerator emits a stateless marker struct whose methods
// delegate to directly linked symbols. LoadWith exists only for interface
// parity with the dynamically loaded styles and performs no loading.
type StaticStructGenerator struct {
	table *typemap.Table
}

func (g *StaticStructGenerator) Write(reg *registry.Registry) ([]Fragment, error) {
	ns := reg.Namespace()
	name := ns.StructName()
	cmds := reg.Commands()

	var def, methods strings.Builder

	fmt.Fprintf(&def, "// %s is a stub context; every method calls the statically linked symbol.\n", name)
	fmt.Fprintf(&def, "type %s struct{}\n\n", name)
	fmt.Fprintf(&def, "// New returns the stub context.\nfunc New() %s {\n\treturn %s{}\n}\n\n", name, name)
	fmt.Fprintf(&def, "// LoadWith exists for parity with the loaded styles and performs no loading.\n")
	fmt.Fprintf(&def, "func (%s) LoadWith(loadfn func(name string) unsafe.Pointer) {}\n", name)

	for i := range cmds {
		cmd := &cmds[i]
		params, ret, err := signature(cmd, g.table)
		if err != nil {
			return nil, err
		}
		call, err := cgoCall(cmd, ns, g.table)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&methods, "func (%s) %s(%s)%s {\n\t%s\n}\n\n",
			name, cmd.Ident, params, retSuffix(ret), call)
	}

	return []Fragment{
		headerFragment(ns, "unsafe"),
		cgoFragment(ns),
		typesFragment(g.table),
		enumsFragment(reg),
		{Name: "struct", Body: def.String()},
		{Name: "methods", Body: methods.String()},
	}, nil
}
