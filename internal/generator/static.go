package generator

import (
	"fmt"
	"strings"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// StaticGenerator emits directly linked free functions with no indirection
// layer: every command is a plain call into the linked library. This is the
// default style.
type StaticGenerator struct {
	table *typemap.Table
}

func (g *StaticGenerator) Write(reg *registry.Registry) ([]Fragment, error) {
	ns := reg.Namespace()
	cmds := reg.Commands()

	var fns strings.Builder
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
		fmt.Fprintf(&fns, "func %s(%s)%s {\n\t%s\n}\n\n",
			cmd.Ident, params, retSuffix(ret), call)
	}

	return []Fragment{
		headerFragment(ns, "unsafe"),
		cgoFragment(ns),
		typesFragment(g.table),
		enumsFragment(reg),
		{Name: "functions", Body: fns.String()},
	}, nil
}
