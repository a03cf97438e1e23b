package generator

import (
	"fmt"
	"strings"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// GlobalGenerator emits free functions dispatching through package-level
// function variables. Each slot starts as a failing stub and is switched to
// the resolved symbol by an explicit load pass; the transition is one-way
// and per-slot, so partial loads are observable through the per-command
// IsLoaded queries.
type GlobalGenerator struct {
	table *typemap.Table
}

func (g *GlobalGenerator) Write(reg *registry.Registry) ([]Fragment, error) {
	ns := reg.Namespace()
	cmds := reg.Commands()

	var fns, storage, stubs, loaders, load strings.Builder

	storage.WriteString("var (\n")
	stubs.WriteString("func init() {\n")
	fmt.Fprintf(&load, "// LoadWith loads every function pointer in one pass using loadfn, e.g. a\n")
	fmt.Fprintf(&load, "// GetProcAddress wrapper. Symbols loadfn cannot resolve keep their failing\n")
	fmt.Fprintf(&load, "// stubs; the failure surfaces on first call.\n")
	load.WriteString("func LoadWith(loadfn func(name string) unsafe.Pointer) {\n")

	for i := range cmds {
		cmd := &cmds[i]
		params, ret, err := signature(cmd, g.table)
		if err != nil {
			return nil, err
		}
		idents, err := RenderParams(cmd, g.table, NamedOnly)
		if err != nil {
			return nil, err
		}
		placeholders, err := RenderParams(cmd, g.table, Placeholder)
		if err != nil {
			return nil, err
		}
		symbol := SymbolName(ns, cmd.Ident)

		callPrefix := ""
		if ret != "" {
			callPrefix = "return "
		}
		fmt.Fprintf(&fns, "func %s(%s)%s {\n\t%sgp%s(%s)\n}\n\n",
			cmd.Ident, params, retSuffix(ret), callPrefix, cmd.Ident, strings.Join(idents, ", "))

		fmt.Fprintf(&storage, "\tgp%s func(%s)%s\n", cmd.Ident, params, retSuffix(ret))
		fmt.Fprintf(&storage, "\tgp%sLoaded bool\n", cmd.Ident)

		fmt.Fprintf(&stubs, "\tgp%s = func(%s)%s { panic(\"%s: %s is not loaded\") }\n",
			cmd.Ident, strings.Join(placeholders, ", "), retSuffix(ret), ns, symbol)

		fmt.Fprintf(&loaders, "// %sIsLoaded reports whether %s dispatches to a resolved symbol.\n", cmd.Ident, cmd.Ident)
		fmt.Fprintf(&loaders, "func %sIsLoaded() bool {\n\treturn gp%sLoaded\n}\n\n", cmd.Ident, cmd.Ident)
		fmt.Fprintf(&loaders, "// Load%sWith resolves the %s symbol through loadfn.\n", cmd.Ident, symbol)
		fmt.Fprintf(&loaders, "func Load%sWith(loadfn func(name string) unsafe.Pointer) {\n", cmd.Ident)
		fmt.Fprintf(&loaders, "\taddr := loadfn(%q)\n\tif addr == nil {\n\t\treturn\n\t}\n", symbol)
		fmt.Fprintf(&loaders, "\tpurego.RegisterFunc(&gp%s, uintptr(addr))\n\tgp%sLoaded = true\n}\n\n", cmd.Ident, cmd.Ident)

		fmt.Fprintf(&load, "\tLoad%sWith(loadfn)\n", cmd.Ident)
	}

	storage.WriteString(")\n")
	stubs.WriteString("}\n")
	load.WriteString("}\n")

	return []Fragment{
		headerFragment(ns, "unsafe", "github.com/ebitengine/purego"),
		typesFragment(g.table),
		enumsFragment(reg),
		{Name: "functions", Body: fns.String()},
		{Name: "storage", Body: storage.String()},
		{Name: "stubs", Body: stubs.String()},
		{Name: "loaders", Body: loaders.String()},
		{Name: "load", Body: load.String()},
	}, nil
}
