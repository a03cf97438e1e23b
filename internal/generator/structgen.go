package generator

import (
	"fmt"
	"strings"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// StructGenerator emits one aggregate value type holding a function field
// per command. Construction resolves every symbol through the caller's
// resolver, falling back to a failing stub per unresolved symbol; methods
// dispatch through the stored field.
type StructGenerator struct {
	table *typemap.Table
}

func (g *StructGenerator) Write(reg *registry.Registry) ([]Fragment, error) {
	ns := reg.Namespace()
	name := ns.StructName()
	cmds := reg.Commands()

	var def, ctor, methods strings.Builder

	fmt.Fprintf(&def, "// %s holds one loaded function pointer per command.\n", name)
	fmt.Fprintf(&def, "type %s struct {\n", name)

	fmt.Fprintf(&ctor, "// New resolves every symbol through loadfn. Symbols loadfn cannot resolve\n")
	fmt.Fprintf(&ctor, "// fall back to failing stubs; the failure surfaces on first call.\n")
	fmt.Fprintf(&ctor, "func New(loadfn func(name string) unsafe.Pointer) *%s {\n", name)
	fmt.Fprintf(&ctor, "\tc := &%s{}\n", name)

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

		fmt.Fprintf(&def, "\tfn%s func(%s)%s\n", cmd.Ident, params, retSuffix(ret))
		fmt.Fprintf(&def, "\tok%s bool\n", cmd.Ident)

		fmt.Fprintf(&ctor, "\tc.fn%s = func(%s)%s { panic(\"%s: %s is not loaded\") }\n",
			cmd.Ident, strings.Join(placeholders, ", "), retSuffix(ret), ns, symbol)
		fmt.Fprintf(&ctor, "\tif addr := loadfn(%q); addr != nil {\n", symbol)
		fmt.Fprintf(&ctor, "\t\tpurego.RegisterFunc(&c.fn%s, uintptr(addr))\n\t\tc.ok%s = true\n\t}\n", cmd.Ident, cmd.Ident)

		callPrefix := ""
		if ret != "" {
			callPrefix = "return "
		}
		fmt.Fprintf(&methods, "func (c *%s) %s(%s)%s {\n\t%sc.fn%s(%s)\n}\n\n",
			name, cmd.Ident, params, retSuffix(ret), callPrefix, cmd.Ident, strings.Join(idents, ", "))
		fmt.Fprintf(&methods, "// %sIsLoaded reports whether %s dispatches to a resolved symbol.\n", cmd.Ident, cmd.Ident)
		fmt.Fprintf(&methods, "func (c *%s) %sIsLoaded() bool {\n\treturn c.ok%s\n}\n\n", name, cmd.Ident, cmd.Ident)
	}

	def.WriteString("}\n")
	ctor.WriteString("\treturn c\n}\n")

	return []Fragment{
		headerFragment(ns, "unsafe", "github.com/ebitengine/purego"),
		typesFragment(g.table),
		enumsFragment(reg),
		{Name: "struct", Body: def.String()},
		{Name: "constructor", Body: ctor.String()},
		{Name: "methods", Body: methods.String()},
	}, nil
}
