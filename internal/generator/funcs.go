package generator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// ParamMode selects how RenderParams renders a command's parameter list.
// All modes agree on parameter count and order.
type ParamMode int

const (
	// TypedNamed renders "ident Type" pairs.
	TypedNamed ParamMode = iota
	// TypedOnly renders bare types.
	TypedOnly
	// NamedOnly renders bare identifiers, with reserved words renamed.
	NamedOnly
	// Placeholder renders "_ Type" pairs for unused-argument positions.
	Placeholder
)

// Go keywords that cannot appear as bare parameter identifiers in emitted
// source. Renamed by appending an underscore.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func paramIdent(ident string) string {
	if reservedWords[ident] {
		return ident + "_"
	}
	return ident
}

// SymbolName constructs the external-linkage name for a command: the
// namespace prefix plus the trimmed identifier. The same name serves as the
// lookup key during dynamic loading and as the linked symbol.
func SymbolName(ns registry.Namespace, ident string) string {
	return ns.CmdPrefix() + ident
}

// RenderParams renders a command's parameter list in the requested mode.
func RenderParams(cmd *registry.Command, table *typemap.Table, mode ParamMode) ([]string, error) {
	out := make([]string, 0, len(cmd.Params))
	for _, p := range cmd.Params {
		if mode == NamedOnly {
			out = append(out, paramIdent(p.Ident))
			continue
		}
		goType, err := table.Map(p.TypeName)
		if err != nil {
			return nil, errors.Wrapf(err, "command %s: parameter %s", cmd.Ident, p.Ident)
		}
		switch mode {
		case TypedNamed:
			out = append(out, paramIdent(p.Ident)+" "+goType)
		case TypedOnly:
			out = append(out, goType)
		case Placeholder:
			out = append(out, "_ "+goType)
		}
	}
	return out, nil
}

// RenderReturn renders the return type of a command through the type table.
// The empty string means the command returns nothing.
func RenderReturn(cmd *registry.Command, table *typemap.Table) (string, error) {
	goType, err := table.Map(cmd.Return.TypeName)
	if err != nil {
		return "", errors.Wrapf(err, "command %s: return", cmd.Ident)
	}
	return goType, nil
}

// C literal suffix markers the registry uses as enum type attributes.
var suffixTypes = map[string]string{
	"u":   "GLuint",
	"ull": "GLuint64",
}

// RenderEnum renders one constant definition as a const-block line.
// Identifiers that would not be valid Go identifiers (leading digit) get a
// fixed "X" prefix; TRUE and FALSE are always typed as the boolean constant
// type, overriding both typeName and any registry type override.
func RenderEnum(e *registry.Enum, typeName string) string {
	ident := e.Ident
	if ident != "" && ident[0] >= '0' && ident[0] <= '9' {
		ident = "X" + ident
	}

	ty := typeName
	if e.Type != "" {
		if mapped, ok := suffixTypes[e.Type]; ok {
			ty = mapped
		} else {
			ty = e.Type
		}
	}
	if e.Ident == "TRUE" || e.Ident == "FALSE" {
		ty = typemap.BoolType
	}

	return fmt.Sprintf("%s %s = %s", ident, ty, e.Value)
}

// signature renders "(params...)" plus the " Type" return suffix for one
// command, in TypedNamed mode.
func signature(cmd *registry.Command, table *typemap.Table) (params string, ret string, err error) {
	list, err := RenderParams(cmd, table, TypedNamed)
	if err != nil {
		return "", "", err
	}
	ret, err = RenderReturn(cmd, table)
	if err != nil {
		return "", "", err
	}
	return strings.Join(list, ", "), ret, nil
}

func retSuffix(ret string) string {
	if ret == "" {
		return ""
	}
	return " " + ret
}

// defaultEnumType is the constant type used when the registry supplies no
// type override.
func defaultEnumType(ns registry.Namespace) string {
	if ns == registry.NsEgl {
		return "EGLenum"
	}
	return "GLenum"
}

// headerFragment emits the generated-file preamble and package clause.
func headerFragment(ns registry.Namespace, imports ...string) Fragment {
	var b strings.Builder
	b.WriteString("// Code generated by glgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n", ns)
	if len(imports) > 0 {
		b.WriteString("\nimport (\n")
		for _, imp := range imports {
			fmt.Fprintf(&b, "\t%q\n", imp)
		}
		b.WriteString(")\n")
	}
	return Fragment{Name: "header", Body: b.String()}
}

// cgoFragment emits the cgo preamble used by the statically linked styles.
func cgoFragment(ns registry.Namespace) Fragment {
	var b strings.Builder
	b.WriteString("/*\n")
	switch ns {
	case registry.NsGles1:
		b.WriteString("#cgo LDFLAGS: -lGLESv1_CM\n#include <GLES/gl.h>\n")
	case registry.NsGles2:
		b.WriteString("#cgo LDFLAGS: -lGLESv2\n#include <GLES2/gl2.h>\n")
	case registry.NsEgl:
		b.WriteString("#cgo LDFLAGS: -lEGL\n#include <EGL/egl.h>\n")
	case registry.NsGlx:
		b.WriteString("#cgo LDFLAGS: -lGL -lX11\n#include <GL/glx.h>\n")
	case registry.NsWgl:
		b.WriteString("#cgo LDFLAGS: -lopengl32 -lgdi32\n#include <windows.h>\n#include <GL/gl.h>\n")
	default:
		b.WriteString("#cgo linux freebsd LDFLAGS: -lGL\n")
		b.WriteString("#cgo darwin LDFLAGS: -framework OpenGL\n")
		b.WriteString("#cgo windows LDFLAGS: -lopengl32\n")
		b.WriteString("#include <GL/glcorearb.h>\n")
	}
	b.WriteString("*/\nimport \"C\"\n")
	return Fragment{Name: "cgo", Body: b.String()}
}

// typesFragment emits the type alias declarations for the namespace.
func typesFragment(table *typemap.Table) Fragment {
	var b strings.Builder
	b.WriteString("type (\n")
	for _, a := range table.Aliases() {
		fmt.Fprintf(&b, "\t%s %s\n", a.Name, a.GoType)
	}
	b.WriteString(")\n")
	return Fragment{Name: "types", Body: b.String()}
}

// enumsFragment emits one const block with every resolved enum.
func enumsFragment(reg *registry.Registry) Fragment {
	enums := reg.Enums()
	if len(enums) == 0 {
		return Fragment{Name: "enums", Body: ""}
	}
	var b strings.Builder
	b.WriteString("const (\n")
	for i := range enums {
		fmt.Fprintf(&b, "\t%s\n", RenderEnum(&enums[i], defaultEnumType(reg.Namespace())))
	}
	b.WriteString(")\n")
	return Fragment{Name: "enums", Body: b.String()}
}

// cgoArgs renders the argument list for a direct C call: scalar arguments
// are cast to their C types, typed pointer arguments are cast to the
// matching C pointer type. Only void pointers pass through bare; cgo accepts
// unsafe.Pointer solely where the C parameter is void*.
func cgoArgs(cmd *registry.Command, table *typemap.Table) ([]string, error) {
	out := make([]string, 0, len(cmd.Params))
	for _, p := range cmd.Params {
		goType, err := table.Map(p.TypeName)
		if err != nil {
			return nil, errors.Wrapf(err, "command %s: parameter %s", cmd.Ident, p.Ident)
		}
		ident := paramIdent(p.Ident)
		if stars := strings.Count(p.TypeName, "*"); stars > 0 {
			base := p.TypeName[stars:]
			if base == "void" || base == "GLvoid" {
				out = append(out, ident)
				continue
			}
			out = append(out, fmt.Sprintf("(%sC.%s)(%s)", strings.Repeat("*", stars), base, ident))
			continue
		}
		if goType == "unsafe.Pointer" {
			out = append(out, ident)
			continue
		}
		out = append(out, fmt.Sprintf("C.%s(%s)", p.TypeName, ident))
	}
	return out, nil
}

// cgoCall renders the body statement for a direct C call, including the
// return conversion back to the emitted alias type.
func cgoCall(cmd *registry.Command, ns registry.Namespace, table *typemap.Table) (string, error) {
	args, err := cgoArgs(cmd, table)
	if err != nil {
		return "", err
	}
	ret, err := RenderReturn(cmd, table)
	if err != nil {
		return "", err
	}
	call := fmt.Sprintf("C.%s(%s)", SymbolName(ns, cmd.Ident), strings.Join(args, ", "))
	switch ret {
	case "":
		return call, nil
	case "unsafe.Pointer":
		return fmt.Sprintf("return unsafe.Pointer(%s)", call), nil
	default:
		return fmt.Sprintf("return %s(%s)", ret, call), nil
	}
}
