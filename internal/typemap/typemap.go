// Package typemap holds the static tables mapping registry type names to
// the type names visible in emitted source, plus the Go underlying type
// each alias is declared with.
package typemap

import (
	"strings"

	"github.com/cockroachdb/errors"

	"glgen/internal/registry"
)

// BoolType is the type every boolean-valued constant is emitted with,
// regardless of the type the registry or the caller supplies.
const BoolType = "GLboolean"

// Alias is one emitted type alias: the registry-visible name and the Go
// type it is declared as.
type Alias struct {
	Name   string
	GoType string
}

// Table maps registry type names for one namespace. Lookups are read-only
// after construction; config overrides are applied once, before the table
// is handed to a generator.
type Table struct {
	aliases []Alias
	index   map[string]int
}

// ForNamespace returns the type table applicable to a namespace. The GLES
// namespaces share the gl table; the windowing namespaces extend it with
// their platform types.
func ForNamespace(ns registry.Namespace) *Table {
	t := &Table{index: map[string]int{}}
	t.add(glAliases)
	switch ns {
	case registry.NsGlx:
		t.add(glxAliases)
	case registry.NsWgl:
		t.add(wglAliases)
	case registry.NsEgl:
		t.add(eglAliases)
	}
	return t
}

func (t *Table) add(aliases []Alias) {
	for _, a := range aliases {
		if _, ok := t.index[a.Name]; ok {
			continue
		}
		t.index[a.Name] = len(t.aliases)
		t.aliases = append(t.aliases, a)
	}
}

// Apply overrides or extends table entries from configuration. Overrides
// change the Go type an alias is declared with, not the alias name.
func (t *Table) Apply(overrides map[string]string) {
	for name, goType := range overrides {
		if i, ok := t.index[name]; ok {
			t.aliases[i].GoType = goType
			continue
		}
		t.index[name] = len(t.aliases)
		t.aliases = append(t.aliases, Alias{Name: name, GoType: goType})
	}
}

// Aliases returns the emitted alias declarations in deterministic order.
func (t *Table) Aliases() []Alias {
	return t.aliases
}

// Map resolves a registry type name to the type name used in emitted
// source. Pointer-shaped names map to unsafe.Pointer, "void" maps to the
// empty return. An unknown name is a fatal generation error; callers attach
// the owning command or enum identifier.
func (t *Table) Map(name string) (string, error) {
	if strings.HasPrefix(name, "*") {
		return "unsafe.Pointer", nil
	}
	if name == "void" || name == "GLvoid" {
		return "", nil
	}
	if _, ok := t.index[name]; !ok {
		return "", errors.Newf("unknown type %q", name)
	}
	return name, nil
}

var glAliases = []Alias{
	{"GLenum", "uint32"},
	{"GLboolean", "uint8"},
	{"GLbitfield", "uint32"},
	{"GLbyte", "int8"},
	{"GLshort", "int16"},
	{"GLint", "int32"},
	{"GLclampx", "int32"},
	{"GLubyte", "uint8"},
	{"GLushort", "uint16"},
	{"GLuint", "uint32"},
	{"GLsizei", "int32"},
	{"GLfloat", "float32"},
	{"GLclampf", "float32"},
	{"GLdouble", "float64"},
	{"GLclampd", "float64"},
	{"GLchar", "byte"},
	{"GLcharARB", "byte"},
	{"GLfixed", "int32"},
	{"GLhalf", "uint16"},
	{"GLhalfNV", "uint16"},
	{"GLintptr", "uintptr"},
	{"GLintptrARB", "uintptr"},
	{"GLsizeiptr", "uintptr"},
	{"GLsizeiptrARB", "uintptr"},
	{"GLint64", "int64"},
	{"GLint64EXT", "int64"},
	{"GLuint64", "uint64"},
	{"GLuint64EXT", "uint64"},
	{"GLsync", "uintptr"},
	{"GLDEBUGPROC", "uintptr"},
	{"GLDEBUGPROCARB", "uintptr"},
	{"GLDEBUGPROCKHR", "uintptr"},
	{"GLeglImageOES", "unsafe.Pointer"},
	{"GLhandleARB", "uint32"},
	{"GLvdpauSurfaceNV", "uintptr"},
}

var glxAliases = []Alias{
	{"Bool", "int32"},
	{"Display", "uintptr"},
	{"Window", "uintptr"},
	{"Pixmap", "uintptr"},
	{"Font", "uintptr"},
	{"Colormap", "uintptr"},
	{"XVisualInfo", "uintptr"},
	{"GLXContext", "uintptr"},
	{"GLXDrawable", "uintptr"},
	{"GLXPixmap", "uintptr"},
	{"GLXWindow", "uintptr"},
	{"GLXPbuffer", "uintptr"},
	{"GLXFBConfig", "uintptr"},
	{"GLXContextID", "uint32"},
}

var wglAliases = []Alias{
	{"BOOL", "int32"},
	{"DWORD", "uint32"},
	{"UINT", "uint32"},
	{"INT", "int32"},
	{"FLOAT", "float32"},
	{"HANDLE", "uintptr"},
	{"HDC", "uintptr"},
	{"HGLRC", "uintptr"},
	{"HENHMETAFILE", "uintptr"},
	{"LPCSTR", "uintptr"},
	{"PROC", "uintptr"},
	{"HPBUFFERARB", "uintptr"},
	{"HPBUFFEREXT", "uintptr"},
}

var eglAliases = []Alias{
	{"EGLBoolean", "uint32"},
	{"EGLenum", "uint32"},
	{"EGLint", "int32"},
	{"EGLDisplay", "uintptr"},
	{"EGLConfig", "uintptr"},
	{"EGLContext", "uintptr"},
	{"EGLSurface", "uintptr"},
	{"EGLClientBuffer", "uintptr"},
	{"EGLNativeDisplayType", "uintptr"},
	{"EGLNativePixmapType", "uintptr"},
	{"EGLNativeWindowType", "uintptr"},
	{"EGLAttrib", "uintptr"},
	{"EGLSync", "uintptr"},
	{"EGLImage", "uintptr"},
	{"EGLTime", "uint64"},
}
