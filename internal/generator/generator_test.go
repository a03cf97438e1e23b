package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

func vp(major, minor uint64) *registry.Version {
	return &registry.Version{Major: major, Minor: minor}
}

func testRegistry() *registry.Registry {
	enums := []registry.Enum{
		{Ident: "COLOR_BUFFER_BIT", Value: "0x00004000", Introduced: vp(1, 0)},
		{Ident: "TRUE", Value: "1", Introduced: vp(1, 0)},
		{Ident: "INVALID_INDEX", Value: "0xFFFFFFFF", Type: "u", Introduced: vp(3, 1)},
	}
	commands := []registry.Command{
		{
			Ident:      "Clear",
			Return:     registry.Binding{TypeName: "void"},
			Params:     []registry.Binding{{Ident: "mask", TypeName: "GLbitfield"}},
			Safe:       true,
			Introduced: vp(1, 0),
		},
		{
			Ident:      "GetError",
			Return:     registry.Binding{TypeName: "GLenum"},
			Safe:       true,
			Introduced: vp(1, 0),
		},
		{
			Ident:  "BufferData",
			Return: registry.Binding{TypeName: "void"},
			Params: []registry.Binding{
				{Ident: "target", TypeName: "GLenum"},
				{Ident: "size", TypeName: "GLsizeiptr"},
				{Ident: "data", TypeName: "*void"},
				{Ident: "usage", TypeName: "GLenum"},
			},
			Introduced: vp(1, 5),
		},
		{
			Ident:  "GenBuffers",
			Return: registry.Binding{TypeName: "void"},
			Params: []registry.Binding{
				{Ident: "n", TypeName: "GLsizei"},
				{Ident: "buffers", TypeName: "*GLuint"},
			},
			Introduced: vp(1, 5),
		},
	}
	return registry.New(registry.NsGl, enums, commands, nil)
}

func brokenRegistry() *registry.Registry {
	return registry.New(registry.NsGl, nil, []registry.Command{
		{Ident: "Broken", Return: registry.Binding{TypeName: "void"}, Params: []registry.Binding{{Ident: "x", TypeName: "GLbogus"}}},
	}, nil)
}

func render(t *testing.T, style string) string {
	t.Helper()
	gen, err := New(style, typemap.ForNamespace(registry.NsGl))
	require.NoError(t, err)
	fragments, err := gen.Write(testRegistry())
	require.NoError(t, err)

	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Body)
		b.WriteString("\n")
	}
	return b.String()
}

func TestNewUnknownStyle(t *testing.T) {
	_, err := New("fancy", typemap.ForNamespace(registry.NsGl))
	require.Error(t, err)
	require.Contains(t, err.Error(), "fancy")
	for _, style := range Styles() {
		require.Contains(t, err.Error(), style)
	}
}

func TestSharedFragments(t *testing.T) {
	for _, style := range Styles() {
		out := render(t, style)
		require.Contains(t, out, "// Code generated by glgen. DO NOT EDIT.", style)
		require.Contains(t, out, "package gl\n", style)
		require.Contains(t, out, "GLenum uint32", style)
		require.Contains(t, out, "COLOR_BUFFER_BIT GLenum = 0x00004000", style)
		require.Contains(t, out, "TRUE GLboolean = 1", style)
		require.Contains(t, out, "INVALID_INDEX GLuint = 0xFFFFFFFF", style)
	}
}

func TestStaticOutput(t *testing.T) {
	out := render(t, StyleStatic)

	require.Contains(t, out, `import "C"`)
	require.Contains(t, out, "#include <GL/glcorearb.h>")
	require.Contains(t, out, "func Clear(mask GLbitfield) {\n\tC.glClear(C.GLbitfield(mask))\n}")
	require.Contains(t, out, "func GetError() GLenum {\n\treturn GLenum(C.glGetError())\n}")
	require.Contains(t, out, "func BufferData(target GLenum, size GLsizeiptr, data unsafe.Pointer, usage GLenum) {")
	require.Contains(t, out, "func GenBuffers(n GLsizei, buffers unsafe.Pointer) {\n\tC.glGenBuffers(C.GLsizei(n), (*C.GLuint)(buffers))\n}")
	require.NotContains(t, out, "purego", "static output needs no runtime loader")
	require.NotContains(t, out, "LoadWith")
}

func TestGlobalOutput(t *testing.T) {
	out := render(t, StyleGlobal)

	require.Contains(t, out, `"github.com/ebitengine/purego"`)
	require.Contains(t, out, "func Clear(mask GLbitfield) {\n\tgpClear(mask)\n}")
	require.Contains(t, out, "func GetError() GLenum {\n\treturn gpGetError()\n}")
	require.Contains(t, out, "gpClear func(mask GLbitfield)")
	require.Contains(t, out, "gpClearLoaded bool")
	require.Contains(t, out, `panic("gl: glClear is not loaded")`)
	require.Contains(t, out, "func ClearIsLoaded() bool {\n\treturn gpClearLoaded\n}")
	require.Contains(t, out, "func LoadClearWith(loadfn func(name string) unsafe.Pointer) {")
	require.Contains(t, out, `addr := loadfn("glClear")`)
	require.Contains(t, out, "purego.RegisterFunc(&gpClear, uintptr(addr))")
	require.Contains(t, out, "func LoadWith(loadfn func(name string) unsafe.Pointer) {")
	require.Contains(t, out, "\tLoadBufferDataWith(loadfn)\n")
	require.NotContains(t, out, `import "C"`, "dynamically loaded output must not need cgo")
}

func TestStructOutput(t *testing.T) {
	out := render(t, StyleStruct)

	require.Contains(t, out, "type GL struct {")
	require.Contains(t, out, "fnClear func(mask GLbitfield)")
	require.Contains(t, out, "okClear bool")
	require.Contains(t, out, "func New(loadfn func(name string) unsafe.Pointer) *GL {")
	require.Contains(t, out, `if addr := loadfn("glGetError"); addr != nil {`)
	require.Contains(t, out, "purego.RegisterFunc(&c.fnGetError, uintptr(addr))")
	require.Contains(t, out, "func (c *GL) Clear(mask GLbitfield) {\n\tc.fnClear(mask)\n}")
	require.Contains(t, out, "func (c *GL) GetError() GLenum {\n\treturn c.fnGetError()\n}")
	require.Contains(t, out, "func (c *GL) ClearIsLoaded() bool {\n\treturn c.okClear\n}")
	require.NotContains(t, out, `import "C"`)
}

func TestStaticStructOutput(t *testing.T) {
	out := render(t, StyleStaticStruct)

	require.Contains(t, out, "type GL struct{}")
	require.Contains(t, out, "func New() GL {\n\treturn GL{}\n}")
	require.Contains(t, out, "func (GL) LoadWith(loadfn func(name string) unsafe.Pointer) {}")
	require.Contains(t, out, "func (GL) Clear(mask GLbitfield) {\n\tC.glClear(C.GLbitfield(mask))\n}")
	require.Contains(t, out, "func (GL) GenBuffers(n GLsizei, buffers unsafe.Pointer) {\n\tC.glGenBuffers(C.GLsizei(n), (*C.GLuint)(buffers))\n}")
	require.Contains(t, out, `import "C"`)
	require.NotContains(t, out, "purego")
}

func TestCgoPreamblePerNamespace(t *testing.T) {
	tests := []struct {
		ns      registry.Namespace
		ldflags string
		include string
	}{
		{registry.NsGl, "-lGL", "#include <GL/glcorearb.h>"},
		{registry.NsGles1, "-lGLESv1_CM", "#include <GLES/gl.h>"},
		{registry.NsGles2, "-lGLESv2", "#include <GLES2/gl2.h>"},
		{registry.NsGlx, "-lGL -lX11", "#include <GL/glx.h>"},
		{registry.NsWgl, "-lopengl32 -lgdi32", "#include <windows.h>"},
		{registry.NsEgl, "-lEGL", "#include <EGL/egl.h>"},
	}
	for _, tt := range tests {
		body := cgoFragment(tt.ns).Body
		require.Contains(t, body, tt.ldflags, tt.ns)
		require.Contains(t, body, tt.include, tt.ns)
		require.Contains(t, body, `import "C"`, tt.ns)
	}
}

func TestWriteUnknownTypeAborts(t *testing.T) {
	for _, style := range Styles() {
		gen, err := New(style, typemap.ForNamespace(registry.NsGl))
		require.NoError(t, err)
		fragments, err := gen.Write(brokenRegistry())
		require.Error(t, err, style)
		require.Contains(t, err.Error(), "Broken", style)
		require.Nil(t, fragments, "no fragments on error")
	}
}

func TestFragmentOrderStable(t *testing.T) {
	gen, err := New(StyleGlobal, typemap.ForNamespace(registry.NsGl))
	require.NoError(t, err)
	first, err := gen.Write(testRegistry())
	require.NoError(t, err)
	second, err := gen.Write(testRegistry())
	require.NoError(t, err)
	require.Equal(t, first, second)

	names := make([]string, 0, len(first))
	for _, f := range first {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"header", "types", "enums", "functions", "storage", "stubs", "loaders", "load"}, names)
}
