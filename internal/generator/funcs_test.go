package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

func glTable() *typemap.Table {
	return typemap.ForNamespace(registry.NsGl)
}

func TestSymbolName(t *testing.T) {
	require.Equal(t, "glClear", SymbolName(registry.NsGl, "Clear"))
	require.Equal(t, "glXChooseVisual", SymbolName(registry.NsGlx, "ChooseVisual"))
	require.Equal(t, "wglCreateContext", SymbolName(registry.NsWgl, "CreateContext"))
	require.Equal(t, "eglGetDisplay", SymbolName(registry.NsEgl, "GetDisplay"))
}

func TestRenderParamsModes(t *testing.T) {
	cmd := &registry.Command{
		Ident:  "BufferData",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "target", TypeName: "GLenum"},
			{Ident: "size", TypeName: "GLsizeiptr"},
			{Ident: "data", TypeName: "*void"},
			{Ident: "usage", TypeName: "GLenum"},
		},
	}
	table := glTable()

	typedNamed, err := RenderParams(cmd, table, TypedNamed)
	require.NoError(t, err)
	require.Equal(t, []string{"target GLenum", "size GLsizeiptr", "data unsafe.Pointer", "usage GLenum"}, typedNamed)

	typedOnly, err := RenderParams(cmd, table, TypedOnly)
	require.NoError(t, err)
	require.Equal(t, []string{"GLenum", "GLsizeiptr", "unsafe.Pointer", "GLenum"}, typedOnly)

	namedOnly, err := RenderParams(cmd, table, NamedOnly)
	require.NoError(t, err)
	require.Equal(t, []string{"target", "size", "data", "usage"}, namedOnly)

	placeholder, err := RenderParams(cmd, table, Placeholder)
	require.NoError(t, err)
	require.Equal(t, []string{"_ GLenum", "_ GLsizeiptr", "_ unsafe.Pointer", "_ GLenum"}, placeholder)

	// All modes agree on count and order.
	for _, rendered := range [][]string{typedOnly, namedOnly, placeholder} {
		require.Len(t, rendered, len(typedNamed))
	}
}

func TestRenderParamsReservedWords(t *testing.T) {
	cmd := &registry.Command{
		Ident:  "VertexAttribPointer",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "type", TypeName: "GLenum"},
			{Ident: "range", TypeName: "GLsizei"},
			{Ident: "normal", TypeName: "GLboolean"},
		},
	}

	named, err := RenderParams(cmd, glTable(), NamedOnly)
	require.NoError(t, err)
	require.Equal(t, []string{"type_", "range_", "normal"}, named)

	typed, err := RenderParams(cmd, glTable(), TypedNamed)
	require.NoError(t, err)
	require.Equal(t, "type_ GLenum", typed[0])
}

func TestRenderParamsUnknownType(t *testing.T) {
	cmd := &registry.Command{
		Ident:  "Broken",
		Params: []registry.Binding{{Ident: "x", TypeName: "GLbogus"}},
	}
	_, err := RenderParams(cmd, glTable(), TypedNamed)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Broken")
	require.Contains(t, err.Error(), "GLbogus")
}

func TestRenderReturn(t *testing.T) {
	table := glTable()

	ret, err := RenderReturn(&registry.Command{Return: registry.Binding{TypeName: "void"}}, table)
	require.NoError(t, err)
	require.Empty(t, ret)

	ret, err = RenderReturn(&registry.Command{Return: registry.Binding{TypeName: "GLenum"}}, table)
	require.NoError(t, err)
	require.Equal(t, "GLenum", ret)

	ret, err = RenderReturn(&registry.Command{Return: registry.Binding{TypeName: "*GLubyte"}}, table)
	require.NoError(t, err)
	require.Equal(t, "unsafe.Pointer", ret)
}

func TestRenderEnum(t *testing.T) {
	tests := []struct {
		name string
		enum registry.Enum
		want string
	}{
		{
			"plain",
			registry.Enum{Ident: "COLOR_BUFFER_BIT", Value: "0x00004000"},
			"COLOR_BUFFER_BIT GLenum = 0x00004000",
		},
		{
			"boolean true",
			registry.Enum{Ident: "TRUE", Value: "1"},
			"TRUE GLboolean = 1",
		},
		{
			"boolean false",
			registry.Enum{Ident: "FALSE", Value: "0"},
			"FALSE GLboolean = 0",
		},
		{
			"unsigned suffix",
			registry.Enum{Ident: "INVALID_INDEX", Value: "0xFFFFFFFF", Type: "u"},
			"INVALID_INDEX GLuint = 0xFFFFFFFF",
		},
		{
			"unsigned long long suffix",
			registry.Enum{Ident: "TIMEOUT_IGNORED", Value: "0xFFFFFFFFFFFFFFFF", Type: "ull"},
			"TIMEOUT_IGNORED GLuint64 = 0xFFFFFFFFFFFFFFFF",
		},
		{
			"leading digit escaped",
			registry.Enum{Ident: "2D", Value: "0x0600"},
			"X2D GLenum = 0x0600",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RenderEnum(&tt.enum, "GLenum"))
		})
	}
}

func TestCgoCall(t *testing.T) {
	table := glTable()

	clear := &registry.Command{
		Ident:  "Clear",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{{Ident: "mask", TypeName: "GLbitfield"}},
	}
	call, err := cgoCall(clear, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "C.glClear(C.GLbitfield(mask))", call)

	getError := &registry.Command{
		Ident:  "GetError",
		Return: registry.Binding{TypeName: "GLenum"},
	}
	call, err = cgoCall(getError, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "return GLenum(C.glGetError())", call)

	bufferData := &registry.Command{
		Ident:  "BufferData",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "target", TypeName: "GLenum"},
			{Ident: "data", TypeName: "*void"},
		},
	}
	call, err = cgoCall(bufferData, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "C.glBufferData(C.GLenum(target), data)", call)
}

func TestCgoCallTypedPointers(t *testing.T) {
	table := glTable()

	// Typed pointers must be cast to the matching C pointer type; cgo only
	// accepts unsafe.Pointer where the C parameter is void*.
	genBuffers := &registry.Command{
		Ident:  "GenBuffers",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "n", TypeName: "GLsizei"},
			{Ident: "buffers", TypeName: "*GLuint"},
		},
	}
	call, err := cgoCall(genBuffers, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "C.glGenBuffers(C.GLsizei(n), (*C.GLuint)(buffers))", call)

	shaderSource := &registry.Command{
		Ident:  "ShaderSource",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "shader", TypeName: "GLuint"},
			{Ident: "count", TypeName: "GLsizei"},
			{Ident: "string", TypeName: "**GLchar"},
			{Ident: "length", TypeName: "*GLint"},
		},
	}
	call, err = cgoCall(shaderSource, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "C.glShaderSource(C.GLuint(shader), C.GLsizei(count), (**C.GLchar)(string), (*C.GLint)(length))", call)

	// Void pointers at any level stay bare.
	getPointerv := &registry.Command{
		Ident:  "GetPointerv",
		Return: registry.Binding{TypeName: "void"},
		Params: []registry.Binding{
			{Ident: "pname", TypeName: "GLenum"},
			{Ident: "params", TypeName: "**void"},
		},
	}
	call, err = cgoCall(getPointerv, registry.NsGl, table)
	require.NoError(t, err)
	require.Equal(t, "C.glGetPointerv(C.GLenum(pname), params)", call)
}
