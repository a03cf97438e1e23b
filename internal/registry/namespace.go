package registry

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Namespace identifies one supported API family.
type Namespace string

const (
	NsGl    Namespace = "gl"
	NsGles1 Namespace = "gles1"
	NsGles2 Namespace = "gles2"
	NsGlx   Namespace = "glx"
	NsWgl   Namespace = "wgl"
	NsEgl   Namespace = "egl"
)

// Namespaces lists the accepted namespace names, in the order they are
// reported in error messages.
func Namespaces() []string {
	return []string{"gl", "gles1", "gles2", "glx", "wgl", "egl"}
}

// ParseNamespace validates a namespace name supplied in a selection request.
func ParseNamespace(s string) (Namespace, error) {
	switch Namespace(s) {
	case NsGl, NsGles1, NsGles2, NsGlx, NsWgl, NsEgl:
		return Namespace(s), nil
	}
	return "", errors.Newf("unknown namespace %q, accepted values: %s", s, strings.Join(Namespaces(), ", "))
}

// API returns the api attribute value this namespace matches in the
// registry document. The GLES namespaces share the gl document but gate on
// their own api strings.
func (n Namespace) API() string {
	return string(n)
}

// CmdPrefix returns the prefix trimmed from command identifiers at parse
// time and re-added when constructing external symbol names.
func (n Namespace) CmdPrefix() string {
	switch n {
	case NsGlx:
		return "glX"
	case NsWgl:
		return "wgl"
	case NsEgl:
		return "egl"
	default:
		return "gl"
	}
}

// EnumPrefix returns the prefix trimmed from enum identifiers at parse time.
func (n Namespace) EnumPrefix() string {
	switch n {
	case NsGlx:
		return "GLX_"
	case NsWgl:
		return "WGL_"
	case NsEgl:
		return "EGL_"
	default:
		return "GL_"
	}
}

// StructName returns the aggregate type name used by the struct-shaped
// generator styles (e.g. "GL", "GLX").
func (n Namespace) StructName() string {
	switch n {
	case NsGlx:
		return "GLX"
	case NsWgl:
		return "WGL"
	case NsEgl:
		return "EGL"
	default:
		return "GL"
	}
}
