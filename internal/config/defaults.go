package config

// Documented defaults for the selection inputs. The namespace defaults to
// the core graphics API, the version to the 4.3 baseline of the standalone
// generator, and the style to the directly linked bindings.
const (
	DefaultNamespace = "gl"
	DefaultProfile   = "core"
	DefaultVersion   = "4.3"
	DefaultGenerator = "static"
)
