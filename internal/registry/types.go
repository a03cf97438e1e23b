// Package registry defines the intermediate representation for a parsed
// Khronos-style API registry and the filtering that selects the subset of
// definitions belonging to one generation request.
package registry

// Enum represents one named constant from the registry document.
type Enum struct {
	Ident string // Constant identifier, namespace prefix trimmed (e.g. "COLOR_BUFFER_BIT")
	Value string // Original literal text (e.g. "0x00004000"), preserved verbatim
	Type  string // Optional explicit type override from the document

	Introduced *Version  // Core version that introduced this enum, nil if never part of a numbered version
	Removals   []Removal // Versions/profiles in which this enum was removed
	Extension  string    // Extension that contributes this enum, empty for core entries
}

// Binding represents one function parameter or a return slot.
type Binding struct {
	Ident    string // Parameter identifier (empty for return slots)
	TypeName string // Registry type name; pointers carry a "*" prefix per level (e.g. "*GLchar")
}

// Command represents one API function.
type Command struct {
	Ident  string    // Function identifier, namespace prefix trimmed (e.g. "Clear")
	Return Binding   // Return slot; TypeName "void" means no return value
	Params []Binding // Parameters in call-site argument order
	Safe   bool      // No pointers in parameters or return; carried for the model contract, Go emission needs no unsafe wrapper
	Alias  string    // Identifier of the command this one aliases, if any

	Introduced *Version
	Removals   []Removal
	Extension  string
}

// Removal records that a definition was removed in a version, optionally
// limited to one profile. An empty profile applies to all profiles.
type Removal struct {
	Version Version
	Profile string
}

// Registry is the aggregate of all definitions for one namespace. The same
// type serves both lifecycle phases: the raw form holds everything the
// document declares, the resolved form (produced by Resolve) holds the
// deduplicated subset for one generation request. Generators consume only
// resolved registries and must not re-filter.
type Registry struct {
	namespace  Namespace
	enums      []Enum
	commands   []Command
	extensions []string // extension names declared by the document
}

// New constructs a Registry. Construction is the only producer; the
// definitions are never mutated afterwards.
func New(ns Namespace, enums []Enum, commands []Command, extensions []string) *Registry {
	return &Registry{
		namespace:  ns,
		enums:      enums,
		commands:   commands,
		extensions: extensions,
	}
}

// Namespace returns the API family this registry was parsed for.
func (r *Registry) Namespace() Namespace {
	return r.namespace
}

// Enums returns the enums in document order. Callers must not mutate the
// returned slice.
func (r *Registry) Enums() []Enum {
	return r.enums
}

// Commands returns the commands in document order. Callers must not mutate
// the returned slice.
func (r *Registry) Commands() []Command {
	return r.commands
}

// Extensions returns the extension names the document declares, in document
// order.
func (r *Registry) Extensions() []string {
	return r.extensions
}

// HasExtension reports whether the document declares the named extension.
func (r *Registry) HasExtension(name string) bool {
	for _, e := range r.extensions {
		if e == name {
			return true
		}
	}
	return false
}
