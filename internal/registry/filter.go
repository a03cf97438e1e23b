package registry

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Profile names accepted in a Filter.
const (
	ProfileCore          = "core"
	ProfileCompatibility = "compatibility"
)

// Filter is the request-side selection: which subset of a raw registry one
// generation request wants. A nil *Filter means "full" mode: everything the
// document defines, with no version, profile or extension gating.
type Filter struct {
	Version    string   // Requested version, e.g. "4.3"
	Profile    string   // "core" or "compatibility"
	Extensions []string // Extension names to pull in regardless of version gating
}

// ResolveOptions carries resolution policy that is configuration, not
// selection. StrictExtensions turns an extension name absent from the
// document into a hard error; by default such a name simply contributes
// nothing.
type ResolveOptions struct {
	StrictExtensions bool
}

// Resolve computes the resolved registry for one generation request: the
// deduplicated, document-ordered subset of raw that the filter selects.
// Resolving the same raw registry against the same filter is deterministic.
func Resolve(raw *Registry, f *Filter, opts ResolveOptions) (*Registry, error) {
	if f == nil {
		return New(raw.namespace, dedupEnums(raw.enums), dedupCommands(raw.commands), raw.extensions), nil
	}

	if f.Profile != ProfileCore && f.Profile != ProfileCompatibility {
		return nil, errors.Newf("unknown profile %q, accepted values: %s, %s", f.Profile, ProfileCore, ProfileCompatibility)
	}
	version, err := ParseVersion(f.Version)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(f.Extensions))
	for _, name := range f.Extensions {
		wanted[name] = true
	}
	if opts.StrictExtensions {
		var missing []string
		for _, name := range f.Extensions {
			if !raw.HasExtension(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, errors.Newf("unknown extension(s) %s not declared by the registry document", strings.Join(missing, ", "))
		}
	}

	var enums []Enum
	for _, e := range raw.enums {
		if included(e.Introduced, e.Removals, e.Extension, version, f.Profile, wanted) {
			enums = append(enums, e)
		}
	}
	var commands []Command
	for _, c := range raw.commands {
		if included(c.Introduced, c.Removals, c.Extension, version, f.Profile, wanted) {
			commands = append(commands, c)
		}
	}

	return New(raw.namespace, dedupEnums(enums), dedupCommands(commands), raw.extensions), nil
}

// included decides whether one definition belongs to the selection. Core
// entries are gated by introduction version and profile-qualified removals;
// extension entries bypass version gating entirely.
func included(introduced *Version, removals []Removal, extension string, version Version, profile string, wanted map[string]bool) bool {
	if extension != "" {
		return wanted[extension]
	}
	if introduced == nil || !introduced.AtMost(version) {
		return false
	}
	for _, rem := range removals {
		if !rem.Version.AtMost(version) {
			continue
		}
		// An unqualified removal applies everywhere; a profile-qualified one
		// only to its own profile, so "compatibility" keeps what "core" drops.
		if rem.Profile == "" || rem.Profile == profile {
			return false
		}
	}
	return true
}

// dedupEnums drops later entries whose identifier was already seen,
// preserving document order. First occurrence wins.
func dedupEnums(enums []Enum) []Enum {
	seen := make(map[string]bool, len(enums))
	out := make([]Enum, 0, len(enums))
	for _, e := range enums {
		if seen[e.Ident] {
			continue
		}
		seen[e.Ident] = true
		out = append(out, e)
	}
	return out
}

func dedupCommands(commands []Command) []Command {
	seen := make(map[string]bool, len(commands))
	out := make([]Command, 0, len(commands))
	for _, c := range commands {
		if seen[c.Ident] {
			continue
		}
		seen[c.Ident] = true
		out = append(out, c)
	}
	return out
}
