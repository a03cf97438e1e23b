package registry

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Document shapes for the Khronos registry XML. Only the elements the
// generator needs are decoded; everything else is ignored by the decoder.

type xmlDocument struct {
	XMLName    xml.Name          `xml:"registry"`
	EnumBlocks []xmlEnumBlock    `xml:"enums"`
	Commands   []xmlCommandBlock `xml:"commands"`
	Features   []xmlFeature      `xml:"feature"`
	Extensions xmlExtensionBlock `xml:"extensions"`
}

type xmlEnumBlock struct {
	Enums []xmlEnum `xml:"enum"`
}

type xmlEnum struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"`
	API   string `xml:"api,attr"`
}

type xmlCommandBlock struct {
	Commands []xmlCommand `xml:"command"`
}

type xmlCommand struct {
	Name   string     `xml:"name,attr"`  // set on alias-only declarations
	Alias  string     `xml:"alias,attr"` // identifier of the aliased command
	Proto  xmlTyped   `xml:"proto"`
	Params []xmlTyped `xml:"param"`
}

// xmlTyped captures mixed-content elements of the form
// `const <ptype>GLchar</ptype> *<name>name</name>`: the character data
// carries const qualifiers and pointer stars, the children the type and
// identifier.
type xmlTyped struct {
	Raw   string `xml:",chardata"`
	PType string `xml:"ptype"`
	Name  string `xml:"name"`
}

type xmlFeature struct {
	API     string     `xml:"api,attr"`
	Number  string     `xml:"number,attr"`
	Require []xmlIface `xml:"require"`
	Remove  []xmlIface `xml:"remove"`
}

type xmlIface struct {
	Profile  string   `xml:"profile,attr"`
	API      string   `xml:"api,attr"`
	Enums    []xmlRef `xml:"enum"`
	Commands []xmlRef `xml:"command"`
}

type xmlRef struct {
	Name string `xml:"name,attr"`
}

type xmlExtensionBlock struct {
	Extensions []xmlExtension `xml:"extension"`
}

type xmlExtension struct {
	Name      string     `xml:"name,attr"`
	Supported string     `xml:"supported,attr"`
	Require   []xmlIface `xml:"require"`
}

// DecodeFile reads a registry document from disk.
func DecodeFile(path string, ns Namespace) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening registry document %s", path)
	}
	defer f.Close()
	return Decode(f, ns)
}

// Decode reads a Khronos-style registry document into a raw Registry for the
// given namespace. Definitions carried by other api variants of the same
// document (e.g. gles entries in gl.xml) are skipped. Structural problems in
// the document are reported here; the resolver assumes its input is valid.
func Decode(r io.Reader, ns Namespace) (*Registry, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding registry document")
	}

	enums, enumIndex, err := decodeEnums(&doc, ns)
	if err != nil {
		return nil, err
	}
	commands, cmdIndex, err := decodeCommands(&doc, ns)
	if err != nil {
		return nil, err
	}
	if err := applyFeatures(&doc, ns, enums, enumIndex, commands, cmdIndex); err != nil {
		return nil, err
	}
	enums, commands, extensions, err := applyExtensions(&doc, ns, enums, enumIndex, commands, cmdIndex)
	if err != nil {
		return nil, err
	}

	return New(ns, enums, commands, extensions), nil
}

func decodeEnums(doc *xmlDocument, ns Namespace) ([]Enum, map[string]int, error) {
	var enums []Enum
	index := map[string]int{}
	for _, block := range doc.EnumBlocks {
		for _, e := range block.Enums {
			if e.API != "" && e.API != ns.API() {
				continue
			}
			if e.Name == "" {
				return nil, nil, errors.New("malformed enum record: missing name")
			}
			if e.Value == "" {
				return nil, nil, errors.Newf("malformed enum record %s: missing value", e.Name)
			}
			ident := strings.TrimPrefix(e.Name, ns.EnumPrefix())
			if _, dup := index[e.Name]; dup {
				continue
			}
			index[e.Name] = len(enums)
			enums = append(enums, Enum{Ident: ident, Value: e.Value, Type: e.Type})
		}
	}
	return enums, index, nil
}

func decodeCommands(doc *xmlDocument, ns Namespace) ([]Command, map[string]int, error) {
	var commands []Command
	index := map[string]int{}
	names := map[int]string{} // document name per command, for feature lookups
	for _, block := range doc.Commands {
		for _, c := range block.Commands {
			name := c.Name
			if name == "" {
				name = c.Proto.Name
			}
			if name == "" {
				return nil, nil, errors.New("malformed command record: missing name")
			}
			cmd := Command{
				Ident: strings.TrimPrefix(name, ns.CmdPrefix()),
				Alias: strings.TrimPrefix(c.Alias, ns.CmdPrefix()),
			}
			if c.Alias == "" {
				ret, err := typedBinding(c.Proto, "")
				if err != nil {
					return nil, nil, errors.Wrapf(err, "command %s: return", name)
				}
				cmd.Return = ret
				for _, p := range c.Params {
					if p.Name == "" {
						return nil, nil, errors.Newf("malformed command record %s: parameter missing name", name)
					}
					b, err := typedBinding(p, p.Name)
					if err != nil {
						return nil, nil, errors.Wrapf(err, "command %s: parameter %s", name, p.Name)
					}
					cmd.Params = append(cmd.Params, b)
				}
			}
			index[name] = len(commands)
			names[len(commands)] = name
			commands = append(commands, cmd)
		}
	}

	// Alias-only declarations inherit their signature from the alias target,
	// which may itself be declared later in the document.
	for i := range commands {
		if commands[i].Alias == "" {
			continue
		}
		target := ns.CmdPrefix() + commands[i].Alias
		j, ok := index[target]
		if !ok {
			return nil, nil, errors.Newf("command %s aliases unknown command %s", names[i], target)
		}
		for commands[j].Alias != "" {
			j, ok = index[ns.CmdPrefix()+commands[j].Alias]
			if !ok {
				return nil, nil, errors.Newf("command %s: broken alias chain", names[i])
			}
		}
		commands[i].Return = commands[j].Return
		commands[i].Params = commands[j].Params
	}

	for i := range commands {
		commands[i].Safe = isSafe(&commands[i])
	}
	return commands, index, nil
}

// typedBinding turns a mixed-content proto/param element into a Binding. The
// registry type name comes from the ptype child when present, otherwise from
// the surrounding character data (the bare "void" case); pointer levels come
// from stars in the character data.
func typedBinding(t xmlTyped, ident string) (Binding, error) {
	name := t.PType
	if name == "" {
		name = strings.TrimSpace(strings.NewReplacer("const", "", "*", "").Replace(t.Raw))
	}
	if name == "" {
		return Binding{}, errors.New("missing type name")
	}
	stars := strings.Count(t.Raw, "*")
	return Binding{Ident: ident, TypeName: strings.Repeat("*", stars) + name}, nil
}

// isSafe mirrors the original generator's notion of safety: a command is
// safe when neither its parameters nor its return value involve pointers.
func isSafe(cmd *Command) bool {
	if strings.HasPrefix(cmd.Return.TypeName, "*") {
		return false
	}
	for _, p := range cmd.Params {
		if strings.HasPrefix(p.TypeName, "*") {
			return false
		}
	}
	return true
}

func applyFeatures(doc *xmlDocument, ns Namespace, enums []Enum, enumIndex map[string]int, commands []Command, cmdIndex map[string]int) error {
	for _, ft := range doc.Features {
		if ft.API != "" && ft.API != ns.API() {
			continue
		}
		version, err := ParseVersion(ft.Number)
		if err != nil {
			return errors.Wrapf(err, "feature %s", ft.Number)
		}
		for _, req := range ft.Require {
			if req.API != "" && req.API != ns.API() {
				continue
			}
			for _, ref := range req.Enums {
				i, ok := enumIndex[ref.Name]
				if !ok {
					return errors.Newf("feature %s requires unknown enum %s", version, ref.Name)
				}
				if enums[i].Introduced == nil {
					v := version
					enums[i].Introduced = &v
				}
			}
			for _, ref := range req.Commands {
				i, ok := cmdIndex[ref.Name]
				if !ok {
					return errors.Newf("feature %s requires unknown command %s", version, ref.Name)
				}
				if commands[i].Introduced == nil {
					v := version
					commands[i].Introduced = &v
				}
			}
		}
		for _, rem := range ft.Remove {
			removal := Removal{Version: version, Profile: rem.Profile}
			for _, ref := range rem.Enums {
				if i, ok := enumIndex[ref.Name]; ok {
					enums[i].Removals = append(enums[i].Removals, removal)
				}
			}
			for _, ref := range rem.Commands {
				if i, ok := cmdIndex[ref.Name]; ok {
					commands[i].Removals = append(commands[i].Removals, removal)
				}
			}
		}
	}
	return nil
}

// applyExtensions appends one duplicate record per extension-required
// definition. A definition promoted to core and still re-declared by an
// extension therefore appears twice in the raw registry; the resolver's
// first-seen-wins dedup keeps the core record.
func applyExtensions(doc *xmlDocument, ns Namespace, enums []Enum, enumIndex map[string]int, commands []Command, cmdIndex map[string]int) ([]Enum, []Command, []string, error) {
	var declared []string
	for _, ext := range doc.Extensions.Extensions {
		if !supportsAPI(ext.Supported, ns.API()) {
			continue
		}
		declared = append(declared, ext.Name)
		for _, req := range ext.Require {
			if req.API != "" && req.API != ns.API() {
				continue
			}
			for _, ref := range req.Enums {
				i, ok := enumIndex[ref.Name]
				if !ok {
					return nil, nil, nil, errors.Newf("extension %s requires unknown enum %s", ext.Name, ref.Name)
				}
				dup := enums[i]
				dup.Introduced = nil
				dup.Removals = nil
				dup.Extension = ext.Name
				enums = append(enums, dup)
			}
			for _, ref := range req.Commands {
				i, ok := cmdIndex[ref.Name]
				if !ok {
					return nil, nil, nil, errors.Newf("extension %s requires unknown command %s", ext.Name, ref.Name)
				}
				dup := commands[i]
				dup.Introduced = nil
				dup.Removals = nil
				dup.Extension = ext.Name
				commands = append(commands, dup)
			}
		}
	}
	return enums, commands, declared, nil
}

func supportsAPI(supported, api string) bool {
	if supported == "" {
		return true
	}
	for _, s := range strings.Split(supported, "|") {
		if s == api {
			return true
		}
	}
	return false
}
