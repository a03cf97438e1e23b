// Package generator turns a resolved registry into binding source. Four
// interchangeable strategies implement the same contract and differ only in
// the shape of the emitted call surface.
package generator

import (
	"strings"

	"github.com/cockroachdb/errors"

	"glgen/internal/registry"
	"glgen/internal/typemap"
)

// Fragment is one emitted piece of source. A generation request produces an
// ordered sequence of fragments that concatenate into the output file.
type Fragment struct {
	Name string
	Body string
}

// Generator is the contract every output strategy implements. Write is
// called exactly once per generation request with a resolved registry; on
// error no fragments are returned.
type Generator interface {
	Write(reg *registry.Registry) ([]Fragment, error)
}

// Style names accepted by New.
const (
	StyleStatic       = "static"
	StyleGlobal       = "global"
	StyleStruct       = "struct"
	StyleStaticStruct = "static_struct"
)

// Styles lists the accepted generator style names.
func Styles() []string {
	return []string{StyleStatic, StyleGlobal, StyleStruct, StyleStaticStruct}
}

// New selects a generator strategy by name.
func New(style string, table *typemap.Table) (Generator, error) {
	switch style {
	case StyleStatic:
		return &StaticGenerator{table: table}, nil
	case StyleGlobal:
		return &GlobalGenerator{table: table}, nil
	case StyleStruct:
		return &StructGenerator{table: table}, nil
	case StyleStaticStruct:
		return &StaticStructGenerator{table: table}, nil
	}
	return nil, errors.Newf("unknown generator %q, accepted values: %s", style, strings.Join(Styles(), ", "))
}
