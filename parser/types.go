package parser

import (
	"cmp"
	"fmt"

	semver "github.com/hashicorp/go-version"
)

// Version is a major.minor.revision triple taken from an @since tag or
// from the VERSION_* macros of a header.
type Version struct {
	Major    int `json:"major" yaml:"major"`
	Minor    int `json:"minor" yaml:"minor"`
	Revision int `json:"revision" yaml:"revision"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// Compare orders versions numerically, component by component.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Revision, o.Revision)
}

// Semver returns v as a hashicorp version for constraint checks.
func (v Version) Semver() *semver.Version {
	return semver.Must(semver.NewVersion(v.String()))
}

// RawBlock is the span of lines from a doc comment opener to the end of the
// declaration that follows it.
type RawBlock struct {
	StartLine int
	Lines     []string
}

// Function is one parsed declaration.
type Function struct {
	Name              string   `json:"name" yaml:"name"`
	TypedefName       string   `json:"typedef_name" yaml:"typedef_name"`
	Comment           string   `json:"comment" yaml:"comment"`
	ReturnType        string   `json:"return_type" yaml:"return_type"`
	CallingConvention string   `json:"calling_convention" yaml:"calling_convention"`
	Params            []string `json:"params" yaml:"params"`
	Terminator        string   `json:"terminator" yaml:"terminator"`
	Version           Version  `json:"version" yaml:"version"`
	Group             string   `json:"group" yaml:"group"`
	Line              int      `json:"line" yaml:"line"`
}

// Header is everything extracted from one input file. Functions keep the
// order in which they appear in the source. CopyRegions hold the type
// definitions marked for copying into the library headers.
type Header struct {
	Version     Version    `json:"version" yaml:"version"`
	Functions   []Function `json:"functions" yaml:"functions"`
	CopyRegions []string   `json:"copy_regions,omitempty" yaml:"copy_regions,omitempty"`
}
