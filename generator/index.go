package generator

import (
	"slices"

	"github.com/ardanlabs/protocol-converter/parser"
)

// GroupBucket holds the functions of one group within a version, in source
// order.
type GroupBucket struct {
	Name      string
	Functions []parser.Function
}

// VersionBucket holds the groups of one version in the order each group was
// first seen.
type VersionBucket struct {
	Version parser.Version
	Groups  []GroupBucket
}

// Index is the version -> group -> functions view that drives the protocol
// structure layout.
type Index []VersionBucket

// BuildIndex partitions functions by version (ascending, numeric) and then by
// group (first seen). It does not reorder functions inside a bucket.
func BuildIndex(functions []parser.Function) Index {
	var idx Index
	at := make(map[parser.Version]int)

	for _, fn := range functions {
		i, ok := at[fn.Version]
		if !ok {
			i = len(idx)
			at[fn.Version] = i
			idx = append(idx, VersionBucket{Version: fn.Version})
		}
		idx[i].add(fn)
	}

	slices.SortStableFunc(idx, func(a, b VersionBucket) int {
		return a.Version.Compare(b.Version)
	})
	return idx
}

func (b *VersionBucket) add(fn parser.Function) {
	for i := range b.Groups {
		if b.Groups[i].Name == fn.Group {
			b.Groups[i].Functions = append(b.Groups[i].Functions, fn)
			return
		}
	}
	b.Groups = append(b.Groups, GroupBucket{Name: fn.Group, Functions: []parser.Function{fn}})
}

// Versions lists the distinct versions, ascending.
func (idx Index) Versions() []parser.Version {
	versions := make([]parser.Version, 0, len(idx))
	for _, b := range idx {
		versions = append(versions, b.Version)
	}
	return versions
}

// Functions flattens the index in layout order.
func (idx Index) Functions() []parser.Function {
	var out []parser.Function
	for _, vb := range idx {
		for _, gb := range vb.Groups {
			out = append(out, gb.Functions...)
		}
	}
	return out
}
