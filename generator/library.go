package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/protocol-converter/parser"
)

// Declaration re-emits a parsed function declaration verbatim.
type Declaration struct {
	Fn parser.Function
}

func (d Declaration) render(b *strings.Builder) {
	fmt.Fprintf(b, "%s\n%s\n%s\n%s (\n", d.Fn.Comment, d.Fn.ReturnType, d.Fn.CallingConvention, d.Fn.Name)
	writeParams(b, d.Fn)
	b.WriteString("\n")
}

// Category maps a group label onto one of the configured library
// categories, ignoring case. Unknown groups fall into the default category.
func (g *Generator) Category(group string) string {
	for _, c := range g.cfg.Library.Groups {
		if strings.EqualFold(c, group) {
			return c
		}
	}
	return g.cfg.Library.DefaultGroup
}

// LibraryPath is the output path of a category's header.
func (g *Generator) LibraryPath(category string) string {
	return filepath.Join(g.libraryDir, category+g.cfg.Library.Suffix)
}

// libraryDocuments returns one document per non-empty category, keyed by
// output path. Every document starts with the header's copy regions so the
// declarations have their types. Functions keep their source order within a
// category.
func (g *Generator) libraryDocuments() map[string]Document {
	members := make(map[string][]parser.Function)
	for _, fn := range g.header.Functions {
		cat := g.Category(fn.Group)
		members[cat] = append(members[cat], fn)
	}

	docs := make(map[string]Document, len(members))
	for cat, fns := range members {
		path := g.LibraryPath(cat)

		var body []Node
		for _, region := range g.header.CopyRegions {
			body = append(body, Raw(region+"\n"), Blank{})
		}
		body = append(body, Section{Title: cat + " Functions"}, Blank{})
		for _, fn := range fns {
			body = append(body, Declaration{Fn: fn})
		}

		docs[path] = Document{
			Banner:   g.banner(),
			Guard:    GuardName(path),
			Includes: g.cfg.Library.Includes,
			Body:     body,
		}
	}
	return docs
}
