package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/protocol-converter/parser"
)

const structIndent = "  "

// Typedef is the function pointer type of one protocol member, preceded by
// the function's doc comment.
type Typedef struct {
	Prefix string
	Fn     parser.Function
}

func (t Typedef) render(b *strings.Builder) {
	fmt.Fprintf(b, "%s\ntypedef %s (%s *%s)(\n", t.Fn.Comment, t.Fn.ReturnType, t.Fn.CallingConvention, t.Name())
	writeParams(b, t.Fn)
	b.WriteString("\n")
}

// Name is the generated type name, e.g. SHARED_SHA256_HASH_ALL.
func (t Typedef) Name() string {
	return t.Prefix + t.Fn.TypedefName
}

func (g *Generator) protocolDocument() Document {
	idx := BuildIndex(g.header.Functions)

	body := []Node{
		Section{Title: "Protocol version: " + g.header.Version.String()},
		Blank{},
		Section{Title: "Typedef Declarations"},
	}
	for _, fn := range g.header.Functions {
		body = append(body, Typedef{Prefix: g.cfg.TypedefPrefix, Fn: fn})
	}

	body = append(body,
		Section{Title: "Protocol"},
		g.protocolStruct(idx),
	)

	return Document{
		Banner:   g.banner(),
		Guard:    GuardName(g.protocolPath),
		Includes: g.cfg.Protocol.Includes,
		Body:     body,
	}
}

func (g *Generator) protocolStruct(idx Index) Struct {
	name := g.cfg.Protocol.Struct

	body := []Node{
		Divider{Indent: structIndent, Fill: '-'},
		Comment{Indent: structIndent, Lines: []string{
			"Versioning",
			"Major.Minor.Revision",
			"Major - Breaking change to this structure",
			"Minor - Functions added to the end of this structure",
			"Revision - Some non breaking change",
			"",
		}},
		Divider{Indent: structIndent, Fill: '-'},
	}

	for _, vb := range idx {
		for _, gb := range vb.Groups {
			body = append(body, Divider{
				Fill:  '-',
				Begin: fmt.Sprintf("%s/// v%s %s ", structIndent, vb.Version, gb.Name),
			})
			for _, fn := range gb.Functions {
				typedef := Typedef{Prefix: g.cfg.TypedefPrefix, Fn: fn}
				body = append(body, Field{Indent: structIndent, Type: typedef.Name(), Name: fn.Name})
			}
		}
	}

	return Struct{
		Doc:  Raw(g.protocolDoc(idx)),
		Name: name,
		Body: body,
	}
}

func (g *Generator) protocolDoc(idx Index) string {
	name := g.cfg.Protocol.Struct
	versions := idx.Versions()

	since := g.header.Version
	if len(versions) > 0 {
		since = versions[0]
	}

	var b strings.Builder
	b.WriteString("\n/**\n")
	fmt.Fprintf(&b, "%s@struct _%s\n", structIndent, name)
	fmt.Fprintf(&b, "%s@brief This structure defines the protocol for shared cryptographic operations.\n\n", structIndent)
	fmt.Fprintf(&b, "%sThe _%s structure provides a standardized interface for\n", structIndent, name)
	fmt.Fprintf(&b, "%scryptographic functions, enabling interoperability and consistent usage across\n", structIndent)
	fmt.Fprintf(&b, "%sdifferent cryptographic implementations.\n\n", structIndent)
	fmt.Fprintf(&b, "%sSupports functions from versions:\n", structIndent)
	for _, v := range versions {
		fmt.Fprintf(&b, "%s - %s\n", structIndent, v)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s@since %s\n", structIndent, since)
	fmt.Fprintf(&b, "%s@ingroup %s\n", structIndent, g.cfg.Protocol.Group)
	b.WriteString("**/\n")
	return b.String()
}

// writeParams echoes the parameter lines and the closing line of a
// declaration exactly as they were read.
func writeParams(b *strings.Builder, fn parser.Function) {
	for _, p := range fn.Params {
		b.WriteString(p + "\n")
	}
	b.WriteString(fn.Terminator + "\n")
}

// GuardName derives the include guard of a generated file from its base
// name, e.g. "out/SharedCryptoProtocol.h" -> "SHARED_CRYPTO_PROTOCOL_".
func GuardName(path string) string {
	return parser.UpperSnake(baseName(path)) + "_"
}

func baseName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}
