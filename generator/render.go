package generator

import (
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"
)

const (
	lineWidth = 80
	minFill   = 3

	timestampPrefix = "// Timestamp: "
	timestampLayout = "2006-Jan-02 15:04:05"
)

var bannerTmpl = template.Must(template.New("banner").Parse(
	`// This file was generated by {{.Tool}}
` + timestampPrefix + `{{.Time.Format "` + timestampLayout + `"}}
`))

// Node is one piece of a generated header.
type Node interface {
	render(b *strings.Builder)
}

// Banner marks a file as generated.
type Banner struct {
	Tool string
	Time time.Time
}

// Document is a complete generated header. The include guard is written
// from the single Guard field at both ends of the file.
type Document struct {
	Banner   Banner
	Guard    string
	Includes []string
	Body     []Node
}

// Render serializes the document.
func (d Document) Render() (string, error) {
	if d.Guard == "" {
		return "", errors.New("document has no include guard")
	}

	var b strings.Builder
	if err := bannerTmpl.Execute(&b, d.Banner); err != nil {
		return "", errors.Wrap(err, "failed to render banner")
	}

	b.WriteString("#ifndef " + d.Guard + "\n")
	b.WriteString("#define " + d.Guard + "\n\n")

	for _, inc := range d.Includes {
		b.WriteString("#include " + inc + "\n")
	}
	if len(d.Includes) > 0 {
		b.WriteString("\n")
	}

	for _, n := range d.Body {
		n.render(&b)
	}

	b.WriteString("#endif // " + d.Guard + "\n")
	return b.String(), nil
}

// Divider is a full width comment rule. Begin defaults to Indent + "// ".
type Divider struct {
	Indent string
	Fill   byte
	Begin  string
}

func (d Divider) render(b *strings.Builder) {
	b.WriteString(d.String())
}

func (d Divider) String() string {
	begin := d.Begin
	if begin == "" {
		begin = d.Indent + "// "
	}
	fill := d.Fill
	if fill == 0 {
		fill = '='
	}
	n := max(lineWidth-len(begin), minFill)
	return begin + strings.Repeat(string(fill), n) + "\n"
}

// Section is a title framed by two '=' dividers.
type Section struct {
	Title string
}

func (s Section) render(b *strings.Builder) {
	rule := Divider{}.String()
	b.WriteString(rule)
	b.WriteString("// " + s.Title + "\n")
	b.WriteString(rule)
}

// Comment is a run of "//" line comments.
type Comment struct {
	Indent string
	Lines  []string
}

func (c Comment) render(b *strings.Builder) {
	for _, line := range c.Lines {
		if line == "" {
			b.WriteString(c.Indent + "//\n")
			continue
		}
		b.WriteString(c.Indent + "// " + line + "\n")
	}
}

// Raw is emitted exactly as given.
type Raw string

func (r Raw) render(b *strings.Builder) {
	b.WriteString(string(r))
}

// Blank is an empty line.
type Blank struct{}

func (Blank) render(b *strings.Builder) {
	b.WriteString("\n")
}

// Field is one member of a Struct.
type Field struct {
	Indent string
	Type   string
	Name   string
}

func (f Field) render(b *strings.Builder) {
	b.WriteString(f.Indent + f.Type + " " + f.Name + ";\n")
}

// Struct is a "typedef struct _Name { ... } Name;" definition.
type Struct struct {
	Doc  Node
	Name string
	Body []Node
}

func (s Struct) render(b *strings.Builder) {
	if s.Doc != nil {
		s.Doc.render(b)
	}
	b.WriteString("typedef struct _" + s.Name + "\n{\n")
	for _, n := range s.Body {
		n.render(b)
	}
	b.WriteString("} " + s.Name + ";\n\n")
}
