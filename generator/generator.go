package generator

import (
	"time"

	"github.com/ardanlabs/protocol-converter/config"
	"github.com/ardanlabs/protocol-converter/parser"
	"github.com/pkg/errors"
)

// Tool is the name written in the banner of every generated file.
const Tool = "protocol-converter"

type Generator struct {
	header *parser.Header
	cfg    config.Config
	now    func() time.Time

	protocol     bool
	protocolPath string
	library      bool
	libraryDir   string
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig replaces the default settings.
func WithConfig(cfg config.Config) Option {
	return func(g *Generator) {
		g.cfg = cfg
		g.protocolPath = cfg.Protocol.Output
		g.libraryDir = cfg.Library.Dir
	}
}

// WithProtocol enables the protocol header, written to path. An empty path
// keeps the configured one.
func WithProtocol(path string) Option {
	return func(g *Generator) {
		g.protocol = true
		if path != "" {
			g.protocolPath = path
		}
	}
}

// WithLibrary enables the grouped library headers, written under dir. An
// empty dir keeps the configured one.
func WithLibrary(dir string) Option {
	return func(g *Generator) {
		g.library = true
		if dir != "" {
			g.libraryDir = dir
		}
	}
}

// WithClock sets the time source used for the banner timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New returns a generator for header. Without WithProtocol or WithLibrary
// both kinds of output are produced.
func New(header *parser.Header, opts ...Option) *Generator {
	cfg := config.Default()
	g := &Generator{
		header:       header,
		cfg:          cfg,
		now:          time.Now,
		protocolPath: cfg.Protocol.Output,
		libraryDir:   cfg.Library.Dir,
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.protocol && !g.library {
		g.protocol = true
		g.library = true
	}
	return g
}

// Generate renders every enabled output in memory, keyed by output path.
// Nothing is written; a failure returns no files at all.
func (g *Generator) Generate() (map[string]string, error) {
	if g.header == nil {
		return nil, errors.New("no header to generate from")
	}

	docs := make(map[string]Document)
	if g.protocol {
		docs[g.protocolPath] = g.protocolDocument()
	}
	if g.library {
		for path, doc := range g.libraryDocuments() {
			if _, ok := docs[path]; ok {
				return nil, errors.Errorf("library header %s collides with the protocol header", path)
			}
			docs[path] = doc
		}
	}

	files := make(map[string]string, len(docs))
	for path, doc := range docs {
		content, err := doc.Render()
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s", path)
		}
		files[path] = content
	}

	return files, nil
}

func (g *Generator) banner() Banner {
	return Banner{Tool: Tool, Time: g.now()}
}
