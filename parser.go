package dax

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/internal/debug"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/sax"
	"github.com/pkg/errors"
)

// Parse builds a document from b.
func Parse(ctx context.Context, b []byte, options ...ParseOption) (*node.Document, error) {
	return NewParser(options...).Parse(ctx, b)
}

// ParseBuffer builds a document from b, resolving relative references
// against baseIRI.
func ParseBuffer(ctx context.Context, b []byte, baseIRI string, options ...ParseOption) (*node.Document, error) {
	options = append([]ParseOption{WithBaseIRI(baseIRI)}, options...)
	return NewParser(options...).Parse(ctx, b)
}

// ParseReader builds a document from everything read from r.
func ParseReader(ctx context.Context, r io.Reader, options ...ParseOption) (*node.Document, error) {
	return NewParser(options...).ParseReader(ctx, r)
}

// ParseFile builds a document from the file at path. Unless WithBaseIRI
// is given, the base IRI is the file's absolute file:// URI.
func ParseFile(ctx context.Context, path string, options ...ParseOption) (*node.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, `failed to resolve path %q`, path)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrapf(err, `failed to open %q`, path)
	}
	defer f.Close()

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	options = append([]ParseOption{WithBaseIRI(u.String())}, options...)
	return NewParser(options...).ParseReader(ctx, f)
}

func NewParser(options ...ParseOption) *Parser {
	var p Parser
	for _, o := range options {
		switch o.Ident() {
		case identBaseIRI{}:
			if v, ok := o.Value().(string); ok {
				p.baseIRI = v
			}
		case identCache{}:
			if v, ok := o.Value().(*cache.Cache); ok {
				p.cache = v
			}
		case identLogger{}:
			if v, ok := o.Value().(*slog.Logger); ok {
				p.logger = v
			}
		case identCharsetReader{}:
			if v, ok := o.Value().(sax.CharsetReaderFunc); ok {
				p.charsetReader = v
			}
		}
	}
	return &p
}

func (p *Parser) Parse(ctx context.Context, b []byte) (*node.Document, error) {
	return p.ParseReader(ctx, bytes.NewReader(b))
}

func (p *Parser) ParseReader(ctx context.Context, src io.Reader) (*node.Document, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidInput, `nil reader`)
	}

	logger := p.logger
	if logger == nil {
		logger = getTraceLogFromContext(ctx)
	}

	c := p.cache
	if c == nil {
		c = cache.New(cache.WithLogger(logger))
	}

	var readerOptions []sax.Option
	if p.charsetReader != nil {
		readerOptions = append(readerOptions, sax.WithCharsetReader(p.charsetReader))
	}
	r, err := sax.NewReader(src, readerOptions...)
	if err != nil {
		return nil, errors.Wrap(err, `failed to create reader`)
	}

	tb := NewTreeBuilder(
		node.WithLogger(logger),
		node.WithCache(c),
		node.WithBaseIRI(p.baseIRI),
	)
	if err := r.Parse(ctx, tb); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if debug.Enabled {
			debug.Printf("dax.Parser: parse failed at %d:%d: %s", r.Line(), r.Column(), err)
		}
		return nil, &ParseError{
			Err:    err,
			Line:   r.Line(),
			Column: r.Column(),
			Offset: r.Offset(),
		}
	}
	return tb.Document(), nil
}
