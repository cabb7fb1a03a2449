package dax

import (
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/sax"
	"github.com/lestrrat-go/option"
)

// Version is reported by the command line tools.
const Version = "0.1.0"

type Option = option.Interface

// ParseOption configures a Parser.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

// Parser turns an XML stream into a node.Document. A Parser may be
// reused, but each call builds a fresh document.
type Parser struct {
	baseIRI       string
	cache         *cache.Cache
	logger        *slog.Logger
	charsetReader sax.CharsetReaderFunc
}

// TreeBuilder is the sax.Handler that builds the document. It keeps the
// node that receives the next child in node, starting with the
// document itself.
type TreeBuilder struct {
	doc     *node.Document
	node    node.Node
	loc     sax.DocumentLocator
	logger  *slog.Logger
	options []node.DocumentOption
}
