package sax

import "context"

// DocumentLocator reports the position of the reader in the input.
type DocumentLocator interface {
	Line() int
	Column() int
	Offset() int64
}

// Handler is the interface defining the SAX2 handler. The first argument
// is always the context passed to Reader.Parse.
type Handler interface {
	SetDocumentLocator(context.Context, DocumentLocator) error
	StartDocument(context.Context) error
	EndDocument(context.Context) error
	// StartElementNS is called for every start tag. empty is true for a
	// self-closing tag, in which case no EndElementNS follows.
	StartElementNS(ctx context.Context, elem ParsedElement, empty bool) error
	EndElementNS(context.Context, ParsedElement) error
	Characters(context.Context, []byte) error
	Comment(context.Context, []byte) error
	ProcessingInstruction(ctx context.Context, target, data string) error
}

// ParsedElement is a start tag with its prefixes resolved.
type ParsedElement interface {
	Prefix() string
	URI() string
	LocalName() string
	Name() string
	Attributes() []ParsedAttribute
}

type ParsedAttribute interface {
	Prefix() string
	URI() string
	LocalName() string
	Name() string
	Value() string
}
