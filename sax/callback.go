package sax

import "context"

// SetDocumentLocatorFunc defines the function type for SAX2.SetDocumentLocatorHandler
type SetDocumentLocatorFunc func(ctx context.Context, loc DocumentLocator) error

// StartDocumentFunc defines the function type for SAX2.StartDocumentHandler
type StartDocumentFunc func(ctx context.Context) error

// EndDocumentFunc defines the function type for SAX2.EndDocumentHandler
type EndDocumentFunc func(ctx context.Context) error

// StartElementNSFunc defines the function type for SAX2.StartElementNSHandler
type StartElementNSFunc func(ctx context.Context, elem ParsedElement, empty bool) error

// EndElementNSFunc defines the function type for SAX2.EndElementNSHandler
type EndElementNSFunc func(ctx context.Context, elem ParsedElement) error

// CharactersFunc defines the function type for SAX2.CharactersHandler
type CharactersFunc func(ctx context.Context, content []byte) error

// CommentFunc defines the function type for SAX2.CommentHandler
type CommentFunc func(ctx context.Context, content []byte) error

// ProcessingInstructionFunc defines the function type for SAX2.ProcessingInstructionHandler
type ProcessingInstructionFunc func(ctx context.Context, target, data string) error
