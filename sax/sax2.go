package sax

import "context"

// SAX2 is the callback based SAX2 handler. Events without a registered
// callback are ignored.
type SAX2 struct {
	SetDocumentLocatorHandler    SetDocumentLocatorFunc
	StartDocumentHandler         StartDocumentFunc
	EndDocumentHandler           EndDocumentFunc
	StartElementNSHandler        StartElementNSFunc
	EndElementNSHandler          EndElementNSFunc
	CharactersHandler            CharactersFunc
	CommentHandler               CommentFunc
	ProcessingInstructionHandler ProcessingInstructionFunc
}

var _ Handler = (*SAX2)(nil)

// New creates a new instance of SAX2. All callbacks are
// uninitialized.
func New() *SAX2 {
	return &SAX2{}
}

func (s *SAX2) SetDocumentLocator(ctx context.Context, loc DocumentLocator) error {
	if h := s.SetDocumentLocatorHandler; h != nil {
		return h(ctx, loc)
	}
	return nil
}

func (s *SAX2) StartDocument(ctx context.Context) error {
	if h := s.StartDocumentHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s *SAX2) EndDocument(ctx context.Context) error {
	if h := s.EndDocumentHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s *SAX2) StartElementNS(ctx context.Context, elem ParsedElement, empty bool) error {
	if h := s.StartElementNSHandler; h != nil {
		return h(ctx, elem, empty)
	}
	return nil
}

func (s *SAX2) EndElementNS(ctx context.Context, elem ParsedElement) error {
	if h := s.EndElementNSHandler; h != nil {
		return h(ctx, elem)
	}
	return nil
}

func (s *SAX2) Characters(ctx context.Context, data []byte) error {
	if h := s.CharactersHandler; h != nil {
		return h(ctx, data)
	}
	return nil
}

func (s *SAX2) Comment(ctx context.Context, data []byte) error {
	if h := s.CommentHandler; h != nil {
		return h(ctx, data)
	}
	return nil
}

func (s *SAX2) ProcessingInstruction(ctx context.Context, target, data string) error {
	if h := s.ProcessingInstructionHandler; h != nil {
		return h(ctx, target, data)
	}
	return nil
}
