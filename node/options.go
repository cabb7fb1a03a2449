package node

import (
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identLogger struct{}
type identCache struct{}
type identBaseIRI struct{}

// DocumentOption configures a Document created by NewDocument.
type DocumentOption interface {
	Option
	documentOption()
}

type documentOption struct{ Option }

func (*documentOption) documentOption() {}

// WithLogger sets the logger that receives the document's warnings.
func WithLogger(l *slog.Logger) DocumentOption {
	return &documentOption{option.New(identLogger{}, l)}
}

// WithCache sets the resource cache used to resolve external references.
// Without it the document creates a private cache.
func WithCache(c *cache.Cache) DocumentOption {
	return &documentOption{option.New(identCache{}, c)}
}

// WithBaseIRI sets the IRI that relative references are resolved against
// when no xml:base applies.
func WithBaseIRI(s string) DocumentOption {
	return &documentOption{option.New(identBaseIRI{}, s)}
}
