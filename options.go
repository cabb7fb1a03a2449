package dax

import (
	"log/slog"

	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/sax"
	"github.com/lestrrat-go/option"
)

type identBaseIRI struct{}
type identCache struct{}
type identLogger struct{}
type identCharsetReader struct{}

// WithBaseIRI sets the IRI that relative references in the document are
// resolved against. ParseFile defaults it to the file's own URI.
func WithBaseIRI(v string) ParseOption {
	return &parseOption{option.New(identBaseIRI{}, v)}
}

// WithCache shares c with the parsed document. Without it every parse
// gets its own cache.
func WithCache(v *cache.Cache) ParseOption {
	return &parseOption{option.New(identCache{}, v)}
}

// WithLogger sets the logger for warnings raised while parsing and by the
// resulting document. It takes precedence over a trace logger in the
// context.
func WithLogger(v *slog.Logger) ParseOption {
	return &parseOption{option.New(identLogger{}, v)}
}

// WithCharsetReader replaces the conversion used for documents that
// declare a non UTF-8 encoding.
func WithCharsetReader(v sax.CharsetReaderFunc) ParseOption {
	return &parseOption{option.New(identCharsetReader{}, v)}
}
