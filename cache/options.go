package cache

import (
	"log/slog"

	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identLogger struct{}
type identFetcher struct{}

// WithLogger sets the logger that receives cache warnings.
func WithLogger(l *slog.Logger) Option {
	return option.New(identLogger{}, l)
}

// WithFetcher sets the transport used for entries that are not local files.
func WithFetcher(f Fetcher) Option {
	return option.New(identFetcher{}, f)
}
