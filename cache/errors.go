package cache

import "errors"

var (
	ErrNotReady    = errors.New("cache entry is not ready")
	ErrRelativeIRI = errors.New("base IRI is not absolute")
)
