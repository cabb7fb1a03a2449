package cache

import (
	"fmt"
	"net/url"
)

// ResolveIRI resolves ref against base following RFC 3986 section 5.
// An empty base returns ref unchanged.
func ResolveIRI(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("failed to parse reference %q: %w", ref, err)
	}
	if base == "" || r.IsAbs() {
		return r.String(), nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base %q: %w", base, err)
	}
	if !b.IsAbs() {
		return "", fmt.Errorf("%w: %q", ErrRelativeIRI, base)
	}
	return b.ResolveReference(r).String(), nil
}
