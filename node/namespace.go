package node

const (
	SVGNamespace       = "http://www.w3.org/2000/svg"
	XMLNamespace       = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace     = "http://www.w3.org/2000/xmlns/"
	XLinkNamespace     = "http://www.w3.org/1999/xlink"
	XMLEventsNamespace = "http://www.w3.org/2001/xml-events"
)

// Namespace is a (uri, prefix) binding registered on a Document.
type Namespace struct {
	prefix string
	href   string
}

func NewNamespace(prefix, uri string) Namespace {
	return Namespace{prefix: prefix, href: uri}
}

func (n Namespace) Prefix() string {
	return n.prefix
}

func (n Namespace) URI() string {
	return n.href
}

// splitQName splits "prefix:local" into its parts. The prefix is empty
// for unprefixed names.
func splitQName(qname string) (prefix, local string, err error) {
	if qname == "" {
		return "", "", ErrMalformedQName
	}
	colon := -1
	for i := 0; i < len(qname); i++ {
		switch qname[i] {
		case ':':
			if colon >= 0 {
				return "", "", ErrMalformedQName
			}
			colon = i
		case ' ', '\t', '\r', '\n', '<', '>', '&', '"', '\'', '=':
			return "", "", ErrMalformedQName
		}
	}
	if colon < 0 {
		return "", qname, nil
	}
	if colon == 0 || colon == len(qname)-1 {
		return "", "", ErrMalformedQName
	}
	return qname[:colon], qname[colon+1:], nil
}
