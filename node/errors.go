package node

import "errors"

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotImplemented   = errors.New("not implemented")
	ErrHierarchy        = errors.New("node already has a parent")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrUnknownElement   = errors.New("unknown element")
	ErrInvalidValue     = errors.New("invalid attribute value")

	// namespace well-formedness
	ErrMalformedQName         = errors.New("malformed qualified name")
	ErrPrefixWithoutNamespace = errors.New("prefixed name without namespace")
	ErrXMLPrefixMismatch      = errors.New("xml prefix bound to a foreign namespace")
	ErrXMLNSPrefixMismatch    = errors.New("xmlns prefix bound to a foreign namespace")
	ErrXMLNSNamespaceMisuse   = errors.New("xmlns namespace used without xmlns prefix")
)
