package node

// Attribute is a namespace qualified attribute of an element.
type Attribute struct {
	prefix string
	local  string
	uri    string
	value  string
}

type attrKey struct {
	uri   string
	local string
}

// Name returns the qualified name as it appeared in the document.
func (a *Attribute) Name() string {
	if a.prefix == "" {
		return a.local
	}
	return a.prefix + ":" + a.local
}

func (a *Attribute) LocalName() string {
	return a.local
}

func (a *Attribute) Prefix() string {
	return a.prefix
}

func (a *Attribute) URI() string {
	return a.uri
}

func (a *Attribute) Value() string {
	return a.value
}
