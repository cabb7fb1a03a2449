// Package nsstack tracks the namespace prefixes in scope while reading
// a document. Every element opens a scope; declarations made on the
// element live until its scope is closed.
package nsstack

import "github.com/lestrrat-go/dax/internal/stack"

type Item struct {
	prefix string
	href   string
}

func (i Item) Prefix() string {
	return i.prefix
}

func (i Item) URI() string {
	return i.href
}

type Stack struct {
	items  stack.Stack[Item]
	frames stack.Stack[int]
}

func New() *Stack {
	return &Stack{}
}

// PushScope opens a new scope. Declarations pushed afterwards are dropped
// by the matching PopScope.
func (s *Stack) PushScope() {
	s.frames.Push(s.items.Len())
}

// PopScope closes the innermost scope.
func (s *Stack) PopScope() {
	mark, ok := s.frames.Top()
	if !ok {
		return
	}
	s.frames.Pop()
	s.items.Pop(s.items.Len() - mark)
}

// Push declares prefix in the current scope. The empty prefix is the
// default namespace.
func (s *Stack) Push(prefix, uri string) {
	s.items.Push(Item{prefix: prefix, href: uri})
}

// Lookup returns the innermost URI bound to prefix.
func (s *Stack) Lookup(prefix string) (string, bool) {
	for i := s.items.Len() - 1; i >= 0; i-- {
		if s.items[i].prefix == prefix {
			return s.items[i].href, true
		}
	}
	return "", false
}

// Len returns the number of declarations in scope.
func (s *Stack) Len() int {
	return s.items.Len()
}

// Depth returns the number of open scopes.
func (s *Stack) Depth() int {
	return s.frames.Len()
}
