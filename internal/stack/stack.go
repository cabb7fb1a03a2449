package stack

type StackImpl interface {
	Cap() int
	Len() int
	PopLast()
	Realloc()
}

func stackPop(s StackImpl, n int) {
	if n <= 0 {
		return
	}

	for s.Len() > 0 {
		s.PopLast()
		n--
		if n <= 0 {
			break
		}
	}

	if c := s.Cap(); c > 20 && c > s.Len()*2 {
		s.Realloc()
	}
}

// Stack is a LIFO slice of items.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop removes the last n items (1 if n is omitted).
func (s *Stack[T]) Pop(n ...int) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}
	stackPop(s, nn)
}

func (s *Stack[T]) Realloc() {
	*s = append(Stack[T](nil), *s...)
}

func (s *Stack[T]) PopLast() {
	if s.Len() <= 0 {
		return
	}
	var zero T
	(*s)[s.Len()-1] = zero
	*s = (*s)[:s.Len()-1]
}

// Top returns the last item, or the zero value when the stack is empty.
func (s Stack[T]) Top() (T, bool) {
	if l := s.Len(); l > 0 {
		return s[l-1], true
	}
	var zero T
	return zero, false
}

func (s Stack[T]) Peek(n int) []T {
	if l := s.Len(); l > n {
		return s[l-n : l]
	}
	return s
}

func (s Stack[T]) Len() int {
	return len(s)
}

func (s Stack[T]) Cap() int {
	return cap(s)
}
