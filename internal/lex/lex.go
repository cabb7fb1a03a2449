// Package lex holds the small hand-written scanners shared by the value
// grammars (numbers, number lists, coordinate pairs).
package lex

import (
	"errors"
	"strconv"
)

var ErrSyntax = errors.New("syntax error")

// IsSpace reports whether c is XML whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// SkipSpace drops leading XML whitespace.
func SkipSpace(s string) string {
	i := 0
	for i < len(s) && IsSpace(s[i]) {
		i++
	}
	return s[i:]
}

// OnlySpace reports whether s is empty or consists of whitespace only.
func OnlySpace(s string) bool {
	return len(SkipSpace(s)) == 0
}

// SkipCommaSpace drops leading whitespace, at most one comma, and the
// whitespace following it.
func SkipCommaSpace(s string) string {
	s = SkipSpace(s)
	if len(s) > 0 && s[0] == ',' {
		s = SkipSpace(s[1:])
	}
	return s
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// SimpleFloat parses an unsigned decimal: one or more digits, optionally
// followed by a '.' and one or more digits. A trailing '.' with no digits
// after it is an error. It returns the value and the unconsumed input.
func SimpleFloat(s string) (float64, string, error) {
	i := digits(s, 0)
	if i == 0 {
		return 0, s, ErrSyntax
	}
	if i < len(s) && s[i] == '.' {
		j := digits(s, i+1)
		if j == i+1 {
			return 0, s, ErrSyntax
		}
		i = j
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, ErrSyntax
	}
	return v, s[i:], nil
}

// Float parses a signed number with an optional fraction and an optional
// exponent ("-1.5e3", ".5", "10"). An 'e' that is not followed by digits is
// left unconsumed, so "2em" yields 2 and "em".
func Float(s string) (float64, string, error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	i = digits(s, i)
	intDigits := i - start
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := digits(s, i+1)
		fracDigits = j - (i + 1)
		if fracDigits > 0 || intDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, s, ErrSyntax
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := digits(s, j); k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, ErrSyntax
	}
	return v, s[i:], nil
}

// Floats parses a comma and/or whitespace separated list of numbers.
func Floats(s string) ([]float64, error) {
	var list []float64
	s = SkipSpace(s)
	for len(s) > 0 {
		v, rest, err := Float(s)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
		s = SkipCommaSpace(rest)
		if len(rest) > 0 && len(s) == 0 && SkipSpace(rest) != "" {
			// dangling comma
			return nil, ErrSyntax
		}
	}
	return list, nil
}
