package s11n

import (
	"io"
	"unicode/utf8"
)

// isInCharacterRange checks if rune is in the XML Char production
func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

var (
	escQuot = []byte("&#34;") // shorter than "&quot;"
	escAmp  = []byte("&amp;")
	escLt   = []byte("&lt;")
	escGt   = []byte("&gt;")
	escTab  = []byte("&#9;")
	escNL   = []byte("&#10;")
	escCR   = []byte("&#13;")
	escFFFD = []byte("\uFFFD")
)

// EscapeAttrValue writes s to w escaped for use inside a double quoted
// attribute value. Whitespace other than the space character is written
// as character references so that it survives attribute normalization.
func EscapeAttrValue(w io.Writer, s []byte) error {
	return escape(w, s, func(r rune) []byte {
		switch r {
		case '"':
			return escQuot
		case '\n':
			return escNL
		case '\r':
			return escCR
		case '\t':
			return escTab
		}
		return nil
	})
}

// EscapeText writes to w the properly escaped XML equivalent
// of the plain text data s. If escapeNewline is true, newline
// characters will be escaped.
func EscapeText(w io.Writer, s []byte, escapeNewline bool) error {
	return escape(w, s, func(r rune) []byte {
		switch r {
		case '\n':
			if escapeNewline {
				return escNL
			}
		case '\r':
			return escCR
		}
		return nil
	})
}

func escape(w io.Writer, s []byte, extra func(rune) []byte) error {
	var esc []byte
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRune(s[i:])
		i += width
		switch r {
		case '&':
			esc = escAmp
		case '<':
			esc = escLt
		case '>':
			esc = escGt
		default:
			if esc = extra(r); esc != nil {
				break
			}
			if !isInCharacterRange(r) || (r == utf8.RuneError && width == 1) {
				esc = escFFFD
				break
			}
			continue
		}

		if _, err := w.Write(s[last : i-width]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i
	}

	if _, err := w.Write(s[last:]); err != nil {
		return err
	}
	return nil
}
