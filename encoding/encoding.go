// Package encoding maps the charset labels found in XML declarations to
// golang.org/x/text encodings, and wraps readers so that the XML decoder
// only ever sees UTF-8.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

var encodings = map[string]enc.Encoding{
	"utf8":              unicode.UTF8,
	"utf16":             unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf16be":           unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf16le":           unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"eucjp":             japanese.EUCJP,
	"shiftjis":          japanese.ShiftJIS,
	"sjis":              japanese.ShiftJIS,
	"cp932":             japanese.ShiftJIS,
	"jis":               japanese.ISO2022JP,
	"iso2022jp":         japanese.ISO2022JP,
	"big5":              traditionalchinese.Big5,
	"euckr":             korean.EUCKR,
	"gbk":               simplifiedchinese.GBK,
	"gb18030":           simplifiedchinese.GB18030,
	"hzgb2312":          simplifiedchinese.HZGB2312,
	"cp437":             charmap.CodePage437,
	"cp866":             charmap.CodePage866,
	"latin1":            charmap.Windows1252,
	"iso88591":          charmap.Windows1252,
	"iso88592":          charmap.ISO8859_2,
	"iso88593":          charmap.ISO8859_3,
	"iso88594":          charmap.ISO8859_4,
	"iso88595":          charmap.ISO8859_5,
	"iso88596":          charmap.ISO8859_6,
	"iso88597":          charmap.ISO8859_7,
	"iso88598":          charmap.ISO8859_8,
	"iso885910":         charmap.ISO8859_10,
	"iso885913":         charmap.ISO8859_13,
	"iso885914":         charmap.ISO8859_14,
	"iso885915":         charmap.ISO8859_15,
	"iso885916":         charmap.ISO8859_16,
	"koi8r":             charmap.KOI8R,
	"koi8u":             charmap.KOI8U,
	"macintosh":         charmap.Macintosh,
	"macintoshcyrillic": charmap.MacintoshCyrillic,
	"windows874":        charmap.Windows874,
	"windows1250":       charmap.Windows1250,
	"windows1251":       charmap.Windows1251,
	"windows1252":       charmap.Windows1252,
	"windows1253":       charmap.Windows1253,
	"windows1254":       charmap.Windows1254,
	"windows1255":       charmap.Windows1255,
	"windows1256":       charmap.Windows1256,
	"windows1257":       charmap.Windows1257,
	"windows1258":       charmap.Windows1258,
	"xuserdefined":      charmap.XUserDefined,
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}

// Load returns the encoding for a charset label, or nil when the label
// is not known. Labels are matched case-insensitively, ignoring '-' and '_'.
func Load(name string) enc.Encoding {
	return encodings[normalize(name)]
}

// NewReaderLabel returns a reader that converts r from the named charset
// to UTF-8. Labels not known to Load are looked up in the WHATWG label
// table of golang.org/x/net/html/charset. It has the signature expected by
// xml.Decoder.CharsetReader.
func NewReaderLabel(label string, r io.Reader) (io.Reader, error) {
	if e := Load(label); e != nil {
		if e == unicode.UTF8 {
			return r, nil
		}
		return transform.NewReader(r, e.NewDecoder()), nil
	}

	cr, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownEncoding, label, err)
	}
	return cr, nil
}
