package xmlstream

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// predefinedEntities is the complete table of general entities XML 1.0
// defines without a DTD; there is no fallback to an external subset.
var predefinedEntities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

// resolveRef decodes a single reference body, as found in
// GeneralRef.NameBytes: a bare entity name ("amp"), a decimal character
// reference ("#38"), or a hexadecimal one ("#x26").
func resolveRef(body []byte) ([]byte, error) {
	if len(body) > 0 && body[0] == '#' {
		var n int64
		var err error
		if len(body) > 1 && (body[1] == 'x' || body[1] == 'X') {
			n, err = strconv.ParseInt(string(body[2:]), 16, 32)
		} else {
			n, err = strconv.ParseInt(string(body[1:]), 10, 32)
		}
		if err != nil {
			return nil, &UnrecognizedEntityError{Name: string(body)}
		}
		buf := make([]byte, utf8.UTFMax)
		w := utf8.EncodeRune(buf, rune(n))
		return buf[:w], nil
	}

	if r, ok := predefinedEntities[string(body)]; ok {
		buf := make([]byte, utf8.UTFMax)
		w := utf8.EncodeRune(buf, r)
		return buf[:w], nil
	}

	return nil, &UnrecognizedEntityError{Name: string(body)}
}

// Unescape decodes every "&name;" and "&#N;"/"&#xN;" reference in src,
// returning src itself when it contains no '&' and a freshly allocated
// slice otherwise. It recognizes exactly the five
// predefined entities and numeric character references, per
// UnrecognizedEntityError; it never consults a DTD.
func Unescape(src []byte) ([]byte, error) {
	if !bytes.ContainsRune(src, '&') {
		return src, nil
	}

	out := make([]byte, 0, len(src))
	for {
		i := bytes.IndexByte(src, '&')
		if i < 0 {
			out = append(out, src...)
			return out, nil
		}
		out = append(out, src[:i]...)

		j := bytes.IndexByte(src[i:], ';')
		if j < 0 {
			return nil, &UnrecognizedEntityError{Name: string(src[i:])}
		}
		j += i

		decoded, err := resolveRef(src[i+1 : j])
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
		src = src[j+1:]
	}
}

// UnescapeHTMLTolerant decodes references the way Unescape does, but falls
// back to the full HTML5 named character reference table for anything
// Unescape would reject as unrecognized. Nothing in this package calls it,
// and Config.HTMLTolerantAttributes does not select it; callers call it in
// place of Unescape.
func UnescapeHTMLTolerant(src []byte) []byte {
	return []byte(html.UnescapeString(string(src)))
}

// EscapeText escapes the characters Text content must not contain
// unescaped: '&', '<', and '>'. Writer never calls this on a caller's
// behalf; it is for callers constructing CharData events from arbitrary
// strings.
func EscapeText(src []byte) []byte {
	return escapeBytes(src, false)
}

// EscapeAttr escapes the characters an attribute value delimited by
// double quotes must not contain unescaped: '&', '<', '"', '\r', '\n', and
// '\t' (the last three so a conforming parser normalizes them back to the
// original byte rather than to a plain space). It also escapes '>'.
func EscapeAttr(src []byte) []byte {
	return escapeBytes(src, true)
}

func escapeBytes(src []byte, attr bool) []byte {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		switch b {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '"':
			if attr {
				out = append(out, "&quot;"...)
			} else {
				out = append(out, b)
			}
		case '\r':
			if attr {
				out = append(out, "&#13;"...)
			} else {
				out = append(out, b)
			}
		case '\n':
			if attr {
				out = append(out, "&#10;"...)
			} else {
				out = append(out, b)
			}
		case '\t':
			if attr {
				out = append(out, "&#9;"...)
			} else {
				out = append(out, b)
			}
		default:
			out = append(out, b)
		}
	}
	return out
}
