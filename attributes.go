package xmlstream

import (
	"bytes"
	"errors"
)

// ErrNoMoreAttributes is returned by (*Attributes).Next once the element's
// attribute bytes are exhausted. It is not a parse failure.
var ErrNoMoreAttributes = errors.New("xmlstream: no more attributes")

// AttrOptions configures an Attributes iterator.
type AttrOptions struct {
	// Checks enables duplicate-key detection and rejects a quote character
	// in name position.
	Checks bool
	// HTMLTolerant relaxes '=' and quoting requirements: a name with no
	// '=' yields an empty-value attribute, and unquoted values are
	// accepted, terminated by whitespace.
	HTMLTolerant bool
}

// Attribute is a parsed key/value pair borrowed from the source element's
// bytes. Value retains any escape sequences present in the source; call
// Unescape to decode them.
type Attribute struct {
	Key   QName
	Value []byte
}

// Unescape decodes entity and character references in the attribute's
// value.
func (a Attribute) Unescape() ([]byte, error) {
	return Unescape(a.Value)
}

// Attributes is a lazy iterator over an element's raw attribute bytes. It
// is constructed over the content slice of a StartElement/EmptyElement,
// starting just after the element name.
type Attributes struct {
	bytes    []byte
	pos      int
	opts     AttrOptions
	consumed [][2]int
	done     bool
	base     int64
}

// NewAttributes returns an iterator over content[start:], the attribute
// bytes of an element whose name occupies content[:start].
func NewAttributes(content []byte, start int, opts AttrOptions) *Attributes {
	return &Attributes{bytes: content, pos: start, opts: opts}
}

// SetOffset records the absolute document offset of a.bytes[0], so that
// errors returned by Next carry an absolute Offset rather than a
// content-relative Pos alone.
func (a *Attributes) SetOffset(off int64) *Attributes {
	a.base = off
	return a
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Next returns the next attribute, or ErrNoMoreAttributes once exhausted.
// Once Next returns a non-ErrNoMoreAttributes error, the iterator must not
// be used again.
func (a *Attributes) Next() (Attribute, error) {
	if a.done {
		return Attribute{}, ErrNoMoreAttributes
	}

	n := len(a.bytes)
	i := a.pos

	for i < n && isXMLSpace(a.bytes[i]) {
		i++
	}
	if i >= n {
		a.done = true
		return Attribute{}, ErrNoMoreAttributes
	}
	startKey := i

	for i < n && a.bytes[i] != '=' && !isXMLSpace(a.bytes[i]) {
		if a.opts.Checks && (a.bytes[i] == '\'' || a.bytes[i] == '"') {
			a.done = true
			return Attribute{}, &MalformedAttributeError{Kind: NameWithQuote, Pos: i, Offset: a.base + int64(i)}
		}
		i++
	}
	endKey := i

	if i >= n {
		a.done = true
		if a.opts.HTMLTolerant {
			return Attribute{Key: QName(a.bytes[startKey:endKey])}, nil
		}
		return Attribute{}, &MalformedAttributeError{Kind: NoEqAfterName, Pos: i, Offset: a.base + int64(i)}
	}

	hasEq := a.bytes[i] == '='
	if hasEq {
		i++
	} else {
		for i < n && isXMLSpace(a.bytes[i]) {
			i++
		}
		if i < n && a.bytes[i] == '=' {
			hasEq = true
			i++
		}
	}

	if !hasEq {
		if a.opts.HTMLTolerant {
			a.pos = endKey
			return Attribute{Key: QName(a.bytes[startKey:endKey])}, nil
		}
		a.done = true
		return Attribute{}, &MalformedAttributeError{Kind: NoEqAfterName, Pos: i, Offset: a.base + int64(i)}
	}

	if a.opts.Checks {
		keyBytes := a.bytes[startKey:endKey]
		for _, r := range a.consumed {
			if r[1]-r[0] == len(keyBytes) && bytes.Equal(a.bytes[r[0]:r[1]], keyBytes) {
				a.done = true
				return Attribute{}, &MalformedAttributeError{Kind: DuplicateKey, Pos: startKey, Offset: a.base + int64(startKey)}
			}
		}
		a.consumed = append(a.consumed, [2]int{startKey, endKey})
	}

	for i < n && isXMLSpace(a.bytes[i]) {
		i++
	}
	if i >= n {
		a.pos = n
		if a.opts.HTMLTolerant {
			return Attribute{Key: QName(a.bytes[startKey:endKey])}, nil
		}
		a.done = true
		return Attribute{}, &MalformedAttributeError{Kind: UnterminatedValue, Pos: n, Offset: a.base + int64(n)}
	}

	if quote := a.bytes[i]; quote == '\'' || quote == '"' {
		valStart := i + 1
		j := valStart
		for j < n && a.bytes[j] != quote {
			j++
		}
		if j >= n {
			a.done = true
			return Attribute{}, &MalformedAttributeError{Kind: UnterminatedValue, Pos: valStart, Offset: a.base + int64(valStart)}
		}
		a.pos = j + 1
		return Attribute{Key: QName(a.bytes[startKey:endKey]), Value: a.bytes[valStart:j]}, nil
	}

	if a.opts.HTMLTolerant {
		valStart := i
		j := valStart
		for j < n && !isXMLSpace(a.bytes[j]) {
			j++
		}
		a.pos = j
		return Attribute{Key: QName(a.bytes[startKey:endKey]), Value: a.bytes[valStart:j]}, nil
	}

	a.done = true
	return Attribute{}, &MalformedAttributeError{Kind: UnquotedValue, Pos: i, Offset: a.base + int64(i)}
}

// All drains the iterator, returning every attribute or the first error
// encountered. It is a convenience wrapper; callers that need to stop
// early or resume after a non-fatal condition should call Next directly.
func (a *Attributes) All() ([]Attribute, error) {
	var out []Attribute
	for {
		attr, err := a.Next()
		if errors.Is(err, ErrNoMoreAttributes) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, attr)
	}
}
