// Package decode implements the encoding boundary: BOM/heuristic sniffing
// of the first bytes of a document and transcoding everything downstream to
// UTF-8, so the tokenizer's byte-level state machine only ever sees
// ASCII-compatible UTF-8 (spec.md §4.C).
package decode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ucarion/xmlstream/internal/scanner"
)

// Encoding identifies the character encoding detected for a document.
type Encoding int

const (
	// UTF8 is used both when a document declares no BOM and no conflicting
	// heuristic matched, and when UTF-8 was detected explicitly (BOM or
	// "<?xm" heuristic).
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
)

func (e Encoding) String() string {
	switch e {
	case UTF16BE:
		return "UTF-16BE"
	case UTF16LE:
		return "UTF-16LE"
	default:
		return "UTF-8"
	}
}

// MismatchError is returned by Reconcile when a declared encoding
// contradicts the encoding already latched from a byte-order mark.
type MismatchError struct {
	Detected Encoding
	Declared string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("xmlstream: declared encoding %q is incompatible with detected %s byte-order mark", e.Declared, e.Detected)
}

// UnsupportedError is returned by Reconcile when a declared encoding name
// could not be resolved to a known transcoder.
type UnsupportedError struct {
	Declared string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("xmlstream: unsupported declared encoding %q", e.Declared)
}

// Transcoder wraps a byte source and always yields well-formed UTF-8,
// sniffing the first bytes on the first Read and allowing one further
// reconciliation against a declared <?xml ... encoding="..."?> value via
// Reconcile. Per spec.md invariant I6, encoding is latched once; Reconcile
// must be called at most once, before any bytes past the XML declaration
// have been requested from this Transcoder by the caller.
type Transcoder struct {
	src         io.Reader
	inner       io.Reader
	enc         Encoding
	bomLen      int
	initialized bool
}

// NewTranscoder returns a Transcoder reading from r.
func NewTranscoder(r io.Reader) *Transcoder {
	return &Transcoder{src: r}
}

// Encoding reports the encoding latched by the first Read. Calling it
// before the first Read returns UTF8, the eventual default.
func (t *Transcoder) Encoding() Encoding {
	return t.enc
}

func (t *Transcoder) ensureInit() error {
	if t.initialized {
		return nil
	}
	t.initialized = true

	sniff := make([]byte, 4)
	n, err := io.ReadFull(t.src, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	sniff = sniff[:n]

	var b scanner.BOM
	result := b.Feed(sniff)

	leftover := sniff[result.Consumed():]
	rest := io.MultiReader(bytes.NewReader(leftover), t.src)

	switch result {
	case scanner.BOMUTF16BESig, scanner.BOMUTF16BE:
		t.enc = UTF16BE
		t.bomLen = result.Consumed()
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		t.inner = transform.NewReader(rest, dec)
	case scanner.BOMUTF16LESig, scanner.BOMUTF16LE:
		t.enc = UTF16LE
		t.bomLen = result.Consumed()
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		t.inner = transform.NewReader(rest, dec)
	default:
		// UTF8, UTF8Sig, Unknown, or NeedData (a document shorter than 4
		// bytes can't declare anything but UTF-8 anyway).
		t.enc = UTF8
		t.bomLen = result.Consumed()
		t.inner = rest
	}

	return nil
}

// Read implements io.Reader, always returning UTF-8 bytes.
func (t *Transcoder) Read(p []byte) (int, error) {
	if err := t.ensureInit(); err != nil {
		return 0, err
	}
	return t.inner.Read(p)
}

// Reconcile applies the encoding declared by the document's XML declaration
// (possibly empty, meaning none was present). If a BOM already latched a
// UTF-16 encoding, declared must name a compatible encoding or
// MismatchError is returned. Otherwise, if declared names something other
// than UTF-8/US-ASCII, the remainder of the stream is wrapped with a
// transcoder for that encoding, resolved via golang.org/x/net/html/charset.
func (t *Transcoder) Reconcile(declared string) error {
	if err := t.ensureInit(); err != nil {
		return err
	}

	name := strings.TrimSpace(declared)

	switch t.enc {
	case UTF16BE, UTF16LE:
		if name == "" || isUTF16Name(name) {
			return nil
		}
		return &MismatchError{Detected: t.enc, Declared: declared}
	default:
		if name == "" || isUTF8Name(name) {
			return nil
		}

		enc, _, ok := charset.Lookup(name)
		if !ok {
			return &UnsupportedError{Declared: declared}
		}

		t.inner = transform.NewReader(t.inner, enc.NewDecoder())
		return nil
	}
}

func isUTF16Name(name string) bool {
	switch strings.ToUpper(name) {
	case "UTF-16", "UTF16", "UTF-16BE", "UTF-16LE":
		return true
	default:
		return false
	}
}

func isUTF8Name(name string) bool {
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8", "US-ASCII", "ASCII":
		return true
	default:
		return false
	}
}
