package xmlstream

import (
	"bytes"
	"context"
	"io"

	"github.com/ucarion/xmlstream/internal/decode"
	"github.com/ucarion/xmlstream/internal/scanner"
)

const readChunkSize = 4096

// Reader is a pull-based, non-validating tokenizer over an XML document. It
// never buffers the whole input: ReadEvent grows its internal buffer only
// as far as the next event boundary requires, and compacts consumed bytes
// at the start of every call.
//
// Byte slices on a returned Event alias the Reader's internal buffer and
// are valid only until the next call to ReadEvent or ReadEventContext;
// call Clone to retain one past that point.
type Reader struct {
	tc  *decode.Transcoder
	cfg Config

	buf    []byte
	pos    int // first unconsumed byte
	filled int // valid bytes in buf
	eof    bool

	absBase int64 // absolute document offset of buf[0]

	stack []string

	pendingEnd *EndElement
	done       bool
	err        error

	ctx context.Context
}

// NewReader returns a Reader with DefaultConfig, reading from r. r's bytes
// are sniffed for a byte-order mark and transcoded to UTF-8 before
// tokenizing; see internal/decode.
func NewReader(r io.Reader) *Reader {
	return &Reader{tc: decode.NewTranscoder(r), cfg: DefaultConfig()}
}

// NewReaderBytes returns a Reader over an in-memory document.
func NewReaderBytes(b []byte) *Reader {
	return NewReader(bytes.NewReader(b))
}

// Configure applies opts to the Reader's Config. Most options, such as
// CheckEndNames, are read fresh on every ReadEvent call, so a change takes
// effect starting with the very next event.
func (r *Reader) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(&r.cfg)
	}
}

func (r *Reader) offset() int64 { return r.absBase + int64(r.pos) }

// Offset returns the absolute document offset of the next unconsumed byte.
func (r *Reader) Offset() int64 { return r.offset() }

func (r *Reader) compact() {
	if r.pos == 0 {
		return
	}
	r.absBase += int64(r.pos)
	n := copy(r.buf, r.buf[r.pos:r.filled])
	r.buf = r.buf[:n]
	r.filled = n
	r.pos = 0
}

// fillMore appends the next chunk of transcoded bytes to buf. It leaves eof
// set once the underlying source is exhausted, without itself being an
// error: callers decide whether absence of further bytes is fatal.
func (r *Reader) fillMore() error {
	for {
		if r.eof {
			return nil
		}
		if r.ctx != nil {
			if err := r.ctx.Err(); err != nil {
				return err
			}
		}
		tmp := make([]byte, readChunkSize)
		n, err := r.tc.Read(tmp)
		if n > 0 {
			r.buf = append(r.buf, tmp[:n]...)
			r.filled = len(r.buf)
			if err == io.EOF {
				r.eof = true
			} else if err != nil {
				return classifyReadErr(r, err)
			}
			return nil
		}
		if err == nil {
			continue
		}
		if err == io.EOF {
			r.eof = true
			return nil
		}
		return classifyReadErr(r, err)
	}
}

func classifyReadErr(r *Reader, err error) error {
	if _, ok := err.(*decode.MismatchError); ok {
		return &NonDecodableError{Offset: int64(r.filled), Err: err}
	}
	if _, ok := err.(*decode.UnsupportedError); ok {
		return &NonDecodableError{Offset: int64(r.filled), Err: err}
	}
	return &IOError{Offset: int64(r.filled), Err: err}
}

// scanUntil advances feed with successive newly-appended chunks of buf
// until it reports a match, growing buf as needed. kind is used to build a
// SyntaxError if the source is exhausted first.
func (r *Reader) scanUntil(kind SyntaxErrorKind, errOffset int64, start int, feed func([]byte) (int, bool)) (int, error) {
	scanned := start
	for {
		n, ok := feed(r.buf[scanned:r.filled])
		if ok {
			return scanned + n, nil
		}
		prev := r.filled
		if err := r.fillMore(); err != nil {
			return 0, err
		}
		if r.filled == prev {
			return 0, &SyntaxError{Kind: kind, Offset: errOffset}
		}
		scanned = prev
	}
}

func (r *Reader) scanByte(target byte, kind SyntaxErrorKind, errOffset int64, start int) (int, error) {
	pos := start
	for {
		if idx := bytes.IndexByte(r.buf[pos:r.filled], target); idx >= 0 {
			return pos + idx, nil
		}
		prev := r.filled
		if err := r.fillMore(); err != nil {
			return 0, err
		}
		if r.filled == prev {
			return 0, &SyntaxError{Kind: kind, Offset: errOffset}
		}
		pos = prev
	}
}

// scanText returns the offset of the next '<' (or, when Config.SplitGeneralRefs
// is set, the next '&' if it comes first), or of end-of-document if neither
// remains.
func (r *Reader) scanText(start int) (int, error) {
	pos := start
	for {
		rel := r.buf[pos:r.filled]
		idx := bytes.IndexByte(rel, '<')
		if r.cfg.SplitGeneralRefs {
			if amp := bytes.IndexByte(rel, '&'); amp >= 0 && (idx < 0 || amp < idx) {
				idx = amp
			}
		}
		if idx >= 0 {
			return pos + idx, nil
		}
		if r.eof {
			return r.filled, nil
		}
		prev := r.filled
		if err := r.fillMore(); err != nil {
			return 0, err
		}
		if r.filled == prev {
			return r.filled, nil
		}
		pos = prev
	}
}

func (r *Reader) fillAtLeast(n int) error {
	for r.filled-r.pos < n && !r.eof {
		if err := r.fillMore(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) nextMarker(qp *scanner.QuotedParser, errOffset int64, from int) (int, scanner.OneOfKind, error) {
	scanned := from
	for {
		n, kind := qp.FeedOneOf(r.buf[scanned:r.filled])
		if kind != scanner.OneOfNone {
			return scanned + n, kind, nil
		}
		prev := r.filled
		if err := r.fillMore(); err != nil {
			return 0, scanner.OneOfNone, err
		}
		if r.filled == prev {
			return 0, scanner.OneOfNone, &SyntaxError{Kind: UnclosedDoctype, Offset: errOffset}
		}
		scanned = prev
	}
}

// scanDocType finds the final, depth-0 unquoted '>' that closes a DOCTYPE
// declaration, treating every unquoted '<' ... '>' pair encountered along
// the way (the internal subset's markup declarations) as one level of
// nesting. It re-enters the QuotedParser's state machine once per such
// pair, exactly as the top-level element scan does for a single tag.
func (r *Reader) scanDocType(start int) (int, error) {
	errOffset := r.absBase + int64(start)
	qp := &scanner.QuotedParser{}
	depth := 0
	pos := start
	for {
		idx, kind, err := r.nextMarker(qp, errOffset, pos)
		if err != nil {
			return 0, err
		}
		switch kind {
		case scanner.OneOfOpen:
			depth++
			pos = idx + 1
		case scanner.OneOfClose:
			if depth == 0 {
				return idx, nil
			}
			depth--
			pos = idx + 1
		}
	}
}

func nameLen(content []byte) int {
	for i, b := range content {
		if isXMLSpace(b) || b == '/' {
			return i
		}
	}
	return len(content)
}

// ReadEvent returns the next event in the document. Once the document is
// exhausted it returns EOF{} and continues to do so on every subsequent
// call.
func (r *Reader) ReadEvent() (Event, error) {
	return r.ReadEventContext(context.Background())
}

// ReadEventContext is ReadEvent with cancellation: ctx is checked before
// any blocking read from the underlying source, so a canceled context
// aborts a stalled read without corrupting Reader state for a retry with a
// fresh context (the cancellation-safety contract that stands in for an
// async variant of ReadEvent).
func (r *Reader) ReadEventContext(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return EOF{}, nil
	}
	if r.pendingEnd != nil {
		e := *r.pendingEnd
		r.pendingEnd = nil
		return e, nil
	}

	r.compact()
	r.ctx = ctx

	ev, err := r.readOne(ctx)
	if err != nil {
		// A context error is not latched: the cursor has not moved past an
		// incomplete event, so a later call resumes at the same position.
		if err != ctx.Err() {
			r.err = err
		}
		return nil, err
	}
	return ev, nil
}

func (r *Reader) readOne(ctx context.Context) (Event, error) {
	if err := r.fillAtLeast(1); err != nil {
		return nil, err
	}
	if r.pos >= r.filled {
		if len(r.stack) > 0 {
			r.done = true
			return nil, &SyntaxError{Kind: UnclosedElement, Offset: r.offset()}
		}
		r.done = true
		return EOF{}, nil
	}

	if r.buf[r.pos] != '<' {
		return r.readText()
	}
	return r.readMarkup(ctx)
}

func (r *Reader) readText() (Event, error) {
	start := r.pos
	end, err := r.scanText(start)
	if err != nil {
		return nil, err
	}

	if r.cfg.SplitGeneralRefs && end < r.filled && r.buf[end] == '&' {
		if end == start {
			return r.readGeneralRef(start)
		}
		return r.emitText(start, end)
	}

	return r.emitText(start, end)
}

func (r *Reader) emitText(start, end int) (Event, error) {
	content := r.buf[start:end]
	r.pos = end

	if r.cfg.TrimText {
		content = bytes.TrimFunc(content, func(c rune) bool { return isXMLSpace(byte(c)) })
		if len(content) == 0 {
			return r.readOne(r.ctx)
		}
	}
	return CharData{Content: content}, nil
}

// readGeneralRef consumes a single "&name;" reference, used in place of
// emitText when Config.SplitGeneralRefs is set and the reference sits at the
// very start of the current run of text.
func (r *Reader) readGeneralRef(start int) (Event, error) {
	errOffset := r.absBase + int64(start)
	end, err := r.scanByte(';', UnclosedElement, errOffset, start+1)
	if err != nil {
		return nil, err
	}
	body := r.buf[start+1 : end]
	r.pos = end + 1
	return GeneralRef{NameBytes: body}, nil
}

func (r *Reader) readMarkup(ctx context.Context) (Event, error) {
	start := r.pos // offset of '<'
	if err := r.fillAtLeast(2); err != nil {
		return nil, err
	}
	if r.pos+1 >= r.filled {
		return nil, &SyntaxError{Kind: UnclosedElement, Offset: r.offset()}
	}

	switch r.buf[r.pos+1] {
	case '!':
		return r.readBang(start)
	case '?':
		return r.readPI(start)
	case '/':
		return r.readEnd(start)
	default:
		return r.readTag(start)
	}
}

func (r *Reader) readBang(start int) (Event, error) {
	if err := r.fillAtLeast(start+3 - r.pos); err != nil {
		return nil, err
	}
	if start+2 >= r.filled {
		return nil, &SyntaxError{Kind: UnexpectedBang, Offset: r.absBase + int64(start)}
	}

	switch r.buf[start+2] {
	case '-':
		return r.readComment(start)
	case '[':
		return r.readCData(start)
	case 'D':
		return r.readDocType(start)
	default:
		return nil, &SyntaxError{Kind: UnexpectedBang, Offset: r.absBase + int64(start)}
	}
}

func (r *Reader) readComment(start int) (Event, error) {
	if err := r.fillAtLeast(start+4 - r.pos); err != nil {
		return nil, err
	}
	if start+3 >= r.filled || r.buf[start+3] != '-' {
		return nil, &SyntaxError{Kind: UnexpectedBang, Offset: r.absBase + int64(start)}
	}

	contentStart := start + 4
	errOffset := r.absBase + int64(start)
	p := &scanner.CommentParser{}
	end, err := r.scanUntil(UnclosedComment, errOffset, contentStart, p.Feed)
	if err != nil {
		return nil, err
	}
	content := r.buf[contentStart : end-3]
	if r.cfg.CheckComments && bytes.Contains(content, []byte("--")) {
		return nil, &SyntaxError{Kind: UnclosedComment, Offset: errOffset}
	}
	r.pos = end
	return Comment{Content: content}, nil
}

var cdataOpen = []byte("<![CDATA[")

func (r *Reader) readCData(start int) (Event, error) {
	if err := r.fillAtLeast(len(cdataOpen)); err != nil {
		return nil, err
	}
	if r.filled-start < len(cdataOpen) || !bytes.Equal(r.buf[start:start+len(cdataOpen)], cdataOpen) {
		return nil, &SyntaxError{Kind: UnexpectedBang, Offset: r.absBase + int64(start)}
	}

	contentStart := start + len(cdataOpen)
	errOffset := r.absBase + int64(start)
	p := &scanner.CDataParser{}
	end, err := r.scanUntil(UnclosedCData, errOffset, contentStart, p.Feed)
	if err != nil {
		return nil, err
	}
	content := r.buf[contentStart : end-3]
	r.pos = end
	return CData{Content: content}, nil
}

var doctypeOpen = []byte("<!DOCTYPE")

func (r *Reader) readDocType(start int) (Event, error) {
	if err := r.fillAtLeast(len(doctypeOpen)); err != nil {
		return nil, err
	}
	if r.filled-start < len(doctypeOpen) || !bytes.Equal(r.buf[start:start+len(doctypeOpen)], doctypeOpen) {
		return nil, &SyntaxError{Kind: UnexpectedBang, Offset: r.absBase + int64(start)}
	}

	contentStart := start + len(doctypeOpen)
	end, err := r.scanDocType(contentStart)
	if err != nil {
		return nil, err
	}
	content := r.buf[contentStart:end]
	r.pos = end + 1
	return DocType{Content: content}, nil
}

func (r *Reader) readPI(start int) (Event, error) {
	if err := r.fillAtLeast(5); err != nil {
		return nil, err
	}

	isDecl := r.filled-start >= 5 &&
		bytes.Equal(r.buf[start+2:start+5], []byte("xml")) &&
		(r.filled-start == 5 || isXMLSpace(r.buf[start+5]))

	contentStart := start + 2
	if isDecl {
		contentStart = start + 5
	}

	errOffset := r.absBase + int64(start)
	p := &scanner.PIParser{}
	end, err := r.scanUntil(UnclosedPI, errOffset, contentStart, p.Feed)
	if err != nil {
		return nil, err
	}
	content := r.buf[contentStart : end-2]
	r.pos = end

	if isDecl {
		decl := Decl{Content: content}
		if enc, present := decl.Encoding(); present {
			if rerr := r.tc.Reconcile(enc); rerr != nil {
				return nil, classifyReadErr(r, rerr)
			}
		}
		return decl, nil
	}
	return PI{Content: content}, nil
}

func (r *Reader) readEnd(start int) (Event, error) {
	contentStart := start + 2
	errOffset := r.absBase + int64(start)
	end, err := r.scanByte('>', UnclosedElement, errOffset, contentStart)
	if err != nil {
		return nil, err
	}
	name := r.buf[contentStart:end]
	if r.cfg.TrimMarkupNamesInClosingTags {
		name = bytes.TrimRightFunc(name, func(c rune) bool { return isXMLSpace(byte(c)) })
	}
	r.pos = end + 1

	if mismatch := r.closeElement(name, errOffset); mismatch != nil {
		return nil, mismatch
	}
	return EndElement{Content: name}, nil
}

func (r *Reader) closeElement(name []byte, errOffset int64) error {
	if len(r.stack) == 0 {
		if r.cfg.AllowUnmatchedEnds {
			return nil
		}
		return &EndEventMismatchError{Found: string(name), Offset: errOffset}
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if r.cfg.CheckEndNames && top != string(name) {
		return &EndEventMismatchError{Expected: top, Found: string(name), Offset: errOffset}
	}
	return nil
}

func (r *Reader) readTag(start int) (Event, error) {
	contentStart := start + 1
	errOffset := r.absBase + int64(start)
	qp := &scanner.QuotedParser{}
	end, err := r.scanUntil(UnclosedElement, errOffset, contentStart, qp.Feed)
	if err != nil {
		return nil, err
	}

	content := r.buf[contentStart : end-1]
	r.pos = end

	empty := len(content) > 0 && content[len(content)-1] == '/'
	if empty {
		content = content[:len(content)-1]
	}
	nlen := nameLen(content)

	if empty {
		if r.cfg.ExpandEmptyElements {
			name := make([]byte, nlen)
			copy(name, content[:nlen])
			e := EndElement{Content: name}
			r.pendingEnd = &e
			return StartElement{Content: content, NameLen: nlen, Offset: r.absBase + int64(contentStart)}, nil
		}
		return EmptyElement{Content: content, NameLen: nlen, Offset: r.absBase + int64(contentStart)}, nil
	}

	r.stack = append(r.stack, string(content[:nlen]))
	return StartElement{Content: content, NameLen: nlen, Offset: r.absBase + int64(contentStart)}, nil
}

// ReadToEnd discards events until, and including, the End event matching
// name at the current nesting depth. It is used to skip an entire subtree,
// e.g. one the caller is not interested in.
func (r *Reader) ReadToEnd(name []byte) error {
	// name usually aliases the buffer that the ReadEvent calls below reuse.
	name = append([]byte(nil), name...)
	depth := 1
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return err
		}
		switch v := ev.(type) {
		case StartElement:
			if bytes.Equal(v.Name(), name) {
				depth++
			}
		case EndElement:
			if bytes.Equal(v.Content, name) {
				depth--
				if depth == 0 {
					return nil
				}
			}
		case EOF:
			return &SyntaxError{Kind: UnclosedElement, Offset: r.offset()}
		}
	}
}
