package scanner

// BOMResult is the outcome of feeding the first few bytes of a document
// into a BOM scanner.
type BOMResult int

const (
	// BOMNeedData means all fed bytes were consumed inconclusively; feed more.
	BOMNeedData BOMResult = iota
	// BOMUnknown means the leading bytes matched none of the recognized
	// patterns. The caller should assume UTF-8 and consume nothing.
	BOMUnknown
	// BOMUTF8 means the "<?xm" heuristic matched. Nothing should be consumed.
	BOMUTF8
	// BOMUTF16BE means the "00 3C 00 3F" heuristic matched. Nothing should be consumed.
	BOMUTF16BE
	// BOMUTF16LE means the "3C 00 3F 00" heuristic matched. Nothing should be consumed.
	BOMUTF16LE
	// BOMUTF8Sig means an EF BB BF byte-order mark was found. 3 bytes should be consumed.
	BOMUTF8Sig
	// BOMUTF16BESig means an FE FF byte-order mark was found. 2 bytes should be consumed.
	BOMUTF16BESig
	// BOMUTF16LESig means an FF FE byte-order mark was found. 2 bytes should be consumed.
	BOMUTF16LESig
)

// Consumed reports how many leading bytes of the document the result
// implies should be skipped before further scanning.
func (r BOMResult) Consumed() int {
	switch r {
	case BOMUTF8Sig:
		return 3
	case BOMUTF16BESig, BOMUTF16LESig:
		return 2
	default:
		return 0
	}
}

type bomState int

const (
	bomStart bomState = iota
	bomX00        // 00
	bomX00_3C     // 00 3C
	bomX00_3C_00  // 00 3C 00
	bomX3C        // 3C
	bomX3C_00     // 3C 00
	bomX3C_00_3F  // 3C 00 3F
	bomX3C_3F     // 3C 3F
	bomX3C_3F_78  // 3C 3F 78 ("<?x")
	bomXFE        // FE
	bomXFF        // FF
	bomXEF        // EF
	bomXEF_BB     // EF BB
)

// BOM implements the encoding-sniffing DFA from the XML recommendation's
// "autodetection of character encodings" algorithm, restricted to the
// subset this library transcodes: UTF-8 and UTF-16 (BE/LE), with or
// without a byte-order mark. The zero value is ready to use.
type BOM struct {
	state  bomState
	done   bool
	result BOMResult
}

// Feed examines bytes one at a time from the start of the document. Once a
// conclusive result is reached, further calls are a no-op and return the
// same result.
func (b *BOM) Feed(chunk []byte) BOMResult {
	if b.done {
		return b.result
	}

	for _, c := range chunk {
		switch b.state {
		case bomStart:
			switch c {
			case 0x00:
				b.state = bomX00
			case '<':
				b.state = bomX3C
			case 0xFE:
				b.state = bomXFE
			case 0xFF:
				b.state = bomXFF
			case 0xEF:
				b.state = bomXEF
			default:
				return b.stop(BOMUnknown)
			}
		case bomX00:
			if c != '<' {
				return b.stop(BOMUnknown)
			}
			b.state = bomX00_3C
		case bomX00_3C:
			if c != 0x00 {
				return b.stop(BOMUnknown)
			}
			b.state = bomX00_3C_00
		case bomX00_3C_00:
			if c != '?' {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF16BE)
		case bomX3C:
			switch c {
			case 0x00:
				b.state = bomX3C_00
			case '?':
				b.state = bomX3C_3F
			default:
				return b.stop(BOMUnknown)
			}
		case bomX3C_00:
			if c != '?' {
				return b.stop(BOMUnknown)
			}
			b.state = bomX3C_00_3F
		case bomX3C_00_3F:
			if c != 0x00 {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF16LE)
		case bomX3C_3F:
			if c != 'x' {
				return b.stop(BOMUnknown)
			}
			b.state = bomX3C_3F_78
		case bomX3C_3F_78:
			if c != 'm' {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF8)
		case bomXFE:
			if c != 0xFF {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF16BESig)
		case bomXFF:
			if c != 0xFE {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF16LESig)
		case bomXEF:
			if c != 0xBB {
				return b.stop(BOMUnknown)
			}
			b.state = bomXEF_BB
		case bomXEF_BB:
			if c != 0xBF {
				return b.stop(BOMUnknown)
			}
			return b.stop(BOMUTF8Sig)
		}
	}

	return BOMNeedData
}

func (b *BOM) stop(r BOMResult) BOMResult {
	b.done = true
	b.result = r
	return r
}
