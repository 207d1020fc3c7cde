package scanner

// PIParser locates the terminating "?>" of a processing instruction (or XML
// declaration) across chunk boundaries. The zero value is ready to use.
type PIParser struct {
	sawQuestionMark bool // chunk fed so far ended in '?'
}

// Feed searches chunk for the first "?>". It returns the offset one past
// the terminator and ok=true on a match, or ok=false if more bytes are
// needed.
func (p *PIParser) Feed(chunk []byte) (n int, ok bool) {
	for i, b := range chunk {
		if b != '>' {
			continue
		}
		if i == 0 {
			if p.sawQuestionMark {
				return 1, true
			}
			continue
		}
		if chunk[i-1] == '?' {
			return i + 1, true
		}
	}

	p.sawQuestionMark = len(chunk) > 0 && chunk[len(chunk)-1] == '?'
	return 0, false
}
