package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ucarion/xmlstream/internal/scanner"
)

func parseComment(t *testing.T, chunks ...string) (int, bool) {
	t.Helper()
	var p scanner.CommentParser
	var n int
	var ok bool
	for _, c := range chunks {
		n, ok = p.Feed([]byte(c))
		if ok {
			return n, true
		}
	}
	return 0, false
}

func TestCommentParserSingleChunk(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		ok   bool
	}{
		{"", 0, false},
		{"-", 0, false},
		{">", 0, false},
		{"--", 0, false},
		{"->", 0, false},
		{"-->", 3, true},
		{">-->", 4, true},
		{"->-->", 5, true},
	}

	for _, tc := range cases {
		n, ok := parseComment(t, tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.n, n, "input %q", tc.in)
		}
	}
}

func TestCommentParserChunkBoundary(t *testing.T) {
	// "<!-- --" then "--> rest" split across the boundary that the
	// original quick-dtd documentation example is built around.
	n, ok := parseComment(t, "<!-- --", "--> rest")
	assert.True(t, ok)
	assert.Equal(t, 3, n, "offset is relative to the final chunk fed")
}

func TestCommentParserEveryPartition(t *testing.T) {
	full := "<!-- a comment with -> inside -->tail"
	termEnd := strings.Index(full, "-->") + 3

	for split := 0; split < termEnd; split++ {
		n, ok := parseComment(t, full[:split], full[split:])
		assert.True(t, ok, "split at %d", split)
		assert.Equal(t, termEnd-split, n, "split at %d", split)
	}
}
