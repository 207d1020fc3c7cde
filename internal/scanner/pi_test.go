package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ucarion/xmlstream/internal/scanner"
)

func TestPIParser(t *testing.T) {
	cases := []struct {
		chunks []string
		n      int
		ok     bool
	}{
		{[]string{""}, 0, false},
		{[]string{"?"}, 0, false},
		{[]string{">"}, 0, false},
		{[]string{"?>"}, 2, true},
		{[]string{">?>"}, 3, true},
		{[]string{"<?instruction", " with some > and ?", "inside?>and the text follow..."}, 8, true},
	}

	for _, tc := range cases {
		var p scanner.PIParser
		var n int
		var ok bool
		for _, c := range tc.chunks {
			n, ok = p.Feed([]byte(c))
			if ok {
				break
			}
		}
		assert.Equal(t, tc.ok, ok, "chunks %v", tc.chunks)
		if tc.ok {
			assert.Equal(t, tc.n, n, "chunks %v", tc.chunks)
		}
	}
}
