package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ucarion/xmlstream/internal/scanner"
)

func TestCDataParser(t *testing.T) {
	cases := []struct {
		chunks []string
		n      int
		ok     bool
	}{
		{[]string{""}, 0, false},
		{[]string{"]"}, 0, false},
		{[]string{"]]"}, 0, false},
		{[]string{"]]>"}, 3, true},
		{[]string{">]]>"}, 4, true},
		{[]string{"some data ]", "] still data", "]]> and tail"}, 3, true},
	}

	for _, tc := range cases {
		var p scanner.CDataParser
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
