package diffmatchpatch

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestIndexConversion(t *testing.T) {
	prev := rune(-1)
	for i := index(0); i < maxTokens; i++ {
		r := indexToRune(i)
		if r <= prev || runeToIndex(r) != i {
			t.Fatalf("index %d encodes to %U, decodes to %d", i, r, runeToIndex(r))
		}
		prev = r
	}
	assert.Equal(t, rune(utf8.MaxRune), prev)
}

func TestIndexSkipsSurrogates(t *testing.T) {
	assert.Equal(t, rune(runeSkipStart-1), indexToRune(runeSkipStart-1))
	assert.Equal(t, rune(runeSkipEnd), indexToRune(runeSkipStart))
	assert.Equal(t, rune(utf8.MaxRune), indexToRune(maxTokens-1))

	for _, i := range []index{0, 1, runeSkipStart - 1, runeSkipStart, maxTokens - 1} {
		assert.True(t, utf8.ValidRune(indexToRune(i)))
		assert.Equal(t, i, runeToIndex(indexToRune(i)))
	}
}
