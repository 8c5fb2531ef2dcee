// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

// Token indexes are encoded as runes so that token sequences can be diffed
// with the character engine. Surrogate codepoints are not valid runes and
// are skipped.
const (
	runeSkipStart = 0xd800
	runeSkipEnd   = 0xe000
	runeMax       = 0x110000

	// maxTokens is the number of distinct tokens that can be encoded.
	maxTokens = runeMax - (runeSkipEnd - runeSkipStart)
)

type index int

func indexToRune(i index) rune {
	if i >= runeSkipStart {
		i += runeSkipEnd - runeSkipStart
	}
	return rune(i)
}

func runeToIndex(r rune) index {
	i := index(r)
	if i >= runeSkipEnd {
		i -= runeSkipEnd - runeSkipStart
	}
	return i
}
