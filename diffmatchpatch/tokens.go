// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
)

// DiffLinesToRunes splits two texts into a list of runes, one rune per line.
// The returned tokens slice maps each rune back to its line, newline included.
func (dmp *DiffMatchPatch) DiffLinesToRunes(text1, text2 string) ([]rune, []rune, []string) {
	t := newTokenizer(splitLines)
	return t.encodePair(text1, text2)
}

// DiffWordsToRunes splits two texts into a list of runes, one rune per word
// segment as defined by Unicode text segmentation (UAX #29). Whitespace and
// punctuation runs are segments of their own.
func (dmp *DiffMatchPatch) DiffWordsToRunes(text1, text2 string) ([]rune, []rune, []string) {
	t := newTokenizer(splitWords)
	return t.encodePair(text1, text2)
}

// DiffRunesToTokens rehydrates the text in a diff from a string of token
// runes to the tokens themselves. tokens is the table returned by
// DiffLinesToRunes or DiffWordsToRunes; a rune with no entry in it is kept
// as is.
func (dmp *DiffMatchPatch) DiffRunesToTokens(diffs []Diff, tokens []string) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		var text strings.Builder
		for _, r := range aDiff.Text {
			if i := runeToIndex(r); i > 0 && int(i) < len(tokens) {
				_, _ = text.WriteString(tokens[i])
			} else {
				_, _ = text.WriteRune(r)
			}
		}
		hydrated = append(hydrated, Diff{Type: aDiff.Type, Text: text.String()})
	}
	return coalesce(hydrated)
}

// DiffLines finds the differences between two texts line by line. Identical
// texts produce an empty edit script.
func (dmp *DiffMatchPatch) DiffLines(text1, text2 string) []Diff {
	if text1 == text2 {
		return nil
	}
	runes1, runes2, tokens := dmp.DiffLinesToRunes(text1, text2)
	return dmp.DiffRunesToTokens(dmp.DiffMainRunes(runes1, runes2), tokens)
}

// DiffWords finds the differences between two texts word by word, the way
// revision texts are compared for display. Identical texts produce an empty
// edit script.
func (dmp *DiffMatchPatch) DiffWords(text1, text2 string) []Diff {
	if text1 == text2 {
		return nil
	}
	runes1, runes2, tokens := dmp.DiffWordsToRunes(text1, text2)
	return dmp.DiffRunesToTokens(dmp.DiffMainRunes(runes1, runes2), tokens)
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func splitWords(text string) []string {
	var segments []string
	tokens := words.FromString(text)
	for tokens.Next() {
		segments = append(segments, tokens.Value())
	}
	return segments
}

type tokenizer struct {
	split  func(string) []string
	tokens []string
	hash   map[string]index
}

func newTokenizer(split func(string) []string) *tokenizer {
	return &tokenizer{
		split: split,
		// '\x00' is a valid character, but various debuggers don't like it.
		// So we'll insert a junk entry to avoid generating a null character.
		tokens: []string{""},
		hash:   map[string]index{},
	}
}

// encodePair encodes both texts against a shared token table. text1 may use
// at most two thirds of the token space so that text2 always has room.
func (t *tokenizer) encodePair(text1, text2 string) ([]rune, []rune, []string) {
	runes1 := t.encode(text1, maxTokens*2/3)
	runes2 := t.encode(text2, maxTokens)
	return runes1, runes2, t.tokens
}

// encode converts text to one rune per segment. Once the table holds limit-1
// tokens, the rest of the text becomes a single final token.
func (t *tokenizer) encode(text string, limit int) []rune {
	var runes []rune
	offset := 0
	for _, seg := range t.split(text) {
		if _, ok := t.hash[seg]; !ok && len(t.tokens) >= limit-1 {
			return append(runes, t.intern(text[offset:]))
		}
		runes = append(runes, t.intern(seg))
		offset += len(seg)
	}
	return runes
}

func (t *tokenizer) intern(seg string) rune {
	idx, ok := t.hash[seg]
	if !ok {
		idx = index(len(t.tokens))
		t.tokens = append(t.tokens, seg)
		t.hash[seg] = idx
	}
	return indexToRune(idx)
}
