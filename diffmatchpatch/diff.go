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
	"time"
	"unicode/utf8"
)

// Diff represents one diff operation.
//
// Text comes from the new text for DiffInsert and DiffCopy and from the old
// text for DiffDelete. Length is the number of codepoints in Text.
type Diff struct {
	Type   Operation `json:"kind"`
	Text   string    `json:"text"`
	Length int       `json:"length"`
}

func runeDiff(op Operation, text []rune) Diff {
	return Diff{Type: op, Text: string(text), Length: len(text)}
}

// splice removes amount elements from slice at index index, replacing them with elements.
func splice(slice []Diff, index int, amount int, elements ...Diff) []Diff {
	if len(elements) == amount {
		// Easy case: overwrite the relevant items.
		copy(slice[index:], elements)
		return slice
	}
	if len(elements) < amount {
		// Fewer new items than old.
		// Copy in the new items.
		copy(slice[index:], elements)
		// Shift the remaining items left.
		copy(slice[index+len(elements):], slice[index+amount:])
		// Calculate the new end of the slice.
		end := len(slice) - amount + len(elements)
		// Zero stranded elements at end so that they can be garbage collected.
		tail := slice[end:]
		for i := range tail {
			tail[i] = Diff{}
		}
		return slice[:end]
	}
	// More new items than old.
	// Make room in slice for new elements.
	need := len(slice) - amount + len(elements)
	for len(slice) < need {
		slice = append(slice, Diff{})
	}
	// Shift slice elements right to make room for new elements.
	copy(slice[index+len(elements):], slice[index+amount:])
	// Copy in new elements.
	copy(slice[index:], elements)
	return slice
}

// GetDiff finds the differences between oldText and newText.
//
// Identical texts produce an empty edit script, so callers can test for
// "no changes" with len(diffs) == 0.
//
// The diff is bounded by dmp.DiffTimeout. Once it runs out the remaining
// differences are reported as a deletion plus an insertion, so the result
// is still correct but may not be minimal. Set DiffTimeout to 0 for a
// minimal diff at any cost.
func (dmp *DiffMatchPatch) GetDiff(oldText, newText string) []Diff {
	if oldText == newText {
		return nil
	}
	return dmp.DiffMain(oldText, newText)
}

// DiffMain finds the differences between two texts. Unlike GetDiff, identical
// non-empty texts produce a single DiffCopy.
func (dmp *DiffMatchPatch) DiffMain(text1, text2 string) []Diff {
	return dmp.DiffWithDeadline(text1, -1, text2, -1, dmp.deadline())
}

// DiffWithDeadline finds the differences between two texts of known codepoint
// lengths, giving up on minimality once deadline has passed. A negative length
// is counted, the zero deadline never expires.
func (dmp *DiffMatchPatch) DiffWithDeadline(oldText string, oldLen int, newText string, newLen int, deadline time.Time) []Diff {
	return dmp.diffMainRunes(decode(oldText, oldLen), decode(newText, newLen), deadline)
}

// DiffMainRunes finds the differences between two rune sequences.
func (dmp *DiffMatchPatch) DiffMainRunes(text1, text2 []rune) []Diff {
	return dmp.diffMainRunes(text1, text2, dmp.deadline())
}

func (dmp *DiffMatchPatch) diffMainRunes(text1, text2 []rune, deadline time.Time) []Diff {
	if runesEqual(text1, text2) {
		var diffs []Diff
		if len(text1) > 0 {
			diffs = append(diffs, runeDiff(DiffCopy, text1))
		}
		return diffs
	}
	// Trim off common prefix (speedup).
	commonlength := commonPrefixLength(text1, text2)
	commonprefix := text1[:commonlength]
	text1 = text1[commonlength:]
	text2 = text2[commonlength:]

	// Trim off common suffix (speedup).
	commonlength = commonSuffixLength(text1, text2)
	commonsuffix := text1[len(text1)-commonlength:]
	text1 = text1[:len(text1)-commonlength]
	text2 = text2[:len(text2)-commonlength]

	// Compute the diff on the middle block.
	diffs := dmp.diffCompute(text1, text2, deadline)

	// Restore the prefix and suffix.
	if len(commonprefix) != 0 {
		diffs = append([]Diff{runeDiff(DiffCopy, commonprefix)}, diffs...)
	}
	if len(commonsuffix) != 0 {
		diffs = append(diffs, runeDiff(DiffCopy, commonsuffix))
	}

	return dmp.DiffCleanupMerge(diffs)
}

// diffCompute finds the differences between two rune slices. Assumes that the
// texts do not have any common prefix or suffix.
func (dmp *DiffMatchPatch) diffCompute(text1, text2 []rune, deadline time.Time) []Diff {
	if len(text1) == 0 {
		// Just add some text (speedup).
		return []Diff{runeDiff(DiffInsert, text2)}
	} else if len(text2) == 0 {
		// Just delete some text (speedup).
		return []Diff{runeDiff(DiffDelete, text1)}
	}

	var longtext, shorttext []rune
	if len(text1) > len(text2) {
		longtext = text1
		shorttext = text2
	} else {
		longtext = text2
		shorttext = text1
	}

	if i := runesIndex(longtext, shorttext); i != -1 {
		op := DiffInsert
		// Swap insertions for deletions if diff is reversed.
		if len(text1) > len(text2) {
			op = DiffDelete
		}
		// Shorter text is inside the longer text (speedup).
		return []Diff{
			runeDiff(op, longtext[:i]),
			runeDiff(DiffCopy, shorttext),
			runeDiff(op, longtext[i+len(shorttext):]),
		}
	} else if len(shorttext) == 1 {
		// Single character string.
		// After the previous speedup, the character can't be an equality.
		return []Diff{
			runeDiff(DiffDelete, text1),
			runeDiff(DiffInsert, text2),
		}
	}

	// Check to see if the problem can be split in two.
	if dmp.halfMatchAllowed(text1, text2, deadline) {
		if hm := diffHalfMatch(text1, text2); hm != nil {
			// Send both pairs off for separate processing.
			diffsA := dmp.diffMainRunes(hm.prefix1, hm.prefix2, deadline)
			diffsB := dmp.diffMainRunes(hm.suffix1, hm.suffix2, deadline)
			// Merge the results.
			diffs := diffsA
			diffs = append(diffs, runeDiff(DiffCopy, hm.common))
			return append(diffs, diffsB...)
		}
	}

	return dmp.diffBisect(text1, text2, deadline)
}

// halfMatchAllowed reports whether the half-match heuristic may trade
// minimality for speed. Without a deadline the caller asked for a minimal diff.
func (dmp *DiffMatchPatch) halfMatchAllowed(text1, text2 []rune, deadline time.Time) bool {
	if deadline.IsZero() || expired(deadline) {
		return false
	}
	return len(text1) >= dmp.HalfMatchMinLength && len(text2) >= dmp.HalfMatchMinLength
}

// DiffBisect finds the 'middle snake' of a diff, splits the problem in two and
// returns the recursively constructed diff. Once deadline has passed the
// search stops and the texts are returned as a deletion plus an insertion.
// See Myers 1986 paper: An O(ND) Difference Algorithm and Its Variations.
func (dmp *DiffMatchPatch) DiffBisect(text1, text2 string, deadline time.Time) []Diff {
	return compact(dmp.diffBisect([]rune(text1), []rune(text2), deadline))
}

// diffBisect finds the 'middle snake' of a diff, splits the problem in two and
// returns the recursively constructed diff.
func (dmp *DiffMatchPatch) diffBisect(runes1, runes2 []rune, deadline time.Time) []Diff {
	// Cache the text lengths to prevent multiple calls.
	runes1Len, runes2Len := len(runes1), len(runes2)

	maxD := (runes1Len + runes2Len + 1) / 2
	vOffset := maxD
	// Two spare slots keep v[vOffset+1] addressable for tiny inputs.
	vLength := 2*maxD + 2

	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := runes1Len - runes2Len
	// If the total number of characters is odd, then the front path will collide with the reverse path.
	front := (delta%2 != 0)
	// Offsets for start and end of k loop. Prevents mapping of space beyond the grid.
	k1start := 0
	k1end := 0
	k2start := 0
	k2end := 0
	for d := 0; d < maxD; d++ {
		// Bail out if deadline is reached.
		if d%16 == 0 && expired(deadline) {
			break
		}

		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int

			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}

			y1 := x1 - k1
			for x1 < runes1Len && y1 < runes2Len {
				if runes1[x1] != runes2[y1] {
					break
				}
				x1++
				y1++
			}
			v1[k1Offset] = x1
			if x1 > runes1Len {
				// Ran off the right of the graph.
				k1end += 2
			} else if y1 > runes2Len {
				// Ran off the bottom of the graph.
				k1start += 2
			} else if front {
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					x2 := runes1Len - v2[k2Offset]
					if x1 >= x2 {
						// Overlap detected.
						return dmp.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < runes1Len && y2 < runes2Len {
				if runes1[runes1Len-x2-1] != runes2[runes2Len-y2-1] {
					break
				}
				x2++
				y2++
			}
			v2[k2Offset] = x2
			if x2 > runes1Len {
				// Ran off the left of the graph.
				k2end += 2
			} else if y2 > runes2Len {
				// Ran off the top of the graph.
				k2start += 2
			} else if !front {
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto top-left coordinate system.
					x2 = runes1Len - x2
					if x1 >= x2 {
						// Overlap detected.
						return dmp.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
	}
	// Diff took too long and hit the deadline or number of diffs equals number of characters, no commonality at all.
	return []Diff{
		runeDiff(DiffDelete, runes1),
		runeDiff(DiffInsert, runes2),
	}
}

func (dmp *DiffMatchPatch) diffBisectSplit(runes1, runes2 []rune, x, y int, deadline time.Time) []Diff {
	runes1a := runes1[:x]
	runes2a := runes2[:y]
	runes1b := runes1[x:]
	runes2b := runes2[y:]

	// Compute both diffs serially.
	diffs := dmp.diffMainRunes(runes1a, runes2a, deadline)
	diffsb := dmp.diffMainRunes(runes1b, runes2b, deadline)

	return append(diffs, diffsb...)
}

// DiffCommonPrefix determines the common prefix length of two strings in codepoints.
func (dmp *DiffMatchPatch) DiffCommonPrefix(text1, text2 string) int {
	n := 0
	for len(text1) > 0 && len(text2) > 0 {
		r1, size1 := utf8.DecodeRuneInString(text1)
		r2, size2 := utf8.DecodeRuneInString(text2)
		if r1 != r2 {
			break
		}
		text1, text2 = text1[size1:], text2[size2:]
		n++
	}
	return n
}

// DiffCommonSuffix determines the common suffix length of two strings in codepoints.
func (dmp *DiffMatchPatch) DiffCommonSuffix(text1, text2 string) int {
	n := 0
	for len(text1) > 0 && len(text2) > 0 {
		r1, size1 := utf8.DecodeLastRuneInString(text1)
		r2, size2 := utf8.DecodeLastRuneInString(text2)
		if r1 != r2 {
			break
		}
		text1, text2 = text1[:len(text1)-size1], text2[:len(text2)-size2]
		n++
	}
	return n
}

// commonPrefixLength returns the length of the common prefix of two rune slices.
func commonPrefixLength(text1, text2 []rune) int {
	n := 0
	for ; n < len(text1) && n < len(text2); n++ {
		if text1[n] != text2[n] {
			return n
		}
	}
	return n
}

// commonSuffixLength returns the length of the common suffix of two rune slices.
func commonSuffixLength(text1, text2 []rune) int {
	i1 := len(text1)
	i2 := len(text2)
	for n := 0; ; n++ {
		i1--
		i2--
		if i1 < 0 || i2 < 0 || text1[i1] != text2[i2] {
			return n
		}
	}
}

// HalfMatch is a common substring splitting two texts into independent halves:
// text1 == Prefix1 + Common + Suffix1 and text2 == Prefix2 + Common + Suffix2.
type HalfMatch struct {
	Prefix1, Suffix1 string
	Prefix2, Suffix2 string
	Common           string
	// CommonLength is the length of Common in codepoints.
	CommonLength int
}

type halfMatch struct {
	prefix1, suffix1 []rune
	prefix2, suffix2 []rune
	common           []rune
}

// DiffHalfMatch checks whether the two texts share a substring which is at
// least half the length of the longer text. This speedup can produce
// non-minimal diffs. Returns nil if there is no such substring.
func (dmp *DiffMatchPatch) DiffHalfMatch(text1, text2 string) *HalfMatch {
	hm := diffHalfMatch([]rune(text1), []rune(text2))
	if hm == nil {
		return nil
	}
	return &HalfMatch{
		Prefix1:      string(hm.prefix1),
		Suffix1:      string(hm.suffix1),
		Prefix2:      string(hm.prefix2),
		Suffix2:      string(hm.suffix2),
		Common:       string(hm.common),
		CommonLength: len(hm.common),
	}
}

func diffHalfMatch(text1, text2 []rune) *halfMatch {
	var longtext, shorttext []rune
	if len(text1) > len(text2) {
		longtext = text1
		shorttext = text2
	} else {
		longtext = text2
		shorttext = text1
	}

	if len(longtext) < 4 || len(shorttext)*2 < len(longtext) {
		return nil // Pointless.
	}

	// First check if the second quarter is the seed for a half-match.
	hm1 := diffHalfMatchI(longtext, shorttext, (len(longtext)+3)/4)

	// Check again based on the third quarter.
	hm2 := diffHalfMatchI(longtext, shorttext, (len(longtext)+1)/2)

	var hm *halfMatch
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1.common) > len(hm2.common):
		// Both matched. Select the longest.
		hm = hm1
	default:
		hm = hm2
	}

	// A half-match was found, sort out the return data.
	if len(text1) > len(text2) {
		return hm
	}
	return &halfMatch{
		prefix1: hm.prefix2,
		suffix1: hm.suffix2,
		prefix2: hm.prefix1,
		suffix2: hm.suffix1,
		common:  hm.common,
	}
}

// diffHalfMatchI checks if a substring of shorttext exists within longtext
// such that the substring is at least half the length of longtext. i is the
// start index of the quarter length seed within longtext. The result is
// oriented as (longtext, shorttext).
func diffHalfMatchI(l, s []rune, i int) *halfMatch {
	var best *halfMatch
	bestCommonLen := 0

	// Start with a 1/4 length substring at position i as a seed.
	seed := l[i : i+len(l)/4]

	for j := runesIndexOf(s, seed, 0); j != -1; j = runesIndexOf(s, seed, j+1) {
		prefixLength := commonPrefixLength(l[i:], s[j:])
		suffixLength := commonSuffixLength(l[:i], s[:j])

		if bestCommonLen < suffixLength+prefixLength {
			bestCommonLen = suffixLength + prefixLength
			best = &halfMatch{
				prefix1: l[:i-suffixLength],
				suffix1: l[i+prefixLength:],
				prefix2: s[:j-suffixLength],
				suffix2: s[j+prefixLength:],
				common:  s[j-suffixLength : j+prefixLength],
			}
		}
	}

	if best == nil || bestCommonLen*2 < len(l) {
		return nil
	}
	return best
}

// compact returns a copy of diffs without zero-length operations.
func compact(diffs []Diff) []Diff {
	out := make([]Diff, 0, len(diffs)+1)
	for _, d := range diffs {
		if d.Text != "" {
			out = append(out, d)
		}
	}
	return out
}

// coalesce merges neighbouring operations of the same kind in place and
// recomputes their lengths.
func coalesce(diffs []Diff) []Diff {
	out := diffs[:0]
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Type == d.Type {
			out[n-1].Text += d.Text
			continue
		}
		out = append(out, d)
	}
	for i := range out {
		out[i].Length = utf8.RuneCountInString(out[i].Text)
	}
	return out
}

// DiffCleanupMerge reorders and merges like edit sections. Merge equalities.
// Any edit section can move as long as it doesn't cross an equality. The input
// slice is left untouched.
func (dmp *DiffMatchPatch) DiffCleanupMerge(diffs []Diff) []Diff {
	diffs = compact(diffs)
	// Add a dummy entry at the end.
	diffs = append(diffs, Diff{Type: DiffCopy})
	pointer := 0
	countDelete := 0
	countInsert := 0
	var textDelete, textInsert []rune

	for pointer < len(diffs) {
		switch diffs[pointer].Type {
		case DiffInsert:
			countInsert++
			textInsert = append(textInsert, []rune(diffs[pointer].Text)...)
			pointer++
		case DiffDelete:
			countDelete++
			textDelete = append(textDelete, []rune(diffs[pointer].Text)...)
			pointer++
		case DiffCopy:
			// Upon reaching an equality, check for prior redundancies.
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					// Factor out any common prefixes.
					if n := commonPrefixLength(textInsert, textDelete); n != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Type == DiffCopy {
							diffs[x-1].Text += string(textInsert[:n])
						} else {
							diffs = splice(diffs, 0, 0, runeDiff(DiffCopy, textInsert[:n]))
							pointer++
						}
						textInsert = textInsert[n:]
						textDelete = textDelete[n:]
					}
					// Factor out any common suffixes.
					if n := commonSuffixLength(textInsert, textDelete); n != 0 {
						insertIndex := len(textInsert) - n
						diffs[pointer].Text = string(textInsert[insertIndex:]) + diffs[pointer].Text
						textInsert = textInsert[:insertIndex]
						textDelete = textDelete[:len(textDelete)-n]
					}
				}
				// Delete the offending records and add the merged ones.
				pointer -= countDelete + countInsert
				diffs = splice(diffs, pointer, countDelete+countInsert)
				if len(textDelete) > 0 {
					diffs = splice(diffs, pointer, 0, runeDiff(DiffDelete, textDelete))
					pointer++
				}
				if len(textInsert) > 0 {
					diffs = splice(diffs, pointer, 0, runeDiff(DiffInsert, textInsert))
					pointer++
				}
				pointer++
			} else if pointer != 0 && diffs[pointer-1].Type == DiffCopy {
				// Merge this equality with the previous one.
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = splice(diffs, pointer, 1)
			} else {
				pointer++
			}
			countInsert = 0
			countDelete = 0
			textDelete = nil
			textInsert = nil
		}
	}

	if len(diffs[len(diffs)-1].Text) == 0 {
		diffs = diffs[0 : len(diffs)-1] // Remove the dummy entry at the end.
	}

	// Second pass: look for single edits surrounded on both sides by
	// equalities which can be shifted sideways to eliminate an equality.
	// e.g: A<ins>BA</ins>C -> <ins>AB</ins>AC
	changes := false
	// Intentionally ignore the first and last element (don't need checking).
	for pointer = 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Type != DiffCopy || diffs[pointer+1].Type != DiffCopy {
			continue
		}
		// This is a single edit surrounded by equalities.
		if strings.HasSuffix(diffs[pointer].Text, diffs[pointer-1].Text) {
			// Shift the edit over the previous equality.
			diffs[pointer].Text = diffs[pointer-1].Text +
				diffs[pointer].Text[:len(diffs[pointer].Text)-len(diffs[pointer-1].Text)]
			diffs[pointer+1].Text = diffs[pointer-1].Text + diffs[pointer+1].Text
			diffs = splice(diffs, pointer-1, 1)
			changes = true
		} else if strings.HasPrefix(diffs[pointer].Text, diffs[pointer+1].Text) {
			// Shift the edit over the next equality.
			diffs[pointer-1].Text += diffs[pointer+1].Text
			diffs[pointer].Text =
				diffs[pointer].Text[len(diffs[pointer+1].Text):] + diffs[pointer+1].Text
			diffs = splice(diffs, pointer+1, 1)
			changes = true
		}
	}

	// If shifts were made, the diff needs reordering and another shift sweep.
	if changes {
		return dmp.DiffCleanupMerge(diffs)
	}

	return coalesce(diffs)
}

// DiffText1 computes and returns the source text (all equalities and deletions).
func (dmp *DiffMatchPatch) DiffText1(diffs []Diff) string {
	var text strings.Builder

	for _, aDiff := range diffs {
		if aDiff.Type != DiffInsert {
			_, _ = text.WriteString(aDiff.Text)
		}
	}
	return text.String()
}

// DiffText2 computes and returns the destination text (all equalities and insertions).
func (dmp *DiffMatchPatch) DiffText2(diffs []Diff) string {
	var text strings.Builder

	for _, aDiff := range diffs {
		if aDiff.Type != DiffDelete {
			_, _ = text.WriteString(aDiff.Text)
		}
	}
	return text.String()
}

// DiffLevenshtein computes the Levenshtein distance in codepoints; the number
// of inserted, deleted or substituted characters.
func (dmp *DiffMatchPatch) DiffLevenshtein(diffs []Diff) int {
	levenshtein := 0
	insertions := 0
	deletions := 0

	for _, aDiff := range diffs {
		switch aDiff.Type {
		case DiffInsert:
			insertions += utf8.RuneCountInString(aDiff.Text)
		case DiffDelete:
			deletions += utf8.RuneCountInString(aDiff.Text)
		case DiffCopy:
			// A deletion and an insertion is one substitution.
			levenshtein += max(insertions, deletions)
			insertions = 0
			deletions = 0
		}
	}

	levenshtein += max(insertions, deletions)
	return levenshtein
}

// DiffXIndex returns the equivalent location in the destination text of loc,
// a codepoint location in the source text.
// e.g. "The cat" vs "The big cat", 1->1, 5->8
func (dmp *DiffMatchPatch) DiffXIndex(diffs []Diff, loc int) int {
	chars1 := 0
	chars2 := 0
	lastChars1 := 0
	lastChars2 := 0
	lastDiff := Diff{}
	for _, aDiff := range diffs {
		n := utf8.RuneCountInString(aDiff.Text)
		if aDiff.Type != DiffInsert {
			// Equality or deletion.
			chars1 += n
		}
		if aDiff.Type != DiffDelete {
			// Equality or insertion.
			chars2 += n
		}
		if chars1 > loc {
			// Overshot the location.
			lastDiff = aDiff
			break
		}
		lastChars1 = chars1
		lastChars2 = chars2
	}
	if lastDiff.Type == DiffDelete {
		// The location was deleted.
		return lastChars2
	}
	// Add the remaining character length.
	return lastChars2 + (loc - lastChars1)
}
