// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Package diffmatchpatch computes minimal edit scripts between two texts.
//
// All lengths and offsets are measured in Unicode codepoints. Texts are decoded
// into rune slices once at the entry points so that no operation ever splits a
// multi-byte character.
package diffmatchpatch

import (
	"time"
)

// DiffMatchPatch holds the configuration for diff operations.
type DiffMatchPatch struct {
	// Time budget for a single diff before falling back to a non-minimal
	// result (0 for infinity).
	DiffTimeout time.Duration
	// Minimum length, in codepoints, both texts must have before the
	// half-match heuristic is tried.
	HalfMatchMinLength int
}

// New creates a new DiffMatchPatch object with default parameters.
func New() *DiffMatchPatch {
	// Defaults.
	return &DiffMatchPatch{
		DiffTimeout:        time.Second,
		HalfMatchMinLength: 100,
	}
}

// deadline returns the instant a diff started now must be finished by. The
// zero time means no deadline.
func (dmp *DiffMatchPatch) deadline() time.Time {
	if dmp.DiffTimeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(dmp.DiffTimeout)
}

// expired reports whether the deadline is set and has passed.
func expired(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}

// Return the index of pattern in target, starting at target[i].
func runesIndexOf(target, pattern []rune, i int) int {
	if i > len(target)-1 {
		return -1
	}
	if i <= 0 {
		return runesIndex(target, pattern)
	}
	ind := runesIndex(target[i:], pattern)
	if ind == -1 {
		return -1
	}
	return ind + i
}

func runesEqual(r1, r2 []rune) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i, c := range r1 {
		if c != r2[i] {
			return false
		}
	}
	return true
}

// The equivalent of strings.Index for rune slices.
func runesIndex(r1, r2 []rune) int {
	last := len(r1) - len(r2)
	for i := 0; i <= last; i++ {
		if runesEqual(r1[i:i+len(r2)], r2) {
			return i
		}
	}
	return -1
}

// decode converts s to runes. n is a capacity hint in codepoints; a negative
// value means unknown.
func decode(s string, n int) []rune {
	if n < 0 {
		return []rune(s)
	}
	runes := make([]rune, 0, n)
	for _, r := range s {
		runes = append(runes, r)
	}
	return runes
}
