// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"fmt"
	"strings"
)

// Operation defines the operation of a diff item.
type Operation int8

//go:generate stringer -type=Operation -trimprefix=Diff

const (
	// DiffDelete item represents a delete diff.
	DiffDelete Operation = -1
	// DiffInsert item represents an insert diff.
	DiffInsert Operation = 1
	// DiffCopy item represents text present in both inputs.
	DiffCopy Operation = 0
)

// MarshalText encodes the operation as its lowercase kind name.
func (i Operation) MarshalText() ([]byte, error) {
	switch i {
	case DiffDelete, DiffInsert, DiffCopy:
		return []byte(strings.ToLower(i.String())), nil
	}
	return nil, fmt.Errorf("invalid operation %d", int8(i))
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (i *Operation) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "delete":
		*i = DiffDelete
	case "insert":
		*i = DiffInsert
	case "copy":
		*i = DiffCopy
	default:
		return fmt.Errorf("unknown operation %q", text)
	}
	return nil
}
