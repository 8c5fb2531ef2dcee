// Package revision keeps the history of textual fields and compares their
// revisions with the diff engine.
package revision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/movlib/go-diff/diffmatchpatch"
)

var (
	// ErrNotFound is returned when an entity or revision does not exist.
	ErrNotFound = errors.New("revision not found")
	// ErrUnchanged is returned when a commit would repeat the latest text.
	ErrUnchanged = errors.New("text unchanged since latest revision")
)

// Revision is one stored version of an entity's text. Numbers start at 1 and
// increase by one per entity.
type Revision struct {
	EntityID string    `json:"entity_id"`
	Number   int       `json:"number"`
	Author   string    `json:"author,omitempty"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// Store persists revisions.
type Store interface {
	Add(ctx context.Context, entityID, author, text string) (Revision, error)
	Get(ctx context.Context, entityID string, number int) (Revision, error)
	Latest(ctx context.Context, entityID string) (Revision, error)
	List(ctx context.Context, entityID string) ([]Revision, error)
	Close() error
}

// Granularity selects the unit revisions are compared in.
type Granularity string

const (
	Chars Granularity = "chars"
	Words Granularity = "words"
	Lines Granularity = "lines"
)

// ParseGranularity converts a configuration value to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Chars, Words, Lines:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Diff computes the edit script between two texts in units of g. Identical
// texts give an empty script.
func (g Granularity) Diff(dmp *diffmatchpatch.DiffMatchPatch, text1, text2 string) []diffmatchpatch.Diff {
	switch g {
	case Words:
		return dmp.DiffWords(text1, text2)
	case Lines:
		return dmp.DiffLines(text1, text2)
	default:
		return dmp.GetDiff(text1, text2)
	}
}

// stamp drops the monotonic clock reading and location so that times survive
// a round trip through the store unchanged.
func stamp(t time.Time) time.Time {
	return time.Unix(0, t.UnixNano()).UTC()
}
