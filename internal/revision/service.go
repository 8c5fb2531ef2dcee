package revision

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/movlib/go-diff/diffmatchpatch"
)

// Comparison is the difference between two revisions of an entity.
type Comparison struct {
	EntityID string                `json:"entity_id"`
	From     int                   `json:"from"`
	To       int                   `json:"to"`
	Diffs    []diffmatchpatch.Diff `json:"diffs"`
	// HTML renders Diffs with <ins> and <del> markup.
	HTML     string `json:"html"`
	Distance int    `json:"distance"`
}

// Service records and compares revisions.
type Service struct {
	store       Store
	dmp         *diffmatchpatch.DiffMatchPatch
	granularity Granularity
	logger      *zap.Logger
}

// NewService returns a Service. A nil logger disables logging.
func NewService(store Store, dmp *diffmatchpatch.DiffMatchPatch, granularity Granularity, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		dmp:         dmp,
		granularity: granularity,
		logger:      logger,
	}
}

// Commit stores text as a new revision of entityID. It returns ErrUnchanged
// when text equals the latest revision.
func (s *Service) Commit(ctx context.Context, entityID, author, text string) (Revision, error) {
	latest, err := s.store.Latest(ctx, entityID)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return Revision{}, err
	default:
		if len(s.granularity.Diff(s.dmp, latest.Text, text)) == 0 {
			s.logger.Debug("Skipping unchanged revision",
				zap.String("entity", entityID),
				zap.Int("latest", latest.Number))
			return latest, ErrUnchanged
		}
	}

	rev, err := s.store.Add(ctx, entityID, author, text)
	if err != nil {
		return Revision{}, err
	}
	s.logger.Info("Committed revision",
		zap.String("entity", entityID),
		zap.Int("number", rev.Number),
		zap.String("author", author))
	return rev, nil
}

// Compare diffs revision from against revision to of entityID.
func (s *Service) Compare(ctx context.Context, entityID string, from, to int) (*Comparison, error) {
	older, err := s.store.Get(ctx, entityID, from)
	if err != nil {
		return nil, err
	}
	newer, err := s.store.Get(ctx, entityID, to)
	if err != nil {
		return nil, err
	}
	return s.compare(older, newer), nil
}

// Changes compares every pair of consecutive revisions of entityID. The
// comparisons run concurrently and are returned oldest first.
func (s *Service) Changes(ctx context.Context, entityID string) ([]*Comparison, error) {
	revs, err := s.store.List(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if len(revs) < 2 {
		return nil, nil
	}

	comparisons := make([]*Comparison, len(revs)-1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 1; i < len(revs); i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			comparisons[i-1] = s.compare(revs[i-1], revs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comparing revisions of %s: %w", entityID, err)
	}
	return comparisons, nil
}

// Locate maps a codepoint location in revision from to the equivalent
// location in revision to.
func (s *Service) Locate(ctx context.Context, entityID string, from, to, loc int) (int, error) {
	c, err := s.Compare(ctx, entityID, from, to)
	if err != nil {
		return 0, err
	}
	return s.dmp.DiffXIndex(c.Diffs, loc), nil
}

func (s *Service) compare(older, newer Revision) *Comparison {
	start := time.Now()
	diffs := s.granularity.Diff(s.dmp, older.Text, newer.Text)
	c := &Comparison{
		EntityID: older.EntityID,
		From:     older.Number,
		To:       newer.Number,
		Diffs:    diffs,
		HTML:     s.dmp.DiffPrettyHtml(diffs),
		Distance: s.dmp.DiffLevenshtein(diffs),
	}
	s.logger.Debug("Compared revisions",
		zap.String("entity", older.EntityID),
		zap.Int("from", older.Number),
		zap.Int("to", newer.Number),
		zap.Int("edits", len(diffs)),
		zap.Duration("elapsed", time.Since(start)))
	return c
}
