package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"review_sentiment/internal/adapters/observability"
	"review_sentiment/internal/domain"
	"review_sentiment/internal/sentiment"
)

type ClassificationService struct {
	scorer  domain.Scorer
	workers int
}

func NewClassificationService(s domain.Scorer, workers int) *ClassificationService {
	if workers <= 0 {
		workers = 1
	}
	return &ClassificationService{scorer: s, workers: workers}
}

// Classify scores one review and labels it.
func (s *ClassificationService) Classify(r domain.Review) domain.ClassifiedReview {
	cr := sentiment.Classify(domain.ScoredReview{Review: r, Score: s.scorer.Score(r.ReviewText)})
	observability.ObserveClassified(string(cr.Sentiment), string(cr.Bucket), cr.Score)
	return cr
}

// ClassifyAll maps Classify over rs with at most s.workers goroutines.
// Output order matches input order.
func (s *ClassificationService) ClassifyAll(ctx context.Context, rs []domain.Review) ([]domain.ClassifiedReview, error) {
	out := make([]domain.ClassifiedReview, len(rs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range rs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.Classify(rs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type RunStats struct {
	Batches int
	Summary domain.Summary
	Head    []domain.ClassifiedReview // first few results, for eyeballing
}

const headSize = 5

// Run pages through src in batches, classifies each batch and hands it to every sink.
func (s *ClassificationService) Run(ctx context.Context, src domain.ReviewSource, batchSize int, sinks ...domain.Sink) (RunStats, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	var (
		stats   RunStats
		tally   = newTally()
		afterID int64
	)
	for {
		start := time.Now()
		batch, err := src.ListReviews(ctx, afterID, batchSize)
		if err != nil {
			return stats, fmt.Errorf("list reviews after %d: %w", afterID, err)
		}
		if len(batch) == 0 {
			break
		}

		classified, err := s.ClassifyAll(ctx, batch)
		if err != nil {
			return stats, err
		}
		for _, sink := range sinks {
			if err := sink.WriteBatch(ctx, classified); err != nil {
				return stats, fmt.Errorf("write batch after %d: %w", afterID, err)
			}
		}

		for _, cr := range classified {
			tally.add(cr)
			if len(stats.Head) < headSize {
				stats.Head = append(stats.Head, cr)
			}
		}
		stats.Batches++
		afterID = batch[len(batch)-1].ReviewID
		observability.ObserveBatch(time.Since(start))

		log.Debug().
			Int("batch", stats.Batches).
			Int("size", len(batch)).
			Int64("last_id", afterID).
			Msg("batch classified")

		if len(batch) < batchSize {
			break
		}
	}
	stats.Summary = tally.summary()
	return stats, nil
}
