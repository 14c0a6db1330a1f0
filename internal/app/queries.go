package app

import (
	"context"
	"fmt"
	"time"

	"review_sentiment/internal/domain"
)

type QueryService struct {
	store    domain.ResultStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ResultStore, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: r, cache: c, cacheTTL: ttl}
}

func ReviewKey(id int64) string  { return fmt.Sprintf("sentiment:review:%d", id) }
func ProductKey(id int64) string { return fmt.Sprintf("sentiment:product:%d", id) }

func (s *QueryService) GetReviewSentiment(ctx context.Context, id int64) (domain.ClassifiedReview, error) {
	key := ReviewKey(id)
	var cr domain.ClassifiedReview
	// A hit that fails to decode is treated as a miss.
	if ok, err := s.cache.Get(ctx, key, &cr); ok && err == nil {
		return cr, nil
	}
	cr, err := s.store.GetClassified(ctx, id)
	if err != nil {
		return domain.ClassifiedReview{}, err
	}
	_ = s.cache.Set(ctx, key, cr, int(s.cacheTTL.Seconds()))
	return cr, nil
}

func (s *QueryService) ProductSummary(ctx context.Context, productID int64) (domain.ProductSummary, error) {
	key := ProductKey(productID)
	var out domain.ProductSummary
	if ok, err := s.cache.Get(ctx, key, &out); ok && err == nil {
		return out, nil
	}
	rs, err := s.store.ListClassifiedByProduct(ctx, productID)
	if err != nil {
		return domain.ProductSummary{}, err
	}
	if len(rs) == 0 {
		return domain.ProductSummary{}, domain.ErrNotFound
	}
	out = domain.ProductSummary{ProductID: productID, Summary: Summarize(rs)}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// Invalidate drops cached reads touched by a freshly written batch.
func (s *QueryService) Invalidate(ctx context.Context, rs []domain.ClassifiedReview) {
	seen := map[int64]bool{}
	for _, cr := range rs {
		_ = s.cache.Del(ctx, ReviewKey(cr.ReviewID))
		if !seen[cr.ProductID] {
			seen[cr.ProductID] = true
			_ = s.cache.Del(ctx, ProductKey(cr.ProductID))
		}
	}
}

// StoreSink persists classified batches and evicts the cached reads they affect.
type StoreSink struct {
	Store   domain.ResultStore
	Queries *QueryService // optional
}

func (s StoreSink) WriteBatch(ctx context.Context, rs []domain.ClassifiedReview) error {
	if err := s.Store.UpsertClassified(ctx, rs); err != nil {
		return fmt.Errorf("upsert classified: %w", err)
	}
	if s.Queries != nil {
		s.Queries.Invalidate(ctx, rs)
	}
	return nil
}
