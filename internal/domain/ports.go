package domain

import "context"

// Scorer maps review text to a compound score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// ReviewSource pages through raw reviews ordered by ReviewID.
type ReviewSource interface {
	ListReviews(ctx context.Context, afterID int64, limit int) ([]Review, error)
}

type ResultStore interface {
	UpsertClassified(ctx context.Context, rs []ClassifiedReview) error
	GetClassified(ctx context.Context, reviewID int64) (ClassifiedReview, error)
	ListClassifiedByProduct(ctx context.Context, productID int64) ([]ClassifiedReview, error)
}

type ReviewRepository interface {
	ReviewSource
	ResultStore
}

// Sink receives each classified batch (CSV file, result table, ...).
type Sink interface {
	WriteBatch(ctx context.Context, rs []ClassifiedReview) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models
type Summary struct {
	Total     int            `json:"total"`
	MeanScore float64        `json:"mean_score"`
	Labels    map[Label]int  `json:"labels"`
	Buckets   map[Bucket]int `json:"buckets"`
}

type ProductSummary struct {
	ProductID int64 `json:"product_id"`
	Summary
}
