package domain

import "time"

type Review struct {
	ReviewID   int64
	CustomerID int64
	ProductID  int64
	ReviewDate time.Time
	Rating     int
	ReviewText string // empty when the source row had no text
}

type ScoredReview struct {
	Review
	Score float64
}

type ClassifiedReview struct {
	ScoredReview
	Sentiment Label
	Bucket    Bucket
}

// Label is the final sentiment category of a review.
type Label string

const (
	Positive      Label = "Positive"
	Negative      Label = "Negative"
	Neutral       Label = "Neutral"
	MixedPositive Label = "Mixed Positive"
	MixedNegative Label = "Mixed Negative"
)

// Labels lists every label in a stable order (reports, metrics).
var Labels = []Label{Positive, MixedPositive, Neutral, MixedNegative, Negative}

// Bucket is a coarse range of the compound score.
type Bucket string

const (
	BucketVeryPositive Bucket = "0.5 to 1.0"
	BucketPositive     Bucket = "0.0 to 0.49"
	BucketNegative     Bucket = "-0.49 to 0.0"
	BucketVeryNegative Bucket = "-1.0 to -0.5"
)

var Buckets = []Bucket{BucketVeryPositive, BucketPositive, BucketNegative, BucketVeryNegative}
