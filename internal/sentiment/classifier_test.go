package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"review_sentiment/internal/domain"
	"review_sentiment/internal/sentiment"
)

func TestClassifyLabel_Table(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		stars int
		want  domain.Label
	}{
		{"positive text, high stars", 0.8, 5, domain.Positive},
		{"positive text, 4 stars", 0.2, 4, domain.Positive},
		{"positive text, 3 stars", 0.2, 3, domain.MixedPositive},
		{"positive text, low stars", 0.2, 1, domain.MixedNegative},
		{"positive text, 2 stars", 0.9, 2, domain.MixedNegative},
		{"negative text, high stars", -0.2, 5, domain.MixedPositive},
		{"negative text, 3 stars", -0.2, 3, domain.MixedNegative},
		{"negative text, low stars", -0.2, 1, domain.Negative},
		{"neutral text, high stars", 0.0, 4, domain.Positive},
		{"neutral text, 3 stars", 0.0, 3, domain.Neutral},
		{"neutral text, low stars", 0.0, 2, domain.Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sentiment.ClassifyLabel(tt.score, tt.stars))
		})
	}
}

func TestClassifyLabel_BandEdges(t *testing.T) {
	// ±0.05 is still the neutral band
	assert.Equal(t, domain.Positive, sentiment.ClassifyLabel(0.05, 5))
	assert.Equal(t, domain.Neutral, sentiment.ClassifyLabel(0.05, 3))
	assert.Equal(t, domain.Neutral, sentiment.ClassifyLabel(-0.05, 3))
	assert.Equal(t, domain.Negative, sentiment.ClassifyLabel(-0.05, 1))

	assert.Equal(t, domain.Positive, sentiment.ClassifyLabel(0.0501, 5))
	assert.Equal(t, domain.MixedPositive, sentiment.ClassifyLabel(0.0501, 3))
	assert.Equal(t, domain.MixedNegative, sentiment.ClassifyLabel(-0.0501, 3))
}

func TestClassifyLabel_StarsOutsideRange(t *testing.T) {
	assert.Equal(t, domain.Negative, sentiment.ClassifyLabel(0.0, 0))
	assert.Equal(t, domain.MixedNegative, sentiment.ClassifyLabel(0.6, -3))
	assert.Equal(t, domain.Positive, sentiment.ClassifyLabel(0.0, 6))
	assert.Equal(t, domain.MixedPositive, sentiment.ClassifyLabel(-0.6, 10))
}

func TestClassifyLabel_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, domain.MixedNegative, sentiment.ClassifyLabel(-0.2, 3))
		assert.Equal(t, domain.BucketNegative, sentiment.ClassifyBucket(-0.2))
	}
}

func TestClassifyLabel_AlwaysKnownLabel(t *testing.T) {
	known := map[domain.Label]bool{}
	for _, l := range domain.Labels {
		known[l] = true
	}
	for score := -1.0; score <= 1.0; score += 0.01 {
		for stars := -1; stars <= 7; stars++ {
			l := sentiment.ClassifyLabel(score, stars)
			if !known[l] {
				t.Fatalf("unexpected label %q for (%v, %d)", l, score, stars)
			}
		}
	}
}

func TestClassifyBucket(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Bucket
	}{
		{1.0, domain.BucketVeryPositive},
		{0.5, domain.BucketVeryPositive},
		{0.49999, domain.BucketPositive},
		{0.0, domain.BucketPositive},
		{-0.0001, domain.BucketNegative},
		{-0.5, domain.BucketNegative},
		{-0.5001, domain.BucketVeryNegative},
		{-1.0, domain.BucketVeryNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sentiment.ClassifyBucket(tt.score), "score %v", tt.score)
	}
}

func TestBucketStrings(t *testing.T) {
	assert.Equal(t, "0.5 to 1.0", string(domain.BucketVeryPositive))
	assert.Equal(t, "0.0 to 0.49", string(domain.BucketPositive))
	assert.Equal(t, "-0.49 to 0.0", string(domain.BucketNegative))
	assert.Equal(t, "-1.0 to -0.5", string(domain.BucketVeryNegative))
	assert.Equal(t, "Mixed Positive", string(domain.MixedPositive))
	assert.Equal(t, "Mixed Negative", string(domain.MixedNegative))
}

func TestClassify_LabelAndBucketIndependent(t *testing.T) {
	// score 0.3 with 1 star: label uses stars, bucket does not
	cr := sentiment.Classify(domain.ScoredReview{Review: domain.Review{ReviewID: 7, Rating: 1}, Score: 0.3})
	assert.Equal(t, domain.MixedNegative, cr.Sentiment)
	assert.Equal(t, domain.BucketPositive, cr.Bucket)
	assert.Equal(t, int64(7), cr.ReviewID)
}
