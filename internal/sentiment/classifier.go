package sentiment

import "review_sentiment/internal/domain"

// Band edges of the textually neutral region. Comparisons are strict, so
// exactly ±NeutralBand is neutral.
const NeutralBand = 0.05

// ClassifyLabel combines the compound score with the star rating.
// Agreement between text and stars gives Positive/Negative, disagreement a
// Mixed label. Neutral text defers to the stars alone. Stars are not validated: 0 behaves
// like 1-2, 6 like 4-5.
func ClassifyLabel(score float64, stars int) domain.Label {
	switch {
	case score > NeutralBand:
		switch {
		case stars >= 4:
			return domain.Positive
		case stars == 3:
			return domain.MixedPositive
		default:
			return domain.MixedNegative
		}
	case score < -NeutralBand:
		switch {
		case stars <= 2:
			return domain.Negative
		case stars == 3:
			return domain.MixedNegative
		default:
			return domain.MixedPositive
		}
	default:
		switch {
		case stars >= 4:
			return domain.Positive
		case stars <= 2:
			return domain.Negative
		default:
			return domain.Neutral
		}
	}
}

// ClassifyBucket places a score into one of four ranges. Lower bounds are
// inclusive, so 0.0 and 0.5 belong to the upper bucket.
func ClassifyBucket(score float64) domain.Bucket {
	switch {
	case score >= 0.5:
		return domain.BucketVeryPositive
	case score >= 0.0:
		return domain.BucketPositive
	case score >= -0.5:
		return domain.BucketNegative
	default:
		return domain.BucketVeryNegative
	}
}

// Classify attaches label and bucket to a scored review.
func Classify(sr domain.ScoredReview) domain.ClassifiedReview {
	return domain.ClassifiedReview{
		ScoredReview: sr,
		Sentiment:    ClassifyLabel(sr.Score, sr.Rating),
		Bucket:       ClassifyBucket(sr.Score),
	}
}
