// Package sentiment derives compound sentiment scores from review text and
// reconciles them with star ratings into labels and score buckets.
//
// ClassifyLabel and ClassifyBucket are pure, total functions and safe for
// concurrent use. Scorers are constructed once and are read-only afterwards.
package sentiment
