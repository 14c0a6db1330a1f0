package app

import "review_sentiment/internal/domain"

type tally struct {
	n       int
	sum     float64
	labels  map[domain.Label]int
	buckets map[domain.Bucket]int
}

func newTally() *tally {
	t := &tally{labels: map[domain.Label]int{}, buckets: map[domain.Bucket]int{}}
	// zero entries keep reports stable even when a category is empty
	for _, l := range domain.Labels {
		t.labels[l] = 0
	}
	for _, b := range domain.Buckets {
		t.buckets[b] = 0
	}
	return t
}

func (t *tally) add(cr domain.ClassifiedReview) {
	t.n++
	t.sum += cr.Score
	t.labels[cr.Sentiment]++
	t.buckets[cr.Bucket]++
}

func (t *tally) summary() domain.Summary {
	s := domain.Summary{Total: t.n, Labels: t.labels, Buckets: t.buckets}
	if t.n > 0 {
		s.MeanScore = t.sum / float64(t.n)
	}
	return s
}

// Summarize reports label and bucket distribution for rs.
func Summarize(rs []domain.ClassifiedReview) domain.Summary {
	t := newTally()
	for _, cr := range rs {
		t.add(cr)
	}
	return t.summary()
}
