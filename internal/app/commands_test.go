package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
)

// ---- fakes ----

// textScorer returns a fixed score per text.
type textScorer map[string]float64

func (s textScorer) Score(text string) float64 { return s[text] }

type fakeSource struct {
	rows  []domain.Review
	calls []int64
	err   error
}

func (f *fakeSource) ListReviews(ctx context.Context, afterID int64, limit int) ([]domain.Review, error) {
	f.calls = append(f.calls, afterID)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Review
	for _, r := range f.rows {
		if r.ReviewID > afterID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingSink struct {
	mu      sync.Mutex
	batches [][]domain.ClassifiedReview
	err     error
}

func (s *recordingSink) WriteBatch(ctx context.Context, rs []domain.ClassifiedReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, rs)
	return nil
}

func reviews(n int) []domain.Review {
	out := make([]domain.Review, n)
	for i := range out {
		out[i] = domain.Review{ReviewID: int64(i + 1), ProductID: 1, Rating: i%5 + 1, ReviewText: fmt.Sprintf("t%d", i%3)}
	}
	return out
}

var scores = textScorer{"t0": 0.8, "t1": 0.0, "t2": -0.3}

// ---- tests ----

func TestClassify_ScoresThenLabels(t *testing.T) {
	svc := app.NewClassificationService(textScorer{"meh": -0.2}, 1)
	cr := svc.Classify(domain.Review{ReviewID: 3, Rating: 3, ReviewText: "meh"})

	assert.Equal(t, -0.2, cr.Score)
	assert.Equal(t, domain.MixedNegative, cr.Sentiment)
	assert.Equal(t, domain.BucketNegative, cr.Bucket)
	assert.Equal(t, int64(3), cr.ReviewID)
}

func TestClassifyAll_OrderAndEquivalence(t *testing.T) {
	in := reviews(257)
	par := app.NewClassificationService(scores, 8)
	seq := app.NewClassificationService(scores, 1)

	got, err := par.ClassifyAll(context.Background(), in)
	require.NoError(t, err)
	want, err := seq.ClassifyAll(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, got, len(in))
	assert.Equal(t, want, got)
	for i, cr := range got {
		assert.Equal(t, in[i].ReviewID, cr.ReviewID)
		assert.Equal(t, par.Classify(in[i]), cr)
	}
}

func TestClassifyAll_Empty(t *testing.T) {
	out, err := app.NewClassificationService(scores, 4).ClassifyAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClassifyAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := app.NewClassificationService(scores, 2).ClassifyAll(ctx, reviews(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_PagesAndWritesEverySink(t *testing.T) {
	src := &fakeSource{rows: reviews(12)}
	a, b := &recordingSink{}, &recordingSink{}
	svc := app.NewClassificationService(scores, 3)

	stats, err := svc.Run(context.Background(), src, 5, a, b)
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 5, 10}, src.calls)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 12, stats.Summary.Total)
	assert.Len(t, stats.Head, 5)
	for _, s := range []*recordingSink{a, b} {
		require.Len(t, s.batches, 3)
		assert.Len(t, s.batches[0], 5)
		assert.Len(t, s.batches[2], 2)
	}

	total := 0
	for _, n := range stats.Summary.Labels {
		total += n
	}
	assert.Equal(t, 12, total)
}

func TestRun_ExactMultipleStopsOnEmptyPage(t *testing.T) {
	src := &fakeSource{rows: reviews(10)}
	stats, err := app.NewClassificationService(scores, 2).Run(context.Background(), src, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 5, 10}, src.calls)
	assert.Equal(t, 2, stats.Batches)
}

func TestRun_SourceError(t *testing.T) {
	boom := errors.New("db down")
	_, err := app.NewClassificationService(scores, 2).Run(context.Background(), &fakeSource{err: boom}, 5)
	assert.ErrorIs(t, err, boom)
}

func TestRun_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	src := &fakeSource{rows: reviews(3)}
	_, err := app.NewClassificationService(scores, 2).Run(context.Background(), src, 5, &recordingSink{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestSummarize(t *testing.T) {
	svc := app.NewClassificationService(scores, 1)
	rs, err := svc.ClassifyAll(context.Background(), []domain.Review{
		{ReviewID: 1, Rating: 5, ReviewText: "t0"},
		{ReviewID: 2, Rating: 3, ReviewText: "t1"},
		{ReviewID: 3, Rating: 1, ReviewText: "t2"},
	})
	require.NoError(t, err)

	s := app.Summarize(rs)
	assert.Equal(t, 3, s.Total)
	assert.InDelta(t, (0.8+0.0-0.3)/3, s.MeanScore, 1e-9)
	assert.Equal(t, 1, s.Labels[domain.Positive])
	assert.Equal(t, 1, s.Labels[domain.Neutral])
	assert.Equal(t, 1, s.Labels[domain.Negative])
	assert.Equal(t, 0, s.Labels[domain.MixedPositive])
	assert.Equal(t, 1, s.Buckets[domain.BucketVeryPositive])
	assert.Equal(t, 1, s.Buckets[domain.BucketPositive])
	assert.Equal(t, 1, s.Buckets[domain.BucketNegative])
	assert.Len(t, s.Labels, len(domain.Labels))
}

func TestSummarize_Empty(t *testing.T) {
	s := app.Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.MeanScore)
}
