package sentiment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_sentiment/internal/domain"
	"review_sentiment/internal/sentiment"
)

func TestVaderScorer_Range(t *testing.T) {
	s := sentiment.NewVaderScorer()
	texts := []string{
		"Absolutely love this product!",
		"This is the worst purchase I have ever made. Terrible, awful, broken.",
		"It arrived on Tuesday.",
		"GREAT!!! but the box was damaged :(",
		"not bad at all",
		"😀😀😀",
	}
	for _, txt := range texts {
		got := s.Score(txt)
		assert.GreaterOrEqual(t, got, -1.0, txt)
		assert.LessOrEqual(t, got, 1.0, txt)
	}
}

func TestVaderScorer_BlankIsNeutral(t *testing.T) {
	s := sentiment.NewVaderScorer()
	for _, txt := range []string{"", "   ", "\n\t"} {
		got := s.Score(txt)
		assert.Equal(t, 0.0, got)
		assert.Equal(t, domain.Neutral, sentiment.ClassifyLabel(got, 3))
	}
}

func TestVaderScorer_Polarity(t *testing.T) {
	s := sentiment.NewVaderScorer()
	assert.Greater(t, s.Score("I love it, great quality"), sentiment.NeutralBand)
	assert.Less(t, s.Score("I hate it, terrible quality"), -sentiment.NeutralBand)
}

func TestVaderScorer_ConcurrentUse(t *testing.T) {
	s := sentiment.NewVaderScorer()
	want := s.Score("Pretty good value for the money")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, s.Score("Pretty good value for the money"))
		}()
	}
	wg.Wait()
}

func TestEndToEnd_LovedProduct(t *testing.T) {
	s := sentiment.NewVaderScorer()
	r := domain.Review{ReviewID: 1, Rating: 5, ReviewText: "Absolutely love this product!"}

	sr := domain.ScoredReview{Review: r, Score: s.Score(r.ReviewText)}
	require.Greater(t, sr.Score, 0.5)

	cr := sentiment.Classify(sr)
	assert.Equal(t, "Positive", string(cr.Sentiment))
	assert.Equal(t, "0.5 to 1.0", string(cr.Bucket))
}

func TestStaticScorer_Clamps(t *testing.T) {
	assert.Equal(t, 0.3, sentiment.StaticScorer(0.3).Score("anything"))
	assert.Equal(t, 1.0, sentiment.StaticScorer(4).Score("anything"))
	assert.Equal(t, -1.0, sentiment.StaticScorer(-4).Score("anything"))
}

// ---- fakes ----

type countingScorer struct {
	mu    sync.Mutex
	calls int
	score float64
}

func (c *countingScorer) Score(string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.score
}

type mapCache struct {
	store  map[string]float64
	getErr error
}

func (m *mapCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	v, ok := m.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*float64) = v
	return true, nil
}

func (m *mapCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if m.store == nil {
		m.store = map[string]float64{}
	}
	m.store[key] = v.(float64)
	return nil
}

func (m *mapCache) Del(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func TestCachedScorer_MissThenHit(t *testing.T) {
	inner := &countingScorer{score: 0.42}
	cache := &mapCache{}
	s := sentiment.NewCachedScorer(inner, cache, time.Hour)

	assert.Equal(t, 0.42, s.Score("fine"))
	assert.Equal(t, 0.42, s.Score("fine"))
	assert.Equal(t, 1, inner.calls)
	assert.Contains(t, cache.store, sentiment.ScoreKey("fine"))
}

func TestCachedScorer_CacheErrorFallsBack(t *testing.T) {
	inner := &countingScorer{score: -0.7}
	cache := &mapCache{getErr: assert.AnError}
	s := sentiment.NewCachedScorer(inner, cache, time.Hour)

	assert.Equal(t, -0.7, s.Score("bad"))
	assert.Equal(t, -0.7, s.Score("bad"))
	assert.Equal(t, 2, inner.calls)
}

func TestScoreKey_Stable(t *testing.T) {
	assert.Equal(t, sentiment.ScoreKey("abc"), sentiment.ScoreKey("abc"))
	assert.NotEqual(t, sentiment.ScoreKey("abc"), sentiment.ScoreKey("abd"))
}
