package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"

	"review_sentiment/internal/domain"
)

// CachedScorer memoizes another Scorer in a domain.Cache keyed by a hash of
// the text. Cache errors never fail scoring; the inner scorer is used instead.
type CachedScorer struct {
	inner   domain.Scorer
	cache   domain.Cache
	ttl     time.Duration
	timeout time.Duration
}

func NewCachedScorer(inner domain.Scorer, cache domain.Cache, ttl time.Duration) *CachedScorer {
	return &CachedScorer{inner: inner, cache: cache, ttl: ttl, timeout: 250 * time.Millisecond}
}

func ScoreKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "score:" + hex.EncodeToString(sum[:])
}

func (c *CachedScorer) Score(text string) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	key := ScoreKey(text)
	var cached float64
	ok, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("score cache get failed")
	}
	if ok && err == nil {
		return cached
	}

	score := c.inner.Score(text)
	if err := c.cache.Set(ctx, key, score, int(c.ttl.Seconds())); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("score cache set failed")
	}
	return score
}
