package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text with the VADER lexicon compiled into the binary.
// The lexicon is loaded once by NewVaderScorer; Score is safe for concurrent use.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound score. Blank text is neutral (0).
func (s *VaderScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return clamp(s.analyzer.PolarityScores(text).Compound)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// StaticScorer returns the same score for every text. Useful as a stand-in
// when no lexicon should be involved.
type StaticScorer float64

func (s StaticScorer) Score(string) float64 { return clamp(float64(s)) }
