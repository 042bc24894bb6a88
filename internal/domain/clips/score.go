package clips

import (
	"math"
	"regexp"
	"strings"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

var (
	reNumbers  = regexp.MustCompile(`\b\d+(?:[\.,]\d+)?%?\b`)
	rePowerful = regexp.MustCompile(`(?i)\b(secret|amazing|incredible|shocking|unbelievable|never|always|must|best|worst|proven|guaranteed|powerful|insane|crazy)\b`)

	reEmotional   = regexp.MustCompile(`(?i)\b(love|hate|amazing|incredible|awful|beautiful|terrible|excited|crazy|insane|unbelievable|shocking|heartbreaking)\b`)
	reStory       = regexp.MustCompile(`(?i)\b(story|one day|when i|happened|suddenly|realized|remember when|back then|turned out|long story short)\b`)
	reEducational = regexp.MustCompile(`(?i)\b(how to|learn|lesson|tip|trick|step|important|remember|understand|explain|mistake)\b`)
	reCuriosity   = regexp.MustCompile(`(?i)\b(what if|did you know|you won'?t believe|here'?s why|the truth|nobody tells you|wait until|guess what|the secret)\b`)
)

// impact factor labels carried on candidates and shown to the reviewer.
const (
	factorQuestion    = "question"
	factorPowerful    = "powerful-words"
	factorNumbers     = "numbers"
	factorEmotional   = "emotional"
	factorStory       = "story"
	factorEducational = "educational"
	factorCuriosity   = "curiosity"
)

// scoreText rates a text-window candidate: duration fit against the ideal,
// impact bonuses, and a strong bonus for ending on a complete sentence.
func scoreText(c *types.Candidate, limits Limits) {
	ideal := limits.Ideal.Seconds()
	d := c.Duration().Seconds()
	// Goes negative past twice the ideal so overlong windows rank below
	// everything near the target length.
	score := 1 - math.Abs(d-ideal)/ideal

	if strings.Contains(c.Text, "?") {
		score += 0.10
		c.ImpactFactors = append(c.ImpactFactors, factorQuestion)
	}
	if rePowerful.MatchString(c.Text) {
		score += 0.15
		c.ImpactFactors = append(c.ImpactFactors, factorPowerful)
	}
	if reNumbers.MatchString(c.Text) {
		score += 0.10
		c.ImpactFactors = append(c.ImpactFactors, factorNumbers)
	}
	if c.CompleteSentence {
		score += 0.5
	}
	c.Score = score
}

const utteranceIdealSec = 15

// scoreUtterance rates an utterance-window candidate: fit against a short
// 15s ideal, sentence count, speech density, and viral indicators.
func scoreUtterance(c *types.Candidate) {
	d := c.Duration().Seconds()
	if d <= 0 {
		c.Score = 0
		return
	}
	score := 0.3 * (1 - math.Abs(d-utteranceIdealSec)/utteranceIdealSec)
	score += 0.1 * float64(c.SentenceCount)
	score += (float64(c.WordCount) / d) / 5

	viral, factors := viralScore(c.Text)
	c.ViralScore = viral
	c.ImpactFactors = append(c.ImpactFactors, factors...)
	c.Score = score + 0.5*viral
}

// viralScore sums engagement-indicator bonuses found in the text.
func viralScore(text string) (float64, []string) {
	var v float64
	var factors []string
	if reEmotional.MatchString(text) {
		v += 0.15
		factors = append(factors, factorEmotional)
	}
	if reStory.MatchString(text) {
		v += 0.15
		factors = append(factors, factorStory)
	}
	if reEducational.MatchString(text) {
		v += 0.15
		factors = append(factors, factorEducational)
	}
	if reCuriosity.MatchString(text) {
		v += 0.25
		factors = append(factors, factorCuriosity)
	}
	return v, factors
}

// FilterForQuality recombines each candidate's score with relevance,
// completion, transition, density, duration-fit, and category signals. The
// input is not mutated.
func FilterForQuality(cands []types.Candidate, ct ContentType, limits Limits) []types.Candidate {
	prof := ProfileFor(ct)
	ideal := limits.Ideal.Seconds()
	out := make([]types.Candidate, len(cands))
	for i, c := range cands {
		d := c.Duration().Seconds()
		if d <= 0 {
			out[i] = c
			continue
		}
		lower := strings.ToLower(c.Text)

		s := 0.3 * c.Score
		s += 0.15 * keywordRelevance(lower, c.WordCount, prof.Keywords)
		if c.CompleteSentence {
			s += 0.15
		}
		s += transitionScore(lower)
		s += densityScore(c.WordCount, d)
		s += 0.1 * (1 - math.Abs(d-ideal)/ideal)
		if prof.Bonus != nil {
			s += 0.1 * prof.Bonus(lower)
		}

		c.Score = s
		out[i] = c
	}
	return out
}

// keywordRelevance is the keyword-hit density against the content type's
// keyword set, scaled into [0,1].
func keywordRelevance(lower string, wordCount int, keywords []string) float64 {
	if wordCount == 0 {
		return 0
	}
	hits := 0
	for _, k := range keywords {
		hits += strings.Count(lower, k)
	}
	rel := float64(hits) / float64(wordCount) * 10
	if rel > 1 {
		rel = 1
	}
	return rel
}

var (
	reNaturalOpen     = regexp.MustCompile(`(?i)^(let me|here'?s|today|i want to|one of the|the (first|best|biggest)|imagine|listen)`)
	reConjunctionOpen = regexp.MustCompile(`(?i)^(and|but|or|so|because)\b`)
	reConclusionCue   = regexp.MustCompile(`(?i)\b(that'?s why|in the end|the bottom line|so remember|and that'?s|ultimately|in conclusion|the key is)\b`)
)

// transitionScore rewards natural openings and conclusions and penalizes a
// clip that opens on a bare conjunction.
func transitionScore(lower string) float64 {
	var s float64
	if reNaturalOpen.MatchString(lower) {
		s += 0.15
	}
	if reConclusionCue.MatchString(lower) {
		s += 0.15
	}
	if reConjunctionOpen.MatchString(lower) {
		s -= 0.2
	}
	return s
}

// densityScore rewards speech density, capped so fast talkers cannot
// dominate the blend.
func densityScore(wordCount int, durationSec float64) float64 {
	if durationSec <= 0 {
		return 0
	}
	s := 0.05 * (float64(wordCount) / durationSec)
	if s > 0.3 {
		s = 0.3
	}
	return s
}
