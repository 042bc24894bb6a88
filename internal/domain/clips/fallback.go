package clips

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

var (
	reNarrativeOpen = regexp.MustCompile(`(?i)^(when|one day|i remember|let me tell you|so i|there was|back in|the other day|picture this|it all started)`)
	reCuriosityPre  = regexp.MustCompile(`(?i)^(what if|did you know|you won'?t believe|here'?s (the thing|why)|guess what|wait|the cra(ziest|zy))`)
	reContradiction = regexp.MustCompile(`(?i)\b(but actually|however|turns out|plot twist|surprisingly|the opposite|instead|nobody expected|contrary to)\b`)

	emotionalKeywords   = []string{"love", "hate", "amazing", "incredible", "awful", "beautiful", "terrible", "excited", "shocking", "unbelievable"}
	educationalKeywords = []string{"learn", "how to", "tip", "trick", "lesson", "important", "remember", "understand", "explain", "mistake"}
)

const (
	fallbackIdealWordsMin = 20
	fallbackIdealWordsMax = 80
	fallbackOverlapCap    = 0.4
)

// fallbackBuckets are the coarse duration bands the ranker balances across.
var fallbackBuckets = []struct {
	label string
	max   time.Duration
}{
	{"under 10s", 10 * time.Second},
	{"10-20s", 20 * time.Second},
	{"20-30s", 30 * time.Second},
	{"30s and up", 1<<63 - 1},
}

func fallbackBucket(d time.Duration) int {
	for i, b := range fallbackBuckets {
		if d < b.max {
			return i
		}
	}
	return len(fallbackBuckets) - 1
}

// FallbackRank is the deterministic substitute for AI selection: it rescores
// candidates on structural hooks, guarantees one pick per non-empty duration
// bucket, and tops up to clipsN with the best non-overlapping remainder.
func FallbackRank(cands []types.Candidate, clipsN int) []types.Selection {
	if clipsN <= 0 || len(cands) == 0 {
		return nil
	}

	type ranked struct {
		cand   types.Candidate
		score  float64
		bucket int
	}
	all := make([]ranked, 0, len(cands))
	for _, c := range cands {
		all = append(all, ranked{
			cand:   c,
			score:  fallbackScore(c),
			bucket: fallbackBucket(c.Duration()),
		})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	pickedIdx := make(map[int]bool)
	var picks []ranked

	// One guaranteed pick per non-empty bucket, best first.
	for b := range fallbackBuckets {
		if len(picks) >= clipsN {
			break
		}
		for i, r := range all {
			if pickedIdx[i] || r.bucket != b {
				continue
			}
			picks = append(picks, r)
			pickedIdx[i] = true
			break
		}
	}

	// Top-up with the highest scores that do not overlap existing picks.
	for i, r := range all {
		if len(picks) >= clipsN {
			break
		}
		if pickedIdx[i] {
			continue
		}
		conflict := false
		for _, p := range picks {
			if overlapRatio(r.cand.Start, r.cand.End, p.cand.Start, p.cand.End) > fallbackOverlapCap {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		picks = append(picks, r)
		pickedIdx[i] = true
	}

	out := make([]types.Selection, 0, len(picks))
	for _, p := range picks {
		c := p.cand
		c.Score = p.score
		out = append(out, types.Selection{
			Candidate:  c,
			Reason:     fmt.Sprintf("deterministic fallback pick (%s band)", fallbackBuckets[p.bucket].label),
			AISelected: false,
		})
	}
	return out
}

// fallbackScore rates structural hooks and blends 40/60 with any score the
// candidate already carries.
func fallbackScore(c types.Candidate) float64 {
	lower := strings.ToLower(strings.TrimSpace(c.Text))
	var s float64
	if reNarrativeOpen.MatchString(lower) {
		s += 0.3
	}
	s += keywordDensityBonus(lower, emotionalKeywords, 0.4)
	s += keywordDensityBonus(lower, educationalKeywords, 0.4)
	if reCuriosityPre.MatchString(lower) {
		s += 0.3
	}
	if reContradiction.MatchString(lower) {
		s += 0.2
	}
	if c.WordCount >= fallbackIdealWordsMin && c.WordCount <= fallbackIdealWordsMax {
		s += 0.2
	}
	if c.Score > 0 {
		s = 0.4*s + 0.6*c.Score
	}
	return s
}

// keywordDensityBonus grants 0.1 per keyword hit up to limit.
func keywordDensityBonus(lower string, keywords []string, limit float64) float64 {
	hits := 0
	for _, k := range keywords {
		hits += strings.Count(lower, k)
	}
	bonus := 0.1 * float64(hits)
	if bonus > limit {
		bonus = limit
	}
	return bonus
}
