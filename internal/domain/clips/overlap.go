package clips

import (
	"math"
	"sort"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

const (
	overlapKeepRatio   = 0.5
	replaceScoreMargin = 0.2
)

// ResolveOverlaps is the final conflict pass over chosen clips: ordered by
// score (ties prefer a clip carrying a reason, then original order), a clip
// is kept unless it overlaps an already-kept clip by more than half the
// shorter one's duration. A conflicting clip still replaces the kept one when
// its score clears a 20% margin. The result is returned in timeline order.
func ResolveOverlaps(sels []types.Selection) []types.Selection {
	if len(sels) <= 1 {
		return sels
	}

	ordered := make([]types.Selection, len(sels))
	copy(ordered, sels)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Reason != "" && ordered[j].Reason == ""
	})

	var kept []types.Selection
	for _, s := range ordered {
		conflict := -1
		for k := range kept {
			if overlapRatio(s.Start, s.End, kept[k].Start, kept[k].End) > overlapKeepRatio {
				conflict = k
				break
			}
		}
		if conflict < 0 {
			kept = append(kept, s)
			continue
		}
		// Margin on the magnitude so a negative kept score still
		// requires a strictly better challenger.
		if s.Score > kept[conflict].Score+replaceScoreMargin*math.Abs(kept[conflict].Score) {
			kept[conflict] = s
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// overlapRatio is the temporal intersection of two ranges divided by the
// shorter range's duration.
func overlapRatio(aStart, aEnd, bStart, bEnd time.Duration) float64 {
	inter := minDur(aEnd, bEnd) - maxDur(aStart, bStart)
	if inter <= 0 {
		return 0
	}
	shorter := minDur(aEnd-aStart, bEnd-bStart)
	if shorter <= 0 {
		return 1
	}
	return float64(inter) / float64(shorter)
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxDur(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
