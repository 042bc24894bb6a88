package clips

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// Pool targets for each stage of the pipeline.
const (
	TextPoolTarget      = 40
	UtterancePoolTarget = 60
	ReviewPoolTarget    = 15

	// topFraction of the target is taken purely by score before the
	// duration-bucket draw balances the rest.
	topFraction = 0.30
)

// PoolTarget returns the review-pool size for a generation source.
func PoolTarget(src Source) int {
	if src == SourceText {
		return TextPoolTarget
	}
	return UtterancePoolTarget
}

var diversityBuckets = []Band{
	{Min: 5 * time.Second, Max: 10 * time.Second},
	{Min: 10 * time.Second, Max: 15 * time.Second},
	{Min: 15 * time.Second, Max: 20 * time.Second},
	{Min: 20 * time.Second, Max: 30 * time.Second},
	{Min: 30 * time.Second, Max: 60 * time.Second},
}

func durationBucket(d time.Duration) int {
	for i, b := range diversityBuckets {
		if d >= b.Min && d < b.Max {
			return i
		}
	}
	if d >= diversityBuckets[len(diversityBuckets)-1].Max {
		return len(diversityBuckets) - 1
	}
	return 0
}

// SelectDiverse shrinks a scored pool to at most target candidates that stay
// spread across duration buckets: candidates ending on a complete sentence
// are preferred, a top fraction passes on score alone, the rest is drawn
// proportionally from each duration bucket, near-duplicates are dropped, and
// the final list is shuffled to remove position bias before review.
func SelectDiverse(cands []types.Candidate, target int, rng *rand.Rand) []types.Candidate {
	if target <= 0 || len(cands) == 0 {
		return nil
	}

	pool := cands
	complete := make([]types.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.CompleteSentence {
			complete = append(complete, c)
		}
	}
	// Completeness wins unless it would starve the pool.
	if len(complete)*2 >= target {
		pool = complete
	}

	sorted := make([]types.Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	var picked []types.Candidate
	if len(sorted) <= target {
		picked = sorted
	} else {
		topN := int(float64(target) * topFraction)
		if topN < 1 {
			topN = 1
		}
		picked = append(picked, sorted[:topN]...)
		remainder := sorted[topN:]
		slots := target - topN

		buckets := make([][]types.Candidate, len(diversityBuckets))
		for _, c := range remainder {
			b := durationBucket(c.Duration())
			buckets[b] = append(buckets[b], c)
		}

		taken := make([]int, len(buckets))
		used := 0
		for b, members := range buckets {
			if len(members) == 0 || used >= slots {
				continue
			}
			// Every non-empty bucket gets at least one pick so the
			// review pool keeps spanning the duration ranges present
			// in the input.
			share := slots * len(members) / len(remainder)
			if share < 1 {
				share = 1
			}
			if share > len(members) {
				share = len(members)
			}
			if share > slots-used {
				share = slots - used
			}
			picked = append(picked, members[:share]...)
			taken[b] = share
			used += share
		}
		// Leftover slots go to the best-scoring candidates across buckets.
		if used < slots {
			var leftovers []types.Candidate
			for b, members := range buckets {
				leftovers = append(leftovers, members[taken[b]:]...)
			}
			sort.SliceStable(leftovers, func(i, j int) bool { return leftovers[i].Score > leftovers[j].Score })
			need := slots - used
			if need > len(leftovers) {
				need = len(leftovers)
			}
			picked = append(picked, leftovers[:need]...)
		}
	}

	picked = dropNearDuplicates(picked)
	shuffle(picked, rng)
	return picked
}

// dropNearDuplicates removes candidates whose time range sits within 10s of
// another's and whose text is a prefix of the other's, keeping the higher
// score.
func dropNearDuplicates(cands []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, 0, len(cands))
	for _, c := range cands {
		dup := -1
		for k, kept := range out {
			if nearDuplicate(c, kept) {
				dup = k
				break
			}
		}
		if dup < 0 {
			out = append(out, c)
			continue
		}
		if c.Score > out[dup].Score {
			out[dup] = c
		}
	}
	return out
}

const nearDupWindow = 10 * time.Second

func nearDuplicate(a, b types.Candidate) bool {
	if absDur(a.Start-b.Start) > nearDupWindow || absDur(a.End-b.End) > nearDupWindow {
		return false
	}
	at := strings.TrimSpace(a.Text)
	bt := strings.TrimSpace(b.Text)
	if at == "" || bt == "" {
		return false
	}
	if len(at) <= len(bt) {
		return strings.HasPrefix(bt, at)
	}
	return strings.HasPrefix(at, bt)
}

// shuffle is a Fisher-Yates permutation for bias mitigation only; a fixed
// seed makes the order reproducible in tests.
func shuffle(cands []types.Candidate, rng *rand.Rand) {
	if rng == nil {
		return
	}
	for i := len(cands) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cands[i], cands[j] = cands[j], cands[i]
	}
}

func absDur(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
