package clips

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

func spreadPool() []types.Candidate {
	durations := []time.Duration{7 * time.Second, 12 * time.Second, 25 * time.Second}
	var out []types.Candidate
	for i := 0; i < 30; i++ {
		start := time.Duration(i) * 120 * time.Second
		out = append(out, types.Candidate{
			Start:            start,
			End:              start + durations[i/10],
			Text:             fmt.Sprintf("Topic %d keeps every text apart.", i),
			Score:            1.0 - float64(i)*0.01,
			CompleteSentence: true,
		})
	}
	return out
}

func TestPoolTarget_PerSource(t *testing.T) {
	if got := PoolTarget(SourceText); got != TextPoolTarget {
		t.Fatalf("text target = %d", got)
	}
	if got := PoolTarget(SourceUtterances); got != UtterancePoolTarget {
		t.Fatalf("utterance target = %d", got)
	}
	if got := PoolTarget(SourceWords); got != UtterancePoolTarget {
		t.Fatalf("words target = %d", got)
	}
}

func TestSelectDiverse_KeepsDurationSpread(t *testing.T) {
	got := SelectDiverse(spreadPool(), 12, nil)
	if len(got) != 12 {
		t.Fatalf("expected 12 picks, got %d", len(got))
	}
	buckets := map[int]bool{}
	seen := map[string]bool{}
	for _, c := range got {
		buckets[durationBucket(c.Duration())] = true
		if seen[c.Text] {
			t.Fatalf("duplicate pick: %q", c.Text)
		}
		seen[c.Text] = true
	}
	if len(buckets) < 3 {
		t.Fatalf("expected picks across at least 3 duration buckets, got %d", len(buckets))
	}
}

func TestSelectDiverse_SmallBucketsStillRepresented(t *testing.T) {
	// Heavily skewed pool: 91 short candidates outscore the 8 medium and
	// the single long one, which must still make the cut.
	var in []types.Candidate
	add := func(i int, d time.Duration, score float64) {
		start := time.Duration(i) * 120 * time.Second
		in = append(in, types.Candidate{
			Start:            start,
			End:              start + d,
			Text:             fmt.Sprintf("Skewed pool talk number %d.", i),
			Score:            score,
			CompleteSentence: true,
		})
	}
	for i := 0; i < 91; i++ {
		add(i, 7*time.Second, 1.0-float64(i)*0.001)
	}
	for i := 91; i < 99; i++ {
		add(i, 12*time.Second, 0.3)
	}
	add(99, 17*time.Second, 0.1)

	got := SelectDiverse(in, 15, nil)
	if len(got) != 15 {
		t.Fatalf("expected 15 picks, got %d", len(got))
	}
	buckets := map[int]bool{}
	for _, c := range got {
		buckets[durationBucket(c.Duration())] = true
	}
	if len(buckets) < 3 {
		t.Fatalf("expected all 3 input buckets represented, got %d", len(buckets))
	}
}

func TestSelectDiverse_PrefersCompleteSubset(t *testing.T) {
	var in []types.Candidate
	for i := 0; i < 3; i++ {
		start := time.Duration(i) * 100 * time.Second
		in = append(in,
			types.Candidate{Start: start, End: start + 15*time.Second, Text: fmt.Sprintf("Finished thought %d.", i), Score: 0.5, CompleteSentence: true},
			types.Candidate{Start: start + 30*time.Second, End: start + 45*time.Second, Text: fmt.Sprintf("Dangling thought %d", i), Score: 0.9},
		)
	}
	got := SelectDiverse(in, 4, nil)
	if len(got) != 3 {
		t.Fatalf("expected the 3 complete candidates, got %d", len(got))
	}
	for _, c := range got {
		if !c.CompleteSentence {
			t.Fatalf("incomplete candidate slipped through: %q", c.Text)
		}
	}
}

func TestSelectDiverse_DropsNearDuplicates(t *testing.T) {
	in := []types.Candidate{
		{Start: 0, End: 20 * time.Second, Text: "We should talk about this", Score: 0.4},
		{Start: time.Second, End: 21 * time.Second, Text: "We should talk about this today my friends.", Score: 0.9},
	}
	got := SelectDiverse(in, 10, nil)
	if len(got) != 1 {
		t.Fatalf("expected the duplicate to collapse, got %d", len(got))
	}
	if got[0].Score != 0.9 {
		t.Fatalf("the higher score should survive, got %v", got[0].Score)
	}
}

func TestSelectDiverse_SeededShuffleIsReproducible(t *testing.T) {
	a := SelectDiverse(spreadPool(), 12, rand.New(rand.NewSource(7)))
	b := SelectDiverse(spreadPool(), 12, rand.New(rand.NewSource(7)))
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Fatalf("order differs at %d: %q vs %q", i, a[i].Text, b[i].Text)
		}
	}
}

func TestSelectDiverse_NilRNGKeepsScoreOrder(t *testing.T) {
	in := []types.Candidate{
		{Start: 0, End: 10 * time.Second, Text: "Low scorer here.", Score: 0.2, CompleteSentence: true},
		{Start: 100 * time.Second, End: 110 * time.Second, Text: "Top scorer here.", Score: 0.9, CompleteSentence: true},
	}
	got := SelectDiverse(in, 5, nil)
	if len(got) != 2 || got[0].Score < got[1].Score {
		t.Fatalf("expected stable score order without an rng: %+v", got)
	}
}

func TestDurationBucket_Bounds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{5 * time.Second, 0},
		{10 * time.Second, 1},
		{15 * time.Second, 2},
		{20 * time.Second, 3},
		{30 * time.Second, 4},
		{2 * time.Minute, 4},
	}
	for _, tt := range tests {
		if got := durationBucket(tt.d); got != tt.want {
			t.Fatalf("durationBucket(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
