package clips

import (
	"testing"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

func TestScoreText_BonusesAndFactors(t *testing.T) {
	c := types.Candidate{
		Start:            0,
		End:              30 * time.Second,
		Text:             "What is the secret? It takes 30 days.",
		CompleteSentence: true,
	}
	scoreText(&c, DefaultLimits())
	if c.Score < 1.5 {
		t.Fatalf("ideal duration with bonuses should score high, got %v", c.Score)
	}
	want := map[string]bool{factorQuestion: true, factorPowerful: true, factorNumbers: true}
	if len(c.ImpactFactors) != len(want) {
		t.Fatalf("unexpected factors: %v", c.ImpactFactors)
	}
	for _, f := range c.ImpactFactors {
		if !want[f] {
			t.Fatalf("unexpected factor %q", f)
		}
	}
}

func TestScoreText_FarFromIdealGoesNegative(t *testing.T) {
	c := types.Candidate{Start: 0, End: 90 * time.Second, Text: "just plain words without anything"}
	scoreText(&c, DefaultLimits())
	if c.Score != -1 {
		t.Fatalf("90s against a 30s ideal should score -1, got %v", c.Score)
	}
}

func TestScoreUtterance_BlendsViral(t *testing.T) {
	c := types.Candidate{
		Start:         0,
		End:           15 * time.Second,
		Text:          "Did you know this works?",
		WordCount:     45,
		SentenceCount: 3,
	}
	scoreUtterance(&c)
	if c.ViralScore != 0.25 {
		t.Fatalf("curiosity alone should give 0.25, got %v", c.ViralScore)
	}
	if c.Score <= 1.3 || c.Score >= 1.35 {
		t.Fatalf("unexpected blended score: %v", c.Score)
	}
}

func TestViralScore_Table(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		factors int
	}{
		{"emotional", "This is amazing stuff", 0.15, 1},
		{"story", "Let me tell you what happened next", 0.15, 1},
		{"educational", "The lesson is worth repeating", 0.15, 1},
		{"curiosity", "Nobody tells you this part", 0.25, 1},
		{"nothing", "plain filler text", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, factors := viralScore(tt.text)
			if v != tt.want {
				t.Fatalf("viralScore = %v, want %v", v, tt.want)
			}
			if len(factors) != tt.factors {
				t.Fatalf("factors = %v, want %d", factors, tt.factors)
			}
		})
	}
}

func TestViralScore_AllCategories(t *testing.T) {
	v, factors := viralScore("One day I got an amazing lesson, did you know")
	if len(factors) != 4 {
		t.Fatalf("expected all four factors, got %v", factors)
	}
	if v <= 0.69 || v >= 0.71 {
		t.Fatalf("expected combined score near 0.7, got %v", v)
	}
}

func TestFilterForQuality_RanksStructureAndKeepsInput(t *testing.T) {
	in := []types.Candidate{
		{
			Start: 0, End: 30 * time.Second,
			Text:             "Here's the key lesson. That's why it matters so much.",
			WordCount:        11,
			CompleteSentence: true,
			Score:            1.0,
		},
		{
			Start: 60 * time.Second, End: 90 * time.Second,
			Text:      "And it kind of continues without a point",
			WordCount: 8,
			Score:     1.0,
		},
	}
	out := FilterForQuality(in, ContentGeneric, DefaultLimits())
	if out[0].Score <= out[1].Score {
		t.Fatalf("natural open and conclusion should beat a bare conjunction: %v vs %v", out[0].Score, out[1].Score)
	}
	if in[0].Score != 1.0 || in[1].Score != 1.0 {
		t.Fatalf("input must not be mutated: %v, %v", in[0].Score, in[1].Score)
	}
}

func TestKeywordRelevance_Caps(t *testing.T) {
	if got := keywordRelevance("the secret secret", 3, []string{"secret"}); got != 1 {
		t.Fatalf("dense hits should cap at 1, got %v", got)
	}
	if got := keywordRelevance("anything", 0, []string{"secret"}); got != 0 {
		t.Fatalf("zero words should give 0, got %v", got)
	}
}

func TestTransitionScore_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"natural open", "here's the thing about it", 0.15},
		{"conclusion", "that's why it matters", 0.15},
		{"bare conjunction", "but we continue anyway", -0.2},
		{"neutral", "plain middle of a talk", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionScore(tt.text); got != tt.want {
				t.Fatalf("transitionScore(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDensityScore_Caps(t *testing.T) {
	if got := densityScore(100, 10); got != 0.3 {
		t.Fatalf("fast speech should cap at 0.3, got %v", got)
	}
	if got := densityScore(10, 10); got != 0.05 {
		t.Fatalf("one word per second should give 0.05, got %v", got)
	}
	if got := densityScore(5, 0); got != 0 {
		t.Fatalf("zero duration should give 0, got %v", got)
	}
}
