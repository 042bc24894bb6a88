package clips

import (
	"strings"
	"testing"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

func TestGenerate_TextPathEmitsCompleteSentences(t *testing.T) {
	tr := types.Transcript{
		Text: "Learning is key. This is the best strategy you will ever find. It changes everything.",
	}
	cands, src := Generate(tr, DefaultLimits(), ContentGeneric)
	if src != SourceText {
		t.Fatalf("expected text source, got %q", src)
	}
	if len(cands) == 0 {
		t.Fatalf("expected candidates")
	}
	complete := false
	for _, c := range cands {
		if c.End <= c.Start {
			t.Fatalf("inverted candidate range: %v..%v", c.Start, c.End)
		}
		if c.CompleteSentence {
			complete = true
		}
	}
	if !complete {
		t.Fatalf("expected at least one complete-sentence candidate")
	}
}

func TestGenerate_TextPathPadsEstimatedTimes(t *testing.T) {
	tr := types.Transcript{
		Text: "Learning is key. This is the best strategy you will ever find. It changes everything.",
	}
	cands, _ := Generate(tr, DefaultLimits(), ContentGeneric)
	if len(cands) != 1 {
		t.Fatalf("expected exactly the full-text window, got %d", len(cands))
	}
	// 15 words at 0.4s each is 6s, padded by 0.5s lead (clamped at start)
	// and 1s tail.
	if cands[0].Start != 0 {
		t.Fatalf("start pad should clamp at zero, got %v", cands[0].Start)
	}
	if cands[0].End != 7*time.Second {
		t.Fatalf("unexpected padded end: %v", cands[0].End)
	}
}

func TestGenerate_TextPathCapsCandidates(t *testing.T) {
	tr := types.Transcript{
		Text: strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy sleeping dog. ", 60)),
	}
	cands, src := Generate(tr, DefaultLimits(), ContentGeneric)
	if src != SourceText {
		t.Fatalf("expected text source, got %q", src)
	}
	if len(cands) != maxCandidates {
		t.Fatalf("expected the pool to cap at %d, got %d", maxCandidates, len(cands))
	}
}

func TestFromUtterances_GrowsAndTrimsAtCeiling(t *testing.T) {
	utts := []types.Utterance{
		{Start: 0, End: 20_000, Text: "We started the company in a garage."},
		{Start: 20_000, End: 45_000, Text: "Nobody believed it would work at all."},
		{Start: 45_000, End: 64_000, Text: "Then everything changed overnight. The rest is history."},
	}
	cands := fromUtterances(utts, DefaultLimits())
	if len(cands) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %+v", len(cands), cands)
	}
	trimmed := false
	for _, c := range cands {
		if d := c.Duration(); d < 5*time.Second || d > utteranceCeiling {
			t.Fatalf("candidate duration out of range: %v", d)
		}
		if !c.CompleteSentence {
			t.Fatalf("utterance candidates must end on a boundary: %q", c.Text)
		}
		if c.End > 45*time.Second && c.End < 60*time.Second {
			trimmed = true
		}
	}
	if !trimmed {
		t.Fatalf("expected one window trimmed back from the 60s ceiling")
	}
}

func TestSingleUtteranceCandidate_Rules(t *testing.T) {
	floor := DefaultLimits().Bands().VeryShort
	long := types.Utterance{
		Start: 0, End: 12_000,
		Text: "The single most important thing you can do is start today.",
	}
	c, ok := singleUtteranceCandidate(long, floor)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if c.WordCount < minSingleUttWords || !c.CompleteSentence {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	short := types.Utterance{Start: 0, End: 12_000, Text: "Too few words here."}
	if _, ok := singleUtteranceCandidate(short, floor); ok {
		t.Fatalf("short utterances should be rejected")
	}
}

func TestTrimUtteranceTail_Table(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
		wantOK   bool
	}{
		{"trailing fragment cut", "This part fits. This part does not", "This part fits.", true},
		{"decimal survives", "Version 2.5 is faster. More below", "Version 2.5 is faster.", true},
		{"no boundary", "keeps going and going", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, end, ok := trimUtteranceTail(tt.text, 0, 30*time.Second, 0)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if text != tt.wantText {
				t.Fatalf("text = %q, want %q", text, tt.wantText)
			}
			if ok && (end <= 0 || end >= 30*time.Second) {
				t.Fatalf("end should shrink proportionally, got %v", end)
			}
		})
	}
}

func TestGroupWordsBySpeaker_FoldsRuns(t *testing.T) {
	words := []types.Word{
		{Start: 0, End: 500, Text: "Hello", Speaker: "A"},
		{Start: 500, End: 900, Text: "there", Speaker: "A"},
		{Start: 900, End: 1400, Text: "Hi", Speaker: "B"},
		{Start: 1400, End: 2000, Text: "folks", Speaker: "B"},
	}
	utts := groupWordsBySpeaker(words)
	if len(utts) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utts))
	}
	if utts[0].Text != "Hello there" || utts[0].End != 900 {
		t.Fatalf("unexpected first utterance: %+v", utts[0])
	}
	if utts[1].Text != "Hi folks" || utts[1].Speaker != "B" {
		t.Fatalf("unexpected second utterance: %+v", utts[1])
	}
}

func TestGenerate_ChaptersRespectStrictBand(t *testing.T) {
	tr := types.Transcript{Chapters: []types.Chapter{
		{Start: 0, End: 30_000, Summary: "The guest explains compounding with a story."},
		{Start: 30_000, End: 35_000, Headline: "Too short"},
		{Start: 35_000, End: 200_000, Headline: "Too long"},
	}}
	cands, src := Generate(tr, DefaultLimits(), ContentGeneric)
	if src != SourceChapters {
		t.Fatalf("expected chapters source, got %q", src)
	}
	if len(cands) != 1 {
		t.Fatalf("expected only the in-band chapter, got %d", len(cands))
	}
	if cands[0].Text != "The guest explains compounding with a story." {
		t.Fatalf("summary should win over headline, got %q", cands[0].Text)
	}
}

func TestFromChapters_CapsAtFive(t *testing.T) {
	var chs []types.Chapter
	for i := 0; i < 7; i++ {
		chs = append(chs, types.Chapter{
			Start:   int64(i) * 40_000,
			End:     int64(i)*40_000 + 30_000,
			Summary: "Another chapter overview.",
		})
	}
	if got := len(fromChapters(chs, DefaultLimits())); got != maxChapterCands {
		t.Fatalf("expected %d chapter candidates, got %d", maxChapterCands, got)
	}
}

func TestFromBasic_GreedyConcatAndFlush(t *testing.T) {
	tr := types.Transcript{Utterances: []types.Utterance{
		{Start: 0, End: 20_000, Text: "First part of the talk."},
		{Start: 20_000, End: 40_000, Text: "Second part keeps going."},
		{Start: 40_000, End: 65_000, Text: "Third crosses the max."},
	}}
	cands := fromBasic(tr, DefaultLimits())
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Start != 0 || cands[0].End != 40*time.Second {
		t.Fatalf("unexpected first flush: %v..%v", cands[0].Start, cands[0].End)
	}
	if cands[1].Start != 40*time.Second || cands[1].End != 65*time.Second {
		t.Fatalf("unexpected second flush: %v..%v", cands[1].Start, cands[1].End)
	}
}

func TestGenerate_NothingUsableIsEmpty(t *testing.T) {
	tr := types.Transcript{Utterances: []types.Utterance{
		{Start: 0, End: 2_000, Text: "No ending here at all"},
	}}
	cands, src := Generate(tr, DefaultLimits(), ContentGeneric)
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
	if src != SourceBasic {
		t.Fatalf("expected the basic source after fallthrough, got %q", src)
	}
}

func TestSanitize_DropsInvertedRanges(t *testing.T) {
	tr := types.Transcript{
		Words: []types.Word{
			{Start: 0, End: 100, Text: "ok"},
			{Start: 500, End: 400, Text: "bad"},
		},
		Utterances: []types.Utterance{
			{Start: -5, End: 1000, Text: "bad"},
			{Start: 0, End: 2000, Text: "ok"},
		},
		Chapters: []types.Chapter{{Start: 100, End: 100, Headline: "bad"}},
	}
	got, dropped := Sanitize(tr)
	if dropped != 3 {
		t.Fatalf("expected 3 dropped spans, got %d", dropped)
	}
	if len(got.Words) != 1 || len(got.Utterances) != 1 || len(got.Chapters) != 0 {
		t.Fatalf("unexpected survivors: %d words, %d utterances, %d chapters",
			len(got.Words), len(got.Utterances), len(got.Chapters))
	}
}

func TestTranscriptText_PrefersRichestShape(t *testing.T) {
	tests := []struct {
		name string
		tr   types.Transcript
		want string
	}{
		{"text wins", types.Transcript{Text: " padded ", Utterances: []types.Utterance{{Text: "u"}}}, "padded"},
		{"utterances joined", types.Transcript{Utterances: []types.Utterance{{Text: "a"}, {Text: "  "}, {Text: "b"}}}, "a b"},
		{"words joined", types.Transcript{Words: []types.Word{{Text: "x"}, {Text: "y"}}}, "x y"},
		{"chapter gist", types.Transcript{Chapters: []types.Chapter{{Gist: "g"}}}, "g"},
		{"empty", types.Transcript{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranscriptText(tt.tr); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
