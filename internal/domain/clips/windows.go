package clips

import (
	"strings"
	"time"
	"unicode"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// Source names the transcript shape a candidate pool was generated from.
type Source string

const (
	SourceText       Source = "text"
	SourceUtterances Source = "utterances"
	SourceWords      Source = "words"
	SourceChapters   Source = "chapters"
	SourceBasic      Source = "basic"
)

const (
	maxCandidates     = 150
	utteranceCeiling  = 60 * time.Second
	minSingleUttWords = 10
	maxChapterCands   = 5
	maxBasicCands     = 5
	defaultSecPerWord = 0.4
)

// Generate builds overlapping candidate windows from the richest transcript
// shape available, preferring text > utterances > words > chapters, with a
// basic greedy pass when nothing else yields results.
func Generate(tr types.Transcript, limits Limits, ct ContentType) ([]types.Candidate, Source) {
	if strings.TrimSpace(tr.Text) != "" {
		if cands := fromText(tr, limits, ProfileFor(ct)); len(cands) > 0 {
			return cands, SourceText
		}
	}
	if len(tr.Utterances) > 0 {
		if cands := fromUtterances(tr.Utterances, limits); len(cands) > 0 {
			return cands, SourceUtterances
		}
	}
	if len(tr.Words) > 0 {
		if cands := fromUtterances(groupWordsBySpeaker(tr.Words), limits); len(cands) > 0 {
			return cands, SourceWords
		}
	}
	if len(tr.Chapters) > 0 {
		if cands := fromChapters(tr.Chapters, limits); len(cands) > 0 {
			return cands, SourceChapters
		}
	}
	return fromBasic(tr, limits), SourceBasic
}

// fromText slides sentence-group windows over the full transcript text.
// Timing is estimated from cumulative word counts, so windows carry
// proportional padding to absorb the estimate error.
func fromText(tr types.Transcript, limits Limits, prof Profile) []types.Candidate {
	sents := SplitSentences(tr.Text)
	if len(sents) == 0 {
		return nil
	}

	// Prefix word counts give each sentence group its estimated offset.
	offsets := make([]int, len(sents)+1)
	for i, s := range sents {
		offsets[i+1] = offsets[i] + countWords(s)
	}
	total := offsets[len(sents)]
	if total == 0 {
		return nil
	}

	secPerWord := defaultSecPerWord
	if tr.AudioDuration > 0 {
		secPerWord = tr.AudioDuration / float64(total)
	}

	relaxed := limits.Bands().Relaxed
	var out []types.Candidate
	for size := prof.MaxSentenceGroup; size >= 1; size-- {
		for i := 0; i+size <= len(sents); i++ {
			startSec := float64(offsets[i]) * secPerWord
			endSec := float64(offsets[i+size]) * secPerWord
			groupDur := endSec - startSec
			if groupDur <= 0 {
				continue
			}

			startPad := clampSec(groupDur*0.05, 0.5, 1.5)
			endPad := clampSec(groupDur*0.10, 1.0, 2.5)
			start := secDur(startSec - startPad)
			if start < 0 {
				start = 0
			}
			end := secDur(endSec + endPad)
			if !relaxed.Contains(end - start) {
				continue
			}

			text := strings.Join(sents[i:i+size], " ")
			c := types.Candidate{
				Start:            start,
				End:              end,
				Text:             text,
				WordCount:        offsets[i+size] - offsets[i],
				SentenceCount:    size,
				CompleteSentence: HasCompleteEnding(text),
			}
			scoreText(&c, limits)
			out = append(out, c)
			if len(out) >= maxCandidates {
				return out
			}
		}
	}
	return out
}

// fromUtterances grows a window utterance-by-utterance from every start
// index, emitting a candidate at each sentence-boundary stop, up to a hard
// ceiling. The utterance that crosses the ceiling is trimmed back to its last
// sentence boundary that still fits, or dropped when it has none.
func fromUtterances(utts []types.Utterance, limits Limits) []types.Candidate {
	floor := limits.Bands().VeryShort
	var out []types.Candidate

	for i := 0; i < len(utts) && len(out) < maxCandidates; i++ {
		start := types.MS(utts[i].Start)
		var parts []string
		for j := i; j < len(utts); j++ {
			u := utts[j]
			if strings.TrimSpace(u.Text) == "" {
				continue
			}
			if types.MS(u.End)-start > utteranceCeiling {
				text, end, ok := trimUtteranceTail(u.Text, types.MS(u.Start), types.MS(u.End), start)
				if ok && end-start >= floor {
					joined := strings.Join(append(parts, text), " ")
					out = append(out, newUtteranceCandidate(start, end, joined))
				}
				break
			}
			parts = append(parts, strings.TrimSpace(u.Text))
			if j == i {
				continue // singles are emitted by the independent pass below
			}
			end := types.MS(u.End)
			if end-start >= floor && HasCompleteEnding(u.Text) {
				out = append(out, newUtteranceCandidate(start, end, strings.Join(parts, " ")))
				if len(out) >= maxCandidates {
					return out
				}
			}
		}
	}

	for _, u := range utts {
		if len(out) >= maxCandidates {
			break
		}
		if c, ok := singleUtteranceCandidate(u, floor); ok {
			out = append(out, c)
		}
	}
	return out
}

func newUtteranceCandidate(start, end time.Duration, text string) types.Candidate {
	c := types.Candidate{
		Start:            start,
		End:              end,
		Text:             text,
		WordCount:        countWords(text),
		SentenceCount:    len(SplitSentences(text)),
		CompleteSentence: HasCompleteEnding(text),
	}
	scoreUtterance(&c)
	return c
}

func singleUtteranceCandidate(u types.Utterance, floor time.Duration) (types.Candidate, bool) {
	start, end := types.MS(u.Start), types.MS(u.End)
	text := strings.TrimSpace(u.Text)
	if text == "" || end <= start {
		return types.Candidate{}, false
	}
	if !HasCompleteEnding(text) || end-start > utteranceCeiling {
		var ok bool
		text, end, ok = trimUtteranceTail(text, start, end, start)
		if !ok {
			return types.Candidate{}, false
		}
	}
	if end-start < floor || countWords(text) < minSingleUttWords {
		return types.Candidate{}, false
	}
	return newUtteranceCandidate(start, end, text), true
}

// trimUtteranceTail returns the longest prefix of an utterance's text that
// ends on a sentence boundary and keeps the window at or under the ceiling.
// The end timestamp shrinks by the character-offset ratio of the cut.
func trimUtteranceTail(text string, uttStart, uttEnd, windowStart time.Duration) (string, time.Duration, bool) {
	t := strings.TrimSpace(text)
	if t == "" || uttEnd <= uttStart {
		return "", 0, false
	}
	runes := []rune(t)
	for i := len(runes) - 1; i >= 0; i-- {
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) && !isTerminal(runes[i+1]) {
			continue // mid-token punctuation such as decimals
		}
		kept := strings.TrimSpace(string(runes[:i+1]))
		if kept == "" {
			return "", 0, false
		}
		ratio := float64(i+1) / float64(len(runes))
		end := uttStart + time.Duration(float64(uttEnd-uttStart)*ratio)
		if end-windowStart > utteranceCeiling {
			continue
		}
		if end <= windowStart {
			return "", 0, false
		}
		return kept, end, true
	}
	return "", 0, false
}

// groupWordsBySpeaker folds consecutive same-speaker words into utterances.
func groupWordsBySpeaker(words []types.Word) []types.Utterance {
	var out []types.Utterance
	for _, w := range words {
		t := strings.TrimSpace(w.Text)
		if t == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Speaker == w.Speaker {
			out[n-1].Text += " " + t
			out[n-1].End = w.End
			continue
		}
		out = append(out, types.Utterance{Start: w.Start, End: w.End, Text: t, Speaker: w.Speaker})
	}
	return out
}

func fromChapters(chs []types.Chapter, limits Limits) []types.Candidate {
	strict := limits.Bands().Strict
	var out []types.Candidate
	for _, ch := range chs {
		if len(out) >= maxChapterCands {
			break
		}
		start, end := types.MS(ch.Start), types.MS(ch.End)
		if end <= start || !strict.Contains(end-start) {
			continue
		}
		text := chapterText(ch)
		if text == "" {
			continue
		}
		c := types.Candidate{
			Start:            start,
			End:              end,
			Text:             text,
			WordCount:        countWords(text),
			SentenceCount:    len(SplitSentences(text)),
			CompleteSentence: HasCompleteEnding(text),
		}
		scoreText(&c, limits)
		out = append(out, c)
	}
	return out
}

func chapterText(ch types.Chapter) string {
	for _, s := range []string{ch.Summary, ch.Gist, ch.Headline} {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return ""
}

// fromBasic greedily concatenates utterances until the configured maximum,
// trimming each flush back to its last full sentence.
func fromBasic(tr types.Transcript, limits Limits) []types.Candidate {
	utts := tr.Utterances
	if len(utts) == 0 && len(tr.Words) > 0 {
		utts = groupWordsBySpeaker(tr.Words)
	}
	if len(utts) == 0 {
		return nil
	}

	floor := limits.Bands().VeryShort
	var out []types.Candidate
	var parts []string
	var start, lastEnd time.Duration

	flush := func() {
		if len(parts) == 0 || len(out) >= maxBasicCands {
			parts = nil
			return
		}
		text := strings.Join(parts, " ")
		end := lastEnd
		parts = nil
		if !HasCompleteEnding(text) {
			var ok bool
			text, end, ok = TrimToBoundary(text, start, end)
			if !ok {
				return
			}
		}
		if end-start < floor {
			return
		}
		out = append(out, newUtteranceCandidate(start, end, text))
	}

	for _, u := range utts {
		if len(out) >= maxBasicCands {
			break
		}
		t := strings.TrimSpace(u.Text)
		if t == "" {
			continue
		}
		if len(parts) == 0 {
			start = types.MS(u.Start)
		} else if types.MS(u.End)-start > limits.Max {
			flush()
			start = types.MS(u.Start)
		}
		parts = append(parts, t)
		lastEnd = types.MS(u.End)
	}
	flush()
	return out
}

// Sanitize drops words, utterances, and chapters with inverted or empty time
// ranges and reports how many spans were removed. The input is not mutated.
func Sanitize(tr types.Transcript) (types.Transcript, int) {
	dropped := 0
	if len(tr.Words) > 0 {
		kept := make([]types.Word, 0, len(tr.Words))
		for _, w := range tr.Words {
			if w.Start < 0 || w.End <= w.Start {
				dropped++
				continue
			}
			kept = append(kept, w)
		}
		tr.Words = kept
	}
	if len(tr.Utterances) > 0 {
		kept := make([]types.Utterance, 0, len(tr.Utterances))
		for _, u := range tr.Utterances {
			if u.Start < 0 || u.End <= u.Start {
				dropped++
				continue
			}
			kept = append(kept, u)
		}
		tr.Utterances = kept
	}
	if len(tr.Chapters) > 0 {
		kept := make([]types.Chapter, 0, len(tr.Chapters))
		for _, ch := range tr.Chapters {
			if ch.Start < 0 || ch.End <= ch.Start {
				dropped++
				continue
			}
			kept = append(kept, ch)
		}
		tr.Chapters = kept
	}
	return tr, dropped
}

// TranscriptText returns the best text representation available, used for
// content classification.
func TranscriptText(tr types.Transcript) string {
	if t := strings.TrimSpace(tr.Text); t != "" {
		return t
	}
	if len(tr.Utterances) > 0 {
		parts := make([]string, 0, len(tr.Utterances))
		for _, u := range tr.Utterances {
			if t := strings.TrimSpace(u.Text); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	if len(tr.Words) > 0 {
		parts := make([]string, 0, len(tr.Words))
		for _, w := range tr.Words {
			if t := strings.TrimSpace(w.Text); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	if len(tr.Chapters) > 0 {
		parts := make([]string, 0, len(tr.Chapters))
		for _, ch := range tr.Chapters {
			if t := chapterText(ch); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func secDur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }

func clampSec(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
