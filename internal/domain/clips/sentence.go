package clips

import (
	"strings"
	"time"
	"unicode"
)

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

// SplitSentences splits text into sentences on terminal punctuation. Runs of
// terminators ("?!", "...") stay attached to their sentence, and punctuation
// followed by a non-space rune (decimals, version numbers) does not split.
// A trailing fragment without a terminator is returned as-is.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && !unicode.IsSpace(runes[j+1]) {
			i = j
			continue
		}
		if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
			out = append(out, s)
		}
		i = j
		start = j + 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasCompleteEnding reports whether the text terminates at a sentence
// boundary. Trailing quotes and brackets are ignored when locating the final
// punctuation mark.
func HasCompleteEnding(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	trimTail := `"'` + "`" + ")]}"
	for len(s) > 0 && strings.ContainsRune(trimTail, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == '.' || last == '!' || last == '?'
}

// TrimToBoundary cuts text back to its last complete sentence and shrinks the
// end timestamp in proportion to the characters kept. It reports false when
// the text contains no sentence boundary at all.
func TrimToBoundary(text string, start, end time.Duration) (string, time.Duration, bool) {
	t := strings.TrimSpace(text)
	if t == "" || end <= start {
		return "", 0, false
	}
	runes := []rune(t)
	cut := -1
	for i := len(runes) - 1; i >= 0; i-- {
		if isTerminal(runes[i]) {
			cut = i
			break
		}
	}
	if cut < 0 {
		return "", 0, false
	}
	kept := strings.TrimSpace(string(runes[:cut+1]))
	if kept == "" {
		return "", 0, false
	}
	ratio := float64(cut+1) / float64(len(runes))
	newEnd := start + time.Duration(float64(end-start)*ratio)
	if newEnd <= start {
		return "", 0, false
	}
	return kept, newEnd, true
}

func countWords(s string) int { return len(strings.Fields(s)) }
