package clips

import (
	"regexp"
	"strings"
)

// ContentType tunes window sizes, keyword sets, and category bonuses across
// the pipeline.
type ContentType string

const (
	ContentMusic       ContentType = "music"
	ContentEducational ContentType = "educational"
	ContentInterview   ContentType = "interview"
	ContentGeneric     ContentType = "generic"
)

// Profile is the per-content-type strategy row: how many sentences a text
// window may group, which keywords count as relevant, and the category bonus
// applied during post-filter scoring.
type Profile struct {
	MaxSentenceGroup int
	Keywords         []string
	Bonus            func(lowerText string) float64
}

var profiles = map[ContentType]Profile{
	ContentMusic: {
		MaxSentenceGroup: 7,
		Keywords: []string{
			"love", "heart", "night", "dance", "feel", "dream", "baby", "fire",
		},
		Bonus: musicBonus,
	},
	ContentEducational: {
		MaxSentenceGroup: 6,
		Keywords: []string{
			"learn", "understand", "explain", "example", "important", "remember",
			"tip", "mistake", "step", "lesson", "key", "secret",
		},
		Bonus: educationalBonus,
	},
	ContentInterview: {
		MaxSentenceGroup: 6,
		Keywords: []string{
			"think", "believe", "experience", "story", "question", "opinion",
			"feel", "happened", "career", "advice",
		},
		Bonus: interviewBonus,
	},
	ContentGeneric: {
		MaxSentenceGroup: 6,
		Keywords: []string{
			"amazing", "incredible", "best", "never", "always", "secret",
			"crazy", "important", "truth",
		},
		Bonus: genericBonus,
	},
}

func ProfileFor(ct ContentType) Profile {
	if p, ok := profiles[ct]; ok {
		return p
	}
	return profiles[ContentGeneric]
}

var (
	reMusicCue = regexp.MustCompile(`(?i)(\[music\]|\(music\)|\bchorus\b|\bverse\s+\d|\binstrumental\b|\blyrics?\b)`)
	reEduCue   = regexp.MustCompile(`(?i)\b(how\s+to|tutorial|lesson|step\s+by\s+step|let'?s\s+learn|in\s+this\s+(video|course)|today\s+(i'?ll|we'?ll)\s+(show|teach|explain))\b`)
	reIntCue   = regexp.MustCompile(`(?i)\b(thanks\s+for\s+having\s+me|great\s+question|my\s+guest|welcome\s+to\s+the\s+(show|podcast)|this\s+episode|tell\s+us\s+about|joining\s+us)\b`)
)

// Classify maps transcript text to a content category. Priority order is
// music, educational, interview, then generic; the first match wins.
func Classify(text string) ContentType {
	t := strings.TrimSpace(text)
	if t == "" {
		return ContentGeneric
	}
	lower := strings.ToLower(t)
	switch {
	case looksLikeMusic(lower):
		return ContentMusic
	case reEduCue.MatchString(lower):
		return ContentEducational
	case looksLikeInterview(lower):
		return ContentInterview
	default:
		return ContentGeneric
	}
}

func looksLikeMusic(lower string) bool {
	if strings.Contains(lower, "♪") || reMusicCue.MatchString(lower) {
		return true
	}
	return hasChorusRepetition(lower)
}

// hasChorusRepetition slides n-grams of 3 to 8 words across the text and
// counts repeats. Long phrases repeating at all, or shorter ones repeating
// like a refrain, indicate lyrics rather than speech.
func hasChorusRepetition(lower string) bool {
	words := strings.Fields(lower)
	if len(words) < 8 {
		return false
	}
	for n := 8; n >= 3; n-- {
		counts := make(map[string]int)
		peak := 0
		for i := 0; i+n <= len(words); i++ {
			g := strings.Join(words[i:i+n], " ")
			counts[g]++
			if counts[g] > peak {
				peak = counts[g]
			}
		}
		if n >= 5 && peak > 1 {
			return true
		}
		if peak > 2 {
			return true
		}
	}
	return false
}

func looksLikeInterview(lower string) bool {
	if reIntCue.MatchString(lower) {
		return true
	}
	sentences := SplitSentences(lower)
	if len(sentences) < 5 {
		return false
	}
	questions := 0
	for _, s := range sentences {
		if strings.HasSuffix(s, "?") {
			questions++
		}
	}
	// Question-heavy back-and-forth reads as an interview.
	return float64(questions)/float64(len(sentences)) >= 0.25
}

var (
	reTitleCue      = regexp.MustCompile(`(?i)\b(this\s+(song|track)|called|titled)\b`)
	reDefinitionCue = regexp.MustCompile(`(?i)\b(for\s+example|which\s+means|is\s+(when|called|defined)|in\s+other\s+words|that\s+means)\b`)
)

func musicBonus(lower string) float64 {
	if hasChorusRepetition(lower) || reTitleCue.MatchString(lower) {
		return 1
	}
	return 0
}

func educationalBonus(lower string) float64 {
	if reDefinitionCue.MatchString(lower) {
		return 1
	}
	return 0
}

func interviewBonus(lower string) float64 {
	// A question with a response after it keeps both halves of the exchange.
	if i := strings.Index(lower, "?"); i >= 0 && strings.TrimSpace(lower[i+1:]) != "" {
		return 1
	}
	return 0
}

func genericBonus(lower string) float64 {
	if rePowerful.MatchString(lower) || reCuriosity.MatchString(lower) {
		return 1
	}
	return 0
}
