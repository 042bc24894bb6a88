package openai

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// clipMatch is one clip number found in a reply, with the byte offset where
// it was found. Offsets delimit the metadata window for each selection.
type clipMatch struct {
	num int // 1-based clip number as printed in the prompt
	pos int
}

var (
	reSelectedClip = regexp.MustCompile(`(?i)SELECTED\s+CLIP\s*#\s*:\s*(\d+)`)
	reLabeledClip  = regexp.MustCompile(`(?i)\bCLIP\s*#\s*:\s*(\d+)`)
	reClipMention  = regexp.MustCompile(`(?i)\bCLIP\s*#\s*(\d+)`)
	reLooseClipRef = regexp.MustCompile(`(?i)\bCLIP\s*#?\s*:?\s*(\d+)`)

	reViralHeader    = regexp.MustCompile(`(?i)VIRAL\s+POTENTIAL\s*:`)
	reAudienceHeader = regexp.MustCompile(`(?i)TARGET\s+AUDIENCE\s*:`)
	reDurationHeader = regexp.MustCompile(`(?i)DURATION\s+EFFECTIVENESS\s*:`)
)

// sectionHeaders are every label a reply block can contain. Section text runs
// from its own header to the earliest next header in the window.
var sectionHeaders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)SELECTED\s+CLIP\s*#`),
	regexp.MustCompile(`(?i)\bCLIP\s*#`),
	reViralHeader,
	reAudienceHeader,
	reDurationHeader,
}

// ParseSelections recovers clip picks from a model reply. Strategies run in
// order from the requested format down to loose prose mentions; the first
// strategy that yields at least one valid selection wins. Clip numbers are
// 1-based in the reply and mapped onto cands; out-of-range and duplicate
// numbers are dropped. Returns nil when nothing can be recovered.
func ParseSelections(reply string, cands []types.Candidate) []types.Selection {
	if strings.TrimSpace(reply) == "" || len(cands) == 0 {
		return nil
	}

	strategies := []func(string) []clipMatch{
		matchSelected,
		matchLabeled,
		matchViralBlocks,
		matchLooseRefs,
	}
	for _, match := range strategies {
		if out := buildSelections(reply, match(reply), cands); len(out) > 0 {
			return out
		}
	}
	return nil
}

func matchSelected(reply string) []clipMatch {
	return collectMatches(reply, reSelectedClip)
}

func matchLabeled(reply string) []clipMatch {
	return collectMatches(reply, reLabeledClip)
}

// matchViralBlocks pairs each VIRAL POTENTIAL header with the last clip
// mention before it. Covers replies that describe the pick in prose and only
// then emit the metadata block.
func matchViralBlocks(reply string) []clipMatch {
	headers := reViralHeader.FindAllStringIndex(reply, -1)
	if len(headers) == 0 {
		return nil
	}

	out := make([]clipMatch, 0, len(headers))
	seen := make(map[int]struct{}, len(headers))
	for _, h := range headers {
		mentions := reClipMention.FindAllStringSubmatchIndex(reply[:h[0]], -1)
		if len(mentions) == 0 {
			continue
		}
		m := mentions[len(mentions)-1]
		if _, dup := seen[m[0]]; dup {
			continue
		}
		seen[m[0]] = struct{}{}
		n, err := strconv.Atoi(reply[m[2]:m[3]])
		if err != nil {
			continue
		}
		out = append(out, clipMatch{num: n, pos: m[0]})
	}
	return out
}

func matchLooseRefs(reply string) []clipMatch {
	return collectMatches(reply, reLooseClipRef)
}

func collectMatches(reply string, re *regexp.Regexp) []clipMatch {
	found := re.FindAllStringSubmatchIndex(reply, -1)
	out := make([]clipMatch, 0, len(found))
	for _, m := range found {
		n, err := strconv.Atoi(reply[m[2]:m[3]])
		if err != nil {
			continue
		}
		out = append(out, clipMatch{num: n, pos: m[0]})
	}
	return out
}

func buildSelections(reply string, matches []clipMatch, cands []types.Candidate) []types.Selection {
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	out := make([]types.Selection, 0, len(matches))
	seen := make(map[int]struct{}, len(matches))
	for i, m := range matches {
		idx := m.num - 1
		if idx < 0 || idx >= len(cands) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}

		end := len(reply)
		if i+1 < len(matches) {
			end = matches[i+1].pos
		}
		window := reply[m.pos:end]

		out = append(out, types.Selection{
			Candidate:             cands[idx],
			Reason:                extractSection(window, reViralHeader),
			TargetAudience:        extractSection(window, reAudienceHeader),
			DurationEffectiveness: extractSection(window, reDurationHeader),
			AISelected:            true,
		})
	}
	return out
}

// extractSection returns the trimmed text between a header and the next
// known header (or the end of the window).
func extractSection(window string, header *regexp.Regexp) string {
	loc := header.FindStringIndex(window)
	if loc == nil {
		return ""
	}
	rest := window[loc[1]:]

	end := len(rest)
	for _, h := range sectionHeaders {
		if l := h.FindStringIndex(rest); l != nil && l[0] < end {
			end = l[0]
		}
	}
	return strings.TrimSpace(rest[:end])
}
