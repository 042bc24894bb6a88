package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// RenderTikTokASS builds a per-clip ASS subtitle file for the [start, end)
// window of the transcript. Word-level timestamps produce karaoke highlighting;
// transcripts with only utterance text fall back to a single static line.
func RenderTikTokASS(tr types.Transcript, start, end time.Duration) (string, error) {
	words := collectWords(tr, start, end)
	if len(words) == 0 {
		text := collectUtteranceText(tr, start, end)
		return renderASSPlain(text, end-start), nil
	}
	lines := packWords(words)
	return renderASSKaraoke(lines), nil
}

type wword struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

type line struct {
	Start time.Duration
	End   time.Duration
	Words []wword
}

func collectWords(tr types.Transcript, start, end time.Duration) []wword {
	var out []wword
	for _, w := range tr.Words {
		ws := types.MS(w.Start)
		we := types.MS(w.End)
		if we <= start || ws >= end {
			continue
		}
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if ws < start {
			ws = start
		}
		if we > end {
			we = end
		}
		// Event times are clip-local; each clip gets its own subtitle file.
		out = append(out, wword{Start: ws - start, End: we - start, Text: sanitizeASS(text)})
	}
	return out
}

func collectUtteranceText(tr types.Transcript, start, end time.Duration) string {
	var parts []string
	for _, u := range tr.Utterances {
		us := types.MS(u.Start)
		ue := types.MS(u.End)
		if ue <= start || us >= end {
			continue
		}
		if strings.TrimSpace(u.Text) != "" {
			parts = append(parts, strings.TrimSpace(u.Text))
		}
	}
	return strings.Join(parts, " ")
}

func packWords(words []wword) []line {
	var out []line
	cur := line{Start: words[0].Start}
	// Caps tuned for a 1080-wide vertical frame.
	charBudget := 42
	wordBudget := 9
	curLen := 0
	for i, w := range words {
		wl := len([]rune(w.Text))
		nextLen := curLen
		if curLen > 0 {
			nextLen++
		}
		nextLen += wl
		if len(cur.Words) >= wordBudget || nextLen > charBudget {
			cur.End = cur.Words[len(cur.Words)-1].End
			out = append(out, cur)
			cur = line{Start: w.Start}
			curLen = 0
		}
		cur.Words = append(cur.Words, w)
		if curLen > 0 {
			curLen++
		}
		curLen += wl
		if i == len(words)-1 {
			cur.End = w.End
			out = append(out, cur)
		}
	}
	return out
}

func renderASSKaraoke(lines []line) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ln := range lines {
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(ln.Start))
		b.WriteString(",")
		b.WriteString(assTime(ln.End))
		b.WriteString(",TikTok,,0,0,0,,")
		for _, w := range ln.Words {
			durCS := int((w.End - w.Start) / (10 * time.Millisecond))
			if durCS < 1 {
				durCS = 1
			}
			b.WriteString(fmt.Sprintf("{\\k%d}%s ", durCS, w.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderASSPlain(text string, dur time.Duration) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	b.WriteString("Dialogue: 0,0:00:00.00,")
	b.WriteString(assTime(dur))
	b.WriteString(",TikTok,,0,0,0,,")
	b.WriteString(sanitizeASS(text))
	b.WriteString("\n")
	return b.String()
}

// assHeader targets the 1080x1920 canvas the renderer crops to, with margins
// clearing the TikTok/Shorts UI chrome at the bottom of the frame.
func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: TikTok, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 60,60,260,1
`)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
