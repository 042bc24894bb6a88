package transcriptfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// Adapter loads a transcript JSON document from disk instead of calling a
// transcription provider. Any of the provider shapes is accepted: full text,
// word list, speaker utterances, or chapters, with either bare or _ms
// timestamp keys.
type Adapter struct {
	path string
	log  zerolog.Logger
}

func New(path string, log zerolog.Logger) *Adapter {
	return &Adapter{
		path: path,
		log:  log.With().Str("component", "transcriptfile").Logger(),
	}
}

// Transcribe ignores the audio path; the transcript is already on disk.
func (a *Adapter) Transcribe(ctx context.Context, _ string, _ string) (types.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return types.Transcript{}, err
	}

	raw, err := os.ReadFile(a.path)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return types.Transcript{}, fmt.Errorf("transcript %s is not valid JSON", a.path)
	}
	root := gjson.ParseBytes(raw)

	tr := types.Transcript{
		ID:   root.Get("id").String(),
		Text: strings.TrimSpace(root.Get("text").String()),
	}
	tr.AudioDuration = root.Get("audio_duration").Float()
	if tr.AudioDuration == 0 {
		tr.AudioDuration = root.Get("audio_duration_seconds").Float()
	}

	for _, w := range root.Get("words").Array() {
		text := strings.TrimSpace(firstString(w, "text", "word"))
		if text == "" {
			continue
		}
		tr.Words = append(tr.Words, types.Word{
			Start:   msField(w, "start", "start_ms"),
			End:     msField(w, "end", "end_ms"),
			Text:    text,
			Speaker: w.Get("speaker").String(),
		})
	}

	for _, u := range root.Get("utterances").Array() {
		text := strings.TrimSpace(u.Get("text").String())
		if text == "" {
			continue
		}
		tr.Utterances = append(tr.Utterances, types.Utterance{
			Start:   msField(u, "start", "start_ms"),
			End:     msField(u, "end", "end_ms"),
			Text:    text,
			Speaker: u.Get("speaker").String(),
		})
	}

	for _, c := range root.Get("chapters").Array() {
		tr.Chapters = append(tr.Chapters, types.Chapter{
			Start:    msField(c, "start", "start_ms"),
			End:      msField(c, "end", "end_ms"),
			Headline: strings.TrimSpace(c.Get("headline").String()),
			Summary:  strings.TrimSpace(c.Get("summary").String()),
			Gist:     strings.TrimSpace(c.Get("gist").String()),
		})
	}

	if tr.Text == "" && len(tr.Words) == 0 && len(tr.Utterances) == 0 && len(tr.Chapters) == 0 {
		a.log.Warn().Str("path", a.path).Msg("transcript has no usable shape")
	} else {
		a.log.Info().
			Int("words", len(tr.Words)).
			Int("utterances", len(tr.Utterances)).
			Int("chapters", len(tr.Chapters)).
			Bool("text", tr.Text != "").
			Msg("transcript loaded from file")
	}
	return tr, nil
}

func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if f := v.Get(k); f.Exists() {
			return f.String()
		}
	}
	return ""
}

func msField(v gjson.Result, keys ...string) int64 {
	for _, k := range keys {
		if f := v.Get(k); f.Exists() {
			return f.Int()
		}
	}
	return 0
}
