package types

import "time"

// Transcript mirrors the transcription provider payload. Any subset of the
// shape fields may be present; generators pick the richest one available.
type Transcript struct {
	ID            string      `json:"id,omitempty"`
	Text          string      `json:"text,omitempty"`
	Words         []Word      `json:"words,omitempty"`
	Utterances    []Utterance `json:"utterances,omitempty"`
	Chapters      []Chapter   `json:"chapters,omitempty"`
	AudioDuration float64     `json:"audio_duration,omitempty"` // seconds
}

type Word struct {
	Start   int64  `json:"start"` // milliseconds
	End     int64  `json:"end"`   // milliseconds
	Text    string `json:"text"`
	Speaker string `json:"speaker,omitempty"`
}

type Utterance struct {
	Start   int64  `json:"start"` // milliseconds
	End     int64  `json:"end"`   // milliseconds
	Text    string `json:"text"`
	Speaker string `json:"speaker,omitempty"`
}

type Chapter struct {
	Start    int64  `json:"start"` // milliseconds
	End      int64  `json:"end"`   // milliseconds
	Headline string `json:"headline,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Gist     string `json:"gist,omitempty"`
}

// MS converts a provider millisecond timestamp to a Duration.
func MS(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// Candidate is one possible clip window over the source timeline.
type Candidate struct {
	Start time.Duration
	End   time.Duration
	Text  string

	WordCount     int
	SentenceCount int

	Score         float64
	ViralScore    float64
	ImpactFactors []string

	// CompleteSentence is asserted only when Text terminates at a sentence
	// boundary, never mid-clause.
	CompleteSentence bool
}

func (c Candidate) Duration() time.Duration { return c.End - c.Start }

// Selection is a candidate chosen for rendering, with review metadata from
// either the LLM pass or the deterministic fallback.
type Selection struct {
	Candidate

	Reason                string
	TargetAudience        string
	DurationEffectiveness string
	AISelected            bool
}

// Run identifies a single pipeline invocation. It is created once at startup
// and passed explicitly into everything that needs the run identity.
type Run struct {
	ID        string
	StartedAt time.Time
}

type Manifest struct {
	RunID     string         `json:"run_id"`
	CreatedAt time.Time      `json:"created_at"`
	Input     string         `json:"input"`
	Clips     []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	ID                    string  `json:"id"`
	StartSec              float64 `json:"start_sec"`
	EndSec                float64 `json:"end_sec"`
	DurationSec           float64 `json:"duration_sec"`
	Score                 float64 `json:"score"`
	Text                  string  `json:"text"`
	File                  string  `json:"file"`
	Subtitles             string  `json:"subtitles,omitempty"`
	Reason                string  `json:"reason,omitempty"`
	TargetAudience        string  `json:"target_audience,omitempty"`
	DurationEffectiveness string  `json:"duration_effectiveness,omitempty"`
	AISelected            bool    `json:"ai_selected"`
}
