// Package audit persists what was picked and why: a selections.json next to
// the rendered clips, and an optional SQLite history across runs.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

// Record is the audit trail for one pipeline run.
type Record struct {
	RunID     string       `json:"run_id"`
	CreatedAt time.Time    `json:"created_at"`
	Input     string       `json:"input"`
	Clips     []RecordClip `json:"clips"`
}

type RecordClip struct {
	StartSec              float64 `json:"start_sec"`
	EndSec                float64 `json:"end_sec"`
	Score                 float64 `json:"score"`
	Text                  string  `json:"text"`
	Reason                string  `json:"reason,omitempty"`
	TargetAudience        string  `json:"target_audience,omitempty"`
	DurationEffectiveness string  `json:"duration_effectiveness,omitempty"`
	AISelected            bool    `json:"ai_selected"`
}

// NewRecord captures the review outcome for a run.
func NewRecord(run types.Run, input string, sels []types.Selection) Record {
	rec := Record{
		RunID:     run.ID,
		CreatedAt: run.StartedAt,
		Input:     input,
		Clips:     make([]RecordClip, 0, len(sels)),
	}
	for _, s := range sels {
		rec.Clips = append(rec.Clips, RecordClip{
			StartSec:              s.Start.Seconds(),
			EndSec:                s.End.Seconds(),
			Score:                 s.Score,
			Text:                  s.Text,
			Reason:                s.Reason,
			TargetAudience:        s.TargetAudience,
			DurationEffectiveness: s.DurationEffectiveness,
			AISelected:            s.AISelected,
		})
	}
	return rec
}

// Write stores the record as pretty-printed JSON at path.
func (r Record) Write(path string) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}
