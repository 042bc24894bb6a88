package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

func TestNewRecord_MapsSelections(t *testing.T) {
	run := types.Run{ID: "run-1", StartedAt: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
	sels := []types.Selection{
		{
			Candidate: types.Candidate{
				Start: 5 * time.Second,
				End:   20 * time.Second,
				Text:  "the hook",
				Score: 1.25,
			},
			Reason:     "opens with a question",
			AISelected: true,
		},
		{
			Candidate: types.Candidate{Start: 60 * time.Second, End: 90 * time.Second, Text: "the story"},
			Reason:    "deterministic fallback pick (20-30s band)",
		},
	}

	rec := NewRecord(run, "talk.mp4", sels)

	if rec.RunID != "run-1" || rec.Input != "talk.mp4" {
		t.Fatalf("unexpected record header: %+v", rec)
	}
	if len(rec.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(rec.Clips))
	}
	first := rec.Clips[0]
	if first.StartSec != 5 || first.EndSec != 20 || first.Score != 1.25 {
		t.Fatalf("unexpected first clip: %+v", first)
	}
	if !first.AISelected || first.Reason != "opens with a question" {
		t.Fatalf("unexpected first clip metadata: %+v", first)
	}
	if rec.Clips[1].AISelected {
		t.Fatalf("expected fallback clip to keep AISelected false")
	}
}

func TestRecord_WriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selections.json")
	rec := Record{
		RunID:     "run-2",
		CreatedAt: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		Input:     "talk.mp4",
		Clips:     []RecordClip{{StartSec: 1, EndSec: 11, Text: "clip", AISelected: true}},
	}

	if err := rec.Write(path); err != nil {
		t.Fatalf("write record: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	var got Record
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if got.RunID != rec.RunID || len(got.Clips) != 1 || got.Clips[0].Text != "clip" {
		t.Fatalf("unexpected roundtrip: %+v", got)
	}
}
