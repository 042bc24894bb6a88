package ports

import (
	"context"
	"time"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inMP4, outWav string) error
	RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string, burnASS string) error
	ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, cacheDir string) (types.Transcript, error)
}

type ClipSelector interface {
	Select(ctx context.Context, cands []types.Candidate, clipsN int) ([]types.Selection, error)
}
