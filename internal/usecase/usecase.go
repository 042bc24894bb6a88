// Package usecase runs the clip pipeline end to end: transcribe, generate
// candidate windows, review, and render the selected clips.
package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/domain/clips"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/domain/subtitles"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

type Deps struct {
	Video       ports.VideoTool
	Transcriber ports.Transcriber
	Selector    ports.ClipSelector
	Log         zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Run        types.Run
	InputVideo string

	// ExtractAudio runs the input through ffmpeg before transcription.
	// Disabled when the transcript comes from a file instead of an API.
	ExtractAudio bool

	ClipsN        int
	Limits        clips.Limits
	BurnSubtitles bool

	// Seed drives the review-pool shuffle. Zero disables shuffling so the
	// pool stays in score order.
	Seed int64

	CacheDir string
	OutDir   string
}

type Result struct {
	Manifest   types.Manifest
	Selections []types.Selection
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Log.With().Str("run_id", in.Run.ID).Logger()

	audioPath := in.InputVideo
	if in.ExtractAudio {
		wav := filepath.Join(in.CacheDir, "audio.wav")
		if err := u.d.Video.ExtractAudioMono16k(ctx, in.InputVideo, wav); err != nil {
			return Result{}, fmt.Errorf("extract audio: %w", err)
		}
		audioPath = wav
	}

	tr, err := u.d.Transcriber.Transcribe(ctx, audioPath, in.CacheDir)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	tr, dropped := clips.Sanitize(tr)
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("dropped transcript entries with invalid timestamps")
	}

	ct := clips.Classify(clips.TranscriptText(tr))
	cands, source := clips.Generate(tr, in.Limits, ct)
	lvl := zerolog.InfoLevel
	if source == clips.SourceBasic {
		lvl = zerolog.WarnLevel
	}
	log.WithLevel(lvl).
		Str("content_type", string(ct)).
		Str("source", string(source)).
		Int("candidates", len(cands)).
		Msg("candidate windows generated")
	if len(cands) == 0 {
		log.Warn().Msg("no clip candidates passed the window constraints")
		return Result{Manifest: types.Manifest{RunID: in.Run.ID, CreatedAt: in.Run.StartedAt, Input: in.InputVideo}}, nil
	}

	var rng *rand.Rand
	if in.Seed != 0 {
		rng = rand.New(rand.NewSource(in.Seed))
	}

	pool := clips.SelectDiverse(cands, clips.PoolTarget(source), rng)
	pool = clips.FilterForQuality(pool, ct, in.Limits)
	pool = clips.SelectDiverse(pool, clips.ReviewPoolTarget, rng)

	sels, err := u.d.Selector.Select(ctx, pool, in.ClipsN)
	if err != nil {
		log.Warn().Err(err).Msg("clip review failed, using deterministic fallback")
		sels = clips.FallbackRank(pool, in.ClipsN)
	} else if len(sels) == 0 {
		log.Warn().Msg("clip review returned nothing, using deterministic fallback")
		sels = clips.FallbackRank(pool, in.ClipsN)
	}

	sels = clips.ResolveOverlaps(sels)
	if len(sels) == 0 {
		log.Warn().Msg("no clips survived selection")
		return Result{Manifest: types.Manifest{RunID: in.Run.ID, CreatedAt: in.Run.StartedAt, Input: in.InputVideo}}, nil
	}

	m := types.Manifest{RunID: in.Run.ID, CreatedAt: in.Run.StartedAt, Input: in.InputVideo}
	for i, s := range sels {
		id := fmt.Sprintf("%03d", i+1)
		clipPath := filepath.Join(in.OutDir, "clips", id+".mp4")

		var assPath, assRel string
		if in.BurnSubtitles {
			ass, err := subtitles.RenderTikTokASS(tr, s.Start, s.End)
			if err != nil {
				return Result{}, fmt.Errorf("subtitles for clip %s: %w", id, err)
			}
			assPath = filepath.Join(in.OutDir, "subs", id+".ass")
			if err := writeFile(assPath, []byte(ass)); err != nil {
				return Result{}, fmt.Errorf("write subtitles for clip %s: %w", id, err)
			}
			assRel = filepath.ToSlash(filepath.Join("subs", id+".ass"))
		}

		if err := u.d.Video.RenderClip(ctx, in.InputVideo, s.Start, s.End, clipPath, assPath); err != nil {
			return Result{}, fmt.Errorf("render clip %s: %w", id, err)
		}
		log.Info().
			Str("clip", id).
			Float64("start_sec", s.Start.Seconds()).
			Float64("end_sec", s.End.Seconds()).
			Bool("ai_selected", s.AISelected).
			Msg("clip rendered")

		m.Clips = append(m.Clips, types.ManifestClip{
			ID:                    id,
			StartSec:              s.Start.Seconds(),
			EndSec:                s.End.Seconds(),
			DurationSec:           s.Duration().Seconds(),
			Score:                 s.Score,
			Text:                  s.Text,
			File:                  filepath.ToSlash(filepath.Join("clips", id+".mp4")),
			Subtitles:             assRel,
			Reason:                s.Reason,
			TargetAudience:        s.TargetAudience,
			DurationEffectiveness: s.DurationEffectiveness,
			AISelected:            s.AISelected,
		})
	}

	return Result{Manifest: m, Selections: sels}, nil
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
