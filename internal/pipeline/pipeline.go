// Package pipeline wires the adapters together and owns the per-run
// workspace layout: cache directory, run output directory, manifest, and
// audit trail.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/audit"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/domain/clips"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports/adapters/assemblyai"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports/adapters/ffmpeg"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports/adapters/openai"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/ports/adapters/transcriptfile"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/usecase"
)

type Config struct {
	InputVideo string

	// TranscriptFile skips the transcription API and loads a stored
	// transcript JSON instead.
	TranscriptFile string

	OutDir string

	// CacheDir is the base directory for local artifacts (audio, cached
	// transcripts). If empty, defaults to ".cache".
	CacheDir string

	ClipsN        int
	Limits        clips.Limits
	BurnSubtitles bool

	// Seed drives the review-pool shuffle. Zero derives a seed from the
	// run start time.
	Seed int64

	Log zerolog.Logger

	FFmpegPath  string
	FFprobePath string

	AssemblyAIKey string

	OpenAIKey          string
	OpenAIModel        string
	OpenAIBaseURL      string
	OpenAIAllowedHosts []string

	// PromptTemplate points at an optional YAML file overriding the
	// reviewer persona and briefing.
	PromptTemplate string

	// HistoryDB enables the SQLite run history when non-empty.
	HistoryDB string
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputVideo); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.ClipsN <= 0 {
		return fmt.Errorf("clips must be > 0")
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if c.TranscriptFile != "" {
		if _, err := os.Stat(c.TranscriptFile); err != nil {
			return fmt.Errorf("stat transcript file: %w", err)
		}
	} else if c.AssemblyAIKey == "" {
		return errors.New("ASSEMBLYAI_API_KEY is required unless a transcript file is provided")
	}
	if c.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	return openai.ValidateBaseURL(c.OpenAIBaseURL, c.OpenAIAllowedHosts)
}

func Run(ctx context.Context, cfg Config) error {
	run := types.Run{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
	log := cfg.Log.With().Str("run_id", run.ID).Logger()

	tpl, err := openai.LoadTemplate(cfg.PromptTemplate)
	if err != nil {
		return err
	}

	video := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)

	var transcriber ports.Transcriber
	extractAudio := false
	if cfg.TranscriptFile != "" {
		transcriber = transcriptfile.New(cfg.TranscriptFile, cfg.Log)
	} else {
		transcriber = assemblyai.New(cfg.AssemblyAIKey, "", cfg.Log)
		extractAudio = true
	}

	selector := openai.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, tpl, cfg.Log)

	uc := usecase.New(usecase.Deps{
		Video:       video,
		Transcriber: transcriber,
		Selector:    selector,
		Log:         cfg.Log,
	})

	jobID := hash(cfg.InputVideo)
	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", jobID)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.InputVideo, run)
	if err := os.MkdirAll(filepath.Join(runOutDir, "clips"), 0o755); err != nil {
		return err
	}
	if cfg.BurnSubtitles {
		if err := os.MkdirAll(filepath.Join(runOutDir, "subs"), 0o755); err != nil {
			return err
		}
	}
	log.Info().Str("cache", cacheDir).Str("out", runOutDir).Msg("workspace ready")

	seed := cfg.Seed
	if seed == 0 {
		seed = run.StartedAt.UnixNano()
	}

	res, err := uc.Run(ctx, usecase.Input{
		Run:           run,
		InputVideo:    cfg.InputVideo,
		ExtractAudio:  extractAudio,
		ClipsN:        cfg.ClipsN,
		Limits:        cfg.Limits,
		BurnSubtitles: cfg.BurnSubtitles,
		Seed:          seed,
		CacheDir:      cacheDir,
		OutDir:        runOutDir,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}

	rec := audit.NewRecord(run, cfg.InputVideo, res.Selections)
	if err := rec.Write(filepath.Join(runOutDir, "selections.json")); err != nil {
		return err
	}

	if cfg.HistoryDB != "" {
		store, err := audit.OpenStore(cfg.HistoryDB)
		if err != nil {
			log.Warn().Err(err).Msg("history database unavailable")
		} else {
			defer store.Close()
			if err := store.SaveRun(ctx, rec); err != nil {
				log.Warn().Err(err).Msg("failed to record run history")
			}
		}
	}

	log.Info().
		Int("clips", len(res.Manifest.Clips)).
		Str("manifest", manifestPath).
		Msg("run complete")
	return nil
}

// buildRunOutDir names the run directory after the input file, the run start
// time, and a short run ID suffix so repeated runs never collide.
func buildRunOutDir(outRoot, inputVideo string, run types.Run) string {
	name := strings.TrimSuffix(filepath.Base(inputVideo), filepath.Ext(inputVideo))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := run.StartedAt.UTC().Format("20060102-150405Z")
	suffix := run.ID
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*assemblyai.Adapter)(nil)
var _ ports.Transcriber = (*transcriptfile.Adapter)(nil)
var _ ports.ClipSelector = (*openai.Adapter)(nil)
