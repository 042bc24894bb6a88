package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/config"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/domain/clips"
	"github.com/bicced/Viral-AI-Video-Clipper/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	clipsN, _ := cmd.Flags().GetInt("clips")
	transcript, _ := cmd.Flags().GetString("transcript")
	tuningPath, _ := cmd.Flags().GetString("tuning")
	burn, _ := cmd.Flags().GetBool("burn-subtitles")
	verbose, _ := cmd.Flags().GetBool("verbose")
	minSec, _ := cmd.Flags().GetInt("min")
	maxSec, _ := cmd.Flags().GetInt("max")
	idealSec, _ := cmd.Flags().GetInt("ideal")
	seed, _ := cmd.Flags().GetInt64("seed")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env)")
	}

	limits := clips.DefaultLimits()
	if tuningPath != "" {
		tn, err := config.Load(tuningPath)
		if err != nil {
			return err
		}
		limits = tn.Limits(limits)
		if tn.Clips > 0 && !cmd.Flags().Changed("clips") {
			clipsN = tn.Clips
		}
		if tn.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = tn.Seed
		}
	}
	// Flags win over the tuning file.
	if minSec > 0 {
		limits.Min = time.Duration(minSec) * time.Second
	}
	if maxSec > 0 {
		limits.Max = time.Duration(maxSec) * time.Second
	}
	if idealSec > 0 {
		limits.Ideal = time.Duration(idealSec) * time.Second
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		InputVideo:     absIn,
		TranscriptFile: transcript,
		OutDir:         outDir,
		CacheDir:       getenvDefault("CLIPPER_CACHE_DIR", ".cache"),

		ClipsN:        clipsN,
		Limits:        limits,
		BurnSubtitles: burn,
		Seed:          seed,

		Log: newLogger(verbose),

		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		AssemblyAIKey: os.Getenv("ASSEMBLYAI_API_KEY"),

		OpenAIKey:          apiKey,
		OpenAIModel:        getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:      getenvDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAllowedHosts: splitHosts(os.Getenv("OPENAI_ALLOWED_HOSTS")),

		PromptTemplate: os.Getenv("CLIPPER_PROMPT_TEMPLATE"),
		HistoryDB:      getenvDefault("CLIPPER_HISTORY_DB", defaultHistoryDB()),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func defaultHistoryDB() string {
	home := os.Getenv("HOME")
	if home == "" {
		return filepath.Join(".clipper", "history.db")
	}
	return filepath.Join(home, ".clipper", "history.db")
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
