package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

const (
	defaultBaseURL = "https://api.assemblyai.com/v2"
	pollEvery      = 5 * time.Second
)

type Adapter struct {
	key      string
	baseURL  string
	client   *http.Client
	log      zerolog.Logger
	pollWait time.Duration
}

func New(apiKey, baseURL string, log zerolog.Logger) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:      apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 2 * time.Minute},
		log:      log.With().Str("component", "assemblyai").Logger(),
		pollWait: pollEvery,
	}
}

// Transcribe uploads the audio, submits a transcription job with speaker
// labels and auto chapters, and polls until the job reaches a terminal
// status. The raw provider payload is cached as transcript.json so later runs
// can skip the network entirely.
func (a *Adapter) Transcribe(ctx context.Context, audioPath, cacheDir string) (types.Transcript, error) {
	audioURL, err := a.upload(ctx, audioPath)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("assemblyai upload: %w", err)
	}

	jobID, err := a.submit(ctx, audioURL)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("assemblyai submit: %w", err)
	}
	a.log.Info().Str("job", jobID).Msg("transcription submitted")

	raw, err := a.poll(ctx, jobID)
	if err != nil {
		return types.Transcript{}, err
	}

	if cacheDir != "" {
		p := filepath.Join(cacheDir, "transcript.json")
		if werr := os.WriteFile(p, raw, 0o644); werr != nil {
			a.log.Warn().Err(werr).Str("path", p).Msg("could not cache transcript")
		}
	}

	var tr types.Transcript
	if err := json.Unmarshal(raw, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("decode transcript: %w", err)
	}
	for i := range tr.Words {
		tr.Words[i].Text = strings.TrimSpace(tr.Words[i].Text)
	}
	for i := range tr.Utterances {
		tr.Utterances[i].Text = strings.TrimSpace(tr.Utterances[i].Text)
	}
	return tr, nil
}

func (a *Adapter) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/upload", f)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", a.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	raw, err := a.do(req)
	if err != nil {
		return "", err
	}
	url := gjson.GetBytes(raw, "upload_url").String()
	if url == "" {
		return "", fmt.Errorf("no upload_url in response")
	}
	return url, nil
}

func (a *Adapter) submit(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"audio_url":      audioURL,
		"speaker_labels": true,
		"auto_chapters":  true,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", a.key)
	req.Header.Set("Content-Type", "application/json")

	raw, err := a.do(req)
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(raw, "id").String()
	if id == "" {
		return "", fmt.Errorf("no job id in response")
	}
	return id, nil
}

func (a *Adapter) poll(ctx context.Context, jobID string) ([]byte, error) {
	ticker := time.NewTicker(a.pollWait)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/transcript/"+jobID, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", a.key)

		raw, err := a.do(req)
		if err != nil {
			return nil, fmt.Errorf("assemblyai poll: %w", err)
		}

		switch status := gjson.GetBytes(raw, "status").String(); status {
		case "completed":
			return raw, nil
		case "error":
			return nil, fmt.Errorf("assemblyai transcription failed: %s", gjson.GetBytes(raw, "error").String())
		default:
			a.log.Debug().Str("job", jobID).Str("status", status).Msg("waiting for transcription")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *Adapter) do(req *http.Request) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.ReplaceAll(string(raw), a.key, "[REDACTED]")
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 400))
	}
	return raw, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
