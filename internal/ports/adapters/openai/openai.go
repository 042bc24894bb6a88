// Package openai reviews candidate clips with an OpenAI-compatible chat
// model and parses the labeled reply back into selections.
package openai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

type Adapter struct {
	client oai.Client
	model  string
	key    string
	tpl    Template
	log    zerolog.Logger
}

const (
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 90 * time.Second
)

// New builds a review adapter. baseURL may point at any OpenAI-compatible
// endpoint; empty keeps the SDK default. Callers are expected to have run
// ValidateBaseURL on user-supplied URLs first.
func New(apiKey, model, baseURL string, tpl Template, log zerolog.Logger) *Adapter {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(normalizeBaseURL(baseURL)))
	}

	return &Adapter{
		client: oai.NewClient(opts...),
		model:  model,
		key:    apiKey,
		tpl:    tpl,
		log:    log.With().Str("component", "openai").Logger(),
	}
}

// Select asks the model to pick up to clipsN clips from cands and returns
// the parsed selections in reply order, capped at clipsN.
func (a *Adapter) Select(ctx context.Context, cands []types.Candidate, clipsN int) ([]types.Selection, error) {
	if clipsN <= 0 || len(cands) == 0 {
		return nil, nil
	}

	system, user := BuildPrompt(a.tpl, cands, clipsN)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	a.log.Debug().
		Str("model", a.model).
		Int("candidates", len(cands)).
		Int("clips", clipsN).
		Msg("requesting clip review")

	resp, err := a.client.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
		Model: a.model,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("openai timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return nil, fmt.Errorf("openai chat completion: %s", truncate(redactSecrets(err.Error(), a.key), 400))
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: reply has no choices")
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("openai: reply is empty")
	}

	sels := ParseSelections(content, cands)
	if len(sels) == 0 {
		return nil, fmt.Errorf("openai: no selections recognized in reply: %q", truncate(content, 200))
	}
	if len(sels) > clipsN {
		sels = sels[:clipsN]
	}

	a.log.Info().Int("selected", len(sels)).Msg("clip review complete")
	return sels, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

// redactSecrets strips the API key and credential-shaped fields from text
// that may end up in errors or logs.
func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
