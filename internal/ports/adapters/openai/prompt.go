package openai

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/types"
)

const defaultRole = `You are a short-form video editor for TikTok, Reels and Shorts. You pick the clips from a long transcript that are most likely to go viral.`

const defaultInstructions = `Review the candidate clips below and select the strongest ones.

Selection criteria, in priority order:
1. Complete sentences and self-contained thoughts. Never pick a clip that cuts off mid-sentence.
2. Natural endings. The last line should land like a conclusion, not an interruption.
3. Duration diversity. Prefer a mix of short punchy clips and longer storytelling clips.
4. Engagement. Hooks, questions, emotion, surprising claims and concrete numbers.`

const replyFormat = `Reply for each selected clip in exactly this format:

SELECTED CLIP #: <clip number>
VIRAL POTENTIAL: <why this clip can hook an audience>
TARGET AUDIENCE: <who this clip is for>
DURATION EFFECTIVENESS: <how well the length serves the content>`

// Template is the reviewer persona and briefing. Both fields fall back to
// built-in defaults when empty so a partial YAML file overrides only what it
// names.
type Template struct {
	Role         string `yaml:"role"`
	Instructions string `yaml:"instructions"`
}

func DefaultTemplate() Template {
	return Template{Role: defaultRole, Instructions: defaultInstructions}
}

// LoadTemplate reads a reviewer template from a YAML file. An empty path
// returns the default template.
func LoadTemplate(path string) (Template, error) {
	tpl := DefaultTemplate()
	if strings.TrimSpace(path) == "" {
		return tpl, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read prompt template: %w", err)
	}
	if err := yaml.Unmarshal(raw, &tpl); err != nil {
		return Template{}, fmt.Errorf("parse prompt template %s: %w", path, err)
	}
	if strings.TrimSpace(tpl.Role) == "" {
		tpl.Role = defaultRole
	}
	if strings.TrimSpace(tpl.Instructions) == "" {
		tpl.Instructions = defaultInstructions
	}
	return tpl, nil
}

// BuildPrompt renders the system and user messages for a review request.
// Candidates are numbered from 1; the reply parser maps them back to 0-based
// indexes.
func BuildPrompt(tpl Template, cands []types.Candidate, clipsN int) (system, user string) {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(tpl.Instructions))
	b.WriteString("\n\nCANDIDATE CLIPS:\n")

	for i, c := range cands {
		fmt.Fprintf(&b, "\nCLIP %d (%s):\n%q\n", i+1, clock(c.Duration()), c.Text)
		if c.CompleteSentence {
			b.WriteString("COMPLETE ENDING: yes\n")
		} else {
			b.WriteString("COMPLETE ENDING: no\n")
		}
		if len(c.ImpactFactors) > 0 {
			fmt.Fprintf(&b, "IMPACT: %s\n", strings.Join(c.ImpactFactors, ", "))
		}
	}

	fmt.Fprintf(&b, "\nSelect up to %d clips.\n\n", clipsN)
	b.WriteString(replyFormat)

	return strings.TrimSpace(tpl.Role), b.String()
}

func clock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
