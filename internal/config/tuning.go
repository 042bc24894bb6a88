// Package config loads the optional tuning file that overrides the
// built-in clip duration targets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/domain/clips"
)

// Tuning is the user-editable knob file. Every field is optional; zero
// values keep the built-in defaults.
type Tuning struct {
	Durations struct {
		MinSeconds   int `yaml:"min_seconds"`
		MaxSeconds   int `yaml:"max_seconds"`
		IdealSeconds int `yaml:"ideal_seconds"`
	} `yaml:"durations"`
	Clips int   `yaml:"clips"`
	Seed  int64 `yaml:"seed"`
}

// Load reads a tuning YAML from disk.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	return t, nil
}

// Limits merges the tuned durations over base. Unset fields keep the
// base value.
func (t Tuning) Limits(base clips.Limits) clips.Limits {
	if t.Durations.MinSeconds > 0 {
		base.Min = time.Duration(t.Durations.MinSeconds) * time.Second
	}
	if t.Durations.MaxSeconds > 0 {
		base.Max = time.Duration(t.Durations.MaxSeconds) * time.Second
	}
	if t.Durations.IdealSeconds > 0 {
		base.Ideal = time.Duration(t.Durations.IdealSeconds) * time.Second
	}
	return base
}
