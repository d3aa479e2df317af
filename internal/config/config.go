// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads scratch card settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/scratch"
)

// Config holds everything needed to build a card.
type Config struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	BrushRadius float64       `yaml:"brush_radius"`
	Threshold   float64       `yaml:"threshold"`
	AlphaCutoff uint8         `yaml:"alpha_cutoff"`
	LogLevel    string        `yaml:"log_level"`
	Coating     CoatingConfig `yaml:"coating"`
}

// CoatingConfig is the file form of scratch.CoatingConfig. Colors are hex
// strings.
type CoatingConfig struct {
	Base         string        `yaml:"base"`
	Motifs       []MotifConfig `yaml:"motifs"`
	Caption      string        `yaml:"caption"`
	CaptionColor string        `yaml:"caption_color"`
	CaptionSize  float64       `yaml:"caption_size"`
}

// MotifConfig is the file form of scratch.Motif.
type MotifConfig struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

// envConfig lists the settings that can be overridden from the environment.
// Unset variables leave the loaded value in place.
type envConfig struct {
	Width       int     `env:"SCRATCH_WIDTH"`
	Height      int     `env:"SCRATCH_HEIGHT"`
	BrushRadius float64 `env:"SCRATCH_BRUSH_RADIUS"`
	Threshold   float64 `env:"SCRATCH_THRESHOLD"`
	AlphaCutoff uint8   `env:"SCRATCH_ALPHA_CUTOFF"`
	LogLevel    string  `env:"SCRATCH_LOG_LEVEL"`
	Base        string  `env:"SCRATCH_COATING_BASE"`
	Caption     string  `env:"SCRATCH_CAPTION"`
}

// DefaultConfig returns the built-in card: 320×440, radius 20, threshold 50
// and the default coating.
func DefaultConfig() *Config {
	def := scratch.DefaultCoatingConfig()
	motifs := make([]MotifConfig, len(def.Motifs))
	for i, m := range def.Motifs {
		motifs[i] = MotifConfig{
			Kind:  m.Kind.String(),
			X:     m.X,
			Y:     m.Y,
			Size:  m.Size,
			Color: m.Color.HexString(),
		}
	}
	return &Config{
		Width:       320,
		Height:      440,
		BrushRadius: scratch.DefaultBrushRadius,
		Threshold:   scratch.DefaultThreshold,
		LogLevel:    "warn",
		Coating: CoatingConfig{
			Base:         def.Base.HexString(),
			Motifs:       motifs,
			Caption:      def.Caption,
			CaptionColor: def.CaptionColor.HexString(),
			CaptionSize:  def.CaptionSize,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	e := envConfig{
		Width:       c.Width,
		Height:      c.Height,
		BrushRadius: c.BrushRadius,
		Threshold:   c.Threshold,
		AlphaCutoff: c.AlphaCutoff,
		LogLevel:    c.LogLevel,
		Base:        c.Coating.Base,
		Caption:     c.Coating.Caption,
	}
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	c.Width, c.Height = e.Width, e.Height
	c.BrushRadius, c.Threshold, c.AlphaCutoff = e.BrushRadius, e.Threshold, e.AlphaCutoff
	c.LogLevel = e.LogLevel
	c.Coating.Base, c.Coating.Caption = e.Base, e.Caption
	return nil
}

// Validate checks ranges, colors and motif kinds.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.BrushRadius <= 0 {
		return fmt.Errorf("config: brush_radius must be positive, got %v", c.BrushRadius)
	}
	if c.Threshold <= 0 || c.Threshold > 100 {
		return fmt.Errorf("config: threshold must be in (0, 100], got %v", c.Threshold)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.CoatingConfig(); err != nil {
		return err
	}
	return nil
}

// CoatingConfig converts the coating section to scratch.CoatingConfig.
func (c *Config) CoatingConfig() (scratch.CoatingConfig, error) {
	base, err := parseColor("coating.base", c.Coating.Base)
	if err != nil {
		return scratch.CoatingConfig{}, err
	}
	out := scratch.CoatingConfig{
		Base:        base,
		Caption:     c.Coating.Caption,
		CaptionSize: c.Coating.CaptionSize,
	}
	if c.Coating.Caption != "" {
		if out.CaptionColor, err = parseColor("coating.caption_color", c.Coating.CaptionColor); err != nil {
			return scratch.CoatingConfig{}, err
		}
	}
	for i, m := range c.Coating.Motifs {
		kind, err := scratch.ParseMotifKind(m.Kind)
		if err != nil {
			return scratch.CoatingConfig{}, fmt.Errorf("config: coating.motifs[%d]: %w", i, err)
		}
		col, err := parseColor(fmt.Sprintf("coating.motifs[%d].color", i), m.Color)
		if err != nil {
			return scratch.CoatingConfig{}, err
		}
		out.Motifs = append(out.Motifs, scratch.Motif{Kind: kind, X: m.X, Y: m.Y, Size: m.Size, Color: col})
	}
	return out, nil
}

// TrackerOptions returns the tracker options described by c. Extra options
// such as a reveal callback are appended after them.
func (c *Config) TrackerOptions(extra ...scratch.TrackerOption) []scratch.TrackerOption {
	opts := []scratch.TrackerOption{
		scratch.WithBrushRadius(c.BrushRadius),
		scratch.WithThreshold(c.Threshold),
		scratch.WithAlphaCutoff(c.AlphaCutoff),
	}
	return append(opts, extra...)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

func parseColor(field, s string) (scratch.RGBA, error) {
	c, ok := scratch.ParseHex(s)
	if !ok {
		return scratch.RGBA{}, fmt.Errorf("config: %s: invalid color %q", field, s)
	}
	return c, nil
}
