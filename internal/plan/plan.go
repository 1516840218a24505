// Package plan loads declarative YAML composition plans and turns them
// into a configured compose.Builder.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vidmix/internal/asset"
	"vidmix/internal/compose"
)

// OverlayEntry is one overlay clip in a plan file.
type OverlayEntry struct {
	Path               string            `yaml:"path"`
	Position           string            `yaml:"position,omitempty"`
	X                  string            `yaml:"x,omitempty"`
	Y                  string            `yaml:"y,omitempty"`
	Width              compose.Dimension `yaml:"width,omitempty"`
	Height             compose.Dimension `yaml:"height,omitempty"`
	KeepAspect         *bool             `yaml:"keep_aspect,omitempty"`
	StartTime          float64           `yaml:"start_time,omitempty"`
	Duration           float64           `yaml:"duration,omitempty"`
	Opacity            *float64          `yaml:"opacity,omitempty"`
	ColorKey           string            `yaml:"color_key,omitempty"`
	ColorKeySimilarity *float64          `yaml:"color_key_similarity,omitempty"`
	ColorKeyBlend      *float64          `yaml:"color_key_blend,omitempty"`
}

// Plan is a parsed composition plan file.
type Plan struct {
	Main     []string        `yaml:"main"`
	Prepend  []string        `yaml:"prepend,omitempty"`
	Append   []string        `yaml:"append,omitempty"`
	Overlays []OverlayEntry  `yaml:"overlays,omitempty"`
	Filters  []string        `yaml:"filters,omitempty"`
	Output   compose.Options `yaml:"output,omitempty"`

	// dir anchors relative clip paths to the plan file's directory.
	dir string
}

// Load reads and parses a plan file.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Plan{}, errors.New("plan file is empty")
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parse plan YAML: %w", err)
	}
	p.dir = filepath.Dir(path)

	if len(p.Main)+len(p.Prepend)+len(p.Append) == 0 && len(p.Filters) == 0 {
		return Plan{}, errors.New("plan lists no main, prepend or append clips")
	}
	return p, nil
}

// Builder resolves every clip path and assembles the fluent builder.
// baseOptions (usually from project config) is merged first so the
// plan's own output section wins.
func (p Plan) Builder(baseOptions compose.Options) (*compose.Builder, error) {
	b := compose.NewBuilder().
		Options(baseOptions).
		Options(p.Output)

	prepend, err := p.loadClips(p.Prepend)
	if err != nil {
		return nil, err
	}
	b.Prepend(prepend...)

	main, err := p.loadClips(p.Main)
	if err != nil {
		return nil, err
	}
	b.Compose(main...)

	for _, entry := range p.Overlays {
		video, err := p.loadClip(entry.Path)
		if err != nil {
			return nil, err
		}
		b.Overlay(video, compose.OverlayOptions{
			Position:           compose.Position(strings.ToLower(strings.TrimSpace(entry.Position))),
			X:                  entry.X,
			Y:                  entry.Y,
			Width:              entry.Width,
			Height:             entry.Height,
			KeepAspect:         entry.KeepAspect,
			StartTime:          entry.StartTime,
			Duration:           entry.Duration,
			Opacity:            entry.Opacity,
			ColorKey:           entry.ColorKey,
			ColorKeySimilarity: entry.ColorKeySimilarity,
			ColorKeyBlend:      entry.ColorKeyBlend,
		})
	}

	appended, err := p.loadClips(p.Append)
	if err != nil {
		return nil, err
	}
	b.Append(appended...)

	for _, raw := range p.Filters {
		b.Filter(raw)
	}
	return b, nil
}

func (p Plan) loadClips(specs []string) ([]*asset.Video, error) {
	clips := make([]*asset.Video, 0, len(specs))
	for _, spec := range specs {
		video, err := p.loadClip(spec)
		if err != nil {
			return nil, err
		}
		clips = append(clips, video)
	}
	return clips, nil
}

func (p Plan) loadClip(path string) (*asset.Video, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("plan entry has an empty path")
	}
	if !filepath.IsAbs(path) && p.dir != "" {
		path = filepath.Join(p.dir, path)
	}
	return asset.FromFile(path)
}
