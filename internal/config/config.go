package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"vidmix/internal/compose"
)

// Config captures the project-level settings: the output options passed
// through to the execution engine plus workspace conveniences.
type Config struct {
	Version int             `yaml:"version"`
	Output  compose.Options `yaml:"output"`
	// PlanFile overrides the default composition plan location,
	// relative to the project root unless absolute.
	PlanFile string `yaml:"plan_file,omitempty"`
	// FFmpegPath overrides PATH lookup for the execution engine binary.
	FFmpegPath string `yaml:"ffmpeg_path,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Output:  compose.DefaultOptions(),
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults ensures nested fields fall back to sensible defaults
// when the YAML omits them. Merging the loaded values over the defaults
// keeps omitted output fields at their baseline.
func (c *Config) ApplyDefaults() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.Output = defaults.Output.Merge(c.Output)
}

// Validate rejects settings the execution engine cannot receive.
func (c Config) Validate() error {
	if c.Output.FPS < 0 {
		return fmt.Errorf("output fps must not be negative, got %d", c.Output.FPS)
	}
	if strings.ContainsAny(c.Output.VideoOutputLabel, "[];") {
		return fmt.Errorf("video label %q contains reserved graph characters", c.Output.VideoOutputLabel)
	}
	if strings.ContainsAny(c.Output.AudioOutputLabel, "[];") {
		return fmt.Errorf("audio label %q contains reserved graph characters", c.Output.AudioOutputLabel)
	}
	return nil
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
