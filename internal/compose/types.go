// Package compose compiles a declarative multi-video composition into
// the textual filter graph an ffmpeg-style execution engine consumes.
// The Builder accumulates clips and overlay options; Preview resolves
// symbolic placement, sizing and timing into labeled graph statements.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"vidmix/internal/asset"
)

// Position identifies a symbolic overlay placement.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	CenterLeft   Position = "center-left"
	Center       Position = "center"
	CenterRight  Position = "center-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
	Custom       Position = "custom"
)

type dimensionKind int

const (
	dimNative dimensionKind = iota
	dimPixels
	dimPercent
)

// Dimension is a tagged size variant for one overlay axis. The zero
// value keeps the clip's native size on that axis.
type Dimension struct {
	kind    dimensionKind
	pixels  int
	percent float64
}

// Pixels returns a literal pixel dimension.
func Pixels(n int) Dimension {
	return Dimension{kind: dimPixels, pixels: n}
}

// Percent returns a dimension relative to the clip's native size.
func Percent(p float64) Dimension {
	return Dimension{kind: dimPercent, percent: p}
}

// Native returns the keep-native-size dimension.
func Native() Dimension {
	return Dimension{}
}

// ParseDimension reads a plan-file size value: a bare integer is a
// pixel count, "NN%" is a percentage, empty keeps the native size.
func ParseDimension(value string) (Dimension, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Native(), nil
	}
	if strings.HasSuffix(value, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil || p <= 0 {
			return Dimension{}, fmt.Errorf("invalid percentage %q", value)
		}
		return Percent(p), nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return Dimension{}, fmt.Errorf("invalid pixel size %q", value)
	}
	return Pixels(n), nil
}

// IsNative reports whether the dimension keeps the clip's native size.
func (d Dimension) IsNative() bool {
	return d.kind == dimNative
}

// String renders the dimension the way plan files spell it.
func (d Dimension) String() string {
	switch d.kind {
	case dimPixels:
		return strconv.Itoa(d.pixels)
	case dimPercent:
		return formatFloat(d.percent) + "%"
	default:
		return "native"
	}
}

// UnmarshalYAML accepts either a bare integer or a "NN%" string.
func (d *Dimension) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = Native()
		return nil
	case int:
		if v <= 0 {
			return fmt.Errorf("invalid pixel size %d", v)
		}
		*d = Pixels(v)
		return nil
	case string:
		parsed, err := ParseDimension(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("invalid size value %v", raw)
	}
}

// OverlayOptions controls placement, sizing, timing and keying for a
// single overlay clip. Numeric ranges are validated lazily at build
// time: out-of-range values are clamped with a warning, never fatal.
type OverlayOptions struct {
	Position Position
	// X/Y are literal coordinate expressions used with Custom.
	X string
	Y string

	Width  Dimension
	Height Dimension
	// KeepAspect derives the missing axis when only one of
	// Width/Height is set. Defaults to true.
	KeepAspect *bool

	// StartTime delays the overlay's visible start (seconds).
	StartTime float64
	// Duration limits how long the overlay stays composited (seconds).
	Duration float64

	// Opacity in [0,1]; nil means fully opaque.
	Opacity *float64

	// ColorKey makes the given color transparent before compositing.
	ColorKey           string
	ColorKeySimilarity *float64
	ColorKeyBlend      *float64
}

// overlaySpec is the immutable stored form of one Overlay call.
type overlaySpec struct {
	video *asset.Video
	opts  OverlayOptions
}

const (
	// DefaultVideoLabel is the final video stream label unless overridden.
	DefaultVideoLabel = "final_video"
	// DefaultAudioLabel is the final audio stream label unless overridden.
	DefaultAudioLabel = "mixed_audio"

	defaultColorKeySimilarity = 0.30
	defaultColorKeyBlend      = 0.10
	defaultResolutionWidth    = 1920
	defaultResolutionHeight   = 1080
	defaultFPS                = 30
)

// Options is the output-options surface passed through to the execution
// engine. The compiler itself only reads the two label names, the
// resolution and the fps (for concat normalization).
type Options struct {
	Format             string `yaml:"format"`
	Codec              string `yaml:"codec"`
	Bitrate            string `yaml:"bitrate"`
	FPS                int    `yaml:"fps"`
	Resolution         string `yaml:"resolution"`
	VideoOutputLabel   string `yaml:"video_label"`
	AudioOutputLabel   string `yaml:"audio_label"`
	CustomAudioMapping *bool  `yaml:"custom_audio_mapping"`
}

// DefaultOptions returns the baseline output options.
func DefaultOptions() Options {
	return Options{
		Format:             "mp4",
		Codec:              "libx264",
		FPS:                defaultFPS,
		Resolution:         fmt.Sprintf("%dx%d", defaultResolutionWidth, defaultResolutionHeight),
		VideoOutputLabel:   DefaultVideoLabel,
		AudioOutputLabel:   DefaultAudioLabel,
		CustomAudioMapping: boolPtr(true),
	}
}

// Merge shallow-merges non-zero fields of src over o and returns the
// result.
func (o Options) Merge(src Options) Options {
	if strings.TrimSpace(src.Format) != "" {
		o.Format = src.Format
	}
	if strings.TrimSpace(src.Codec) != "" {
		o.Codec = src.Codec
	}
	if strings.TrimSpace(src.Bitrate) != "" {
		o.Bitrate = src.Bitrate
	}
	if src.FPS > 0 {
		o.FPS = src.FPS
	}
	if strings.TrimSpace(src.Resolution) != "" {
		o.Resolution = src.Resolution
	}
	if strings.TrimSpace(src.VideoOutputLabel) != "" {
		o.VideoOutputLabel = src.VideoOutputLabel
	}
	if strings.TrimSpace(src.AudioOutputLabel) != "" {
		o.AudioOutputLabel = src.AudioOutputLabel
	}
	if src.CustomAudioMapping != nil {
		o.CustomAudioMapping = src.CustomAudioMapping
	}
	return o
}

// customAudioMappingValue returns the effective flag applying defaults.
func (o Options) customAudioMappingValue() bool {
	if o.CustomAudioMapping == nil {
		return true
	}
	return *o.CustomAudioMapping
}

// frameSize parses the configured WxH resolution, falling back to the
// default frame size when the value is malformed.
func (o Options) frameSize() (int, int, bool) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(o.Resolution)), "x", 2)
	if len(parts) == 2 {
		w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
		h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h, true
		}
	}
	return defaultResolutionWidth, defaultResolutionHeight, false
}

// state is the full mutable composition state accumulated by the
// Builder. Preview compiles a value copy so generation never mutates it.
type state struct {
	prepend  []*asset.Video
	main     []*asset.Video
	overlays []overlaySpec
	appended []*asset.Video
	filters  []string
	opts     Options
}

// inputs returns every clip in input-index order: prepend, main,
// overlay, append. The caller must hand raw media to the execution
// engine in exactly this sequence.
func (s state) inputs() []*asset.Video {
	out := make([]*asset.Video, 0, len(s.prepend)+len(s.main)+len(s.overlays)+len(s.appended))
	out = append(out, s.prepend...)
	out = append(out, s.main...)
	for _, ov := range s.overlays {
		out = append(out, ov.video)
	}
	out = append(out, s.appended...)
	return out
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func boolPtr(v bool) *bool {
	return &v
}
