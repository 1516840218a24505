package compose

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"vidmix/internal/asset"
)

// ErrNoInputs is the one fatal configuration error: building a
// composition with no clips at all.
var ErrNoInputs = errors.New("composition has no input clips")

// Result is the compiled output contract: the graph text, the two
// final labels to map, the ordered raw inputs matching the graph's
// input indices, and any non-fatal resolution warnings.
type Result struct {
	Graph      string
	VideoLabel string
	AudioLabel string
	Inputs     []*asset.Video
	Warnings   []string
}

// Builder is the stateful fluent composition façade. It only
// accumulates state; all graph generation happens in Preview/Compile
// against a snapshot, so repeated calls with no intervening mutation
// yield identical text.
//
// A Builder is a plain mutable state machine: concurrent mutation
// needs external synchronization.
type Builder struct {
	st           state
	logger       *log.Logger
	lastWarnings []string
}

// NewBuilder returns an empty composition with default output options.
func NewBuilder() *Builder {
	return &Builder{st: state{opts: DefaultOptions()}}
}

// SetLogger routes resolution warnings to the given logger.
func (b *Builder) SetLogger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// Compose sets the main clip list.
func (b *Builder) Compose(videos ...*asset.Video) *Builder {
	b.st.main = append([]*asset.Video(nil), videos...)
	return b
}

// Overlay adds one timed/positioned overlay clip. Option fields are
// validated lazily at build time; invalid ranges clamp with a warning.
func (b *Builder) Overlay(video *asset.Video, opts OverlayOptions) *Builder {
	b.st.overlays = append(b.st.overlays, overlaySpec{video: video, opts: opts})
	return b
}

// Prepend adds leading clips. Multiple calls accumulate.
func (b *Builder) Prepend(videos ...*asset.Video) *Builder {
	b.st.prepend = append(b.st.prepend, videos...)
	return b
}

// Append adds trailing clips. Multiple calls accumulate.
func (b *Builder) Append(videos ...*asset.Video) *Builder {
	b.st.appended = append(b.st.appended, videos...)
	return b
}

// Filter adds a raw graph expression. When any are present at build
// time all other generation is bypassed and the joined raw text is the
// compiled graph; producing the configured output labels is then the
// caller's responsibility.
func (b *Builder) Filter(expr string) *Builder {
	b.st.filters = append(b.st.filters, expr)
	return b
}

// Options shallow-merges the given partial output options.
func (b *Builder) Options(opts Options) *Builder {
	b.st.opts = b.st.opts.Merge(opts)
	return b
}

// Inputs returns every clip in input-index order: prepend, main,
// overlay, append.
func (b *Builder) Inputs() []*asset.Video {
	return b.st.inputs()
}

// OutputOptions returns the effective merged output options.
func (b *Builder) OutputOptions() Options {
	return b.st.opts
}

// Preview compiles the current state into graph text without mutating
// it. Warnings go to the configured logger.
func (b *Builder) Preview() (string, error) {
	res, err := b.Compile()
	if err != nil {
		return "", err
	}
	return res.Graph, nil
}

// Compile compiles the current state into the full output contract.
func (b *Builder) Compile() (Result, error) {
	res, err := compile(b.st)
	if err != nil {
		return Result{}, err
	}
	b.lastWarnings = res.Warnings
	if b.logger != nil {
		for _, w := range res.Warnings {
			b.logger.Printf("compose: %s", w)
		}
	}
	return res, nil
}

// Warnings returns the resolution warnings from the most recent
// Preview or Compile, nil before the first compile.
func (b *Builder) Warnings() []string {
	return b.lastWarnings
}

// Reset clears all clips, overlays, custom filters and output options,
// returning the builder to its empty state.
func (b *Builder) Reset() *Builder {
	b.st = state{opts: DefaultOptions()}
	b.lastWarnings = nil
	return b
}

// compile is the pure state-in/graph-out transformation behind Preview.
func compile(st state) (Result, error) {
	res := Result{
		VideoLabel: st.opts.VideoOutputLabel,
		AudioLabel: st.opts.AudioOutputLabel,
		Inputs:     st.inputs(),
	}

	// Power-user escape hatch: raw expressions verbatim.
	if len(st.filters) > 0 {
		res.Graph = strings.Join(st.filters, ";")
		return res, nil
	}

	// Overlays alone cannot anchor a composition; the clip-count
	// constraint counts main and bookend clips only.
	if len(st.main)+len(st.prepend)+len(st.appended) == 0 {
		return Result{}, ErrNoInputs
	}

	warn := func(format string, args ...interface{}) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
	}
	if _, _, ok := st.opts.frameSize(); !ok && strings.TrimSpace(st.opts.Resolution) != "" {
		warn("malformed resolution %q; using %dx%d", st.opts.Resolution, defaultResolutionWidth, defaultResolutionHeight)
	}

	g := &graph{}
	if len(st.prepend) > 0 || len(st.appended) > 0 {
		buildConcat(g, st, warn)
	} else {
		res.AudioLabel = buildOverlayPath(g, st, warn)
	}

	res.Graph = g.String()
	return res, nil
}

// buildOverlayPath compiles the simple (no prepend/append) shape and
// returns the effective audio label: the configured one when a mix
// statement was emitted, the raw input reference for a single
// audio-bearing input, or empty when custom audio mapping is off.
func buildOverlayPath(g *graph, st state, warn func(string, ...interface{})) string {
	opts := st.opts
	m, o := len(st.main), len(st.overlays)

	if m == 0 {
		// Unreachable via the concat dispatch: no prepend/append and no
		// main means no inputs at all unless overlays exist.
		warn("composition has overlays but no main clip; overlays ignored")
		return ""
	}

	// Audio first so the graph ends on the final overlay composite.
	audioLabel := ""
	if opts.customAudioMappingValue() {
		audioInputs := make([]string, 0, m+o)
		for i := 0; i < m; i++ {
			audioInputs = append(audioInputs, audioRef(i))
		}
		for i := 0; i < o; i++ {
			audioInputs = append(audioInputs, audioRef(m+i))
		}
		audioLabel = buildAudioMix(g, audioInputs, opts.AudioOutputLabel)
	}

	normalize := "format=pix_fmts=" + basePixelFormat
	if o == 0 {
		// No dangling label: the pass-through normalize itself carries
		// the final video label.
		g.add([]string{videoRef(0)}, normalize, []string{opts.VideoOutputLabel})
	} else {
		base := g.next("base")
		g.add([]string{videoRef(0)}, normalize, []string{base})
		buildOverlayChain(g, base, st.overlays, m, opts.VideoOutputLabel, warn)
	}

	return audioLabel
}
