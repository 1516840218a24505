package compose

import (
	"fmt"
	"strings"
)

// overlayPixelFormat keeps an alpha channel so time-pad backfill and
// chroma-keyed regions stay transparent through the chain.
const overlayPixelFormat = "yuva420p"

// basePixelFormat is the normalized format for base/segment streams.
const basePixelFormat = "yuv420p"

// buildOverlayChain composites each overlay onto the running base in
// array order; later overlays land visually on top of earlier ones.
// firstIndex is the input index of the first overlay clip. The final
// composite writes finalLabel; with zero overlays the caller is
// expected to have labeled the base finalLabel already.
func buildOverlayChain(g *graph, base string, overlays []overlaySpec, firstIndex int, finalLabel string, warn func(format string, args ...interface{})) string {
	current := base
	for i, ov := range overlays {
		processed := g.next("ov")
		g.add([]string{videoRef(firstIndex + i)}, overlayFilterChain(ov, warn), []string{processed})

		out := finalLabel
		if i < len(overlays)-1 {
			out = g.next("base")
		}
		g.add([]string{current, processed}, compositeFilter(ov, warn), []string{out})
		current = out
	}
	return current
}

// overlayFilterChain builds the per-overlay processing chain:
// format normalize, time-pad, chroma-key, scale, opacity.
func overlayFilterChain(ov overlaySpec, warn func(string, ...interface{})) string {
	opts := ov.opts
	chain := []string{"format=pix_fmts=" + overlayPixelFormat}

	if opts.StartTime > 0 {
		// Transparent backfill, then rebase timestamps to zero.
		chain = append(chain,
			fmt.Sprintf("tpad=start_duration=%s:color=black@0.0", formatFloat(opts.StartTime)),
			"setpts=PTS-STARTPTS",
		)
	}

	if strings.TrimSpace(opts.ColorKey) != "" {
		similarity := clampOption(opts.ColorKeySimilarity, defaultColorKeySimilarity, "color key similarity", warn)
		blend := clampOption(opts.ColorKeyBlend, defaultColorKeyBlend, "color key blend", warn)
		chain = append(chain, fmt.Sprintf("colorkey=color=%s:similarity=%s:blend=%s",
			strings.TrimSpace(opts.ColorKey), formatFloat(similarity), formatFloat(blend)))
	}

	if scale, ok := ResolveScale(opts.Width, opts.Height, ov.video.Width, ov.video.Height, keepAspectValue(opts)); ok {
		chain = append(chain, fmt.Sprintf("scale=w=%s:h=%s", scale.W, scale.H))
	}

	if opacity := opacityValue(opts, warn); opacity < 1.0 {
		chain = append(chain, fmt.Sprintf("colorchannelmixer=aa=%s", formatFloat(opacity)))
	}

	return strings.Join(chain, ",")
}

// compositeFilter builds the overlay composite expression, including
// the enable window when a duration is set.
func compositeFilter(ov overlaySpec, warn func(string, ...interface{})) string {
	opts := ov.opts
	coords, known := ResolvePosition(opts.Position, opts.X, opts.Y)
	if !known {
		warn("unknown position %q for overlay %s; using bottom-right", opts.Position, ov.video.Name())
	}

	expr := fmt.Sprintf("overlay=x=%s:y=%s", coords.X, coords.Y)
	if opts.Duration > 0 {
		start := opts.StartTime
		if start < 0 {
			start = 0
		}
		expr += fmt.Sprintf(":enable='between(t,%s,%s)'", formatFloat(start), formatFloat(start+opts.Duration))
	}
	return expr
}

func keepAspectValue(opts OverlayOptions) bool {
	if opts.KeepAspect == nil {
		return true
	}
	return *opts.KeepAspect
}

// opacityValue resolves the effective opacity, clamping out-of-range
// values to [0,1] with a warning.
func opacityValue(opts OverlayOptions, warn func(string, ...interface{})) float64 {
	if opts.Opacity == nil {
		return 1.0
	}
	v := *opts.Opacity
	if v < 0 || v > 1 {
		clamped := clamp01(v)
		warn("opacity %s out of range; clamped to %s", formatFloat(v), formatFloat(clamped))
		return clamped
	}
	return v
}

// clampOption resolves an optional [0,1] parameter with a default,
// clamping out-of-range values with a warning.
func clampOption(value *float64, def float64, name string, warn func(string, ...interface{})) float64 {
	if value == nil {
		return def
	}
	v := *value
	if v < 0 || v > 1 {
		clamped := clamp01(v)
		warn("%s %s out of range; clamped to %s", name, formatFloat(v), formatFloat(clamped))
		return clamped
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
