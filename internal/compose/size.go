package compose

import (
	"fmt"
	"math"
	"strconv"
)

// Scale holds resolved per-axis scale expressions for one overlay.
type Scale struct {
	W string
	H string
}

// ResolveScale turns the tagged width/height dimensions into scale
// expressions. When only one axis is given and keepAspect is on, the
// missing axis is derived from the source aspect ratio: numerically
// when the given axis and the source dimensions are all concrete
// pixels, otherwise as the engine's proportional placeholder (-1).
// The second return value is false when no scaling is needed at all.
func ResolveScale(width, height Dimension, srcW, srcH int, keepAspect bool) (Scale, bool) {
	if width.IsNative() && height.IsNative() {
		return Scale{}, false
	}

	w := resolveAxis(width, "iw")
	h := resolveAxis(height, "ih")

	if keepAspect {
		switch {
		case width.IsNative():
			w = deriveAxis(height, srcW, srcH)
		case height.IsNative():
			h = deriveAxis(width, srcH, srcW)
		}
	}
	return Scale{W: w, H: h}, true
}

// resolveAxis maps one dimension to its scale expression. Native keeps
// the axis untouched via the input-size placeholder.
func resolveAxis(d Dimension, nativeBase string) string {
	switch d.kind {
	case dimPixels:
		return strconv.Itoa(d.pixels)
	case dimPercent:
		return fmt.Sprintf("%s*%s/100", nativeBase, formatFloat(d.percent))
	default:
		return nativeBase
	}
}

// deriveAxis computes the missing axis from the given one. given is the
// dimension the caller set; derivedDim/givenDim are the source sizes of
// the derived and given axes respectively.
func deriveAxis(given Dimension, derivedDim, givenDim int) string {
	if given.kind == dimPixels && derivedDim > 0 && givenDim > 0 {
		ratio := float64(derivedDim) / float64(givenDim)
		return strconv.Itoa(int(math.Round(float64(given.pixels) * ratio)))
	}
	return "-1"
}
