package compose

import "strings"

// Coords holds resolved overlay coordinate expressions. W/H are the
// engine's base frame size placeholders, w/h the overlay's.
type Coords struct {
	X string
	Y string
}

const edgeMargin = "10"

// ResolvePosition maps a symbolic placement token to coordinate
// expressions. It is total: unknown tokens fall back to bottom-right,
// reported through the second return value so callers can warn.
func ResolvePosition(pos Position, x, y string) (Coords, bool) {
	switch pos {
	case TopLeft:
		return Coords{X: edgeMargin, Y: edgeMargin}, true
	case TopCenter:
		return Coords{X: "(W-w)/2", Y: edgeMargin}, true
	case TopRight:
		return Coords{X: "W-w-10", Y: edgeMargin}, true
	case CenterLeft:
		return Coords{X: edgeMargin, Y: "(H-h)/2"}, true
	case Center:
		return Coords{X: "(W-w)/2", Y: "(H-h)/2"}, true
	case CenterRight:
		return Coords{X: "W-w-10", Y: "(H-h)/2"}, true
	case BottomLeft:
		return Coords{X: edgeMargin, Y: "H-h-10"}, true
	case BottomCenter:
		return Coords{X: "(W-w)/2", Y: "H-h-10"}, true
	case BottomRight, Position(""):
		return Coords{X: "W-w-10", Y: "H-h-10"}, true
	case Custom:
		return Coords{X: coordOrZero(x), Y: coordOrZero(y)}, true
	default:
		return Coords{X: "W-w-10", Y: "H-h-10"}, false
	}
}

func coordOrZero(expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "0"
	}
	return expr
}
