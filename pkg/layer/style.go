package layer

import (
	"github.com/beetlebugorg/shapelayer/pkg/geo"
)

// Style describes how a layer should be drawn. The layer model only
// stores and copies it; interpretation belongs to the renderer.
type Style struct {
	// StrokeColor is the outline color as a #RRGGBB hex string.
	StrokeColor string

	// FillColor is the interior color as a #RRGGBB hex string, empty for
	// no fill.
	FillColor string

	// StrokeWidth is the outline width in display units.
	StrokeWidth float64

	// PointRadius is the marker radius for point features, in display
	// units.
	PointRadius float64

	// Filled reports whether interiors are painted with FillColor.
	Filled bool
}

// DefaultStyle returns the initial style for a layer of the given kind.
func DefaultStyle(kind geo.Kind) Style {
	switch kind {
	case geo.KindPoint:
		return Style{StrokeColor: "#1f6feb", FillColor: "#1f6feb", StrokeWidth: 1, PointRadius: 4, Filled: true}
	case geo.KindLine:
		return Style{StrokeColor: "#2da44e", StrokeWidth: 2}
	case geo.KindPolygon:
		return Style{StrokeColor: "#9a6700", FillColor: "#d4a72c", StrokeWidth: 1, Filled: true}
	case geo.KindCircle:
		return Style{StrokeColor: "#cf222e", FillColor: "#ffebe9", StrokeWidth: 1, Filled: true}
	default:
		return Style{StrokeColor: "#000000", StrokeWidth: 1}
	}
}
