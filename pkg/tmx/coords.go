package tmx

import "github.com/threatforge/threatforge/pkg/model"

// The external dialect's vertical axis increases downward (screen
// convention); the internal model's increases upward. The flip is applied
// uniformly to node and boundary positions on decode and inverted on
// encode.

// toInternal converts an external (left, top) pair to an internal position.
func toInternal(left, top float64) model.Position {
	return model.Position{X: left, Y: -top}
}

// toExternal converts an internal position back to an external (left, top)
// pair.
func toExternal(p model.Position) (left, top float64) {
	return p.X, -p.Y
}

// Default bounds supplied when the source document omits a boundary's
// extent.
var (
	defaultRectangleBounds = model.Bounds{Width: 100, Height: 50}
	defaultLineBounds      = model.Bounds{Width: 200, Height: 5}
)

// defaultBounds returns the default extent for a boundary shape.
func defaultBounds(shape model.BoundaryShape) model.Bounds {
	if shape == model.ShapeLine {
		return defaultLineBounds
	}
	return defaultRectangleBounds
}
