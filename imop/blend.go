// Package imop implements the blend modes and the Porter-Duff composition
// operations used to mix a graphic layer with its backdrop.
//
// The image/draw package only supports the source and the source-over-destination
// operators; this package covers the remaining ones. It is used to paint the
// protected regions of the seam carver over the resized image in debug mode.
package imop

import (
	"github.com/seamkit/seamcarve/utils"
)

// The supported blend modes.
const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

var blendModes = []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend returns a Blend using the normal mode.
func NewBlend() *Blend {
	return &Blend{OpType: Normal}
}

// Set activates one of the supported blend modes. Unknown modes are ignored.
func (o *Blend) Set(opType string) {
	if utils.Contains(blendModes, opType) {
		o.OpType = opType
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes a single normalized source channel cs with the backdrop channel cb.
func (o *Blend) apply(cs, cb float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cs, cb)
	case Lighten:
		return utils.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return cs + cb - cs*cb
	case Overlay:
		// overlay is hard light with the layers swapped
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}
