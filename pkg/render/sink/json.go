package sink

import "github.com/genomap/genomap/pkg/plot"

// RenderJSON serializes the layout itself, for backends that do their own
// drawing against the shape/label descriptors.
func RenderJSON(l plot.Layout) ([]byte, error) {
	return plot.MarshalLayout(l)
}
