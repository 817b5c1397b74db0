// Package plot defines the serialization types for computed sequence map
// layouts: the contract between the layout engine and rendering backends.
//
// A [Layout] is a fully geometric description — shapes, labels, leader
// lines, axis ticks, and cut-site marks — tagged with the feature each
// element belongs to, so a backend can attach interaction handlers against
// the inputs it already owns. Layouts round-trip through JSON.
package plot

import (
	"encoding/json"
	"fmt"
	"os"
)

// Shape kinds. Exactly one of the corresponding payload fields is set.
const (
	KindRect          = "rect"
	KindPolygon       = "polygon"
	KindAnnularSector = "annular_sector"
	KindAnnularArrow  = "annular_arrow"
)

// Point is a 2D pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Polygon is a closed vertex list.
type Polygon struct {
	Points []Point `json:"points"`
}

// Annular is a ring sector, optionally truncated for an arrow tip. Angles
// are radians; coordinates are relative to the layout center.
type Annular struct {
	Inner          float64 `json:"inner"`
	Outer          float64 `json:"outer"`
	StartAngle     float64 `json:"start_angle"`
	EndAngle       float64 `json:"end_angle"`
	TipAngleOffset float64 `json:"tip_angle_offset,omitempty"`
	Reverse        bool    `json:"reverse,omitempty"`
	Tip            *Point  `json:"tip,omitempty"`
}

// Shape is one drawable element tagged with its owning feature and row.
type Shape struct {
	FeatureID string   `json:"feature_id"`
	Row       int      `json:"row"`
	Kind      string   `json:"kind"`
	Rect      *Rect    `json:"rect,omitempty"`
	Polygon   *Polygon `json:"polygon,omitempty"`
	Annular   *Annular `json:"annular,omitempty"`
}

// Label is a placed feature label. Displaced labels carry a leader line
// from the resolved position back to the shape anchor.
type Label struct {
	FeatureID string  `json:"feature_id"`
	Text      string  `json:"text"`
	Row       int     `json:"row"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Displaced bool    `json:"displaced,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Leader    *Line   `json:"leader,omitempty"`
}

// Line is a leader or divider segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Tick is an axis mark.
type Tick struct {
	Position int     `json:"position"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle,omitempty"`
}

// CutSite is a placed restriction cut mark.
type CutSite struct {
	Enzyme   string  `json:"enzyme"`
	Position int     `json:"position"`
	Row      int     `json:"row"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Angle    float64 `json:"angle,omitempty"`
}

// Diagnostic is a reported per-feature layout condition.
type Diagnostic struct {
	FeatureID string `json:"feature_id,omitempty"`
	Message   string `json:"message"`
}

// Layout is the serialized output of one layout pass.
//
// View is the discriminator: "linear" layouts use absolute pixel
// coordinates; "circular" layouts express shapes and labels relative to
// (CenterX, CenterY) with BaseRadius as the outermost layer radius.
type Layout struct {
	View       string  `json:"view"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	SequenceID string  `json:"sequence_id,omitempty"`
	Definition string  `json:"definition,omitempty"`
	SeqLength  int     `json:"seq_length"`

	CenterX    float64 `json:"center_x,omitempty"`
	CenterY    float64 `json:"center_y,omitempty"`
	BaseRadius float64 `json:"base_radius,omitempty"`

	Shapes   []Shape          `json:"shapes,omitempty"`
	Labels   []Label          `json:"labels,omitempty"`
	Ticks    []Tick           `json:"ticks,omitempty"`
	CutSites []CutSite        `json:"cut_sites,omitempty"`
	Rows     map[int][]string `json:"rows,omitempty"`

	SessionID   string       `json:"session_id,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// IsCircular returns true for circular layouts.
func (l *Layout) IsCircular() bool { return l.View == "circular" }

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.View == "" {
		l.View = "linear"
	}
	if l.SeqLength <= 0 {
		return Layout{}, fmt.Errorf("layout must carry a positive sequence length")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
