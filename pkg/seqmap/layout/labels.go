package layout

import (
	"math"

	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/shape"
)

// Measurer reports the rendered width and height of text at a font size.
// A measurer that returns an error or a non-finite width is treated as
// "does not fit": the label is displaced instead of the pass crashing.
type Measurer func(text string, fontSize float64) (w, h float64, err error)

const (
	// approxCharWidth is the fallback width of one character relative to the
	// font size, matching the ratio the SVG styles assume.
	approxCharWidth = 0.55

	// approxLineHeight is the fallback text height relative to the font size.
	approxLineHeight = 1.2
)

// ApproxMeasure estimates text extent from a per-character width model.
// It is the default measurer when the caller has no real text metrics.
func ApproxMeasure(text string, fontSize float64) (float64, float64, error) {
	return float64(len([]rune(text))) * fontSize * approxCharWidth, fontSize * approxLineHeight, nil
}

// Truncator shortens text to fit maxWidth at a font size, reporting whether
// anything was cut.
type Truncator func(text string, maxWidth, fontSize float64) (string, bool)

// ApproxTruncate shortens text under the approximate width model, replacing
// the overflow with a two-dot ellipsis. The minimum kept length is three
// characters. It is the default truncator when the caller has no real text
// metrics.
func ApproxTruncate(text string, maxWidth, fontSize float64) (string, bool) {
	maxRunes := int(maxWidth / (fontSize * approxCharWidth))
	if maxRunes < 3 {
		maxRunes = 3
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text, false
	}
	return string(runes[:maxRunes-2]) + "..", true
}

// LabelNode is the mutable label state for one feature during a pass. It is
// created by the placer, mutated only by the relaxer, and frozen once
// relaxation completes.
type LabelNode struct {
	FeatureID string
	Text      string
	W, H      float64

	// Anchor is the leader-line endpoint on the feature's shape.
	Anchor shape.Point

	// Target is the preferred resting position of a displaced label.
	Target shape.Point

	// Resolved is the final position after relaxation. For inline labels it
	// equals Target.
	Resolved shape.Point

	Truncated bool
	Displaced bool
	Row       int
}

// Placer measures feature labels against the space inside their shapes and
// produces inline or displaced label nodes.
type Placer struct {
	measure  Measurer
	truncate Truncator
	fontSize float64

	// padding is the fixed horizontal allowance subtracted from the shape
	// width before the fit test.
	padding float64

	// offset is how far a displaced label rests below its shape (linear) or
	// outside the layer radius (circular).
	offset float64

	// maxWidth caps displaced labels; anything wider is truncated. Zero or
	// negative disables the cap.
	maxWidth float64
}

// NewPlacer creates a placer. A nil measure falls back to [ApproxMeasure],
// a nil truncate to [ApproxTruncate].
func NewPlacer(measure Measurer, truncate Truncator, fontSize, padding, offset, maxWidth float64) *Placer {
	if measure == nil {
		measure = ApproxMeasure
	}
	if truncate == nil {
		truncate = ApproxTruncate
	}
	return &Placer{
		measure:  measure,
		truncate: truncate,
		fontSize: fontSize,
		padding:  padding,
		offset:   offset,
		maxWidth: maxWidth,
	}
}

// Place decides where the feature's label goes relative to its drawn shape
// in row (linear) mode. x, y, w, h bound the shape; row is the feature's
// assigned row index.
func (p *Placer) Place(f seqmap.Feature, ses *seqmap.Session, x, y, w, h float64, row int) *LabelNode {
	text := f.Label()
	if text == "" {
		return nil
	}

	node := &LabelNode{FeatureID: f.ID, Text: text, Row: row}
	node.W, node.H = p.measureOrDisplace(ses, f.ID, text, node)

	if !node.Displaced && node.W <= w-p.padding {
		// Inline: horizontally centered on the shape.
		node.Target = shape.Point{X: x + w/2, Y: y + h/2}
		node.Resolved = node.Target
		node.Anchor = node.Target
		return node
	}

	node.Displaced = true
	p.truncateNode(node)
	node.Anchor = shape.Point{X: x + w/2, Y: y + h}
	node.Target = shape.Point{X: node.Anchor.X, Y: node.Anchor.Y + p.offset}
	node.Resolved = node.Target
	return node
}

// PlaceAngular decides label placement for circular mode. midAngle is the
// angular midpoint of the feature, arcWidth the drawn arc length of its
// shape in pixels, and outerRadius the outer radius of its layer. Displaced
// labels rest radially outward; their relaxation coordinate is the arc
// position along the label ring, stored in Target.X with the label radius
// in Target.Y.
func (p *Placer) PlaceAngular(f seqmap.Feature, ses *seqmap.Session, midAngle, arcWidth, innerRadius, outerRadius float64, layer int) *LabelNode {
	text := f.Label()
	if text == "" {
		return nil
	}

	node := &LabelNode{FeatureID: f.ID, Text: text, Row: layer}
	node.W, node.H = p.measureOrDisplace(ses, f.ID, text, node)

	anchor := shape.Polar(outerRadius, midAngle)
	node.Anchor = anchor

	if !node.Displaced && node.W <= arcWidth-p.padding {
		// Inline: centered on the layer's mid radius.
		node.Target = shape.Polar((innerRadius+outerRadius)/2, midAngle)
		node.Resolved = node.Target
		return node
	}

	node.Displaced = true
	p.truncateNode(node)
	labelRadius := outerRadius + p.offset
	node.Target = shape.Point{X: midAngle * labelRadius, Y: labelRadius}
	node.Resolved = node.Target
	return node
}

// truncateNode caps a displaced label at the placer's width limit and
// remeasures the shortened text so relaxation sees the real extent.
func (p *Placer) truncateNode(node *LabelNode) {
	if p.maxWidth <= 0 || node.W <= p.maxWidth {
		return
	}
	text, cut := p.truncate(node.Text, p.maxWidth, p.fontSize)
	if !cut {
		return
	}
	node.Text = text
	node.Truncated = true
	w, h, err := p.measure(text, p.fontSize)
	if err != nil || !finite(w) || !finite(h) {
		w, h, _ = ApproxMeasure(text, p.fontSize)
	}
	node.W, node.H = w, h
}

func (p *Placer) measureOrDisplace(ses *seqmap.Session, featureID, text string, node *LabelNode) (float64, float64) {
	w, h, err := p.measure(text, p.fontSize)
	if err != nil || !finite(w) || !finite(h) {
		ses.Report(featureID, "label measurement failed, displacing: %v", err)
		node.Displaced = true
		// Fall back to the approximate model so relaxation still has a width.
		w, h, _ = ApproxMeasure(text, p.fontSize)
	}
	return w, h
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
