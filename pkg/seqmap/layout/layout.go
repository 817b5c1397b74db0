package layout

import (
	"math"
	"strconv"

	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/coord"
	"github.com/genomap/genomap/pkg/seqmap/shape"
)

// View selects the coordinate system of a layout pass.
type View string

const (
	// ViewLinear lays features out on horizontal rows.
	ViewLinear View = "linear"

	// ViewCircular lays features out on concentric layers.
	ViewCircular View = "circular"
)

// Default layout parameters.
const (
	DefaultWidth        = 800.0
	DefaultHeight       = 600.0
	DefaultRowHeight    = 14.0
	DefaultRowGap       = 8.0
	DefaultTopMargin    = 40.0
	DefaultSideMargin   = 24.0
	DefaultBottomMargin = 48.0
	DefaultSafetyMargin = 20.0
	DefaultFontSize     = 11.0
	DefaultLabelPadding = 8.0
	DefaultLabelOffset  = 18.0
	DefaultMaxTicks     = 10
)

// Options configures a layout pass. The zero value is usable: every field
// falls back to the defaults above.
type Options struct {
	View         View
	Width        float64
	Height       float64
	RowHeight    float64
	RowGap       float64
	TopMargin    float64
	SideMargin   float64
	BottomMargin float64

	// SafetyMargin is the extra spacing, in pixels, added around a span
	// before testing row overlap. For circular layouts it is converted to
	// the equivalent angle at the base radius.
	SafetyMargin float64

	FontSize     float64
	LabelPadding float64
	LabelOffset  float64
	ArrowLength  float64
	MaxTicks     int

	// MaxLabelWidth caps displaced labels; wider text is truncated with an
	// ellipsis. Zero falls back to a quarter of the frame width, negative
	// disables the cap.
	MaxLabelWidth float64

	// Measure supplies real text metrics; nil falls back to ApproxMeasure.
	Measure Measurer

	// Truncate shortens overlong labels; nil falls back to ApproxTruncate.
	Truncate Truncator

	Relax RelaxConfig
}

func (o *Options) applyDefaults() {
	if o.View == "" {
		o.View = ViewLinear
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.RowGap == 0 {
		o.RowGap = DefaultRowGap
	}
	if o.TopMargin == 0 {
		o.TopMargin = DefaultTopMargin
	}
	if o.SideMargin == 0 {
		o.SideMargin = DefaultSideMargin
	}
	if o.BottomMargin == 0 {
		o.BottomMargin = DefaultBottomMargin
	}
	if o.SafetyMargin == 0 {
		o.SafetyMargin = DefaultSafetyMargin
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.LabelPadding == 0 {
		o.LabelPadding = DefaultLabelPadding
	}
	if o.LabelOffset == 0 {
		o.LabelOffset = DefaultLabelOffset
	}
	if o.ArrowLength == 0 {
		o.ArrowLength = shape.DefaultArrowLength
	}
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if o.MaxLabelWidth == 0 {
		o.MaxLabelWidth = o.Width / 4
	}
}

// CutMark is a restriction cut position to be marked on the map.
type CutMark struct {
	Enzyme   string
	Position int // 1-based, as reported by the digest scanner
}

// Input is everything a layout pass consumes.
type Input struct {
	Definition     string
	SequenceLength int
	Features       []seqmap.Feature
	Cuts           []CutMark
}

// PlacedShape is one drawable geometry tagged with the feature it belongs
// to and the row or layer it was assigned.
type PlacedShape struct {
	FeatureID string
	Row       int
	Geometry  shape.Shape
}

// Tick is one axis mark. X/Y are pixel coordinates for linear layouts;
// Angle is set for circular layouts (coordinates relative to the center).
type Tick struct {
	Position int
	X, Y     float64
	Angle    float64
}

// CutLabel is a placed restriction-site mark with its packed label row.
type CutLabel struct {
	Enzyme   string
	Position int
	Row      int
	X, Y     float64
	Angle    float64
}

// Result is the full output of one layout pass. For circular layouts all
// shape and label coordinates are relative to (CenterX, CenterY).
type Result struct {
	View           View
	Width, Height  float64
	SequenceLength int
	Definition     string

	CenterX, CenterY float64
	BaseRadius       float64

	Shapes []PlacedShape
	Labels []*LabelNode
	Ticks  []Tick
	Cuts   []CutLabel

	// Rows maps each row or layer index to the feature IDs assigned to it.
	Rows map[int][]string

	SessionID   string
	Diagnostics []seqmap.Diagnostic
}

// directionalTypes lists the feature types drawn as arrows; everything else
// is drawn as a plain box.
var directionalTypes = map[string]bool{
	"CDS":   true,
	"gene":  true,
	"mRNA":  true,
	"tRNA":  true,
	"rRNA":  true,
	"ncRNA": true,
}

// IsDirectional reports whether the feature is rendered with an arrow tip.
func IsDirectional(f seqmap.Feature) bool { return directionalTypes[f.Type] }

// Build runs a complete layout pass over the session. The pass is
// synchronous and deterministic: same input, same output. Per-feature
// failures are recorded on the session and the failing feature is skipped;
// they never abort the pass.
func Build(ses *seqmap.Session, in Input, opts Options) Result {
	opts.applyDefaults()

	res := Result{
		View:           opts.View,
		Width:          opts.Width,
		Height:         opts.Height,
		SequenceLength: in.SequenceLength,
		Definition:     in.Definition,
		Rows:           make(map[int][]string),
		SessionID:      ses.ID,
	}

	if in.SequenceLength <= 0 {
		ses.Report("", "empty sequence, nothing to lay out")
		res.Diagnostics = ses.Diagnostics()
		return res
	}

	if opts.View == ViewCircular {
		buildCircular(ses, in, opts, &res)
	} else {
		buildLinear(ses, in, opts, &res)
	}

	res.Diagnostics = ses.Diagnostics()
	return res
}

func buildLinear(ses *seqmap.Session, in Input, opts Options, res *Result) {
	contentWidth := opts.Width - 2*opts.SideMargin
	scale := coord.NewLinearScale(in.SequenceLength, contentWidth)
	toX := func(pos int) float64 { return opts.SideMargin + scale.ToPixel(float64(pos)) }

	feats := append([]seqmap.Feature(nil), in.Features...)
	SortForPacking(feats, in.SequenceLength)

	assigner := NewAssigner(opts.SafetyMargin, len(feats))
	placer := NewPlacer(opts.Measure, opts.Truncate, opts.FontSize, opts.LabelPadding, opts.LabelOffset, opts.MaxLabelWidth)
	rowPitch := opts.RowHeight + opts.RowGap

	for _, f := range feats {
		x0 := toX(f.Span.Start)
		x1 := toX(f.Span.End + 1)

		// A span crossing the origin has no single extent on the flattened
		// axis: split it at position 1 and keep both halves on one row.
		ivs := []Interval{{Start: x0, End: x1}}
		if f.Span.CrossesOrigin {
			ses.Report(f.ID, "wraps the origin, split at position 1 in the linear view")
			ivs = []Interval{
				{Start: x0, End: toX(in.SequenceLength)},
				{Start: toX(0), End: x1},
			}
		}

		row, err := assigner.PlaceAll(ivs)
		if err != nil {
			ses.Report(f.ID, "row assignment failed, feature skipped: %v", err)
			continue
		}
		res.Rows[row] = append(res.Rows[row], f.ID)
		rowY := opts.TopMargin + float64(row)*rowPitch

		appendLinearShapes(res, f, row, rowY, opts, toX, in.SequenceLength)

		lx, lw := x0, x1-x0
		if f.Span.CrossesOrigin {
			// The label sits over the longer half.
			if head, tail := toX(in.SequenceLength)-x0, x1-toX(0); head >= tail {
				lx, lw = x0, head
			} else {
				lx, lw = toX(0), tail
			}
		}
		if node := placer.Place(f, ses, lx, rowY, lw, opts.RowHeight, row); node != nil {
			res.Labels = append(res.Labels, node)
		}
	}

	RelaxRows(res.Labels, opts.Relax)

	axisY := opts.Height - opts.BottomMargin
	interval := coord.TickInterval(in.SequenceLength, opts.MaxTicks)
	for _, pos := range coord.Ticks(in.SequenceLength, interval) {
		res.Ticks = append(res.Ticks, Tick{Position: pos, X: toX(pos), Y: axisY})
	}

	placeLinearCuts(in.Cuts, opts, toX, axisY, res)
}

// linearPiece is one drawable extent of a segment on the flattened axis.
// Only the piece carrying the segment's pointed end keeps the arrow tip.
type linearPiece struct {
	start, end int
	reverse    bool
	tipped     bool
}

// appendLinearShapes emits one shape per segment plus the thin backbone
// joining non-adjacent segments of a spliced feature. Segments that wrap
// the origin are split into a head piece against the right edge and a tail
// piece from the left edge.
func appendLinearShapes(res *Result, f seqmap.Feature, row int, rowY float64, opts Options, toX func(int) float64, seqLen int) {
	directional := IsDirectional(f)

	pieces := make([]linearPiece, 0, len(f.Segments))
	for _, seg := range f.Segments {
		if seg.Start > seg.End {
			pieces = append(pieces,
				linearPiece{start: seg.Start, end: seqLen - 1, reverse: seg.Reverse, tipped: seg.Reverse},
				linearPiece{start: 0, end: seg.End, reverse: seg.Reverse, tipped: !seg.Reverse})
			continue
		}
		pieces = append(pieces, linearPiece{start: seg.Start, end: seg.End, reverse: seg.Reverse, tipped: true})
	}

	for i, pc := range pieces {
		sx0 := toX(pc.start)
		sx1 := toX(pc.end + 1)

		var geom shape.Shape
		if directional && pc.tipped {
			geom = shape.Arrow(sx0, rowY, sx1-sx0, opts.RowHeight, pc.reverse, opts.ArrowLength)
		} else {
			geom = shape.Box(sx0, rowY, sx1-sx0, opts.RowHeight)
		}
		res.Shapes = append(res.Shapes, PlacedShape{FeatureID: f.ID, Row: row, Geometry: geom})

		if i > 0 {
			prevEnd := toX(pieces[i-1].end + 1)
			if gap := sx0 - prevEnd; gap > 0 {
				res.Shapes = append(res.Shapes, PlacedShape{
					FeatureID: f.ID,
					Row:       row,
					Geometry:  shape.Backbone(prevEnd, sx0, rowY, opts.RowHeight),
				})
			}
		}
	}
}

func placeLinearCuts(cuts []CutMark, opts Options, toX func(int) float64, axisY float64, res *Result) {
	if len(cuts) == 0 {
		return
	}
	measure := opts.Measure
	if measure == nil {
		measure = ApproxMeasure
	}

	spans := make([]TextSpan, 0, len(cuts))
	byID := make(map[string]CutMark, len(cuts))
	for _, c := range cuts {
		id := cutID(c)
		w, _, err := measure(c.Enzyme, opts.FontSize)
		if err != nil {
			w, _, _ = ApproxMeasure(c.Enzyme, opts.FontSize)
		}
		spans = append(spans, TextSpan{ID: id, Center: toX(c.Position - 1), Width: w})
		byID[id] = c
	}

	rows := PackTextRows(spans, opts.LabelPadding)
	for _, sp := range spans {
		c := byID[sp.ID]
		row := rows[sp.ID]
		res.Cuts = append(res.Cuts, CutLabel{
			Enzyme:   c.Enzyme,
			Position: c.Position,
			Row:      row,
			X:        sp.Center,
			Y:        axisY - float64(row+1)*(opts.FontSize+2),
		})
	}
}

func buildCircular(ses *seqmap.Session, in Input, opts Options, res *Result) {
	res.CenterX = opts.Width / 2
	res.CenterY = opts.Height / 2

	// Leave a band outside the outermost layer for displaced labels.
	labelBand := opts.LabelOffset + 3*opts.FontSize
	base := math.Min(opts.Width, opts.Height)/2 - labelBand
	res.BaseRadius = base

	scale := coord.NewAngularScale(in.SequenceLength)
	angularMargin := opts.SafetyMargin / base

	feats := append([]seqmap.Feature(nil), in.Features...)
	SortForPacking(feats, in.SequenceLength)

	assigner := NewAngularAssigner(angularMargin, coord.Tau, len(feats))
	placer := NewPlacer(opts.Measure, opts.Truncate, opts.FontSize, opts.LabelPadding, opts.LabelOffset, opts.MaxLabelWidth)
	layerPitch := opts.RowHeight + opts.RowGap

	for _, f := range feats {
		startA := scale.ToAngle(float64(f.Span.Start))
		endA := scale.ToAngle(float64(f.Span.End + 1))

		layer, err := assigner.Place(Interval{Start: startA, End: endA, CrossesOrigin: f.Span.CrossesOrigin})
		if err != nil {
			ses.Report(f.ID, "layer assignment failed, feature skipped: %v", err)
			continue
		}
		res.Rows[layer] = append(res.Rows[layer], f.ID)

		outer := base - float64(layer)*layerPitch
		inner := outer - opts.RowHeight
		if inner <= 0 {
			ses.Report(f.ID, "layer %d collapses below the map center, feature skipped", layer)
			continue
		}

		appendCircularShapes(res, f, layer, inner, outer, opts, scale)

		midA := midAngle(startA, endA, f.Span.CrossesOrigin)
		arcWidth := scale.ArcLength(float64(f.Span.Start), float64(f.Span.End+1), (inner+outer)/2)
		if node := placer.PlaceAngular(f, ses, midA, arcWidth, inner, outer, layer); node != nil {
			res.Labels = append(res.Labels, node)
		}
	}

	RelaxRows(res.Labels, opts.Relax)
	resolveAngularLabels(res.Labels)

	interval := coord.TickInterval(in.SequenceLength, opts.MaxTicks)
	for _, pos := range coord.Ticks(in.SequenceLength, interval) {
		a := scale.ToAngle(float64(pos))
		p := shape.Polar(base+2, a)
		res.Ticks = append(res.Ticks, Tick{Position: pos, X: p.X, Y: p.Y, Angle: a})
	}

	placeCircularCuts(in.Cuts, opts, scale, base, res)
}

// appendCircularShapes emits one annular shape per segment. Segments that
// wrap the origin are unrolled past 2π so the angular extent stays positive.
func appendCircularShapes(res *Result, f seqmap.Feature, layer int, inner, outer float64, opts Options, scale coord.AngularScale) {
	directional := IsDirectional(f)

	for _, seg := range f.Segments {
		a0 := scale.ToAngle(float64(seg.Start))
		a1 := scale.ToAngle(float64(seg.End + 1))
		if a1 <= a0 {
			a1 += coord.Tau
		}

		var geom shape.Shape
		if directional {
			geom = shape.ArcArrow(inner, outer, a0, a1, seg.Reverse, opts.ArrowLength)
		} else {
			geom = shape.Sector(inner, outer, a0, a1)
		}
		res.Shapes = append(res.Shapes, PlacedShape{FeatureID: f.ID, Row: layer, Geometry: geom})
	}
}

// resolveAngularLabels converts displaced circular labels from their
// relaxation coordinate (arc position along the label ring, radius in
// Target.Y) to center-relative pixel positions. Labels in the lower half of
// the map are pushed slightly further out so the upright text clears its
// leader line; the extra offset is a tuned rendering parameter, not a
// structural constant.
func resolveAngularLabels(nodes []*LabelNode) {
	const lowerHalfExtra = 6.0

	for _, n := range nodes {
		if n == nil || !n.Displaced {
			continue
		}
		radius := n.Target.Y
		if radius <= 0 {
			continue
		}
		angle := n.Resolved.X / radius
		if math.Sin(angle) > 0 {
			radius += lowerHalfExtra
		}
		n.Resolved = shape.Polar(radius, angle)
		n.Target = shape.Polar(n.Target.Y, n.Target.X/n.Target.Y)
	}
}

func placeCircularCuts(cuts []CutMark, opts Options, scale coord.AngularScale, base float64, res *Result) {
	if len(cuts) == 0 {
		return
	}
	measure := opts.Measure
	if measure == nil {
		measure = ApproxMeasure
	}

	labelRadius := base + opts.LabelOffset
	spans := make([]TextSpan, 0, len(cuts))
	byID := make(map[string]CutMark, len(cuts))
	angles := make(map[string]float64, len(cuts))

	for _, c := range cuts {
		id := cutID(c)
		a := scale.ToAngle(float64(c.Position - 1))
		w, _, err := measure(c.Enzyme, opts.FontSize)
		if err != nil {
			w, _, _ = ApproxMeasure(c.Enzyme, opts.FontSize)
		}
		spans = append(spans, TextSpan{ID: id, Center: a * labelRadius, Width: w})
		byID[id] = c
		angles[id] = a
	}

	rows := PackTextRows(spans, opts.LabelPadding)
	for _, sp := range spans {
		c := byID[sp.ID]
		row := rows[sp.ID]
		p := shape.Polar(labelRadius+float64(row)*(opts.FontSize+2), angles[sp.ID])
		res.Cuts = append(res.Cuts, CutLabel{
			Enzyme:   c.Enzyme,
			Position: c.Position,
			Row:      row,
			X:        p.X,
			Y:        p.Y,
			Angle:    angles[sp.ID],
		})
	}
}

// midAngle returns the angular midpoint of a span, walking through the
// origin when the span wraps.
func midAngle(start, end float64, crosses bool) float64 {
	if crosses {
		end += coord.Tau
	}
	return coord.Normalize((start + end) / 2)
}

func cutID(c CutMark) string {
	return c.Enzyme + "@" + strconv.Itoa(c.Position)
}
