// Package pipeline provides the core map-rendering pipeline for genomap.
//
// This package implements the complete parse → scan → layout → render
// pipeline shared by the CLI and the HTTP API. Centralizing it keeps
// behavior consistent across entry points and avoids code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Decode a GenBank record into features and sequence
//  2. Scan: Locate restriction sites for the requested enzymes
//  3. Layout: Compute shape and label positions for the map
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "plasmid.gb",
//	    View:    "circular",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genomap/genomap/pkg/cache"
	"github.com/genomap/genomap/pkg/digest"
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/genbank"
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/seqmap"
	"github.com/genomap/genomap/pkg/seqmap/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultView is the default map view.
	DefaultView = ViewAuto

	// DefaultStyle is the default visual style.
	DefaultStyle = StyleSimple
)

// View constants. ViewAuto picks circular for circular topologies and
// linear otherwise.
const (
	ViewAuto     = "auto"
	ViewLinear   = "linear"
	ViewCircular = "circular"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// StyleSimple is the flat default style.
const StyleSimple = "simple"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple: true,
}

// ValidViews is the set of supported map views.
var ValidViews = map[string]bool{
	ViewAuto:     true,
	ViewLinear:   true,
	ViewCircular: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the map pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source  string `json:"source,omitempty"`  // Path to a GenBank file
	Content string `json:"content,omitempty"` // Inline GenBank content (takes precedence)
	Refresh bool   `json:"refresh,omitempty"` // Bypass caches and recompute

	// Scan options
	Enzymes    []string `json:"enzymes,omitempty"`     // Enzyme names to scan for
	EnzymeFile string   `json:"enzyme_file,omitempty"` // Optional TOML enzyme set

	// Layout options
	View      string  `json:"view,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
	RowHeight float64 `json:"row_height,omitempty"` // Height of one feature row in pixels

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Scale       float64  `json:"scale,omitempty"`       // PNG upscale factor
	Diagnostics bool     `json:"diagnostics,omitempty"` // Embed diagnostics in SVG output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the parsed GenBank record.
	Record *genbank.Record

	// RecordHash is the content hash of the source.
	RecordHash string

	// Features are the resolved map features.
	Features []seqmap.Feature

	// Sites are the located restriction sites.
	Sites []digest.Site

	// Layout contains the computed layout data.
	Layout plot.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Diagnostics collects per-feature exclusions and degradations.
	Diagnostics []seqmap.Diagnostic

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FeatureCount int
	SiteCount    int
	RowCount     int
	ParseTime    time.Duration
	ScanTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed record came from cache
	ScanHit   bool // Whether site scan results came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be: simple)", style)
	}
	return nil
}

// ValidateView checks that a map view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidView,
			"invalid view: %q (must be one of: auto, linear, circular)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" && o.Content == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or content is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateView(o.View)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// ResolveView maps the requested view onto a concrete layout view, using
// the record's topology when the view is auto.
func (o *Options) ResolveView(circular bool) layout.View {
	switch o.View {
	case ViewLinear:
		return layout.ViewLinear
	case ViewCircular:
		return layout.ViewCircular
	default:
		if circular {
			return layout.ViewCircular
		}
		return layout.ViewLinear
	}
}

// WantsScan reports whether a restriction-site scan was requested.
func (o *Options) WantsScan() bool {
	return len(o.Enzymes) > 0
}

// SitesKeyOpts returns cache key options for the site scan.
func (o *Options) SitesKeyOpts(circular bool) cache.SitesKeyOpts {
	return cache.SitesKeyOpts{
		Enzymes:  o.Enzymes,
		Circular: circular,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		View:      o.View,
		Width:     o.Width,
		Height:    o.Height,
		Enzymes:   o.Enzymes,
		FontSize:  o.FontSize,
		RowHeight: o.RowHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Scale:  o.Scale,
	}
}
