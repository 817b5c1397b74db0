package pipeline

import (
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/render/sink"
	"github.com/genomap/genomap/pkg/render/styles"
)

// RenderFromLayout generates output artifacts in the requested formats from
// a computed layout. This is also the entry point when the layout was
// computed elsewhere (e.g. cached).
func RenderFromLayout(l plot.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithPNGSVGOptions(svgOpts...)}
			if opts.Scale > 0 {
				pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
			}
			data, err = sink.RenderPNG(l, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := plot.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout")
	}
	return RenderFromLayout(parsed, opts)
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	switch opts.Style {
	case StyleSimple:
		svgOpts = append(svgOpts, sink.WithStyle(styles.Simple{FontSize: opts.FontSize}))
	}

	if opts.Diagnostics {
		svgOpts = append(svgOpts, sink.WithDiagnostics())
	}

	return svgOpts
}
