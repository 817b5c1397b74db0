package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genomap/genomap/pkg/cache"
	"github.com/genomap/genomap/pkg/digest"
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/genbank"
	"github.com/genomap/genomap/pkg/observability"
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/seqmap"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → scan → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	rec, recordHash, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Record = rec
	result.RecordHash = recordHash
	result.Stats.ParseTime = time.Since(parseStart)
	result.CacheInfo.ParseHit = parseHit

	ses := seqmap.NewSession(rec.SequenceLength(), rec.Locus.Circular)
	result.Features = ResolveFeatures(rec, ses)
	result.Stats.FeatureCount = len(result.Features)

	r.Logger.Info("parsed record",
		"locus", rec.Locus.Name,
		"length", rec.SequenceLength(),
		"features", len(result.Features),
		"duration", result.Stats.ParseTime)

	// Stage 2: Scan
	if opts.WantsScan() {
		scanStart := time.Now()
		sites, scanHit, err := r.ScanWithCacheInfo(ctx, rec, recordHash, opts)
		if err != nil {
			return nil, err
		}
		result.Sites = sites
		result.Stats.ScanTime = time.Since(scanStart)
		result.Stats.SiteCount = len(sites)
		result.CacheInfo.ScanHit = scanHit

		r.Logger.Info("scanned restriction sites",
			"enzymes", opts.Enzymes,
			"sites", len(sites),
			"duration", result.Stats.ScanTime)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, ses, rec, result.Features, result.Sites, recordHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = countRows(l)
	result.Diagnostics = sessionDiagnostics(l)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"view", l.View,
		"shapes", len(l.Shapes),
		"rows", result.Stats.RowCount,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo decodes the record with caching and returns the source
// hash and cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*genbank.Record, string, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	raw, source, err := loadSource(opts)
	if err != nil {
		return nil, "", false, err
	}
	recordHash := cache.Hash(raw)
	cacheKey := r.Keyer.RecordKey(recordHash)

	observability.Pipeline().OnParseStart(ctx, source)
	start := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var rec genbank.Record
			if err := json.Unmarshal(data, &rec); err == nil {
				observability.Cache().OnCacheHit(ctx, "record")
				observability.Pipeline().OnParseComplete(ctx, source, len(rec.Features), time.Since(start), nil)
				return &rec, recordHash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "record")
	}

	rec, err := genbank.Parse(bytes.NewReader(raw))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse %s", source)
		observability.Pipeline().OnParseComplete(ctx, source, 0, time.Since(start), err)
		return nil, "", false, err
	}

	if !opts.Refresh {
		if data, err := json.Marshal(rec); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRecord)
			observability.Cache().OnCacheSet(ctx, "record", len(data))
		}
	}

	observability.Pipeline().OnParseComplete(ctx, source, len(rec.Features), time.Since(start), nil)
	return rec, recordHash, false, nil
}

// ScanWithCacheInfo locates restriction sites with caching and returns cache hit info.
func (r *Runner) ScanWithCacheInfo(ctx context.Context, rec *genbank.Record, recordHash string, opts Options) ([]digest.Site, bool, error) {
	cacheKey := r.Keyer.SitesKey(recordHash, opts.SitesKeyOpts(rec.Locus.Circular))

	observability.Pipeline().OnScanStart(ctx, opts.Enzymes)
	start := time.Now()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var sites []digest.Site
			if err := json.Unmarshal(data, &sites); err == nil {
				observability.Cache().OnCacheHit(ctx, "sites")
				observability.Pipeline().OnScanComplete(ctx, opts.Enzymes, len(sites), time.Since(start), nil)
				return sites, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "sites")
	}

	sites, err := Scan(rec, opts)
	if err != nil {
		observability.Pipeline().OnScanComplete(ctx, opts.Enzymes, 0, time.Since(start), err)
		return nil, false, err
	}

	if !opts.Refresh {
		if data, err := json.Marshal(sites); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSites)
			observability.Cache().OnCacheSet(ctx, "sites", len(data))
		}
	}

	observability.Pipeline().OnScanComplete(ctx, opts.Enzymes, len(sites), time.Since(start), nil)
	return sites, false, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, ses *seqmap.Session, rec *genbank.Record, features []seqmap.Feature, sites []digest.Site, recordHash string, opts Options) (plot.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return plot.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(recordHash, opts.LayoutKeyOpts())
	view := string(opts.ResolveView(rec.Locus.Circular))

	observability.Pipeline().OnLayoutStart(ctx, view, len(features))
	start := time.Now()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := plot.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Pipeline().OnLayoutComplete(ctx, view, countRows(cached), time.Since(start), nil)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err := GenerateLayout(ses, rec, features, sites, opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, view, 0, time.Since(start), err)
		return plot.Layout{}, false, err
	}

	if !opts.Refresh {
		if data, err := plot.MarshalLayout(l); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	observability.Pipeline().OnLayoutComplete(ctx, view, countRows(l), time.Since(start), nil)
	return l, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l plot.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := plot.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderFromLayout(l, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// loadSource returns the raw record bytes and a human-readable source name.
func loadSource(opts Options) ([]byte, string, error) {
	if opts.Content != "" {
		return []byte(opts.Content), "inline", nil
	}
	raw, err := os.ReadFile(opts.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Source)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", opts.Source)
	}
	return raw, opts.Source, nil
}

// countRows counts the distinct rows occupied by feature shapes.
func countRows(l plot.Layout) int {
	rows := make(map[int]bool)
	for _, s := range l.Shapes {
		rows[s.Row] = true
	}
	return len(rows)
}

// sessionDiagnostics converts the layout's serialized diagnostics back to
// session form for the pipeline result.
func sessionDiagnostics(l plot.Layout) []seqmap.Diagnostic {
	if len(l.Diagnostics) == 0 {
		return nil
	}
	out := make([]seqmap.Diagnostic, len(l.Diagnostics))
	for i, d := range l.Diagnostics {
		out[i] = seqmap.Diagnostic{FeatureID: d.FeatureID, Message: d.Message}
	}
	return out
}
