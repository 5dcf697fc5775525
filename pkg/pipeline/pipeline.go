// Package pipeline renders loopchart's diagrams to output artifacts.
//
// This package is the single entry point used by the render command and the
// preview server, so both produce byte-identical files for the same options.
//
// # Architecture
//
// One run handles one diagram:
//
//  1. Validate: check the diagram, formats and backend; apply size defaults
//  2. Render: produce every requested format concurrently, each from the
//     artifact cache when possible
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Diagram: diagram.KindLoop,
//	    Formats: []string{"png", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/loopchart/pkg/buildinfo"
	"github.com/matzehuels/loopchart/pkg/cache"
	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/geom"
	"github.com/matzehuels/loopchart/pkg/render/plotsink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSamples is the number of points each connector curve is sampled at.
	DefaultSamples = geom.DefaultSamples

	// DefaultBackend is the default rendering backend.
	DefaultBackend = BackendPlot

	// MaxSize bounds the canvas width and height, in points.
	MaxSize = 10000

	// MaxSamples bounds the number of points per connector curve.
	MaxSamples = 1024
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Backend constants.
const (
	BackendPlot     = "plot"
	BackendGraphviz = "graphviz"
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatPNG, FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidBackends is the set of supported rendering backends.
var ValidBackends = map[string]bool{
	BackendPlot:     true,
	BackendGraphviz: true,
}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Diagram diagram.Kind `json:"diagram"`
	Formats []string     `json:"formats,omitempty"`
	Backend string       `json:"backend,omitempty"`
	Width   float64      `json:"width,omitempty"`  // points
	Height  float64      `json:"height,omitempty"` // points
	Samples int          `json:"samples,omitempty"`
	NoCache bool         `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the rendered diagram.
	Diagram diagram.Kind

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Cached reports, per format, whether the artifact came from the cache.
	Cached map[string]bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
	CacheHits  int
}

// AllCached reports whether every artifact came from the cache.
func (r *Result) AllCached() bool {
	return len(r.Cached) > 0 && r.Stats.CacheHits == len(r.Cached)
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, pdf, json)", format)
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

// ValidateBackend checks that a backend is valid.
func ValidateBackend(backend string) error {
	if !ValidBackends[backend] {
		return errors.New(errors.ErrCodeInvalidBackend, "invalid backend: %q (must be one of: plot, graphviz)", backend)
	}
	return nil
}

// ValidateSize checks that a canvas size is finite, positive and at most
// [MaxSize] points on each side.
func ValidateSize(w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxSize {
			return errors.New(errors.ErrCodeInvalidInput, "size must be in (0, %d] points, got %gx%g", MaxSize, w, h)
		}
	}
	return nil
}

// ValidateSamples checks that a connector sample count is in [2, MaxSamples].
func ValidateSamples(n int) error {
	if n < 2 || n > MaxSamples {
		return errors.New(errors.ErrCodeInvalidInput, "samples must be in [2, %d], got %d", MaxSamples, n)
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Filename returns the default output file name for a diagram in format.
func Filename(k diagram.Kind, format string) string {
	return k.Basename() + "." + format
}

// DefaultSize returns the default canvas size of a diagram, in points.
func DefaultSize(k diagram.Kind) (w, h float64) {
	if k == diagram.KindChart {
		return plotsink.ChartWidth, plotsink.ChartHeight
	}
	return plotsink.LoopWidth, plotsink.LoopHeight
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	k, err := diagram.ParseKind(string(o.Diagram))
	if err != nil {
		return err
	}
	o.Diagram = k
	o.SetDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}
	if err := ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateSamples(o.Samples); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	w, h := DefaultSize(o.Diagram)
	if o.Width == 0 {
		o.Width = w
	}
	if o.Height == 0 {
		o.Height = h
	}
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Diagram: string(o.Diagram),
		Backend: o.Backend,
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Samples: o.Samples,
		Version: buildinfo.CacheVersion(),
	}
}

func (o *Options) String() string {
	return fmt.Sprintf("%s %v via %s (%gx%g, %d samples)", o.Diagram, o.Formats, o.Backend, o.Width, o.Height, o.Samples)
}
