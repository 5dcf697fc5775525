package pipeline

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateBackend(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"plot", false},
		{"graphviz", false},
		{"plotly", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateBackend(tt.backend)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBackend(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"png", []string{"png"}},
		{"png,svg", []string{"png", "svg"}},
		{" PNG , svg,,png ", []string{"png", "svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		kind   diagram.Kind
		format string
		want   string
	}{
		{diagram.KindLoop, "png", "agentic_ai_loop.png"},
		{diagram.KindLoop, "svg", "agentic_ai_loop.svg"},
		{diagram.KindChart, "pdf", "chart.pdf"},
		{diagram.KindChart, "json", "chart.json"},
	}
	for _, tt := range tests {
		if got := Filename(tt.kind, tt.format); got != tt.want {
			t.Errorf("Filename(%s, %s) = %q, want %q", tt.kind, tt.format, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("svg"); got != "image/svg+xml" {
		t.Errorf("ContentType(svg) = %q", got)
	}
	if got := ContentType("bin"); got != "application/octet-stream" {
		t.Errorf("ContentType(bin) = %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	tests := []struct {
		kind          diagram.Kind
		width, height float64
	}{
		{diagram.KindLoop, 800, 800},
		{diagram.KindChart, 700, 420},
	}
	for _, tt := range tests {
		opts := Options{Diagram: tt.kind}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults(%s): %v", tt.kind, err)
		}
		if opts.Width != tt.width || opts.Height != tt.height {
			t.Errorf("%s size = %gx%g, want %gx%g", tt.kind, opts.Width, opts.Height, tt.width, tt.height)
		}
		if !reflect.DeepEqual(opts.Formats, []string{"png", "svg"}) {
			t.Errorf("Formats = %v, want [png svg]", opts.Formats)
		}
		if opts.Backend != BackendPlot {
			t.Errorf("Backend = %q, want plot", opts.Backend)
		}
		if opts.Samples != 3 {
			t.Errorf("Samples = %d, want 3", opts.Samples)
		}
		if opts.Logger == nil {
			t.Error("Logger should default to a discard logger")
		}
	}
}

func TestOptionsDefaultsDoNotAliasShared(t *testing.T) {
	opts := Options{Diagram: diagram.KindLoop}
	opts.SetDefaults()
	opts.Formats[0] = "pdf"
	if DefaultFormats[0] != FormatPNG {
		t.Fatal("SetDefaults shares its slice with DefaultFormats")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing diagram", Options{}, errors.ErrCodeInvalidDiagram},
		{"unknown diagram", Options{Diagram: "pie"}, errors.ErrCodeInvalidDiagram},
		{"bad format", Options{Diagram: "loop", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad backend", Options{Diagram: "loop", Backend: "ascii"}, errors.ErrCodeInvalidBackend},
		{"negative width", Options{Diagram: "loop", Width: -1}, errors.ErrCodeInvalidInput},
		{"one sample", Options{Diagram: "loop", Samples: 1}, errors.ErrCodeInvalidInput},
		{"too many samples", Options{Diagram: "loop", Samples: MaxSamples + 1}, errors.ErrCodeInvalidInput},
		{"huge sample count", Options{Diagram: "loop", Samples: 1 << 62}, errors.ErrCodeInvalidInput},
		{"NaN width", Options{Diagram: "loop", Width: math.NaN()}, errors.ErrCodeInvalidInput},
		{"infinite width", Options{Diagram: "loop", Width: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"negative infinite height", Options{Diagram: "chart", Height: math.Inf(-1)}, errors.ErrCodeInvalidInput},
		{"oversized height", Options{Diagram: "chart", Height: MaxSize + 1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateNormalizesDiagram(t *testing.T) {
	opts := Options{Diagram: " Loop "}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if opts.Diagram != diagram.KindLoop {
		t.Errorf("Diagram = %q, want %q", opts.Diagram, diagram.KindLoop)
	}
	if _, err := Render(context.Background(), opts, FormatJSON); err != nil {
		t.Errorf("Render() after normalization = %v", err)
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		w, h float64
		ok   bool
	}{
		{800, 800, true},
		{MaxSize, 1, true},
		{0, 800, false},
		{800, -1, false},
		{MaxSize + 0.5, 800, false},
		{math.NaN(), 800, false},
		{800, math.Inf(1), false},
	}
	for _, tt := range tests {
		err := ValidateSize(tt.w, tt.h)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateSize(%g, %g) = %v, want ok=%v", tt.w, tt.h, err, tt.ok)
		}
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Diagram: diagram.KindChart}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	before := opts.String()

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if after := opts.String(); after != before {
		t.Errorf("options changed on second call: %s -> %s", before, after)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Diagram: diagram.KindLoop}
	opts.SetDefaults()

	k := opts.ArtifactKeyOpts("png")
	if k.Diagram != "loop" || k.Format != "png" || k.Backend != "plot" || k.Samples != 3 {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
	if k.Version == "" {
		t.Error("ArtifactKeyOpts should carry the build version")
	}
}
