package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

// renderAll selects every diagram.
const renderAll = "all"

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	formats string  // comma separated output formats
	output  string  // output directory
	name    string  // output basename, single diagram only
	backend string  // plot or graphviz
	width   float64 // canvas width in points
	height  float64 // canvas height in points
	samples int     // connector curve samples
	noCache bool    // bypass the artifact cache
}

// renderCommand creates the render command for writing diagram files.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [loop|chart|all]",
		Short: "Render diagrams to PNG, SVG, PDF or JSON",
		Long: `Render the decision loop, the comparison chart, or both (the default).

Files are written to the output directory as <basename>.<format>, where the
basename defaults to agentic_ai_loop and chart.`,
		Example: `  loopchart render
  loopchart render loop -f png,svg,pdf -o out/
  loopchart render chart -f json
  loopchart render loop --backend graphviz --samples 32`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(diagram.KindLoop), string(diagram.KindChart), renderAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := resolveKinds(args)
			if err != nil {
				return err
			}
			if f.name != "" && len(kinds) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--name needs a single diagram")
			}
			return c.runRender(cmd, kinds, f)
		},
	}

	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output formats: png, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&f.name, "name", "", "output basename (without extension)")
	cmd.Flags().StringVar(&f.backend, "backend", "", "rendering backend: plot, graphviz")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width in points")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height in points")
	cmd.Flags().IntVar(&f.samples, "samples", 0, "points sampled along each connector (min 2)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// resolveKinds maps the optional diagram argument to the diagrams to render.
func resolveKinds(args []string) ([]diagram.Kind, error) {
	if len(args) == 0 || strings.EqualFold(strings.TrimSpace(args[0]), renderAll) {
		return diagram.Kinds(), nil
	}
	k, err := diagram.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []diagram.Kind{k}, nil
}

func (c *CLI) runRender(cmd *cobra.Command, kinds []diagram.Kind, f renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	dir := c.config().Output
	if f.output != "" {
		dir = f.output
	}
	if err := errors.ValidateOutputDir(dir); err != nil {
		return err
	}

	runner := c.newRunner(ctx, f.noCache)
	defer runner.Close()

	for _, k := range kinds {
		opts := c.renderOptions(cmd, k, f)
		base := c.config().Diagram(k).Basename
		if f.name != "" {
			base = f.name
		}
		if err := errors.ValidateBasename(base); err != nil {
			return err
		}

		watch := startStopwatch(c.Logger)
		spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", k))
		spinner.Start()
		result, err := runner.Execute(ctx, opts)
		spinner.Stop()
		if err != nil {
			if spinner.Cancelled() {
				return ctx.Err()
			}
			printError(cmd.ErrOrStderr(), "Rendering %s failed", k)
			return err
		}

		paths, err := writeArtifacts(dir, base, result, opts.Formats)
		if err != nil {
			return err
		}
		watch.done("rendered", "diagram", k, "files", len(paths))

		printSuccess(out, "%s", k.Title())
		for _, p := range paths {
			printFile(out, p)
		}
		printStats(out, len(paths), result.Stats.Bytes, result.AllCached())
	}

	if len(kinds) == 1 && kinds[0] == diagram.KindLoop {
		printNextStep(out, "Inspect connector geometry", "loopchart show loop")
	}
	return nil
}

// renderOptions layers changed flags over the loaded config.
func (c *CLI) renderOptions(cmd *cobra.Command, k diagram.Kind, f renderFlags) pipeline.Options {
	cfg := c.config()
	dc := cfg.Diagram(k)
	opts := pipeline.Options{
		Diagram: k,
		Formats: append([]string(nil), cfg.Formats...),
		Backend: cfg.Backend,
		Width:   dc.Width,
		Height:  dc.Height,
		Samples: cfg.Samples,
		NoCache: f.noCache,
		Logger:  c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if flags.Changed("backend") {
		opts.Backend = strings.ToLower(strings.TrimSpace(f.backend))
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("samples") {
		opts.Samples = f.samples
	}
	return opts
}

// writeArtifacts writes one file per format into dir and returns the paths in
// format order.
func writeArtifacts(dir, base string, result *pipeline.Result, formats []string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, base+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
