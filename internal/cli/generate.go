package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/pkg/pipeline"
	"github.com/plateforge/plateforge/pkg/platefile"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    []string // output formats: svg, dxf, json, pdf, png
	cap        int      // per-section element cap before density reduction
	title      string   // SVG document title
	background string   // SVG background color, transparent when empty
	compact    bool     // compact JSON output
	flatLayers bool     // single-layer DXF output
	scale      float64  // PNG rasterization scale
	refresh    bool     // regenerate even when cached
	noCache    bool     // disable caching entirely
	redisURL   string   // Redis cache endpoint
}

// generateCommand creates the generate command for rendering plate artifacts.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		cap:   pipeline.DefaultMaxElements,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "generate [plate.toml]",
		Short: "Generate plate artifacts from a plate file",
		Long: `Generate plate artifacts from a plate file.

The generate command resolves a TOML plate file into a generation plan and
renders it to the requested formats. Without a file argument it generates the
built-in default design (101.6mm plate, dot grid, checkerboard, multi-mode
line pairs, crosshair).

Plans and rendered artifacts are cached locally for faster subsequent runs.
Pass --refresh to regenerate, or --no-cache to skip caching entirely.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.formats) == 0 {
				opts.formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runGenerate(cmd.Context(), input, opts)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format, '-' for stdout) or base path (multiple)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "output format(s): svg (default), dxf, json, pdf, png")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis cache URL (overrides "+envRedisURL+")")

	// Generation flags
	cmd.Flags().IntVar(&opts.cap, "cap", opts.cap, "per-section element cap before density reduction")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")

	// Render flags
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (svg)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (svg, default transparent)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "minified output (json)")
	cmd.Flags().BoolVar(&opts.flatLayers, "flat-layers", false, "single PLATE layer instead of per-section layers (dxf)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG rasterization scale")

	return cmd
}

// loadDocument reads a plate file, or returns the built-in default
// design when path is empty.
func loadDocument(path string) (*platefile.Document, error) {
	if path == "" {
		return &platefile.Document{}, nil
	}
	return platefile.Load(path)
}

// runGenerate resolves the plate file, runs the pipeline, and writes artifacts.
func (c *CLI) runGenerate(ctx context.Context, input string, opts generateOpts) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	p, configs, err := doc.Resolve()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Plate:       &p,
		Sections:    configs[:],
		MaxElements: opts.cap,
		Refresh:     opts.refresh,
		Formats:     opts.formats,
		Title:       opts.title,
		Background:  opts.background,
		Compact:     opts.compact,
		FlatLayers:  opts.flatLayers,
		Scale:       opts.scale,
		Logger:      c.Logger,
	}

	spinner := startSpinner(ctx, fmt.Sprintf("Generating %s plate...", p.String()))
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		if spinner.cancelled() {
			spinner.stop()
			return ctx.Err()
		}
		spinner.fail("Generation failed")
		return err
	}
	spinner.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Raw artifact to stdout: keep the byte stream clean, no summary.
	if opts.output == "-" {
		return writeStdout(result.Artifacts, opts.formats)
	}

	printSuccess("Generated %s plate", p.String())
	fmt.Println(sectionTable(result.Plan))
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.formats,
		input:     input,
		output:    opts.output,
	})
	if err != nil {
		return err
	}

	printStats(result.Plan.TotalElements(), result.Plan.Reduced(),
		result.CacheInfo.PlanHit && result.CacheInfo.RenderHit)
	if len(written) > 0 {
		printNewline()
		next := "plateforge inspect"
		if input != "" {
			next += " " + input
		}
		printNextStep("Inspect the plan", next)
	}
	return nil
}

// artifactWriteParams bundles the arguments for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to its own file and prints
// the file lines. It returns the written paths.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := artifactPath(p.output, p.input, format, len(p.formats))
		out, err := openOutput(path)
		if err != nil {
			return written, fmt.Errorf("write output %s: %w", path, err)
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return written, fmt.Errorf("write output %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return written, fmt.Errorf("write output %s: %w", path, err)
		}

		printFile(path)
		written = append(written, path)
	}
	return written, nil
}

// writeStdout streams a single artifact to stdout.
func writeStdout(artifacts map[string][]byte, formats []string) error {
	if len(formats) != 1 {
		return fmt.Errorf("writing to stdout requires exactly one format, got %d", len(formats))
	}
	_, err := os.Stdout.Write(artifacts[formats[0]])
	return err
}

// artifactPath decides where one rendered format lands. A single format
// honors --output verbatim; multiple formats share a base path with one
// file per format extension.
func artifactPath(output, input, format string, total int) string {
	if output != "" && total == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input paths.
// An empty output falls back to the input name without its extension, or
// "plate" for the built-in default design. A known format extension on
// output is stripped so multiple formats line up next to each other.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "plate"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
