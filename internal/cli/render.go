package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/radialstack/internal/config"
	"github.com/matzehuels/radialstack/pkg/pipeline"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
)

// stdoutPath selects standard output for a single-format render.
const stdoutPath = "-"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [table]",
		Short: "Render a table as a radial stacked chart",
		Long: `Render a table as a radial stacked chart.

The table is a CSV, JSON or Parquet file with a segment, a layer and a value
column. Columns are taken by position unless named with --segment, --layer
and --value. Each segment becomes a slice of the chart and each layer a ring
band whose thickness is the segment's running total.

SVG output is animated unless --static is given; PNG and PDF show the final
frame. With several formats, files are written next to --output (or the
input) with the format as extension.`,
		Example: `  radialstack render sales.csv
  radialstack render sales.csv -f svg,png --width 600 --height 600
  radialstack render sales.parquet --segment month --layer region --value count -o chart.svg
  radialstack render sales.json --palette brand.toml --static -o - | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg)
		},
	}

	addChartFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringP("format", "f", pipeline.FormatSVG, "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().Bool("static", false, "draw the final frame without animations")
	cmd.Flags().Float64("scale", pipeline.DefaultScale, "PNG pixel scale")
	cmd.Flags().String("id-prefix", "", "prefix for SVG element ids")
	cmd.Flags().Bool("no-cache", false, "disable the artifact cache")

	return cmd
}

// addChartFlags registers the flags shared by every command that reads a
// table and lays out a chart.
func addChartFlags(fs *pflag.FlagSet) {
	d := styles.Defaults()
	fs.Float64("width", pipeline.DefaultWidth, "viewport width")
	fs.Float64("height", pipeline.DefaultHeight, "viewport height")
	fs.String("segment", "", "column holding segments (default: first column)")
	fs.String("layer", "", "column holding layers (default: second column)")
	fs.String("value", "", "column holding values (default: third column)")
	fs.String("palette", "", "palette file (TOML) with host colors and a color scheme")
	fs.String("font-family", d.FontFamily, "font family")
	fs.Float64("layer-font-size", d.LayerFontSize, "layer label font size")
	fs.Float64("legend-font-size", d.LegendFontSize, "legend and segment label font size")
}

// chartInput is a loaded table with its palette.
type chartInput struct {
	table   table.Table
	palette palette.File
}

// loadInput reads the table and the optional palette file named by cfg.
func loadInput(path string, cfg *config.Config) (chartInput, error) {
	tbl, err := table.Load(path, cfg.Bindings())
	if err != nil {
		return chartInput{}, fmt.Errorf("load table %s: %w", path, err)
	}
	in := chartInput{table: tbl}
	if cfg.Palette != "" {
		if in.palette, err = palette.LoadTOML(cfg.Palette); err != nil {
			return chartInput{}, fmt.Errorf("load palette %s: %w", cfg.Palette, err)
		}
	}
	return in, nil
}

// runRender loads the table, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, cfg *config.Config) error {
	opts := cfg.PipelineOptions()
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if cfg.Output == stdoutPath && len(opts.Formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(opts.Formats))
	}

	in, err := loadInput(input, cfg)
	if err != nil {
		return err
	}
	opts.Ordinal = in.palette.Options()
	opts.Logger = c.Logger

	runner, err := c.newRunner(cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spinner *Spinner
	if hasRaster(opts.Formats) && cfg.Output != stdoutPath {
		spinner = newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, in.table, in.palette.Colors, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Rendered chart")

	out := newPrinter(c.out)
	if cfg.Output == stdoutPath {
		format := opts.Formats[0]
		if result.Skipped {
			format = pipeline.FormatSVG
		}
		_, err := c.out.Write(result.Artifacts[format])
		return err
	}

	paths, err := writeArtifacts(result, opts.Formats, input, cfg.Output)
	if err != nil {
		return err
	}

	if result.Skipped {
		out.warning("Nothing to draw: %s", result.SkipReason)
	} else {
		out.success("Chart rendered")
	}
	for _, p := range paths {
		out.file(p.path, humanize.Bytes(uint64(p.size)))
	}
	if !result.Skipped {
		out.stats(result.Stats.SegmentCount, result.Stats.LayerCount, result.Stats.CacheHits, len(result.Artifacts))
		out.newline()
		out.nextStep("Browse segments", "radialstack inspect "+input)
	}
	return nil
}

func hasRaster(formats []string) bool {
	return slices.Contains(formats, pipeline.FormatPNG) || slices.Contains(formats, pipeline.FormatPDF)
}

type writtenFile struct {
	path string
	size int
}

// writeArtifacts writes each artifact of result to disk. A skipped result
// only has an empty SVG.
func writeArtifacts(result *pipeline.Result, formats []string, input, output string) ([]writtenFile, error) {
	if result.Skipped {
		formats = []string{pipeline.FormatSVG}
	}
	base := basePath(output, input)

	var written []writtenFile
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(formats) == 1 && output != "" && !result.Skipped {
			path = output
		}
		if err := writeFile(path, data); err != nil {
			return written, err
		}
		written = append(written, writtenFile{path: path, size: len(data)})
	}
	return written, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
