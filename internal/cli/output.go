package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ecsdump/pkg/annotate"
	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/export"
	"github.com/matzehuels/ecsdump/pkg/pipeline"
)

// outputFlags are shared by every command that renders a single graph.
type outputFlags struct {
	output   string  // output file, stdout when empty or "-"
	format   string  // dot, svg, png or pdf; inferred from output when empty
	theme    string  // color theme
	rawNames bool    // keep full type paths in labels
	scale    float64 // PNG scale factor
	noCache  bool    // skip the exported-image cache
	refresh  bool    // re-export even when cached
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: dot (default), svg, png, pdf")
	cmd.Flags().StringVar(&f.theme, "theme", pipeline.DefaultTheme, fmt.Sprintf("color theme: %v", annotate.ThemeNames()))
	cmd.Flags().BoolVar(&f.rawNames, "raw-names", false, "keep module paths in system and type names")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the exported-image cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-export even when a cached image exists")
}

// resolveFormat returns the explicit format, or the one the output path
// implies.
func (f *outputFlags) resolveFormat() (export.Format, error) {
	if f.format != "" {
		return export.ParseFormat(f.format)
	}
	if f.output == "" || f.output == "-" {
		return export.FormatDOT, nil
	}
	return export.FormatFromPath(f.output), nil
}

// apply copies the output flags onto opts.
func (f *outputFlags) apply(opts *pipeline.Options) error {
	format, err := f.resolveFormat()
	if err != nil {
		return err
	}
	opts.Formats = []string{string(format)}
	opts.Theme = f.theme
	opts.RawNames = f.rawNames
	opts.Scale = f.scale
	opts.Refresh = f.refresh
	return nil
}

// filterFlags select the systems to draw.
type filterFlags struct {
	prefixes string
	pattern  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prefixes, "system-prefix", "", "only draw systems whose name starts with one of these (comma-separated)")
	cmd.Flags().StringVar(&f.pattern, "system-match", "", "only draw systems whose name matches this regular expression")
}

func (f *filterFlags) apply(opts *pipeline.Options) {
	opts.SystemPrefixes = splitList(f.prefixes)
	opts.SystemPattern = f.pattern
}

// runGraph loads the manifest at path, renders the graph opts describes and
// writes it according to flags.
func (c *CLI) runGraph(ctx context.Context, path string, opts pipeline.Options, flags *outputFlags) error {
	if err := flags.apply(&opts); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	app, err := runner.Load(path)
	if err != nil {
		return err
	}
	return c.renderApp(ctx, runner, app, opts, flags.output)
}

// renderApp runs the pipeline on an already loaded app.
func (c *CLI) renderApp(ctx context.Context, runner *pipeline.Runner, app ecs.App, opts pipeline.Options, output string) error {
	format := opts.Formats[0]
	var spinner *Spinner
	if format != string(export.FormatDOT) && isTerminal(os.Stderr) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s graph as %s...", opts.Kind, format))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, app, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	return c.writeArtifact(output, result.Artifacts[format], format == string(export.FormatDOT))
}

// writeArtifact writes data to path, or to the command output when path is
// empty or "-". DOT gets a trailing newline.
func (c *CLI) writeArtifact(path string, data []byte, text bool) error {
	if path == "" || path == "-" {
		return writeTo(c.out, data, text)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeTo(f, data, text); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(path)
	return nil
}

func writeTo(w io.Writer, data []byte, text bool) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if text {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
