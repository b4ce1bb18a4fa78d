// Command folio converts office documents to paginated PDF files.
//
// Usage:
//
//	folio report.docx
//	folio -o slides.pdf --font fonts/NotoSans-Regular.ttf deck.pptx
//	folio --page-width 595 --page-height 842 --margin 57 numbers.xlsx
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/model"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	output     string
	font       string
	pageWidth  float64
	pageHeight float64
	margin     float64
	quality    int
	verbose    bool
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "folio <input>",
		Short: "Convert XLSX, PPTX, DOCX and RTF documents to PDF",
		Long: `Folio renders an office document as a paginated PDF. The input
format is taken from the file extension, or sniffed from the content
when the extension gives nothing away.

Warnings about degraded units (a skipped slide, an unusable image)
are printed to standard error; they do not fail the conversion.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .pdf)")
	fl.StringVar(&opts.font, "font", "", "TrueType font to embed for all text")
	fl.Float64Var(&opts.pageWidth, "page-width", 0, "page width in points (default per input format)")
	fl.Float64Var(&opts.pageHeight, "page-height", 0, "page height in points (default per input format)")
	fl.Float64Var(&opts.margin, "margin", 0, "page margin in points (default per input format)")
	fl.IntVarP(&opts.quality, "quality", "q", 0, "JPEG quality 1-100 for re-encoded images (0 keeps images lossless)")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "log conversion progress to standard error")
	return cmd
}

func run(cmd *cobra.Command, input string, opts options) error {
	if opts.verbose {
		folio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	conv := folio.Open(input)
	if opts.font != "" {
		conv = conv.FontFile(opts.font)
	}
	if opts.quality != 0 {
		conv = conv.Quality(opts.quality)
	}
	if g, ok := geometryOverride(cmd, input, opts); ok {
		conv = conv.Geometry(g)
	}

	pdf, warnings, err := conv.PDF()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Unit, w.Message)
	}

	out := outputPath(input, opts.output)
	if out == input {
		return fmt.Errorf("output %s would overwrite the input", out)
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	folio.Logger().Debug("conversion complete", "output", out, "bytes", len(pdf))
	return nil
}

// geometryOverride builds a page geometry when any of the page flags
// were set, starting from the format's conventional sheet so the
// untouched dimensions keep their defaults.
func geometryOverride(cmd *cobra.Command, input string, opts options) (model.PageGeometry, bool) {
	fl := cmd.Flags()
	if !fl.Changed("page-width") && !fl.Changed("page-height") && !fl.Changed("margin") {
		return model.PageGeometry{}, false
	}

	g := folio.DefaultGeometry(format.Detect(input))
	if fl.Changed("page-width") {
		g.Width = opts.pageWidth
	}
	if fl.Changed("page-height") {
		g.Height = opts.pageHeight
	}
	if fl.Changed("margin") {
		g.Margin = opts.margin
	}
	return g, true
}

// outputPath picks the destination file: the -o value when given,
// otherwise the input name with its extension swapped for .pdf.
func outputPath(input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}
