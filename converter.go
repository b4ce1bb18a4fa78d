package folio

import (
	"fmt"
	"os"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/docx"
	"github.com/tsawler/folio/font"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/internal/logging"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/pptx"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/rtf"
	"github.com/tsawler/folio/xlsx"
)

// Converter provides a fluent interface for converting a document to PDF.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source
	filename string
	data     []byte
	format   format.Format

	// Configuration
	geo      *model.PageGeometry // nil selects the per-format default
	fontPath string
	fontTTF  []byte
	quality  int

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter so each chain method returns a
// new instance.
func (c *Converter) clone() *Converter {
	nc := *c
	if c.geo != nil {
		g := *c.geo
		nc.geo = &g
	}
	return &nc
}

// PDF runs the conversion and returns the rendered document. This is a
// terminal operation.
//
// Returns the PDF bytes, any warnings encountered during processing,
// and an error if conversion failed. Warnings indicate non-fatal issues
// (a skipped slide, an unresolvable image) where conversion succeeded
// but single units degraded.
//
// Example:
//
//	pdf, warnings, err := folio.Open("numbers.xlsx").PDF()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
func (c *Converter) PDF() ([]byte, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	data, f, err := c.source()
	if err != nil {
		return nil, nil, err
	}

	geo := c.pageGeometry(f)
	if err := geo.Validate(); err != nil {
		return nil, nil, fmt.Errorf("folio: %w", err)
	}

	blocks, meta, units, err := build(data, f)
	if err != nil {
		return nil, warningsOf(units), err
	}
	logging.Get().Debug("document parsed", "format", f.String(), "blocks", len(blocks))

	ref, fontErr := font.Resolve(c.fontPath, c.fontTTF)
	if fontErr != nil {
		logging.Get().Warn("font fallback", "error", fontErr)
		units = append(units, model.UnitError{Unit: "font", Err: fontErr})
	}

	engine := layout.NewEngine(geo, ref, layout.DefaultConfig())
	pages, layoutUnits := engine.Layout(blocks)
	units = append(units, layoutUnits...)

	out, err := render.Document(geo, pages, ref, meta, c.quality)
	if err != nil {
		return nil, warningsOf(units), err
	}
	return out, warningsOf(units), nil
}

// source yields the document bytes and their format, reading the file
// and sniffing content as needed.
func (c *Converter) source() ([]byte, format.Format, error) {
	data := c.data
	if data == nil {
		if c.filename == "" {
			return nil, format.Unknown, fmt.Errorf("folio: no input specified")
		}
		b, err := os.ReadFile(c.filename)
		if err != nil {
			return nil, format.Unknown, fmt.Errorf("folio: %w", err)
		}
		data = b
	}

	f := c.format
	if f == format.Unknown {
		f = format.DetectFromBytes(data)
	}
	if f == format.Unknown {
		return nil, f, fmt.Errorf("folio: %w", format.ErrUnknown)
	}
	return data, f, nil
}

// build dispatches to the format's block builder. Zip-based formats
// share the container open and the docProps metadata read; rich text
// works directly on the bytes.
func build(data []byte, f format.Format) ([]model.Block, model.Metadata, []model.UnitError, error) {
	if f == format.RTF {
		blocks, units, err := rtf.Build(data)
		return blocks, model.Metadata{}, units, err
	}

	arc, err := container.Open(data)
	if err != nil {
		return nil, model.Metadata{}, nil, err
	}
	meta := readMetadata(arc)

	var (
		blocks []model.Block
		units  []model.UnitError
	)
	switch f {
	case format.XLSX:
		blocks, units, err = xlsx.Build(arc, xlsx.BuildSharedStrings(arc))
	case format.PPTX:
		blocks, units, err = pptx.Build(arc)
	case format.DOCX:
		blocks, units, err = docx.Build(arc)
	default:
		return nil, meta, nil, fmt.Errorf("folio: %w", format.ErrUnknown)
	}
	return blocks, meta, units, err
}
