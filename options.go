package folio

import (
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/model"
)

// Geometry overrides the page size and margin, in points. Without it
// each format gets its conventional sheet; see DefaultGeometry.
//
// Example:
//
//	pdf, _, err := folio.Open("report.docx").
//	    Geometry(model.PageGeometry{Width: 595, Height: 842, Margin: 57}).
//	    PDF()
func (c *Converter) Geometry(g model.PageGeometry) *Converter {
	nc := c.clone()
	nc.geo = &g
	return nc
}

// FontFile sets a TTF file to embed for all text output. Without one
// the built-in base font is used, which covers only the Latin-1
// repertoire.
func (c *Converter) FontFile(path string) *Converter {
	nc := c.clone()
	nc.fontPath = path
	return nc
}

// FontBytes sets an in-memory TTF to embed for all text output. It
// takes precedence over FontFile.
func (c *Converter) FontBytes(ttf []byte) *Converter {
	nc := c.clone()
	nc.fontTTF = ttf
	return nc
}

// Quality sets the JPEG quality (1-100) used when an image has to be
// re-encoded during conversion. Values outside the range leave images
// losslessly encoded.
func (c *Converter) Quality(q int) *Converter {
	nc := c.clone()
	nc.quality = q
	return nc
}

// pageGeometry resolves the output sheet: an explicit override wins,
// otherwise the format picks its conventional size.
func (c *Converter) pageGeometry(f format.Format) model.PageGeometry {
	if c.geo != nil {
		return *c.geo
	}
	return DefaultGeometry(f)
}

// DefaultGeometry returns the page size and margin a format gets when
// no Geometry override is set: letter portrait for word-processor and
// rich-text input; a 720x540 slide surface for presentations; letter
// landscape for spreadsheets. Useful as a base when overriding only
// one dimension.
func DefaultGeometry(f format.Format) model.PageGeometry {
	switch f {
	case format.PPTX:
		return model.PageGeometry{Width: 720, Height: 540, Margin: 36}
	case format.XLSX:
		return model.PageGeometry{Width: 792, Height: 612, Margin: 36}
	default:
		return model.PageGeometry{Width: 612, Height: 792, Margin: 72}
	}
}
