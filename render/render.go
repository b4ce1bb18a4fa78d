// Package render turns laid-out pages into PDF bytes through gofpdf.
// It draws exactly what the layout engine decided and makes no layout
// decisions of its own.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/folio/font"
	"github.com/tsawler/folio/internal/logging"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// Document renders pages onto a PDF surface of the given geometry and
// returns the finished document. The font ref selects between a TTF
// registered from bytes and the built-in base font; quality is the
// JPEG re-encode quality consulted when an image needs transcoding.
// A nil or empty page list still produces a single blank page.
func Document(geo model.PageGeometry, pages []layout.Page, ref font.Ref, info model.Metadata, quality int) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)

	tr := translator(pdf, ref)
	setInfo(pdf, info)

	d := &drawer{pdf: pdf, tr: tr, quality: quality}
	if len(pages) == 0 {
		pdf.AddPage()
	}
	for _, page := range pages {
		pdf.AddPage()
		for _, cmd := range page.Commands {
			d.command(cmd)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// translator registers the embedded TTF when one is staged and returns
// the text mapping for the active font. The base font covers cp1252
// only, so its translator folds what it can and drops the rest.
func translator(pdf *gofpdf.Fpdf, ref font.Ref) func(string) string {
	if !ref.IsBase() {
		pdf.AddUTF8FontFromBytes(ref.Family, "", ref.TTF)
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func setInfo(pdf *gofpdf.Fpdf, info model.Metadata) {
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Subject != "" {
		pdf.SetSubject(info.Subject, true)
	}
	if info.Creator != "" {
		pdf.SetCreator(info.Creator, true)
	}
}

// drawer holds per-document draw state: the translator, the image
// counter for unique resource names, and the transcode quality.
type drawer struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	quality int
	images  int
}

func (d *drawer) command(cmd layout.Command) {
	switch c := cmd.(type) {
	case *layout.Text:
		d.text(c)
	case *layout.TextBox:
		d.textBox(c)
	case *layout.ImageCmd:
		d.image(c)
	}
}

func (d *drawer) text(c *layout.Text) {
	d.pdf.SetFont(c.Font.Family, "", c.Size)
	if c.Color != nil {
		d.pdf.SetTextColor(int(c.Color.R), int(c.Color.G), int(c.Color.B))
	} else {
		d.pdf.SetTextColor(0, 0, 0)
	}
	d.pdf.Text(c.X, c.Y, d.tr(c.S))
}

func (d *drawer) textBox(c *layout.TextBox) {
	d.pdf.SetFont(c.Font.Family, "", c.Size)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetXY(c.Rect.X, c.Rect.Y)
	d.pdf.MultiCell(c.Rect.Width, c.Size+2, d.tr(c.S), "", "L", false)
}

// image registers the picture bytes under a fresh name and places
// them. A picture gofpdf cannot take is normalized first; one that
// cannot be decoded at all degrades to an inline note so the rest of
// the document still renders.
func (d *drawer) image(c *layout.ImageCmd) {
	typ, data, err := normalize(c.Data, d.quality)
	if err != nil {
		logging.Get().Warn("dropping image", "error", err)
		d.note(c.Rect, fmt.Sprintf("Error: %v", err))
		return
	}

	d.images++
	name := fmt.Sprintf("img%d", d.images)
	opt := gofpdf.ImageOptions{ImageType: typ}
	d.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(data))
	if d.pdf.Err() {
		logging.Get().Warn("dropping image", "error", d.pdf.Error())
		d.pdf.ClearError()
		d.note(c.Rect, "Error: unusable image")
		return
	}
	d.pdf.ImageOptions(name, c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, false, opt, 0, "")
}

// note draws the red inline marker used when a drawable degrades.
func (d *drawer) note(r model.Rect, msg string) {
	const size = 9
	d.pdf.SetFont(font.Base, "", size)
	d.pdf.SetTextColor(220, 0, 0)
	d.pdf.Text(r.X, r.Y+size, d.tr(msg))
}
