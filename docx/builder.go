// Package docx builds the content block sequence for Word documents.
//
// The document body is streamed with an xml.Decoder rather than
// unmarshalled in one shot: encoding/xml collects repeated children
// into per-type slices, which would lose the interleaving of
// paragraphs and tables. Decoding each body child as it is
// encountered preserves document order.
package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/internal/logging"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/resolver"
)

const documentPath = "word/document.xml"

// headingStyles maps lowercased built-in style IDs to the canonical
// style names the layout engine sizes by.
var headingStyles = map[string]string{
	"title":    "Title",
	"heading1": "Heading1",
	"heading2": "Heading2",
	"heading3": "Heading3",
	"heading4": "Heading4",
	"heading5": "Heading5",
	"heading6": "Heading6",
	"heading7": "Heading7",
	"heading8": "Heading8",
	"heading9": "Heading9",
}

// Build parses word/document.xml into an ordered block sequence.
// Paragraphs and tables appear in body order; inline drawings resolve
// to Image blocks through the document relationship map; explicit page
// breaks become PageBreak blocks. A unit that fails to parse or
// resolve is recorded as a UnitError and skipped. Build fails only
// when the archive yields no content at all.
func Build(arc *container.Archive) ([]model.Block, []model.UnitError, error) {
	data, err := arc.Read(documentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("docx: no document part: %w", model.ErrNoContent)
	}

	b := &builder{
		arc:  arc,
		rels: resolver.Relationships(arc, documentPath),
	}
	b.walkBody(data)

	if len(b.blocks) == 0 {
		return nil, b.errs, fmt.Errorf("docx: no content parsed: %w", model.ErrNoContent)
	}
	return b.blocks, b.errs, nil
}

type builder struct {
	arc    *container.Archive
	rels   resolver.Map
	blocks []model.Block
	errs   []model.UnitError
	pars   int
}

// walkBody streams the body's children, decoding each paragraph and
// table as it appears. A decoder failure ends the walk but keeps
// whatever parsed before it.
func (b *builder) walkBody(data []byte) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	inBody := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			b.errs = append(b.errs, model.UnitError{
				Unit: "body",
				Err:  fmt.Errorf("malformed document xml: %w", err),
			})
			logging.Get().Warn("docx: body walk aborted", "error", err)
			return
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				inBody = true
				continue
			}
			if !inBody {
				continue
			}
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := dec.DecodeElement(&p, &t); err != nil {
					b.unitErr(fmt.Sprintf("paragraph %d", b.pars+1), err)
					continue
				}
				b.paragraph(p)
			case "tbl":
				var tbl tableXML
				if err := dec.DecodeElement(&tbl, &t); err != nil {
					b.unitErr("table", err)
					continue
				}
				b.table(tbl)
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return
			}
		}
	}
}

// paragraph converts one <w:p> into blocks. Text accumulates into a
// Paragraph; a page-type break flushes the accumulated text and emits
// a PageBreak; an inline drawing flushes and emits an Image. A w:p
// that produced nothing else still yields one empty Paragraph so
// blank lines survive.
func (b *builder) paragraph(p paragraphXML) {
	b.pars++
	style, heading := normalizeStyle(p.Properties.Style.Val)

	cur := model.Paragraph{Style: style}
	emitted := false

	flush := func() {
		if len(cur.Runs) == 0 {
			return
		}
		seg := cur
		b.blocks = append(b.blocks, &seg)
		cur = model.Paragraph{Style: style}
		emitted = true
	}

	handleRun := func(run runXML) {
		if text := runText(run); text != "" {
			cur.Runs = append(cur.Runs, model.Run{
				Text:    text,
				Bold:    boolVal(run.Properties.Bold),
				Heading: heading,
			})
		}
		for _, d := range run.Drawings {
			if img := b.resolveImage(d); img != nil {
				flush()
				b.blocks = append(b.blocks, img)
				emitted = true
			}
		}
		if hasPageBreak(run) {
			flush()
			b.blocks = append(b.blocks, &model.PageBreak{})
			emitted = true
		}
	}

	for _, run := range p.Runs {
		handleRun(run)
	}
	for _, link := range p.Hyperlinks {
		for _, run := range link.Runs {
			handleRun(run)
		}
	}

	flush()
	if !emitted {
		b.blocks = append(b.blocks, &cur)
	}
}

// table converts one <w:tbl> into a Table block. Cell text joins the
// cell's paragraphs with newlines; column widths are left for the
// layout engine to divide evenly.
func (b *builder) table(t tableXML) {
	var tb model.Table
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			parts := make([]string, 0, len(cell.Paragraphs))
			for _, p := range cell.Paragraphs {
				parts = append(parts, paragraphText(p))
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		tb.Rows = append(tb.Rows, model.Row{Cells: cells})
	}
	if len(tb.Rows) == 0 {
		return
	}
	b.blocks = append(b.blocks, &tb)
}

// resolveImage turns a drawing into an Image block, reading the
// embedded bytes through the relationship map. Drawings without a
// picture payload (charts, shapes) are skipped silently; a picture
// that cannot be resolved or has no usable extent degrades to a
// UnitError.
func (b *builder) resolveImage(d drawingXML) *model.Image {
	pic := d.Inline
	if pic == nil {
		pic = d.Anchor
	}
	if pic == nil || pic.Blip == nil || pic.Blip.Embed == "" {
		return nil
	}
	id := pic.Blip.Embed

	target, ok := b.rels[id]
	if !ok {
		b.unitErr("drawing "+id, fmt.Errorf("unresolved image relationship %q", id))
		return nil
	}
	data, err := b.arc.Read(target)
	if err != nil {
		b.unitErr("drawing "+id, fmt.Errorf("reading %s: %w", target, err))
		return nil
	}

	cx, errX := strconv.ParseInt(pic.Extent.CX, 10, 64)
	cy, errY := strconv.ParseInt(pic.Extent.CY, 10, 64)
	if errX != nil || errY != nil || cx <= 0 || cy <= 0 {
		b.unitErr("drawing "+id, fmt.Errorf("unusable extent %q x %q", pic.Extent.CX, pic.Extent.CY))
		return nil
	}

	return &model.Image{Data: data, WidthEMU: cx, HeightEMU: cy}
}

func (b *builder) unitErr(unit string, err error) {
	b.errs = append(b.errs, model.UnitError{Unit: unit, Err: err})
	logging.Get().Warn("docx: unit degraded", "unit", unit, "error", err)
}

// runText extracts the text of one run. Text nodes come first, then
// tabs, then line breaks; page breaks are handled at block level.
func runText(run runXML) string {
	var parts []string
	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}
	for range run.Tabs {
		parts = append(parts, "\t")
	}
	for _, br := range run.Breaks {
		if br.Type != "page" {
			parts = append(parts, "\n")
		}
	}
	return strings.Join(parts, "")
}

func hasPageBreak(run runXML) bool {
	for _, br := range run.Breaks {
		if br.Type == "page" {
			return true
		}
	}
	return false
}

// paragraphText flattens a paragraph to plain text, for table cells.
func paragraphText(p paragraphXML) string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(runText(run))
	}
	for _, link := range p.Hyperlinks {
		for _, run := range link.Runs {
			sb.WriteString(runText(run))
		}
	}
	return sb.String()
}

// boolVal reports whether an OOXML boolean property is on. Presence
// of the element means true unless w:val disables it.
func boolVal(v boolXML) bool {
	if v.XMLName.Local == "" {
		return false
	}
	return v.Val != "false" && v.Val != "0"
}

// normalizeStyle maps built-in heading style IDs to their canonical
// names, case-insensitively. Other style IDs pass through unchanged.
func normalizeStyle(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if canon, ok := headingStyles[strings.ToLower(id)]; ok {
		return canon, true
	}
	return id, false
}
