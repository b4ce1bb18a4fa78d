package layout

import (
	"strings"

	"github.com/tsawler/folio/font"
	"github.com/tsawler/folio/model"
)

// table lays out rows at a fixed height. Rows are atomic: the cursor
// reserves a whole row before any of its cells is placed, so a row
// never straddles a page boundary.
func (e *Engine) table(c *cursor, t *model.Table) {
	cols := t.ColumnCount()
	if cols == 0 || len(t.Rows) == 0 {
		return
	}
	widths := e.columnWidths(t, cols)

	rowH := e.cfg.RowHeight
	pad := e.cfg.CellPadding
	for _, row := range t.Rows {
		c.ensure(rowH)
		x := e.geo.Margin
		for i, cell := range row.Cells {
			w := widths[i] - 2*pad
			if cell != "" && w >= 1 {
				c.emit(&TextBox{
					Rect: model.NewRect(x+pad, c.y+pad, w, rowH-2*pad),
					S:    cell,
					Size: e.cfg.TableFontSize,
					Font: e.ref,
				})
			}
			x += widths[i]
		}
		c.y += rowH
	}
}

// columnWidths sizes the table's columns once. Fixed-layout tables
// divide the text column evenly. Content-sized tables sample a
// bounded prefix of rows, size each column to its widest sampled
// cell within the configured clamp, then scale everything down
// proportionally if the total would overrun the text column.
func (e *Engine) columnWidths(t *model.Table, cols int) []float64 {
	avail := e.geo.TextWidth()
	widths := make([]float64, cols)

	if !t.SizeToContent {
		even := avail / float64(cols)
		for i := range widths {
			widths[i] = even
		}
		return widths
	}

	sample := t.Rows
	if len(sample) > e.cfg.SampleRows {
		sample = sample[:e.cfg.SampleRows]
	}
	for i := range widths {
		widths[i] = e.cfg.MinColWidth
	}
	for _, row := range sample {
		for i, cell := range row.Cells {
			if w := e.cellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0.0
	for i := range widths {
		if widths[i] > e.cfg.MaxColWidth {
			widths[i] = e.cfg.MaxColWidth
		}
		total += widths[i]
	}
	if total > avail {
		scale := avail / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

// cellWidth estimates the rendered width of a cell, taking the widest
// line of multi-line content.
func (e *Engine) cellWidth(cell string) float64 {
	max := 0.0
	for _, line := range strings.Split(cell, "\n") {
		if w := font.StringWidth(line, e.cfg.TableFontSize); w > max {
			max = w
		}
	}
	return max + 2*e.cfg.CellPadding
}
