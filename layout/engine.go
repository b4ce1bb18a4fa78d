package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/font"
	"github.com/tsawler/folio/model"
)

// markerColor is the red used for inline error notices.
var markerColor = model.Color{R: 220, G: 0, B: 0}

// Engine lays out block sequences for one page geometry and font.
// An Engine is stateless across calls; the cursor lives per Layout
// call, so one Engine may serve sequential conversions.
type Engine struct {
	geo model.PageGeometry
	ref font.Ref
	cfg Config
}

// NewEngine returns an engine for the given geometry, which the caller
// has validated, and font reference.
func NewEngine(geo model.PageGeometry, ref font.Ref, cfg Config) *Engine {
	return &Engine{geo: geo, ref: ref, cfg: cfg}
}

// Layout places every block and returns the resulting pages, at least
// one even for empty input. A block that fails to lay out is replaced
// by a red inline error notice and reported; layout always continues
// with the next block.
func (e *Engine) Layout(blocks []model.Block) ([]Page, []model.UnitError) {
	c := newCursor(e.geo)

	var units []model.UnitError
	for i, b := range blocks {
		if err := e.layoutBlock(c, b); err != nil {
			units = append(units, model.UnitError{
				Unit: fmt.Sprintf("block %d", i+1),
				Err:  err,
			})
			e.errorMarker(c, err)
		}
	}
	return c.pages, units
}

// layoutBlock dispatches one block, converting a panic into an error
// so a single bad block cannot abort the conversion.
func (e *Engine) layoutBlock(c *cursor, b model.Block) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout panic: %v", r)
		}
	}()

	switch blk := b.(type) {
	case *model.Paragraph:
		e.paragraph(c, blk)
		return nil
	case *model.Table:
		e.table(c, blk)
		return nil
	case *model.Image:
		return e.image(c, blk, nil)
	case *model.Shape:
		return e.shape(c, blk)
	case *model.PageBreak:
		c.breakPage()
		return nil
	default:
		return fmt.Errorf("unknown block kind %v", b.Kind())
	}
}

// paragraph emits wrapped baseline text, advancing the cursor line by
// line. Blank segments still advance so empty paragraphs and blank
// lines keep their vertical space.
func (e *Engine) paragraph(c *cursor, p *model.Paragraph) {
	size := e.sizeFor(p)
	lineH := size * e.cfg.LineSpacing

	for _, seg := range strings.Split(p.Text(), "\n") {
		if strings.TrimSpace(seg) == "" {
			c.ensure(lineH)
			c.y += lineH
			continue
		}
		for _, line := range wrap(seg, size, e.geo.TextWidth()) {
			c.ensure(lineH)
			c.emit(&Text{
				X:    e.geo.Margin,
				Y:    c.y + size,
				S:    line,
				Size: size,
				Font: e.ref,
			})
			c.y += lineH
		}
	}
}

// sizeFor picks a paragraph's font size. A styled paragraph takes its
// size from the style table; unstyled heading runs, such as slide
// titles, take HeadingSize.
func (e *Engine) sizeFor(p *model.Paragraph) float64 {
	if p.Style != "" {
		if s, ok := e.cfg.StyleSizes[p.Style]; ok {
			return s
		}
		return e.cfg.BodySize
	}
	if p.Heading() {
		return e.cfg.HeadingSize
	}
	return e.cfg.BodySize
}

// shape places positioned slide content. A shape without a transform
// flows like ordinary content.
func (e *Engine) shape(c *cursor, s *model.Shape) error {
	switch s.ShapeKind {
	case model.ShapePicture:
		if s.Image == nil {
			return nil
		}
		return e.image(c, s.Image, s.Off)
	case model.ShapeTextBox:
		text := s.Text()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if s.Off == nil {
			e.paragraph(c, &model.Paragraph{Runs: s.Runs})
			return nil
		}

		size := e.cfg.BodySize
		if (&model.Paragraph{Runs: s.Runs}).Heading() {
			size = e.cfg.HeadingSize
		}
		rect := clampRect(model.Rect{
			X:      model.EMUToPoints(s.Off.XEMU),
			Y:      model.EMUToPoints(s.Off.YEMU),
			Width:  model.EMUToPoints(s.Off.WidthEMU),
			Height: model.EMUToPoints(s.Off.HeightEMU),
		}, e.geo.Width, e.geo.Height)
		if rect.Width <= 0 || rect.Height <= 0 {
			return fmt.Errorf("text box transform lies outside the page")
		}
		c.emit(&TextBox{Rect: rect, S: text, Size: size, Font: e.ref})
		return nil
	default:
		return fmt.Errorf("unknown shape kind %v", s.ShapeKind)
	}
}

// errorMarker draws a red inline notice at the cursor so a degraded
// block stays visible in the output.
func (e *Engine) errorMarker(c *cursor, err error) {
	size := e.cfg.BodySize
	lineH := size * e.cfg.LineSpacing
	c.ensure(lineH)
	color := markerColor
	c.emit(&Text{
		X:     e.geo.Margin,
		Y:     c.y + size,
		S:     "Error: " + err.Error(),
		Size:  size,
		Font:  e.ref,
		Color: &color,
	})
	c.y += lineH
}

// cursor tracks the page list and the vertical write position on the
// current page. It is threaded explicitly through the layout methods
// and never shared across conversions.
type cursor struct {
	geo   model.PageGeometry
	pages []Page
	y     float64
}

func newCursor(geo model.PageGeometry) *cursor {
	return &cursor{
		geo:   geo,
		pages: []Page{{}},
		y:     geo.Margin,
	}
}

func (c *cursor) page() *Page {
	return &c.pages[len(c.pages)-1]
}

func (c *cursor) emit(cmd Command) {
	p := c.page()
	p.Commands = append(p.Commands, cmd)
}

// ensure makes room for a unit of height h: when it does not fit the
// remaining space, a new page starts, unless the cursor already sits
// at the top, where breaking cannot gain space. The oversized unit is
// then emitted regardless.
func (c *cursor) ensure(h float64) {
	if c.y+h <= c.geo.Height-c.geo.Margin {
		return
	}
	if c.y > c.geo.Margin {
		c.pages = append(c.pages, Page{})
		c.y = c.geo.Margin
	}
}

// breakPage starts a fresh page unconditionally. Builders emit breaks
// only between units, so a break landing on an empty page reflects a
// genuinely blank page in the source.
func (c *cursor) breakPage() {
	c.pages = append(c.pages, Page{})
	c.y = c.geo.Margin
}

// clampRect confines a rectangle to the w x h surface, shrinking it as
// needed so no command draws outside the page.
func clampRect(r model.Rect, w, h float64) model.Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.X > w {
		r.X, r.Width = w, 0
	}
	if r.Y > h {
		r.Y, r.Height = h, 0
	}
	if r.Right() > w {
		r.Width = w - r.X
	}
	if r.Bottom() > h {
		r.Height = h - r.Y
	}
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}
