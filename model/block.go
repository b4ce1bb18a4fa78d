package model

import "strings"

// BlockKind represents the type of a content block
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindParagraph
	KindTable
	KindImage
	KindShape
	KindPageBreak
)

func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindTable:
		return "Table"
	case KindImage:
		return "Image"
	case KindShape:
		return "Shape"
	case KindPageBreak:
		return "PageBreak"
	default:
		return "Unknown"
	}
}

// Block is the interface for all content blocks. Builders emit blocks in
// document order; the layout engine consumes them in the same order.
type Block interface {
	Kind() BlockKind
}

// Run is a span of text with uniform styling inside a paragraph.
type Run struct {
	Text    string
	Bold    bool
	Heading bool
}

// Paragraph represents a flowed paragraph of text
type Paragraph struct {
	Runs  []Run
	Style string // source style name ("Title", "Heading1", ...), empty for body text
}

func (p *Paragraph) Kind() BlockKind { return KindParagraph }

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Heading reports whether any run in the paragraph is marked as a heading.
func (p *Paragraph) Heading() bool {
	for _, r := range p.Runs {
		if r.Heading {
			return true
		}
	}
	return false
}

// Row is a single table row of plain-text cells.
type Row struct {
	Cells []string
}

// IsEmpty reports whether every cell is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Table represents a grid of rows. SizeToContent selects content-sampled
// column widths during layout; otherwise the available width is divided
// evenly by the column count.
type Table struct {
	Rows          []Row
	SizeToContent bool
}

func (t *Table) Kind() BlockKind { return KindTable }

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	max := 0
	for _, r := range t.Rows {
		if len(r.Cells) > max {
			max = len(r.Cells)
		}
	}
	return max
}

// Image represents an embedded image. Width and height are the source
// dimensions in EMUs; the layout engine converts and scales them.
type Image struct {
	Data      []byte
	WidthEMU  int64
	HeightEMU int64
}

func (i *Image) Kind() BlockKind { return KindImage }

// ShapeKind distinguishes the content a shape carries.
type ShapeKind int

const (
	ShapePicture ShapeKind = iota
	ShapeTextBox
)

func (sk ShapeKind) String() string {
	switch sk {
	case ShapePicture:
		return "Picture"
	case ShapeTextBox:
		return "TextBox"
	default:
		return "Unknown"
	}
}

// Transform is a shape's explicit placement on its slide, in EMUs.
type Transform struct {
	XEMU      int64
	YEMU      int64
	WidthEMU  int64
	HeightEMU int64
}

// Shape represents positioned slide content: a picture or a text box. Off is
// nil when the source carries no explicit transform, in which case the shape
// flows like ordinary content.
type Shape struct {
	ShapeKind ShapeKind
	Image     *Image // set when ShapeKind == ShapePicture
	Runs      []Run  // set when ShapeKind == ShapeTextBox
	Off       *Transform
}

func (s *Shape) Kind() BlockKind { return KindShape }

// Text returns the concatenated run text of a text-box shape.
func (s *Shape) Text() string {
	var sb strings.Builder
	for _, r := range s.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// PageBreak forces the next block onto a fresh page. Builders emit one
// between structural units (worksheets, slides) and for explicit breaks.
type PageBreak struct{}

func (b *PageBreak) Kind() BlockKind { return KindPageBreak }

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}
