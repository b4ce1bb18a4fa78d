package layout

import (
	"github.com/tsawler/folio/font"
	"github.com/tsawler/folio/model"
)

// CommandKind identifies the concrete type of a draw command.
type CommandKind int

const (
	KindText CommandKind = iota
	KindTextBox
	KindImage
)

func (k CommandKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindTextBox:
		return "TextBox"
	case KindImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Command is one drawing instruction for the renderer. The set of
// implementations is closed: Text, TextBox and ImageCmd.
type Command interface {
	Kind() CommandKind
}

// Text draws a single pre-wrapped line at a baseline position.
type Text struct {
	X, Y  float64 // baseline origin in points
	S     string
	Size  float64
	Font  font.Ref
	Color *model.Color // nil draws in the default black
}

func (t *Text) Kind() CommandKind { return KindText }

// TextBox draws text wrapped by the renderer inside a rectangle.
type TextBox struct {
	Rect model.Rect
	S    string
	Size float64
	Font font.Ref
}

func (t *TextBox) Kind() CommandKind { return KindTextBox }

// ImageCmd places image bytes into a rectangle. Scaling decisions were
// already made; the rectangle is final.
type ImageCmd struct {
	Rect model.Rect
	Data []byte
}

func (i *ImageCmd) Kind() CommandKind { return KindImage }

// Page holds the draw commands of one output page, in emission order.
type Page struct {
	Commands []Command
}
