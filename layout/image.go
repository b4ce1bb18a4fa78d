package layout

import (
	"fmt"

	"github.com/tsawler/folio/model"
)

// image places one picture. A positioned image keeps its slide
// transform, clamped to the page. A flowed image is scaled down at
// most twice (first to the text column width, then to the usable page
// height) and centered in the text column. Both scale-downs are
// uniform, so the aspect ratio never changes.
func (e *Engine) image(c *cursor, img *model.Image, off *model.Transform) error {
	if len(img.Data) == 0 {
		return fmt.Errorf("image has no data")
	}

	if off != nil {
		rect := clampRect(model.Rect{
			X:      model.EMUToPoints(off.XEMU),
			Y:      model.EMUToPoints(off.YEMU),
			Width:  model.EMUToPoints(off.WidthEMU),
			Height: model.EMUToPoints(off.HeightEMU),
		}, e.geo.Width, e.geo.Height)
		if rect.Width <= 0 || rect.Height <= 0 {
			return fmt.Errorf("image transform lies outside the page")
		}
		c.emit(&ImageCmd{Rect: rect, Data: img.Data})
		return nil
	}

	w := model.EMUToPoints(img.WidthEMU)
	h := model.EMUToPoints(img.HeightEMU)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("image has no usable dimensions (%d x %d EMU)", img.WidthEMU, img.HeightEMU)
	}

	if avail := e.geo.TextWidth(); w > avail {
		scale := avail / w
		w = avail
		h *= scale
	}
	if usable := e.geo.UsableHeight(); h > usable {
		scale := usable / h
		h = usable
		w *= scale
	}

	c.ensure(h)
	x := e.geo.Margin + (e.geo.TextWidth()-w)/2
	c.emit(&ImageCmd{Rect: model.NewRect(x, c.y, w, h), Data: img.Data})
	c.y += h
	return nil
}
