// Package pptx builds the content block sequence for presentations.
//
// Slides carry two kinds of content: positioned shapes with an explicit
// a:xfrm transform, which become Shape blocks placed at their EMU
// coordinates, and unpositioned text, which flows sequentially like
// ordinary paragraphs. A shape near the top of the slide is treated as
// a title and marked as heading text.
package pptx

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/internal/logging"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/resolver"
)

const presentationPath = "ppt/presentation.xml"

// Standard 4:3 slide surface, used when presentation.xml is absent or
// carries no usable size.
const (
	defaultSlideCx int64 = 9144000
	defaultSlideCy int64 = 6858000
)

// slideRE matches slide part names and captures the slide number.
var slideRE = regexp.MustCompile(`^ppt/slides/slide([0-9]+)\.xml$`)

// Build parses every slide into blocks, with a page break between
// slides. An empty slide still claims a page. Slides that fail to read
// or parse are skipped and reported; the call fails only when not a
// single slide parses.
func Build(arc *container.Archive) ([]model.Block, []model.UnitError, error) {
	parts := slideParts(arc)
	if len(parts) == 0 {
		return nil, nil, fmt.Errorf("pptx: no slide parts: %w", model.ErrNoContent)
	}

	_, slideCy := slideSize(arc)

	var (
		blocks []model.Block
		units  []model.UnitError
		parsed int
	)
	for _, part := range parts {
		slideBlocks, slideUnits, err := buildSlide(arc, part, slideCy)
		units = append(units, slideUnits...)
		if err != nil {
			logging.Get().Warn("skipping slide", "part", part, "error", err)
			units = append(units, model.UnitError{Unit: part, Err: err})
			continue
		}
		if parsed > 0 {
			blocks = append(blocks, &model.PageBreak{})
		}
		parsed++
		blocks = append(blocks, slideBlocks...)
	}

	if parsed == 0 {
		return nil, units, fmt.Errorf("pptx: no slide parsed: %w", model.ErrNoContent)
	}
	return blocks, units, nil
}

// slideParts returns the slide part names ordered by the numeric index
// in the filename. Archive order is not meaningful: writers may store
// slide10.xml before slide2.xml.
func slideParts(arc *container.Archive) []string {
	type part struct {
		name string
		num  int
	}

	var parts []part
	for _, name := range arc.List() {
		m := slideRE.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, part{name: name, num: num})
	}

	sort.Slice(parts, func(i, j int) bool {
		if parts[i].num != parts[j].num {
			return parts[i].num < parts[j].num
		}
		return parts[i].name < parts[j].name
	})

	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.name
	}
	return names
}

// slideSize reads the deck's slide dimensions in EMUs.
func slideSize(arc *container.Archive) (int64, int64) {
	data, err := arc.Read(presentationPath)
	if err != nil {
		return defaultSlideCx, defaultSlideCy
	}
	var pres presentationXML
	if err := xml.Unmarshal(data, &pres); err != nil {
		logging.Get().Debug("pptx: unreadable presentation part", "error", err)
		return defaultSlideCx, defaultSlideCy
	}
	if pres.SldSz == nil || pres.SldSz.Cx <= 0 || pres.SldSz.Cy <= 0 {
		return defaultSlideCx, defaultSlideCy
	}
	return pres.SldSz.Cx, pres.SldSz.Cy
}

func buildSlide(arc *container.Archive, part string, slideCy int64) ([]model.Block, []model.UnitError, error) {
	data, err := arc.Read(part)
	if err != nil {
		return nil, nil, err
	}
	var sld slideXML
	if err := xml.Unmarshal(data, &sld); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling slide: %w", err)
	}

	s := &slideBuilder{
		arc:     arc,
		rels:    resolver.Relationships(arc, part),
		part:    part,
		slideCy: slideCy,
	}
	s.shapeTree(&sld.CSld.SpTree)
	return s.blocks, s.units, nil
}

type slideBuilder struct {
	arc     *container.Archive
	rels    resolver.Map
	part    string
	slideCy int64
	blocks  []model.Block
	units   []model.UnitError
}

func (s *slideBuilder) shapeTree(tree *spTreeXML) {
	for i := range tree.Sp {
		s.textShape(&tree.Sp[i])
	}
	for i := range tree.Pic {
		s.picture(&tree.Pic[i])
	}
	for i := range tree.GraphicFrame {
		if tbl := tree.GraphicFrame[i].Graphic.GraphicData.Tbl; tbl != nil {
			s.table(tbl)
		}
	}
	for i := range tree.GrpSp {
		s.group(&tree.GrpSp[i])
	}
}

func (s *slideBuilder) group(g *grpSpXML) {
	for i := range g.Sp {
		s.textShape(&g.Sp[i])
	}
	for i := range g.Pic {
		s.picture(&g.Pic[i])
	}
	for i := range g.GrpSp {
		s.group(&g.GrpSp[i])
	}
}

// textShape emits a positioned shape as a TextBox block, and an
// unpositioned one as sequential paragraphs.
func (s *slideBuilder) textShape(sp *spXML) {
	if sp.TxBody == nil || len(sp.TxBody.P) == 0 {
		return
	}
	heading := s.isHeading(sp)

	if sp.SpPr.Xfrm != nil {
		runs := bodyRuns(sp.TxBody, heading)
		if len(runs) == 0 {
			return
		}
		s.blocks = append(s.blocks, &model.Shape{
			ShapeKind: model.ShapeTextBox,
			Runs:      runs,
			Off:       transformOf(sp.SpPr.Xfrm),
		})
		return
	}

	for i := range sp.TxBody.P {
		runs := paragraphRuns(&sp.TxBody.P[i], heading)
		if len(runs) == 0 {
			continue
		}
		s.blocks = append(s.blocks, &model.Paragraph{Runs: runs})
	}
}

// isHeading reports whether a shape holds title text: an explicit
// title placeholder, or a positioned shape anchored in the top fifth
// of the slide.
func (s *slideBuilder) isHeading(sp *spXML) bool {
	if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
		if ph.Type == "title" || ph.Type == "ctrTitle" {
			return true
		}
	}
	if sp.SpPr.Xfrm != nil && s.slideCy > 0 {
		return sp.SpPr.Xfrm.Off.Y < s.slideCy/5
	}
	return false
}

// picture resolves the embedded image bytes through the slide's
// relationship map. A picture that cannot be resolved, or carries no
// transform to size it by, degrades to a UnitError.
func (s *slideBuilder) picture(pic *picXML) {
	id := pic.BlipFill.Blip.Embed
	if id == "" {
		return
	}

	target, ok := s.rels[id]
	if !ok {
		s.unitErr(fmt.Errorf("unresolved image relationship %q", id))
		return
	}
	data, err := s.arc.Read(target)
	if err != nil {
		s.unitErr(fmt.Errorf("reading image %s: %w", target, err))
		return
	}

	x := pic.SpPr.Xfrm
	if x == nil || x.Ext.Cx <= 0 || x.Ext.Cy <= 0 {
		s.unitErr(fmt.Errorf("picture %s has no usable transform", id))
		return
	}

	img := &model.Image{Data: data, WidthEMU: x.Ext.Cx, HeightEMU: x.Ext.Cy}
	s.blocks = append(s.blocks, &model.Shape{
		ShapeKind: model.ShapePicture,
		Image:     img,
		Off:       transformOf(x),
	})
}

func (s *slideBuilder) table(tbl *tblXML) {
	var tb model.Table
	for _, tr := range tbl.Tr {
		cells := make([]string, 0, len(tr.Tc))
		for _, tc := range tr.Tc {
			cells = append(cells, cellText(tc.TxBody))
		}
		tb.Rows = append(tb.Rows, model.Row{Cells: cells})
	}
	if len(tb.Rows) == 0 {
		return
	}
	s.blocks = append(s.blocks, &tb)
}

func (s *slideBuilder) unitErr(err error) {
	s.units = append(s.units, model.UnitError{Unit: s.part, Err: err})
	logging.Get().Warn("pptx: unit degraded", "part", s.part, "error", err)
}

// paragraphRuns flattens one paragraph's runs and field values.
func paragraphRuns(p *pXML, heading bool) []model.Run {
	var runs []model.Run
	for _, r := range p.R {
		if r.T == "" {
			continue
		}
		runs = append(runs, model.Run{
			Text:    r.T,
			Bold:    r.RPr != nil && r.RPr.B != nil && *r.RPr.B == 1,
			Heading: heading,
		})
	}
	for _, f := range p.Fld {
		if f.T == "" {
			continue
		}
		runs = append(runs, model.Run{Text: f.T, Heading: heading})
	}
	return runs
}

// bodyRuns joins a text body's paragraphs with newline runs, for
// shapes rendered as one box.
func bodyRuns(tx *txBodyXML, heading bool) []model.Run {
	var runs []model.Run
	for i := range tx.P {
		pr := paragraphRuns(&tx.P[i], heading)
		if len(pr) == 0 {
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, model.Run{Text: "\n", Heading: heading})
		}
		runs = append(runs, pr...)
	}
	return runs
}

// cellText joins a table cell's paragraph texts with spaces.
func cellText(tx *txBodyXML) string {
	if tx == nil {
		return ""
	}
	var parts []string
	for i := range tx.P {
		var sb strings.Builder
		for _, r := range tx.P[i].R {
			sb.WriteString(r.T)
		}
		for _, f := range tx.P[i].Fld {
			sb.WriteString(f.T)
		}
		if t := strings.TrimSpace(sb.String()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func transformOf(x *xfrmXML) *model.Transform {
	return &model.Transform{
		XEMU:      x.Off.X,
		YEMU:      x.Off.Y,
		WidthEMU:  x.Ext.Cx,
		HeightEMU: x.Ext.Cy,
	}
}
