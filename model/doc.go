// Package model provides the intermediate representation (IR) for document
// content on its way to a page.
//
// Format builders produce an ordered slice of [Block] values from their source
// container; the layout engine consumes the slice in order and turns it into
// positioned draw commands. The block list is the only contract between a
// format and the layout: builders never position anything, layout never reads
// the source container.
//
// # Blocks
//
// All content implements the [Block] interface. The concrete types are:
//
//   - [Paragraph] - flowed text, one or more [Run] values
//   - [Table] - rows of plain-text cells
//   - [Image] - embedded image bytes with source dimensions in EMUs
//   - [Shape] - positioned slide content (a picture or a text box)
//   - [PageBreak] - forces the next block onto a fresh page
//
// # Geometry
//
// [PageGeometry] describes the target page in points. [Rect] and [Point] use a
// top-left origin with y growing downward, matching the order content is
// placed. [EMUToPoints] converts the English Metric Units used by the zip/XML
// office formats.
//
// # Degradation
//
// A structural unit (worksheet, slide, paragraph, row) that fails to parse or
// lay out is skipped or replaced with an inline marker, never fatal. Each such
// event is reported as a [UnitError] so callers can surface warnings.
package model
