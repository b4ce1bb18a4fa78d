// Package layout turns an ordered block sequence into draw commands
// grouped by page.
//
// The engine owns a single cursor per call: a current page and a
// vertical position. Blocks are visited in order; each asks the cursor
// for the height it needs, and the cursor decides whether that height
// still fits the page or a new one must start. Positioned shapes from
// slides bypass the cursor and land at their own coordinates.
//
// # Pagination
//
// A unit of height h starts a new page when it does not fit the
// remaining space. A unit taller than a full usable page is emitted
// anyway after at most one page break, so oversized content degrades
// to overflow instead of looping. Table rows are atomic: a row never
// straddles two pages.
//
// # Commands
//
// The output vocabulary is three commands. Text draws one line at a
// baseline; TextBox fills a rectangle with wrapped text; ImageCmd
// places image bytes into a rectangle. The render package translates
// these against the PDF backend without further layout decisions.
//
// Width estimation uses the glyph heuristic from the font package, not
// real metrics. Estimated wrapping can disagree with the renderer's
// own line breaking inside text boxes; the slack in the page height
// absorbs the difference.
package layout
