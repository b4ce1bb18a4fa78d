// Package font resolves the conversion font and estimates glyph widths.
//
// Width estimation is a heuristic, not a metrics lookup. Glyphs above the
// Latin-1 range count as a full em square (CJK and most symbols are
// full-width), everything else as half. The renderer re-measures nothing,
// so composition stays the same whatever font ends up staged.
package font

import (
	"fmt"
	"os"
)

// Base is the built-in renderer font family used when no TTF is staged.
const Base = "Helvetica"

// Embedded is the family name a staged TTF registers under.
const Embedded = "Embedded"

// Ref identifies the font every text-drawing command uses. With an empty
// TTF the renderer falls back to the built-in base font, which covers only
// the Latin-1 repertoire.
type Ref struct {
	Family string
	TTF    []byte
}

// IsBase reports whether the ref falls back to the built-in font.
func (ref Ref) IsBase() bool {
	return len(ref.TTF) == 0
}

// Resolve builds the conversion's font ref, staging at most one font. Font
// bytes win over a path; a path is read once here and never re-read during
// layout or rendering. Any staging failure falls back to the base font and
// reports the cause, it never aborts a conversion.
func Resolve(path string, ttf []byte) (Ref, error) {
	if len(ttf) > 0 {
		return Ref{Family: Embedded, TTF: ttf}, nil
	}
	if path == "" {
		return Ref{Family: Base}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Ref{Family: Base}, fmt.Errorf("font: staging %s: %w", path, err)
	}
	if len(data) == 0 {
		return Ref{Family: Base}, fmt.Errorf("font: staging %s: empty file", path)
	}
	return Ref{Family: Embedded, TTF: data}, nil
}

// GlyphWidth estimates the advance width of a single glyph at the given
// size in points. Code points above the Latin-1 range count as full-width.
func GlyphWidth(r rune, size float64) float64 {
	if r > 255 {
		return size
	}
	return size * 0.5
}

// StringWidth estimates the advance width of a string at the given size.
func StringWidth(s string, size float64) float64 {
	var total float64
	for _, r := range s {
		total += GlyphWidth(r, size)
	}
	return total
}
