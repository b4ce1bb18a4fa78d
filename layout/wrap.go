package layout

import (
	"strings"

	"github.com/tsawler/folio/font"
)

// wrap splits s into lines whose estimated width stays within avail,
// using greedy word packing. A single word wider than avail keeps its
// own line rather than being broken mid-word.
func wrap(s string, size, avail float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if font.StringWidth(candidate, size) > avail {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
