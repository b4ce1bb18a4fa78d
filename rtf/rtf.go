// Package rtf builds content blocks from legacy rich-text documents.
//
// The pass is textual and destructive, not a structural parse: the output
// is a readable plain-text approximation of the document, which is all
// the downstream layout consumes. Header destinations (font and
// color tables, stylesheets, document info, embedded pictures) are skipped
// wholesale; paragraph and line control words become newlines before every
// other control word is stripped.
package rtf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/folio/model"
)

// skippedDestinations are group destinations whose contents never appear in
// the document text. Starred groups ({\*...}) are skipped unconditionally.
var skippedDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
}

var newlineRunRE = regexp.MustCompile(`\n{2,}`)

// Build converts rich-text bytes into paragraph blocks, one per line of the
// decoded text. It fails only when the rich-text header is missing; a valid
// document with no text yields zero blocks and no error.
func Build(data []byte) ([]model.Block, []model.UnitError, error) {
	src := string(data)
	if !strings.HasPrefix(strings.TrimLeft(stripBOM(src), " \t\r\n"), `{\rtf`) {
		return nil, nil, fmt.Errorf("rtf: missing {\\rtf header: %w", model.ErrNoContent)
	}

	text := decode(src)
	text = newlineRunRE.ReplaceAllString(text, "\n")
	text = strings.Trim(text, "\n")

	var blocks []model.Block
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, &model.Paragraph{
			Runs: []model.Run{{Text: line}},
		})
	}
	return blocks, nil, nil
}

// decode runs the textual pass: skip unwanted groups, translate the few
// control words with text meaning, decode escapes, drop everything else.
func decode(src string) string {
	var out strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '{':
			if end, skip := skipGroup(src, i); skip {
				i = end
				continue
			}
			i++
		case c == '}':
			i++
		case c == '\\':
			i = decodeControl(src, i, &out)
		case c == '\r' || c == '\n':
			// Raw line breaks are source formatting, not content.
			i++
		case c >= 0x80:
			// Raw high bytes are Windows-1252 text in legacy writers.
			out.WriteRune(charmap.Windows1252.DecodeByte(c))
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipGroup reports whether the group starting at i is a skipped
// destination, and if so returns the index just past its closing brace.
// Escaped braces inside the group do not affect nesting.
func skipGroup(src string, i int) (int, bool) {
	rest := src[i:]
	if len(rest) < 3 || rest[1] != '\\' {
		return 0, false
	}
	if rest[2] != '*' {
		j := 2
		for j < len(rest) && isASCIILetter(rest[j]) {
			j++
		}
		if !skippedDestinations[rest[2:j]] {
			return 0, false
		}
	}

	depth := 0
	for ; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++ // skip the escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(src), true
}

// decodeControl handles one backslash sequence starting at i and returns
// the index of the first byte after it.
func decodeControl(src string, i int, out *strings.Builder) int {
	if i+1 >= len(src) {
		return i + 1
	}
	n := src[i+1]

	// Hex escape: \'XX is one Windows-1252 byte. A malformed escape is
	// consumed whole and dropped.
	if n == '\'' {
		if i+4 > len(src) {
			return len(src)
		}
		if v, err := strconv.ParseUint(src[i+2:i+4], 16, 8); err == nil {
			out.WriteRune(charmap.Windows1252.DecodeByte(byte(v)))
		}
		return i + 4
	}

	// Control word: backslash, letters, optional signed parameter, and an
	// optional single space that belongs to the control word.
	if isASCIILetter(n) {
		j := i + 1
		for j < len(src) && isASCIILetter(src[j]) {
			j++
		}
		word := src[i+1 : j]

		k := j
		if k < len(src) && src[k] == '-' {
			k++
		}
		for k < len(src) && src[k] >= '0' && src[k] <= '9' {
			k++
		}
		param := src[j:k]

		end := k
		if end < len(src) && src[end] == ' ' {
			end++
		}

		switch word {
		case "par", "line":
			out.WriteByte('\n')
		case "tab":
			out.WriteByte('\t')
		case "u":
			if cp, err := strconv.Atoi(param); err == nil {
				if cp < 0 {
					cp += 65536
				}
				out.WriteRune(rune(cp))
			}
			// The character after \uN is the fallback for non-Unicode
			// readers; drop the conventional "?".
			if end < len(src) && src[end] == '?' {
				end++
			}
		}
		return end
	}

	// Control symbol or escaped character.
	switch n {
	case '\\', '{', '}':
		out.WriteByte(n)
	case '~':
		out.WriteByte(' ')
	case '_':
		out.WriteByte('-')
	case '\r', '\n':
		out.WriteByte('\n') // \ followed by a raw break is a paragraph mark
	}
	return i + 2
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// stripBOM removes a leading UTF-8 BOM, which some exporters prepend.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}
