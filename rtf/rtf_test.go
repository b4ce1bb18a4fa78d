package rtf

import (
	"errors"
	"testing"

	"github.com/tsawler/folio/model"
)

// paragraphTexts flattens built blocks into their paragraph text.
func paragraphTexts(t *testing.T, blocks []model.Block) []string {
	t.Helper()

	var texts []string
	for _, b := range blocks {
		p, ok := b.(*model.Paragraph)
		if !ok {
			t.Fatalf("unexpected block type %T", b)
		}
		texts = append(texts, p.Text())
	}
	return texts
}

func TestBuildParagraphBreaks(t *testing.T) {
	blocks, units, err := Build([]byte(`{\rtf1 Hello\par World}`))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(units) != 0 {
		t.Errorf("Build() reported unit errors: %v", units)
	}

	got := paragraphTexts(t, blocks)
	want := []string{"Hello", "World"}
	if len(got) != len(want) {
		t.Fatalf("Build() produced %d paragraphs %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildRequiresHeader(t *testing.T) {
	for _, data := range []string{"plain text", `{\pict garbage}`, ""} {
		_, _, err := Build([]byte(data))
		if !errors.Is(err, model.ErrNoContent) {
			t.Errorf("Build(%q) error = %v, want ErrNoContent", data, err)
		}
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	blocks, _, err := Build([]byte(`{\rtf1\ansi\deff0}`))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("Build() = %d blocks, want none for an empty document", len(blocks))
	}
}

func TestDecodeControlWords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"line break", `a\line b`, "a\nb"},
		{"tab", `a\tab b`, "a\tb"},
		{"pard is not par", `\pard Text`, "Text"},
		{"parameterized word dropped", `\fs24 Text`, "Text"},
		{"negative parameter", `\li-720 Text`, "Text"},
		{"escaped braces", `\{x\}`, "{x}"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"nonbreaking space", `a\~b`, "a b"},
		{"nonbreaking hyphen", `a\_b`, "a-b"},
		{"optional hyphen dropped", `a\-b`, "ab"},
		{"raw newlines ignored", "Line1\r\nLine2", "Line1Line2"},
		{"backslash newline is a break", "a\\\nb", "a\nb"},
		{"plain braces stripped", `{grouped}`, "grouped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decode(tt.src); got != tt.want {
				t.Errorf("decode(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestDecodeHexEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`caf\'e9`, "café"},
		{`\'93quote\'94`, "“quote”"},
		{`\'zz`, ""}, // invalid hex dropped
		{"sch\x94n", "sch”n"}, // raw high byte decodes as cp1252
	}

	for _, tt := range tests {
		if got := decode(tt.src); got != tt.want {
			t.Errorf("decode(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestDecodeUnicodeEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`\u26085?\u26412?`, "日本"},
		{`\u233 x`, "éx"}, // space delimiter, no fallback char
		{`\u-1234?`, string(rune(65536 - 1234))},
	}

	for _, tt := range tests {
		if got := decode(tt.src); got != tt.want {
			t.Errorf("decode(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestDecodeSkipsDestinations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"fonttbl", `{\fonttbl{\f0\fswiss Arial;}{\f1 Times;}}Body`, "Body"},
		{"colortbl", `{\colortbl;\red0\green0\blue0;}Body`, "Body"},
		{"stylesheet", `{\stylesheet{\s1 Heading;}}Body`, "Body"},
		{"info with nested group", `{\info{\author Jo}{\title T}}Body`, "Body"},
		{"pict", `{\pict\wmetafile8 0011aabb}After`, "After"},
		{"starred destination", `{\*\generator Riched20 10.0;}Text`, "Text"},
		{"escaped brace inside destination", `{\info \{not-a-group\}}Out`, "Out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decode(tt.src); got != tt.want {
				t.Errorf("decode(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestBuildCollapsesBlankParagraphs(t *testing.T) {
	blocks, _, err := Build([]byte(`{\rtf1 A\par\par\par B}`))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := paragraphTexts(t, blocks)
	want := []string{"A", "B"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Build() paragraphs = %v, want %v", got, want)
	}
}

func TestBuildRealWorldHeader(t *testing.T) {
	src := `{\rtf1\ansi\ansicpg1252\deff0\nouicompat{\fonttbl{\f0\fnil\fcharset0 Calibri;}}
{\*\generator Riched20 10.0.19041}\viewkind4\uc1
\pard\sa200\sl276\slmult1\f0\fs22\lang9 First paragraph.\par
Second paragraph with caf\'e9.\par
}`
	blocks, _, err := Build([]byte(src))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := paragraphTexts(t, blocks)
	want := []string{"First paragraph.", "Second paragraph with café."}
	if len(got) != len(want) {
		t.Fatalf("Build() paragraphs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
