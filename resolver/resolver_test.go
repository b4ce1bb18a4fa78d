package resolver

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/tsawler/folio/container"
)

func buildArchive(t *testing.T, entries [][2]string) *container.Archive {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e[0], err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatalf("Failed to write %s: %v", e[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}

	arc, err := container.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return arc
}

func TestRelsPath(t *testing.T) {
	tests := []struct {
		owner string
		want  string
	}{
		{"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
		{"word/document.xml", "word/_rels/document.xml.rels"},
		{"xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
	}

	for _, tt := range tests {
		if got := RelsPath(tt.owner); got != tt.want {
			t.Errorf("RelsPath(%q) = %q, want %q", tt.owner, got, tt.want)
		}
	}
}

func TestRelationshipsResolution(t *testing.T) {
	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="local.png"/>
  <Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="/ppt/media/abs.png"/>
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/page" TargetMode="External"/>
</Relationships>`
	arc := buildArchive(t, [][2]string{
		{"ppt/slides/_rels/slide1.xml.rels", rels},
	})

	m := Relationships(arc, "ppt/slides/slide1.xml")

	want := map[string]string{
		"rId1": "ppt/media/image1.png",
		"rId2": "ppt/slideLayouts/slideLayout1.xml",
		"rId3": "ppt/slides/local.png",
		"rId4": "ppt/media/abs.png",
		"rId5": "https://example.com/page",
	}
	if len(m) != len(want) {
		t.Fatalf("Relationships() returned %d entries, want %d: %v", len(m), len(want), m)
	}
	for id, target := range want {
		if got := m[id]; got != target {
			t.Errorf("m[%q] = %q, want %q", id, got, target)
		}
	}
}

func TestRelationshipsWorksheetRebase(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/chart.png"/>
</Relationships>`
	arc := buildArchive(t, [][2]string{
		{"xl/worksheets/_rels/sheet2.xml.rels", rels},
	})

	m := Relationships(arc, "xl/worksheets/sheet2.xml")
	if got := m["rId1"]; got != "xl/media/chart.png" {
		t.Errorf(`m["rId1"] = %q, want "xl/media/chart.png"`, got)
	}
}

func TestRelationshipsMissingPart(t *testing.T) {
	arc := buildArchive(t, [][2]string{{"ppt/slides/slide1.xml", "<sld/>"}})

	m := Relationships(arc, "ppt/slides/slide1.xml")
	if m == nil {
		t.Fatal("Relationships() = nil, want empty map")
	}
	if len(m) != 0 {
		t.Errorf("Relationships() = %v, want empty map", m)
	}
}

func TestRelationshipsMalformedPart(t *testing.T) {
	arc := buildArchive(t, [][2]string{
		{"word/_rels/document.xml.rels", "<Relationships><Relationship Id="},
	})

	m := Relationships(arc, "word/document.xml")
	if len(m) != 0 {
		t.Errorf("Relationships() on malformed part = %v, want empty map", m)
	}
}

func TestRelationshipsDropsUnsafeTargets(t *testing.T) {
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="t" Target="../../../../etc/passwd"/>
  <Relationship Id="rId2" Type="t" Target=""/>
  <Relationship Id="" Type="t" Target="media/x.png"/>
</Relationships>`
	arc := buildArchive(t, [][2]string{
		{"word/_rels/document.xml.rels", rels},
	})

	m := Relationships(arc, "word/document.xml")
	// rId1 rebases onto the word/ segment and stays inside the archive.
	if got := m["rId1"]; got != "word/etc/passwd" {
		t.Errorf(`m["rId1"] = %q, want "word/etc/passwd"`, got)
	}
	if _, ok := m["rId2"]; ok {
		t.Error("empty target was not dropped")
	}
	if len(m) != 1 {
		t.Errorf("Relationships() = %v, want 1 entry", m)
	}
}
