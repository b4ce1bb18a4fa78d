package xlsx

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/model"
)

// createTestArchive builds an in-memory zip and opens it as a container.
func createTestArchive(t *testing.T, entries [][2]string) *container.Archive {
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

const sharedStringsXMLDoc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
  <si><t>Name</t></si>
  <si><t>Score</t></si>
</sst>`

func TestBuildSingleSheet(t *testing.T) {
	sheet := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1">
    <c r="A1" t="s"><v>0</v></c>
    <c r="B1" t="s"><v>1</v></c>
  </row>
  <row r="2">
    <c r="A2" t="inlineStr"><is><t>Ada</t></is></c>
    <c r="B2"><v>99.5</v></c>
  </row>
</sheetData>
</worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"[Content_Types].xml", "<Types/>"},
		{"xl/workbook.xml", "<workbook/>"},
		{"xl/sharedStrings.xml", sharedStringsXMLDoc},
		{"xl/worksheets/sheet1.xml", sheet},
	})

	blocks, units, err := Build(arc, BuildSharedStrings(arc))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(units) != 0 {
		t.Errorf("Build() reported %d unit errors: %v", len(units), units)
	}
	if len(blocks) != 1 {
		t.Fatalf("Build() returned %d blocks, want 1", len(blocks))
	}

	table, ok := blocks[0].(*model.Table)
	if !ok {
		t.Fatalf("blocks[0] is %T, want *model.Table", blocks[0])
	}
	if !table.SizeToContent {
		t.Error("worksheet table should size columns to content")
	}

	want := [][]string{
		{"Name", "Score"},
		{"Ada", "99.5"},
	}
	if len(table.Rows) != len(want) {
		t.Fatalf("table has %d rows, want %d", len(table.Rows), len(want))
	}
	for i, row := range want {
		for j, cell := range row {
			if got := table.Rows[i].Cells[j]; got != cell {
				t.Errorf("cell[%d][%d] = %q, want %q", i, j, got, cell)
			}
		}
	}
}

func TestBuildSheetsInNumericOrder(t *testing.T) {
	sheetWith := func(text string) string {
		return `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData><row r="1"><c r="A1" t="inlineStr"><is><t>` + text + `</t></is></c></row></sheetData>
</worksheet>`
	}
	// Stored out of numeric order: 10 before 2.
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet10.xml", sheetWith("tenth")},
		{"xl/worksheets/sheet1.xml", sheetWith("first")},
		{"xl/worksheets/sheet2.xml", sheetWith("second")},
	})

	blocks, _, err := Build(arc, SharedStringTable{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// table, break, table, break, table
	if len(blocks) != 5 {
		t.Fatalf("Build() returned %d blocks, want 5", len(blocks))
	}

	var texts []string
	for _, b := range blocks {
		switch bl := b.(type) {
		case *model.Table:
			texts = append(texts, bl.Rows[0].Cells[0])
		case *model.PageBreak:
		default:
			t.Fatalf("unexpected block type %T", b)
		}
	}
	want := []string{"first", "second", "tenth"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("sheet %d text = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestBuildSkipsMalformedSheet(t *testing.T) {
	good := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData><row r="1"><c r="A1"><v>1</v></c></row></sheetData></worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet1.xml", "<worksheet><sheetData><row"},
		{"xl/worksheets/sheet2.xml", good},
	})

	blocks, units, err := Build(arc, SharedStringTable{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(blocks) != 1 {
		t.Errorf("Build() returned %d blocks, want 1 (bad sheet skipped)", len(blocks))
	}
	if len(units) != 1 {
		t.Fatalf("Build() reported %d unit errors, want 1", len(units))
	}
	if units[0].Unit != "xl/worksheets/sheet1.xml" {
		t.Errorf("unit error names %q, want the malformed sheet", units[0].Unit)
	}
}

func TestBuildNoWorksheets(t *testing.T) {
	arc := createTestArchive(t, [][2]string{
		{"[Content_Types].xml", "<Types/>"},
		{"xl/workbook.xml", "<workbook/>"},
	})

	blocks, _, err := Build(arc, SharedStringTable{})
	if !errors.Is(err, model.ErrNoContent) {
		t.Errorf("Build() error = %v, want ErrNoContent", err)
	}
	if blocks != nil {
		t.Error("Build() returned blocks alongside a fatal error")
	}
}

func TestBuildAllSheetsMalformed(t *testing.T) {
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet1.xml", "not xml at all <"},
	})

	_, units, err := Build(arc, SharedStringTable{})
	if !errors.Is(err, model.ErrNoContent) {
		t.Errorf("Build() error = %v, want ErrNoContent", err)
	}
	if len(units) != 1 {
		t.Errorf("Build() reported %d unit errors, want 1", len(units))
	}
}

func TestBuildDropsEmptyRows(t *testing.T) {
	sheet := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1"><c r="A1"><v>kept</v></c></row>
  <row r="2"><c r="A2"><v></v></c><c r="B2"></c></row>
  <row r="3"><c r="A3"><v>also kept</v></c></row>
</sheetData></worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet1.xml", sheet},
	})

	blocks, _, err := Build(arc, SharedStringTable{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	table := blocks[0].(*model.Table)
	if len(table.Rows) != 2 {
		t.Fatalf("table has %d rows, want 2 (empty row dropped)", len(table.Rows))
	}
	if table.Rows[1].Cells[0] != "also kept" {
		t.Errorf("second kept row = %q", table.Rows[1].Cells[0])
	}
}

func TestBuildPadsColumnGaps(t *testing.T) {
	sheet := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1"><c r="A1"><v>left</v></c><c r="C1"><v>right</v></c></row>
</sheetData></worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet1.xml", sheet},
	})

	blocks, _, err := Build(arc, SharedStringTable{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	row := blocks[0].(*model.Table).Rows[0]
	want := []string{"left", "", "right"}
	if len(row.Cells) != len(want) {
		t.Fatalf("row has %d cells, want %d", len(row.Cells), len(want))
	}
	for i := range want {
		if row.Cells[i] != want[i] {
			t.Errorf("cell[%d] = %q, want %q", i, row.Cells[i], want[i])
		}
	}
}

func TestBuildCellTypes(t *testing.T) {
	sheet := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1">
    <c r="A1" t="b"><v>1</v></c>
    <c r="B1" t="b"><v>0</v></c>
    <c r="C1" t="e"><v>#DIV/0!</v></c>
    <c r="D1" t="str"><v>computed</v></c>
    <c r="E1"><v>3.14</v></c>
  </row>
</sheetData></worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"xl/worksheets/sheet1.xml", sheet},
	})

	blocks, _, err := Build(arc, SharedStringTable{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	row := blocks[0].(*model.Table).Rows[0]
	want := []string{"TRUE", "FALSE", "#DIV/0!", "computed", "3.14"}
	for i := range want {
		if row.Cells[i] != want[i] {
			t.Errorf("cell[%d] = %q, want %q", i, row.Cells[i], want[i])
		}
	}
}

func TestBuildOutOfRangeSharedString(t *testing.T) {
	sheet := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>42</v></c></row>
</sheetData></worksheet>`
	arc := createTestArchive(t, [][2]string{
		{"xl/sharedStrings.xml", `<sst xmlns="x"><si><t>only</t></si></sst>`},
		{"xl/worksheets/sheet1.xml", sheet},
	})

	blocks, _, err := Build(arc, BuildSharedStrings(arc))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	row := blocks[0].(*model.Table).Rows[0]
	if row.Cells[0] != "only" {
		t.Errorf("cell[0] = %q, want %q", row.Cells[0], "only")
	}
	// Out-of-range index degrades to the literal index text.
	if row.Cells[1] != "42" {
		t.Errorf("cell[1] = %q, want %q", row.Cells[1], "42")
	}
}
