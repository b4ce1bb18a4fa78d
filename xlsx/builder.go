package xlsx

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
)

// worksheetRE matches worksheet part names and captures the sheet number.
var worksheetRE = regexp.MustCompile(`^xl/worksheets/sheet([0-9]+)\.xml$`)

// Build parses every worksheet into one table block per sheet, with a page
// break between sheets. Worksheets that fail to read or parse are skipped
// and reported; the call fails only when not a single worksheet parses.
func Build(arc *container.Archive, shared SharedStringTable) ([]model.Block, []model.UnitError, error) {
	parts := worksheetParts(arc)
	if len(parts) == 0 {
		return nil, nil, fmt.Errorf("xlsx: no worksheet parts: %w", model.ErrNoContent)
	}

	var (
		blocks []model.Block
		units  []model.UnitError
	)
	for _, part := range parts {
		data, err := arc.Read(part)
		if err != nil {
			units = append(units, model.UnitError{Unit: part, Err: err})
			continue
		}

		table, err := parseWorksheet(data, shared)
		if err != nil {
			logging.Get().Warn("skipping worksheet", "part", part, "error", err)
			units = append(units, model.UnitError{Unit: part, Err: err})
			continue
		}

		if len(blocks) > 0 {
			blocks = append(blocks, &model.PageBreak{})
		}
		blocks = append(blocks, table)
	}

	if len(blocks) == 0 {
		return nil, units, fmt.Errorf("xlsx: no worksheet parsed: %w", model.ErrNoContent)
	}
	return blocks, units, nil
}

// worksheetParts returns the worksheet part names ordered by the numeric
// index in the filename. Archive order is not meaningful for sheets: writers
// may store sheet10.xml before sheet2.xml.
func worksheetParts(arc *container.Archive) []string {
	type part struct {
		name string
		num  int
	}

	var parts []part
	for _, name := range arc.List() {
		m := worksheetRE.FindStringSubmatch(name)
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

// parseWorksheet turns one worksheet part into a table block. Rows whose
// cells are all empty are dropped; an empty sheet still parses into an
// empty table.
func parseWorksheet(data []byte, shared SharedStringTable) (*model.Table, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("unmarshaling worksheet: %w", err)
	}

	rows := make([]model.Row, 0, len(ws.SheetData.Rows))
	for _, rx := range ws.SheetData.Rows {
		row := buildRow(rx, shared)
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}

	return &model.Table{Rows: rows, SizeToContent: true}, nil
}

// buildRow places cell values by their column reference so gaps between
// populated cells pad out with empty strings. Cells without a usable
// reference fill the next free column.
func buildRow(rx rowXML, shared SharedStringTable) model.Row {
	cells := make([]string, 0, len(rx.Cells))
	next := 0
	for _, cx := range rx.Cells {
		col := next
		if c, _, err := ParseCellRef(cx.R); err == nil {
			col = c
		}
		for len(cells) <= col {
			cells = append(cells, "")
		}
		cells[col] = cellValue(cx, shared)
		next = col + 1
	}
	return model.Row{Cells: cells}
}

// cellValue extracts the display text of a cell based on its type attribute.
func cellValue(c cellXML, shared SharedStringTable) string {
	switch c.T {
	case "s": // Shared string
		idx, err := strconv.Atoi(strings.TrimSpace(c.V))
		if err != nil {
			return c.V
		}
		return shared.Lookup(idx)
	case "inlineStr": // Inline string
		if c.Is != nil {
			return c.Is.T
		}
		return ""
	case "b": // Boolean
		if c.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	case "e": // Error value, e.g. #DIV/0!
		return c.V
	default: // Number, formula string result, or empty
		return c.V
	}
}
