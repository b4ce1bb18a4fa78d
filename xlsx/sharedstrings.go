package xlsx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/internal/logging"
)

// sharedStringsPath is the fixed part name of the shared-string table.
const sharedStringsPath = "xl/sharedStrings.xml"

// SharedStringTable holds the workbook's shared strings in table order.
// Worksheets store most text as indexes into this table rather than inline.
type SharedStringTable struct {
	strings []string
}

// BuildSharedStrings parses the shared-string part. The part is optional;
// absence or a malformed table yields an empty table, so lookups degrade to
// their literal-index fallback instead of failing the conversion.
func BuildSharedStrings(arc *container.Archive) SharedStringTable {
	data, err := arc.Read(sharedStringsPath)
	if err != nil {
		return SharedStringTable{}
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		logging.Get().Debug("malformed shared strings", "part", sharedStringsPath, "error", err)
		return SharedStringTable{}
	}

	table := SharedStringTable{strings: make([]string, len(sst.SI))}
	for i, si := range sst.SI {
		// Plain entries carry <t>; rich-text entries split the string
		// across <r> runs that concatenate with no separator.
		var sb strings.Builder
		sb.WriteString(si.T)
		for _, run := range si.R {
			sb.WriteString(run.T)
		}
		table.strings[i] = sb.String()
	}
	return table
}

// Lookup returns the shared string at index i. An out-of-range index
// returns the literal index text, so one bad reference costs a single cell
// its text rather than the worksheet.
func (t SharedStringTable) Lookup(i int) string {
	if i < 0 || i >= len(t.strings) {
		return strconv.Itoa(i)
	}
	return t.strings[i]
}

// Len returns the number of entries in the table.
func (t SharedStringTable) Len() int {
	return len(t.strings)
}
