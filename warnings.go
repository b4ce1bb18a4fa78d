package folio

import (
	"strings"

	"github.com/tsawler/folio/model"
)

// Warning describes a non-fatal problem encountered while converting a
// single unit of the document, such as a worksheet that failed to parse
// or an image that could not be resolved. The conversion as a whole
// still succeeded.
type Warning struct {
	Unit    string // the affected unit, e.g. "ppt/slides/slide3.xml" or "block 7"
	Message string
}

// FormatWarnings renders warnings as a single line for logging.
//
// Example:
//
//	log.Println("Warnings:", folio.FormatWarnings(warnings))
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Unit + ": " + w.Message
	}
	return strings.Join(parts, "; ")
}

// warningsOf maps the pipeline's per-unit errors onto the public type.
func warningsOf(units []model.UnitError) []Warning {
	if len(units) == 0 {
		return nil
	}
	warnings := make([]Warning, len(units))
	for i, ue := range units {
		warnings[i] = Warning{Unit: ue.Unit, Message: ue.Err.Error()}
	}
	return warnings
}
