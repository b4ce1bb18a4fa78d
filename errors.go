package folio

import (
	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/model"
)

// Fatal error classes, re-exposed so callers can test with errors.Is
// without importing the pipeline packages. Anything not in one of these
// classes surfaces as a Warning instead of an error.
var (
	// ErrCorruptArchive means the input could not be opened as a zip
	// container at all.
	ErrCorruptArchive = container.ErrCorruptArchive

	// ErrNoContent means the document was structurally readable but
	// yielded zero parseable content units.
	ErrNoContent = model.ErrNoContent

	// ErrUnknownFormat means no supported format could be determined
	// from the file name or content.
	ErrUnknownFormat = format.ErrUnknown
)
