// Package folio converts office documents into paginated PDF files.
// It reads spreadsheets (.xlsx), presentations (.pptx), word-processor
// documents (.docx) and rich text (.rtf), lays the content out on
// fixed-size pages, and writes the result with gofpdf.
//
// Basic usage:
//
//	pdf, warnings, err := folio.Open("report.docx").PDF()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//	os.WriteFile("report.pdf", pdf, 0644)
//
// With options:
//
//	pdf, _, err := folio.Open("deck.pptx").
//	    FontFile("fonts/NotoSans-Regular.ttf").
//	    Quality(80).
//	    PDF()
//
// For advanced use cases, the lower-level format and layout packages are
// also available.
package folio

import (
	"github.com/tsawler/folio/format"
)

// Open prepares a conversion from a file on disk and returns a Converter
// for fluent configuration. The format is taken from the file extension,
// falling back to content sniffing. Nothing is read until a terminal
// operation like PDF() runs.
//
// Example:
//
//	pdf, warnings, err := folio.Open("report.docx").PDF()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		format:   format.Detect(filename),
	}
}

// FromBytes prepares a conversion from an in-memory document. Pass
// format.Unknown to detect the format from the bytes.
//
// Example:
//
//	pdf, warnings, err := folio.FromBytes(data, format.DOCX).PDF()
func FromBytes(data []byte, f format.Format) *Converter {
	return &Converter{
		data:   data,
		format: f,
	}
}

// Convert renders an in-memory document with default settings. It is
// shorthand for FromBytes(data, f).PDF().
func Convert(data []byte, f format.Format) ([]byte, []Warning, error) {
	return FromBytes(data, f).PDF()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustPDF is a helper that wraps a call to PDF() and panics if the error
// is non-nil. It discards warnings and returns just the value. It is
// intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	pdf := folio.MustPDF(folio.Open("report.docx").PDF())
func MustPDF[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
