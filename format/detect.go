// Package format provides input format detection for the folio library.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XLSX indicates a spreadsheet (.xlsx) document.
	XLSX
	// PPTX indicates a presentation (.pptx) document.
	PPTX
	// DOCX indicates a word-processor (.docx) document.
	DOCX
	// RTF indicates a rich-text (.rtf) document.
	RTF
)

// ErrUnknown is returned by callers when no supported format can be
// determined for an input.
var ErrUnknown = errors.New("format: unknown or unsupported format")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case DOCX:
		return "DOCX"
	case RTF:
		return "RTF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XLSX:
		return ".xlsx"
	case PPTX:
		return ".pptx"
	case DOCX:
		return ".docx"
	case RTF:
		return ".rtf"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	case ".docx":
		return DOCX
	case ".rtf":
		return RTF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. Zip-based
// formats all share the same magic, so this returns Unknown for them;
// use DetectFromBytes to also inspect archive contents.
func DetectFromMagic(data []byte) Format {
	data = trimLeading(data)
	if len(data) < 5 {
		return Unknown
	}

	// RTF magic: {\rtf
	if bytes.HasPrefix(data, []byte(`{\rtf`)) {
		return RTF
	}

	return Unknown
}

// DetectFromBytes inspects the content to determine format. It is more
// reliable than extension-based detection and distinguishes the zip-based
// formats by their top-level archive directories.
func DetectFromBytes(data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}

	if len(data) < 4 || data[0] != 0x50 || data[1] != 0x4B || data[2] != 0x03 || data[3] != 0x04 {
		return Unknown
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX
		}
	}
	return Unknown
}

// trimLeading strips leading whitespace and a UTF-8 BOM.
func trimLeading(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	return data[start:]
}
