// Package container reads the zip container shared by the Office Open XML
// formats. It validates the archive structure eagerly, so a corrupt buffer
// fails at [Open] rather than surfacing as missing entries later.
package container

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxEntrySize caps the decompressed size of a single entry, guarding
// against zip bombs. Office parts are small; media rarely exceeds a few MB.
const maxEntrySize int64 = 256 * 1024 * 1024

var (
	// ErrCorruptArchive is returned by Open when the buffer is not a
	// structurally valid zip archive.
	ErrCorruptArchive = errors.New("container: corrupt archive")

	// ErrEntryNotFound is returned by Read for paths absent from the archive.
	ErrEntryNotFound = errors.New("container: entry not found")
)

// Archive provides read access to the entries of an opened container.
type Archive struct {
	files map[string]*zip.File
	names []string // archive order
}

// Open validates data as a zip archive and returns a handle over its
// entries. The central directory is read up front; a buffer that is not a
// well-formed archive fails here with ErrCorruptArchive and no partial
// handle is returned.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	a := &Archive{
		files: make(map[string]*zip.File, len(zr.File)),
		names: make([]string, 0, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, dup := a.files[f.Name]; dup {
			continue
		}
		a.files[f.Name] = f
		a.names = append(a.names, f.Name)
	}
	return a, nil
}

// Read returns the decompressed bytes of the named entry.
func (a *Archive) Read(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	if f.UncompressedSize64 > uint64(maxEntrySize) {
		return nil, fmt.Errorf("container: entry %s too large: %d bytes", name, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("container: opening entry %s: %w", name, err)
	}
	defer rc.Close()

	// The declared size may be forged; read one byte past the cap to notice.
	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("container: reading entry %s: %w", name, err)
	}
	if int64(len(data)) > maxEntrySize {
		return nil, fmt.Errorf("container: entry %s exceeds decompression limit", name)
	}
	return data, nil
}

// Has reports whether the named entry exists.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[name]
	return ok
}

// List returns the entry paths in archive order.
func (a *Archive) List() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}
