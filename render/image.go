package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// normalize prepares picture bytes for gofpdf, which takes PNG, JPEG
// and GIF. Those pass through untouched after a header check; anything
// else (TIFF, WebP, BMP) is decoded and re-encoded, as JPEG at the
// given quality when one is set, as lossless PNG otherwise. The
// returned type string is gofpdf's image type name.
func normalize(data []byte, quality int) (string, []byte, error) {
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty image data")
	}

	if typ := nativeType(data); typ != "" {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", nil, fmt.Errorf("corrupt image: %w", err)
		}
		return typ, data, nil
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if quality >= 1 && quality <= 100 {
		if err := jpeg.Encode(&buf, m, &jpeg.Options{Quality: quality}); err != nil {
			return "", nil, fmt.Errorf("re-encode image: %w", err)
		}
		return "JPEG", buf.Bytes(), nil
	}
	if err := png.Encode(&buf, m); err != nil {
		return "", nil, fmt.Errorf("re-encode image: %w", err)
	}
	return "PNG", buf.Bytes(), nil
}

// nativeType sniffs the formats gofpdf accepts directly.
func nativeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "JPEG"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "GIF"
	}
	return ""
}
