// Package textextract is the boundary to the OCR/text-extraction
// collaborator. The extraction core only ever sees a text blob; this package
// decides how a file becomes one. Plain text is handled inline; image and
// PDF inputs require an OCR backend that is not wired in yet.
package textextract

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrOCRNotSupported indicates the input needs OCR and no backend is
// available. Future implementation will hand image/PDF bytes to an OCR
// engine (Tesseract or a cloud service) and return its text.
var ErrOCRNotSupported = errors.New("image/PDF OCR not yet supported")

// ErrUnsupportedFormat indicates a file type the system does not accept at
// all. This is a hard upstream failure: the caller gets no record.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ocrExtensions are accepted file types whose text requires OCR.
var ocrExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Extract returns the raw text of the named input. The filename decides the
// handling; its content type is never sniffed. Errors are upstream failures
// in the extraction pipeline's taxonomy, not absence cases.
func Extract(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".txt":
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filename, err)
		}
		return string(data), nil
	case ocrExtensions[ext]:
		return "", fmt.Errorf("%s: %w", filename, ErrOCRNotSupported)
	default:
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
}

// Supported reports whether the file type is accepted at all, OCR-pending
// types included. Useful for upload-side filtering before work is queued.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ocrExtensions[ext]
}
