package extractor

import (
	"path/filepath"
	"strings"
)

// DefaultMaxLineBytes bounds the memory used for a single line.
const DefaultMaxLineBytes = 1024 * 1024

// Factory handles creation of appropriate content scanners
type Factory struct {
	encoding     string
	maxLineBytes int
}

// NewFactory validates the encoding label up front so that workers never see a bad one.
func NewFactory(encoding string, maxLineBytes int) (*Factory, error) {
	if err := ValidateEncoding(encoding); err != nil {
		return nil, err
	}
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &Factory{encoding: encoding, maxLineBytes: maxLineBytes}, nil
}

// GetScannerForFile returns the LineScanner for the file extension. Anything that is not
// a recognised document format is read as text.
func (f *Factory) GetScannerForFile(path string) (LineScanner, string) {
	ext := strings.ToLower(filepath.Ext(path))

	var scanner LineScanner
	switch ext {
	case ".pdf":
		scanner = &PDFScanner{}
	case ".xlsx":
		scanner = &ExcelScanner{}
	case ".html", ".htm":
		scanner = &HTMLScanner{Encoding: f.encoding, MaxLineBytes: f.maxLineBytes}
	default:
		scanner = &TextScanner{Encoding: f.encoding, MaxLineBytes: f.maxLineBytes}
	}
	return scanner, ext
}

// IsSupported reports whether files with this extension are picked up when walking a directory.
// Explicitly listed files are always scanned.
func (f *Factory) IsSupported(ext string) bool {
	switch strings.ToLower(ext) {
	// Block strict binaries / media
	case ".exe", ".dll", ".so", ".dylib", ".bin":
		return false
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp":
		return false
	case ".mp3", ".mp4", ".wav", ".avi", ".mov", ".mkv":
		return false
	case ".zip", ".tar", ".gz", ".rar", ".7z", ".iso":
		return false
	default:
		return true
	}
}
