package extractor

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFScanner implements scanning for PDF files, one page of plain text at a time.
type PDFScanner struct{}

func (s *PDFScanner) Scan(reader io.Reader, visit func(line string) bool) error {
	// ledongthuc/pdf requires an io.ReaderAt and size.
	var readerAt io.ReaderAt
	var size int64

	switch r := reader.(type) {
	case *os.File:
		stat, err := r.Stat()
		if err != nil {
			return err
		}
		readerAt = r
		size = stat.Size()
	case *bytes.Reader:
		readerAt = r
		size = int64(r.Len())
	default:
		data, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		readerAt = bytes.NewReader(data)
		size = int64(len(data))
	}

	doc, err := pdf.NewReader(readerAt, size)
	if err != nil {
		return err
	}

	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(content, "\n") {
			if !visit(line) {
				return nil
			}
		}
	}
	return nil
}
