package extractor

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxHTMLTextBytes caps how much of a document is parsed for its visible text.
const MaxHTMLTextBytes = 16 * 1024 * 1024

// HTMLScanner scans an HTML document as raw text lines, markup and scripts included.
// When the reader can seek, the visible text is scanned afterwards as well, so entity
// encoded text such as "AT&amp;T" is also matched as "AT&T".
type HTMLScanner struct {
	Encoding     string
	MaxLineBytes int
}

func (s *HTMLScanner) Scan(reader io.Reader, visit func(line string) bool) error {
	stopped := false
	raw := &TextScanner{Encoding: s.Encoding, MaxLineBytes: s.MaxLineBytes}
	err := raw.Scan(reader, func(line string) bool {
		if !visit(line) {
			stopped = true
			return false
		}
		return true
	})
	if err != nil || stopped {
		return err
	}

	seeker, ok := reader.(io.Seeker)
	if !ok {
		return nil
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return s.scanVisible(reader, visit)
}

func (s *HTMLScanner) scanVisible(reader io.Reader, visit func(line string) bool) error {
	r, err := decodingReader(io.LimitReader(reader, MaxHTMLTextBytes), s.Encoding)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return err
	}
	doc.Find("script, style, noscript, template").Remove()

	return scanLines(strings.NewReader(doc.Text()), s.MaxLineBytes, visit)
}
