package extractor

import (
	"bufio"
	"errors"
	"io"
)

// LineScanner streams the text lines of a document to visit.
// Returning false from visit ends the scan early without error.
type LineScanner interface {
	Scan(reader io.Reader, visit func(line string) bool) error
}

// TextScanner implements scanning for plain text files.
// Lines longer than MaxLineBytes are visited as overlapping windows, so memory stays bounded
// and a keyword of up to MaxLineBytes bytes is still seen whole.
type TextScanner struct {
	Encoding     string
	MaxLineBytes int
}

func (s *TextScanner) Scan(reader io.Reader, visit func(line string) bool) error {
	r, err := decodingReader(reader, s.Encoding)
	if err != nil {
		return err
	}
	return scanLines(r, s.MaxLineBytes, visit)
}

// scanLines visits each line of r. A line reaching maxLine bytes is cut into segments and
// every segment is visited joined to the one before it.
func scanLines(r io.Reader, maxLine int, visit func(line string) bool) error {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	size := 64 * 1024
	if maxLine < size {
		size = maxLine
	}

	br := bufio.NewReaderSize(r, size)
	var segment, prev []byte
	long := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		segment = append(segment, frag...)
		if isPrefix && len(segment) < maxLine {
			continue
		}

		if !long && !isPrefix {
			if !visit(string(segment)) {
				return nil
			}
			segment = segment[:0]
			continue
		}

		if !visit(string(prev) + string(segment)) {
			return nil
		}
		long = isPrefix
		if long {
			prev = append(prev[:0], segment...)
		} else {
			prev = prev[:0]
		}
		segment = segment[:0]
	}
}
