package extractor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8 = "utf-8"
	EncodingAuto = "auto"

	// sniffSize is how much of a file chardet sees when the encoding is "auto".
	sniffSize = 4096
	// minConfidence below which a chardet guess is ignored in favour of UTF-8.
	minConfidence = 50
)

// ValidateEncoding reports whether label can be used as a scan encoding.
func ValidateEncoding(label string) error {
	switch normalize(label) {
	case EncodingUTF8, EncodingAuto:
		return nil
	}
	if _, err := htmlindex.Get(label); err != nil {
		return fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return nil
}

// decodingReader wraps r so that it yields UTF-8. Invalid byte sequences become U+FFFD
// instead of failing the read.
func decodingReader(r io.Reader, label string) (io.Reader, error) {
	switch normalize(label) {
	case EncodingUTF8:
		return transform.NewReader(r, utf8Decoder()), nil
	case EncodingAuto:
		return sniff(r)
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

func sniff(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	head, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(head) == 0 {
		return br, nil
	}

	enc := detect(head)
	if enc == nil {
		return transform.NewReader(br, utf8Decoder()), nil
	}
	return transform.NewReader(br, enc.NewDecoder()), nil
}

func detect(head []byte) encoding.Encoding {
	res, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil || res.Confidence < minConfidence {
		return nil
	}
	enc, err := htmlindex.Get(res.Charset)
	if err != nil {
		return nil
	}
	return enc
}

// utf8Decoder honours a leading BOM (including UTF-16 ones) and replaces invalid UTF-8.
func utf8Decoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

func normalize(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	switch l {
	case "", "utf8", "utf-8":
		return EncodingUTF8
	}
	return l
}
