package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies the declared type of an uploaded resume document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	// ErrUnsupportedFormat is returned when the declared format is neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrCorruptDocument is returned when the underlying parser cannot read the byte stream.
	ErrCorruptDocument = errors.New("corrupt document")
	// ErrEmptyDocument is returned when extraction yields no visible text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// Document is an uploaded resume: raw bytes plus the declared format.
type Document struct {
	Data   []byte
	Format Format
}

// ParseFormat resolves a format hint (a file extension or a bare format name)
// into a supported Format.
func ParseFormat(hint string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(hint))
	normalized = strings.TrimPrefix(normalized, ".")

	switch normalized {
	case string(FormatPDF):
		return FormatPDF, nil
	case string(FormatDOCX):
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, hint)
	}
}

// Extractor converts a document into normalized plain text.
type Extractor interface {
	Extract(doc Document) (string, error)
}

type extractor struct{}

// New returns the default text extractor.
func New() Extractor {
	return &extractor{}
}

// Extract returns the document's visible text as a single normalized string:
// page order for PDF, body order for DOCX, consecutive whitespace collapsed
// to one space, leading and trailing whitespace trimmed.
func (e *extractor) Extract(doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: empty byte stream", ErrCorruptDocument)
	}

	var (
		text string
		err  error
	)

	switch doc.Format {
	case FormatPDF:
		text, err = extractPDF(doc.Data)
	case FormatDOCX:
		text, err = extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}

	if err != nil {
		return "", err
	}

	text = Normalize(text)
	if text == "" {
		return "", ErrEmptyDocument
	}

	return text, nil
}

// Normalize collapses every run of whitespace into a single space and trims
// the result.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
