package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// extractDOCX concatenates paragraph text in document order. Tables are
// interleaved where they appear in the body, cells in row-major order. The
// library stringifies tables as markdown, so the pipe and separator-row
// scaffolding is stripped to keep only cell text.
func extractDOCX(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: docx parser panic: %v", ErrCorruptDocument, r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var builder strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph:
			builder.WriteString(fmt.Sprint(item))
			builder.WriteString("\n")
		case *docx.Table:
			builder.WriteString(stripTableMarkup(fmt.Sprint(item)))
			builder.WriteString("\n")
		}
	}

	return builder.String(), nil
}

// stripTableMarkup drops the markdown table tokens (pipes and alignment
// separators like ":----:") the library emits around cell text.
func stripTableMarkup(table string) string {
	fields := strings.Fields(table)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.Trim(f, ":-|") == "" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
