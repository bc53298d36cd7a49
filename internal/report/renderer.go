// Package report renders a ScoreResult into a PDF artifact and persists it
// under an opaque identifier.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/resumetools/ats-scanner/internal/scoring"
)

const (
	pageWidthMM    = 210
	headerHeightMM = 25
	barWidthMM     = 150
	barLeftMM      = 30
)

// asciiFallback maps glyphs outside latin-1 to ASCII equivalents so they
// survive the core PDF fonts.
var asciiFallback = strings.NewReplacer(
	"✓", "[PASS]", "⚠", "[WARN]", "🧠", "[AI]",
	"→", "->", "•", "-", "–", "-", "—", "-",
	"“", `"`, "”", `"`, "‘", "'", "’", "'",
	"…", "...", "£", "GBP", "€", "EUR", "°", "deg",
)

type rgb struct{ r, g, b int }

var (
	headerColor  = rgb{59, 89, 152}
	goodColor    = rgb{0, 128, 0}
	mediumColor  = rgb{255, 165, 0}
	badColor     = rgb{255, 0, 0}
	neutralColor = rgb{0, 0, 0}
)

// reportLine is one rendered feedback entry: the severity's report marker
// plus the untouched message.
type reportLine struct {
	severity scoring.Severity
	text     string
}

// Renderer formats a scoring result into a paginated PDF. It holds no state
// and performs no decision logic: score and messages pass through exactly.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the PDF report for the result to w.
func (r *Renderer) Render(res *scoring.Result, w io.Writer) error {
	if res == nil {
		return fmt.Errorf("score result is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header band.
	pdf.SetFillColor(headerColor.r, headerColor.g, headerColor.b)
	pdf.Rect(0, 0, pageWidthMM, headerHeightMM, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, headerHeightMM, "ATS Resume Evaluation Report", "", 1, "C", false, 0, "")

	// Score, color-banded by value.
	color := scoreColor(res.Score)
	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(color.r, color.g, color.b)
	pdf.CellFormat(0, 20, fmt.Sprintf("%d/100", res.Score), "", 1, "C", false, 0, "")

	// Score bar.
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(barLeftMM, pdf.GetY(), barWidthMM, 10, "D")
	pdf.SetFillColor(color.r, color.g, color.b)
	pdf.Rect(barLeftMM, pdf.GetY(), barWidthMM*float64(res.Score)/100, 10, "F")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(headerColor.r, headerColor.g, headerColor.b)
	pdf.CellFormat(0, 10, "Detailed Feedback:", "", 1, "L", false, 0, "")
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, line := range buildLines(res) {
		c := severityColor(line.severity)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.MultiCell(0, 6, asciiFallback.Replace(line.text), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 10, "Generated by ATS Resume Scanner", "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

// buildLines maps the result's feedback to report lines one-to-one, in
// order, prefixing each message with its severity's report marker.
func buildLines(res *scoring.Result) []reportLine {
	lines := make([]reportLine, 0, len(res.Feedback))
	for _, item := range res.Feedback {
		lines = append(lines, reportLine{
			severity: item.Severity,
			text:     fmt.Sprintf("%s %s", reportMarker(item.Severity), item.Message),
		})
	}
	return lines
}

func reportMarker(s scoring.Severity) string {
	switch s {
	case scoring.Positive:
		return "[PASS]"
	case scoring.Warning:
		return "[WARN]"
	case scoring.Insight:
		return "[AI]"
	default:
		return "[INFO]"
	}
}

func scoreColor(score int) rgb {
	switch {
	case score >= 70:
		return goodColor
	case score >= 50:
		return mediumColor
	default:
		return badColor
	}
}

func severityColor(s scoring.Severity) rgb {
	switch s {
	case scoring.Positive:
		return goodColor
	case scoring.Warning:
		return mediumColor
	default:
		return neutralColor
	}
}
