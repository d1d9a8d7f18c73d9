package render

import (
	"bytes"
	"fmt"
	"strings"

	"consultcoach/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	reportTitle  = "Sales Call Coaching Report"
	emptySummary = "No summary available."

	marginMM      = 10
	pageBreakMM   = 15
	bodyLineMM    = 7
	headingLineMM = 10
	fontFamily    = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	black          = rgb{0, 0, 0}
	sectionColours = map[string]rgb{
		model.SectionWentWell:     {0, 150, 0},
		model.SectionImprovements: {200, 100, 0},
		model.SectionCoachingTips: {0, 0, 150},
	}
)

// PDFRenderer draws a coaching report on A4 pages using the core fonts
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render lays out every section in order and returns the PDF bytes
func (r *PDFRenderer) Render(report model.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, pageBreakMM)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 15)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	width, _ := pdf.GetPageSize()
	bodyWidth := width - 2*marginMM

	for _, section := range report.Sections {
		colour, ok := sectionColours[section.Title]
		if !ok {
			colour = black
		}

		pdf.SetFont(fontFamily, "B", 14)
		pdf.SetTextColor(colour.r, colour.g, colour.b)
		pdf.SetX(marginMM)
		pdf.CellFormat(0, headingLineMM, encodeCP1252(section.Title), "", 1, "", false, 0, "")
		pdf.SetTextColor(black.r, black.g, black.b)

		pdf.SetFont(fontFamily, "", 11)
		body := section.Body
		if section.Title == model.SectionExecutiveSummary && strings.TrimSpace(body) == "" {
			body = emptySummary
		}
		if body != "" {
			for _, line := range strings.Split(body, "\n") {
				pdf.SetX(marginMM)
				pdf.MultiCell(bodyWidth, bodyLineMM, encodeCP1252(line), "", "L", false)
			}
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
