package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont        = "Helvetica"
	pdfLineHeight  = 5.0
	pdfCellPadding = 1.0
	pdfMargin      = 12.0
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) Extension() string {
	return FormatPDF
}

// Render lays the table out on landscape A4 pages, repeating the header row
// on every page. Cell text wraps inside its column and a row grows to fit
// its tallest cell.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin
	weights := doc.weights()
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = w * usable
	}

	if doc.Title != "" {
		pdf.SetFont(pdfFont, "B", 14)
		pdf.MultiCell(0, 9, tr(doc.Title), "", "L", false)
	}
	pdf.SetFont(pdfFont, "", 9)
	for _, line := range doc.Meta {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	if doc.Title != "" || len(doc.Meta) > 0 {
		pdf.Ln(3)
	}

	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(230, 243, 255)
		lines, height := wrapRow(pdf, tr, widths, doc.Headers)
		drawRow(pdf, widths, lines, height, "C", true)
		pdf.SetFont(pdfFont, "", 9)
	}
	if len(doc.Headers) > 0 {
		header()
	}

	bottom := pageH - 2*pdfMargin
	for _, values := range doc.Rows {
		lines, height := wrapRow(pdf, tr, widths, values)
		if pdf.GetY()+height > bottom {
			pdf.AddPage()
			header()
		}
		drawRow(pdf, widths, lines, height, "L", false)
	}

	if len(doc.Rows) == 0 {
		pdf.SetFont(pdfFont, "I", 9)
		pdf.CellFormat(0, pdfLineHeight, "No records.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapRow splits each cell into lines that fit its column in the current
// font. Text is translated to the font's code page before it is measured.
func wrapRow(pdf *fpdf.Fpdf, tr func(string) string, widths []float64, values []string) ([][]string, float64) {
	lines := make([][]string, len(widths))
	tallest := 1
	for i, w := range widths {
		for _, l := range pdf.SplitLines([]byte(tr(cell(values, i))), w) {
			lines[i] = append(lines[i], string(l))
		}
		if len(lines[i]) > tallest {
			tallest = len(lines[i])
		}
	}
	return lines, float64(tallest)*pdfLineHeight + 2*pdfCellPadding
}

func drawRow(pdf *fpdf.Fpdf, widths []float64, lines [][]string, height float64, align string, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}

	left, top := pdf.GetXY()
	x := left
	for i, w := range widths {
		pdf.Rect(x, top, w, height, style)
		for j, l := range lines[i] {
			pdf.SetXY(x, top+pdfCellPadding+float64(j)*pdfLineHeight)
			pdf.CellFormat(w, pdfLineHeight, l, "", 0, align, false, 0, "")
		}
		x += w
	}
	pdf.SetXY(left, top+height)
}
