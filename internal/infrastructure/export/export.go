// Package export renders tabular reports into downloadable documents.
package export

import (
	"errors"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Document is a titled table. Widths are relative column weights; when
// absent every column gets the same share.
type Document struct {
	Title   string
	Meta    []string
	Headers []string
	Rows    [][]string
	Widths  []float64
}

type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// NewRenderer returns the renderer for format ("xlsx" or "pdf").
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX:
		return NewExcelRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (d Document) weights() []float64 {
	out := make([]float64, len(d.Headers))
	total := 0.0
	for i := range out {
		out[i] = 1
		if i < len(d.Widths) && d.Widths[i] > 0 {
			out[i] = d.Widths[i]
		}
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
