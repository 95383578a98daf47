package render

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin      = 72.0
	pdfFont        = "DejaVuSansCondensed"
	pdfLineSpacing = 1.25
)

// DejaVu Sans covers Latin, Greek, Cyrillic and common symbols. Text is
// written as Identity-H with a ToUnicode map so it extracts back intact.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

func renderPDF(rec Record) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	doc.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCreationDate(fixedDate)
	doc.SetModificationDate(fixedDate)
	doc.SetCatalogSort(true)
	doc.SetTitle(rec.FullName, true)
	doc.AddPage()

	write := func(style RunStyle, text string) {
		fontStyle := ""
		if style.Bold {
			fontStyle = "B"
		}
		size := style.points()
		doc.SetFont(pdfFont, fontStyle, size)
		doc.MultiCell(0, size*pdfLineSpacing, text, "", "L", false)
	}

	write(StyleMap["name"], rec.FullName)
	write(StyleMap["contact"], contactLine(rec))
	for _, s := range rec.Sections {
		doc.Ln(StyleMap["body"].points())
		write(StyleMap["sectionHeading"], s.Name)
		for _, line := range strings.Split(s.Content, "\n") {
			write(StyleMap["body"], line)
		}
	}

	if err := doc.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
