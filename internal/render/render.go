package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"careerarchitect/internal/sections"
)

// Format is an output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for formats other than pdf and docx.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// fixedDate stamps every generated document so output depends only on input.
var fixedDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Record is the content of a rendered document.
type Record struct {
	FullName string
	Email    string
	Phone    string
	Sections []sections.Section
}

// ParseFormat maps a query value to a Format.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatPDF, FormatDOCX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// Render produces a document: the full name as title, an "email | phone"
// contact line, then one heading and body per section in order.
func Render(rec Record, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return renderPDF(rec)
	case FormatDOCX:
		return renderDOCX(rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type of a rendered format.
func ContentType(format Format) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func contactLine(rec Record) string {
	return rec.Email + " | " + rec.Phone
}
