package render

// RunStyle captures the inline run formatting of a document element.
type RunStyle struct {
	Bold bool
	Size int // half-points in DOCX, points in PDF after halving
}

const (
	NameSize    = 40
	HeadingSize = 28
	BodySize    = 22
)

// StyleMap centralizes formatting for the document elements.
var StyleMap = map[string]RunStyle{
	"name":           {Bold: true, Size: NameSize},
	"contact":        {Size: BodySize},
	"sectionHeading": {Bold: true, Size: HeadingSize},
	"body":           {Size: BodySize},
}

func (s RunStyle) points() float64 {
	return float64(s.Size) / 2
}
