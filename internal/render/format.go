package render

import "git.home.luguber.info/inful/policygen/internal/foundation/normalization"

// Format is an output format of a rendered policy.
type Format string

const (
	FormatHTML     Format = "html"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// Formats lists the supported formats, default first.
var Formats = []Format{FormatHTML, FormatText, FormatMarkdown}

var formatNormalizer = normalization.NewNormalizer("format", map[string]Format{
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"txt":      FormatText,
	"text":     FormatText,
	"plain":    FormatText,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
}, FormatHTML)

// ParseFormat normalizes a user supplied format name. Empty input selects HTML.
func ParseFormat(s string) (Format, error) { return formatNormalizer.NormalizeWithError(s) }

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	default:
		return ".html"
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}
