// Package transpile converts intermediate policy markup into structural HTML.
package transpile

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
	"git.home.luguber.info/inful/policygen/internal/markdown"
)

// Markup is intermediate markup text. Only Markup can be transpiled, so HTML
// output can never be fed back in.
type Markup string

// HTML is a structural HTML fragment without a document shell.
type HTML string

// FromDocument serializes doc into intermediate markup.
func FromDocument(doc *dm.Document) Markup { return Markup(dm.Markup(doc)) }

// Transpiler renders headings (three levels), strong and regular emphasis,
// bullet lists and paragraphs. Anything else, including raw HTML, is emitted
// as escaped text. A Transpiler is safe for concurrent use.
type Transpiler struct {
	md goldmark.Markdown
}

func New() *Transpiler {
	return &Transpiler{md: goldmark.New(goldmark.WithParser(markdown.NewParser()))}
}

// Transpile converts m in a single pass.
func (t *Transpiler) Transpile(m Markup) (HTML, error) {
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(m), &buf); err != nil {
		return "", fmt.Errorf("transpile markup: %w", err)
	}
	return HTML(buf.String()), nil
}

// Document serializes and transpiles doc.
func (t *Transpiler) Document(doc *dm.Document) (HTML, error) {
	return t.Transpile(FromDocument(doc))
}
