// Package render turns an assembled policy document into downloadable
// artifacts: styled HTML, plain text and Markdown with a YAML header.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/inful/mdfp"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
	"git.home.luguber.info/inful/policygen/internal/frontmatter"
	"git.home.luguber.info/inful/policygen/internal/policy"
	"git.home.luguber.info/inful/policygen/internal/transpile"
)

// DefaultFooter is the footer line of HTML output.
const DefaultFooter = "This privacy policy was generated using PolicyGen."

// Options controls presentation. A zero Options renders without footer,
// generator name or Markdown header.
type Options struct {
	ProductName string
	FooterText  string
	// MarkdownHeader prefixes Markdown output with a YAML header.
	MarkdownHeader bool
}

// Artifact is one rendered policy.
type Artifact struct {
	Format      Format
	Filename    string
	Body        []byte
	Fingerprint string
}

func (a *Artifact) ContentType() string { return a.Format.ContentType() }

// Meta carries the request details that are not part of the document.
type Meta struct {
	WebsiteName   string
	EffectiveDate string
}

// Renderer produces artifacts. It holds no per-call state and is safe for
// concurrent use.
type Renderer struct {
	opts       Options
	transpiler *transpile.Transpiler
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts, transpiler: transpile.New()}
}

// Fingerprint returns the content fingerprint of intermediate markup. Equal
// documents always have equal fingerprints regardless of output format.
func Fingerprint(m transpile.Markup) string {
	return mdfp.CalculateFingerprintFromParts("", string(m))
}

// Render renders doc in format f.
func (r *Renderer) Render(doc *dm.Document, meta Meta, f Format) (*Artifact, error) {
	markup := transpile.FromDocument(doc)
	art := &Artifact{
		Format:      f,
		Filename:    policy.DownloadFilename(meta.WebsiteName, f.Extension()),
		Fingerprint: Fingerprint(markup),
	}

	var err error
	switch f {
	case FormatText:
		art.Body = []byte(markup)
	case FormatMarkdown:
		art.Body, err = r.markdown(doc, meta, markup, art.Fingerprint)
	case FormatHTML:
		art.Body, err = r.html(doc, markup, art.Fingerprint)
	default:
		err = fmt.Errorf("unsupported format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return art, nil
}

func (r *Renderer) markdown(doc *dm.Document, meta Meta, markup transpile.Markup, fingerprint string) ([]byte, error) {
	if !r.opts.MarkdownHeader {
		return []byte(markup), nil
	}
	header, err := frontmatter.Encode(frontmatter.Header{
		Title:         doc.Title,
		Website:       strings.TrimSpace(meta.WebsiteName),
		EffectiveDate: meta.EffectiveDate,
		Sections:      doc.SectionIDs(),
		Generator:     r.opts.ProductName,
		Fingerprint:   fingerprint,
	})
	if err != nil {
		return nil, fmt.Errorf("encode markdown header: %w", err)
	}
	return frontmatter.Join(header, []byte(markup)), nil
}

func (r *Renderer) html(doc *dm.Document, markup transpile.Markup, fingerprint string) ([]byte, error) {
	fragment, err := r.transpiler.Transpile(markup)
	if err != nil {
		return nil, err
	}
	// Text inside the fragment is escaped by the transpiler.
	body := template.HTML(fragment) //nolint:gosec

	var buf bytes.Buffer
	err = shellTemplate.Execute(&buf, shellData{
		Title:       doc.Title,
		Fingerprint: fingerprint,
		Body:        body,
		Footer:      r.opts.FooterText,
	})
	if err != nil {
		return nil, fmt.Errorf("execute html shell: %w", err)
	}
	return buf.Bytes(), nil
}
