package outline

import (
	"git.home.luguber.info/inful/policygen/internal/frontmatter"
	"git.home.luguber.info/inful/policygen/internal/markdown"
	"git.home.luguber.info/inful/policygen/internal/render"
	"git.home.luguber.info/inful/policygen/internal/transpile"
)

// FromMarkdown outlines a Markdown or plain-text policy. When the content
// carries a header with a fingerprint, the body is checked against it.
func FromMarkdown(content []byte) (*Report, error) {
	raw, body, had, err := frontmatter.Split(content)
	if err != nil {
		return nil, err
	}

	hs := markdown.ExtractHeadings(body)
	headings := make([]heading, 0, len(hs))
	for _, h := range hs {
		headings = append(headings, heading{level: h.Level, text: h.Text})
	}
	r := build(headings)

	if !had {
		return r, nil
	}
	header, err := frontmatter.Decode(raw)
	if err != nil {
		return nil, err
	}
	if header.Fingerprint == "" {
		return r, nil
	}
	r.Declared = header.Fingerprint
	ok := render.Fingerprint(transpile.Markup(body)) == header.Fingerprint
	r.Verified = &ok
	if !ok {
		r.Issues = append(r.Issues, Issue{
			Kind:    IssueFingerprintMismatch,
			Message: "content does not match the fingerprint in its header",
		})
	}
	return r, nil
}
