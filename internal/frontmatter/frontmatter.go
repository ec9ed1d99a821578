// Package frontmatter reads and writes the YAML header carried by Markdown
// policy downloads.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Header describes a generated policy. Fingerprint covers the body only.
type Header struct {
	Title         string   `yaml:"title"`
	Website       string   `yaml:"website,omitempty"`
	EffectiveDate string   `yaml:"effective_date,omitempty"`
	Sections      []string `yaml:"sections,flow"`
	Generator     string   `yaml:"generator,omitempty"`
	Fingerprint   string   `yaml:"fingerprint"`
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited frontmatter from the body. CRLF input is
// accepted. If content has no frontmatter, had is false and body is content.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if bytes.HasPrefix(content, []byte("---\r\n")) {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Join prepends header to body using `---` delimiters.
func Join(header []byte, body []byte) []byte {
	out := make([]byte, 0, len(header)+len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, header...)
	if len(header) > 0 && header[len(header)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, "---\n"...)
	return append(out, body...)
}

// Encode serializes h without delimiters.
func Encode(h Header) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(h); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a raw header (without delimiters).
func Decode(raw []byte) (Header, error) {
	var h Header
	if len(bytes.TrimSpace(raw)) == 0 {
		return h, nil
	}
	if err := yaml.Unmarshal(raw, &h); err != nil {
		return Header{}, err
	}
	return h, nil
}
