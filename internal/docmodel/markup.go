package docmodel

import (
	"bytes"
	"io"
	"strings"
	"unicode"
)

// WriteMarkup serializes doc into the intermediate lightweight markup:
// "#" headings, "**" bold runs, "- " bullets and blank-line separated blocks.
// Sections are concatenated in order with no additional separators beyond
// the blank line every block ends with.
func WriteMarkup(w io.Writer, doc *Document) error {
	var buf bytes.Buffer
	for _, section := range doc.Sections {
		writeSection(&buf, section)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

// Markup returns the intermediate markup of doc.
func Markup(doc *Document) string {
	var sb strings.Builder
	_ = WriteMarkup(&sb, doc)
	return sb.String()
}

func writeSection(buf *bytes.Buffer, s Section) {
	for _, b := range s.Blocks {
		writeBlock(buf, b)
		buf.WriteString("\n\n")
	}
}

func writeBlock(buf *bytes.Buffer, b Block) {
	switch b.Kind {
	case BlockHeading:
		buf.WriteString(strings.Repeat("#", b.Level))
		buf.WriteByte(' ')
		writeInlines(buf, b.Inlines, headingSpecials, false)
	case BlockParagraph:
		writeInlines(buf, b.Inlines, inlineSpecials, true)
	case BlockBulletList:
		for i, item := range b.Items {
			if i > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString("- ")
			writeInlines(buf, item, inlineSpecials, true)
		}
	}
}

// Characters backslash-escaped inside text runs. Headings also escape '#'
// so a trailing run cannot be read as a closing sequence.
const (
	inlineSpecials  = `\*_`
	headingSpecials = `\*_#`
)

// writeInlines writes the runs of one block. Text is made inert: line breaks
// fold to a single space and emphasis characters are escaped, so no run can
// open a block or an emphasis span of its own. guardStart also neutralizes a
// list or heading marker at the start of a paragraph or list item.
func writeInlines(buf *bytes.Buffer, inlines []Inline, specials string, guardStart bool) {
	atStart := guardStart
	for _, in := range inlines {
		text := escapeText(in.Text, specials)
		if atStart {
			text = escapeBlockStart(text)
		}
		if text == "" {
			continue
		}
		if in.Kind == InlineBold {
			buf.WriteString("**")
			buf.WriteString(text)
			buf.WriteString("**")
		} else {
			buf.WriteString(text)
		}
		atStart = false
	}
}

// escapeText folds line breaks and escapes specials. An underscore between
// two letters or digits cannot delimit emphasis and is left alone.
func escapeText(s, specials string) string {
	if !strings.ContainsAny(s, specials+"\r\n") {
		return s
	}
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	inBreak := false
	for i, r := range runes {
		if r == '\r' || r == '\n' {
			if !inBreak {
				sb.WriteByte(' ')
			}
			inBreak = true
			continue
		}
		inBreak = false
		if strings.ContainsRune(specials, r) && (r != '_' || !intraword(runes, i)) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func intraword(runes []rune, i int) bool {
	alnum := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	return i > 0 && i < len(runes)-1 && alnum(runes[i-1]) && alnum(runes[i+1])
}

// escapeBlockStart neutralizes what would open a heading or list when the
// text begins a block: leading indentation, '#', '-', '+' and "1." / "1)".
func escapeBlockStart(s string) string {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '-', '+':
		return "\\" + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + "\\" + s[digits:]
	}
	return s
}
