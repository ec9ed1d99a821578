// Package docmodel is the format-neutral intermediate representation of a
// generated document: an ordered list of sections, each an ordered list of
// blocks. Output formats (intermediate markup, HTML) are produced by
// renderers that walk this model; nothing here knows about markup syntax.
package docmodel

// InlineKind tags an Inline value.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineBold
)

// Inline is a run of text inside a heading, paragraph or list item.
type Inline struct {
	Kind InlineKind
	Text string
}

// Text returns a plain text run.
func Text(s string) Inline { return Inline{Kind: InlineText, Text: s} }

// Bold returns a strongly emphasized run.
func Bold(s string) Inline { return Inline{Kind: InlineBold, Text: s} }

// BlockKind tags a Block value.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockBulletList
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockBulletList:
		return "bullet_list"
	default:
		return "unknown"
	}
}

// Block is a tagged union. Headings use Level and Inlines, paragraphs use
// Inlines, bullet lists use Items.
type Block struct {
	Kind    BlockKind
	Level   int
	Inlines []Inline
	Items   []Item
}

// Item is one bullet of a BulletList.
type Item []Inline

// MaxHeadingLevel is the deepest heading the model supports.
const MaxHeadingLevel = 3

// Heading returns a heading block. Levels are clamped to 1..MaxHeadingLevel.
func Heading(level int, inlines ...Inline) Block {
	level = max(1, min(level, MaxHeadingLevel))
	return Block{Kind: BlockHeading, Level: level, Inlines: inlines}
}

// Paragraph returns a paragraph block.
func Paragraph(inlines ...Inline) Block {
	return Block{Kind: BlockParagraph, Inlines: inlines}
}

// BulletList returns a list block. Consecutive items always belong to one list.
func BulletList(items ...Item) Block {
	return Block{Kind: BlockBulletList, Items: items}
}

// Section is one top-level part of a document. Ordinal is zero for
// unnumbered sections.
type Section struct {
	ID      string
	Ordinal int
	Blocks  []Block
}

// Document is the assembled result of a generation call.
type Document struct {
	Title    string
	Sections []Section
}

// SectionIDs returns the section identifiers in document order.
func (d *Document) SectionIDs() []string {
	ids := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// Section returns the section with id, if present.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// PlainText concatenates the text of inlines without any markup.
func PlainText(inlines []Inline) string {
	n := 0
	for _, in := range inlines {
		n += len(in.Text)
	}
	buf := make([]byte, 0, n)
	for _, in := range inlines {
		buf = append(buf, in.Text...)
	}
	return string(buf)
}
