// Package markdown parses the lightweight markup policies are rendered into.
//
// The parser is goldmark restricted to the constructs the document model can
// produce: ATX headings, flat "-" bullet lists, paragraphs and emphasis.
// Links, code, tables, raw HTML, ordered lists, other bullet markers and
// nested lists are not recognized and stay literal text.
package markdown

import (
	"bytes"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// NewParser returns a parser for the restricted markup subset.
func NewParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewATXHeadingParser(), 600),
			util.Prioritized(flatListParser{parser.NewListParser()}, 300),
			util.Prioritized(parser.NewListItemParser(), 400),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)
}

// flatListParser only opens top-level lists marked with '-'. Items of such a
// list are still handled by goldmark's list item parser, which rejects any
// marker the open list cannot continue with.
type flatListParser struct {
	parser.BlockParser
}

func (flatListParser) Trigger() []byte { return []byte{'-'} }

func (p flatListParser) Open(parent gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	for n := parent; n != nil; n = n.Parent() {
		if n.Kind() == gmast.KindListItem {
			return nil, parser.NoChildren
		}
	}
	return p.BlockParser.Open(parent, reader, pc)
}

// ParseBody parses a markup body into a goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return NewParser().Parse(text.NewReader(body))
}

// Heading is a heading found in a markup body. Line is 1-based.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// ExtractHeadings returns the headings of body in document order.
func ExtractHeadings(body []byte) []Heading {
	root := ParseBody(body)
	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		heading := Heading{Level: h.Level, Text: InlineText(h, body)}
		if h.Lines().Len() > 0 {
			heading.Line = bytes.Count(body[:h.Lines().At(0).Start], []byte("\n")) + 1
		}
		out = append(out, heading)
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// InlineText concatenates the text below n, dropping emphasis markers.
func InlineText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			sb.Write(util.UnescapePunctuations(t.Segment.Value(source)))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
