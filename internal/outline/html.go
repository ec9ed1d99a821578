package outline

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML outlines an HTML policy. The fingerprint attribute of the policy
// container is reported but cannot be recomputed from HTML.
func FromHTML(r io.Reader) (*Report, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var (
		headings []heading
		declared string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.H3:
				headings = append(headings, heading{level: int(n.Data[1] - '0'), text: textOf(n)})
				return
			case atom.Main:
				if fp := attr(n, "data-fingerprint"); fp != "" && declared == "" {
					declared = fp
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	rep := build(headings)
	rep.Declared = declared
	return rep, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
