package render

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageBreakMarker is inserted before every week heading after the first.
const PageBreakMarker = `<div class="page-break" style="page-break-before: always;"></div>`

// weekHeading matches "Week 3", "week 3 - Topic", "WEEK 3: Topic", "Week 3 – Topic".
var weekHeading = regexp.MustCompile(`(?i)^\s*week\s+\d+(\s*[-–—:].*|\s.*)?$`)

// IsWeekHeading reports whether heading text starts a new week.
func IsWeekHeading(text string) bool {
	return weekHeading.MatchString(strings.TrimSpace(text))
}

// Paginate inserts a page break marker before every level 1-3 week heading
// except the first. Other markup is passed through unchanged.
func Paginate(fragment string) (string, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), root)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	var headings []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isPageHeading(n) && IsWeekHeading(textContent(n)) {
			headings = append(headings, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if len(headings) < 2 {
		return fragment, nil
	}

	for _, h := range headings[1:] {
		h.Parent.InsertBefore(pageBreakNode(), h)
	}

	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return b.String(), nil
}

func isPageHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3:
		return true
	}
	return false
}

func pageBreakNode() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: "page-break"},
			{Key: "style", Val: "page-break-before: always;"},
		},
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}
