package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DocxContentType is the MIME type of a Word document package.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// A4 in twentieths of a point, with half-inch margins.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	pageMarginTwips = 720
	textWidthTwips  = pageWidthTwips - 2*pageMarginTwips
	listIndentTwips = 720
)

// Abstract numbering ids understood by godocx's list instances.
const (
	numberedList = 1
	bulletList   = 2
)

const codeFont = "Courier New"

// HTMLToDocx converts a standalone HTML document into a .docx package.
// Headings map to Heading styles, lists to Word numbering, page-break
// markers to page breaks before the next paragraph.
func HTMLToDocx(document string) ([]byte, error) {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := findElement(doc, atom.Body)
	if root == nil {
		root = doc
	}

	rd, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx: %w", err)
	}
	setA4(rd)

	w := &docxWriter{doc: rd, add: rd.AddEmptyParagraph}
	w.blocks(root, blockContext{})

	var buf bytes.Buffer
	if err := rd.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func setA4(rd *docx.RootDoc) {
	body := rd.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	width, height := uint64(pageWidthTwips), uint64(pageHeightTwips)
	margin := pageMarginTwips
	body.SectPr.PageSize = &ctypes.PageSize{Width: &width, Height: &height}
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top: &margin, Right: &margin, Bottom: &margin, Left: &margin,
		Header: &margin, Footer: &margin,
	}
}

type listItem struct {
	numID    int
	level    int
	numbered bool
}

type blockContext struct {
	style string
	runs  runProps
	item  *listItem
}

type runProps struct {
	bold, italic, underline, strike, code bool
	sup, sub                              bool
}

type docxWriter struct {
	doc *docx.RootDoc
	// add appends an empty paragraph to the current container: the body,
	// or a table cell while one is being filled.
	add          func() *docx.Paragraph
	inCell       bool
	pendingBreak bool
}

func (w *docxWriter) blocks(n *html.Node, ctx blockContext) {
	var pending []*html.Node
	flush := func() {
		if len(pending) > 0 {
			w.paragraph(ctx, ctx.style, false, pending)
			pending = nil
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && isSkipped(c):
		case c.Type == html.ElementNode && isBlockElement(c):
			flush()
			w.block(c, ctx)
		case c.Type == html.TextNode || c.Type == html.ElementNode:
			pending = append(pending, c)
		}
	}
	flush()
}

func (w *docxWriter) block(n *html.Node, ctx blockContext) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.paragraph(ctx, "Heading"+n.Data[1:], false, children(n))
	case atom.P:
		w.paragraph(ctx, ctx.style, false, children(n))
	case atom.Div:
		switch {
		case hasClass(n, "page-break"):
			w.pendingBreak = true
		case hasClass(n, "math-display"):
			w.paragraph(ctx, ctx.style, true, children(n))
		default:
			w.blocks(n, ctx)
		}
	case atom.Ul, atom.Ol:
		w.list(n, ctx)
	case atom.Pre:
		w.code(n)
	case atom.Blockquote:
		quoted := ctx
		quoted.style = "Quote"
		w.blocks(n, quoted)
	case atom.Hr:
		w.rule()
	case atom.Table:
		w.table(n, ctx)
	default:
		w.blocks(n, ctx)
	}
}

// newParagraph appends a paragraph and applies a pending page break to it.
func (w *docxWriter) newParagraph() *docx.Paragraph {
	p := w.add()
	if w.pendingBreak {
		prop(p).PageBreakBefore = ctypes.OnOffFromBool(true)
		w.pendingBreak = false
	}
	return p
}

func prop(p *docx.Paragraph) *ctypes.ParagraphProp {
	ct := p.GetCT()
	if ct.Property == nil {
		ct.Property = ctypes.DefaultParaProperty()
	}
	return ct.Property
}

func (w *docxWriter) paragraph(ctx blockContext, style string, center bool, nodes []*html.Node) {
	state := &inlineState{atStart: true}
	for _, n := range nodes {
		w.inline(n, ctx.runs, "", state)
	}
	if len(state.segments) == 0 {
		return
	}

	if style == "" && ctx.item != nil {
		style = "ListParagraph"
	}

	p := w.newParagraph()
	if style != "" {
		p.Style(style)
	}
	if item := ctx.item; item != nil {
		if !item.numbered {
			p.Numbering(item.numID, item.level)
			item.numbered = true
		} else {
			left := listIndentTwips * (item.level + 1)
			p.Indent(&ctypes.Indent{Left: &left})
		}
	}
	if center {
		p.Justification(stypes.JustificationCenter)
	}
	for _, seg := range state.segments {
		seg.write(p)
	}
}

func (w *docxWriter) list(n *html.Node, ctx blockContext) {
	level := 0
	if ctx.item != nil {
		level = min(ctx.item.level+1, 8)
	}

	kind := bulletList
	if n.DataAtom == atom.Ol {
		kind = numberedList
	}
	numID := w.doc.NewListInstance(kind)

	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		itemCtx := ctx
		itemCtx.style = ""
		itemCtx.item = &listItem{numID: numID, level: level}
		w.blocks(li, itemCtx)
	}
}

func (w *docxWriter) code(n *html.Node) {
	text := strings.TrimRight(textContent(n), "\n")
	for _, line := range strings.Split(text, "\n") {
		p := w.newParagraph()
		p.Style("MacroText")
		p.Spacing(0, 0)
		if line != "" {
			p.AddText(line).Font(codeFont)
		}
	}
}

func (w *docxWriter) rule() {
	color, space, size := "CCCCCC", "1", 6
	prop(w.newParagraph()).Border = &ctypes.ParaBorder{
		Bottom: &ctypes.Border{Val: stypes.BorderStyleSingle, Color: &color, Space: &space, Size: &size},
	}
}

func (w *docxWriter) table(n *html.Node, ctx blockContext) {
	rows := tableRows(n)
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(tableCells(r)))
	}
	if cols == 0 {
		return
	}

	// Word tables cannot nest through godocx; inner tables become paragraphs.
	if w.inCell {
		for _, r := range rows {
			for _, cell := range tableCells(r) {
				w.blocks(cell, ctx)
			}
		}
		return
	}

	if w.pendingBreak {
		w.doc.AddPageBreak()
		w.pendingBreak = false
	}

	colWidth := textWidthTwips / cols
	grid := make([]uint64, cols)
	for i := range grid {
		grid[i] = uint64(colWidth)
	}

	t := w.doc.AddTable()
	t.Style("TableGrid")
	t.Width(5000, stypes.TableWidthPct)
	t.Grid(grid...)

	for _, r := range rows {
		row := t.AddRow()
		cells := tableCells(r)
		for i := range cols {
			cell := row.AddCell().Width(colWidth, stypes.TableWidthDxa)
			if i >= len(cells) {
				cell.AddEmptyPara()
				continue
			}

			cellCtx := blockContext{runs: ctx.runs}
			if cells[i].DataAtom == atom.Th {
				cellCtx.runs.bold = true
			}

			written := 0
			w.add = func() *docx.Paragraph {
				written++
				return cell.AddEmptyPara()
			}
			w.inCell = true
			w.blocks(cells[i], cellCtx)
			w.inCell = false
			w.add = w.doc.AddEmptyParagraph

			if written == 0 {
				cell.AddEmptyPara()
			}
		}
	}
}

// segment is one run of text, a line break, or a hyperlinked run.
type segment struct {
	text  string
	props runProps
	href  string
	br    bool
}

func (s segment) write(p *docx.Paragraph) {
	switch {
	case s.br:
		p.AddRun().AddBreak(nil)
	case s.href != "":
		styleRun(p.AddLink(s.text, s.href), s.props)
	default:
		styleRun(p.AddText(s.text), s.props)
	}
}

type inlineState struct {
	segments  []segment
	atStart   bool
	lastSpace bool
}

func (s *inlineState) text(text string, props runProps, href string) {
	s.segments = append(s.segments, segment{text: text, props: props, href: href})
	s.atStart = false
	s.lastSpace = strings.HasSuffix(text, " ")
}

func (w *docxWriter) inline(n *html.Node, props runProps, href string, state *inlineState) {
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if state.atStart || state.lastSpace {
			text = strings.TrimLeft(text, " ")
		}
		if text != "" {
			state.text(text, props, href)
		}
		return
	case html.ElementNode:
	default:
		return
	}

	if isSkipped(n) {
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		props.bold = true
	case atom.Em, atom.I, atom.Cite, atom.Var:
		props.italic = true
	case atom.U, atom.Ins:
		props.underline = true
	case atom.S, atom.Del, atom.Strike:
		props.strike = true
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		props.code = true
	case atom.Sup:
		props.sup = true
	case atom.Sub:
		props.sub = true
	case atom.Br:
		state.segments = append(state.segments, segment{br: true})
		state.lastSpace = true
		return
	case atom.Img:
		if alt := attr(n, "alt"); alt != "" {
			props.italic = true
			state.text("["+alt+"]", props, href)
		}
		return
	case atom.Input:
		if attr(n, "type") == "checkbox" {
			box := "☐ "
			if _, checked := attrValue(n, "checked"); checked {
				box = "☑ "
			}
			state.text(box, props, href)
		}
		return
	case atom.Span:
		if hasClass(n, "frac") {
			state.text(fracText(n), props, href)
			return
		}
	case atom.A:
		if link := attr(n, "href"); link != "" && href == "" {
			href = link
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.inline(c, props, href, state)
	}
}

// runStyler is the formatting surface shared by godocx runs and hyperlinks.
type runStyler[T any] interface {
	Bold(bool) T
	Italic(bool) T
	Strike(bool) T
	Underline(stypes.Underline) T
	Font(string) T
	Shading(stypes.Shading, string, string) T
	VerticalAlign(stypes.VerticalAlignRun) T
}

func styleRun[T runStyler[T]](r T, p runProps) {
	if p.bold {
		r.Bold(true)
	}
	if p.italic {
		r.Italic(true)
	}
	if p.strike {
		r.Strike(true)
	}
	if p.underline {
		r.Underline(stypes.UnderlineSingle)
	}
	if p.code {
		r.Font(codeFont)
		r.Shading(stypes.ShdClear, "auto", "F0F0F0")
	}
	switch {
	case p.sup:
		r.VerticalAlign(stypes.VerticalAlignRunSuperscript)
	case p.sub:
		r.VerticalAlign(stypes.VerticalAlignRunSubscript)
	}
}

func isBlockElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Div, atom.Ul, atom.Ol, atom.Li, atom.Pre, atom.Blockquote,
		atom.Hr, atom.Table, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.Main, atom.Nav, atom.Aside, atom.Figure, atom.Dl, atom.Dt, atom.Dd, atom.Details:
		return true
	}
	return false
}

func isSkipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Meta, atom.Link, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.DataAtom == atom.Tr {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func tableCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Td || c.DataAtom == atom.Th {
			cells = append(cells, c)
		}
	}
	return cells
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := attrValue(n, key)
	return v
}

// fracText flattens a rendered fraction to a/b, bracketing longer terms.
func fracText(n *html.Node) string {
	var num, den string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && hasClass(c, "num"):
			num = strings.TrimSpace(textContent(c))
		case c.Type == html.ElementNode && hasClass(c, "den"):
			den = strings.TrimSpace(textContent(c))
		}
	}
	bracket := func(s string) string {
		if utf8.RuneCountInString(s) > 1 {
			return "(" + s + ")"
		}
		return s
	}
	return bracket(num) + "/" + bracket(den)
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

