package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	KindMathInline = ast.NewNodeKind("MathInline")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// MathInline is a $...$ span, or a $$...$$ span inside a paragraph.
type MathInline struct {
	ast.BaseInline
	TeX     []byte
	Display bool
}

func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"TeX": string(n.TeX)}, nil)
}

// MathBlock is a $$ fenced block. Its lines hold the TeX source.
type MathBlock struct {
	ast.BaseBlock
	fence  int
	closed bool
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '$' {
		return nil
	}

	if line[1] == '$' {
		end := bytes.Index(line[2:], []byte("$$"))
		if end <= 0 {
			return nil
		}
		tex := line[2 : 2+end]
		block.Advance(end + 4)
		return &MathInline{TeX: bytes.Clone(tex), Display: true}
	}

	// Pandoc rule: the opener is followed by a non-space, the closer is
	// preceded by a non-space and not followed by a digit.
	if isSpace(line[1]) {
		return nil
	}
	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '$':
			if isSpace(line[i-1]) {
				continue
			}
			if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
				continue
			}
			tex := line[1:i]
			block.Advance(i + 1)
			return &MathInline{TeX: bytes.Clone(tex)}
		}
	}
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos+1 >= len(line) || line[pos] != '$' || line[pos+1] != '$' {
		return nil, parser.NoChildren
	}

	fence := 0
	for i := pos; i < len(line) && line[i] == '$'; i++ {
		fence++
	}
	node := &MathBlock{fence: fence}

	rest := line[pos+fence:]
	if util.IsBlank(rest) {
		return node, parser.NoChildren
	}

	// $$ x $$ on one line is a complete block; trailing text makes it inline.
	if end := bytes.Index(rest, []byte("$$")); end >= 0 {
		if !util.IsBlank(rest[end+2:]) {
			return nil, parser.NoChildren
		}
		start := segment.Start + pos + fence
		node.Lines().Append(text.NewSegment(start, start+end))
		node.closed = true
		return node, parser.NoChildren
	}

	start := segment.Start + pos + fence
	node.Lines().Append(text.NewSegment(start, segment.Stop))
	return node, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlock)
	if n.closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	// The block loop advances to the next line itself; stop before the newline.
	rest := segment.Stop - segment.Start
	if len(line) > 0 && line[len(line)-1] == '\n' {
		rest--
	}

	fence := bytes.Repeat([]byte{'$'}, n.fence)
	trimmed := bytes.TrimSpace(line)
	if bytes.HasSuffix(trimmed, fence) {
		body := bytes.TrimSpace(bytes.TrimSuffix(trimmed, fence))
		if len(body) > 0 {
			offset := bytes.Index(line, body)
			n.Lines().Append(text.NewSegment(segment.Start+offset, segment.Start+offset+len(body)))
		}
		reader.Advance(rest)
		return parser.Close
	}

	n.Lines().Append(segment)
	reader.Advance(rest)
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathHTMLRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathInline)
	class := "math math-inline"
	if n.Display {
		class = "math math-display"
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	_, _ = w.WriteString(TeXToHTML(string(n.TeX)))
	_, _ = w.WriteString(`</span>`)
	return ast.WalkSkipChildren, nil
}

func (r *mathHTMLRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var tex bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		tex.Write(seg.Value(source))
		tex.WriteByte('\n')
	}
	_, _ = w.WriteString(`<div class="math math-display">`)
	_, _ = w.WriteString(TeXToHTML(tex.String()))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

// Math adds $ and $$ math to goldmark, rendered as presentational HTML.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 850)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 150)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&mathHTMLRenderer{}, 500)),
	)
}
