package render

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `# Week 1 - Citizenship

Good day class, in today's class we are going to learn about **citizenship** and *duties*.

## Meaning

1. A citizen is a member of a state.
2. Citizens have rights:
   - right to life
   - right to vote

| Right | Example |
|---|---|
| Vote | Elections |
| Speech | Press |

The ratio is $\frac{1}{2}$ and costs $5 and $10.

$$
x^2 + y^2 = r^2
$$

> Remember to read ahead.

` + "```" + `
print("hello")
` + "```" + `

---

# Week 2: Values

- [x] Honesty
- [ ] Integrity

See [the syllabus](https://example.com/syllabus?a=1&b=2).
`

func docxParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(b)
	}
	return parts
}

func renderDocx(t *testing.T, md string) []byte {
	t.Helper()
	r := NewRenderer(Options{}, nil, logger.NewNopLogger())
	out, err := r.Render(context.Background(), md, FormatDocx, "http://localhost:3000")
	require.NoError(t, err)
	return out.Body
}

func TestHTMLToDocxPackageParts(t *testing.T) {
	parts := docxParts(t, renderDocx(t, sampleNote))

	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/styles.xml", "word/numbering.xml", "word/_rels/document.xml.rels"} {
		assert.Contains(t, parts, name)
	}

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1">`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading2">`)
	assert.Equal(t, 1, strings.Count(doc, "<w:pageBreakBefore"))
	assert.Contains(t, doc, "<w:numPr>")
	assert.Contains(t, doc, `<w:ilvl w:val="1">`)
	assert.Contains(t, doc, "<w:tbl>")
	assert.Contains(t, doc, `<w:pStyle w:val="Quote">`)
	assert.Contains(t, doc, `<w:pStyle w:val="MacroText">`)
	assert.Contains(t, doc, "hyperlink")
	assert.Contains(t, doc, `w:w="11906" w:h="16838"`)
	assert.NotContains(t, doc, "window.print")

	rels := parts["word/_rels/document.xml.rels"]
	assert.Contains(t, rels, `Target="https://example.com/syllabus?a=1&amp;b=2"`)
	assert.Contains(t, rels, `TargetMode="External"`)

	numbering := parts["word/numbering.xml"]
	assert.Contains(t, numbering, `<w:abstractNumId w:val="201"/>`)
	assert.Contains(t, numbering, `<w:abstractNumId w:val="202"/>`)
}

func TestHTMLToDocxTextRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(path, renderDocx(t, sampleNote), 0644))

	text, err := knowledge.ExtractDocxText(path)
	require.NoError(t, err)

	assert.Contains(t, text, "Week 1 - Citizenship")
	assert.Contains(t, text, "Good day class, in today's class we are going to learn about citizenship and duties.")
	assert.Contains(t, text, "right to vote")
	assert.Contains(t, text, "Elections")
	assert.Contains(t, text, "The ratio is 1/2 and costs $5 and $10.")
	assert.Contains(t, text, `print("hello")`)
	assert.Contains(t, text, "☑ Honesty")
	assert.Contains(t, text, "Week 2: Values")
}

func TestHTMLToDocxAcceptsAnyMarkdown(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"- a\n  - b\n    - c\n      - d\n",
		"| a |\n|---|\n",
		"$$\nunterminated",
		"<div><p>raw <b>html</b></p></div>",
		"1. one\n\n   para\n\n2. two",
		"![alt text](img.png)",
		"$\\frac{1}{$",
	}
	for _, in := range inputs {
		data := renderDocx(t, in)
		parts := docxParts(t, data)
		assert.Contains(t, parts["word/document.xml"], "<w:body>", in)
	}
}

func TestHTMLToDocxEmptyTableCells(t *testing.T) {
	data, err := HTMLToDocx("<html><body><table><tr><th>A</th><th>B</th></tr><tr><td></td></tr></table></body></html>")
	require.NoError(t, err)

	doc := docxParts(t, data)["word/document.xml"]
	assert.Equal(t, 4, strings.Count(doc, "<w:tc>"))
	assert.Equal(t, 4, strings.Count(doc, "</w:p></w:tc>"))
	assert.Contains(t, doc, "<w:b ")
}
