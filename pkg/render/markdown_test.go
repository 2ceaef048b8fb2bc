package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toHTML(t *testing.T, md string) string {
	t.Helper()
	out, err := MarkdownToHTML(NewMarkdown(), md)
	require.NoError(t, err)
	return out
}

func TestMarkdownInlineMath(t *testing.T) {
	out := toHTML(t, "The area is $x^2$ square units.")

	assert.Contains(t, out, `<span class="math math-inline"><i>x</i><sup>2</sup></span>`)
	assert.NotContains(t, out, "$")
}

func TestMarkdownCurrencyStaysText(t *testing.T) {
	out := toHTML(t, "It costs $5 and $10 at the market.")

	assert.Contains(t, out, "$5 and $10")
	assert.NotContains(t, out, "math")
}

func TestMarkdownInlineDisplayMath(t *testing.T) {
	out := toHTML(t, "So $$\\frac{1}{2}$$ of the class passed.")

	assert.Contains(t, out, `<span class="math math-display"><span class="frac">`)
}

func TestMarkdownMathBlock(t *testing.T) {
	out := toHTML(t, "Formula:\n\n$$\nE = mc^2\n$$\n\nAfter.")

	assert.Contains(t, out, `<div class="math math-display"><i>E</i><span class="mo">=</span><i>mc</i><sup>2</sup></div>`)
	assert.Contains(t, out, "<p>After.</p>")
}

func TestMarkdownSingleLineMathBlock(t *testing.T) {
	out := toHTML(t, "$$a^2 + b^2 = c^2$$\n\nNext paragraph.")

	assert.Contains(t, out, `<div class="math math-display">`)
	assert.Contains(t, out, "<p>Next paragraph.</p>")
}

func TestMarkdownGFMTable(t *testing.T) {
	out := toHTML(t, "| Week | Topic |\n|---|---|\n| 1 | Citizenship |\n")

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Week</th>")
	assert.Contains(t, out, "<td>Citizenship</td>")
}
