package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeXToHTML(t *testing.T) {
	tests := []struct {
		name string
		tex  string
		want string
	}{
		{"variable", "x", "<i>x</i>"},
		{"superscript", "x^2", "<i>x</i><sup>2</sup>"},
		{"braced superscript", "x^{10}", "<i>x</i><sup>10</sup>"},
		{"subscript", "a_n", "<i>a</i><sub><i>n</i></sub>"},
		{"greek and operator", `\alpha + \beta`, `&alpha;<span class="mo">+</span>&beta;`},
		{"minus", "3 - 1", `3<span class="mo">&minus;</span>1`},
		{"fraction", `\frac{a}{b}`, `<span class="frac"><span class="num"><i>a</i></span><span class="den"><i>b</i></span></span>`},
		{"square root", `\sqrt{2}`, `<span class="sqrt"><span class="radical">&radic;</span><span class="radicand">2</span></span>`},
		{"nth root", `\sqrt[3]{8}`, `<span class="sqrt"><sup class="root-index">3</sup><span class="radical">&radic;</span><span class="radicand">8</span></span>`},
		{"text", `\text{if } x`, `<span class="mtext">if </span><i>x</i>`},
		{"function", `\sin x`, `<span class="mop">sin</span><i>x</i>`},
		{"unknown command", `\foo`, "<i>foo</i>"},
		{"escaped brace", `\{1\}`, "{1}"},
		{"comparison escapes", "a < b", `<i>a</i><span class="mo">&lt;</span><i>b</i>`},
		{"left right", `\left( x \right)`, "(<i>x</i>)"},
		{"line break", `a \\ b`, "<i>a</i><br><i>b</i>"},
		{"environment names dropped", `\begin{aligned} x \end{aligned}`, "<i>x</i>"},
		{"double struck", `\mathbb{R}`, "&#8477;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeXToHTML(tt.tex))
		})
	}
}

func TestTeXToHTMLNeverEmitsBackslash(t *testing.T) {
	inputs := []string{
		`\frac{-b \pm \sqrt{b^2 - 4ac}}{2a}`,
		`\sum_{i=1}^{n} i = \frac{n(n+1)}{2}`,
		`\int_0^\infty e^{-x} \, dx`,
		`\unknown{thing} \`,
		`\vec{F} = m\vec{a}`,
	}
	for _, in := range inputs {
		assert.NotContains(t, TeXToHTML(in), `\`, in)
	}
}

func TestTeXToHTMLUnbalancedInput(t *testing.T) {
	assert.NotPanics(t, func() {
		TeXToHTML(`\frac{1}{`)
		TeXToHTML(`x^`)
		TeXToHTML(`}}{{`)
		TeXToHTML(`\sqrt[3`)
	})
}
