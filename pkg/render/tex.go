package render

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// TeXToHTML converts the common subset of TeX math used in lecture notes to
// presentational HTML. Unknown commands are shown as their name in italics;
// backslashes never reach the output.
func TeXToHTML(src string) string {
	p := &texParser{src: strings.TrimSpace(src)}
	return p.sequence(false)
}

type texParser struct {
	src string
	pos int
}

func (p *texParser) sequence(inGroup bool) string {
	var b strings.Builder
	for p.pos < len(p.src) {
		if p.src[p.pos] == '}' {
			p.pos++
			if inGroup {
				return b.String()
			}
			continue
		}
		b.WriteString(p.atom())
	}
	return b.String()
}

// arg reads one argument: a braced group, a command, or a single character.
func (p *texParser) arg() string {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ""
	}
	switch p.src[p.pos] {
	case '{':
		p.pos++
		return p.sequence(true)
	case '\\':
		return p.command()
	default:
		return p.char()
	}
}

func (p *texParser) atom() string {
	c := p.src[p.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		p.pos++
		return ""
	case c == '{':
		p.pos++
		return p.sequence(true)
	case c == '^':
		p.pos++
		return "<sup>" + p.arg() + "</sup>"
	case c == '_':
		p.pos++
		return "<sub>" + p.arg() + "</sub>"
	case c == '&':
		p.pos++
		return "&emsp;"
	case c == '~':
		p.pos++
		return "&nbsp;"
	case c == '\\':
		return p.command()
	case isLetter(c):
		start := p.pos
		for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
			p.pos++
		}
		return "<i>" + p.src[start:p.pos] + "</i>"
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
			p.pos++
		}
		return p.src[start:p.pos]
	default:
		return p.char()
	}
}

// char consumes one rune, mapping operators to their typeset form.
func (p *texParser) char() string {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	switch r {
	case '+', '=', '<', '>':
		return `<span class="mo">` + html.EscapeString(string(r)) + `</span>`
	case '-':
		return `<span class="mo">&minus;</span>`
	case '*':
		return `<span class="mo">&lowast;</span>`
	case '\'':
		return "&prime;"
	}
	if isLetter(byte(r)) && r < utf8.RuneSelf {
		return "<i>" + string(r) + "</i>"
	}
	return html.EscapeString(string(r))
}

func (p *texParser) command() string {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return ""
	}

	if !isLetter(p.src[p.pos]) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case '\\':
			return "<br>"
		case ',':
			return "&thinsp;"
		case ':', ';':
			return "&ensp;"
		case '!':
			return ""
		case ' ':
			return "&nbsp;"
		default:
			return html.EscapeString(string(c))
		}
	}

	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac":
		num := p.arg()
		den := p.arg()
		return `<span class="frac"><span class="num">` + num + `</span><span class="den">` + den + `</span></span>`
	case "binom":
		n := p.arg()
		k := p.arg()
		return `(<span class="frac binom"><span class="num">` + n + `</span><span class="den">` + k + `</span></span>)`
	case "sqrt":
		index := p.optional()
		radicand := p.arg()
		var b strings.Builder
		b.WriteString(`<span class="sqrt">`)
		if index != "" {
			b.WriteString(`<sup class="root-index">` + TeXToHTML(index) + `</sup>`)
		}
		b.WriteString(`<span class="radical">&radic;</span><span class="radicand">` + radicand + `</span></span>`)
		return b.String()
	case "text", "textrm", "textnormal", "mbox", "textsf":
		return `<span class="mtext">` + html.EscapeString(p.rawGroup()) + `</span>`
	case "mathrm", "operatorname", "mathsf":
		return `<span class="mop">` + html.EscapeString(p.rawGroup()) + `</span>`
	case "textit", "mathit", "emph":
		return "<i>" + html.EscapeString(p.rawGroup()) + "</i>"
	case "mathbf", "textbf", "boldsymbol", "bm":
		return "<b>" + p.arg() + "</b>"
	case "mathbb":
		return doubleStruck(p.rawGroup())
	case "overline", "bar":
		return `<span class="overline">` + p.arg() + `</span>`
	case "underline":
		return `<span class="underline">` + p.arg() + `</span>`
	case "hat", "widehat":
		return p.accent("&#770;")
	case "vec":
		return p.accent("&#8407;")
	case "dot":
		return p.accent("&#775;")
	case "ddot":
		return p.accent("&#776;")
	case "tilde", "widetilde":
		return p.accent("&#771;")
	case "left", "right", "big", "Big", "bigg", "Bigg", "bigl", "bigr", "Bigl", "Bigr", "middle":
		return p.delimiter()
	case "begin", "end":
		p.rawGroup()
		return ""
	case "displaystyle", "textstyle", "scriptstyle", "limits", "nolimits":
		return ""
	case "quad":
		return "&emsp;"
	case "qquad":
		return "&emsp;&emsp;"
	}

	if functionNames[name] {
		return `<span class="mop">` + name + `</span>`
	}
	if sym, ok := texSymbols[name]; ok {
		return sym
	}
	return "<i>" + html.EscapeString(name) + "</i>"
}

func (p *texParser) accent(mark string) string {
	return `<span class="accent">` + p.arg() + mark + `</span>`
}

// delimiter reads the delimiter after \left, \right and the sizing commands.
func (p *texParser) delimiter() string {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ""
	}
	switch p.src[p.pos] {
	case '.':
		p.pos++
		return ""
	case '\\':
		return p.command()
	default:
		return p.char()
	}
}

// optional reads a [..] argument if present.
func (p *texParser) optional() string {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return ""
	}
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return ""
	}
	s := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return s
}

// rawGroup returns the unparsed text of a braced group or a single character.
func (p *texParser) rawGroup() string {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ""
	}
	if p.src[p.pos] != '{' {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		return string(r)
	}

	depth := 0
	start := p.pos + 1
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := p.src[start:p.pos]
				p.pos++
				return s
			}
		}
	}
	return p.src[start:]
}

func (p *texParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func doubleStruck(s string) string {
	var b strings.Builder
	for _, r := range s {
		if ds, ok := doubleStruckLetters[r]; ok {
			b.WriteString(ds)
		} else {
			b.WriteString("<b>" + html.EscapeString(string(r)) + "</b>")
		}
	}
	return b.String()
}

var doubleStruckLetters = map[rune]string{
	'N': "&#8469;", 'Z': "&#8484;", 'Q': "&#8474;", 'R': "&#8477;", 'C': "&#8450;", 'P': "&#8473;",
}

var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true, "tanh": true,
	"log": true, "ln": true, "lg": true, "exp": true, "lim": true, "max": true, "min": true,
	"sup": true, "inf": true, "det": true, "gcd": true, "deg": true, "arg": true, "dim": true,
}

var texSymbols = map[string]string{
	// Greek
	"alpha": "&alpha;", "beta": "&beta;", "gamma": "&gamma;", "delta": "&delta;",
	"epsilon": "&epsilon;", "varepsilon": "&#949;", "zeta": "&zeta;", "eta": "&eta;",
	"theta": "&theta;", "vartheta": "&thetasym;", "iota": "&iota;", "kappa": "&kappa;",
	"lambda": "&lambda;", "mu": "&mu;", "nu": "&nu;", "xi": "&xi;", "omicron": "&omicron;",
	"pi": "&pi;", "varpi": "&piv;", "rho": "&rho;", "varrho": "&#1009;", "sigma": "&sigma;",
	"varsigma": "&sigmaf;", "tau": "&tau;", "upsilon": "&upsilon;", "phi": "&phi;",
	"varphi": "&#981;", "chi": "&chi;", "psi": "&psi;", "omega": "&omega;",
	"Gamma": "&Gamma;", "Delta": "&Delta;", "Theta": "&Theta;", "Lambda": "&Lambda;",
	"Xi": "&Xi;", "Pi": "&Pi;", "Sigma": "&Sigma;", "Upsilon": "&Upsilon;", "Phi": "&Phi;",
	"Psi": "&Psi;", "Omega": "&Omega;",

	// Binary operators and relations
	"times": `<span class="mo">&times;</span>`, "div": `<span class="mo">&divide;</span>`,
	"pm": `<span class="mo">&plusmn;</span>`, "mp": `<span class="mo">&#8723;</span>`,
	"cdot": `<span class="mo">&sdot;</span>`, "cdotp": "&sdot;", "ast": "&lowast;", "star": "&#8902;",
	"circ": "&#8728;", "bullet": "&bull;", "oplus": "&oplus;", "otimes": "&otimes;",
	"setminus": "&#8726;", "cup": "&cup;", "cap": "&cap;", "wedge": "&and;", "land": "&and;",
	"vee": "&or;", "lor": "&or;",
	"leq": `<span class="mo">&le;</span>`, "le": `<span class="mo">&le;</span>`,
	"geq": `<span class="mo">&ge;</span>`, "ge": `<span class="mo">&ge;</span>`,
	"neq": `<span class="mo">&ne;</span>`, "ne": `<span class="mo">&ne;</span>`,
	"approx": `<span class="mo">&asymp;</span>`, "equiv": `<span class="mo">&equiv;</span>`,
	"sim": "&sim;", "simeq": "&#8771;", "cong": "&cong;", "propto": "&prop;",
	"ll": "&#8810;", "gg": "&#8811;", "in": "&isin;", "notin": "&notin;", "ni": "&ni;",
	"subset": "&sub;", "subseteq": "&sube;", "supset": "&sup;", "supseteq": "&supe;",
	"perp": "&perp;", "parallel": "&#8741;", "mid": "&#8739;",

	// Arrows
	"to": "&rarr;", "rightarrow": "&rarr;", "leftarrow": "&larr;", "gets": "&larr;",
	"Rightarrow": "&rArr;", "Leftarrow": "&lArr;", "leftrightarrow": "&harr;",
	"Leftrightarrow": "&hArr;", "implies": "&#10233;", "iff": "&#10234;", "mapsto": "&#8614;",
	"uparrow": "&uarr;", "downarrow": "&darr;",

	// Large operators and misc
	"sum": `<span class="op-large">&sum;</span>`, "prod": `<span class="op-large">&prod;</span>`,
	"int": `<span class="op-large">&int;</span>`, "oint": `<span class="op-large">&#8750;</span>`,
	"iint": `<span class="op-large">&#8748;</span>`,
	"infty": "&infin;", "partial": "&part;", "nabla": "&nabla;", "forall": "&forall;",
	"exists": "&exist;", "neg": "&not;", "lnot": "&not;", "emptyset": "&empty;",
	"varnothing": "&empty;", "angle": "&ang;", "triangle": "&#9651;", "degree": "&deg;",
	"prime": "&prime;", "ldots": "&hellip;", "dots": "&hellip;", "cdots": "&#8943;",
	"vdots": "&#8942;", "ddots": "&#8945;", "therefore": "&there4;", "because": "&#8757;",
	"hbar": "&#8463;", "ell": "&#8467;", "Re": "&real;", "Im": "&image;", "aleph": "&alefsym;",
	"langle": "&#10216;", "rangle": "&#10217;", "lfloor": "&lfloor;", "rfloor": "&rfloor;",
	"lceil": "&lceil;", "rceil": "&rceil;", "lbrace": "{", "rbrace": "}", "vert": "|",
	"Vert": "&#8214;", "colon": ":", "percent": "%",
}
