package render

import (
	_ "embed"
	"os"
	"strings"

	"lesson-notes-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

//go:embed assets/math.css
var embeddedMathCSS string

const stylesheetKey = "math-css"

// Stylesheet loads the math stylesheet once and serves it for the life of
// the process. A configured path overrides the embedded copy.
type Stylesheet struct {
	path   string
	cache  *cache.Cache
	logger logger.ILogger
}

func NewStylesheet(path string, log logger.ILogger) *Stylesheet {
	return &Stylesheet{
		path:   path,
		cache:  cache.New(cache.NoExpiration, 0),
		logger: log,
	}
}

// CSS returns the cached stylesheet, reading it on first use. Concurrent
// first calls may both read the file; the result is the same.
func (s *Stylesheet) CSS() string {
	if css, ok := s.cache.Get(stylesheetKey); ok {
		return css.(string)
	}

	css := embeddedMathCSS
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.logger.Warn("RENDER", "Math stylesheet unreadable, using embedded copy", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		} else {
			css = string(data)
		}
	}

	s.cache.Set(stylesheetKey, css, cache.NoExpiration)
	return css
}

// WrapOptions controls the standalone document produced by Wrap.
type WrapOptions struct {
	// BaseURL is the public origin serving the watermark image.
	BaseURL       string
	WatermarkPath string
	// AutoPrint adds a script that opens the print dialog once the
	// watermark has loaded.
	AutoPrint bool
}

// Wrap embeds a body fragment in a print-ready standalone HTML document.
func Wrap(body, mathCSS string, opts WrapOptions) string {
	watermark := strings.TrimRight(opts.BaseURL, "/") + opts.WatermarkPath

	var b strings.Builder
	b.Grow(len(body) + len(mathCSS) + len(documentHead) + 1024)

	b.WriteString("<!doctype html>\n<html>\n<head>\n")
	b.WriteString(`  <meta charset="utf-8" />` + "\n")
	b.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1" />` + "\n")
	b.WriteString(`  <link href="https://fonts.googleapis.com/css2?family=Geist:wght@400;500;600;700&family=Geist+Mono&display=swap" rel="stylesheet">` + "\n")
	b.WriteString("  <style>\n")
	b.WriteString(mathCSS)
	b.WriteString("\n")
	b.WriteString(strings.ReplaceAll(documentHead, "{{WATERMARK}}", watermark))
	b.WriteString("  </style>\n</head>\n<body>\n")
	b.WriteString(body)
	if opts.AutoPrint {
		b.WriteString(strings.ReplaceAll(autoPrintScript, "{{WATERMARK}}", watermark))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

const documentHead = `    @page { margin: 0.5in; }

    body {
      font-family: 'Geist', system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif;
      line-height: 1.6;
      color: #111;
      -webkit-font-smoothing: antialiased;
      -moz-osx-font-smoothing: grayscale;
      position: relative;
      -webkit-print-color-adjust: exact;
    }

    body::after {
      content: "";
      background-image: url({{WATERMARK}});
      background-repeat: no-repeat;
      background-position: center;
      background-size: 400px;
      position: fixed;
      top: 0;
      left: 0;
      right: 0;
      bottom: 0;
      z-index: -1;
      opacity: 0.1;
    }

    code, pre, kbd, samp {
      font-family: 'Geist Mono', 'Courier New', Courier, monospace;
      font-size: 0.9em;
    }

    h1 { font-weight: 700; font-size: 24px; margin: 0 0 12px; }
    h2 { font-weight: 600; font-size: 20px; margin: 16px 0 8px; }
    h3 { font-weight: 500; font-size: 18px; margin: 14px 0 6px; }

    p { margin: 8px 0; }
    ul, ol { padding-left: 1.5rem; }
    table { width: 100%; border-collapse: collapse; margin: 12px 0; }
    th, td { border: 1px solid #ddd; padding: 6px; }
    .page-break { page-break-before: always; break-before: page; }

    pre {
      background: #f5f5f5;
      padding: 1em;
      border-radius: 4px;
      overflow-x: auto;
    }

    :not(pre) > code {
      background: #f0f0f0;
      padding: 0.2em 0.4em;
      border-radius: 3px;
    }
`

const autoPrintScript = `<script>
  const img = new Image();
  img.src = "{{WATERMARK}}";
  img.onload = () => {
    window.print();
  };
</script>
`
