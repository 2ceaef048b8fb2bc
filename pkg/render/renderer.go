package render

import (
	"context"
	"fmt"

	"lesson-notes-be/internal/pkg/logger"

	"github.com/yuin/goldmark"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

const HTMLContentType = "text/html; charset=utf-8"

// Output is a rendered export. Filename is empty for inline formats.
type Output struct {
	Body        []byte
	ContentType string
	Filename    string
}

type Options struct {
	MathCSSPath   string
	WatermarkPath string
}

// Renderer turns a markdown note into a standalone HTML, DOCX or PDF file.
type Renderer struct {
	markdown      goldmark.Markdown
	stylesheet    *Stylesheet
	printer       PDFPrinter
	watermarkPath string
	tracer        trace.Tracer
}

func NewRenderer(opts Options, printer PDFPrinter, log logger.ILogger) *Renderer {
	watermark := opts.WatermarkPath
	if watermark == "" {
		watermark = "/bg.png"
	}
	return &Renderer{
		markdown:      NewMarkdown(),
		stylesheet:    NewStylesheet(opts.MathCSSPath, log),
		printer:       printer,
		watermarkPath: watermark,
		tracer:        otel.Tracer("lesson-notes-be/render"),
	}
}

// HTML converts markdown to a paginated, standalone HTML document.
func (r *Renderer) HTML(ctx context.Context, markdown, baseURL string, autoPrint bool) (string, error) {
	_, span := r.tracer.Start(ctx, "render.markdown")
	body, err := MarkdownToHTML(r.markdown, markdown)
	endSpan(span, err)
	if err != nil {
		return "", err
	}

	_, span = r.tracer.Start(ctx, "render.paginate")
	body, err = Paginate(body)
	endSpan(span, err)
	if err != nil {
		return "", err
	}

	_, span = r.tracer.Start(ctx, "render.wrap")
	document := Wrap(body, r.stylesheet.CSS(), WrapOptions{
		BaseURL:       baseURL,
		WatermarkPath: r.watermarkPath,
		AutoPrint:     autoPrint,
	})
	span.End()

	return document, nil
}

// Render produces the export for the given format. No partial output is
// returned on failure.
func (r *Renderer) Render(ctx context.Context, markdown string, format Format, baseURL string) (*Output, error) {
	ctx, span := r.tracer.Start(ctx, "render.export", trace.WithAttributes(
		attribute.String("format", string(format)),
		attribute.Int("markdown.length", len(markdown)),
	))
	defer span.End()

	document, err := r.HTML(ctx, markdown, baseURL, format == FormatHTML)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	switch format {
	case FormatHTML:
		return &Output{Body: []byte(document), ContentType: HTMLContentType}, nil

	case FormatDocx:
		_, docxSpan := r.tracer.Start(ctx, "render.docx")
		body, err := HTMLToDocx(document)
		endSpan(docxSpan, err)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("convert to docx: %w", err)
		}
		return &Output{Body: body, ContentType: DocxContentType, Filename: "notes.docx"}, nil

	case FormatPDF:
		if r.printer == nil {
			return nil, fmt.Errorf("pdf export is not configured")
		}
		pdfCtx, pdfSpan := r.tracer.Start(ctx, "render.pdf")
		body, err := r.printer.PrintPDF(pdfCtx, document)
		endSpan(pdfSpan, err)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return &Output{Body: body, ContentType: PDFContentType, Filename: "notes.pdf"}, nil

	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
