package knowledge

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv/v2"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
)

var errNoDocumentPart = errors.New("docx has no main document part")

// ExtractDocxText returns the text of a .docx package with one line per
// paragraph, tab or line break, headers and footers included.
func ExtractDocxText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat docx: %w", err)
	}

	// ConvertDocx dereferences the content types part without checking it exists.
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	if !hasPart(zr, "[Content_Types].xml") || !hasPart(zr, "word/document.xml") {
		return "", errNoDocumentPart
	}

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return text, nil
}

func hasPart(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ExtractPDFText returns the plain text layer of a PDF file.
func ExtractPDFText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// ExtractHTMLText converts an HTML reference page to Markdown text so
// headings and lists survive as readable structure.
func ExtractHTMLText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}
