package knowledge

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"lesson-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>SCHEME OF WORK</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t xml:space="preserve">Week 1 </w:t></w:r><w:r><w:tab/><w:t>Citizenship</w:t></w:r></w:p>` +
	`<w:p></w:p><w:p></w:p>` +
	`<w:p><w:r><w:t>Week 2</w:t><w:br/><w:t>Values</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const testContentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"[Content_Types].xml": testContentTypesXML,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"), logger.NewNopLogger())

	docs := loader.Load(context.Background())
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestLoaderReadsRecognisedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "scheme.docx"), testDocumentXML)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("line\r\n\r\n\r\n\r\nnext"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("<h1>Heading</h1><p>Body text</p>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89, 0x50}, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.docx"), 0755))

	docs := NewLoader(dir, logger.NewNopLogger()).Load(context.Background())

	byName := map[string]string{}
	for _, d := range docs {
		byName[d.Filename] = d.Text
	}

	require.Len(t, byName, 3)
	assert.Equal(t, "SCHEME OF WORK\nWeek 1 \nCitizenship\n\nWeek 2\nValues", byName["scheme.docx"])
	assert.Equal(t, "line\n\nnext", byName["notes.txt"])
	assert.Contains(t, byName["page.html"], "# Heading")
	assert.Contains(t, byName["page.html"], "Body text")
}

func TestLoaderSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("not a zip"), 0644))
	writeDocx(t, filepath.Join(dir, "good.docx"), testDocumentXML)

	docs := NewLoader(dir, logger.NewNopLogger()).Load(context.Background())

	require.Len(t, docs, 1)
	assert.Equal(t, "good.docx", docs[0].Filename)
}

func TestExtractDocxTextMissingPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ExtractDocxText(path)
	assert.ErrorIs(t, err, errNoDocumentPart)
}
