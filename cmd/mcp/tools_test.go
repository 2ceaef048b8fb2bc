package main

import (
	"context"
	"encoding/json"
	"testing"

	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/render"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDocuments []knowledge.LoadedDocument

func (d staticDocuments) Load(ctx context.Context) []knowledge.LoadedDocument {
	return d
}

func newTestTools() *toolSet {
	return &toolSet{
		documents: staticDocuments{
			{Filename: "maths.docx", Text: "fractions and decimals"},
			{Filename: "civic.docx", Text: "civic education and values"},
		},
		renderer: render.NewRenderer(render.Options{}, nil, logger.NewNopLogger()),
		maxChars: 8000,
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestSelectExcerptTool(t *testing.T) {
	tools := newTestTools()

	res, err := tools.selectExcerpt(context.Background(), mcp.CallToolRequest{}, SelectExcerptRequest{Query: "civic values", MaxChars: 60})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var got knowledge.ExcerptResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "civic.docx", got.Sources[0])
	assert.LessOrEqual(t, len([]rune(got.Combined)), 60)

	res, err = tools.selectExcerpt(context.Background(), mcp.CallToolRequest{}, SelectExcerptRequest{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestBuildPromptTool(t *testing.T) {
	tools := newTestTools()

	res, err := tools.buildPrompt(context.Background(), mcp.CallToolRequest{}, BuildPromptRequest{
		Query:        "ignored",
		ClassLevel:   "JSS2",
		WeeklyTopics: map[string][]string{"2": {"Decimals"}, "1": {"Fractions"}},
	})
	require.NoError(t, err)

	var got BuildPromptResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "custom", got.Mode)
	assert.Equal(t, "maths.docx", got.Sources[0])
	assert.Contains(t, got.Prompt, "JSS2")
	assert.Contains(t, got.Prompt, "- Week 1: Fractions\n- Week 2: Decimals")

	res, err = tools.buildPrompt(context.Background(), mcp.CallToolRequest{}, BuildPromptRequest{
		WeeklyTopics: map[string][]string{"first": {"Sets"}},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRenderHTMLTool(t *testing.T) {
	tools := newTestTools()

	res, err := tools.renderHTML(context.Background(), mcp.CallToolRequest{}, RenderHTMLRequest{
		Markdown: "# Week 1 - Sets\n\n$x^2$\n\n# Week 2 - Venn\n",
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	html := resultText(t, res)
	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `class="page-break"`)
	assert.NotContains(t, html, "$x^2$")
	assert.NotContains(t, html, "window.print()")
}
