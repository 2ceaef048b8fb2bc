package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/prompt"
	"lesson-notes-be/pkg/render"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type documentSource interface {
	Load(ctx context.Context) []knowledge.LoadedDocument
}

type htmlRenderer interface {
	HTML(ctx context.Context, markdown, baseURL string, autoPrint bool) (string, error)
}

type toolSet struct {
	documents documentSource
	renderer  htmlRenderer
	maxChars  int
}

type SelectExcerptRequest struct {
	Query    string `json:"query"`
	MaxChars int    `json:"max_chars"`
}

type BuildPromptRequest struct {
	Query        string              `json:"query"`
	ClassLevel   string              `json:"class_level"`
	WeeklyTopics map[string][]string `json:"weekly_topics"`
}

type BuildPromptResponse struct {
	Mode    string   `json:"mode"`
	Sources []string `json:"sources"`
	Prompt  string   `json:"prompt"`
}

type RenderHTMLRequest struct {
	Markdown string `json:"markdown"`
	BaseURL  string `json:"base_url"`
}

func newServer(t *toolSet) *server.MCPServer {
	s := server.NewMCPServer(
		"Lecture Notes MCP",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("select_excerpt",
		mcp.WithDescription("Rank the knowledge-base documents against a query and return the combined reference excerpt"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Topics or free text, e.g. 'Civic education SS1 week1'"),
		),
		mcp.WithNumber("max_chars",
			mcp.Description("Character budget for the excerpt (default 8000)"),
		),
	), mcp.NewTypedToolHandler(t.selectExcerpt))

	s.AddTool(mcp.NewTool("build_prompt",
		mcp.WithDescription("Assemble the lecture-note system prompt for a query or a set of weekly topics"),
		mcp.WithString("query",
			mcp.Description("Free-text request, used when no weekly topics are given"),
		),
		mcp.WithString("class_level",
			mcp.Description("Class level to tailor the note to, e.g. SS1"),
		),
		mcp.WithObject("weekly_topics",
			mcp.Description(`Week number to topics, e.g. {"1": ["Sets"], "2": ["Venn diagrams"]}`),
		),
	), mcp.NewTypedToolHandler(t.buildPrompt))

	s.AddTool(mcp.NewTool("render_html",
		mcp.WithDescription("Render a markdown note to a standalone, week-paginated HTML document with math"),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("The note in markdown"),
		),
		mcp.WithString("base_url",
			mcp.Description("Base URL used to resolve the watermark image"),
		),
	), mcp.NewTypedToolHandler(t.renderHTML))

	return s
}

func (t *toolSet) selectExcerpt(ctx context.Context, request mcp.CallToolRequest, args SelectExcerptRequest) (*mcp.CallToolResult, error) {
	if args.Query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	maxChars := args.MaxChars
	if maxChars <= 0 {
		maxChars = t.maxChars
	}

	result := knowledge.SelectExcerpt(t.documents.Load(ctx), args.Query, maxChars)
	return jsonResult(result)
}

func (t *toolSet) buildPrompt(ctx context.Context, request mcp.CallToolRequest, args BuildPromptRequest) (*mcp.CallToolResult, error) {
	selections := make(map[int][]string, len(args.WeeklyTopics))
	for key, topics := range args.WeeklyTopics {
		week, err := strconv.Atoi(key)
		if err != nil || week < 1 {
			return mcp.NewToolResultError(fmt.Sprintf("invalid week number %q", key)), nil
		}
		selections[week] = topics
	}

	input := prompt.Input{
		ClassLevel:       args.ClassLevel,
		WeeklySelections: selections,
		LatestUserText:   args.Query,
	}
	excerpt := knowledge.SelectExcerpt(t.documents.Load(ctx), input.Query(), t.maxChars)

	return jsonResult(BuildPromptResponse{
		Mode:    string(input.Mode()),
		Sources: excerpt.Sources,
		Prompt:  prompt.NewBuilder(input, excerpt).Build(),
	})
}

func (t *toolSet) renderHTML(ctx context.Context, request mcp.CallToolRequest, args RenderHTMLRequest) (*mcp.CallToolResult, error) {
	if args.Markdown == "" {
		return mcp.NewToolResultError("markdown is required"), nil
	}
	document, err := t.renderer.HTML(ctx, args.Markdown, args.BaseURL, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render: %v", err)), nil
	}
	return mcp.NewToolResultText(document), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

var _ htmlRenderer = (*render.Renderer)(nil)
