package dto

import "strings"

// MessagePart is one part of a UI chat message; only "text" parts carry
// prompt text.
type MessagePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ChatMessage struct {
	ID      string        `json:"id"`
	Role    string        `json:"role" validate:"required"`
	Parts   []MessagePart `json:"parts"`
	Content string        `json:"content"`
}

// Text joins the text parts of the message, falling back to Content for
// clients that send plain messages.
func (m ChatMessage) Text() string {
	texts := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.Type == "text" && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	if len(texts) == 0 {
		return m.Content
	}
	return strings.Join(texts, " ")
}

// UploadedFile is a spreadsheet sent inline as base64.
type UploadedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data" validate:"omitempty,base64"`
}

type ChatRequest struct {
	Messages         []ChatMessage    `json:"messages" validate:"dive"`
	Model            string           `json:"model"`
	WebSearch        bool             `json:"webSearch"`
	File             *UploadedFile    `json:"file" validate:"omitempty"`
	SelectedColumn   *int             `json:"selectedColumn" validate:"omitempty,min=1"`
	WeeklySelections map[int][]string `json:"weeklySelections"`
	ClassLevel       string           `json:"classLevel"`
}

// LatestUserText returns the text of the most recent user message, or ""
// when there is none.
func (r *ChatRequest) LatestUserText() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Text()
		}
	}
	return ""
}

// Column returns the 1-based spreadsheet column, defaulting to the first.
func (r *ChatRequest) Column() int {
	if r.SelectedColumn == nil || *r.SelectedColumn < 1 {
		return 1
	}
	return *r.SelectedColumn
}

// ChatStreamFrame is one websocket frame of a streamed note.
type ChatStreamFrame struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}
