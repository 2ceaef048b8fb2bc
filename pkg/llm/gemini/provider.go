package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"lesson-notes-be/pkg/llm"

	"google.golang.org/genai"
)

// GeminiProvider streams completions from the Google Gemini API.
type GeminiProvider struct {
	client   *genai.Client
	model    string
	defaults llm.Options
}

var _ llm.LLMProvider = (*GeminiProvider)(nil)

func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:   client,
		model:    model,
		defaults: llm.Options{MaxTokens: maxTokens},
	}, nil
}

func (p *GeminiProvider) Stream(ctx context.Context, req llm.Request, options ...llm.Option) iter.Seq2[string, error] {
	opts := llm.ApplyOptions(p.defaults, options...)
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	config := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		temp := float32(opts.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	contents := buildContents(req.Messages)

	return func(yield func(string, error) bool) {
		for result, err := range p.client.Models.GenerateContentStream(ctx, model, contents, config) {
			if err != nil {
				yield("", mapGeminiError(err))
				return
			}
			text := result.Text()
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func buildContents(msgs []llm.Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := genai.RoleUser
		if m.Role == llm.RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

func mapGeminiError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &llm.ErrRateLimit{Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr.Code == http.StatusTooManyRequests {
		return &llm.ErrRateLimit{Err: err}
	}
	return &llm.ErrProviderUnavailable{Err: err}
}
