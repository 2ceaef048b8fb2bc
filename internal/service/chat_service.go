package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"iter"
	"time"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/pkg/events"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/llm"
	"lesson-notes-be/pkg/prompt"
	"lesson-notes-be/pkg/scheme"

	"github.com/google/uuid"
)

const (
	msgUnreadableSpreadsheet = "Failed to parse uploaded spreadsheet. Ensure it is a valid xls/xlsx/csv file."
	msgNoTopicsFormat        = "No topics found in column %d of the uploaded file."
	msgGenerationFailed      = "Failed to generate note."
)

// DocumentSource supplies the knowledge base for a request.
type DocumentSource interface {
	Load(ctx context.Context) []knowledge.LoadedDocument
}

// ChatSession is a prepared completion call together with the details
// used for logging and lifecycle events.
type ChatSession struct {
	ID      string
	Mode    prompt.Mode
	Sources []string
	Request llm.Request
}

type IChatService interface {
	// Prepare validates the request shape and assembles the prompt. Input
	// problems are returned as 400 AppErrors.
	Prepare(ctx context.Context, req *dto.ChatRequest) (*ChatSession, error)
	// Stream runs the completion for a prepared session.
	Stream(ctx context.Context, session *ChatSession) iter.Seq2[string, error]
}

type chatService struct {
	documents DocumentSource
	provider  llm.LLMProvider
	publisher IPublisherService
	logger    logger.ILogger
	maxChars  int
	timeout   time.Duration
}

func NewChatService(
	documents DocumentSource,
	provider llm.LLMProvider,
	publisher IPublisherService,
	log logger.ILogger,
	maxChars int,
	timeout time.Duration,
) IChatService {
	if maxChars <= 0 {
		maxChars = knowledge.DefaultMaxChars
	}
	return &chatService{
		documents: documents,
		provider:  provider,
		publisher: publisher,
		logger:    log,
		maxChars:  maxChars,
		timeout:   timeout,
	}
}

func (s *chatService) Prepare(ctx context.Context, req *dto.ChatRequest) (*ChatSession, error) {
	sessionID := uuid.NewString()

	input := prompt.Input{
		ClassLevel:       req.ClassLevel,
		WeeklySelections: req.WeeklySelections,
		Column:           req.Column(),
		LatestUserText:   req.LatestUserText(),
	}

	// Custom selections take precedence, so the upload is not even parsed.
	if input.Mode() != prompt.ModeCustom && req.File != nil && req.File.Data != "" {
		weeks, err := s.parseUpload(req.File, input.Column)
		if err != nil {
			s.logger.Warn("CHAT", "Rejected uploaded spreadsheet", map[string]interface{}{
				"session_id": sessionID,
				"file":       req.File.Name,
				"column":     input.Column,
				"error":      err.Error(),
			})
			return nil, err
		}
		input.SpreadsheetWeeks = weeks
	}

	docs := s.documents.Load(ctx)
	excerpt := knowledge.SelectExcerpt(docs, input.Query(), s.maxChars)
	system := prompt.NewBuilder(input, excerpt).Build()

	session := &ChatSession{
		ID:      sessionID,
		Mode:    input.Mode(),
		Sources: excerpt.Sources,
		Request: llm.Request{
			System:   system,
			Messages: latestUserMessage(req),
		},
	}

	s.logger.Info("CHAT", "Prompt assembled", map[string]interface{}{
		"session_id":    sessionID,
		"mode":          string(session.Mode),
		"documents":     len(docs),
		"sources":       excerpt.Sources,
		"excerpt_chars": len(excerpt.Combined),
		"system_chars":  len(system),
	})
	return session, nil
}

func (s *chatService) parseUpload(file *dto.UploadedFile, column int) ([]scheme.WeekTopic, error) {
	data, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		return nil, serverutils.BadRequest(msgUnreadableSpreadsheet, err)
	}

	weeks, err := scheme.ParseColumn(data, column)
	switch {
	case errors.Is(err, scheme.ErrNoTopics):
		return nil, serverutils.BadRequest(fmt.Sprintf(msgNoTopicsFormat, column), err)
	case err != nil:
		return nil, serverutils.BadRequest(msgUnreadableSpreadsheet, err)
	}
	return weeks, nil
}

// latestUserMessage forwards only the newest user turn; earlier turns stay
// in the client transcript.
func latestUserMessage(req *dto.ChatRequest) []llm.Message {
	text := req.LatestUserText()
	if text == "" {
		return nil
	}
	return []llm.Message{{Role: llm.RoleUser, Content: text}}
}

func (s *chatService) Stream(ctx context.Context, session *ChatSession) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		started := time.Now()
		s.publisher.Publish(ctx, events.New(events.NoteGenerationStarted, map[string]interface{}{
			"session_id": session.ID,
			"mode":       string(session.Mode),
			"model":      s.provider.ModelID(),
			"sources":    session.Sources,
		}))

		chars := 0
		fail := func(err error) {
			s.publisher.Publish(context.WithoutCancel(ctx), events.New(events.NoteGenerationFailed, map[string]interface{}{
				"session_id": session.ID,
				"mode":       string(session.Mode),
				"chars":      chars,
				"error":      err.Error(),
			}))
		}

		for chunk, err := range s.provider.Stream(ctx, session.Request) {
			if err != nil {
				fail(err)
				yield("", serverutils.BadGateway(msgGenerationFailed, err))
				return
			}
			chars += len(chunk)
			if !yield(chunk, nil) {
				fail(context.Canceled)
				return
			}
		}

		if chars == 0 {
			fail(llm.ErrEmptyStream)
			yield("", serverutils.BadGateway(msgGenerationFailed, llm.ErrEmptyStream))
			return
		}

		s.publisher.Publish(ctx, events.New(events.NoteGenerationCompleted, map[string]interface{}{
			"session_id":  session.ID,
			"mode":        string(session.Mode),
			"chars":       chars,
			"duration_ms": time.Since(started).Milliseconds(),
		}))
	}
}
