package service

import (
	"context"
	"time"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/pkg/events"
	"lesson-notes-be/pkg/render"
)

const msgExportFailed = "Failed to export document."

// DocumentRenderer turns a Markdown note into a downloadable file.
type DocumentRenderer interface {
	Render(ctx context.Context, markdown string, format render.Format, baseURL string) (*render.Output, error)
}

type IExportService interface {
	Export(ctx context.Context, req *dto.ExportRequest, baseURL string) (*render.Output, error)
}

type exportService struct {
	renderer  DocumentRenderer
	publisher IPublisherService
	logger    logger.ILogger
	timeout   time.Duration
}

func NewExportService(renderer DocumentRenderer, publisher IPublisherService, log logger.ILogger, timeout time.Duration) IExportService {
	return &exportService{
		renderer:  renderer,
		publisher: publisher,
		logger:    log,
		timeout:   timeout,
	}
}

// Export renders the note. Any failure is reported as an opaque 500; no
// partial output is ever returned.
func (s *exportService) Export(ctx context.Context, req *dto.ExportRequest, baseURL string) (*render.Output, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	out, err := s.renderer.Render(ctx, req.Content, render.Format(req.Format), baseURL)
	if err != nil {
		s.logger.Error("EXPORT", "Export failed", map[string]interface{}{
			"format":         req.Format,
			"markdown_chars": len(req.Content),
			"error":          err.Error(),
		})
		s.publisher.Publish(context.WithoutCancel(ctx), events.New(events.NoteExportFailed, map[string]interface{}{
			"format": req.Format,
			"error":  err.Error(),
		}))
		return nil, serverutils.Internal(msgExportFailed, err)
	}

	s.logger.Info("EXPORT", "Document exported", map[string]interface{}{
		"format":      req.Format,
		"bytes":       len(out.Body),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	s.publisher.Publish(ctx, events.New(events.NoteExported, map[string]interface{}{
		"format":   req.Format,
		"bytes":    len(out.Body),
		"filename": out.Filename,
	}))
	return out, nil
}
