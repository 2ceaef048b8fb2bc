package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/pkg/events"
	"lesson-notes-be/pkg/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	out         *render.Output
	err         error
	gotFormat   render.Format
	hasDeadline bool
}

func (r *fakeRenderer) Render(ctx context.Context, markdown string, format render.Format, baseURL string) (*render.Output, error) {
	r.gotFormat = format
	_, r.hasDeadline = ctx.Deadline()
	return r.out, r.err
}

func TestExport_Success(t *testing.T) {
	renderer := &fakeRenderer{out: &render.Output{Body: []byte("PK"), ContentType: render.DocxContentType, Filename: "notes.docx"}}
	pub := &recordingPublisher{}
	svc := NewExportService(renderer, pub, logger.NewNopLogger(), 0)

	out, err := svc.Export(context.Background(), &dto.ExportRequest{Format: "docx", Content: "# Week 1"}, "http://localhost:3000")
	require.NoError(t, err)

	assert.Equal(t, "notes.docx", out.Filename)
	assert.Equal(t, render.FormatDocx, renderer.gotFormat)
	assert.False(t, renderer.hasDeadline)
	assert.Equal(t, []string{events.NoteExported}, pub.types())
}

func TestExport_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		req  dto.ExportRequest
	}{
		{name: "unknown format", req: dto.ExportRequest{Format: "odt", Content: "x"}},
		{name: "missing content", req: dto.ExportRequest{Format: "pdf"}},
		{name: "missing format", req: dto.ExportRequest{Content: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &fakeRenderer{}
			svc := NewExportService(renderer, &recordingPublisher{}, logger.NewNopLogger(), 0)

			_, err := svc.Export(context.Background(), &tt.req, "")

			var appErr *serverutils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, "Invalid payload", appErr.Message)
			assert.Empty(t, renderer.gotFormat)
		})
	}
}

func TestExport_RendererFailureIsOpaque(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("chrome: context deadline exceeded")}
	pub := &recordingPublisher{}
	svc := NewExportService(renderer, pub, logger.NewNopLogger(), time.Minute)

	out, err := svc.Export(context.Background(), &dto.ExportRequest{Format: "pdf", Content: "# Week 1"}, "")
	assert.Nil(t, out)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, "Failed to export document.", appErr.Message)
	assert.True(t, renderer.hasDeadline)
	assert.Equal(t, []string{events.NoteExportFailed}, pub.types())
}
