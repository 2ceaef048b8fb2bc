package service

import (
	"context"
	"testing"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/pkg/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeList_CountsCharacters(t *testing.T) {
	svc := NewKnowledgeService(staticDocuments{
		{Filename: "scheme.docx", Text: "Week 1 – Sets"},
		{Filename: "notes.md", Text: ""},
	})

	got := svc.List(context.Background())

	assert.Equal(t, []dto.KnowledgeDocumentResponse{
		{Filename: "scheme.docx", Characters: 13},
		{Filename: "notes.md", Characters: 0},
	}, got)
}

func TestKnowledgeList_EmptyDirectoryIsEmptySlice(t *testing.T) {
	svc := NewKnowledgeService(knowledge.NewLoader(t.TempDir()+"/missing", logger.NewNopLogger()))

	got := svc.List(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTablesExtract_UnreadablePDF(t *testing.T) {
	svc := NewTablesService(logger.NewNopLogger())

	_, err := svc.Extract(context.Background(), "broken.pdf", []byte("not a pdf"))

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, "Failed to process PDF.", appErr.Message)
}
