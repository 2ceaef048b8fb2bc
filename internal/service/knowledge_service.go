package service

import (
	"context"
	"unicode/utf8"

	"lesson-notes-be/internal/dto"
)

type IKnowledgeService interface {
	List(ctx context.Context) []dto.KnowledgeDocumentResponse
}

type knowledgeService struct {
	documents DocumentSource
}

func NewKnowledgeService(documents DocumentSource) IKnowledgeService {
	return &knowledgeService{documents: documents}
}

// List re-reads the knowledge directory on every call.
func (s *knowledgeService) List(ctx context.Context) []dto.KnowledgeDocumentResponse {
	docs := s.documents.Load(ctx)
	res := make([]dto.KnowledgeDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		res = append(res, dto.KnowledgeDocumentResponse{
			Filename:   doc.Filename,
			Characters: utf8.RuneCountInString(doc.Text),
		})
	}
	return res
}
