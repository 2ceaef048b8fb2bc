package service

import (
	"context"

	"lesson-notes-be/internal/dto"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/pkg/serverutils"
	"lesson-notes-be/pkg/tables"
)

const msgTablesFailed = "Failed to process PDF."

type ITablesService interface {
	Extract(ctx context.Context, filename string, data []byte) (*dto.ExtractTablesResponse, error)
}

type tablesService struct {
	logger logger.ILogger
}

func NewTablesService(log logger.ILogger) ITablesService {
	return &tablesService{logger: log}
}

func (s *tablesService) Extract(ctx context.Context, filename string, data []byte) (*dto.ExtractTablesResponse, error) {
	found, err := tables.ExtractPDFTables(data)
	if err != nil {
		s.logger.Error("TABLES", "Failed to extract tables", map[string]interface{}{
			"file":  filename,
			"bytes": len(data),
			"error": err.Error(),
		})
		return nil, serverutils.Internal(msgTablesFailed, err)
	}

	res := &dto.ExtractTablesResponse{Tables: make([][][]string, 0, len(found))}
	for _, t := range found {
		res.Tables = append(res.Tables, [][]string(t))
	}

	s.logger.Info("TABLES", "Tables extracted", map[string]interface{}{
		"file":   filename,
		"tables": len(res.Tables),
	})
	return res, nil
}
