package dto

type ExportRequest struct {
	Format  string `json:"format" validate:"required,oneof=docx pdf html"`
	Content string `json:"content" validate:"required"`
}

type KnowledgeDocumentResponse struct {
	Filename   string `json:"filename"`
	Characters int    `json:"characters"`
}

type ExtractTablesResponse struct {
	Tables [][][]string `json:"tables"`
}
