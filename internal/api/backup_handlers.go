package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportBackup",
		Method:      http.MethodGet,
		Path:        "/api/v1/backup/export",
		Summary:     "Export backup",
		Description: "Exports all books and memos as a backup archive",
		Tags:        []string{"Backup"},
	}, s.handleExportBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "importBackup",
		Method:      http.MethodPost,
		Path:        "/api/v1/backup/import",
		// The archive arrives as RawBody and is validated by the backup
		// service; without this flag huma validates the JSON object against
		// the binary-string schema it derives from RawBody and rejects it.
		SkipValidateBody: true,
		Summary:          "Import backup",
		Description:      "Validates and imports a backup archive; existing records are upserted, not replaced",
		Tags:             []string{"Backup"},
	}, s.handleImportBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetData",
		Method:      http.MethodPost,
		Path:        "/api/v1/backup/reset",
		Summary:     "Reset all data",
		Description: "Deletes every book, memo, and shelf",
		Tags:        []string{"Backup"},
	}, s.handleResetData)
}

// === DTOs ===

// ExportBackupOutput wraps the exported archive for Huma.
type ExportBackupOutput struct {
	Body struct {
		Version    int            `json:"version" doc:"Archive format version"`
		ExportedAt time.Time      `json:"exportedAt" doc:"Export timestamp"`
		Books      []BookResponse `json:"books" doc:"All registered books"`
		Memos      []MemoResponse `json:"memos" doc:"All memos"`
	}
}

// ImportBackupInput carries the raw archive JSON.
// The archive is validated in full before anything is written.
type ImportBackupInput struct {
	RawBody []byte `contentType:"application/json"`
}

// ImportBackupOutput reports how many records were imported.
type ImportBackupOutput struct {
	Body struct {
		Books int `json:"books" doc:"Books imported"`
		Memos int `json:"memos" doc:"Memos imported"`
	}
}

// === Handlers ===

func (s *Server) handleExportBackup(ctx context.Context, _ *struct{}) (*ExportBackupOutput, error) {
	archive, err := s.services.Backup.Export(ctx)
	if err != nil {
		return nil, err
	}

	out := &ExportBackupOutput{}
	out.Body.Version = archive.Version
	out.Body.ExportedAt = archive.ExportedAt
	out.Body.Books = bookResponses(archive.Books)
	out.Body.Memos = make([]MemoResponse, len(archive.Memos))
	for i, m := range archive.Memos {
		out.Body.Memos[i] = memoResponse(m)
	}
	return out, nil
}

func (s *Server) handleImportBackup(ctx context.Context, input *ImportBackupInput) (*ImportBackupOutput, error) {
	stats, err := s.services.Backup.Import(ctx, input.RawBody)
	if err != nil {
		return nil, err
	}

	out := &ImportBackupOutput{}
	out.Body.Books = stats.Books
	out.Body.Memos = stats.Memos
	return out, nil
}

func (s *Server) handleResetData(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if err := s.services.Backup.Reset(ctx); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "All data deleted"}}, nil
}
