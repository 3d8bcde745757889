package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
	"github.com/tsundoku-app/tsundoku-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search library",
		Description: "Full-text search over the registered books",
		Tags:        []string{"Search"},
	}, s.handleSearchLibrary)
}

// === DTOs ===

// SearchLibraryInput contains parameters for a library search.
type SearchLibraryInput struct {
	Query  string `query:"q" doc:"Search text; an exact ISBN is matched directly"`
	Status string `query:"status" enum:"unread,wants,reading,read," doc:"Optional status filter"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits to return"`
	Offset int    `query:"offset" minimum:"0" doc:"Hits to skip"`
}

// SearchHitResponse is one search hit.
type SearchHitResponse struct {
	ID         string            `json:"id" doc:"Book ID"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Title      string            `json:"title" doc:"Book title"`
	Authors    []string          `json:"authors,omitempty" doc:"Author names"`
	Publisher  string            `json:"publisher,omitempty" doc:"Publisher name"`
	ISBN       string            `json:"isbn,omitempty" doc:"ISBN"`
	Status     string            `json:"status" doc:"Reading status"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Highlighted fragments by field"`
}

// SearchLibraryOutput wraps the search result for Huma.
type SearchLibraryOutput struct {
	Body struct {
		Query  string              `json:"query" doc:"The query that was run"`
		Total  uint64              `json:"total" doc:"Total matching books"`
		TookMs int64               `json:"tookMs" doc:"Search duration in milliseconds"`
		Hits   []SearchHitResponse `json:"hits" doc:"Matching books"`
	}
}

// === Handlers ===

func (s *Server) handleSearchLibrary(ctx context.Context, input *SearchLibraryInput) (*SearchLibraryOutput, error) {
	if s.search == nil {
		return nil, apperrors.Unavailable("library search is not available")
	}

	result, err := s.search.Search(ctx, search.Params{
		Query:  input.Query,
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := &SearchLibraryOutput{}
	out.Body.Query = result.Query
	out.Body.Total = result.Total
	out.Body.TookMs = result.TookMs
	out.Body.Hits = make([]SearchHitResponse, len(result.Hits))
	for i, h := range result.Hits {
		out.Body.Hits[i] = SearchHitResponse{
			ID:         h.ID,
			Score:      h.Score,
			Title:      h.Title,
			Authors:    h.Authors,
			Publisher:  h.Publisher,
			ISBN:       h.ISBN,
			Status:     h.Status,
			Highlights: h.Highlights,
		}
	}
	return out, nil
}
