package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search book catalog",
		Description: "Searches the external book catalog by keyword or ISBN",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)
}

// === DTOs ===

// SearchCatalogInput contains parameters for a catalog search.
type SearchCatalogInput struct {
	Query string `query:"q" required:"true" minLength:"1" doc:"Keyword or ISBN"`
}

// CatalogBookResponse is one candidate from the external catalog.
type CatalogBookResponse struct {
	ISBN      string   `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13"`
	Title     string   `json:"title" doc:"Book title"`
	Authors   []string `json:"authors,omitempty" doc:"Author names"`
	Publisher string   `json:"publisher,omitempty" doc:"Publisher name"`
	Thumbnail string   `json:"thumbnail,omitempty" doc:"Cover image URL"`
}

// SearchCatalogOutput wraps the catalog search result for Huma.
// Sequence lets clients discard responses from stale searches.
type SearchCatalogOutput struct {
	Body struct {
		Sequence uint64                `json:"sequence" doc:"Monotonic search sequence number"`
		Books    []CatalogBookResponse `json:"books" doc:"Candidate books"`
	}
}

func catalogBookResponses(books []catalog.Book) []CatalogBookResponse {
	out := make([]CatalogBookResponse, len(books))
	for i, b := range books {
		out[i] = CatalogBookResponse{
			ISBN:      b.ISBN,
			Title:     b.Title,
			Authors:   b.Authors,
			Publisher: b.Publisher,
			Thumbnail: b.Thumbnail,
		}
	}
	return out
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*SearchCatalogOutput, error) {
	result, err := s.services.Book.SearchCatalog(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	out := &SearchCatalogOutput{}
	out.Body.Sequence = result.Sequence
	out.Body.Books = catalogBookResponses(result.Books)
	return out, nil
}
